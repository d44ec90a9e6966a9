package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index int     `json:"index"`
	Angle float64 `json:"angle"`
	Image string  `json:"image"`
	Lit   int     `json:"lit_pixels"`
}

// Manifest describes a batch run.
type Manifest struct {
	Scene  string          `json:"scene"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Scale  int             `json:"scale"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json for the successful results.
func WriteManifest(path, sceneName string, cfg Config, results []Result) error {
	m := Manifest{
		Scene:  sceneName,
		Width:  cfg.Width,
		Height: cfg.Height,
		Scale:  cfg.Scale,
		Frames: make([]ManifestEntry, 0, len(results)),
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Index: r.Index,
			Angle: r.Angle,
			Image: FrameName(r.Frame, cfg.Format),
			Lit:   r.Lit,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
