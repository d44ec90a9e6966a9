package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wireframe-rasterizer/internal/batch"
	"wireframe-rasterizer/internal/config"
	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
	"wireframe-rasterizer/internal/snapshot"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneName := flag.String("scene", "", "Scene file (.json/.obj) or built-in name: triangle, cube")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	frames := flag.Int("frames", 0, "Number of turntable frames (default: 1)")
	scale := flag.Int("scale", 0, "Integer upscale factor for written frames (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	compare := flag.String("compare", "", "Reference image (.tga/.png/.webp/.jpg) that frame 0 must match")
	verbose := flag.Bool("v", false, "Debug logging")
	var angle *float64
	flag.Func("angle", "Starting model rotation in degrees", func(s string) error {
		a, err := parseAngle(s)
		if err != nil {
			return err
		}
		angle = &a
		return nil
	})

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:     *sceneName,
		OutputDir: *outputDir,
		Format:    *format,
		Angle:     angle,
		Frames:    *frames,
		Scale:     *scale,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := loadScene(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wireframe render: %s (%d vertices, %d triangles)\n", sc.Name, len(sc.Vertices), len(sc.Indices))
	fmt.Printf("Frames: %d at %dx%d ×%d, Workers: %d\n", cfg.Frames, cfg.Width, cfg.Height, cfg.Scale, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Camera:     cfg.Camera(),
		DepthRange: cfg.Depth(),
		Scale:      cfg.Scale,
		Workers:    cfg.Workers,
	}

	results := batch.Run(batchCfg, sc, batch.Turntable(cfg.Angle, cfg.Frames))

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d (%.1f°): %s\n", e.Index, e.Angle, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, sc.Name, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}

	// Golden comparison
	if *compare != "" {
		d, err := snapshot.Compare(results[0].Path, *compare)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error comparing with %s: %v\n", *compare, err)
			os.Exit(1)
		}
		if d != 0 {
			fmt.Printf("Compare: %d pixels differ from %s\n", d, *compare)
			os.Exit(1)
		}
		fmt.Printf("Compare: frame 0 matches %s\n", *compare)
	}
}

// parseAngle accepts a plain decimal or exponent number of degrees.
func parseAngle(s string) (float64, error) {
	a, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q", s)
	}
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("angle %q is not finite", s)
	}
	return a, nil
}

func loadScene(cfg *config.Config) (scene.Scene, error) {
	if cfg.SceneIsFile() {
		return scene.Load(cfg.Scene)
	}
	sc, ok := scene.Builtin(cfg.Scene)
	if !ok {
		return scene.Scene{}, fmt.Errorf("unknown built-in scene %q", cfg.Scene)
	}
	return sc, nil
}
