package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"wireframe-rasterizer/internal/mathutil"
	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/viewmatrix"
)

// Config holds the view, projection and output settings of a render.
type Config struct {
	// Frame
	Width  int `json:"width"`
	Height int `json:"height"`

	// Camera and model
	Eye       *mathutil.Vec3 `json:"eye"`
	Angle     float64        `json:"angle"`
	AngleStep float64        `json:"angle_step"`

	// Projection
	FOV    float64 `json:"fov"`
	Aspect float64 `json:"aspect"`
	ZNear  float64 `json:"z_near"`
	ZFar   float64 `json:"z_far"`

	// Screen-space z written for assembled vertices. Empty means the
	// reference constants (0.1, 100).
	DepthRange *[2]float64 `json:"depth_range"`

	// Input / output
	Scene     string `json:"scene"`
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Scale     int    `json:"scale"`
	Frames    int    `json:"frames"`
	Workers   int    `json:"workers"`
}

// Formats that snapshot.Save can write.
var Formats = []string{"webp", "png"}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene     string
	OutputDir string
	Format    string
	Angle     *float64
	Frames    int
	Scale     int
	Workers   int
}

// Resolve applies CLI overrides and fills in defaults for everything
// still unset.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Angle != nil {
		c.Angle = *flags.Angle
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Width <= 0 {
		c.Width = 700
	}
	if c.Height <= 0 {
		c.Height = 700
	}
	if c.Eye == nil {
		c.Eye = &mathutil.Vec3{0, 0, 5}
	}
	if c.AngleStep == 0 {
		c.AngleStep = 10
	}
	if c.FOV == 0 {
		c.FOV = 45
	}
	if c.Aspect == 0 {
		c.Aspect = 1
	}
	if c.ZNear == 0 {
		c.ZNear = 0.1
	}
	if c.ZFar == 0 {
		c.ZFar = 50
	}
	if c.DepthRange == nil {
		c.DepthRange = &[2]float64{raster.DefaultDepthRange.Near, raster.DefaultDepthRange.Far}
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings the renderer cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180)", c.FOV))
	}
	if c.Aspect <= 0 {
		errs = append(errs, fmt.Errorf("aspect %v must be positive", c.Aspect))
	}
	if c.ZNear <= 0 || c.ZNear >= c.ZFar {
		errs = append(errs, fmt.Errorf("planes near=%v far=%v need 0 < near < far", c.ZNear, c.ZFar))
	}
	if !c.knownFormat() {
		errs = append(errs, fmt.Errorf("format %q not one of %v", c.Format, Formats))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) knownFormat() bool {
	for _, f := range Formats {
		if c.Format == f {
			return true
		}
	}
	return false
}

// Depth returns the configured depth range for raster.SetDepthRange.
func (c *Config) Depth() raster.DepthRange {
	if c.DepthRange == nil {
		return raster.DefaultDepthRange
	}
	return raster.DepthRange{Near: c.DepthRange[0], Far: c.DepthRange[1]}
}

// Camera returns the eye and projection settings. Call Resolve first.
func (c *Config) Camera() viewmatrix.Camera {
	cam := viewmatrix.Camera{FOV: c.FOV, Aspect: c.Aspect, ZNear: c.ZNear, ZFar: c.ZFar}
	if c.Eye != nil {
		cam.Eye = *c.Eye
	}
	return cam
}

// SceneIsFile reports whether Scene names a file rather than a built-in.
func (c *Config) SceneIsFile() bool {
	ext := strings.ToLower(filepath.Ext(c.Scene))
	return ext == ".json" || ext == ".obj"
}
