package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wireframe-rasterizer/internal/mathutil"
	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/viewmatrix"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	if c.Width != 700 || c.Height != 700 {
		t.Errorf("size = %dx%d, want 700x700", c.Width, c.Height)
	}
	if *c.Eye != (mathutil.Vec3{0, 0, 5}) {
		t.Errorf("eye = %v", *c.Eye)
	}
	if c.FOV != 45 || c.Aspect != 1 || c.ZNear != 0.1 || c.ZFar != 50 {
		t.Errorf("projection = %v/%v/%v/%v", c.FOV, c.Aspect, c.ZNear, c.ZFar)
	}
	if c.AngleStep != 10 || c.Frames != 1 || c.Scale != 1 || c.Format != "webp" {
		t.Errorf("step=%v frames=%d scale=%d format=%q", c.AngleStep, c.Frames, c.Scale, c.Format)
	}
	if c.Depth() != raster.DefaultDepthRange {
		t.Errorf("depth = %v, want reference default", c.Depth())
	}
	if c.Camera() != viewmatrix.DefaultCamera() {
		t.Errorf("camera = %+v, want default camera", c.Camera())
	}
	if c.Workers <= 0 {
		t.Errorf("workers = %d", c.Workers)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadAndFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"width": 320, "height": 240,
		"eye": [0, 1, 8],
		"angle": 30,
		"z_far": 100,
		"depth_range": [0.1, 50],
		"scene": "cube",
		"format": "PNG",
		"frames": 4
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	angle := 90.0
	c.Resolve(Flags{Frames: 12, Angle: &angle, OutputDir: "out"})

	if c.Width != 320 || c.Height != 240 {
		t.Errorf("size = %dx%d", c.Width, c.Height)
	}
	if *c.Eye != (mathutil.Vec3{0, 1, 8}) {
		t.Errorf("eye = %v", *c.Eye)
	}
	if c.Angle != 90 {
		t.Errorf("angle = %v, want flag value 90", c.Angle)
	}
	if c.Frames != 12 {
		t.Errorf("frames = %d, want flag value 12", c.Frames)
	}
	if c.ZFar != 100 || c.ZNear != 0.1 {
		t.Errorf("planes = %v/%v", c.ZNear, c.ZFar)
	}
	if c.Depth() != (raster.DepthRange{Near: 0.1, Far: 50}) {
		t.Errorf("depth = %v", c.Depth())
	}
	if c.Format != "png" || c.OutputDir != "out" || c.Scene != "cube" {
		t.Errorf("format=%q output=%q scene=%q", c.Format, c.OutputDir, c.Scene)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{width: 1"), 0644)
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("bad json err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = -1 }, "frame size"},
		{"fov too wide", func(c *Config) { c.FOV = 180 }, "fov"},
		{"negative aspect", func(c *Config) { c.Aspect = -1 }, "aspect"},
		{"near beyond far", func(c *Config) { c.ZNear = 60 }, "planes"},
		{"unknown format", func(c *Config) { c.Format = "gif" }, "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.Resolve(Flags{})
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestSceneIsFile(t *testing.T) {
	tests := map[string]bool{
		"":               false,
		"cube":           false,
		"mesh.obj":       true,
		"scenes/a.JSON":  true,
		"archive.tar.gz": false,
	}
	for scene, want := range tests {
		c := Config{Scene: scene}
		if got := c.SceneIsFile(); got != want {
			t.Errorf("SceneIsFile(%q) = %v, want %v", scene, got, want)
		}
	}
}
