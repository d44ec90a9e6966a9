package batch

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"wireframe-rasterizer/internal/mathutil"
	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
	"wireframe-rasterizer/internal/snapshot"
	"wireframe-rasterizer/internal/viewmatrix"
)

func testConfig(dir string) Config {
	return Config{
		OutputDir:  dir,
		Format:     "png",
		Width:      64,
		Height:     64,
		Camera:     viewmatrix.DefaultCamera(),
		DepthRange: raster.DefaultDepthRange,
		Scale:      1,
		Workers:    3,
		Progress:   &bytes.Buffer{},
	}
}

func TestTurntable(t *testing.T) {
	frames := Turntable(10, 4)
	want := []float64{10, 100, 190, 280}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames", len(frames))
	}
	for i, f := range frames {
		if f.Index != i || math.Abs(f.Angle-want[i]) > 1e-12 {
			t.Errorf("frame %d = %+v, want angle %v", i, f, want[i])
		}
	}
}

func TestRunWritesEveryFrame(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	frames := Turntable(0, 6)

	results := Run(cfg, scene.Default(), frames)
	if len(results) != len(frames) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if !r.Success {
			t.Fatalf("frame %d failed: %s", i, r.Error)
		}
		if r.Index != i {
			t.Errorf("result %d carries index %d", i, r.Index)
		}
		if r.Lit == 0 {
			t.Errorf("frame %d is empty", i)
		}
		if _, err := os.Stat(r.Path); err != nil {
			t.Errorf("frame %d: %v", i, err)
		}
	}
}

func TestRunMatchesSingleThreadedRender(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	sc := scene.Cube(mathutil.Vec3{0, 0, -2}, 2)
	results := Run(cfg, sc, []Frame{{Index: 0, Angle: 35}})
	if !results[0].Success {
		t.Fatal(results[0].Error)
	}

	r := raster.New(cfg.Width, cfg.Height)
	vb, ib := sc.Upload(r)
	if err := Render(cfg, r, vb, ib, 35); err != nil {
		t.Fatal(err)
	}
	want, _ := snapshot.ToImage(r.RawData(), r.Width(), r.Height())
	got, err := snapshot.Load(results[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if d := snapshot.Diff(want, got); d != 0 {
		t.Errorf("written frame differs from direct render in %d pixels", d)
	}
}

func TestRunScalesOutput(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Scale = 2
	results := Run(cfg, scene.Default(), []Frame{{Index: 0}})
	img, err := snapshot.Load(results[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("bounds = %v, want 128x128", b)
	}
}

func TestRunReportsBadScene(t *testing.T) {
	cfg := testConfig(t.TempDir())
	bad := scene.Scene{Name: "bad", Vertices: []mathutil.Vec3{{0, 0, 0}}, Indices: [][3]uint32{{0, 1, 2}}}
	results := Run(cfg, bad, Turntable(0, 2))
	for i, r := range results {
		if r.Success || r.Error == "" {
			t.Errorf("frame %d should fail with an error, got %+v", i, r)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	results := []Result{
		{Frame: Frame{Index: 0, Angle: 0}, Lit: 10, Success: true},
		{Frame: Frame{Index: 1, Angle: 180}, Error: "boom"},
		{Frame: Frame{Index: 2, Angle: 90}, Lit: 12, Success: true},
	}
	path := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(path, "triangle", cfg, results); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Scene != "triangle" || m.Width != 64 || len(m.Frames) != 2 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Frames[1].Image != "frame_0002.png" || m.Frames[1].Angle != 90 {
		t.Errorf("second entry = %+v", m.Frames[1])
	}
}

func TestRunReferenceFrameMatchesGolden(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Width, cfg.Height = 700, 700
	cfg.Format = "webp"

	results := Run(cfg, scene.Default(), Turntable(0, 1))
	if !results[0].Success {
		t.Fatal(results[0].Error)
	}
	d, err := snapshot.Compare(results[0].Path, filepath.Join("..", "raster", "testdata", "reference_triangle.png"))
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("%d pixels differ from the reference frame", d)
	}
	if results[0].Lit != 967 {
		t.Errorf("lit %d pixels, want 967", results[0].Lit)
	}
}
