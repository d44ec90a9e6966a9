//go:build !headless

package display

import (
	"testing"

	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
	"wireframe-rasterizer/internal/viewmatrix"

	"github.com/hajimehoshi/ebiten/v2"
)

func testSettings() Settings {
	return Settings{
		Title:      "test",
		Width:      64,
		Height:     64,
		Camera:     viewmatrix.DefaultCamera(),
		DepthRange: raster.DefaultDepthRange,
		AngleStep:  10,
	}
}

func TestViewerRenderFillsRGBA(t *testing.T) {
	v := NewViewer(testSettings(), scene.Default())
	if err := v.render(); err != nil {
		t.Fatal(err)
	}
	if len(v.raw) != 64*64*3 || len(v.rgba) != 64*64*4 {
		t.Fatalf("raw=%d rgba=%d bytes", len(v.raw), len(v.rgba))
	}
	lit := 0
	for i := 0; i < len(v.rgba); i += 4 {
		if v.rgba[i+3] != 0xFF {
			t.Fatalf("pixel %d is not opaque", i/4)
		}
		if v.rgba[i] == 255 && v.rgba[i+1] == 0 && v.rgba[i+2] == 0 {
			lit++
		}
	}
	if want := v.r.FrameBuffer().Lit(); lit != want || lit == 0 {
		t.Errorf("%d red RGBA pixels, frame buffer has %d lit", lit, want)
	}
}

func TestViewerRenderFollowsAngle(t *testing.T) {
	v := NewViewer(testSettings(), scene.Default())
	if err := v.render(); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), v.rgba...)

	v.angle = Turn(v.angle, v.s.AngleStep, Input{Left: true})
	if err := v.render(); err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range first {
		if first[i] != v.rgba[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("turning the model should change the frame")
	}
	if v.Angle() != 10 {
		t.Errorf("Angle = %v, want 10", v.Angle())
	}
}

func TestViewerLayout(t *testing.T) {
	v := NewViewer(testSettings(), scene.Default())
	w, h := v.Layout(1920, 1080)
	if w != 64 || h != 64 {
		t.Errorf("Layout = %dx%d, want 64x64", w, h)
	}
}

func TestViewerStepRendersOnlyWhenDirty(t *testing.T) {
	v := NewViewer(testSettings(), scene.Default())
	tests := []struct {
		name       string
		in         Input
		wantFrames uint64
		wantAngle  float64
	}{
		{"first tick", Input{}, 1, 0},
		{"idle", Input{}, 1, 0},
		{"idle again", Input{}, 1, 0},
		{"left", Input{Left: true}, 2, 10},
		{"left and right cancel", Input{Left: true, Right: true}, 2, 10},
		{"right", Input{Right: true}, 3, 0},
	}
	for _, tt := range tests {
		if err := v.step(tt.in); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if v.frames != tt.wantFrames || v.Angle() != tt.wantAngle {
			t.Errorf("%s: frames=%d angle=%v, want frames=%d angle=%v",
				tt.name, v.frames, v.Angle(), tt.wantFrames, tt.wantAngle)
		}
	}
}

func TestViewerStepQuit(t *testing.T) {
	v := NewViewer(testSettings(), scene.Default())
	if err := v.step(Input{Quit: true}); err != ebiten.Termination {
		t.Errorf("step(Quit) = %v, want ebiten.Termination", err)
	}
}
