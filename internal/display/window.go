//go:build !headless

package display

import (
	"fmt"

	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
	"wireframe-rasterizer/internal/viewmatrix"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Settings configures the viewer window and the view it renders.
type Settings struct {
	Title      string
	Width      int
	Height     int
	Scale      int // window pixels per frame pixel
	Camera     viewmatrix.Camera
	DepthRange raster.DepthRange
	Angle      float64
	AngleStep  float64
}

// Viewer is an ebiten.Game that re-renders the scene when the angle changes
// and blits the last frame to the window on every Draw.
type Viewer struct {
	s      Settings
	r      *raster.Rasterizer
	vb     raster.VertexBufferID
	ib     raster.IndexBufferID
	angle  float64
	raw    []byte
	rgba   []byte
	frame  *ebiten.Image
	dirty  bool
	frames uint64
}

// NewViewer uploads sc into a fresh rasterizer sized by s.
func NewViewer(s Settings, sc scene.Scene) *Viewer {
	if s.Scale <= 0 {
		s.Scale = 1
	}
	r := raster.New(s.Width, s.Height)
	r.SetDepthRange(s.DepthRange)
	vb, ib := sc.Upload(r)
	return &Viewer{
		s:     s,
		r:     r,
		vb:    vb,
		ib:    ib,
		angle: s.Angle,
		rgba:  make([]byte, s.Width*s.Height*4),
		dirty: true,
	}
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(s Settings, sc scene.Scene) error {
	v := NewViewer(s, sc)
	ebiten.SetWindowTitle(v.s.Title)
	ebiten.SetWindowSize(v.s.Width*v.s.Scale, v.s.Height*v.s.Scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(v)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Angle returns the current model rotation in degrees.
func (v *Viewer) Angle() float64 { return v.angle }

func (v *Viewer) Update() error {
	return v.step(Input{
		Left:  inpututil.IsKeyJustPressed(ebiten.KeyA),
		Right: inpututil.IsKeyJustPressed(ebiten.KeyD),
		Quit:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	})
}

// step applies one tick of input and re-renders only when the view changed.
func (v *Viewer) step(in Input) error {
	if in.Quit {
		return ebiten.Termination
	}
	if a := Turn(v.angle, v.s.AngleStep, in); a != v.angle {
		v.angle = a
		v.dirty = true
	}
	if !v.dirty {
		return nil
	}
	if err := v.render(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	v.dirty = false
	return nil
}

// render runs one full frame: clear, transforms, draw, serialize.
func (v *Viewer) render() error {
	v.r.Clear(raster.BufferColor | raster.BufferDepth)
	v.r.SetModel(viewmatrix.Model(v.angle))
	v.r.SetView(v.s.Camera.View())
	v.r.SetProjection(v.s.Camera.Projection())
	if err := v.r.Draw(v.vb, v.ib, raster.PrimitiveTriangle); err != nil {
		return err
	}
	v.raw = v.r.FrameBuffer().AppendRawData(v.raw[:0])
	expandRGB(v.rgba, v.raw)
	v.frames++
	raster.Logger().Debug("display: frame rendered", "angle", v.angle, "frame", v.frames)
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.s.Width, v.s.Height)
	}
	v.frame.WritePixels(v.rgba)
	screen.DrawImage(v.frame, nil)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.s.Width, v.s.Height
}
