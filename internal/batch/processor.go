package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"wireframe-rasterizer/internal/raster"
	"wireframe-rasterizer/internal/scene"
	"wireframe-rasterizer/internal/snapshot"
	"wireframe-rasterizer/internal/viewmatrix"

	"golang.org/x/term"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir  string
	Format     string // file extension without the dot
	Width      int
	Height     int
	Camera     viewmatrix.Camera
	DepthRange raster.DepthRange
	Scale      int
	Workers    int

	// Progress receives periodic status lines. Nil means stdout when it is
	// a terminal, and silence otherwise.
	Progress io.Writer
}

// Frame is one view to render.
type Frame struct {
	Index int
	Angle float64
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame
	Path    string
	Lit     int
	Success bool
	Error   string
}

// Turntable returns n frames evenly spaced over a full turn, starting at
// start degrees.
func Turntable(start float64, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{Index: i, Angle: start + 360*float64(i)/float64(n)}
	}
	return frames
}

// Run renders all frames using a worker pool. Each worker owns its own
// Rasterizer, so the single-threaded renderer is never shared.
func Run(cfg Config, sc scene.Scene, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	progress := cfg.Progress
	if progress == nil && term.IsTerminal(int(os.Stdout.Fd())) {
		progress = os.Stdout
	}

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	if progress != nil {
		reporter.Add(1)
		go func() {
			defer reporter.Done()
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := raster.New(cfg.Width, cfg.Height)
			vb, ib := sc.Upload(r)
			for idx := range frameChan {
				results[idx] = renderFrame(cfg, r, vb, ib, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)
	reporter.Wait()

	return results
}

// Render draws a single frame into r with the batch camera settings.
func Render(cfg Config, r *raster.Rasterizer, vb raster.VertexBufferID, ib raster.IndexBufferID, angle float64) error {
	r.Clear(raster.BufferColor | raster.BufferDepth)
	r.SetDepthRange(cfg.DepthRange)
	r.SetModel(viewmatrix.Model(angle))
	r.SetView(cfg.Camera.View())
	r.SetProjection(cfg.Camera.Projection())
	return r.Draw(vb, ib, raster.PrimitiveTriangle)
}

func renderFrame(cfg Config, r *raster.Rasterizer, vb raster.VertexBufferID, ib raster.IndexBufferID, f Frame) Result {
	res := Result{Frame: f}

	if err := Render(cfg, r, vb, ib, f.Angle); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Lit = r.FrameBuffer().Lit()

	img, err := snapshot.ToImage(r.RawData(), r.Width(), r.Height())
	if err != nil {
		res.Error = err.Error()
		return res
	}
	img = snapshot.Upscale(img, cfg.Scale)

	res.Path = filepath.Join(cfg.OutputDir, FrameName(f, cfg.Format))
	if err := snapshot.Save(res.Path, img); err != nil {
		res.Error = err.Error()
		return res
	}

	raster.Logger().Debug("batch: frame written", "index", f.Index, "angle", f.Angle, "path", res.Path)
	res.Success = true
	return res
}

// FrameName is the output file name of a frame, relative to OutputDir.
func FrameName(f Frame, format string) string {
	return fmt.Sprintf("frame_%04d.%s", f.Index, format)
}
