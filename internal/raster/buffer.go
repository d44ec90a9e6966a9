package raster

import "wireframe-rasterizer/internal/mathutil"

// RGB is one 8-bit-per-channel pixel.
type RGB [3]uint8

var (
	Black = RGB{0, 0, 0}
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 255, 0}
	Blue  = RGB{0, 0, 255}
)

// Buffers selects which buffers Clear resets.
type Buffers uint8

const (
	BufferColor Buffers = 1 << iota
	BufferDepth
)

// Has reports whether every flag in o is set in b.
func (b Buffers) Has(o Buffers) bool {
	return b&o == o
}

// FrameBuffer holds the rendering target as flat slices for cache locality.
//
// Storage is row-major with the vertical axis flipped: screen point (x, y)
// lives at (Height-y)*Width + x. Depth is allocated and cleared with Color
// but nothing in the wireframe pipeline reads or writes it.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []RGB     // len = W*H
	Depth  []float64 // len = W*H, reserved for depth testing
}

// NewFrameBuffer allocates a black color buffer and a zeroed depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]RGB, n),
		Depth:  make([]float64, n),
	}
}

// Index returns the storage offset of screen point (x, y).
func (fb *FrameBuffer) Index(x, y int) int {
	return (fb.Height-y)*fb.Width + x
}

// Clear reallocates the selected buffers: color to black, depth to 0.
func (fb *FrameBuffer) Clear(b Buffers) {
	n := fb.Width * fb.Height
	if b.Has(BufferColor) {
		fb.Color = make([]RGB, n)
	}
	if b.Has(BufferDepth) {
		fb.Depth = make([]float64, n)
	}
}

// SetPixel writes c at the truncated screen position of p. Points outside
// the buffer are dropped without error. Bounds are checked before the
// float-to-int conversion, so negative, NaN and infinite coordinates are
// rejected instead of wrapping.
func (fb *FrameBuffer) SetPixel(p mathutil.Vec3, c RGB) {
	if !(p[0] >= 0 && p[0] < float64(fb.Width)) || !(p[1] >= 0 && p[1] < float64(fb.Height)) {
		return
	}
	fb.plot(int(p[0]), int(p[1]), c)
}

// plot is SetPixel for integer coordinates.
func (fb *FrameBuffer) plot(x, y int, c RGB) {
	// Under the flip, row y=0 would land one row past the end of Color.
	if x < 0 || x >= fb.Width || y <= 0 || y >= fb.Height {
		return
	}
	fb.Color[fb.Index(x, y)] = c
}

// At returns the pixel stored for screen point (x, y). ok is false for
// points SetPixel would drop.
func (fb *FrameBuffer) At(x, y int) (c RGB, ok bool) {
	if x < 0 || x >= fb.Width || y <= 0 || y >= fb.Height {
		return RGB{}, false
	}
	return fb.Color[fb.Index(x, y)], true
}

// Lit counts non-black pixels.
func (fb *FrameBuffer) Lit() int {
	n := 0
	for _, c := range fb.Color {
		if c != Black {
			n++
		}
	}
	return n
}

// RawData serializes the color buffer as W*H*3 bytes, R,G,B per pixel in
// storage order. The returned slice is a copy.
func (fb *FrameBuffer) RawData() []byte {
	return fb.AppendRawData(make([]byte, 0, len(fb.Color)*3))
}

// AppendRawData appends the RawData bytes to dst and returns the result.
func (fb *FrameBuffer) AppendRawData(dst []byte) []byte {
	for _, c := range fb.Color {
		dst = append(dst, c[0], c[1], c[2])
	}
	return dst
}
