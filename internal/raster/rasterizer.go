package raster

import (
	"fmt"

	"wireframe-rasterizer/internal/mathutil"
)

// Primitive names how an index buffer is interpreted by Draw.
type Primitive int

const (
	PrimitiveLine Primitive = iota
	PrimitiveTriangle
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveLine:
		return "line"
	case PrimitiveTriangle:
		return "triangle"
	}
	return fmt.Sprintf("primitive(%d)", int(p))
}

// Rasterizer owns the loaded geometry, the transform state and the frame
// buffer. It is not safe for concurrent use; one render loop owns it.
type Rasterizer struct {
	model      mathutil.Mat4
	view       mathutil.Mat4
	projection mathutil.Mat4

	vertices map[VertexBufferID][]mathutil.Vec3
	indices  map[IndexBufferID][][3]uint32

	fb    *FrameBuffer
	depth DepthRange

	nextID uint32
}

// New returns a rasterizer with identity transforms and a black
// width×height frame buffer.
func New(width, height int) *Rasterizer {
	return &Rasterizer{
		model:      mathutil.Mat4Identity(),
		view:       mathutil.Mat4Identity(),
		projection: mathutil.Mat4Identity(),
		vertices:   make(map[VertexBufferID][]mathutil.Vec3),
		indices:    make(map[IndexBufferID][][3]uint32),
		fb:         NewFrameBuffer(width, height),
		depth:      DefaultDepthRange,
	}
}

func (r *Rasterizer) Width() int  { return r.fb.Width }
func (r *Rasterizer) Height() int { return r.fb.Height }

// FrameBuffer exposes the render target. It stays valid until the next
// Clear or Draw.
func (r *Rasterizer) FrameBuffer() *FrameBuffer { return r.fb }

func (r *Rasterizer) SetModel(m mathutil.Mat4)      { r.model = m }
func (r *Rasterizer) SetView(m mathutil.Mat4)       { r.view = m }
func (r *Rasterizer) SetProjection(m mathutil.Mat4) { r.projection = m }

// SetDepthRange sets the planes used for the screen-space z of assembled
// vertices.
func (r *Rasterizer) SetDepthRange(d DepthRange) { r.depth = d }

// MVP returns projection · view · model.
func (r *Rasterizer) MVP() mathutil.Mat4 {
	return mathutil.Mat4Mul(mathutil.Mat4Mul(r.projection, r.view), r.model)
}

// Clear resets the selected buffers.
func (r *Rasterizer) Clear(b Buffers) {
	r.fb.Clear(b)
}

// SetPixel writes one pixel; out-of-bounds points are dropped.
func (r *Rasterizer) SetPixel(p mathutil.Vec3, c RGB) {
	r.fb.SetPixel(p, c)
}

// DrawLine draws one wireframe edge between two screen-space points.
func (r *Rasterizer) DrawLine(begin, end mathutil.Vec3) {
	r.fb.DrawLine(begin, end)
}

// RawData returns the frame as W*H*3 RGB bytes.
func (r *Rasterizer) RawData() []byte {
	return r.fb.RawData()
}

// Draw rasterizes the index buffer ib over the vertex buffer vb.
// Only PrimitiveTriangle is implemented. Unknown handles, out-of-range
// indices and unsupported primitives fail before anything is drawn.
func (r *Rasterizer) Draw(vb VertexBufferID, ib IndexBufferID, prim Primitive) error {
	switch prim {
	case PrimitiveTriangle:
		return r.drawTriangles(vb, ib)
	default:
		return fmt.Errorf("raster: draw %s: %w", prim, ErrUnsupportedPrimitive)
	}
}

func (r *Rasterizer) drawTriangles(vb VertexBufferID, ib IndexBufferID) error {
	vertices, ok := r.vertices[vb]
	if !ok {
		return fmt.Errorf("raster: vertex buffer %d: %w", vb, ErrUnknownBuffer)
	}
	indices, ok := r.indices[ib]
	if !ok {
		return fmt.Errorf("raster: index buffer %d: %w", ib, ErrUnknownBuffer)
	}
	for n, tri := range indices {
		for _, i := range tri {
			if int(i) >= len(vertices) {
				return fmt.Errorf("raster: triangle %d references vertex %d of %d: %w",
					n, i, len(vertices), ErrIndexOutOfRange)
			}
		}
	}

	Logger().Debug("raster: draw", "vertices", len(vertices), "triangles", len(indices))

	mvp := r.MVP()
	for _, tri := range indices {
		t := r.assemble(mvp, vertices, tri)
		r.rasterizeWireframe(&t)
	}
	return nil
}

// assemble transforms one indexed triangle to screen space.
func (r *Rasterizer) assemble(mvp mathutil.Mat4, vertices []mathutil.Vec3, tri [3]uint32) Triangle {
	var t Triangle
	z := r.depth.Value()
	for k, i := range tri {
		p := r.toScreen(mvp.MulVec4(vertices[i].Extend(1)))
		p[2] = z
		t.SetVertex(k, p)
		t.SetColor(k, vertexColors[k])
	}
	return t
}

// toScreen perspective-divides a clip-space point and maps NDC [-1,1] to
// pixel coordinates [0,W]×[0,H]. No clipping: w <= 0 goes straight through.
func (r *Rasterizer) toScreen(clip mathutil.Vec4) mathutil.Vec3 {
	ndc := clip.Div(clip.W()).XYZ()
	ndc[0] = 0.5 * float64(r.fb.Width) * (ndc[0] + 1.0)
	ndc[1] = 0.5 * float64(r.fb.Height) * (ndc[1] + 1.0)
	return ndc
}

// Project runs a model-space point through the current transforms and
// viewport mapping, without the fixed depth overwrite.
func (r *Rasterizer) Project(v mathutil.Vec3) mathutil.Vec3 {
	return r.toScreen(r.MVP().MulVec4(v.Extend(1)))
}

func (r *Rasterizer) rasterizeWireframe(t *Triangle) {
	r.fb.DrawLine(t.C(), t.A())
	r.fb.DrawLine(t.C(), t.B())
	r.fb.DrawLine(t.B(), t.A())
}
