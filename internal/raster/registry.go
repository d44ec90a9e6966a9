package raster

import (
	"fmt"

	"wireframe-rasterizer/internal/mathutil"
)

// VertexBufferID references a vertex buffer loaded with LoadVertices.
type VertexBufferID uint32

// IndexBufferID references an index buffer loaded with LoadIndices.
type IndexBufferID uint32

// LoadVertices copies vertices into a new buffer and returns its handle.
// Point values are not validated.
func (r *Rasterizer) LoadVertices(vertices []mathutil.Vec3) VertexBufferID {
	id := VertexBufferID(r.nextHandle())
	r.vertices[id] = append([]mathutil.Vec3(nil), vertices...)
	Logger().Debug("raster: vertices loaded", "handle", uint32(id), "count", len(vertices))
	return id
}

// LoadIndices copies index triples into a new buffer and returns its handle.
// Indices are checked against the vertex buffer at draw time, not here.
func (r *Rasterizer) LoadIndices(indices [][3]uint32) IndexBufferID {
	id := IndexBufferID(r.nextHandle())
	r.indices[id] = append([][3]uint32(nil), indices...)
	Logger().Debug("raster: indices loaded", "handle", uint32(id), "count", len(indices))
	return id
}

// Vertices returns a copy of the vertex buffer stored under id.
func (r *Rasterizer) Vertices(id VertexBufferID) ([]mathutil.Vec3, error) {
	v, ok := r.vertices[id]
	if !ok {
		return nil, fmt.Errorf("raster: vertex buffer %d: %w", id, ErrUnknownBuffer)
	}
	return append([]mathutil.Vec3(nil), v...), nil
}

// Indices returns a copy of the index buffer stored under id.
func (r *Rasterizer) Indices(id IndexBufferID) ([][3]uint32, error) {
	idx, ok := r.indices[id]
	if !ok {
		return nil, fmt.Errorf("raster: index buffer %d: %w", id, ErrUnknownBuffer)
	}
	return append([][3]uint32(nil), idx...), nil
}

// nextHandle hands out handles from one counter shared by vertex and index
// buffers, so no two buffers of either kind ever get the same number.
func (r *Rasterizer) nextHandle() uint32 {
	id := r.nextID
	r.nextID++
	return id
}
