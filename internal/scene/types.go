package scene

import (
	"fmt"

	"wireframe-rasterizer/internal/mathutil"
	"wireframe-rasterizer/internal/raster"
)

// Scene is one triangle mesh ready for upload: positions plus index triples.
type Scene struct {
	Name     string
	Vertices []mathutil.Vec3
	Indices  [][3]uint32
}

// Default returns the reference scene: one triangle at z = -2.
func Default() Scene {
	return Scene{
		Name: "triangle",
		Vertices: []mathutil.Vec3{
			{2, 0, -2},
			{0, 2, -2},
			{-2, 0, -2},
		},
		Indices: [][3]uint32{{0, 1, 2}},
	}
}

// Cube returns an axis-aligned cube of edge length size centred on c,
// two triangles per face.
func Cube(c mathutil.Vec3, size float64) Scene {
	verts := make([]mathutil.Vec3, 8)
	for i := range verts {
		corner := mathutil.Vec3{-1, -1, -1}
		for k := range corner {
			if i&(1<<k) != 0 {
				corner[k] = 1
			}
		}
		verts[i] = c.Add(corner.Scale(size / 2))
	}
	return Scene{
		Name:     "cube",
		Vertices: verts,
		Indices: [][3]uint32{
			{0, 1, 3}, {0, 3, 2}, // -z
			{4, 6, 7}, {4, 7, 5}, // +z
			{0, 4, 5}, {0, 5, 1}, // -y
			{2, 3, 7}, {2, 7, 6}, // +y
			{0, 2, 6}, {0, 6, 4}, // -x
			{1, 5, 7}, {1, 7, 3}, // +x
		},
	}
}

// Builtin returns a named built-in scene.
func Builtin(name string) (Scene, bool) {
	switch name {
	case "", "triangle":
		return Default(), true
	case "cube":
		return Cube(mathutil.Vec3{0, 0, -2}, 2), true
	}
	return Scene{}, false
}

// Validate checks every index against the vertex count.
func (s Scene) Validate() error {
	for n, tri := range s.Indices {
		for _, i := range tri {
			if int(i) >= len(s.Vertices) {
				return fmt.Errorf("scene %s: triangle %d references vertex %d of %d", s.Name, n, i, len(s.Vertices))
			}
		}
	}
	return nil
}

// Upload loads the scene's buffers into r and returns their handles.
func (s Scene) Upload(r *raster.Rasterizer) (raster.VertexBufferID, raster.IndexBufferID) {
	return r.LoadVertices(s.Vertices), r.LoadIndices(s.Indices)
}
