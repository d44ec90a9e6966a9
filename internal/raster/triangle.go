package raster

import "wireframe-rasterizer/internal/mathutil"

// Triangle is the per-draw record handed from assembly to rasterization.
// Texture coordinates and normals are carried but not consumed by the
// wireframe path.
type Triangle struct {
	vertices  [3]mathutil.Vec3
	colors    [3]mathutil.Vec3 // 0..255 per channel
	texCoords [3][2]float64
	normals   [3]mathutil.Vec3
}

func (t *Triangle) A() mathutil.Vec3 {
	return t.vertices[0]
}

func (t *Triangle) B() mathutil.Vec3 {
	return t.vertices[1]
}

func (t *Triangle) C() mathutil.Vec3 {
	return t.vertices[2]
}

func (t *Triangle) SetVertex(i int, v mathutil.Vec3) {
	t.vertices[i] = v
}

func (t *Triangle) SetColor(i int, c mathutil.Vec3) {
	t.colors[i] = c
}

func (t *Triangle) SetTexCoord(i int, uv [2]float64) {
	t.texCoords[i] = uv
}

func (t *Triangle) SetNormal(i int, n mathutil.Vec3) {
	t.normals[i] = n
}

func (t *Triangle) Color(i int) mathutil.Vec3 {
	return t.colors[i]
}

func (t *Triangle) TexCoord(i int) [2]float64 {
	return t.texCoords[i]
}

func (t *Triangle) Normal(i int) mathutil.Vec3 {
	return t.normals[i]
}

// Homogeneous returns the vertices with w = 1.
func (t *Triangle) Homogeneous() [3]mathutil.Vec4 {
	var out [3]mathutil.Vec4
	for i, v := range t.vertices {
		out[i] = v.Extend(1)
	}
	return out
}

// vertexColors is the fixed per-vertex coloring: red, green, blue.
var vertexColors = [3]mathutil.Vec3{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
}

// DepthRange supplies the screen-space z written for every assembled vertex.
type DepthRange struct {
	Near float64
	Far  float64
}

// DefaultDepthRange matches the constants the reference renderer hardcodes.
// Hosts whose projection uses other planes should call SetDepthRange.
var DefaultDepthRange = DepthRange{Near: 0.1, Far: 100}

// Value is (far-near)/2 + (far+near)/2.
func (d DepthRange) Value() float64 {
	f1 := (d.Far - d.Near) / 2.0
	f2 := (d.Far + d.Near) / 2.0
	return f1 + f2
}
