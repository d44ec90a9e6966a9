package mathutil

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float64

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Div divides every component, w included, by s.
func (v Vec4) Div(s float64) Vec4 {
	return Vec4{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

// W returns the homogeneous coordinate.
func (v Vec4) W() float64 {
	return v[3]
}
