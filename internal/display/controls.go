package display

// Input is the subset of keyboard state the viewer reacts to, sampled once
// per tick.
type Input struct {
	Left  bool // A: turn counter-clockwise
	Right bool // D: turn clockwise
	Quit  bool // Escape
}

// Turn applies one tick of input to angle. Left and right together cancel.
func Turn(angle, step float64, in Input) float64 {
	if in.Left {
		angle += step
	}
	if in.Right {
		angle -= step
	}
	return angle
}

// expandRGB converts W*H*3 RGB bytes into opaque RGBA in dst, which must
// hold W*H*4 bytes.
func expandRGB(dst, src []byte) {
	for i, j := 0, 0; i+2 < len(src) && j+3 < len(dst); i, j = i+3, j+4 {
		dst[j] = src[i]
		dst[j+1] = src[i+1]
		dst[j+2] = src[i+2]
		dst[j+3] = 0xFF
	}
}
