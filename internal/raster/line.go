package raster

import (
	"math"

	"wireframe-rasterizer/internal/mathutil"
)

// wireColor is the fixed color of every wireframe edge, whatever the triangle's
// per-vertex colors are.
var wireColor = Red

// guardBand bounds endpoint coordinates. Near-zero w can push projected
// points arbitrarily far out, and stepping towards them one pixel at a time
// would never finish.
const guardBand = 1 << 24

// DrawLine draws the inclusive segment begin→end in wireColor.
//
// The deltas are the truncated float differences and the walk runs between
// the truncated endpoints, one pixel per unit step along the dominant axis.
// The walk starts at the endpoint with the lower dominant coordinate; when
// the dominant delta truncates to zero the lower truncated endpoint wins,
// so DrawLine(a, b) and DrawLine(b, a) light the same pixels.
func (fb *FrameBuffer) DrawLine(begin, end mathutil.Vec3) {
	if !inGuardBand(begin) || !inGuardBand(end) {
		return
	}

	x1, y1 := int(begin[0]), int(begin[1])
	x2, y2 := int(end[0]), int(end[1])

	dx, dy := int(end[0]-begin[0]), int(end[1]-begin[1])
	dx1, dy1 := absInt(dx), absInt(dy)

	// The minor axis moves forward when both deltas share a sign.
	step := -1
	if (dx < 0 && dy < 0) || (dx > 0 && dy > 0) {
		step = 1
	}

	if dy1 <= dx1 {
		x, y, xe := x1, y1, x2
		if dx < 0 || (dx == 0 && (x2 < x1 || (x2 == x1 && y2 < y1))) {
			x, y, xe = x2, y2, x1
		}
		px := 2*dy1 - dx1
		fb.plot(x, y, wireColor)

		for x < xe && x < fb.Width {
			x++
			if px < 0 {
				px += 2 * dy1
			} else {
				y += step
				px += 2 * (dy1 - dx1)
			}
			fb.plot(x, y, wireColor)
		}
		return
	}

	x, y, ye := x1, y1, y2
	if dy < 0 {
		x, y, ye = x2, y2, y1
	}
	py := 2*dx1 - dy1
	fb.plot(x, y, wireColor)

	for y < ye && y < fb.Height {
		y++
		if py <= 0 {
			py += 2 * dx1
		} else {
			x += step
			py += 2 * (dx1 - dy1)
		}
		fb.plot(x, y, wireColor)
	}
}

func inGuardBand(p mathutil.Vec3) bool {
	return math.Abs(p[0]) <= guardBand && math.Abs(p[1]) <= guardBand
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
