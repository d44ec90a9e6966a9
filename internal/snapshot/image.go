package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ToImage wraps a W*H*3 RGB byte frame (as produced by
// raster.FrameBuffer.RawData) in an opaque NRGBA image. Buffer row 0
// becomes image row 0.
func ToImage(raw []byte, w, h int) (*image.NRGBA, error) {
	if len(raw) != w*h*3 {
		return nil, fmt.Errorf("snapshot: frame is %d bytes, want %d for %dx%d", len(raw), w*h*3, w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < len(raw); i, j = i+3, j+4 {
		img.Pix[j] = raw[i]
		img.Pix[j+1] = raw[i+1]
		img.Pix[j+2] = raw[i+2]
		img.Pix[j+3] = 255
	}
	return img, nil
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling so single-pixel edges stay crisp.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Diff counts pixels whose color differs between a and b. Images of
// different sizes differ everywhere.
func Diff(a, b image.Image) int {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return max(ab.Dx()*ab.Dy(), bb.Dx()*bb.Dy())
	}
	n := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ca := color.NRGBAModel.Convert(a.At(ab.Min.X+x, ab.Min.Y+y))
			cb := color.NRGBAModel.Convert(b.At(bb.Min.X+x, bb.Min.Y+y))
			if ca != cb {
				n++
			}
		}
	}
	return n
}
