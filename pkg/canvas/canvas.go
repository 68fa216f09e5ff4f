// Package canvas creates, composites and encodes the in-memory images that
// become brand assets.
//
// Canvases are *image.NRGBA values. Compositing follows the usual
// paste-with-alpha-mask model: a translucent source pixel is blended over
// the destination by its alpha, an opaque one replaces it.
package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/brandkit/pkg/brand"
)

// New returns a width x height canvas filled with c. A transparent c gives
// an empty canvas.
func New(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// Flatten composites src onto an opaque canvas of the same size filled with
// bg, using the alpha of src as the mask. The result is fully opaque when bg
// is opaque.
func Flatten(src image.Image, bg color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(dst, src, image.Point{}, 1.0)
}

// Paste draws src onto dst with its top-left corner at pt, blending by the
// alpha of src.
func Paste(dst *image.NRGBA, src image.Image, pt image.Point) {
	xdraw.Copy(dst, pt, src, src.Bounds(), xdraw.Over, nil)
}

// FillRect fills the inclusive pixel box b of dst with c, replacing whatever
// was there. The box is clipped to the canvas.
func FillRect(dst *image.NRGBA, b brand.Box, c color.Color) {
	r := image.Rect(b[0], b[1], b[2]+1, b[3]+1).Intersect(dst.Bounds())
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// IsOpaque reports whether every pixel of img has full alpha.
func IsOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
