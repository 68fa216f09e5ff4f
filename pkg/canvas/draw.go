package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/brandkit/pkg/brand"
)

// DrawGlyph renders shapes onto a transparent size x size canvas.
//
// Boxes are inclusive pixel boxes: an ellipse in [x0,y0,x1,y1] covers the
// pixels x0..x1 and y0..y1. Outlined shapes keep their stroke inside the box.
func DrawGlyph(size int, shapes []brand.Shape, c color.Color) *image.NRGBA {
	dc := gg.NewContext(size, size)
	dc.SetColor(c)
	for _, s := range shapes {
		drawShape(dc, s)
	}
	return imaging.Clone(dc.Image())
}

func drawShape(dc *gg.Context, s brand.Shape) {
	inset := float64(s.Outline) / 2
	switch s.Kind {
	case brand.ShapeEllipse:
		b := s.Box
		cx := float64(b[0]+b[2]+1) / 2
		cy := float64(b[1]+b[3]+1) / 2
		rx := float64(b.Width())/2 - inset
		ry := float64(b.Height())/2 - inset
		dc.DrawEllipse(cx, cy, rx, ry)
	case brand.ShapeRectangle:
		b := s.Box
		dc.DrawRectangle(
			float64(b[0])+inset, float64(b[1])+inset,
			float64(b.Width())-2*inset, float64(b.Height())-2*inset,
		)
	case brand.ShapePolygon:
		for i, p := range s.Points {
			x, y := float64(p[0])+0.5, float64(p[1])+0.5
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	default:
		return
	}

	if s.Outline > 0 {
		dc.SetLineWidth(float64(s.Outline))
		dc.Stroke()
		return
	}
	dc.Fill()
}

// DrawTextCentered returns a copy of img with text drawn in face and c,
// centered horizontally on x with its top edge at y.
func DrawTextCentered(img image.Image, text string, face font.Face, c color.Color, x, y float64) *image.NRGBA {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawStringAnchored(text, x, y, 0.5, 1)
	return imaging.Clone(dc.Image())
}

// MeasureText returns the advance width and line height of text in face.
func MeasureText(text string, face font.Face) (w, h float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return dc.MeasureString(text)
}
