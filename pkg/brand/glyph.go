package brand

import "fmt"

// ShapeKind names a drawing primitive.
type ShapeKind string

const (
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeRectangle ShapeKind = "rectangle"
	ShapePolygon   ShapeKind = "polygon"
)

// Box is an inclusive pixel bounding box: x0, y0, x1, y1. The pixels at x1
// and y1 are covered, so a box of [1,1,14,14] spans 14x14 pixels.
type Box [4]int

// Width returns the number of pixel columns covered.
func (b Box) Width() int { return b[2] - b[0] + 1 }

// Height returns the number of pixel rows covered.
func (b Box) Height() int { return b[3] - b[1] + 1 }

// Shape is one primitive of a favicon glyph.
//
// Ellipses and rectangles use Box. Polygons use Points, each an x, y pair of
// pixel coordinates. Outline > 0 strokes the shape with that line width
// instead of filling it.
type Shape struct {
	Kind    ShapeKind `toml:"kind"`
	Box     Box       `toml:"box,omitempty"`
	Points  [][2]int  `toml:"points,omitempty"`
	Outline int       `toml:"outline,omitempty"`
}

// Glyph is the drawing for one favicon resolution.
type Glyph struct {
	Size   int     `toml:"size"`
	PNG    string  `toml:"png"`
	Shapes []Shape `toml:"shape"`
}

func (s Shape) validate(size int) error {
	switch s.Kind {
	case ShapeEllipse, ShapeRectangle:
		b := s.Box
		if b[2] < b[0] || b[3] < b[1] {
			return fmt.Errorf("%s box %v is inverted", s.Kind, b)
		}
		if b[0] < 0 || b[1] < 0 || b[2] >= size || b[3] >= size {
			return fmt.Errorf("%s box %v exceeds %dx%d canvas", s.Kind, b, size, size)
		}
	case ShapePolygon:
		if len(s.Points) < 3 {
			return fmt.Errorf("polygon needs at least 3 points, got %d", len(s.Points))
		}
		for _, p := range s.Points {
			if p[0] < 0 || p[1] < 0 || p[0] >= size || p[1] >= size {
				return fmt.Errorf("polygon point %v exceeds %dx%d canvas", p, size, size)
			}
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if s.Outline < 0 {
		return fmt.Errorf("outline width must not be negative, got %d", s.Outline)
	}
	return nil
}
