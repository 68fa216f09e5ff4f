// Package fonts provides the font faces used for text on generated assets.
//
// The Go font family ships inside golang.org/x/image as TTF byte slices, so
// text rendering needs no system fonts and produces the same pixels on every
// machine.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects a face from the embedded family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// String returns the weight name used in configuration files.
func (w Weight) String() string {
	switch w {
	case Bold:
		return "bold"
	default:
		return "regular"
	}
}

// ParseWeight maps a configuration value to a Weight.
func ParseWeight(s string) (Weight, error) {
	switch s {
	case "", "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	}
	return Regular, fmt.Errorf("unknown font weight %q (must be regular or bold)", s)
}

// Parsed fonts are cached after first use.
var (
	parsed   = map[Weight]*truetype.Font{}
	parsedMu sync.Mutex
)

func ttf(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

func load(w Weight) (*truetype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[w]; ok {
		return f, nil
	}
	f, err := truetype.Parse(ttf(w))
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", w, err)
	}
	parsed[w] = f
	return f, nil
}

// Face returns a face of the given weight at size points (72 DPI, so points
// equal pixels).
func Face(w Weight, size float64) (font.Face, error) {
	f, err := load(w)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// FontFamily is the CSS font-family name matching the rendered text.
const FontFamily = "Go"
