package assets

import (
	"context"
	"image"

	"github.com/matzehuels/brandkit/pkg/canvas"
	"github.com/matzehuels/brandkit/pkg/fonts"
)

// favicon draws every glyph, packs them into one ICO and also emits each as
// a standalone PNG.
func (g *Generator) favicon() ([]Artifact, error) {
	cfg := g.cfg.Favicon
	accent := g.cfg.Palette.Accent

	imgs := make([]image.Image, 0, len(cfg.Glyphs))
	pngs := make([]Artifact, 0, len(cfg.Glyphs))
	for _, glyph := range cfg.Glyphs {
		img := canvas.DrawGlyph(glyph.Size, glyph.Shapes, accent)
		data, err := canvas.EncodePNG(img, cfg.Optimize)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
		pngs = append(pngs, Artifact{
			Path:   glyph.PNG,
			Data:   data,
			Width:  glyph.Size,
			Height: glyph.Size,
			Format: FormatPNG,
		})
	}

	ico, err := canvas.EncodeICO(imgs...)
	if err != nil {
		return nil, err
	}
	largest := 0
	for _, glyph := range cfg.Glyphs {
		largest = max(largest, glyph.Size)
	}
	return append([]Artifact{{
		Path:   cfg.ICO,
		Data:   ico,
		Width:  largest,
		Height: largest,
		Format: FormatICO,
	}}, pngs...), nil
}

func (g *Generator) touchIcon(ctx context.Context) ([]Artifact, error) {
	cfg := g.cfg.TouchIcon
	a, err := g.flatIcon(ctx, cfg.Size, cfg.Path, cfg.Optimize)
	if err != nil {
		return nil, err
	}
	return []Artifact{a}, nil
}

// social composes the logo over a contrast panel on the tinted canvas.
func (g *Generator) social(ctx context.Context) ([]Artifact, error) {
	cfg := g.cfg.Social
	pal := g.cfg.Palette

	logo, err := g.raster.RasterizeFile(ctx, g.cfg.Inputs.Logo, cfg.LogoWidth, cfg.LogoHeight)
	if err != nil {
		return nil, err
	}

	img := canvas.New(cfg.Width, cfg.Height, pal.Tint)
	canvas.FillRect(img, cfg.PanelBox(), pal.Panel)
	x, y := cfg.LogoOrigin()
	canvas.Paste(img, logo, image.Pt(x, y))

	if cfg.Tagline != "" {
		img, err = g.tagline(img)
		if err != nil {
			return nil, err
		}
	}

	data, err := canvas.EncodePNG(img, cfg.Optimize)
	if err != nil {
		return nil, err
	}
	return []Artifact{{
		Path:   cfg.Path,
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: FormatPNG,
	}}, nil
}

// tagline draws the configured text centered below the contrast panel.
func (g *Generator) tagline(img *image.NRGBA) (*image.NRGBA, error) {
	cfg := g.cfg.Social
	weight, err := fonts.ParseWeight(cfg.TaglineWeight)
	if err != nil {
		return nil, err
	}
	face, err := fonts.Face(weight, cfg.TaglineSize)
	if err != nil {
		return nil, err
	}

	panel := cfg.PanelBox()
	top := float64(panel[3] + 1 + cfg.Padding)
	if w, h := canvas.MeasureText(cfg.Tagline, face); w > float64(cfg.Width) || top+h > float64(cfg.Height) {
		g.logger.Warn("tagline does not fit the preview image", "width", w, "height", h)
	}
	return canvas.DrawTextCentered(img, cfg.Tagline, face, g.cfg.Palette.Text, float64(cfg.Width)/2, top), nil
}

func (g *Generator) icons(ctx context.Context) ([]Artifact, error) {
	cfg := g.cfg.Icons
	out := make([]Artifact, 0, len(cfg.Sizes))
	for _, is := range cfg.Sizes {
		a, err := g.flatIcon(ctx, is.Size, is.Filename, cfg.Optimize)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// flatIcon rasterizes the square mark at size and flattens it onto the
// background color.
func (g *Generator) flatIcon(ctx context.Context, size int, path string, optimize bool) (Artifact, error) {
	raw, err := g.raster.RasterizeFile(ctx, g.cfg.Inputs.Icon, size, size)
	if err != nil {
		return Artifact{}, err
	}
	data, err := canvas.EncodePNG(canvas.Flatten(raw, g.cfg.Palette.Background), optimize)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Data: data, Width: size, Height: size, Format: FormatPNG}, nil
}
