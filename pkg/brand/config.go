// Package brand holds the configuration of a brand asset run: the palette,
// where the vector logos live, where every generated file goes, and the
// geometry of each asset.
//
// A Config is plain data. Default returns the stock layout; Load overlays a
// TOML file on top of it; Validate checks the result before any job runs.
package brand

import "path/filepath"

// Config is the complete configuration of one generator run.
type Config struct {
	// Name is the application name published in the web manifest.
	Name      string          `toml:"name"`
	Palette   Palette         `toml:"palette"`
	Inputs    Inputs          `toml:"inputs"`
	Favicon   FaviconConfig   `toml:"favicon"`
	TouchIcon TouchIconConfig `toml:"touch_icon"`
	Social    SocialConfig    `toml:"social"`
	Icons     IconsConfig     `toml:"icons"`
}

// Palette is the set of brand colors shared by all jobs.
type Palette struct {
	Accent     Color `toml:"accent"`     // favicon glyph
	Background Color `toml:"background"` // flattened icon backgrounds
	Tint       Color `toml:"tint"`       // social preview canvas
	Panel      Color `toml:"panel"`      // contrast panel behind the social logo
	Text       Color `toml:"text"`       // tagline
}

// Inputs names the vector sources, relative to the working directory.
type Inputs struct {
	Icon string `toml:"icon"` // square mark, e.g. logo-icon.svg
	Logo string `toml:"logo"` // wide wordmark, e.g. logo.svg
}

// FaviconConfig describes the multi-resolution favicon.
type FaviconConfig struct {
	ICO      string  `toml:"ico"`
	Glyphs   []Glyph `toml:"glyph"`
	Optimize bool    `toml:"optimize"`
}

// TouchIconConfig describes the Apple touch icon.
type TouchIconConfig struct {
	Size     int    `toml:"size"`
	Path     string `toml:"path"`
	Optimize bool   `toml:"optimize"`
}

// SocialConfig describes the Open Graph preview image.
type SocialConfig struct {
	Path       string `toml:"path"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	LogoWidth  int    `toml:"logo_width"`
	LogoHeight int    `toml:"logo_height"`
	// OffsetY shifts the logo vertically from the centered position.
	OffsetY int `toml:"offset_y"`
	// Padding is the margin of the contrast panel around the logo.
	Padding  int  `toml:"padding"`
	Optimize bool `toml:"optimize"`

	// Tagline is drawn below the panel when non-empty.
	Tagline       string  `toml:"tagline"`
	TaglineSize   float64 `toml:"tagline_size"`
	TaglineWeight string  `toml:"tagline_weight"`
}

// IconsConfig describes the fixed-size platform icons.
type IconsConfig struct {
	Sizes    []IconSize `toml:"size"`
	Optimize bool       `toml:"optimize"`
}

// IconSize pairs a square pixel size with its output filename.
type IconSize struct {
	Size     int    `toml:"size"`
	Filename string `toml:"filename"`
}

// LogoOrigin returns the top-left corner of the logo on the social canvas.
func (s SocialConfig) LogoOrigin() (x, y int) {
	x = (s.Width - s.LogoWidth) / 2
	y = (s.Height-s.LogoHeight)/2 + s.OffsetY
	return x, y
}

// PanelBox returns the inclusive pixel box of the contrast panel.
func (s SocialConfig) PanelBox() Box {
	x, y := s.LogoOrigin()
	return Box{
		x - s.Padding,
		y - s.Padding,
		x + s.LogoWidth + s.Padding,
		y + s.LogoHeight + s.Padding,
	}
}

// InDir returns a copy of c whose relative input paths are resolved against
// dir. Output paths are left alone; they are relative to the sink.
func (c Config) InDir(dir string) Config {
	if dir == "" || dir == "." {
		return c
	}
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Inputs.Icon = resolve(c.Inputs.Icon)
	c.Inputs.Logo = resolve(c.Inputs.Logo)
	return c
}
