package brand

// Stock brand colors.
var (
	Accent    = RGB(65, 105, 225)  // #4169E1
	White     = RGB(255, 255, 255) // #FFFFFF
	LightGray = RGB(240, 240, 240) // #F0F0F0
	TextGray  = RGB(102, 102, 102) // #666666
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "brandkit.toml"

// Default returns the stock configuration. Paths are relative to the working
// directory; the three shared assets land one level up.
func Default() Config {
	return Config{
		Palette: Palette{
			Accent:     Accent,
			Background: White,
			Tint:       LightGray,
			Panel:      White,
			Text:       TextGray,
		},
		Inputs: Inputs{
			Icon: "logo-icon.svg",
			Logo: "logo.svg",
		},
		Favicon: FaviconConfig{
			ICO:    "../favicon.ico",
			Glyphs: DefaultGlyphs(),
		},
		TouchIcon: TouchIconConfig{
			Size: 180,
			Path: "../apple-touch-icon.png",
		},
		Social: SocialConfig{
			Path:          "../og-image.png",
			Width:         1200,
			Height:        630,
			LogoWidth:     480,
			LogoHeight:    120,
			OffsetY:       -50,
			Padding:       40,
			Optimize:      true,
			TaglineSize:   32,
			TaglineWeight: "regular",
		},
		Icons: IconsConfig{
			Sizes: []IconSize{
				{192, "icon-192x192.png"},
				{512, "icon-512x512.png"},
				{72, "icon-72x72.png"},
				{144, "icon-144x144.png"},
			},
			Optimize: true,
		},
	}
}

// DefaultGlyphs returns the circular avatar drawn at 16 and 32 pixels.
func DefaultGlyphs() []Glyph {
	return []Glyph{
		{
			Size: 16,
			PNG:  "favicon-16x16.png",
			Shapes: []Shape{
				{Kind: ShapeEllipse, Box: Box{1, 1, 14, 14}, Outline: 1},
				{Kind: ShapeEllipse, Box: Box{6, 4, 9, 7}},
				{Kind: ShapeRectangle, Box: Box{5, 8, 10, 12}},
			},
		},
		{
			Size: 32,
			PNG:  "favicon-32x32.png",
			Shapes: []Shape{
				{Kind: ShapeEllipse, Box: Box{2, 2, 29, 29}, Outline: 2},
				{Kind: ShapeEllipse, Box: Box{12, 8, 19, 15}},
				{Kind: ShapePolygon, Points: [][2]int{
					{10, 20}, {10, 16}, {12, 14}, {19, 14}, {21, 16}, {21, 20},
				}},
				{Kind: ShapeEllipse, Box: Box{6, 14, 8, 16}},
				{Kind: ShapeEllipse, Box: Box{23, 14, 25, 16}},
			},
		},
	}
}
