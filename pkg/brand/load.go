package brand

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/fonts"
)

// Load reads a TOML file and overlays it on Default. Keys absent from the
// file keep their default values; arrays of tables (glyphs, icon sizes)
// replace the defaults wholesale. Unknown keys are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode overlays TOML read from r on Default. The name is used in messages.
func Decode(r io.Reader, name string) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", name)
	}

	// The decoder merges into existing slice elements, so defaults for
	// arrays the file defines are cleared first.
	var raw map[string]any
	probe, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	cfg := Default()
	if probe.IsDefined("favicon", "glyph") {
		cfg.Favicon.Glyphs = nil
	}
	if probe.IsDefined("icons", "size") {
		cfg.Icons.Sizes = nil
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(cfg)
}

// Validate checks every path, size and shape. The first problem found is
// returned with code INVALID_CONFIG.
func (c Config) Validate() error {
	if err := c.validate(); err != nil {
		if errors.GetCode(err) == errors.ErrCodeInvalidConfig {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	return nil
}

func (c Config) validate() error {
	for _, p := range []struct{ key, path string }{
		{"inputs.icon", c.Inputs.Icon},
		{"inputs.logo", c.Inputs.Logo},
		{"favicon.ico", c.Favicon.ICO},
		{"touch_icon.path", c.TouchIcon.Path},
		{"social.path", c.Social.Path},
	} {
		if err := errors.ValidatePath(p.path); err != nil {
			return fmt.Errorf("%s: %w", p.key, err)
		}
	}

	if len(c.Favicon.Glyphs) == 0 {
		return fmt.Errorf("favicon: at least one glyph is required")
	}
	seen := make(map[int]bool)
	for _, g := range c.Favicon.Glyphs {
		// ICO directory entries store dimensions in one byte, 0 meaning 256.
		if g.Size < 1 || g.Size > 256 {
			return fmt.Errorf("favicon glyph size %d: must be between 1 and 256", g.Size)
		}
		if seen[g.Size] {
			return fmt.Errorf("favicon glyph size %d: duplicate", g.Size)
		}
		seen[g.Size] = true
		if err := errors.ValidatePath(g.PNG); err != nil {
			return fmt.Errorf("favicon glyph %d png: %w", g.Size, err)
		}
		for i, s := range g.Shapes {
			if err := s.validate(g.Size); err != nil {
				return fmt.Errorf("favicon glyph %d shape %d: %w", g.Size, i, err)
			}
		}
	}

	if err := errors.ValidateSize(c.TouchIcon.Size, c.TouchIcon.Size); err != nil {
		return fmt.Errorf("touch_icon.size: %w", err)
	}

	s := c.Social
	if err := errors.ValidateSize(s.Width, s.Height); err != nil {
		return fmt.Errorf("social canvas: %w", err)
	}
	if err := errors.ValidateSize(s.LogoWidth, s.LogoHeight); err != nil {
		return fmt.Errorf("social logo: %w", err)
	}
	if s.Padding < 0 {
		return fmt.Errorf("social.padding must not be negative, got %d", s.Padding)
	}
	x, y := s.LogoOrigin()
	if x < 0 || y < 0 || x+s.LogoWidth > s.Width || y+s.LogoHeight > s.Height {
		return fmt.Errorf("social logo %dx%d at (%d,%d) does not fit %dx%d canvas",
			s.LogoWidth, s.LogoHeight, x, y, s.Width, s.Height)
	}
	if s.Tagline != "" {
		if s.TaglineSize <= 0 {
			return fmt.Errorf("social.tagline_size must be positive, got %g", s.TaglineSize)
		}
		if _, err := fonts.ParseWeight(s.TaglineWeight); err != nil {
			return fmt.Errorf("social.tagline_weight: %w", err)
		}
	}

	if len(c.Icons.Sizes) == 0 {
		return fmt.Errorf("icons: at least one size is required")
	}
	names := make(map[string]bool)
	for _, is := range c.Icons.Sizes {
		if err := errors.ValidateSize(is.Size, is.Size); err != nil {
			return fmt.Errorf("icon %s: %w", is.Filename, err)
		}
		if err := errors.ValidateFilename(is.Filename); err != nil {
			return fmt.Errorf("icon size %d: %w", is.Size, err)
		}
		if names[is.Filename] {
			return fmt.Errorf("icon %s: duplicate filename", is.Filename)
		}
		names[is.Filename] = true
	}
	return nil
}

// Icon returns the configured icon size whose filename is name.
func (c Config) Icon(name string) (IconSize, bool) {
	for _, is := range c.Icons.Sizes {
		if is.Filename == name {
			return is, true
		}
	}
	return IconSize{}, false
}
