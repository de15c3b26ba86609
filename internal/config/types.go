// Package config provides configuration data structures for gkscairo.
// A configuration file is TOML; every section is optional and missing
// keys keep their defaults.
package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/opd-ai/go-gkscairo/internal/gks"
)

// Config represents the complete gkscairo configuration.
type Config struct {
	Output      OutputConfig       `toml:"output"`
	Logging     LoggingConfig      `toml:"logging"`
	ASF         ASFConfig          `toml:"asf"`
	LineBundles []LineBundleConfig `toml:"line_bundles"`
	// Colors overrides palette entries. Keys are colour indices, values
	// are CSS names, #hex or rgb()/rgba() strings.
	Colors map[string]string `toml:"colors"`
	Text   TextConfig        `toml:"text"`
	Logo   LogoConfig        `toml:"logo"`
	Lua    LuaConfig         `toml:"lua"`
}

// OutputConfig selects the device and page.
type OutputConfig struct {
	// Type is the device token: png, ps, eps, pdf or svg.
	Type string `toml:"type"`
	// Path is the output file. Empty derives it from the script name.
	Path string `toml:"path"`
	// Width and Height override the device size when both are positive.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Orientation is portrait or landscape.
	Orientation string `toml:"orientation"`
}

// LoggingConfig controls driver messages.
type LoggingConfig struct {
	// Mask is the XGKS log mask (1 info, 2 warning, 4 error). A negative
	// value defers to the XGKS_LOG environment variable.
	Mask int `toml:"mask"`
	// Format is text or json.
	Format string `toml:"format"`
}

// ASFConfig holds the polyline aspect source flags as "bundled" or
// "individual".
type ASFConfig struct {
	LineType   string `toml:"line_type"`
	LineWidth  string `toml:"line_width"`
	LineColour string `toml:"line_colour"`
}

// LineBundleConfig is one polyline bundle. Bundles are numbered from 1
// in file order.
type LineBundleConfig struct {
	Type   int     `toml:"type"`
	Width  float64 `toml:"width"`
	Colour int     `toml:"colour"`
}

// TextConfig holds text defaults.
type TextConfig struct {
	// FontSize is the initial character height in points on a 792 unit
	// page. Zero keeps the driver default.
	FontSize float64 `toml:"font_size"`
}

// LogoConfig controls the close time mark.
type LogoConfig struct {
	Enabled bool   `toml:"enabled"`
	Text    string `toml:"text"`
}

// LuaConfig holds script resource limits. Zero means unlimited.
type LuaConfig struct {
	CPULimit    uint64 `toml:"cpu_limit"`
	MemoryLimit uint64 `toml:"memory_limit"`
}

// LogMask returns the configured mask, or the XGKS_LOG mask when none is set.
func (c LoggingConfig) LogMask() gks.LogMask {
	if c.Mask < 0 {
		return gks.LogMaskFromEnv()
	}
	return gks.LogMask(c.Mask)
}

// ASFs converts the flags. Empty values are individual.
func (c ASFConfig) ASFs() (gks.ASFs, error) {
	var out gks.ASFs
	fields := []struct {
		name  string
		value string
		dst   *gks.ASF
	}{
		{"line_type", c.LineType, &out.LineType},
		{"line_width", c.LineWidth, &out.LineWidth},
		{"line_colour", c.LineColour, &out.LineColour},
	}
	for _, f := range fields {
		if f.value == "" {
			*f.dst = gks.Individual
			continue
		}
		a, ok := gks.ParseASF(f.value)
		if !ok {
			return gks.DefaultASFs(), fmt.Errorf("asf.%s: unknown flag %q", f.name, f.value)
		}
		*f.dst = a
	}
	return out, nil
}

// Bundles returns the polyline bundle table, or nil when no bundles
// are configured.
func (c *Config) Bundles() map[int]gks.LineBundle {
	if len(c.LineBundles) == 0 {
		return nil
	}
	out := make(map[int]gks.LineBundle, len(c.LineBundles))
	for i, b := range c.LineBundles {
		out[i+1] = gks.LineBundle{Type: b.Type, Width: b.Width, Colour: b.Colour}
	}
	return out
}

// Palette returns the default palette with the configured overrides.
// Indices are applied in ascending order.
func (c *Config) Palette() (*gks.Palette, error) {
	p := gks.DefaultPalette()
	keys := make([]string, 0, len(c.Colors))
	for k := range c.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		index, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("colors.%s: index is not a number", k)
		}
		if err := p.SetString(index, c.Colors[k]); err != nil {
			return nil, fmt.Errorf("colors.%s: %w", k, err)
		}
	}
	return p, nil
}

// ParseOrientation parses the output orientation.
func (c OutputConfig) ParseOrientation() (gks.Orientation, error) {
	return gks.ParseOrientation(c.Orientation)
}

// TextHeight converts FontSize to a normalized character height.
func (c TextConfig) TextHeight() float64 {
	if c.FontSize <= 0 {
		return 0
	}
	return c.FontSize / gks.PageLong
}

// Logo converts the logo settings.
func (c LogoConfig) Logo() gks.Logo {
	return gks.Logo{Enabled: c.Enabled, Text: c.Text}
}
