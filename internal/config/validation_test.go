package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Errorf("default config invalid: %v", result.Error())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("default config has warnings: %v", result.Warnings)
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
		isWarning bool
	}{
		{"unknown device", func(c *Config) { c.Output.Type = "gif" }, "output.type", false},
		{"bad orientation", func(c *Config) { c.Output.Orientation = "sideways" }, "output.orientation", false},
		{"negative width", func(c *Config) { c.Output.Width = -1; c.Output.Height = 10 }, "output.width", false},
		{"negative height", func(c *Config) { c.Output.Width = 10; c.Output.Height = -1 }, "output.height", false},
		{"width without height", func(c *Config) { c.Output.Width = 100 }, "output.width", true},
		{"huge page", func(c *Config) { c.Output.Width = 1e6; c.Output.Height = 10 }, "output.width", true},
		{"mask too large", func(c *Config) { c.Logging.Mask = 8 }, "logging.mask", false},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format", false},
		{"asf", func(c *Config) { c.ASF.LineColour = "sometimes" }, "asf.line_colour", false},
		{"bundle type", func(c *Config) {
			c.LineBundles = []LineBundleConfig{{Type: 9, Width: 1, Colour: 1}}
		}, "line_bundles[0].type", true},
		{"bundle width", func(c *Config) {
			c.LineBundles = []LineBundleConfig{{Type: 1, Width: 0, Colour: 1}}
		}, "line_bundles[0].width", false},
		{"bundle colour", func(c *Config) {
			c.LineBundles = []LineBundleConfig{{Type: 1, Width: 1, Colour: 256}}
		}, "line_bundles[0].colour", false},
		{"colour index", func(c *Config) { c.Colors = map[string]string{"red": "#f00"} }, "colors.red", false},
		{"colour index range", func(c *Config) { c.Colors = map[string]string{"300": "#f00"} }, "colors.300", false},
		{"colour value", func(c *Config) { c.Colors = map[string]string{"3": "notacolour"} }, "colors.3", false},
		{"font size", func(c *Config) { c.Text.FontSize = -2 }, "text.font_size", false},
		{"huge font", func(c *Config) { c.Text.FontSize = 1000 }, "text.font_size", true},
		{"no cpu limit", func(c *Config) { c.Lua.CPULimit = 0 }, "lua.cpu_limit", true},
		{"no memory limit", func(c *Config) { c.Lua.MemoryLimit = 0 }, "lua.memory_limit", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			result := NewValidator().Validate(&cfg)

			list := result.Errors
			if tt.isWarning {
				list = result.Warnings
				if !result.IsValid() {
					t.Errorf("unexpected errors: %v", result.Errors)
				}
			}
			found := false
			for _, e := range list {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no entry for %s in errors %v warnings %v", tt.wantField, result.Errors, result.Warnings)
			}
		})
	}
}

func TestValidateStrictPromotesWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lua.CPULimit = 0

	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("ValidateConfig: %v", err)
	}
	err := ValidateConfigStrict(&cfg)
	if err == nil || !strings.Contains(err.Error(), "lua.cpu_limit") {
		t.Errorf("ValidateConfigStrict = %v, want a lua.cpu_limit error", err)
	}
}

func TestValidateNil(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrNilConfig) {
		t.Errorf("ValidateConfig(nil) = %v", err)
	}
	if err := ValidateConfigStrict(nil); !errors.Is(err, ErrNilConfig) {
		t.Errorf("ValidateConfigStrict(nil) = %v", err)
	}
}

func TestValidationResult(t *testing.T) {
	var r ValidationResult
	if r.Error() != nil {
		t.Error("empty result has an error")
	}
	r.AddError("a", "bad")
	r.AddWarning("b", "odd")
	other := &ValidationResult{}
	other.AddError("c", "worse")
	r.Merge(other)
	r.Merge(nil)

	if len(r.Errors) != 2 || len(r.Warnings) != 1 {
		t.Fatalf("result = %+v", r)
	}
	if got := r.Error().Error(); got != "validation failed: a: bad; c: worse" {
		t.Errorf("Error() = %q", got)
	}
}
