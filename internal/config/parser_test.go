package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const fullConfig = `
[output]
type = "pdf"
path = "plot.pdf"
width = 842
height = 595
orientation = "landscape"

[logging]
mask = 6
format = "json"

[asf]
line_type = "bundled"
line_width = "individual"
line_colour = "bundled"

[[line_bundles]]
type = 1
width = 2.5
colour = 2

[[line_bundles]]
type = -3
width = 1
colour = 4

[colors]
1 = "navy"
16 = "#336699"

[text]
font_size = 12

[logo]
enabled = false
text = "lab"

[lua]
cpu_limit = 1000
memory_limit = 2048
`

func TestParseFullConfig(t *testing.T) {
	cfg, err := NewParser().Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := OutputConfig{Type: "pdf", Path: "plot.pdf", Width: 842, Height: 595, Orientation: "landscape"}
	if cfg.Output != want {
		t.Errorf("Output = %+v, want %+v", cfg.Output, want)
	}
	if cfg.Logging.Mask != 6 || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.ASF.LineType != "bundled" || cfg.ASF.LineColour != "bundled" {
		t.Errorf("ASF = %+v", cfg.ASF)
	}
	if len(cfg.LineBundles) != 2 || cfg.LineBundles[1].Type != -3 || cfg.LineBundles[0].Width != 2.5 {
		t.Errorf("LineBundles = %+v", cfg.LineBundles)
	}
	if cfg.Colors["1"] != "navy" || cfg.Colors["16"] != "#336699" {
		t.Errorf("Colors = %v", cfg.Colors)
	}
	if cfg.Text.FontSize != 12 {
		t.Errorf("Text.FontSize = %v", cfg.Text.FontSize)
	}
	if cfg.Logo.Enabled || cfg.Logo.Text != "lab" {
		t.Errorf("Logo = %+v", cfg.Logo)
	}
	if cfg.Lua.CPULimit != 1000 || cfg.Lua.MemoryLimit != 2048 {
		t.Errorf("Lua = %+v", cfg.Lua)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("full config does not validate: %v", err)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := NewParser().Parse([]byte("[output]\ntype = \"svg\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Output.Type != "svg" {
		t.Errorf("Output.Type = %q", cfg.Output.Type)
	}
	if cfg.Output.Orientation != def.Output.Orientation {
		t.Errorf("Orientation = %q, want default", cfg.Output.Orientation)
	}
	if cfg.Logging.Mask != -1 || !cfg.Logo.Enabled || cfg.Lua != def.Lua {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		mention string
	}{
		{"syntax", "[output\ntype = 1", "line 1"},
		{"type mismatch", "[output]\nwidth = \"wide\"", ""},
		{"unknown key", "[output]\ncolour = \"red\"", "unknown keys"},
		{"unknown section", "[window]\nwidth = 1", "unknown keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tt.content))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
			if tt.mention != "" && !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("err = %v, want it to mention %q", err, tt.mention)
			}
		})
	}
}

func TestParseLenient(t *testing.T) {
	p := &Parser{}
	cfg, err := p.Parse([]byte("[window]\nwidth = 1\n[output]\npath = \"$HOME\"\n"))
	if err != nil {
		t.Fatalf("lenient parser rejected unknown keys: %v", err)
	}
	if cfg.Output.Path != "$HOME" {
		t.Errorf("Path = %q, want it unexpanded", cfg.Output.Path)
	}
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("GKS_TEST_OUT", "/data")
	cfg, err := NewParser().Parse([]byte("[output]\npath = \"${GKS_TEST_OUT}/a.svg\"\ntype = \"${GKS_TEST_TYPE:-svg}\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Path != "/data/a.svg" || cfg.Output.Type != "svg" {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestParseFileAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gkscairo.toml")
	if err := os.WriteFile(path, []byte(fullConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cfg.Output.Type != "pdf" {
		t.Errorf("Output.Type = %q", cfg.Output.Type)
	}

	if _, err := NewParser().ParseFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for a missing file")
	}

	fsys := fstest.MapFS{"conf/gkscairo.toml": {Data: []byte(fullConfig)}}
	cfg, err = NewParser().ParseFromFS(fsys, "conf/gkscairo.toml")
	if err != nil {
		t.Fatalf("ParseFromFS: %v", err)
	}
	if cfg.Logo.Text != "lab" {
		t.Errorf("Logo.Text = %q", cfg.Logo.Text)
	}

	cfg, err = NewParser().ParseReader(strings.NewReader("[text]\nfont_size = 9.5"))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if cfg.Text.FontSize != 9.5 {
		t.Errorf("FontSize = %v", cfg.Text.FontSize)
	}
}
