package config

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-gkscairo/internal/gks"
)

func TestLogMask(t *testing.T) {
	t.Setenv(gks.LogEnv, "3")
	if got := (LoggingConfig{Mask: -1}).LogMask(); got != gks.LogInfo|gks.LogWarn {
		t.Errorf("env mask = %v, want 3", got)
	}
	if got := (LoggingConfig{Mask: 4}).LogMask(); got != gks.LogError {
		t.Errorf("configured mask = %v, want 4", got)
	}
}

func TestASFs(t *testing.T) {
	got, err := ASFConfig{LineType: "bundled", LineColour: "individual"}.ASFs()
	if err != nil {
		t.Fatal(err)
	}
	want := gks.ASFs{LineType: gks.Bundled, LineWidth: gks.Individual, LineColour: gks.Individual}
	if got != want {
		t.Errorf("ASFs() = %+v, want %+v", got, want)
	}

	if _, err := (ASFConfig{LineWidth: "both"}).ASFs(); err == nil {
		t.Error("expected error for an unknown flag")
	}
}

func TestBundles(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bundles() != nil {
		t.Error("no configured bundles should give nil")
	}
	cfg.LineBundles = []LineBundleConfig{{Type: 2, Width: 3, Colour: 4}, {Type: 1, Width: 1, Colour: 1}}
	b := cfg.Bundles()
	if len(b) != 2 {
		t.Fatalf("Bundles() = %v", b)
	}
	if b[1] != (gks.LineBundle{Type: 2, Width: 3, Colour: 4}) {
		t.Errorf("bundle 1 = %+v", b[1])
	}
}

func TestPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = map[string]string{"1": "red", "20": "#00ff00"}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Color(1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("colour 1 = %v, want red", got)
	}
	if got := p.Color(20); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("colour 20 = %v, want green", got)
	}
	if got := p.Color(0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("colour 0 = %v, want the default white", got)
	}

	cfg.Colors = map[string]string{"x": "red"}
	if _, err := cfg.Palette(); err == nil {
		t.Error("expected error for a non-numeric index")
	}
	cfg.Colors = map[string]string{"2": "bogus"}
	if _, err := cfg.Palette(); err == nil {
		t.Error("expected error for an unparsable colour")
	}
}

func TestConversions(t *testing.T) {
	if h := (TextConfig{FontSize: 7.92}).TextHeight(); h < 0.00999 || h > 0.01001 {
		t.Errorf("TextHeight = %v, want 0.01", h)
	}
	if h := (TextConfig{}).TextHeight(); h != 0 {
		t.Errorf("unset TextHeight = %v, want 0", h)
	}
	if l := (LogoConfig{Enabled: true, Text: "x"}).Logo(); !l.Enabled || l.Text != "x" {
		t.Errorf("Logo = %+v", l)
	}
	o, err := OutputConfig{Orientation: "landscape"}.ParseOrientation()
	if err != nil || o != gks.Landscape {
		t.Errorf("ParseOrientation = %v, %v", o, err)
	}
}
