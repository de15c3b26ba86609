package config

import (
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("GKS_TEST_DIR", "/srv/plots")
	t.Setenv("GKS_TEST_TYPE", "pdf")
	t.Setenv("GKS_TEST_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no variables", "plain text", "plain text"},
		{"braced", "${GKS_TEST_DIR}/out.pdf", "/srv/plots/out.pdf"},
		{"simple", "$GKS_TEST_TYPE", "pdf"},
		{"unset becomes empty", "a${GKS_TEST_UNSET_12345}b", "ab"},
		{"unset with default", "${GKS_TEST_UNSET_12345:-svg}", "svg"},
		{"empty uses default", "${GKS_TEST_EMPTY:-png}", "png"},
		{"set ignores default", "${GKS_TEST_TYPE:-png}", "pdf"},
		{"empty default", "${GKS_TEST_UNSET_12345:-}", ""},
		{"adjacent", "${GKS_TEST_DIR}/${GKS_TEST_TYPE}", "/srv/plots/pdf"},
		{"digit after dollar is literal", "$5 and $", "$5 and $"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandEnvConfig(t *testing.T) {
	t.Setenv("GKS_TEST_DIR", "/tmp/out")
	t.Setenv("GKS_TEST_FLAG", "bundled")

	cfg := DefaultConfig()
	cfg.Output.Path = "${GKS_TEST_DIR}/plot.png"
	cfg.Output.Type = "${GKS_TEST_KIND:-svg}"
	cfg.ASF.LineWidth = "$GKS_TEST_FLAG"
	cfg.Logo.Text = "run ${GKS_TEST_RUN:-1}"
	cfg.Colors = map[string]string{"2": "${GKS_TEST_RED:-#ff0000}"}

	ExpandEnvConfig(&cfg)

	if cfg.Output.Path != "/tmp/out/plot.png" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
	if cfg.Output.Type != "svg" {
		t.Errorf("Output.Type = %q", cfg.Output.Type)
	}
	if cfg.ASF.LineWidth != "bundled" {
		t.Errorf("ASF.LineWidth = %q", cfg.ASF.LineWidth)
	}
	if cfg.Logo.Text != "run 1" {
		t.Errorf("Logo.Text = %q", cfg.Logo.Text)
	}
	if cfg.Colors["2"] != "#ff0000" {
		t.Errorf("Colors[2] = %q", cfg.Colors["2"])
	}
}

func TestExpandEnvConfigNil(t *testing.T) {
	// must not panic
	ExpandEnvConfig(nil)
}
