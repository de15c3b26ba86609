package profiling

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   bool
	}{
		{"empty", Config{}, false},
		{"cpu", Config{CPUPath: "cpu.prof"}, true},
		{"heap", Config{HeapPath: "heap.prof"}, true},
		{"both", Config{CPUPath: "cpu.prof", HeapPath: "heap.prof"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	config := Config{
		CPUPath:  filepath.Join(dir, "cpu.prof"),
		HeapPath: filepath.Join(dir, "heap.prof"),
	}

	s, err := Start(config)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !s.Active() {
		t.Error("session should be active after Start()")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if s.Active() {
		t.Error("session should not be active after Stop()")
	}

	for _, path := range []string{config.CPUPath, config.HeapPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile %s not written: %v", filepath.Base(path), err)
		}
	}
}

func TestStopTwice(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := s.Stop(); !errors.Is(err, ErrNotActive) {
		t.Errorf("second Stop() = %v, want ErrNotActive", err)
	}
}

func TestStartInvalidPath(t *testing.T) {
	_, err := Start(Config{CPUPath: filepath.Join(t.TempDir(), "absent", "cpu.prof")})
	if err == nil {
		t.Error("Start() should fail for an unwritable CPU profile path")
	}
}

func TestWriteHeapInvalidPath(t *testing.T) {
	if err := WriteHeap(filepath.Join(t.TempDir(), "absent", "heap.prof")); err == nil {
		t.Error("WriteHeap() should fail for an unwritable path")
	}
}

func TestStopReportsHeapError(t *testing.T) {
	s, err := Start(Config{HeapPath: filepath.Join(t.TempDir(), "absent", "heap.prof")})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Stop(); err == nil {
		t.Error("Stop() should report the heap profile error")
	}
}
