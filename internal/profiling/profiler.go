// Package profiling writes pprof CPU and heap profiles of a gkscairo run.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// ErrNotActive is returned by Stop on a session that already ended.
var ErrNotActive = errors.New("profiling session is not active")

// Config names the profile files. Empty paths disable that profile.
type Config struct {
	CPUPath  string
	HeapPath string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPUPath != "" || c.HeapPath != ""
}

// Session is one profiled run, from Start to Stop.
type Session struct {
	mu     sync.Mutex
	config Config
	cpu    *os.File
	active bool
}

// Start begins CPU profiling when a CPU path is configured. The heap
// profile is taken by Stop.
func Start(config Config) (*Session, error) {
	s := &Session{config: config, active: true}
	if config.CPUPath == "" {
		return s, nil
	}

	f, err := os.Create(config.CPUPath)
	if err != nil {
		return nil, fmt.Errorf("creating CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	s.cpu = f
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotActive
	}
	s.active = false

	var errs []error
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing CPU profile: %w", err))
		}
		s.cpu = nil
	}
	if s.config.HeapPath != "" {
		if err := WriteHeap(s.config.HeapPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Active reports whether Stop has not been called yet.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// WriteHeap writes a heap profile to path after a garbage collection.
func WriteHeap(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heap profile: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("writing heap profile: %w", err)
	}
	return nil
}
