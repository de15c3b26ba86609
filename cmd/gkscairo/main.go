// Package main provides the gkscairo command, which renders a GKS
// metafile script to PNG, PostScript, PDF or SVG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-gkscairo/internal/profiling"
	"github.com/opd-ai/go-gkscairo/pkg/gkscairo"
)

// Version is the current version of gkscairo.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

const usage = "Usage: gkscairo [flags] <script.lua>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gkscairo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "Path to TOML configuration file")
	output := fs.String("o", "", "Output file (default: script name with the device extension)")
	device := fs.String("T", "", "Output type: png, ps, eps, pdf or svg")
	orientation := fs.String("orient", "", "Page orientation: portrait or landscape")
	width := fs.Float64("W", 0, "Device width in device units (with -H)")
	height := fs.Float64("H", 0, "Device height in device units (with -W)")
	watch := fs.Bool("watch", false, "Re-render when the script or configuration changes")
	debug := fs.Bool("debug", false, "Log at debug level with source locations")
	version := fs.Bool("v", false, "Print version and exit")
	cpuProfile := fs.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := fs.String("memprofile", "", "Write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "gkscairo version %s\n", Version)
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "No metafile script specified.")
		fmt.Fprintln(stderr, usage)
		return 2
	}
	script := fs.Arg(0)

	if _, err := os.Stat(script); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Script not found: %s\n", script)
		} else {
			fmt.Fprintf(stderr, "Error accessing script %s: %v\n", script, err)
		}
		return 1
	}

	profConfig := profiling.Config{CPUPath: *cpuProfile, HeapPath: *memProfile}
	if profConfig.Enabled() {
		session, err := profiling.Start(profConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	opts := gkscairo.DefaultOptions()
	opts.ConfigPath = *configPath
	opts.OutputPath = *output
	opts.Device = *device
	opts.Orientation = *orientation
	opts.Width, opts.Height = *width, *height
	opts.Metrics = gkscairo.NewMetrics()
	opts.Metrics.RegisterExpvar()
	if *debug {
		opts.Logger = gkscairo.DebugLogger()
	}

	if !*watch {
		if err := gkscairo.Render(script, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runWatch(ctx, script, opts, stdout, stderr)
}

// runWatch renders until ctx is cancelled. Render failures are reported
// and watching continues.
func runWatch(ctx context.Context, script string, opts gkscairo.Options, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "gkscairo %s watching %s\n", Version, script)
	err := gkscairo.Watch(ctx, script, opts, func(err error) {
		if err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	})
	if err != nil {
		var ce *gkscairo.CategorizedError
		if errors.As(err, &ce) && ce.Category == gkscairo.ErrorCategoryIO {
			fmt.Fprintf(stderr, "Cannot watch %s: %v\n", script, ce.Err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	s := opts.Metrics.Snapshot()
	fmt.Fprintf(stdout, "Shutting down after %d renders (%d failed)\n", s.Renders, s.Failures)
	return 0
}
