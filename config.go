package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	appID       = "com.github.stewi1014.mandelview"
	windowTitle = "Mandelview"

	backendGTK  = "gtk"
	backendGLFW = "glfw"

	defaultWidth       = 1200
	defaultHeight      = 800
	defaultPaletteSize = 256
)

type Config struct {
	Backend     string
	Debug       bool
	PaletteSize int

	// Width and Height of the window. Zero picks a size from the primary
	// monitor.
	Width  int
	Height int
}

// parseFlags parses args, which start with the program name. The remaining
// arguments are returned with the program name in front, ready for gtk.Init.
func parseFlags(args []string, output io.Writer) (Config, []string, error) {
	cfg := Config{}
	name := "mandelview"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Backend, "backend", backendGTK, "window system to use: gtk or glfw")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging and GL debug output")
	fs.IntVar(&cfg.PaletteSize, "palette", defaultPaletteSize, "number of palette entries")
	fs.IntVar(&cfg.Width, "width", 0, "window width, 0 for 60% of the monitor")
	fs.IntVar(&cfg.Height, "height", 0, "window height, 0 for 60% of the monitor")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	switch cfg.Backend {
	case backendGTK, backendGLFW:
	default:
		return cfg, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.PaletteSize < 2 {
		return cfg, nil, fmt.Errorf("palette needs at least 2 entries, got %v", cfg.PaletteSize)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return cfg, nil, fmt.Errorf("invalid window size %vx%v", cfg.Width, cfg.Height)
	}

	return cfg, append([]string{name}, fs.Args()...), nil
}

// windowSize returns the configured size, or fallback scaled to 60% when
// none was given.
func (c Config) windowSize(monitorWidth, monitorHeight int) (width, height int) {
	if c.Width > 0 && c.Height > 0 {
		return c.Width, c.Height
	}
	if monitorWidth <= 0 || monitorHeight <= 0 {
		return defaultWidth, defaultHeight
	}
	return int(float32(monitorWidth) * .6), int(float32(monitorHeight) * .6)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
