package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/stewi1014/mandelview/colormap"
	"github.com/stewi1014/mandelview/programs"
)

func init() {
	// GTK and GLFW both need to stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg, args, err := parseFlags(os.Args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Debug)
	slog.SetDefault(logger)

	signalContext, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mainContext, mainQuit := context.WithCancelCause(signalContext)
	app := &App{
		cfg:     cfg,
		log:     logger,
		program: programs.GetProgram(0),
		palette: colormap.DefaultPalette(cfg.PaletteSize),
		quit:    mainQuit,
	}

	switch cfg.Backend {
	case backendGLFW:
		err = glfwMain(mainContext, app)
	default:
		err = gtkMain(mainContext, app, args)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

// App is what both window systems share.
type App struct {
	cfg     Config
	log     *slog.Logger
	program programs.Program
	palette colormap.Palette
	quit    context.CancelCauseFunc
}
