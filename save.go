package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/stewi1014/mandelview/colormap"
	"github.com/stewi1014/mandelview/programs"
	"github.com/stewi1014/mandelview/view"
)

const iconSize = 64

type SaveOptions struct {
	Name          string
	Width, Height int
}

func exportName() string {
	return fmt.Sprintf("mandelbrot-%d.png", time.Now().Unix())
}

// save renders state on the CPU and writes it as a PNG. The file is removed
// if saving fails or ctx is cancelled first.
func save(
	ctx context.Context,
	a *App,
	opts SaveOptions,
	state view.State,
) (err error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("cannot save a %vx%v image", opts.Width, opts.Height)
	}

	file, err := os.Create(opts.Name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	start := time.Now()
	img, err := Render(ctx, a.program, programs.NewUniforms(state), a.palette, opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("rendering %v: %w", file.Name(), err)
	}

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %v: %w", file.Name(), err)
	}

	a.log.Info("image saved",
		"file", file.Name(),
		"width", opts.Width,
		"height", opts.Height,
		"took", time.Since(start),
	)
	return nil
}

// encodeIcon renders the default view as a small PNG.
func encodeIcon(program programs.Program, pal colormap.Palette) ([]byte, error) {
	state := view.Default()
	img, err := Render(context.Background(), program, programs.NewUniforms(state), pal, iconSize, iconSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
