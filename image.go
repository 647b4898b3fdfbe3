package main

import (
	"context"
	"image"
	"sync"

	"github.com/stewi1014/mandelview/colormap"
	"github.com/stewi1014/mandelview/programs"
)

// chunkSize is the number of columns each rendering goroutine takes.
const chunkSize = 50

func BufferImage(img programs.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		Values: colormap.NewIntensity(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())),
	}
}

// BufferedImage samples a fractal image into an intensity buffer.
type BufferedImage struct {
	programs.Image
	Values *colormap.Intensity
}

// Buffer fills the intensity buffer, one goroutine per chunk of columns.
func (b *BufferedImage) Buffer(ctx context.Context) error {
	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += chunkSize {
		chunkMax := chunkMin + chunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					b.Values.Set(x-min.X, y-min.Y, b.Image.Intensity(x, y))
				}
			}
		}()
	}

	wg.Wait()

	return ctx.Err()
}

// Render draws the fractal on the CPU and colours it with pal.
func Render(
	ctx context.Context,
	program programs.Program,
	uniforms programs.Uniforms,
	pal colormap.Palette,
	width, height int,
) (*image.RGBA, error) {
	img, err := program.GetImage(uniforms, width, height)
	if err != nil {
		return nil, err
	}

	buff := BufferImage(img)
	if err := buff.Buffer(ctx); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	colormap.Apply(out, buff.Values, pal)
	return out, nil
}
