// Package colormap turns a single channel intensity image into colour by
// looking each value up in a palette.
//
// The GPU kernel in shaders/colormap.comp and Apply implement the same
// mapping. Both only produce output when the intensity and output images have
// the same size.
package colormap

import (
	_ "embed"
	"image"
	"image/color"
)

//go:embed shaders/colormap.comp
var Shader string

// WorkgroupSize is the kernel's local size in both dimensions.
const WorkgroupSize = 8

// Image bindings used by the kernel.
const (
	BindingIntensity = 0
	BindingOutput    = 1
	BindingPalette   = 2
)

// Matches reports whether a pass from in to out may run.
func Matches(in, out image.Point) bool {
	return in.X == out.X && in.Y == out.Y
}

// Groups returns the number of workgroups covering size.
func Groups(size image.Point) (x, y uint32) {
	if size.X <= 0 || size.Y <= 0 {
		return 0, 0
	}
	return uint32((size.X + WorkgroupSize - 1) / WorkgroupSize),
		uint32((size.Y + WorkgroupSize - 1) / WorkgroupSize)
}

// Apply writes pal[src] into dst for every pixel. If the sizes of dst and src
// differ, dst is left untouched and Apply returns false.
func Apply(dst *image.RGBA, src *Intensity, pal Palette) bool {
	if !Matches(src.Bounds().Size(), dst.Bounds().Size()) || len(pal) == 0 {
		return false
	}

	sb, db := src.Bounds(), dst.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			dst.SetRGBA(db.Min.X+x, db.Min.Y+y, pal.Lookup(src.Value(sb.Min.X+x, sb.Min.Y+y)))
		}
	}
	return true
}

// Intensity is a single channel float image, the CPU counterpart of the R32F
// texture the fractal is rendered into.
type Intensity struct {
	Pix    []float32
	Stride int
	Rect   image.Rectangle
}

func NewIntensity(r image.Rectangle) *Intensity {
	return &Intensity{
		Pix:    make([]float32, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

func (i *Intensity) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x - i.Rect.Min.X)
}

func (i *Intensity) Value(x, y int) float32 {
	if !(image.Point{x, y}.In(i.Rect)) {
		return 0
	}
	return i.Pix[i.PixOffset(x, y)]
}

func (i *Intensity) Set(x, y int, v float32) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	i.Pix[i.PixOffset(x, y)] = v
}

func (i *Intensity) ColorModel() color.Model { return color.Gray16Model }

func (i *Intensity) Bounds() image.Rectangle { return i.Rect }

func (i *Intensity) At(x, y int) color.Color {
	v := clamp01(i.Value(x, y))
	return color.Gray16{Y: uint16(v*0xffff + 0.5)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
