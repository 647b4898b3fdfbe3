package colormap

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Palette is a one dimensional colour lookup table.
type Palette []color.RGBA

// Index returns the entry v maps to, rounding to the nearest entry and
// clamping v to [0, 1].
func (p Palette) Index(v float32) int {
	last := len(p) - 1
	if last <= 0 {
		return 0
	}
	i := int(math.Round(float64(clamp01(v)) * float64(last)))
	return min(max(i, 0), last)
}

func (p Palette) Lookup(v float32) color.RGBA {
	return p[p.Index(v)]
}

// Pix returns the palette as tightly packed RGBA bytes, the layout of a 1D
// RGBA8 texture.
func (p Palette) Pix() []byte {
	pix := make([]byte, 0, len(p)*4)
	for _, c := range p {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

type stop struct {
	at     float32
	colour mgl32.Vec3
}

// The first stop is black so points inside the set, which have an
// intensity of 0, render black.
var defaultStops = []stop{
	{0, mgl32.Vec3{0, 0, 0}},
	{0.02, mgl32.Vec3{0.0, 0.03, 0.2}},
	{0.16, mgl32.Vec3{0.13, 0.42, 0.8}},
	{0.42, mgl32.Vec3{0.93, 1, 1}},
	{0.64, mgl32.Vec3{1, 0.67, 0}},
	{0.86, mgl32.Vec3{0.5, 0.1, 0.05}},
	{1, mgl32.Vec3{0.1, 0, 0.1}},
}

// DefaultPalette returns n entries interpolated from the default colour
// stops. n is raised to 2 if smaller.
func DefaultPalette(n int) Palette {
	if n < 2 {
		n = 2
	}

	p := make(Palette, n)
	for i := range p {
		c := sample(defaultStops, float32(i)/float32(n-1))
		p[i] = color.RGBA{
			R: toByte(c[0]),
			G: toByte(c[1]),
			B: toByte(c[2]),
			A: 0xff,
		}
	}
	return p
}

func sample(stops []stop, t float32) mgl32.Vec3 {
	if t <= stops[0].at {
		return stops[0].colour
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.at {
			f := (t - a.at) / (b.at - a.at)
			return a.colour.Mul(1 - f).Add(b.colour.Mul(f))
		}
	}
	return stops[len(stops)-1].colour
}

func toByte(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
