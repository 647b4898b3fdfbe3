package programs

import (
	_ "embed"
	"errors"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoCPUImplementation = errors.New("fractal does not have a CPU implementation")

//go:embed shaders/default.vert
var defaultVertexShader string

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

func NewProgram(p Program) {
	programs = append(programs, p)
}

var programs []Program

// IntensityFunc evaluates a fractal at a normalised screen position, x in
// [-aspect, aspect] and y in [-1, 1] pointing up. It returns a value in [0, 1].
type IntensityFunc func(uniforms Uniforms, pos mgl64.Vec2) float32

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	Intensity      IntensityFunc
}

// GetImage returns a CPU rendition of the program with the given pixel size.
func (p *Program) GetImage(uniforms Uniforms, width, height int) (Image, error) {
	if p.Intensity == nil {
		return nil, ErrNoCPUImplementation
	}

	return &programImage{
		uniforms:  uniforms,
		bounds:    image.Rect(0, 0, width, height),
		intensity: p.Intensity,
	}, nil
}

// Image is a fractal sampled on a pixel grid.
type Image interface {
	Intensity(x, y int) float32
	Bounds() image.Rectangle
}

type programImage struct {
	uniforms  Uniforms
	bounds    image.Rectangle
	intensity IntensityFunc
}

// Intensity samples the centre of pixel (x, y).
func (i *programImage) Intensity(x, y int) float32 {
	return i.intensity(i.uniforms, PixelPos(i.bounds, x, y))
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}

// PixelPos converts the centre of a pixel in bounds, origin top left, into
// normalised screen coordinates.
func PixelPos(bounds image.Rectangle, x, y int) mgl64.Vec2 {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	u := (float64(x-bounds.Min.X) + 0.5) / w
	v := (float64(y-bounds.Min.Y) + 0.5) / h
	return mgl64.Vec2{
		(u*2 - 1) * w / h,
		1 - v*2,
	}
}

func clamp01(v float64) float32 {
	return float32(math.Max(0, math.Min(1, v)))
}
