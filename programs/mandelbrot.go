package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

// EscapeRadius is the squared magnitude past which a point has escaped.
const EscapeRadius = 4

var Mandelbrot = Program{
	Name:           "mandelbrot",
	VertexShader:   defaultVertexShader,
	FragmentShader: mandelbrotFragment,
	Intensity:      mandelbrotIntensity,
}

func init() {
	NewProgram(Mandelbrot)
}

// Escape iterates z = z*z + c from z0 and returns the step at which
// |z|^2 first exceeds EscapeRadius, counting from 1. Points that never escape
// return iterations and false.
func Escape(c, z0 complex128, iterations int) (n int, escaped bool) {
	zr, zi := real(z0), imag(z0)
	cr, ci := real(c), imag(c)

	for n = 1; n <= iterations; n++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > EscapeRadius {
			return n, true
		}
	}

	return iterations, false
}

// Point returns the complex number under the normalised screen position pos.
// The imaginary axis grows down the screen.
func Point(uniforms Uniforms, pos mgl64.Vec2) complex128 {
	scale := 2 * float64(uniforms.Scale)
	return complex(
		float64(uniforms.Center[0])+pos[0]/scale,
		float64(uniforms.Center[1])-pos[1]/scale,
	)
}

func mandelbrotIntensity(uniforms Uniforms, pos mgl64.Vec2) float32 {
	iterations := int(uniforms.Iters)
	c := Point(uniforms, pos)
	z0 := complex(float64(uniforms.Start[0]), float64(uniforms.Start[1]))

	n, escaped := Escape(c, z0, iterations)
	if !escaped {
		return 0
	}
	return clamp01(float64(n) / float64(iterations))
}
