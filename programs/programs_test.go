package programs

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/mandelview/view"
)

func TestEscapeInsideSet(t *testing.T) {
	for _, iterations := range []int{2, 10, 64, 1000, 100000} {
		n, escaped := Escape(0, 0, iterations)
		if escaped || n != iterations {
			t.Errorf("Escape(0, 0, %v) = %v, %v; want %v, false", iterations, n, escaped, iterations)
		}
	}

	for _, c := range []complex128{-1, -0.1 + 0.1i, 0.25, -2} {
		if n, escaped := Escape(c, 0, 500); escaped {
			t.Errorf("Escape(%v) escaped at %v", c, n)
		}
	}
}

func TestEscapeImmediately(t *testing.T) {
	for _, iterations := range []int{1, 2, 64} {
		n, escaped := Escape(2+2i, 0, iterations)
		if !escaped || n != 1 {
			t.Errorf("Escape(2+2i, 0, %v) = %v, %v; want 1, true", iterations, n, escaped)
		}
	}
}

func TestEscapeCount(t *testing.T) {
	// 1 -> 2 -> 5: escapes on the third step.
	n, escaped := Escape(1, 0, 64)
	if !escaped || n != 3 {
		t.Errorf("Escape(1, 0, 64) = %v, %v; want 3, true", n, escaped)
	}

	// The start point replaces the first value of z.
	n, escaped = Escape(0, 3, 64)
	if !escaped || n != 1 {
		t.Errorf("Escape(0, 3, 64) = %v, %v; want 1, true", n, escaped)
	}
}

func TestEscapeBoundary(t *testing.T) {
	// c = -2 settles on z = 2 where |z|^2 == 4, which is not an escape.
	if n, escaped := Escape(-2, 0, 10); escaped {
		t.Errorf("Escape(-2, 0, 10) escaped at %v", n)
	}
}

func TestPoint(t *testing.T) {
	u := NewUniforms(view.Default())

	if got := Point(u, mgl64.Vec2{}); got != complex(float64(float32(-0.4)), 0) {
		t.Errorf("Point(centre) = %v, want %v", got, complex(float64(float32(-0.4)), 0))
	}

	// Top right of a square screen is a half screen per 1/(2*scale) away,
	// with the imaginary axis pointing down.
	got := Point(u, mgl64.Vec2{1, 1})
	wantRe := float64(float32(-0.4)) + 1/(2*float64(float32(0.4)))
	wantIm := -1 / (2 * float64(float32(0.4)))
	if math.Abs(real(got)-wantRe) > 1e-9 || math.Abs(imag(got)-wantIm) > 1e-9 {
		t.Errorf("Point(1, 1) = %v, want (%v%+vi)", got, wantRe, wantIm)
	}
}

func TestMandelbrotIntensity(t *testing.T) {
	u := Uniforms{Scale: 0.5, Aspect: 1, Iters: 64}

	if v := Mandelbrot.Intensity(u, mgl64.Vec2{}); v != 0 {
		t.Errorf("intensity at origin = %v, want 0", v)
	}

	// (2, -2) in normalised coordinates is c = 2+2i.
	if v := Mandelbrot.Intensity(u, mgl64.Vec2{2, -2}); v != float32(1)/64 {
		t.Errorf("intensity at 2+2i = %v, want %v", v, float32(1)/64)
	}
}

func TestGetImage(t *testing.T) {
	u := NewUniforms(view.Default())
	img, err := Mandelbrot.GetImage(u, 40, 20)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			v := img.Intensity(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("Intensity(%v, %v) = %v, out of range", x, y, v)
			}
		}
	}

	p := Program{Name: "shader only"}
	if _, err := p.GetImage(u, 1, 1); !errors.Is(err, ErrNoCPUImplementation) {
		t.Errorf("GetImage without CPU implementation = %v, want ErrNoCPUImplementation", err)
	}
}

func TestPixelPos(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 2)
	tests := []struct {
		x, y int
		want mgl64.Vec2
	}{
		{0, 0, mgl64.Vec2{-1.5, 0.5}},
		{3, 1, mgl64.Vec2{1.5, -0.5}},
	}
	for _, tt := range tests {
		if got := PixelPos(bounds, tt.x, tt.y); got != tt.want {
			t.Errorf("PixelPos(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	if NumPrograms() < 1 {
		t.Fatal("no programs registered")
	}
	p := GetProgram(0)
	if p.Name != "mandelbrot" {
		t.Errorf("GetProgram(0).Name = %q, want mandelbrot", p.Name)
	}
	if !strings.Contains(p.FragmentShader, "uniform Mandelbrot") {
		t.Error("fragment shader does not declare the uniform block")
	}
	if !strings.Contains(p.VertexShader, "in vec2 vert") {
		t.Error("vertex shader does not declare the vert attribute")
	}
}

func TestStd140Layout(t *testing.T) {
	u := Uniforms{
		Center: mgl32.Vec2{-0.4, 0.25},
		Start:  mgl32.Vec2{1, -1},
		Scale:  0.4,
		Aspect: 1.5,
		Iters:  64,
	}
	buf, err := u.Std140()
	if err != nil {
		t.Fatalf("Std140: %v", err)
	}
	if len(buf) != 32 {
		t.Fatalf("len = %v, want 32", len(buf))
	}

	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	floatsAt := []struct {
		off  int
		want float32
	}{
		{0, -0.4}, {4, 0.25}, {8, 1}, {12, -1}, {16, 0.4}, {20, 1.5},
	}
	for _, tt := range floatsAt {
		if got := f(tt.off); got != tt.want {
			t.Errorf("float at %v = %v, want %v", tt.off, got, tt.want)
		}
	}
	if got := int32(binary.LittleEndian.Uint32(buf[24:])); got != 64 {
		t.Errorf("iters = %v, want 64", got)
	}
	for i := 28; i < 32; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %v = %v, want 0", i, buf[i])
		}
	}
}

func TestStd140Alignment(t *testing.T) {
	type block struct {
		A float32    `uniform:"a"`
		B mgl32.Vec3 `uniform:"b"`
		C float32    `uniform:"c"`
		D mgl32.Vec2 `uniform:"d"`
		E int64
	}

	buf, err := PackStd140(&block{A: 1, B: mgl32.Vec3{2, 3, 4}, C: 5, D: mgl32.Vec2{6, 7}})
	if err != nil {
		t.Fatalf("PackStd140: %v", err)
	}
	// a@0, b@16, c@28, d@32, size 48.
	if len(buf) != 48 {
		t.Fatalf("len = %v, want 48", len(buf))
	}
	want := map[int]float32{0: 1, 16: 2, 20: 3, 24: 4, 28: 5, 32: 6, 36: 7}
	for off, v := range want {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])); got != v {
			t.Errorf("float at %v = %v, want %v", off, got, v)
		}
	}
}

func TestStd140Unsupported(t *testing.T) {
	type block struct {
		M mgl32.Mat4 `uniform:"m"`
	}
	if _, err := PackStd140(&block{}); !errors.Is(err, ErrUnsupportedUniform) {
		t.Errorf("PackStd140(mat4) = %v, want ErrUnsupportedUniform", err)
	}
	if _, err := PackStd140(Uniforms{}); !errors.Is(err, ErrUnsupportedUniform) {
		t.Errorf("PackStd140(non-pointer) = %v, want ErrUnsupportedUniform", err)
	}
}

func TestNewUniforms(t *testing.T) {
	s := view.Default()
	s.Start = mgl64.Vec2{0.5, -0.5}
	s.Aspect = 2
	u := NewUniforms(s)

	want := Uniforms{
		Center: mgl32.Vec2{-0.4, 0},
		Start:  mgl32.Vec2{0.5, -0.5},
		Scale:  0.4,
		Aspect: 2,
		Iters:  64,
	}
	if u != want {
		t.Errorf("NewUniforms() = %+v, want %+v", u, want)
	}
}
