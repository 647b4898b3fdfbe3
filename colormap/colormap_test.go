package colormap

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		in, out image.Point
		want    bool
	}{
		{image.Pt(640, 480), image.Pt(640, 480), true},
		{image.Pt(640, 480), image.Pt(641, 480), false},
		{image.Pt(640, 480), image.Pt(640, 479), false},
		{image.Pt(480, 640), image.Pt(640, 480), false},
		{image.Pt(0, 0), image.Pt(0, 0), true},
	}
	for _, tt := range tests {
		if got := Matches(tt.in, tt.out); got != tt.want {
			t.Errorf("Matches(%v, %v) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}

func TestGroups(t *testing.T) {
	tests := []struct {
		size   image.Point
		wx, wy uint32
	}{
		{image.Pt(8, 8), 1, 1},
		{image.Pt(9, 8), 2, 1},
		{image.Pt(1920, 1080), 240, 135},
		{image.Pt(1, 1), 1, 1},
		{image.Pt(0, 100), 0, 0},
	}
	for _, tt := range tests {
		x, y := Groups(tt.size)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Groups(%v) = %v, %v; want %v, %v", tt.size, x, y, tt.wx, tt.wy)
		}
	}
}

func TestApply(t *testing.T) {
	pal := Palette{
		{0, 0, 0, 255},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
	}
	src := NewIntensity(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, 0)
	src.Set(1, 0, 0.5)
	src.Set(2, 0, 1)
	src.Set(0, 1, -3)
	src.Set(1, 1, 7)
	src.Set(2, 1, 0.26)

	dst := image.NewRGBA(image.Rect(0, 0, 3, 2))
	if !Apply(dst, src, pal) {
		t.Fatal("Apply returned false for matching sizes")
	}

	want := [][]color.RGBA{
		{pal[0], pal[1], pal[2]},
		{pal[0], pal[2], pal[1]},
	}
	for y, row := range want {
		for x, c := range row {
			if got := dst.RGBAAt(x, y); got != c {
				t.Errorf("dst(%v, %v) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestApplyMismatchLeavesOutput(t *testing.T) {
	pal := DefaultPalette(16)
	src := NewIntensity(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 1
	}

	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 5, 4),
		image.Rect(0, 0, 4, 3),
		image.Rect(0, 0, 3, 5),
	} {
		dst := image.NewRGBA(r)
		for i := range dst.Pix {
			dst.Pix[i] = 0x42
		}
		before := bytes.Clone(dst.Pix)

		if Apply(dst, src, pal) {
			t.Errorf("Apply to %v returned true", r)
		}
		if !bytes.Equal(dst.Pix, before) {
			t.Errorf("Apply to %v modified the output", r)
		}
	}
}

func TestApplyOffsetBounds(t *testing.T) {
	pal := Palette{{0, 0, 0, 255}, {255, 255, 255, 255}}
	src := NewIntensity(image.Rect(10, 10, 12, 11))
	src.Set(11, 10, 1)
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))

	if !Apply(dst, src, pal) {
		t.Fatal("Apply returned false for equal sizes at different origins")
	}
	if got := dst.RGBAAt(1, 0); got != pal[1] {
		t.Errorf("dst(1, 0) = %v, want %v", got, pal[1])
	}
	if got := dst.RGBAAt(0, 0); got != pal[0] {
		t.Errorf("dst(0, 0) = %v, want %v", got, pal[0])
	}
}

func TestIntensityImage(t *testing.T) {
	img := NewIntensity(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, 1)
	img.Set(5, 5, 1)

	if got := img.At(1, 1); got != (color.Gray16{Y: 0xffff}) {
		t.Errorf("At(1, 1) = %v, want white", got)
	}
	if got := img.At(0, 0); got != (color.Gray16{}) {
		t.Errorf("At(0, 0) = %v, want black", got)
	}
	if got := img.Value(5, 5); got != 0 {
		t.Errorf("Value outside bounds = %v, want 0", got)
	}
}

func TestShaderBindings(t *testing.T) {
	for _, want := range []string{
		"local_size_x = 8",
		"local_size_y = 8",
		"r32f, binding = 0",
		"rgba8, binding = 1",
		"rgba8, binding = 2",
		"image1D",
	} {
		if !strings.Contains(Shader, want) {
			t.Errorf("shader does not contain %q", want)
		}
	}
}
