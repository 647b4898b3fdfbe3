// Package view holds the state of the fractal view and the input handling
// that mutates it.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinIterations = 2

	// zoomRate is the relative scale change per unit of vertical wheel delta.
	zoomRate = 0.05

	// iterationThreshold is the horizontal wheel delta needed to change the
	// iteration count.
	iterationThreshold = 0.05

	// startDivisor slows down the start point relative to the pointer.
	startDivisor = 4.0
)

var (
	DefaultCenter     = mgl64.Vec2{-0.4, 0}
	DefaultScale      = 0.4
	DefaultIterations = int32(64)
)

// State is the set of parameters the fractal is rendered with.
type State struct {
	Center     mgl64.Vec2
	Start      mgl64.Vec2
	Scale      float64
	Aspect     float64
	Iterations int32
}

func Default() State {
	return State{
		Center:     DefaultCenter,
		Scale:      DefaultScale,
		Aspect:     1,
		Iterations: DefaultIterations,
	}
}

// Screen is the size of the render area as of the last resize.
type Screen struct {
	Width  float64
	Height float64
	Aspect float64
}

func DefaultScreen() Screen {
	return Screen{Width: 1, Height: 1, Aspect: 1}
}

// normalise converts a pixel delta into screen heights.
// Both axes are divided by height so a pixel covers the same distance
// horizontally and vertically.
func (s Screen) normalise(delta mgl64.Vec2) mgl64.Vec2 {
	return delta.Mul(1 / s.Height)
}

// Drag moves the center by a pointer delta given in pixels.
func (s *State) Drag(delta mgl64.Vec2, screen Screen) {
	d := screen.normalise(delta)
	s.Center = s.Center.Sub(d.Mul(1 / s.Scale))
}

// DragStart moves the start point by a pointer delta given in pixels.
func (s *State) DragStart(delta mgl64.Vec2, screen Screen) {
	d := screen.normalise(delta)
	s.Start = s.Start.Sub(d.Mul(1 / startDivisor))
}

// Zoom scales the view by 1+y*0.05, moving the center towards pointer so the
// point under the cursor stays roughly in place.
func (s *State) Zoom(y float64, pointer mgl64.Vec2) {
	amt := y * zoomRate
	factor := 1 + amt

	s.Center[0] += pointer[0] / s.Scale * amt / 2
	s.Center[1] -= pointer[1] / s.Scale * amt / 2
	s.Scale *= factor
}

// ChangeIterations steps the iteration count by the sign of x, ignoring
// deltas too small to be intentional. It reports whether the count changed.
func (s *State) ChangeIterations(x float64) bool {
	if math.Abs(x) <= iterationThreshold {
		return false
	}

	old := s.Iterations
	if x > 0 {
		s.Iterations++
	} else {
		s.Iterations--
	}
	if s.Iterations < MinIterations {
		s.Iterations = MinIterations
	}

	return s.Iterations != old
}

func (s *State) ResetStart() {
	s.Start = mgl64.Vec2{}
}

// ResetView restores center, scale and iterations. The start point and
// aspect are kept.
func (s *State) ResetView() {
	s.Center = DefaultCenter
	s.Scale = DefaultScale
	s.Iterations = DefaultIterations
}
