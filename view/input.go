package view

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	numButtons
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	}
	return "unknown"
}

// Event is an input event queued by a frontend and applied by Context.Update.
type Event interface {
	apply(c *Context) bool
}

// Motion is a relative pointer movement in pixels.
type Motion struct {
	Delta mgl64.Vec2
}

// CursorMoved is an absolute pointer position in window pixels, origin top left.
type CursorMoved struct {
	X, Y float64
}

// Wheel is a scroll delta. Positive Y scrolls up, positive X scrolls right.
type Wheel struct {
	X, Y float64
}

type ButtonChanged struct {
	Button  Button
	Pressed bool
}

type DoubleClick struct {
	Button Button
}

type Resized struct {
	Width, Height int
}

// Context is everything the per-frame update reads and writes.
type Context struct {
	State   State
	Screen  Screen
	Pointer mgl64.Vec2
	pressed [numButtons]bool
	log     *slog.Logger
}

func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		State:  Default(),
		Screen: DefaultScreen(),
		log:    logger,
	}
}

func (c *Context) Pressed(b Button) bool {
	return b >= 0 && b < numButtons && c.pressed[b]
}

// Resize records the new render area size and updates the aspect ratio.
// Zero sized areas are ignored.
func (c *Context) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Screen.Width = float64(width)
	c.Screen.Height = float64(height)
	c.Screen.Aspect = c.Screen.Width / c.Screen.Height
	c.State.Aspect = c.Screen.Aspect
}

// MoveCursor converts a window position into the pointer's normalised
// coordinates: x in [-aspect, aspect], y in [-1, 1] pointing up.
func (c *Context) MoveCursor(x, y float64) {
	c.Pointer = mgl64.Vec2{
		(x/c.Screen.Width - 0.5) * 2 * c.Screen.Aspect,
		(0.5 - y/c.Screen.Height) * 2,
	}
}

// Update applies a frame's events in the order they arrived and reports
// whether the view state changed.
func (c *Context) Update(events []Event) bool {
	changed := false
	for _, e := range events {
		if e.apply(c) {
			changed = true
		}
	}
	return changed
}

func (e Motion) apply(c *Context) bool {
	changed := false
	if c.pressed[ButtonLeft] {
		c.State.Drag(e.Delta, c.Screen)
		changed = true
	}
	if c.pressed[ButtonRight] {
		c.State.DragStart(e.Delta, c.Screen)
		c.log.Info("start moved", "x", c.State.Start.X(), "y", c.State.Start.Y())
		changed = true
	}
	return changed
}

func (e CursorMoved) apply(c *Context) bool {
	c.MoveCursor(e.X, e.Y)
	return false
}

func (e Wheel) apply(c *Context) bool {
	changed := false
	if e.Y != 0 {
		c.State.Zoom(e.Y, c.Pointer)
		changed = true
	}
	if c.State.ChangeIterations(e.X) {
		c.log.Info("iterations changed", "iterations", c.State.Iterations)
		changed = true
	}
	return changed
}

func (e ButtonChanged) apply(c *Context) bool {
	if e.Button >= 0 && e.Button < numButtons {
		c.pressed[e.Button] = e.Pressed
	}
	return false
}

func (e DoubleClick) apply(c *Context) bool {
	switch e.Button {
	case ButtonLeft:
		c.State.ResetView()
		return true
	case ButtonRight:
		c.State.ResetStart()
		return true
	}
	return false
}

func (e Resized) apply(c *Context) bool {
	c.Resize(e.Width, e.Height)
	return true
}

const (
	DoubleClickInterval = 400 * time.Millisecond
	DoubleClickDistance = 4.0
)

// ClickTracker detects double clicks from a stream of button presses.
type ClickTracker struct {
	last     [numButtons]time.Time
	lastPos  [numButtons]mgl64.Vec2
	Interval time.Duration
	Distance float64
}

func NewClickTracker() *ClickTracker {
	return &ClickTracker{
		Interval: DoubleClickInterval,
		Distance: DoubleClickDistance,
	}
}

// Press records a press of b at pos and reports whether it completes a
// double click. A third press starts a new pair.
func (t *ClickTracker) Press(b Button, pos mgl64.Vec2, now time.Time) bool {
	if b < 0 || b >= numButtons {
		return false
	}

	last := t.last[b]
	if !last.IsZero() &&
		now.Sub(last) <= t.Interval &&
		pos.Sub(t.lastPos[b]).Len() <= t.Distance {
		t.last[b] = time.Time{}
		return true
	}

	t.last[b] = now
	t.lastPos[b] = pos
	return false
}
