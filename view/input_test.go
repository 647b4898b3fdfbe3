package view

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestContext() *Context {
	c := NewContext(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.Resize(800, 400)
	return c
}

func TestResize(t *testing.T) {
	c := newTestContext()
	if c.Screen.Aspect != 2 || c.State.Aspect != 2 {
		t.Errorf("aspect = %v/%v, want 2", c.Screen.Aspect, c.State.Aspect)
	}

	c.Resize(0, 100)
	if c.Screen.Width != 800 || c.Screen.Height != 400 {
		t.Errorf("zero sized resize changed screen to %+v", c.Screen)
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		x, y float64
		want mgl64.Vec2
	}{
		{400, 200, mgl64.Vec2{0, 0}},
		{0, 0, mgl64.Vec2{-2, 1}},
		{800, 400, mgl64.Vec2{2, -1}},
		{600, 100, mgl64.Vec2{1, 0.5}},
	}

	c := newTestContext()
	for _, tt := range tests {
		c.MoveCursor(tt.x, tt.y)
		if !vecClose(c.Pointer, tt.want) {
			t.Errorf("MoveCursor(%v, %v) = %v, want %v", tt.x, tt.y, c.Pointer, tt.want)
		}
	}
}

func TestMotionRequiresButton(t *testing.T) {
	c := newTestContext()
	if c.Update([]Event{Motion{Delta: mgl64.Vec2{10, 10}}}) {
		t.Error("Update reported a change without a pressed button")
	}
	if c.State != Default().withAspect(2) {
		t.Errorf("State = %+v, want default", c.State)
	}
}

func TestLeftDragMovesCenter(t *testing.T) {
	c := newTestContext()
	changed := c.Update([]Event{
		ButtonChanged{Button: ButtonLeft, Pressed: true},
		Motion{Delta: mgl64.Vec2{40, 0}},
		ButtonChanged{Button: ButtonLeft, Pressed: false},
		Motion{Delta: mgl64.Vec2{40, 0}},
	})

	if !changed {
		t.Error("Update reported no change")
	}
	want := mgl64.Vec2{-0.4 - 40.0/400/0.4, 0}
	if !vecClose(c.State.Center, want) {
		t.Errorf("Center = %v, want %v", c.State.Center, want)
	}
	if c.State.Start != (mgl64.Vec2{}) {
		t.Errorf("Start = %v, want unchanged", c.State.Start)
	}
}

func TestRightDragMovesStart(t *testing.T) {
	c := newTestContext()
	c.Update([]Event{
		ButtonChanged{Button: ButtonRight, Pressed: true},
		Motion{Delta: mgl64.Vec2{0, 80}},
	})

	want := mgl64.Vec2{0, -80.0 / 400 / 4}
	if !vecClose(c.State.Start, want) {
		t.Errorf("Start = %v, want %v", c.State.Start, want)
	}
	if c.State.Center != DefaultCenter {
		t.Errorf("Center = %v, want unchanged", c.State.Center)
	}
	if !c.Pressed(ButtonRight) || c.Pressed(ButtonLeft) {
		t.Error("pressed buttons not tracked")
	}
}

func TestWheel(t *testing.T) {
	c := newTestContext()
	c.Update([]Event{
		CursorMoved{X: 400, Y: 200},
		Wheel{Y: 2},
		Wheel{X: -1},
		Wheel{X: 0.01},
	})

	if math.Abs(c.State.Scale-DefaultScale*1.1) > epsilon {
		t.Errorf("Scale = %v, want %v", c.State.Scale, DefaultScale*1.1)
	}
	if c.State.Center != DefaultCenter {
		t.Errorf("Center = %v, want %v when zooming at the origin", c.State.Center, DefaultCenter)
	}
	if c.State.Iterations != 63 {
		t.Errorf("Iterations = %v, want 63", c.State.Iterations)
	}
}

func TestDoubleClickResets(t *testing.T) {
	c := newTestContext()
	c.State.Center = mgl64.Vec2{3, 3}
	c.State.Start = mgl64.Vec2{1, 1}
	c.State.Scale = 77
	c.State.Iterations = 5

	c.Update([]Event{DoubleClick{Button: ButtonRight}})
	if c.State.Start != (mgl64.Vec2{}) {
		t.Errorf("Start = %v, want (0, 0)", c.State.Start)
	}
	if c.State.Center != (mgl64.Vec2{3, 3}) {
		t.Errorf("right double click changed Center to %v", c.State.Center)
	}

	c.Update([]Event{DoubleClick{Button: ButtonLeft}})
	if c.State.Center != DefaultCenter || c.State.Scale != DefaultScale || c.State.Iterations != DefaultIterations {
		t.Errorf("State = %+v, want default view", c.State)
	}
}

func TestResizedEvent(t *testing.T) {
	c := newTestContext()
	if !c.Update([]Event{Resized{Width: 300, Height: 600}}) {
		t.Error("Update reported no change for resize")
	}
	if c.State.Aspect != 0.5 {
		t.Errorf("Aspect = %v, want 0.5", c.State.Aspect)
	}
}

func TestClickTracker(t *testing.T) {
	tr := NewClickTracker()
	now := time.Unix(1000, 0)
	pos := mgl64.Vec2{10, 10}

	if tr.Press(ButtonLeft, pos, now) {
		t.Fatal("first press reported as double click")
	}
	if tr.Press(ButtonRight, pos, now.Add(10*time.Millisecond)) {
		t.Fatal("press of another button reported as double click")
	}
	if !tr.Press(ButtonLeft, pos.Add(mgl64.Vec2{1, 1}), now.Add(200*time.Millisecond)) {
		t.Fatal("second press not reported as double click")
	}
	if tr.Press(ButtonLeft, pos, now.Add(300*time.Millisecond)) {
		t.Fatal("third press reported as double click")
	}
	if tr.Press(ButtonLeft, pos, now.Add(time.Second)) {
		t.Fatal("slow press reported as double click")
	}
	if tr.Press(ButtonLeft, pos.Add(mgl64.Vec2{50, 0}), now.Add(time.Second+100*time.Millisecond)) {
		t.Fatal("distant press reported as double click")
	}
}

func (s State) withAspect(aspect float64) State {
	s.Aspect = aspect
	return s
}
