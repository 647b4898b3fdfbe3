package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/mandelview/gpu"
	"github.com/stewi1014/mandelview/view"
)

func glfwMain(ctx context.Context, a *App) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	var monitorWidth, monitorHeight int
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			monitorWidth, monitorHeight = mode.Width, mode.Height
		}
	}

	width, height := a.cfg.windowSize(monitorWidth, monitorHeight)
	w, err := NewGLFWWindow(a, width, height)
	if err != nil {
		return err
	}
	defer w.Destroy()

	return w.Run(ctx)
}

// GLFWWindow shows the fractal in a bare GLFW window.
type GLFWWindow struct {
	*glfw.Window

	app       *App
	view      *view.Context
	events    []view.Event
	renderer  *gpu.Renderer
	clicks    *view.ClickTracker
	cursor    mgl64.Vec2
	hasCursor bool
	dirty     bool
}

func NewGLFWWindow(a *App, width, height int) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if a.cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(
		width,
		height,
		windowTitle,
		nil,
		nil,
	)

	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &GLFWWindow{
		Window:   window,
		app:      a,
		view:     view.NewContext(a.log),
		renderer: gpu.NewRenderer(a.program, a.palette, a.log),
		clicks:   view.NewClickTracker(),
		dirty:    true,
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := w.renderer.Init(a.cfg.Debug); err != nil {
		window.Destroy()
		return nil, err
	}

	w.SetFramebufferSizeCallback(w.resize)
	w.SetCursorPosCallback(w.cursorPos)
	w.SetMouseButtonCallback(w.mouseButton)
	w.SetScrollCallback(w.scroll)
	w.SetKeyCallback(w.key)
	w.SetRefreshCallback(func(*glfw.Window) { w.dirty = true })

	fbWidth, fbHeight := w.GetFramebufferSize()
	w.push(view.Resized{Width: fbWidth, Height: fbHeight})

	return w, nil
}

// Run handles events and draws until the window is closed or ctx is done.
func (w *GLFWWindow) Run(ctx context.Context) error {
	defer w.renderer.Delete()

	stop := context.AfterFunc(ctx, glfw.PostEmptyEvent)
	defer stop()

	for !w.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		if w.view.Update(w.events) {
			w.dirty = true
		}
		w.events = w.events[:0]

		if w.dirty {
			if err := w.draw(); err != nil {
				return err
			}
			w.dirty = false
		}

		glfw.WaitEvents()
	}

	return nil
}

func (w *GLFWWindow) draw() error {
	err := w.renderer.Resize(int(w.view.Screen.Width), int(w.view.Screen.Height))
	if err != nil {
		return err
	}

	if err := w.renderer.Draw(w.view.State, 0); err != nil {
		return err
	}
	w.SwapBuffers()
	return nil
}

func (w *GLFWWindow) push(e view.Event) {
	w.events = append(w.events, e)
}

// framebufferPos converts window coordinates to framebuffer pixels.
func (w *GLFWWindow) framebufferPos(x, y float64) mgl64.Vec2 {
	width, height := w.GetSize()
	fbWidth, fbHeight := w.GetFramebufferSize()
	if width == 0 || height == 0 {
		return mgl64.Vec2{x, y}
	}
	return mgl64.Vec2{
		x * float64(fbWidth) / float64(width),
		y * float64(fbHeight) / float64(height),
	}
}

func (w *GLFWWindow) resize(_ *glfw.Window, width, height int) {
	w.push(view.Resized{Width: width, Height: height})
}

func (w *GLFWWindow) cursorPos(_ *glfw.Window, x, y float64) {
	pos := w.framebufferPos(x, y)

	w.push(view.CursorMoved{X: pos.X(), Y: pos.Y()})
	if w.hasCursor {
		w.push(view.Motion{Delta: pos.Sub(w.cursor)})
	}
	w.cursor, w.hasCursor = pos, true
}

func glfwButton(b glfw.MouseButton) (view.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return view.ButtonLeft, true
	case glfw.MouseButtonRight:
		return view.ButtonRight, true
	}
	return 0, false
}

func (w *GLFWWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := glfwButton(button)
	if !ok {
		return
	}

	switch action {
	case glfw.Press:
		w.push(view.ButtonChanged{Button: b, Pressed: true})
		if w.clicks.Press(b, w.cursor, time.Now()) {
			w.push(view.DoubleClick{Button: b})
		}
	case glfw.Release:
		w.push(view.ButtonChanged{Button: b, Pressed: false})
	}
}

func (w *GLFWWindow) scroll(_ *glfw.Window, x, y float64) {
	w.push(view.Wheel{X: x, Y: y})
}

func (w *GLFWWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyS:
		w.save()
	}
}

func (w *GLFWWindow) save() {
	opts := SaveOptions{
		Name:   exportName(),
		Width:  int(w.view.Screen.Width),
		Height: int(w.view.Screen.Height),
	}
	state := w.view.State

	go func() {
		ctx, cancel := context.WithCancelCause(context.Background())
		defer func() {
			if err := context.Cause(ctx); !errors.Is(err, context.Canceled) {
				w.app.log.Error("saving image failed", "err", err)
			}
		}()
		defer CatchPanicToContext(cancel)

		cancel(save(ctx, w.app, opts, state))
	}()
}
