package main

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/mandelview/gpu"
	"github.com/stewi1014/mandelview/view"
)

// RenderWindow shows the fractal in a GtkGLArea.
type RenderWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea

	app  *App
	ctx  context.Context
	quit context.CancelCauseFunc

	view      *view.Context
	events    []view.Event
	renderer  *gpu.Renderer
	cursor    mgl64.Vec2
	hasCursor bool
}

func NewRenderWindow(
	ctx context.Context,
	app *gtk.Application,
	a *App,
	quit context.CancelCauseFunc,
) *RenderWindow {
	var err error
	w := &RenderWindow{
		app:      a,
		ctx:      ctx,
		quit:     quit,
		view:     view.NewContext(a.log),
		renderer: gpu.NewRenderer(a.program, a.palette, a.log),
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(a.cfg.windowSize(monitorSize()))

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasAlpha(false)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK) |
			int(gdk.SCROLL_MASK) |
			int(gdk.SMOOTH_SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)
	w.Connect("key-press-event", w.key)

	w.Add(w.gla)
	w.ShowAll()

	return w
}

func monitorSize() (width, height int) {
	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return 0, 0
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return 0, 0
	}

	return monitor.GetGeometry().GetWidth(), monitor.GetGeometry().GetHeight()
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	if err := w.renderer.Init(w.app.cfg.Debug); err != nil {
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	w.view.Update(w.events)
	w.events = w.events[:0]

	gla.AttachBuffers()
	target := gpu.CurrentFramebuffer()

	err := w.renderer.Resize(int(w.view.Screen.Width), int(w.view.Screen.Height))
	if err != nil {
		w.quit(err)
		return true
	}

	if err := w.renderer.Draw(w.view.State, target); err != nil {
		w.app.log.Debug("frame skipped", "err", err)
	}
	return true
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	w.renderer.Delete()
}

// push queues an input event for the next frame.
func (w *RenderWindow) push(e view.Event) {
	w.events = append(w.events, e)
	w.gla.QueueRender()
}

// scale converts widget coordinates into the framebuffer pixels the GLArea
// renders at.
func (w *RenderWindow) scale(x, y float64) mgl64.Vec2 {
	s := float64(w.gla.GetScaleFactor())
	return mgl64.Vec2{x * s, y * s}
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.push(view.Resized{Width: width, Height: height})
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	pos := w.scale(gdk.EventMotionNewFromEvent(event).MotionVal())

	w.push(view.CursorMoved{X: pos.X(), Y: pos.Y()})
	if w.hasCursor {
		w.push(view.Motion{Delta: pos.Sub(w.cursor)})
	}
	w.cursor, w.hasCursor = pos, true
}

func gdkButton(b gdk.Button) (view.Button, bool) {
	switch b {
	case gdk.BUTTON_PRIMARY:
		return view.ButtonLeft, true
	case gdk.BUTTON_SECONDARY:
		return view.ButtonRight, true
	}
	return 0, false
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	b, ok := gdkButton(button.Button())
	if !ok {
		return
	}

	w.cursor, w.hasCursor = w.scale(button.X(), button.Y()), true

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.push(view.ButtonChanged{Button: b, Pressed: true})
	case gdk.EVENT_2BUTTON_PRESS:
		w.push(view.DoubleClick{Button: b})
	case gdk.EVENT_BUTTON_RELEASE:
		w.push(view.ButtonChanged{Button: b, Pressed: false})
	}
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)

	pos := w.scale(scroll.X(), scroll.Y())
	w.push(view.CursorMoved{X: pos.X(), Y: pos.Y()})

	switch scroll.Direction() {
	case gdk.SCROLL_SMOOTH:
		w.push(view.Wheel{X: scroll.DeltaX(), Y: -scroll.DeltaY()})
	case gdk.SCROLL_UP:
		w.push(view.Wheel{Y: 1})
	case gdk.SCROLL_DOWN:
		w.push(view.Wheel{Y: -1})
	case gdk.SCROLL_LEFT:
		w.push(view.Wheel{X: -1})
	case gdk.SCROLL_RIGHT:
		w.push(view.Wheel{X: 1})
	}
}

func (w *RenderWindow) key(win *gtk.ApplicationWindow, event *gdk.Event) bool {
	switch gdk.EventKeyNewFromEvent(event).KeyVal() {
	case gdk.KEY_Escape:
		w.Destroy()
		return true
	case gdk.KEY_s, gdk.KEY_S:
		w.save()
		return true
	}
	return false
}

func (w *RenderWindow) save() {
	ctx, cancel := context.WithCancelCause(w.ctx)
	AttachErrorDialog(w.ApplicationWindow, ctx, w.app.log)

	opts := SaveOptions{
		Name:   exportName(),
		Width:  int(w.view.Screen.Width),
		Height: int(w.view.Screen.Height),
	}
	state := w.view.State

	go func() {
		defer CatchPanicToContext(cancel)
		cancel(save(ctx, w.app, opts, state))
	}()
}
