package main

import (
	"context"
	"fmt"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

func gtkMain(ctx context.Context, a *App, args []string) error {
	gtk.Init(&args)
	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	defer appQuit(nil)

	app.Connect("activate", func() {
		renderWindow := NewRenderWindow(appContext, app, a, appQuit)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle(windowTitle)

		icon, err := iconPixbuf(a)
		if err != nil {
			a.log.Warn("window icon unavailable", "err", err)
		} else {
			renderWindow.SetIcon(icon)
		}
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}

func iconPixbuf(a *App) (*gdk.Pixbuf, error) {
	icon, err := encodeIcon(a.program, a.palette)
	if err != nil {
		return nil, err
	}
	return gdk.PixbufNewFromBytesOnly(icon)
}
