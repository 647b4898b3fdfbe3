package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// CatchPanicToContext recovers a panic and cancels the context with it.
// It must be deferred.
func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

// AttachErrorDialog shows an error dialog over parent if ctx ends with a
// cause other than cancellation.
func AttachErrorDialog(parent *gtk.ApplicationWindow, ctx context.Context, logger *slog.Logger) {
	go func() {
		<-ctx.Done()
		err := context.Cause(ctx)
		if !errors.Is(err, context.Canceled) {
			logger.Error("background task failed", "err", err)
			glib.IdleAdd(func() {
				NewErrorDialog(parent, err)
			})
		}
	}()
}

func NewErrorDialog(
	parent *gtk.ApplicationWindow,
	err error,
) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		err.Error(),
	)

	dialog.Connect("response", dialog.Destroy)

	messageArea, err := dialog.GetMessageArea()
	if err == nil {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Run()
}
