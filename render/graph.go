// Package render runs an ordered list of GPU passes once per frame.
package render

import (
	"log/slog"

	"github.com/stewi1014/mandelview/programs"
)

// Frame is the per-frame input every pass sees.
type Frame struct {
	Width    int
	Height   int
	Uniforms programs.Uniforms

	// Target is the framebuffer the final image is presented to.
	Target uint32
}

// Pass is one step of the frame. Prepare builds whatever bindings the pass
// needs and reports whether the pass can run this frame.
type Pass interface {
	Name() string
	Prepare(f *Frame) bool
	Run(f *Frame)
}

// Graph is a fixed sequence of passes.
type Graph struct {
	Passes []Pass
	Log    *slog.Logger
}

func NewGraph(logger *slog.Logger, passes ...Pass) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	return &Graph{
		Passes: passes,
		Log:    logger,
	}
}

// Execute prepares every pass, then runs the ones that are ready, in order.
// It returns the names of the passes that ran.
func (g *Graph) Execute(f *Frame) []string {
	ready := make([]bool, len(g.Passes))
	for i, p := range g.Passes {
		ready[i] = p.Prepare(f)
	}

	ran := make([]string, 0, len(g.Passes))
	for i, p := range g.Passes {
		if !ready[i] {
			g.Log.Debug("pass skipped", "pass", p.Name(), "width", f.Width, "height", f.Height)
			continue
		}
		p.Run(f)
		ran = append(ran, p.Name())
	}
	return ran
}
