package gpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/mandelview/colormap"
	"github.com/stewi1014/mandelview/programs"
	"github.com/stewi1014/mandelview/render"
	"github.com/stewi1014/mandelview/view"
)

// Renderer draws a fractal through the fractal, colormap and present passes.
type Renderer struct {
	log     *slog.Logger
	program programs.Program
	palette colormap.Palette

	targets  Targets
	fractal  *FractalPass
	colormap *ColormapPass
	present  *PresentPass
	graph    *render.Graph

	width, height int
}

func NewRenderer(program programs.Program, palette colormap.Palette, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		log:     logger,
		program: program,
		palette: palette,
	}
}

// Init loads GL and creates the passes. The GL context must be current.
func (r *Renderer) Init(debug bool) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init: %w", err)
	}
	r.log.Info("OpenGL initialised",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	if debug {
		EnableDebugOutput(r.log)
	}

	var err error
	r.targets.Palette, err = NewPaletteTexture(r.palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	r.fractal, err = NewFractalPass(r.program, &r.targets, r.log)
	if err != nil {
		return fmt.Errorf("loading %v: %w", r.program.Name, err)
	}

	r.colormap, err = NewColormapPass(&r.targets)
	if err != nil {
		return fmt.Errorf("loading colormap: %w", err)
	}

	r.present = NewPresentPass(&r.targets, r.log)
	r.graph = render.NewGraph(r.log, r.fractal, r.colormap, r.present)
	return nil
}

// Resize reallocates the intensity and output targets. Zero sizes are
// ignored.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return nil
	}
	r.width, r.height = width, height

	size := image.Pt(width, height)
	intensity, err := NewTexture2D(gl.R32F, size)
	if err != nil {
		return fmt.Errorf("intensity target: %w", err)
	}
	output, err := NewTexture2D(gl.RGBA8, size)
	if err != nil {
		intensity.Delete()
		return fmt.Errorf("output target: %w", err)
	}

	r.targets.Intensity.Delete()
	r.targets.Output.Delete()
	r.targets.Intensity, r.targets.Output = intensity, output

	r.log.Debug("render targets resized", "width", width, "height", height)
	return nil
}

// Draw renders state into the framebuffer target.
func (r *Renderer) Draw(state view.State, target uint32) error {
	if r.graph == nil {
		return errors.New("renderer not initialised")
	}

	r.graph.Execute(&render.Frame{
		Width:    r.width,
		Height:   r.height,
		Uniforms: programs.NewUniforms(state),
		Target:   target,
	})
	return nil
}

// CurrentFramebuffer returns the framebuffer bound for drawing, which is
// where a toolkit expects a widget to render.
func CurrentFramebuffer() uint32 {
	var fbo int32
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &fbo)
	return uint32(fbo)
}

func (r *Renderer) Delete() {
	if r.fractal != nil {
		r.fractal.Delete()
	}
	if r.colormap != nil {
		r.colormap.Delete()
	}
	if r.present != nil {
		r.present.Delete()
	}
	r.targets.Intensity.Delete()
	r.targets.Output.Delete()
	r.targets.Palette.Delete()
	r.graph = nil
}
