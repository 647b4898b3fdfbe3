package gpu

import (
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/mandelview/colormap"
	"github.com/stewi1014/mandelview/programs"
	"github.com/stewi1014/mandelview/render"
)

// Targets are the textures shared between passes. They are replaced on
// resize.
type Targets struct {
	Intensity *Texture
	Output    *Texture
	Palette   *Texture
}

// FractalPass draws a fractal program over the whole intensity target.
type FractalPass struct {
	targets *Targets
	log     *slog.Logger

	program      uint32
	vao          uint32
	vbo          uint32
	ubo          uint32
	fbo          uint32
	vertexAttrib uint32
	attached     *Texture

	block []byte
}

func NewFractalPass(p programs.Program, targets *Targets, logger *slog.Logger) (*FractalPass, error) {
	program, err := LinkProgram(p.VertexShader, p.FragmentShader)
	if err != nil {
		return nil, err
	}

	f := &FractalPass{
		targets: targets,
		log:     logger,
		program: program,
	}

	// A single triangle covering the viewport.
	verticies := []float32{
		-3, -2,
		0, 3,
		3, -2,
	}

	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)

	gl.GenBuffers(1, &f.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	f.vertexAttrib = uint32(gl.GetAttribLocation(f.program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(f.vertexAttrib)
	gl.VertexAttribPointerWithOffset(f.vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)

	empty, err := programs.Uniforms{}.Std140()
	if err != nil {
		return nil, err
	}
	gl.GenBuffers(1, &f.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, f.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, len(empty), nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	return f, nil
}

func (f *FractalPass) Name() string { return "fractal" }

func (f *FractalPass) Prepare(frame *render.Frame) bool {
	target := f.targets.Intensity
	if target == nil {
		return false
	}

	if f.attached != target {
		if err := attach(&f.fbo, target); err != nil {
			f.log.Warn("fractal target unusable", "err", err)
			return false
		}
		f.attached = target
	}

	block, err := frame.Uniforms.Std140()
	if err != nil {
		f.log.Error("packing uniforms", "err", err)
		return false
	}
	f.block = block
	return true
}

func (f *FractalPass) Run(frame *render.Frame) {
	size := f.targets.Intensity.Size

	gl.BindBuffer(gl.UNIFORM_BUFFER, f.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(f.block), gl.Ptr(f.block))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, programs.UniformBinding, f.ubo)

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(size.X), int32(size.Y))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(f.program)
	gl.BindVertexArray(f.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (f *FractalPass) Delete() {
	gl.DeleteProgram(f.program)
	gl.DeleteVertexArrays(1, &f.vao)
	gl.DeleteBuffers(1, &f.vbo)
	gl.DeleteBuffers(1, &f.ubo)
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
	}
}

// colormapBinding is the set of images the kernel reads and writes in a
// frame.
type colormapBinding struct {
	intensity *Texture
	output    *Texture
	palette   *Texture
}

// ColormapPass dispatches the colormap kernel over the output target.
type ColormapPass struct {
	targets *Targets
	program uint32
	binding *colormapBinding
}

func NewColormapPass(targets *Targets) (*ColormapPass, error) {
	program, err := LinkCompute(colormap.Shader)
	if err != nil {
		return nil, err
	}
	return &ColormapPass{targets: targets, program: program}, nil
}

func (c *ColormapPass) Name() string { return "colormap" }

// Prepare binds the targets only when intensity and output are the same
// size. Otherwise the pass is skipped and the previous output stays.
func (c *ColormapPass) Prepare(frame *render.Frame) bool {
	c.binding = nil

	in, out, pal := c.targets.Intensity, c.targets.Output, c.targets.Palette
	if in == nil || out == nil || pal == nil {
		return false
	}
	if !colormap.Matches(in.Size, out.Size) {
		return false
	}

	c.binding = &colormapBinding{
		intensity: in,
		output:    out,
		palette:   pal,
	}
	return true
}

func (c *ColormapPass) Run(frame *render.Frame) {
	b := c.binding
	if b == nil {
		return
	}

	gl.UseProgram(c.program)
	gl.BindImageTexture(colormap.BindingIntensity, b.intensity.ID, 0, false, 0, gl.READ_ONLY, gl.R32F)
	gl.BindImageTexture(colormap.BindingOutput, b.output.ID, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)
	gl.BindImageTexture(colormap.BindingPalette, b.palette.ID, 0, false, 0, gl.READ_ONLY, gl.RGBA8)

	x, y := colormap.Groups(b.output.Size)
	gl.DispatchCompute(x, y, 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.FRAMEBUFFER_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}

func (c *ColormapPass) Delete() {
	gl.DeleteProgram(c.program)
}

// PresentPass copies the output target to the frame's target framebuffer.
type PresentPass struct {
	targets  *Targets
	log      *slog.Logger
	fbo      uint32
	attached *Texture
}

func NewPresentPass(targets *Targets, logger *slog.Logger) *PresentPass {
	return &PresentPass{targets: targets, log: logger}
}

func (p *PresentPass) Name() string { return "present" }

func (p *PresentPass) Prepare(frame *render.Frame) bool {
	out := p.targets.Output
	if out == nil {
		return false
	}

	if p.attached != out {
		if err := attach(&p.fbo, out); err != nil {
			p.log.Warn("output target unusable", "err", err)
			return false
		}
		p.attached = out
	}
	return true
}

func (p *PresentPass) Run(frame *render.Frame) {
	size := p.targets.Output.Size

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, frame.Target)
	gl.Viewport(0, 0, int32(frame.Width), int32(frame.Height))
	gl.BlitFramebuffer(
		0, 0, int32(size.X), int32(size.Y),
		0, 0, int32(frame.Width), int32(frame.Height),
		gl.COLOR_BUFFER_BIT, gl.NEAREST,
	)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, frame.Target)
}

func (p *PresentPass) Delete() {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
	}
}
