package gpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/mandelview/colormap"
)

// Texture is an immutable-storage texture with a single level.
type Texture struct {
	ID     uint32
	Target uint32
	Format uint32
	Size   image.Point
}

// NewTexture2D allocates an uninitialised 2D texture.
func NewTexture2D(format uint32, size image.Point) (*Texture, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid texture size %v", size)
	}

	t := &Texture{Target: gl.TEXTURE_2D, Format: format, Size: size}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, format, int32(size.X), int32(size.Y))
	setNearest(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

// NewPaletteTexture uploads pal as a 1D RGBA8 texture.
func NewPaletteTexture(pal colormap.Palette) (*Texture, error) {
	if len(pal) == 0 {
		return nil, fmt.Errorf("empty palette")
	}

	pix := pal.Pix()
	t := &Texture{Target: gl.TEXTURE_1D, Format: gl.RGBA8, Size: image.Pt(len(pal), 1)}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_1D, t.ID)
	gl.TexStorage1D(gl.TEXTURE_1D, 1, gl.RGBA8, int32(len(pal)))
	gl.TexSubImage1D(gl.TEXTURE_1D, 0, 0, int32(len(pal)), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	setNearest(gl.TEXTURE_1D)
	gl.BindTexture(gl.TEXTURE_1D, 0)

	return t, nil
}

func setNearest(target uint32) {
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (t *Texture) Delete() {
	if t == nil || t.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}

// attach makes t the only colour attachment of fbo, creating fbo if needed.
func attach(fbo *uint32, t *Texture) error {
	if *fbo == 0 {
		gl.GenFramebuffers(1, fbo)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, *fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.ID, 0)
	drawBuffer := uint32(gl.COLOR_ATTACHMENT0)
	gl.DrawBuffers(1, &drawBuffer)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}
