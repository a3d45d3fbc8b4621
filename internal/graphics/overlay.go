package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay draws a few lines of debug text in the top-left corner. Lines are
// rasterized on the CPU with the builtin 7x13 face, uploaded as one RGBA
// texture and drawn as a single blended quad.
type Overlay struct {
	shader  *Shader
	vao     uint32
	vbo     uint32
	texture uint32

	face   font.Face
	canvas *image.RGBA

	winW int
	winH int
}

const (
	overlayWidth  = 512
	overlayHeight = 128
	overlayMargin = 8
)

// NewOverlay compiles the overlay pipeline and allocates the text texture.
func NewOverlay(winW, winH int) (*Overlay, error) {
	shader, err := NewShader(
		filepath.Join(ShadersDir, OverlayVertShader),
		filepath.Join(ShadersDir, OverlayFragShader),
	)
	if err != nil {
		return nil, err
	}

	o := &Overlay{
		shader: shader,
		face:   basicfont.Face7x13,
		canvas: image.NewRGBA(image.Rect(0, 0, overlayWidth, overlayHeight)),
		winW:   winW,
		winH:   winH,
	}
	o.initGL()
	return o, nil
}

func (o *Overlay) initGL() {
	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	// Two triangles of pos.xy + uv.xy, rewritten each draw.
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetViewport updates the window size used to place the quad.
func (o *Overlay) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		o.winW = width
		o.winH = height
	}
}

// Draw rasterizes the lines and blits them over the frame. Call after the
// world render so the text stays on top.
func (o *Overlay) Draw(lines []string) {
	if len(lines) == 0 {
		return
	}
	o.rasterize(lines)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		overlayWidth, overlayHeight, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.canvas.Pix))

	o.shader.Use()
	o.shader.SetInt("text", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	verts := o.quadVertices()
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// Release frees the GL resources.
func (o *Overlay) Release() {
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	gl.DeleteTextures(1, &o.texture)
	o.shader.Delete()
}

func (o *Overlay) rasterize(lines []string) {
	draw.Draw(o.canvas, o.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	metrics := o.face.Metrics()
	lineStep := metrics.Height.Ceil() + 2
	drawer := font.Drawer{
		Dst:  o.canvas,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: o.face,
	}
	y := metrics.Ascent.Ceil() + 2
	for _, line := range lines {
		if y > overlayHeight {
			break
		}
		drawer.Dot = fixed.P(2, y)
		drawer.DrawString(line)
		y += lineStep
	}
}

// quadVertices places the text quad in normalized device coordinates so the
// shader needs no projection uniform.
func (o *Overlay) quadVertices() []float32 {
	w := 2 * float32(overlayWidth) / float32(o.winW)
	h := 2 * float32(overlayHeight) / float32(o.winH)
	x0 := -1 + 2*float32(overlayMargin)/float32(o.winW)
	y0 := 1 - 2*float32(overlayMargin)/float32(o.winH)
	x1 := x0 + w
	y1 := y0 - h

	return []float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,

		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x1, y0, 1, 0,
	}
}
