package graphics

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/meshing"
	"voxelproto/internal/render"
)

// Shader file locations, resolved relative to the working directory.
const (
	ShadersDir = "assets/shaders"

	ChunkVertShader   = "chunk.vert"
	ChunkFragShader   = "chunk.frag"
	OverlayVertShader = "overlay.vert"
	OverlayFragShader = "overlay.frag"
)

// Backend is the OpenGL implementation of render.Device: it allocates one
// VAO/VBO/EBO triple per chunk and draws them with the chunk shader.
type Backend struct {
	chunkShader *Shader
}

// NewBackend initializes OpenGL state and compiles the chunk pipeline.
// Must be called with a current GL context on the locked main thread.
func NewBackend() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	// Face quads are emitted CCW from outside, so back faces can go.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	shader, err := NewShader(
		filepath.Join(ShadersDir, ChunkVertShader),
		filepath.Join(ShadersDir, ChunkFragShader),
	)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}

	return &Backend{chunkShader: shader}, nil
}

// BeginFrame clears the color and depth buffers.
func (b *Backend) BeginFrame() {
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetViewport resizes the GL viewport after a window resize.
func (b *Backend) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// CreateChunkMesh implements render.Device.
func (b *Backend) CreateChunkMesh(m *meshing.Mesh) (render.ChunkMesh, error) {
	cm := &chunkMesh{shader: b.chunkShader}

	gl.GenVertexArrays(1, &cm.vao)
	gl.GenBuffers(1, &cm.vbo)
	gl.GenBuffers(1, &cm.ebo)

	gl.BindVertexArray(cm.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cm.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cm.ebo)

	// Layout matches meshing.Vertex: pos.xyz then color.rgb, tightly packed.
	stride := int32(meshing.VertexSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	if err := cm.Upload(m); err != nil {
		cm.Release()
		return nil, err
	}
	return cm, nil
}

// chunkMesh owns the GL buffer set of exactly one chunk.
type chunkMesh struct {
	shader     *Shader
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Upload replaces the buffer contents. An empty mesh uploads zero bytes to
// keep the buffer state valid and is skipped at draw time.
func (cm *chunkMesh) Upload(m *meshing.Mesh) error {
	gl.BindVertexArray(cm.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cm.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cm.ebo)

	if m.Empty() {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		cm.indexCount = 0
		return nil
	}

	vertexData := m.VertexData()
	indexData := m.IndexData()
	gl.BufferData(gl.ARRAY_BUFFER, len(vertexData), gl.Ptr(vertexData), gl.DYNAMIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexData), gl.Ptr(indexData), gl.DYNAMIC_DRAW)
	cm.indexCount = m.IndexCount()

	if errCode := gl.GetError(); errCode == gl.OUT_OF_MEMORY {
		return fmt.Errorf("upload chunk mesh: GL out of memory")
	}
	return nil
}

// Draw writes the uniforms and issues one indexed draw call.
func (cm *chunkMesh) Draw(model, viewProj mgl32.Mat4) {
	if cm.indexCount == 0 {
		return
	}
	cm.shader.Use()
	cm.shader.SetMatrix4("model", model)
	cm.shader.SetMatrix4("viewProj", viewProj)

	gl.BindVertexArray(cm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, cm.indexCount, gl.UNSIGNED_SHORT, 0)
}

// Release frees the buffer set immediately.
func (cm *chunkMesh) Release() {
	gl.DeleteBuffers(1, &cm.ebo)
	gl.DeleteBuffers(1, &cm.vbo)
	gl.DeleteVertexArrays(1, &cm.vao)
	cm.indexCount = 0
}
