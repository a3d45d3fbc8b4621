package meshing

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/world"
)

// Vertex is one mesh vertex: position then color, packed in that order for
// GPU upload.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// VertexSize is the packed byte size of one Vertex (6 float32, no padding).
const VertexSize = 6 * 4

// Mesh is a finalized triangle-list mesh: vertices plus 16-bit indices.
// Instances are immutable once built.
type Mesh struct {
	vertices []Vertex
	indices  []uint16
}

// Vertices returns the vertex list. Callers must not mutate it.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the index list. Callers must not mutate it.
func (m *Mesh) Indices() []uint16 {
	return m.indices
}

// IndexCount returns the number of indices, sized for draw submission.
func (m *Mesh) IndexCount() int32 {
	return int32(len(m.indices))
}

// Empty reports whether the mesh has no geometry to draw.
func (m *Mesh) Empty() bool {
	return len(m.indices) == 0
}

// VertexData packs the vertex list for GPU upload: struct fields in declared
// order, little-endian float32, no padding. This is the explicit
// serialization step that replaces reinterpreting the vertex array as raw
// memory.
func (m *Mesh) VertexData() []byte {
	buf := make([]byte, 0, len(m.vertices)*VertexSize)
	for _, v := range m.vertices {
		for _, f := range [...]float32{
			v.Position[0], v.Position[1], v.Position[2],
			v.Color[0], v.Color[1], v.Color[2],
		} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// IndexData packs the index list as little-endian uint16.
func (m *Mesh) IndexData() []byte {
	buf := make([]byte, 0, len(m.indices)*2)
	for _, i := range m.indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf
}

// Quad is the fixed geometry of one block face: 4 vertices forming 2 CCW
// triangles via quadIndices. Base quads sit on the unit cube centered at the
// origin, so a block at (x,y,z) only needs an integer translation.
type Quad struct {
	Vertices [4]Vertex
}

// quadIndices splits a quad's 4 vertices into 2 triangles.
var quadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// Tinted returns a copy of the quad with every vertex color multiplied
// component-wise by the given tint.
func (q Quad) Tinted(tint mgl32.Vec3) Quad {
	for i := range q.Vertices {
		c := q.Vertices[i].Color
		q.Vertices[i].Color = mgl32.Vec3{c[0] * tint[0], c[1] * tint[1], c[2] * tint[2]}
	}
	return q
}

// Face shade factors fake a fixed light direction: tops bright, bottoms
// dark, sides in between. Baked into vertex colors since the pipeline has
// no normals.
var faceShades = [world.FaceCount]float32{
	0.8, // Front
	0.8, // Back
	1.0, // Up
	0.4, // Down
	0.6, // Left
	0.6, // Right
}

// faceQuads holds the unit-cube geometry per face, CCW when viewed from
// outside the cube so back-face culling keeps the outward side.
var faceQuads = [world.FaceCount][4]mgl32.Vec3{
	world.FaceFront: { // +X
		{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5},
	},
	world.FaceBack: { // -X
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
	},
	world.FaceUp: { // +Y
		{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	},
	world.FaceDown: { // -Y
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
	},
	world.FaceLeft: { // -Z
		{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5},
	},
	world.FaceRight: { // +Z
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	},
}

// FaceQuad returns the base geometry of the given face: its unit-cube
// corners with the face's shade as vertex color.
func FaceQuad(f world.Face) Quad {
	shade := faceShades[f]
	var q Quad
	for i, p := range faceQuads[f] {
		q.Vertices[i] = Vertex{
			Position: p,
			Color:    mgl32.Vec3{shade, shade, shade},
		}
	}
	return q
}
