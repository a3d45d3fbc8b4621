package world

import "github.com/go-gl/mathgl/mgl32"

// Block is a single voxel cell. Air is the zero value; every other value is
// solid. Generic colored voxels are encoded as ID(n) with an opaque 8-bit id.
type Block uint16

const (
	Air  Block = 0
	Dirt Block = 1

	// idBit marks the ID(n) range; the low byte holds the id.
	idBit Block = 0x100
)

// ID returns the generic colored block keyed by the given id.
func ID(n uint8) Block {
	return idBit | Block(n)
}

// IsID reports whether b is a generic ID block.
func (b Block) IsID() bool {
	return b&idBit != 0
}

// Solid reports whether b occludes and renders. Everything but Air is solid.
func (b Block) Solid() bool {
	return b != Air
}

// idPalette maps ID blocks to render tints, cycling over the low byte.
var idPalette = [...]mgl32.Vec3{
	{1.0, 0.1, 0.1},
	{0.1, 0.8, 0.2},
	{0.2, 0.3, 1.0},
	{0.9, 0.8, 0.1},
	{0.8, 0.2, 0.9},
	{0.1, 0.8, 0.8},
	{0.9, 0.5, 0.1},
	{0.9, 0.9, 0.9},
}

// Color returns the render tint of a solid block. Air has no visual
// representation and yields the zero vector.
func (b Block) Color() mgl32.Vec3 {
	switch {
	case b == Dirt:
		return mgl32.Vec3{0.5, 0.5, 0.5}
	case b.IsID():
		return idPalette[int(b&0xff)%len(idPalette)]
	default:
		return mgl32.Vec3{}
	}
}

// Face identifies one of the six axis-aligned quads bounding a block cell.
// The enumeration order below is also the emission order of the mesher.
type Face uint8

const (
	FaceFront Face = iota // +X
	FaceBack              // -X
	FaceUp                // +Y
	FaceDown              // -Y
	FaceLeft              // -Z
	FaceRight             // +Z

	FaceCount = 6
)

// AllFaces lists every face in enumeration order.
var AllFaces = [FaceCount]Face{FaceFront, FaceBack, FaceUp, FaceDown, FaceLeft, FaceRight}

// Offset returns the unit step toward the neighbor this face looks at.
func (f Face) Offset() (dx, dy, dz int) {
	switch f {
	case FaceFront:
		return 1, 0, 0
	case FaceBack:
		return -1, 0, 0
	case FaceUp:
		return 0, 1, 0
	case FaceDown:
		return 0, -1, 0
	case FaceLeft:
		return 0, 0, -1
	case FaceRight:
		return 0, 0, 1
	}
	return 0, 0, 0
}

// Opposite returns the face looking back along f's offset.
func (f Face) Opposite() Face {
	switch f {
	case FaceFront:
		return FaceBack
	case FaceBack:
		return FaceFront
	case FaceUp:
		return FaceDown
	case FaceDown:
		return FaceUp
	case FaceLeft:
		return FaceRight
	case FaceRight:
		return FaceLeft
	}
	return f
}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "Front"
	case FaceBack:
		return "Back"
	case FaceUp:
		return "Up"
	case FaceDown:
		return "Down"
	case FaceLeft:
		return "Left"
	case FaceRight:
		return "Right"
	}
	return "Face(?)"
}
