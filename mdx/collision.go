package mdx

import (
	"fmt"
)

// ShapeType selects the geometry of a collision shape.
type ShapeType uint32

const (
	ShapeBox      ShapeType = 0
	ShapePlane    ShapeType = 1
	ShapeSphere   ShapeType = 2
	ShapeCylinder ShapeType = 3
)

// Vertices returns the number of vertices that define the shape, or -1 if the
// shape is not known.
func (s ShapeType) Vertices() int {
	switch s {
	case ShapeBox, ShapePlane, ShapeCylinder:
		return 2
	case ShapeSphere:
		return 1
	}
	return -1
}

// HasRadius returns whether the shape is followed by a radius.
func (s ShapeType) HasRadius() bool {
	return s == ShapeSphere || s == ShapeCylinder
}

func (s ShapeType) String() string {
	switch s {
	case ShapeBox:
		return "Box"
	case ShapePlane:
		return "Plane"
	case ShapeSphere:
		return "Sphere"
	case ShapeCylinder:
		return "Cylinder"
	}
	return fmt.Sprintf("ShapeType(%d)", uint32(s))
}

// CollisionShape is a node that defines a volume used for hit testing.
type CollisionShape struct {
	Node     Node
	Shape    ShapeType
	Vertices []Vec3
	Radius   float32
}

// Size returns the encoded size of the shape.
func (c *CollisionShape) Size() int {
	n := c.Node.Size() + 4 + 12*len(c.Vertices)
	if c.Shape.HasRadius() {
		n += 4
	}
	return n
}

func readCollisionShape(r *reader) (CollisionShape, uint32) {
	var c CollisionShape
	c.Node.decode(r)
	c.Shape = ShapeType(r.u32())
	if !r.ok() {
		return c, 0
	}
	n := c.Shape.Vertices()
	if n < 0 {
		r.fail(fmt.Errorf("%w: %d", ErrUnknownShape, uint32(c.Shape)))
		return c, 0
	}
	c.Vertices = make([]Vec3, n)
	for i := range c.Vertices {
		c.Vertices[i] = readVec3(r)
	}
	if c.Shape.HasRadius() {
		c.Radius = r.f32()
	}
	return c, uint32(c.Size())
}

// put writes the shape, which must be of a known type and carry the number of
// vertices that type requires.
func (c *CollisionShape) put(w *writer) {
	c.Node.encode(w)
	n := c.Shape.Vertices()
	if n < 0 {
		w.fail(fmt.Errorf("%w: %d", ErrUnknownShape, uint32(c.Shape)))
		return
	}
	if len(c.Vertices) != n {
		w.fail(fmt.Errorf("%w: %s has %d, needs %d", ErrShapeVertices, c.Shape, len(c.Vertices), n))
		return
	}
	w.u32(uint32(c.Shape))
	for _, v := range c.Vertices {
		v.put(w)
	}
	if c.Shape.HasRadius() {
		w.f32(c.Radius)
	}
}

// CollisionShapeChunk (CLID) lists the collision shapes of the model.
type CollisionShapeChunk struct {
	ChunkSize uint32
	Shapes    []CollisionShape
}

func (c *CollisionShapeChunk) Tag() Tag { return TagCLID }

func (c *CollisionShapeChunk) Size() int {
	n := 4
	for i := range c.Shapes {
		n += c.Shapes[i].Size()
	}
	return n
}

func (c *CollisionShapeChunk) UpdateSize() {
	for i := range c.Shapes {
		c.Shapes[i].Node.UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *CollisionShapeChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Shapes, warn = decodeInclusive(r, TagCLID, readCollisionShape)
	return warn
}

func (c *CollisionShapeChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Shapes {
		c.Shapes[i].put(w)
	}
}
