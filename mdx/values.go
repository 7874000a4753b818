package mdx

// Vec2 is a pair of floats, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

func readVec2(r *reader) Vec2 {
	return Vec2{X: r.f32(), Y: r.f32()}
}

func (v Vec2) put(w *writer) {
	w.f32(v.X)
	w.f32(v.Y)
}

////////////////////////////////////////////////////////////////

// Vec3 is a triple of floats, used for positions, normals, translations and
// scaling.
type Vec3 struct {
	X, Y, Z float32
}

func readVec3(r *reader) Vec3 {
	return Vec3{X: r.f32(), Y: r.f32(), Z: r.f32()}
}

func (v Vec3) put(w *writer) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

func (Vec3) keySize() int          { return 12 }
func (v Vec3) putKey(w *writer)    { v.put(w) }
func (Vec3) getKey(r *reader) Vec3 { return readVec3(r) }

////////////////////////////////////////////////////////////////

// Vec4 is a quadruple of floats, used for rotation quaternions.
type Vec4 struct {
	X, Y, Z, W float32
}

func readVec4(r *reader) Vec4 {
	return Vec4{X: r.f32(), Y: r.f32(), Z: r.f32(), W: r.f32()}
}

func (v Vec4) put(w *writer) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
	w.f32(v.W)
}

func (Vec4) keySize() int          { return 16 }
func (v Vec4) putKey(w *writer)    { v.put(w) }
func (Vec4) getKey(r *reader) Vec4 { return readVec4(r) }

////////////////////////////////////////////////////////////////

// Color is a color stored in blue, green, red order.
type Color struct {
	B, G, R float32
}

func readColor(r *reader) Color {
	return Color{B: r.f32(), G: r.f32(), R: r.f32()}
}

func (c Color) put(w *writer) {
	w.f32(c.B)
	w.f32(c.G)
	w.f32(c.R)
}

func (Color) keySize() int           { return 12 }
func (c Color) putKey(w *writer)     { c.put(w) }
func (Color) getKey(r *reader) Color { return readColor(r) }

////////////////////////////////////////////////////////////////

// Scalar is a single float keyframe value.
type Scalar float32

func (Scalar) keySize() int            { return 4 }
func (s Scalar) putKey(w *writer)      { w.f32(float32(s)) }
func (Scalar) getKey(r *reader) Scalar { return Scalar(r.f32()) }

// Integer is a single unsigned keyframe value, such as a texture index.
type Integer uint32

func (Integer) keySize() int             { return 4 }
func (i Integer) putKey(w *writer)       { w.u32(uint32(i)) }
func (Integer) getKey(r *reader) Integer { return Integer(r.u32()) }

////////////////////////////////////////////////////////////////

// ExtentSize is the encoded size of an Extent.
const ExtentSize = 28

// Extent is a bounding volume.
type Extent struct {
	BoundsRadius float32
	Min          Vec3
	Max          Vec3
}

func readExtent(r *reader) Extent {
	return Extent{
		BoundsRadius: r.f32(),
		Min:          readVec3(r),
		Max:          readVec3(r),
	}
}

func (e Extent) put(w *writer) {
	w.f32(e.BoundsRadius)
	e.Min.put(w)
	e.Max.put(w)
}

////////////////////////////////////////////////////////////////

// Face is a triangle, as three vertex indices.
type Face [3]uint16

func readFace(r *reader) Face {
	return Face{r.u16(), r.u16(), r.u16()}
}

func (f Face) put(w *writer) {
	w.u16(f[0])
	w.u16(f[1])
	w.u16(f[2])
}
