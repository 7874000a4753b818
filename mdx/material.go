package mdx

// Layer is one texture pass of a material.
type Layer struct {
	InclusiveSize      uint32
	FilterMode         uint32
	ShadingFlags       uint32
	TextureID          uint32
	TextureAnimationID uint32
	CoordID            uint32
	Alpha              float32

	TextureIDCurve *Transform[Integer] // KMTF
	AlphaCurve     *Transform[Scalar]  // KMTA

	Order []Tag
}

func (l *Layer) blocks() []block {
	return []block{
		transformBlock(TagKMTF, &l.TextureIDCurve),
		transformBlock(TagKMTA, &l.AlphaCurve),
	}
}

// Size returns the encoded size of the layer.
func (l *Layer) Size() int {
	return 28 + blocksSize(l.blocks())
}

func (l *Layer) UpdateSize() {
	l.InclusiveSize = uint32(l.Size())
}

func (l *Layer) decode(r *reader) {
	start := r.offset()
	l.InclusiveSize = r.u32()
	l.FilterMode = r.u32()
	l.ShadingFlags = r.u32()
	l.TextureID = r.u32()
	l.TextureAnimationID = r.u32()
	l.CoordID = r.u32()
	l.Alpha = r.f32()
	l.Order = scanBlocks(r, "layer", start, l.InclusiveSize, l.blocks())
	checkSize(r, "layer", l.InclusiveSize, l.Size())
}

func (l *Layer) put(w *writer) {
	w.u32(l.InclusiveSize)
	w.u32(l.FilterMode)
	w.u32(l.ShadingFlags)
	w.u32(l.TextureID)
	w.u32(l.TextureAnimationID)
	w.u32(l.CoordID)
	w.f32(l.Alpha)
	encodeBlocks(w, l.blocks(), l.Order)
}

////////////////////////////////////////////////////////////////

// Material is a stack of layers applied to a geoset.
type Material struct {
	InclusiveSize uint32
	PriorityPlane uint32
	Flags         uint32
	Layers        []Layer // LAYS
}

// Size returns the encoded size of the material.
func (m *Material) Size() int {
	n := 4 + 4 + 4 + 8
	for i := range m.Layers {
		n += m.Layers[i].Size()
	}
	return n
}

func (m *Material) UpdateSize() {
	for i := range m.Layers {
		m.Layers[i].UpdateSize()
	}
	m.InclusiveSize = uint32(m.Size())
}

func readMaterial(r *reader) (Material, uint32) {
	var m Material
	m.InclusiveSize = r.u32()
	m.PriorityPlane = r.u32()
	m.Flags = r.u32()
	r.expectTag(TagLAYS)
	// The smallest layer is 28 bytes.
	m.Layers = make([]Layer, r.count(28))
	for i := range m.Layers {
		if !r.ok() {
			break
		}
		m.Layers[i].decode(r)
	}
	checkSize(r, "material", m.InclusiveSize, m.Size())
	return m, m.InclusiveSize
}

func (m *Material) put(w *writer) {
	w.u32(m.InclusiveSize)
	w.u32(m.PriorityPlane)
	w.u32(m.Flags)
	w.tag(TagLAYS)
	w.u32(uint32(len(m.Layers)))
	for i := range m.Layers {
		m.Layers[i].put(w)
	}
}

// MaterialChunk (MTLS) lists the materials of the model.
type MaterialChunk struct {
	ChunkSize uint32
	Materials []Material
}

func (c *MaterialChunk) Tag() Tag { return TagMTLS }

func (c *MaterialChunk) Size() int {
	n := 4
	for i := range c.Materials {
		n += c.Materials[i].Size()
	}
	return n
}

func (c *MaterialChunk) UpdateSize() {
	for i := range c.Materials {
		c.Materials[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *MaterialChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Materials, warn = decodeInclusive(r, TagMTLS, readMaterial)
	return warn
}

func (c *MaterialChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Materials {
		c.Materials[i].put(w)
	}
}
