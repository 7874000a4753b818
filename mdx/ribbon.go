package mdx

// RibbonEmitter is a node that leaves a textured trail behind it.
type RibbonEmitter struct {
	InclusiveSize uint32
	Node          Node
	HeightAbove   float32
	HeightBelow   float32
	Alpha         float32
	Color         Color
	Lifespan      float32
	TextureSlot   uint32
	EmissionRate  uint32
	Rows          uint32
	Columns       uint32
	MaterialID    uint32
	Gravity       float32

	HeightAboveCurve *Transform[Scalar]  // KRHA
	HeightBelowCurve *Transform[Scalar]  // KRHB
	AlphaCurve       *Transform[Scalar]  // KRAL
	ColorCurve       *Transform[Color]   // KRCO
	TextureSlotCurve *Transform[Integer] // KRTX
	Visibility       *Transform[Scalar]  // KRVS

	Order []Tag
}

func (e *RibbonEmitter) blocks() []block {
	return []block{
		transformBlock(TagKRHA, &e.HeightAboveCurve),
		transformBlock(TagKRHB, &e.HeightBelowCurve),
		transformBlock(TagKRAL, &e.AlphaCurve),
		transformBlock(TagKRCO, &e.ColorCurve),
		transformBlock(TagKRTX, &e.TextureSlotCurve),
		transformBlock(TagKRVS, &e.Visibility),
	}
}

// Size returns the encoded size of the emitter.
func (e *RibbonEmitter) Size() int {
	return 4 + e.Node.Size() + 12 + 12 + 4 + 20 + 4 + blocksSize(e.blocks())
}

func (e *RibbonEmitter) UpdateSize() {
	e.Node.UpdateSize()
	e.InclusiveSize = uint32(e.Size())
}

func readRibbonEmitter(r *reader) (RibbonEmitter, uint32) {
	var e RibbonEmitter
	start := r.offset()
	e.InclusiveSize = r.u32()
	e.Node.decode(r)
	e.HeightAbove = r.f32()
	e.HeightBelow = r.f32()
	e.Alpha = r.f32()
	e.Color = readColor(r)
	e.Lifespan = r.f32()
	e.TextureSlot = r.u32()
	e.EmissionRate = r.u32()
	e.Rows = r.u32()
	e.Columns = r.u32()
	e.MaterialID = r.u32()
	e.Gravity = r.f32()
	e.Order = scanBlocks(r, "ribbon emitter", start, e.InclusiveSize, e.blocks())
	checkSize(r, "ribbon emitter "+e.Node.Name, e.InclusiveSize, e.Size())
	return e, e.InclusiveSize
}

func (e *RibbonEmitter) put(w *writer) {
	w.u32(e.InclusiveSize)
	e.Node.encode(w)
	w.f32(e.HeightAbove)
	w.f32(e.HeightBelow)
	w.f32(e.Alpha)
	e.Color.put(w)
	w.f32(e.Lifespan)
	w.u32(e.TextureSlot)
	w.u32(e.EmissionRate)
	w.u32(e.Rows)
	w.u32(e.Columns)
	w.u32(e.MaterialID)
	w.f32(e.Gravity)
	encodeBlocks(w, e.blocks(), e.Order)
}

// RibbonEmitterChunk (RIBB) lists the ribbon emitters of the model.
type RibbonEmitterChunk struct {
	ChunkSize uint32
	Emitters  []RibbonEmitter
}

func (c *RibbonEmitterChunk) Tag() Tag { return TagRIBB }

func (c *RibbonEmitterChunk) Size() int {
	n := 4
	for i := range c.Emitters {
		n += c.Emitters[i].Size()
	}
	return n
}

func (c *RibbonEmitterChunk) UpdateSize() {
	for i := range c.Emitters {
		c.Emitters[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *RibbonEmitterChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Emitters, warn = decodeInclusive(r, TagRIBB, readRibbonEmitter)
	return warn
}

func (c *RibbonEmitterChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Emitters {
		c.Emitters[i].put(w)
	}
}
