package mdx

// SpawnModelPathSize is the width of the particle emitter model path field.
const SpawnModelPathSize = 260

// ParticleEmitter is a node that emits instances of another model.
type ParticleEmitter struct {
	InclusiveSize   uint32
	Node            Node
	EmissionRate    float32
	Gravity         float32
	Longitude       float32
	Latitude        float32
	SpawnModelPath  string
	Lifespan        float32
	InitialVelocity float32

	EmissionRateCurve    *Transform[Scalar] // KPEE
	GravityCurve         *Transform[Scalar] // KPEG
	LongitudeCurve       *Transform[Scalar] // KPLN
	LatitudeCurve        *Transform[Scalar] // KPLT
	LifespanCurve        *Transform[Scalar] // KPEL
	InitialVelocityCurve *Transform[Scalar] // KPES
	Visibility           *Transform[Scalar] // KPEV

	Order []Tag
}

func (e *ParticleEmitter) blocks() []block {
	return []block{
		transformBlock(TagKPEE, &e.EmissionRateCurve),
		transformBlock(TagKPEG, &e.GravityCurve),
		transformBlock(TagKPLN, &e.LongitudeCurve),
		transformBlock(TagKPLT, &e.LatitudeCurve),
		transformBlock(TagKPEL, &e.LifespanCurve),
		transformBlock(TagKPES, &e.InitialVelocityCurve),
		transformBlock(TagKPEV, &e.Visibility),
	}
}

// Size returns the encoded size of the emitter.
func (e *ParticleEmitter) Size() int {
	return 4 + e.Node.Size() + 16 + SpawnModelPathSize + 8 + blocksSize(e.blocks())
}

func (e *ParticleEmitter) UpdateSize() {
	e.Node.UpdateSize()
	e.InclusiveSize = uint32(e.Size())
}

func readParticleEmitter(r *reader) (ParticleEmitter, uint32) {
	var e ParticleEmitter
	start := r.offset()
	e.InclusiveSize = r.u32()
	e.Node.decode(r)
	e.EmissionRate = r.f32()
	e.Gravity = r.f32()
	e.Longitude = r.f32()
	e.Latitude = r.f32()
	e.SpawnModelPath = r.fixedString(SpawnModelPathSize)
	e.Lifespan = r.f32()
	e.InitialVelocity = r.f32()
	e.Order = scanBlocks(r, "particle emitter", start, e.InclusiveSize, e.blocks())
	checkSize(r, "particle emitter "+e.Node.Name, e.InclusiveSize, e.Size())
	return e, e.InclusiveSize
}

func (e *ParticleEmitter) put(w *writer) {
	w.u32(e.InclusiveSize)
	e.Node.encode(w)
	w.f32(e.EmissionRate)
	w.f32(e.Gravity)
	w.f32(e.Longitude)
	w.f32(e.Latitude)
	w.fixedString(e.SpawnModelPath, SpawnModelPathSize)
	w.f32(e.Lifespan)
	w.f32(e.InitialVelocity)
	encodeBlocks(w, e.blocks(), e.Order)
}

// ParticleEmitterChunk (PREM) lists the model-spawning particle emitters.
type ParticleEmitterChunk struct {
	ChunkSize uint32
	Emitters  []ParticleEmitter
}

func (c *ParticleEmitterChunk) Tag() Tag { return TagPREM }

func (c *ParticleEmitterChunk) Size() int {
	n := 4
	for i := range c.Emitters {
		n += c.Emitters[i].Size()
	}
	return n
}

func (c *ParticleEmitterChunk) UpdateSize() {
	for i := range c.Emitters {
		c.Emitters[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *ParticleEmitterChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Emitters, warn = decodeInclusive(r, TagPREM, readParticleEmitter)
	return warn
}

func (c *ParticleEmitterChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Emitters {
		c.Emitters[i].put(w)
	}
}

////////////////////////////////////////////////////////////////

// ParticleEmitter2 is a node that emits textured billboard particles.
type ParticleEmitter2 struct {
	InclusiveSize uint32
	Node          Node
	Speed         float32
	Variation     float32
	Latitude      float32
	Gravity       float32
	Lifespan      float32
	EmissionRate  float32
	Width         float32
	Length        float32
	FilterMode    uint32
	Rows          uint32
	Columns       uint32
	HeadOrTail    uint32
	TailLength    float32
	Time          float32

	SegmentColor   [3]Color
	SegmentAlpha   [3]uint8
	SegmentScaling [3]float32

	HeadIntervals      [3]uint32
	HeadDecayIntervals [3]uint32
	TailIntervals      [3]uint32
	TailDecayIntervals [3]uint32

	TextureID     uint32
	Squirt        uint32
	PriorityPlane uint32
	ReplaceableID uint32

	SpeedCurve        *Transform[Scalar] // KP2S
	VariationCurve    *Transform[Scalar] // KP2R
	LatitudeCurve     *Transform[Scalar] // KP2L
	GravityCurve      *Transform[Scalar] // KP2G
	EmissionRateCurve *Transform[Scalar] // KP2E
	LengthCurve       *Transform[Scalar] // KP2N
	WidthCurve        *Transform[Scalar] // KP2W
	Visibility        *Transform[Scalar] // KP2V

	Order []Tag
}

// particleEmitter2Fixed is the size of the fields following the node.
const particleEmitter2Fixed = 8*4 + 4*4 + 2*4 + 3*12 + 3 + 3*4 + 4*12 + 4*4

func (e *ParticleEmitter2) blocks() []block {
	return []block{
		transformBlock(TagKP2S, &e.SpeedCurve),
		transformBlock(TagKP2R, &e.VariationCurve),
		transformBlock(TagKP2L, &e.LatitudeCurve),
		transformBlock(TagKP2G, &e.GravityCurve),
		transformBlock(TagKP2E, &e.EmissionRateCurve),
		transformBlock(TagKP2N, &e.LengthCurve),
		transformBlock(TagKP2W, &e.WidthCurve),
		transformBlock(TagKP2V, &e.Visibility),
	}
}

// Size returns the encoded size of the emitter.
func (e *ParticleEmitter2) Size() int {
	return 4 + e.Node.Size() + particleEmitter2Fixed + blocksSize(e.blocks())
}

func (e *ParticleEmitter2) UpdateSize() {
	e.Node.UpdateSize()
	e.InclusiveSize = uint32(e.Size())
}

func readU32x3(r *reader) (v [3]uint32) {
	for i := range v {
		v[i] = r.u32()
	}
	return v
}

func writeU32x3(w *writer, v [3]uint32) {
	for _, x := range v {
		w.u32(x)
	}
}

func readParticleEmitter2(r *reader) (ParticleEmitter2, uint32) {
	var e ParticleEmitter2
	start := r.offset()
	e.InclusiveSize = r.u32()
	e.Node.decode(r)
	e.Speed = r.f32()
	e.Variation = r.f32()
	e.Latitude = r.f32()
	e.Gravity = r.f32()
	e.Lifespan = r.f32()
	e.EmissionRate = r.f32()
	e.Width = r.f32()
	e.Length = r.f32()
	e.FilterMode = r.u32()
	e.Rows = r.u32()
	e.Columns = r.u32()
	e.HeadOrTail = r.u32()
	e.TailLength = r.f32()
	e.Time = r.f32()
	for i := range e.SegmentColor {
		e.SegmentColor[i] = readColor(r)
	}
	for i := range e.SegmentAlpha {
		e.SegmentAlpha[i] = r.u8()
	}
	for i := range e.SegmentScaling {
		e.SegmentScaling[i] = r.f32()
	}
	e.HeadIntervals = readU32x3(r)
	e.HeadDecayIntervals = readU32x3(r)
	e.TailIntervals = readU32x3(r)
	e.TailDecayIntervals = readU32x3(r)
	e.TextureID = r.u32()
	e.Squirt = r.u32()
	e.PriorityPlane = r.u32()
	e.ReplaceableID = r.u32()
	e.Order = scanBlocks(r, "particle emitter 2", start, e.InclusiveSize, e.blocks())
	checkSize(r, "particle emitter 2 "+e.Node.Name, e.InclusiveSize, e.Size())
	return e, e.InclusiveSize
}

func (e *ParticleEmitter2) put(w *writer) {
	w.u32(e.InclusiveSize)
	e.Node.encode(w)
	w.f32(e.Speed)
	w.f32(e.Variation)
	w.f32(e.Latitude)
	w.f32(e.Gravity)
	w.f32(e.Lifespan)
	w.f32(e.EmissionRate)
	w.f32(e.Width)
	w.f32(e.Length)
	w.u32(e.FilterMode)
	w.u32(e.Rows)
	w.u32(e.Columns)
	w.u32(e.HeadOrTail)
	w.f32(e.TailLength)
	w.f32(e.Time)
	for _, c := range e.SegmentColor {
		c.put(w)
	}
	for _, a := range e.SegmentAlpha {
		w.u8(a)
	}
	for _, s := range e.SegmentScaling {
		w.f32(s)
	}
	writeU32x3(w, e.HeadIntervals)
	writeU32x3(w, e.HeadDecayIntervals)
	writeU32x3(w, e.TailIntervals)
	writeU32x3(w, e.TailDecayIntervals)
	w.u32(e.TextureID)
	w.u32(e.Squirt)
	w.u32(e.PriorityPlane)
	w.u32(e.ReplaceableID)
	encodeBlocks(w, e.blocks(), e.Order)
}

// ParticleEmitter2Chunk (PRE2) lists the billboard particle emitters.
type ParticleEmitter2Chunk struct {
	ChunkSize uint32
	Emitters  []ParticleEmitter2
}

func (c *ParticleEmitter2Chunk) Tag() Tag { return TagPRE2 }

func (c *ParticleEmitter2Chunk) Size() int {
	n := 4
	for i := range c.Emitters {
		n += c.Emitters[i].Size()
	}
	return n
}

func (c *ParticleEmitter2Chunk) UpdateSize() {
	for i := range c.Emitters {
		c.Emitters[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *ParticleEmitter2Chunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Emitters, warn = decodeInclusive(r, TagPRE2, readParticleEmitter2)
	return warn
}

func (c *ParticleEmitter2Chunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Emitters {
		c.Emitters[i].put(w)
	}
}
