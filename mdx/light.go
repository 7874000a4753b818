package mdx

// LightType selects how a light emits.
type LightType uint32

const (
	LightOmni        LightType = 0
	LightDirectional LightType = 1
	LightAmbient     LightType = 2
)

// Light is a node that emits light.
type Light struct {
	InclusiveSize    uint32
	Node             Node
	Type             LightType
	AttenuationStart float32
	AttenuationEnd   float32
	Color            Color
	Intensity        float32
	AmbientColor     Color
	AmbientIntensity float32

	AttenuationStartCurve *Transform[Integer] // KLAS
	AttenuationEndCurve   *Transform[Integer] // KLAE
	ColorCurve            *Transform[Color]   // KLAC
	IntensityCurve        *Transform[Scalar]  // KLAI
	AmbientColorCurve     *Transform[Color]   // KLBC
	AmbientIntensityCurve *Transform[Scalar]  // KLBI
	Visibility            *Transform[Scalar]  // KLAV

	Order []Tag
}

func (l *Light) blocks() []block {
	return []block{
		transformBlock(TagKLAS, &l.AttenuationStartCurve),
		transformBlock(TagKLAE, &l.AttenuationEndCurve),
		transformBlock(TagKLAC, &l.ColorCurve),
		transformBlock(TagKLAI, &l.IntensityCurve),
		transformBlock(TagKLBC, &l.AmbientColorCurve),
		transformBlock(TagKLBI, &l.AmbientIntensityCurve),
		transformBlock(TagKLAV, &l.Visibility),
	}
}

// Size returns the encoded size of the light.
func (l *Light) Size() int {
	return 4 + l.Node.Size() + 4 + 4 + 4 + 12 + 4 + 12 + 4 + blocksSize(l.blocks())
}

func (l *Light) UpdateSize() {
	l.Node.UpdateSize()
	l.InclusiveSize = uint32(l.Size())
}

func readLight(r *reader) (Light, uint32) {
	var l Light
	start := r.offset()
	l.InclusiveSize = r.u32()
	l.Node.decode(r)
	l.Type = LightType(r.u32())
	l.AttenuationStart = r.f32()
	l.AttenuationEnd = r.f32()
	l.Color = readColor(r)
	l.Intensity = r.f32()
	l.AmbientColor = readColor(r)
	l.AmbientIntensity = r.f32()
	l.Order = scanBlocks(r, "light", start, l.InclusiveSize, l.blocks())
	checkSize(r, "light "+l.Node.Name, l.InclusiveSize, l.Size())
	return l, l.InclusiveSize
}

func (l *Light) put(w *writer) {
	w.u32(l.InclusiveSize)
	l.Node.encode(w)
	w.u32(uint32(l.Type))
	w.f32(l.AttenuationStart)
	w.f32(l.AttenuationEnd)
	l.Color.put(w)
	w.f32(l.Intensity)
	l.AmbientColor.put(w)
	w.f32(l.AmbientIntensity)
	encodeBlocks(w, l.blocks(), l.Order)
}

// LightChunk (LITE) lists the lights of the model.
type LightChunk struct {
	ChunkSize uint32
	Lights    []Light
}

func (c *LightChunk) Tag() Tag { return TagLITE }

func (c *LightChunk) Size() int {
	n := 4
	for i := range c.Lights {
		n += c.Lights[i].Size()
	}
	return n
}

func (c *LightChunk) UpdateSize() {
	for i := range c.Lights {
		c.Lights[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *LightChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Lights, warn = decodeInclusive(r, TagLITE, readLight)
	return warn
}

func (c *LightChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Lights {
		c.Lights[i].put(w)
	}
}
