package mdx

const (
	// TextureSize is the encoded size of a Texture.
	TextureSize = 268
	// TextureFileNameSize is the width of the texture file name field.
	TextureFileNameSize = 256
)

// Texture refers to an image file, or to a replaceable texture supplied by
// the engine when ReplaceableID is not zero.
type Texture struct {
	ReplaceableID uint32
	FileName      string
	Unknown       uint32
	Flags         uint32
}

func readTexture(r *reader) (t Texture) {
	t.ReplaceableID = r.u32()
	t.FileName = r.fixedString(TextureFileNameSize)
	t.Unknown = r.u32()
	t.Flags = r.u32()
	return t
}

func (t *Texture) put(w *writer) {
	w.u32(t.ReplaceableID)
	w.fixedString(t.FileName, TextureFileNameSize)
	w.u32(t.Unknown)
	w.u32(t.Flags)
}

// TextureChunk (TEXS) lists the textures of the model.
type TextureChunk struct {
	ChunkSize uint32
	Textures  []Texture
}

func (c *TextureChunk) Tag() Tag    { return TagTEXS }
func (c *TextureChunk) Size() int   { return 4 + len(c.Textures)*TextureSize }
func (c *TextureChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *TextureChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Textures, warn = decodeDivided(r, TagTEXS, TextureSize, readTexture)
	return warn
}

func (c *TextureChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Textures {
		c.Textures[i].put(w)
	}
}

////////////////////////////////////////////////////////////////

// TextureAnimation animates texture coordinates.
type TextureAnimation struct {
	InclusiveSize uint32

	Translation *Transform[Vec3] // KTAT
	Rotation    *Transform[Vec4] // KTAR
	Scaling     *Transform[Vec3] // KTAS

	Order []Tag
}

func (a *TextureAnimation) blocks() []block {
	return []block{
		transformBlock(TagKTAT, &a.Translation),
		transformBlock(TagKTAR, &a.Rotation),
		transformBlock(TagKTAS, &a.Scaling),
	}
}

// Size returns the encoded size of the texture animation.
func (a *TextureAnimation) Size() int {
	return 4 + blocksSize(a.blocks())
}

func (a *TextureAnimation) UpdateSize() {
	a.InclusiveSize = uint32(a.Size())
}

func readTextureAnimation(r *reader) (TextureAnimation, uint32) {
	var a TextureAnimation
	start := r.offset()
	a.InclusiveSize = r.u32()
	a.Order = scanBlocks(r, "texture animation", start, a.InclusiveSize, a.blocks())
	checkSize(r, "texture animation", a.InclusiveSize, a.Size())
	return a, a.InclusiveSize
}

func (a *TextureAnimation) put(w *writer) {
	w.u32(a.InclusiveSize)
	encodeBlocks(w, a.blocks(), a.Order)
}

// TextureAnimationChunk (TXAN) lists the texture animations of the model.
type TextureAnimationChunk struct {
	ChunkSize  uint32
	Animations []TextureAnimation
}

func (c *TextureAnimationChunk) Tag() Tag { return TagTXAN }

func (c *TextureAnimationChunk) Size() int {
	n := 4
	for i := range c.Animations {
		n += c.Animations[i].Size()
	}
	return n
}

func (c *TextureAnimationChunk) UpdateSize() {
	for i := range c.Animations {
		c.Animations[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *TextureAnimationChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Animations, warn = decodeInclusive(r, TagTXAN, readTextureAnimation)
	return warn
}

func (c *TextureAnimationChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Animations {
		c.Animations[i].put(w)
	}
}
