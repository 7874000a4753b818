package mdx

// Bone is a node that deforms geosets.
type Bone struct {
	Node              Node
	GeosetID          uint32
	GeosetAnimationID uint32
}

// Size returns the encoded size of the bone.
func (b *Bone) Size() int {
	return b.Node.Size() + 8
}

func readBone(r *reader) (Bone, uint32) {
	var b Bone
	b.Node.decode(r)
	b.GeosetID = r.u32()
	b.GeosetAnimationID = r.u32()
	return b, b.Node.InclusiveSize + 8
}

func (b *Bone) put(w *writer) {
	b.Node.encode(w)
	w.u32(b.GeosetID)
	w.u32(b.GeosetAnimationID)
}

// BoneChunk (BONE) lists the bones of the model.
type BoneChunk struct {
	ChunkSize uint32
	Bones     []Bone
}

func (c *BoneChunk) Tag() Tag { return TagBONE }

func (c *BoneChunk) Size() int {
	n := 4
	for i := range c.Bones {
		n += c.Bones[i].Size()
	}
	return n
}

func (c *BoneChunk) UpdateSize() {
	for i := range c.Bones {
		c.Bones[i].Node.UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *BoneChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Bones, warn = decodeInclusive(r, TagBONE, readBone)
	return warn
}

func (c *BoneChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Bones {
		c.Bones[i].put(w)
	}
}

////////////////////////////////////////////////////////////////

// Helper is a node with no behavior of its own, used to group other nodes.
type Helper struct {
	Node Node
}

// Size returns the encoded size of the helper.
func (h *Helper) Size() int {
	return h.Node.Size()
}

func readHelper(r *reader) (Helper, uint32) {
	var h Helper
	h.Node.decode(r)
	return h, h.Node.InclusiveSize
}

// HelperChunk (HELP) lists the helpers of the model.
type HelperChunk struct {
	ChunkSize uint32
	Helpers   []Helper
}

func (c *HelperChunk) Tag() Tag { return TagHELP }

func (c *HelperChunk) Size() int {
	n := 4
	for i := range c.Helpers {
		n += c.Helpers[i].Size()
	}
	return n
}

func (c *HelperChunk) UpdateSize() {
	for i := range c.Helpers {
		c.Helpers[i].Node.UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *HelperChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Helpers, warn = decodeInclusive(r, TagHELP, readHelper)
	return warn
}

func (c *HelperChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Helpers {
		c.Helpers[i].Node.encode(w)
	}
}
