package mdx

// AttachmentPathSize is the width of the attachment path field.
const AttachmentPathSize = 260

// Attachment is a node where other models can be attached.
type Attachment struct {
	InclusiveSize uint32
	Node          Node
	Path          string
	AttachmentID  uint32

	Visibility *Transform[Scalar] // KATV

	Order []Tag
}

func (a *Attachment) blocks() []block {
	return []block{
		transformBlock(TagKATV, &a.Visibility),
	}
}

// Size returns the encoded size of the attachment.
func (a *Attachment) Size() int {
	return 4 + a.Node.Size() + AttachmentPathSize + 4 + blocksSize(a.blocks())
}

func (a *Attachment) UpdateSize() {
	a.Node.UpdateSize()
	a.InclusiveSize = uint32(a.Size())
}

func readAttachment(r *reader) (Attachment, uint32) {
	var a Attachment
	start := r.offset()
	a.InclusiveSize = r.u32()
	a.Node.decode(r)
	a.Path = r.fixedString(AttachmentPathSize)
	a.AttachmentID = r.u32()
	a.Order = scanBlocks(r, "attachment", start, a.InclusiveSize, a.blocks())
	checkSize(r, "attachment "+a.Node.Name, a.InclusiveSize, a.Size())
	return a, a.InclusiveSize
}

func (a *Attachment) put(w *writer) {
	w.u32(a.InclusiveSize)
	a.Node.encode(w)
	w.fixedString(a.Path, AttachmentPathSize)
	w.u32(a.AttachmentID)
	encodeBlocks(w, a.blocks(), a.Order)
}

// AttachmentChunk (ATCH) lists the attachment points of the model.
type AttachmentChunk struct {
	ChunkSize   uint32
	Attachments []Attachment
}

func (c *AttachmentChunk) Tag() Tag { return TagATCH }

func (c *AttachmentChunk) Size() int {
	n := 4
	for i := range c.Attachments {
		n += c.Attachments[i].Size()
	}
	return n
}

func (c *AttachmentChunk) UpdateSize() {
	for i := range c.Attachments {
		c.Attachments[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *AttachmentChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Attachments, warn = decodeInclusive(r, TagATCH, readAttachment)
	return warn
}

func (c *AttachmentChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Attachments {
		c.Attachments[i].put(w)
	}
}
