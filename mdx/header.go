package mdx

// VersionChunk (VERS) holds the format version of the file.
type VersionChunk struct {
	ChunkSize uint32
	Version   uint32
}

func (c *VersionChunk) Tag() Tag    { return TagVERS }
func (c *VersionChunk) Size() int   { return 8 }
func (c *VersionChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *VersionChunk) decode(r *reader) error {
	c.ChunkSize = r.u32()
	c.Version = r.u32()
	checkSize(r, "VERS chunk", c.ChunkSize, c.Size()-4)
	return nil
}

func (c *VersionChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	w.u32(c.Version)
}

////////////////////////////////////////////////////////////////

// ModelNameSize is the width of the model name field.
const ModelNameSize = 336

// ModelChunk (MODL) holds global information about the model.
type ModelChunk struct {
	ChunkSize uint32
	Name      string
	Unknown   uint32
	Extent    Extent
	BlendTime uint32
}

func (c *ModelChunk) Tag() Tag    { return TagMODL }
func (c *ModelChunk) Size() int   { return 4 + ModelNameSize + 4 + ExtentSize + 4 }
func (c *ModelChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *ModelChunk) decode(r *reader) error {
	c.ChunkSize = r.u32()
	c.Name = r.fixedString(ModelNameSize)
	c.Unknown = r.u32()
	c.Extent = readExtent(r)
	c.BlendTime = r.u32()
	checkSize(r, "MODL chunk", c.ChunkSize, c.Size()-4)
	return nil
}

func (c *ModelChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	w.fixedString(c.Name, ModelNameSize)
	w.u32(c.Unknown)
	c.Extent.put(w)
	w.u32(c.BlendTime)
}
