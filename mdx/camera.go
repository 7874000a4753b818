package mdx

// Camera is a viewpoint defined by the model. Cameras are not nodes.
type Camera struct {
	InclusiveSize uint32
	Name          string
	Position      Vec3
	FieldOfView   float32
	FarClip       float32
	NearClip      float32
	Target        Vec3

	Translation       *Transform[Vec3]    // KCTR
	Rotation          *Transform[Integer] // KCRL
	TargetTranslation *Transform[Vec3]    // KTTR

	Order []Tag
}

func (c *Camera) blocks() []block {
	return []block{
		transformBlock(TagKCTR, &c.Translation),
		transformBlock(TagKCRL, &c.Rotation),
		transformBlock(TagKTTR, &c.TargetTranslation),
	}
}

// Size returns the encoded size of the camera.
func (c *Camera) Size() int {
	return 4 + NameSize + 12 + 12 + 12 + blocksSize(c.blocks())
}

func (c *Camera) UpdateSize() {
	c.InclusiveSize = uint32(c.Size())
}

func readCamera(r *reader) (Camera, uint32) {
	var c Camera
	start := r.offset()
	c.InclusiveSize = r.u32()
	c.Name = r.fixedString(NameSize)
	c.Position = readVec3(r)
	c.FieldOfView = r.f32()
	c.FarClip = r.f32()
	c.NearClip = r.f32()
	c.Target = readVec3(r)
	c.Order = scanBlocks(r, "camera", start, c.InclusiveSize, c.blocks())
	checkSize(r, "camera "+c.Name, c.InclusiveSize, c.Size())
	return c, c.InclusiveSize
}

func (c *Camera) put(w *writer) {
	w.u32(c.InclusiveSize)
	w.fixedString(c.Name, NameSize)
	c.Position.put(w)
	w.f32(c.FieldOfView)
	w.f32(c.FarClip)
	w.f32(c.NearClip)
	c.Target.put(w)
	encodeBlocks(w, c.blocks(), c.Order)
}

// CameraChunk (CAMS) lists the cameras of the model.
type CameraChunk struct {
	ChunkSize uint32
	Cameras   []Camera
}

func (c *CameraChunk) Tag() Tag { return TagCAMS }

func (c *CameraChunk) Size() int {
	n := 4
	for i := range c.Cameras {
		n += c.Cameras[i].Size()
	}
	return n
}

func (c *CameraChunk) UpdateSize() {
	for i := range c.Cameras {
		c.Cameras[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *CameraChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Cameras, warn = decodeInclusive(r, TagCAMS, readCamera)
	return warn
}

func (c *CameraChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Cameras {
		c.Cameras[i].put(w)
	}
}
