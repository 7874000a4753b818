package mdx

// Geoset is a mesh: vertex data, faces and the bone matrices that deform it.
type Geoset struct {
	InclusiveSize uint32

	Vertices  []Vec3   // VRTX
	Normals   []Vec3   // NRMS
	FaceTypes []uint32 // PTYP
	// FaceGroups holds the number of indices in each face group.
	FaceGroups []uint32 // PCNT
	Faces []Face // PVTX
	// VertexGroups maps each vertex to a matrix group.
	VertexGroups []uint8 // GNDX
	// MatrixGroups holds the number of matrix indices in each group.
	MatrixGroups  []uint32 // MTGC
	MatrixIndices []uint32 // MATS

	MaterialID     uint32
	SelectionGroup uint32
	SelectionFlags uint32

	Extent Extent
	// SequenceExtents holds one extent per sequence.
	SequenceExtents []Extent

	// TextureCoordinateSets holds one list of texture coordinates per set.
	TextureCoordinateSets [][]Vec2 // UVAS, UVBS
}

// Size returns the encoded size of the geoset.
func (g *Geoset) Size() int {
	n := 4
	n += 8 + len(g.Vertices)*12
	n += 8 + len(g.Normals)*12
	n += 8 + len(g.FaceTypes)*4
	n += 8 + len(g.FaceGroups)*4
	n += 8 + len(g.Faces)*6
	n += 8 + len(g.VertexGroups)
	n += 8 + len(g.MatrixGroups)*4
	n += 8 + len(g.MatrixIndices)*4
	n += 12
	n += ExtentSize
	n += 4 + len(g.SequenceExtents)*ExtentSize
	n += 8
	for _, set := range g.TextureCoordinateSets {
		n += 8 + len(set)*8
	}
	return n
}

func (g *Geoset) UpdateSize() {
	g.InclusiveSize = uint32(g.Size())
}

func readGeoset(r *reader) (Geoset, uint32) {
	var g Geoset
	g.InclusiveSize = r.u32()

	r.expectTag(TagVRTX)
	g.Vertices = make([]Vec3, r.count(12))
	for i := range g.Vertices {
		g.Vertices[i] = readVec3(r)
	}

	r.expectTag(TagNRMS)
	g.Normals = make([]Vec3, r.count(12))
	for i := range g.Normals {
		g.Normals[i] = readVec3(r)
	}

	r.expectTag(TagPTYP)
	g.FaceTypes = readU32s(r)

	r.expectTag(TagPCNT)
	g.FaceGroups = readU32s(r)

	r.expectTag(TagPVTX)
	g.Faces = make([]Face, r.count(6))
	for i := range g.Faces {
		g.Faces[i] = readFace(r)
	}

	r.expectTag(TagGNDX)
	g.VertexGroups = r.bytes(r.count(1))

	r.expectTag(TagMTGC)
	g.MatrixGroups = readU32s(r)

	r.expectTag(TagMATS)
	g.MatrixIndices = readU32s(r)

	g.MaterialID = r.u32()
	g.SelectionGroup = r.u32()
	g.SelectionFlags = r.u32()
	g.Extent = readExtent(r)
	g.SequenceExtents = make([]Extent, r.count(ExtentSize))
	for i := range g.SequenceExtents {
		g.SequenceExtents[i] = readExtent(r)
	}

	r.expectTag(TagUVAS)
	g.TextureCoordinateSets = make([][]Vec2, r.count(8))
	for i := range g.TextureCoordinateSets {
		r.expectTag(TagUVBS)
		set := make([]Vec2, r.count(8))
		for j := range set {
			set[j] = readVec2(r)
		}
		g.TextureCoordinateSets[i] = set
	}

	checkSize(r, "geoset", g.InclusiveSize, g.Size())
	return g, g.InclusiveSize
}

func (g *Geoset) put(w *writer) {
	w.u32(g.InclusiveSize)

	w.tag(TagVRTX)
	w.u32(uint32(len(g.Vertices)))
	for _, v := range g.Vertices {
		v.put(w)
	}

	w.tag(TagNRMS)
	w.u32(uint32(len(g.Normals)))
	for _, v := range g.Normals {
		v.put(w)
	}

	w.tag(TagPTYP)
	writeU32s(w, g.FaceTypes)

	w.tag(TagPCNT)
	writeU32s(w, g.FaceGroups)

	w.tag(TagPVTX)
	w.u32(uint32(len(g.Faces)))
	for _, f := range g.Faces {
		f.put(w)
	}

	w.tag(TagGNDX)
	w.u32(uint32(len(g.VertexGroups)))
	w.bytes(g.VertexGroups)

	w.tag(TagMTGC)
	writeU32s(w, g.MatrixGroups)

	w.tag(TagMATS)
	writeU32s(w, g.MatrixIndices)

	w.u32(g.MaterialID)
	w.u32(g.SelectionGroup)
	w.u32(g.SelectionFlags)
	g.Extent.put(w)
	w.u32(uint32(len(g.SequenceExtents)))
	for _, e := range g.SequenceExtents {
		e.put(w)
	}

	w.tag(TagUVAS)
	w.u32(uint32(len(g.TextureCoordinateSets)))
	for _, set := range g.TextureCoordinateSets {
		w.tag(TagUVBS)
		w.u32(uint32(len(set)))
		for _, v := range set {
			v.put(w)
		}
	}
}

// readU32s reads a count-prefixed list of u32 values.
func readU32s(r *reader) []uint32 {
	s := make([]uint32, r.count(4))
	for i := range s {
		s[i] = r.u32()
	}
	return s
}

func writeU32s(w *writer, s []uint32) {
	w.u32(uint32(len(s)))
	for _, v := range s {
		w.u32(v)
	}
}

// GeosetChunk (GEOS) lists the geosets of the model.
type GeosetChunk struct {
	ChunkSize uint32
	Geosets   []Geoset
}

func (c *GeosetChunk) Tag() Tag { return TagGEOS }

func (c *GeosetChunk) Size() int {
	n := 4
	for i := range c.Geosets {
		n += c.Geosets[i].Size()
	}
	return n
}

func (c *GeosetChunk) UpdateSize() {
	for i := range c.Geosets {
		c.Geosets[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *GeosetChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Geosets, warn = decodeInclusive(r, TagGEOS, readGeoset)
	return warn
}

func (c *GeosetChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Geosets {
		c.Geosets[i].put(w)
	}
}

////////////////////////////////////////////////////////////////

// GeosetAnimation animates the color and visibility of a geoset.
type GeosetAnimation struct {
	InclusiveSize uint32
	Alpha         float32
	Flags         uint32
	Color         Color
	GeosetID      uint32

	AlphaCurve *Transform[Scalar] // KGAO
	ColorCurve *Transform[Color]  // KGAC

	Order []Tag
}

func (a *GeosetAnimation) blocks() []block {
	return []block{
		transformBlock(TagKGAO, &a.AlphaCurve),
		transformBlock(TagKGAC, &a.ColorCurve),
	}
}

// Size returns the encoded size of the geoset animation.
func (a *GeosetAnimation) Size() int {
	return 4 + 4 + 4 + 12 + 4 + blocksSize(a.blocks())
}

func (a *GeosetAnimation) UpdateSize() {
	a.InclusiveSize = uint32(a.Size())
}

func readGeosetAnimation(r *reader) (GeosetAnimation, uint32) {
	var a GeosetAnimation
	start := r.offset()
	a.InclusiveSize = r.u32()
	a.Alpha = r.f32()
	a.Flags = r.u32()
	a.Color = readColor(r)
	a.GeosetID = r.u32()
	a.Order = scanBlocks(r, "geoset animation", start, a.InclusiveSize, a.blocks())
	checkSize(r, "geoset animation", a.InclusiveSize, a.Size())
	return a, a.InclusiveSize
}

func (a *GeosetAnimation) put(w *writer) {
	w.u32(a.InclusiveSize)
	w.f32(a.Alpha)
	w.u32(a.Flags)
	a.Color.put(w)
	w.u32(a.GeosetID)
	encodeBlocks(w, a.blocks(), a.Order)
}

// GeosetAnimationChunk (GEOA) lists the geoset animations of the model.
type GeosetAnimationChunk struct {
	ChunkSize  uint32
	Animations []GeosetAnimation
}

func (c *GeosetAnimationChunk) Tag() Tag { return TagGEOA }

func (c *GeosetAnimationChunk) Size() int {
	n := 4
	for i := range c.Animations {
		n += c.Animations[i].Size()
	}
	return n
}

func (c *GeosetAnimationChunk) UpdateSize() {
	for i := range c.Animations {
		c.Animations[i].UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *GeosetAnimationChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Animations, warn = decodeInclusive(r, TagGEOA, readGeosetAnimation)
	return warn
}

func (c *GeosetAnimationChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Animations {
		c.Animations[i].put(w)
	}
}
