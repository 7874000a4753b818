package mdx

// SequenceSize is the encoded size of a Sequence.
const SequenceSize = 132

// Sequence is a named interval of the animation timeline.
type Sequence struct {
	Name          string
	IntervalStart uint32
	IntervalEnd   uint32
	MoveSpeed     float32
	NonLooping    uint32
	Rarity        float32
	Unknown       uint32
	Extent        Extent
}

func readSequence(r *reader) (s Sequence) {
	s.Name = r.fixedString(NameSize)
	s.IntervalStart = r.u32()
	s.IntervalEnd = r.u32()
	s.MoveSpeed = r.f32()
	s.NonLooping = r.u32()
	s.Rarity = r.f32()
	s.Unknown = r.u32()
	s.Extent = readExtent(r)
	return s
}

func (s *Sequence) put(w *writer) {
	w.fixedString(s.Name, NameSize)
	w.u32(s.IntervalStart)
	w.u32(s.IntervalEnd)
	w.f32(s.MoveSpeed)
	w.u32(s.NonLooping)
	w.f32(s.Rarity)
	w.u32(s.Unknown)
	s.Extent.put(w)
}

// SequenceChunk (SEQS) lists the animation sequences of the model.
type SequenceChunk struct {
	ChunkSize uint32
	Sequences []Sequence
}

func (c *SequenceChunk) Tag() Tag    { return TagSEQS }
func (c *SequenceChunk) Size() int   { return 4 + len(c.Sequences)*SequenceSize }
func (c *SequenceChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *SequenceChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Sequences, warn = decodeDivided(r, TagSEQS, SequenceSize, readSequence)
	return warn
}

func (c *SequenceChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Sequences {
		c.Sequences[i].put(w)
	}
}

////////////////////////////////////////////////////////////////

// GlobalSequenceChunk (GLBS) lists the durations of global sequences:
// timelines that loop independently of the current sequence.
type GlobalSequenceChunk struct {
	ChunkSize uint32
	Durations []uint32
}

func (c *GlobalSequenceChunk) Tag() Tag    { return TagGLBS }
func (c *GlobalSequenceChunk) Size() int   { return 4 + len(c.Durations)*4 }
func (c *GlobalSequenceChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *GlobalSequenceChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Durations, warn = decodeDivided(r, TagGLBS, 4, (*reader).u32)
	return warn
}

func (c *GlobalSequenceChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for _, d := range c.Durations {
		w.u32(d)
	}
}

////////////////////////////////////////////////////////////////

// PivotPointChunk (PIVT) lists the pivot of each node, indexed by object ID.
type PivotPointChunk struct {
	ChunkSize uint32
	Points    []Vec3
}

func (c *PivotPointChunk) Tag() Tag    { return TagPIVT }
func (c *PivotPointChunk) Size() int   { return 4 + len(c.Points)*12 }
func (c *PivotPointChunk) UpdateSize() { c.ChunkSize = uint32(c.Size() - 4) }

func (c *PivotPointChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Points, warn = decodeDivided(r, TagPIVT, 12, readVec3)
	return warn
}

func (c *PivotPointChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for _, p := range c.Points {
		p.put(w)
	}
}
