package mdx

// Chunk is a top-level section of a model. Each kind of chunk is identified by
// its tag.
type Chunk interface {
	// Tag returns the tag identifying the kind of chunk.
	Tag() Tag

	// Size returns the encoded size of the chunk, including its size field
	// but excluding its tag.
	Size() int

	// UpdateSize recomputes the chunk size and every inclusive size within
	// the chunk from content.
	UpdateSize()

	// decode reads the chunk after its tag. Failures are held by r; warn
	// reports problems that did not stop decoding.
	decode(r *reader) (warn error)

	// encode writes the chunk after its tag.
	encode(w *writer)
}

// newChunk returns an empty chunk of the kind identified by t, or nil if t is
// not a chunk tag.
func newChunk(t Tag) Chunk {
	switch t {
	case TagVERS:
		return new(VersionChunk)
	case TagMODL:
		return new(ModelChunk)
	case TagSEQS:
		return new(SequenceChunk)
	case TagGLBS:
		return new(GlobalSequenceChunk)
	case TagTEXS:
		return new(TextureChunk)
	case TagTXAN:
		return new(TextureAnimationChunk)
	case TagGEOS:
		return new(GeosetChunk)
	case TagGEOA:
		return new(GeosetAnimationChunk)
	case TagBONE:
		return new(BoneChunk)
	case TagLITE:
		return new(LightChunk)
	case TagHELP:
		return new(HelperChunk)
	case TagATCH:
		return new(AttachmentChunk)
	case TagPIVT:
		return new(PivotPointChunk)
	case TagPREM:
		return new(ParticleEmitterChunk)
	case TagPRE2:
		return new(ParticleEmitter2Chunk)
	case TagRIBB:
		return new(RibbonEmitterChunk)
	case TagEVTS:
		return new(EventObjectChunk)
	case TagCAMS:
		return new(CameraChunk)
	case TagCLID:
		return new(CollisionShapeChunk)
	case TagMTLS:
		return new(MaterialChunk)
	}
	return nil
}

////////////////////////////////////////////////////////////////

// decodeDivided reads a chunk of fixed-width records. The record count is the
// chunk size divided by width; remaining bytes are skipped and reported as a
// RemainderWarning.
func decodeDivided[T any](r *reader, tag Tag, width int, read func(r *reader) T) (size uint32, records []T, warn error) {
	size = r.u32()
	if !r.need(int(size)) {
		return size, nil, nil
	}
	n := int(size) / width
	records = make([]T, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		records = append(records, read(r))
	}
	if rem := int(size) % width; rem != 0 {
		r.skip(rem)
		warn = RemainderWarning{Tag: tag, ChunkSize: size, Width: width}
	}
	return size, records, warn
}

// decodeInclusive reads records while the running total of their sizes is
// below the chunk size. The total is checked after each record, so a record
// is always read in full. read returns the record and the amount it adds to
// the total.
func decodeInclusive[T any](r *reader, tag Tag, read func(r *reader) (T, uint32)) (size uint32, records []T, warn error) {
	size = r.u32()
	var total uint64
	for r.ok() && total < uint64(size) {
		rec, n := read(r)
		if !r.ok() {
			break
		}
		records = append(records, rec)
		total += uint64(n)
	}
	if r.ok() && total > uint64(size) {
		warn = ChunkTotalWarning{Tag: tag, ChunkSize: size, Total: uint32(total)}
	}
	return size, records, warn
}
