package mdx

import (
	"fmt"

	"github.com/mdxapi/mdxfile/errors"
	"go.uber.org/zap"
)

// Model is a decoded MDX file. Each field holds one kind of chunk, and is nil
// if the file does not contain that kind.
type Model struct {
	Version           *VersionChunk
	Model             *ModelChunk
	Sequences         *SequenceChunk
	GlobalSequences   *GlobalSequenceChunk
	Textures          *TextureChunk
	TextureAnimations *TextureAnimationChunk
	Geosets           *GeosetChunk
	GeosetAnimations  *GeosetAnimationChunk
	Bones             *BoneChunk
	Lights            *LightChunk
	Helpers           *HelperChunk
	Attachments       *AttachmentChunk
	PivotPoints       *PivotPointChunk
	ParticleEmitters  *ParticleEmitterChunk
	ParticleEmitters2 *ParticleEmitter2Chunk
	RibbonEmitters    *RibbonEmitterChunk
	EventObjects      *EventObjectChunk
	Cameras           *CameraChunk
	CollisionShapes   *CollisionShapeChunk
	Materials         *MaterialChunk
}

// Chunks returns the present chunks of the model in the order they are
// encoded.
func (m *Model) Chunks() []Chunk {
	chunks := make([]Chunk, 0, len(ChunkTags))
	add := func(c Chunk, present bool) {
		if present {
			chunks = append(chunks, c)
		}
	}
	add(m.Version, m.Version != nil)
	add(m.Model, m.Model != nil)
	add(m.Sequences, m.Sequences != nil)
	add(m.GlobalSequences, m.GlobalSequences != nil)
	add(m.Textures, m.Textures != nil)
	add(m.TextureAnimations, m.TextureAnimations != nil)
	add(m.Geosets, m.Geosets != nil)
	add(m.GeosetAnimations, m.GeosetAnimations != nil)
	add(m.Bones, m.Bones != nil)
	add(m.Lights, m.Lights != nil)
	add(m.Helpers, m.Helpers != nil)
	add(m.Attachments, m.Attachments != nil)
	add(m.PivotPoints, m.PivotPoints != nil)
	add(m.ParticleEmitters, m.ParticleEmitters != nil)
	add(m.ParticleEmitters2, m.ParticleEmitters2 != nil)
	add(m.RibbonEmitters, m.RibbonEmitters != nil)
	add(m.EventObjects, m.EventObjects != nil)
	add(m.Cameras, m.Cameras != nil)
	add(m.CollisionShapes, m.CollisionShapes != nil)
	add(m.Materials, m.Materials != nil)
	return chunks
}

// SetChunk places c into the field of m corresponding to its kind, replacing
// any chunk already there. It returns false if c is not a known kind.
func (m *Model) SetChunk(c Chunk) bool {
	switch c := c.(type) {
	case *VersionChunk:
		m.Version = c
	case *ModelChunk:
		m.Model = c
	case *SequenceChunk:
		m.Sequences = c
	case *GlobalSequenceChunk:
		m.GlobalSequences = c
	case *TextureChunk:
		m.Textures = c
	case *TextureAnimationChunk:
		m.TextureAnimations = c
	case *GeosetChunk:
		m.Geosets = c
	case *GeosetAnimationChunk:
		m.GeosetAnimations = c
	case *BoneChunk:
		m.Bones = c
	case *LightChunk:
		m.Lights = c
	case *HelperChunk:
		m.Helpers = c
	case *AttachmentChunk:
		m.Attachments = c
	case *PivotPointChunk:
		m.PivotPoints = c
	case *ParticleEmitterChunk:
		m.ParticleEmitters = c
	case *ParticleEmitter2Chunk:
		m.ParticleEmitters2 = c
	case *RibbonEmitterChunk:
		m.RibbonEmitters = c
	case *EventObjectChunk:
		m.EventObjects = c
	case *CameraChunk:
		m.Cameras = c
	case *CollisionShapeChunk:
		m.CollisionShapes = c
	case *MaterialChunk:
		m.Materials = c
	default:
		return false
	}
	return true
}

// Size returns the encoded size of the model, including the magic number and
// the tag of each chunk.
func (m *Model) Size() int {
	n := MagicSize
	for _, c := range m.Chunks() {
		n += 4 + c.Size()
	}
	return n
}

// UpdateSizes recomputes every size field of the model from content.
func (m *Model) UpdateSizes() {
	for _, c := range m.Chunks() {
		c.UpdateSize()
	}
}

func checkVersion(m *Model) error {
	if m.Version == nil {
		return VersionWarning{Missing: true}
	}
	if m.Version.Version != FormatVersion {
		return VersionWarning{Version: m.Version.Version}
	}
	return nil
}

////////////////////////////////////////////////////////////////

// Decoder decodes a slice of bytes into a Model.
type Decoder struct {
	// Logger receives a debug entry for each decoded chunk. No logging is
	// done if Logger is nil.
	Logger *zap.Logger
}

func (d Decoder) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Decode decodes data into a Model. The data is borrowed only for the
// duration of the call.
func (d Decoder) Decode(data []byte) (m *Model, warn, err error) {
	chunks, warn, err := d.decode(data)
	if err != nil {
		return nil, warn, err
	}
	var warns errors.Errors
	m = new(Model)
	seen := map[Tag]bool{}
	for i, c := range chunks {
		if seen[c.Tag()] {
			warns = warns.Append(DuplicateChunkWarning{Tag: c.Tag(), Index: i})
		}
		seen[c.Tag()] = true
		m.SetChunk(c)
	}
	if m.Version != nil {
		warns = warns.Append(checkVersion(m))
	}
	return m, errors.Union(warn, warns.Return()), nil
}

// decode reads the chunks of data in file order.
func (d Decoder) decode(data []byte) (chunks []Chunk, warn, err error) {
	log := d.logger()
	r := newReader(data)
	if magic := r.tag(); !r.ok() {
		return nil, nil, r.err()
	} else if magic != TagMDLX {
		return nil, nil, DataError{Offset: 0, Cause: fmt.Errorf("%w: found %s", ErrInvalidMagic, magic)}
	}

	var warns errors.Errors
	for i := 0; r.remaining() > 0; i++ {
		offset := r.offset()
		t := r.tag()
		if !r.ok() {
			return nil, warns.Return(), ChunkError{Index: i, Tag: t, Cause: r.err()}
		}
		c := newChunk(t)
		if c == nil {
			return nil, warns.Return(), ChunkError{
				Index: i,
				Tag:   t,
				Cause: DataError{Offset: int64(offset), Cause: ErrUnknownChunkTag},
			}
		}
		w := c.decode(r)
		if !r.ok() {
			return nil, warns.Return(), ChunkError{Index: i, Tag: t, Cause: r.err()}
		}
		if w != nil {
			log.Debug("chunk warning", zap.Int("index", i), zap.Stringer("tag", t), zap.Error(w))
			warns = warns.Append(w)
		}
		log.Debug("decoded chunk",
			zap.Int("index", i),
			zap.Stringer("tag", t),
			zap.Int("offset", offset),
			zap.Int("size", r.offset()-offset-4),
		)
		chunks = append(chunks, c)
	}
	return chunks, warns.Return(), nil
}

// Deserialize decodes data into a Model. Warnings are discarded.
func Deserialize(data []byte) (m *Model, err error) {
	m, _, err = Decoder{}.Decode(data)
	return m, err
}

////////////////////////////////////////////////////////////////

// Encoder encodes a Model into a slice of bytes.
type Encoder struct {
	// Logger receives a debug entry for each encoded chunk. No logging is
	// done if Logger is nil.
	Logger *zap.Logger
}

func (e Encoder) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Encode encodes m. The size fields of m are recomputed from content before
// encoding, and so are modified by the call.
func (e Encoder) Encode(m *Model) (data []byte, warn, err error) {
	if m == nil {
		return nil, nil, errors.New("nil model")
	}
	log := e.logger()

	m.UpdateSizes()
	size := m.Size()
	w := newWriter(size)
	w.tag(TagMDLX)
	for i, c := range m.Chunks() {
		offset := w.offset()
		w.tag(c.Tag())
		c.encode(w)
		if !w.ok() {
			return nil, nil, ChunkError{Index: i, Tag: c.Tag(), Cause: w.err()}
		}
		log.Debug("encoded chunk",
			zap.Int("index", i),
			zap.Stringer("tag", c.Tag()),
			zap.Int("offset", offset),
			zap.Int("size", c.Size()),
		)
	}
	data = w.data()
	if len(data) != size {
		return nil, nil, fmt.Errorf("%w: encoded %d bytes, model is %d", ErrSizeMismatch, len(data), size)
	}
	return data, checkVersion(m), nil
}

// Serialize encodes m. Warnings are discarded.
func Serialize(m *Model) (data []byte, err error) {
	data, _, err = Encoder{}.Encode(m)
	return data, err
}
