package mdx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// app concatenates values into little-endian bytes. Strings and byte slices
// are appended as is.
func app(bs ...interface{}) []byte {
	var s []byte
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			s = append(s, b...)
		case []byte:
			s = append(s, b...)
		case uint8:
			s = append(s, b)
		case uint16:
			s = binary.LittleEndian.AppendUint16(s, b)
		case uint32:
			s = binary.LittleEndian.AppendUint32(s, b)
		case Tag:
			s = binary.LittleEndian.AppendUint32(s, uint32(b))
		case float32:
			s = binary.LittleEndian.AppendUint32(s, math.Float32bits(b))
		default:
			panic("app: unsupported type")
		}
	}
	return s
}

// fixed returns s padded with zeros to width bytes.
func fixed(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	return b
}

// zeros returns n zero bytes.
func zeros(n int) []byte {
	return make([]byte, n)
}

// nodeBytes returns an encoded node with the given blocks following its fixed
// fields.
func nodeBytes(name string, objectID, parentID, flags uint32, blocks ...interface{}) []byte {
	tail := app(blocks...)
	return app(uint32(4+NameSize+12+len(tail)), fixed(name, NameSize), objectID, parentID, flags, tail)
}

// emptyGeoset returns the smallest encodable geoset.
func emptyGeoset() []byte {
	return app(
		uint32(120),
		TagVRTX, uint32(0),
		TagNRMS, uint32(0),
		TagPTYP, uint32(0),
		TagPCNT, uint32(0),
		TagPVTX, uint32(0),
		TagGNDX, uint32(0),
		TagMTGC, uint32(0),
		TagMATS, uint32(0),
		uint32(0), uint32(0), uint32(0),
		zeros(ExtentSize),
		uint32(0),
		TagUVAS, uint32(0),
	)
}

// decodeChunk decodes a single chunk, tag included, from b.
func decodeChunk(t *testing.T, b []byte) (c Chunk, warn error, r *reader) {
	t.Helper()
	r = newReader(b)
	c = newChunk(r.tag())
	require.NotNil(t, c, "unknown chunk tag")
	warn = c.decode(r)
	return c, warn, r
}

// encodeChunk encodes c, tag included.
func encodeChunk(c Chunk) ([]byte, error) {
	w := newWriter(4 + c.Size())
	w.tag(c.Tag())
	c.encode(w)
	return w.data(), w.err()
}

// equateEmpty treats nil and empty slices as equal, since decoding always
// allocates lists.
var equateEmpty = cmpopts.EquateEmpty()
