package mdx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/anaminus/parse"
)

// reader is a cursor over a borrowed byte slice. The first error encountered
// is kept, and every read after it returns a zero value.
type reader struct {
	data []byte
	fr   *parse.BinaryReader
}

func newReader(data []byte) *reader {
	return &reader{
		data: data,
		fr:   parse.NewBinaryReader(bytes.NewReader(data)),
	}
}

// offset returns the number of bytes consumed so far.
func (r *reader) offset() int {
	return int(r.fr.N())
}

func (r *reader) remaining() int {
	return len(r.data) - r.offset()
}

func (r *reader) err() error {
	return r.fr.Err()
}

func (r *reader) ok() bool {
	return r.fr.Err() == nil
}

// fail records err at the current offset. Only the first failure is kept.
func (r *reader) fail(err error) {
	if r.fr.Err() != nil {
		return
	}
	r.fr.Add(0, DataError{Offset: r.fr.N(), Cause: err})
}

// need reports whether n more bytes can be read, failing with ErrOutOfBounds
// if they cannot.
func (r *reader) need(n int) bool {
	if r.fr.Err() != nil {
		return false
	}
	if n < 0 || r.remaining() < n {
		r.fail(fmt.Errorf("%w: need %d bytes, %d remain", ErrOutOfBounds, n, r.remaining()))
		return false
	}
	return true
}

func (r *reader) u8() (v uint8) {
	if r.need(1) {
		r.fr.Number(&v)
	}
	return v
}

func (r *reader) u16() (v uint16) {
	if r.need(2) {
		r.fr.Number(&v)
	}
	return v
}

func (r *reader) u32() (v uint32) {
	if r.need(4) {
		r.fr.Number(&v)
	}
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := make([]byte, n)
	r.fr.Bytes(b)
	return b
}

func (r *reader) skip(n int) {
	r.bytes(n)
}

// fixedString reads a NUL-padded string from a field of the given width. The
// string ends at the first NUL, or at the end of the field if there is none.
// The cursor always advances by width.
func (r *reader) fixedString(width int) string {
	b := r.bytes(width)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func (r *reader) tag() Tag {
	return Tag(r.u32())
}

// peekTag returns the next tag without consuming it. ok is false if an error
// is held or fewer than four bytes remain.
func (r *reader) peekTag() (t Tag, ok bool) {
	if r.fr.Err() != nil || r.remaining() < 4 {
		return 0, false
	}
	off := r.offset()
	return Tag(binary.LittleEndian.Uint32(r.data[off : off+4])), true
}

// expectTag reads a tag and fails with ErrTagMismatch if it is not want.
func (r *reader) expectTag(want Tag) {
	got := r.tag()
	if r.ok() && got != want {
		r.fail(tagMismatch(want, got))
	}
}

// count reads a u32 element count and checks that that many elements of the
// given width fit within the remaining bytes.
func (r *reader) count(width int) int {
	n := r.u32()
	if !r.ok() {
		return 0
	}
	if uint64(n)*uint64(width) > uint64(r.remaining()) {
		r.fail(outOfBoundsCount(n, width, r.remaining()))
		return 0
	}
	return int(n)
}
