package mdx

import (
	"bytes"
	"fmt"
	"math"

	"github.com/anaminus/parse"
)

// writer appends encoded values to a buffer allocated up front. Like reader,
// it keeps the first error and ignores every write after it.
type writer struct {
	buf *bytes.Buffer
	fw  *parse.BinaryWriter
}

func newWriter(size int) *writer {
	buf := new(bytes.Buffer)
	buf.Grow(size)
	return &writer{buf: buf, fw: parse.NewBinaryWriter(buf)}
}

func (w *writer) offset() int {
	return w.buf.Len()
}

func (w *writer) err() error {
	return w.fw.Err()
}

func (w *writer) ok() bool {
	return w.fw.Err() == nil
}

func (w *writer) fail(err error) {
	if w.fw.Err() != nil {
		return
	}
	w.fw.Add(0, DataError{Offset: int64(w.buf.Len()), Cause: err})
}

func (w *writer) u8(v uint8) {
	if w.ok() {
		w.fw.Number(v)
	}
}

func (w *writer) u16(v uint16) {
	if w.ok() {
		w.fw.Number(v)
	}
}

func (w *writer) u32(v uint32) {
	if w.ok() {
		w.fw.Number(v)
	}
}

func (w *writer) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *writer) bytes(b []byte) {
	if w.ok() {
		w.fw.Bytes(b)
	}
}

// fixedString writes s into a zero-filled field of the given width. The
// string must leave room for at least one NUL.
func (w *writer) fixedString(s string, width int) {
	if len(s) >= width {
		w.fail(fmt.Errorf("%w: %d bytes in a %d-byte field", ErrStringTooLong, len(s), width))
		return
	}
	b := make([]byte, width)
	copy(b, s)
	w.bytes(b)
}

func (w *writer) tag(t Tag) {
	w.u32(uint32(t))
}

func (w *writer) data() []byte {
	return w.buf.Bytes()
}
