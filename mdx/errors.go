package mdx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdxapi/mdxfile/errors"
)

var (
	// Indicates that fewer bytes remain than a read requires.
	ErrOutOfBounds = errors.New("out of bounds")
	// Indicates that the data does not begin with the MDLX magic.
	ErrInvalidMagic = errors.New("invalid magic")
	// Indicates a chunk tag not known by the codec.
	ErrUnknownChunkTag = errors.New("unknown chunk tag")
	// Indicates a tag within a tag-scanned region that is not a sub-block of
	// the enclosing record.
	ErrUnknownSubTag = errors.New("unknown sub-block tag")
	// Indicates that a fixed tag did not have its expected value.
	ErrTagMismatch = errors.New("tag mismatch")
	// Indicates that a declared size does not agree with the size computed
	// from content.
	ErrSizeMismatch = errors.New("size mismatch")
	// Indicates that a string does not fit within its fixed-width field.
	ErrStringTooLong = errors.New("string too long")
	// Indicates a collision shape type not known by the codec.
	ErrUnknownShape = errors.New("unknown collision shape")
	// Indicates a collision shape that does not hold the number of vertices
	// its type requires.
	ErrShapeVertices = errors.New("wrong number of collision shape vertices")
)

// DataError wraps an error that occurred while encoding or decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// ChunkError indicates an error that occurred within a chunk.
type ChunkError struct {
	// Index is the position of the chunk within the file.
	Index int
	// Tag is the tag of the chunk.
	Tag Tag

	Cause error
}

func (err ChunkError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%s chunk: %s", err.Tag, err.Cause.Error())
	}
	return fmt.Sprintf("#%d %s chunk: %s", err.Index, err.Tag, err.Cause.Error())
}

func (err ChunkError) Unwrap() error {
	return err.Cause
}

////////////////////////////////////////////////////////////////

// RemainderWarning indicates that a chunk with fixed-width records declared a
// size that is not a multiple of the record width. The remaining bytes were
// skipped.
type RemainderWarning struct {
	Tag       Tag
	ChunkSize uint32
	Width     int
}

func (w RemainderWarning) Error() string {
	return fmt.Sprintf("%s chunk: size %d is not a multiple of %d; skipped %d bytes",
		w.Tag, w.ChunkSize, w.Width, int(w.ChunkSize)%w.Width)
}

// ChunkTotalWarning indicates that the records of a chunk extend past the
// chunk's declared size.
type ChunkTotalWarning struct {
	Tag       Tag
	ChunkSize uint32
	Total     uint32
}

func (w ChunkTotalWarning) Error() string {
	return fmt.Sprintf("%s chunk: records total %d bytes, chunk declares %d", w.Tag, w.Total, w.ChunkSize)
}

// DuplicateChunkWarning indicates that a chunk kind appeared more than once.
// The later chunk replaces the earlier one.
type DuplicateChunkWarning struct {
	Tag   Tag
	Index int
}

func (w DuplicateChunkWarning) Error() string {
	return fmt.Sprintf("#%d %s chunk: replaces earlier chunk of the same kind", w.Index, w.Tag)
}

// VersionWarning indicates that the VERS chunk holds a version other than
// FormatVersion, or that a model has no VERS chunk.
type VersionWarning struct {
	// Version is the version found. It is zero if Missing is true.
	Version uint32
	Missing bool
}

func (w VersionWarning) Error() string {
	if w.Missing {
		return "model has no VERS chunk"
	}
	return fmt.Sprintf("unexpected format version %d; expected %d", w.Version, FormatVersion)
}

////////////////////////////////////////////////////////////////

func sizeMismatch(what string, declared uint32, computed int) error {
	return fmt.Errorf("%w: %s declares %d bytes, content is %d", ErrSizeMismatch, what, declared, computed)
}

func outOfBoundsCount(n uint32, width, remain int) error {
	return fmt.Errorf("%w: %d elements of %d bytes, %d remain", ErrOutOfBounds, n, width, remain)
}

func tagMismatch(want, got Tag) error {
	return fmt.Errorf("%w: expected %s, found %s", ErrTagMismatch, want, got)
}

func unknownSubTag(record string, t Tag) error {
	return fmt.Errorf("%w: %s in %s", ErrUnknownSubTag, t, record)
}
