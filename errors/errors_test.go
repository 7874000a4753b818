package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	var errs Errors
	assert.Nil(t, errs.Return())
	assert.Equal(t, "no errors", errs.Error())

	errs = errs.Append(nil, New("a"), nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, "a", errs.Return().Error())

	errs = errs.Append(New("b\nc"))
	assert.Equal(t, "2 errors:\n\ta\n\tb\n\tc", errs.Error())

	// Lists are flattened.
	d := New("d")
	errs = errs.Append(Errors{d, nil}, Errors{})
	assert.Len(t, errs, 3)
	assert.Equal(t, d, errs[2])
}

func TestUnion(t *testing.T) {
	assert.Nil(t, Union())
	assert.Nil(t, Union(nil, Errors{}, nil))

	a, b, c := New("a"), New("b"), New("c")
	err := Union(a, nil, Errors{b, nil, c})
	assert.Equal(t, Errors{a, b, c}, err)
}

func TestFileError(t *testing.T) {
	assert.Equal(t, "model.mdx: unknown error", FileError{Path: "model.mdx"}.Error())

	var err error = FileError{Path: "model.mdx", Cause: io.ErrUnexpectedEOF}
	assert.Equal(t, "model.mdx: unexpected EOF", err.Error())
	assert.True(t, Is(err, io.ErrUnexpectedEOF))

	var ferr FileError
	assert.True(t, As(err, &ferr))
	assert.Equal(t, "model.mdx", ferr.Path)

	ferr = FileError{}
	assert.True(t, As(Union(New("other"), err), &ferr))
	assert.Equal(t, "model.mdx", ferr.Path)
}
