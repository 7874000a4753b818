// The mdxfile package handles the reading and writing of model files in the
// MDX format.
//
// The format itself is implemented by the mdx sub-package, which decodes and
// encodes byte slices. This package works with files: it reads and writes
// paths and streams, and handles packed files, which wrap the MDX data in an
// envelope compressed with one of several codecs.
//
// Models can also be converted to and from JSON with the json sub-package,
// and created manually with the declare sub-package.
package mdxfile

import (
	"bytes"
	"io"
	"os"

	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/mdx"
	"go.uber.org/zap"
)

// Options configure the reading and writing of files.
type Options struct {
	// Limit is the largest unpacked size accepted when reading a packed file.
	// If 0, DefaultUnpackLimit is used.
	Limit uint64

	// Codec is the codec used when writing. If CodecNone, the plain MDX data
	// is written without an envelope.
	Codec Codec

	// Logger receives debug traces from the underlying codec. May be nil.
	Logger *zap.Logger
}

// Read decodes a model from r. The data is unpacked first if it is packed.
func (o Options) Read(r io.Reader) (m *mdx.Model, warn, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if IsPacked(data) {
		if data, err = Unpack(data, o.Limit); err != nil {
			return nil, nil, err
		}
	}
	return mdx.Decoder{Logger: o.Logger}.Decode(data)
}

// Write encodes m to w, packing it with the configured codec.
func (o Options) Write(w io.Writer, m *mdx.Model) (warn, err error) {
	data, warn, err := mdx.Encoder{Logger: o.Logger}.Encode(m)
	if err != nil {
		return warn, err
	}
	if o.Codec != CodecNone {
		if data, err = Pack(data, o.Codec); err != nil {
			return warn, err
		}
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return warn, err
}

// Open reads a model from the file at path.
func (o Options) Open(path string) (m *mdx.Model, warn, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	m, warn, err = o.Read(f)
	if err != nil {
		return nil, warn, errors.FileError{Path: path, Cause: err}
	}
	return m, warn, nil
}

// Save writes m to the file at path. The file is created or truncated.
func (o Options) Save(path string, m *mdx.Model) (warn, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	warn, err = o.Write(f, m)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return warn, errors.FileError{Path: path, Cause: err}
	}
	return warn, nil
}

// Open reads a model from the file at path with the default options.
func Open(path string) (m *mdx.Model, warn, err error) {
	return Options{}.Open(path)
}

// Save writes m to the file at path, packed with codec.
func Save(path string, m *mdx.Model, codec Codec) (warn, err error) {
	return Options{Codec: codec}.Save(path, m)
}
