package main

import (
	"bytes"
	"io"
	"os"

	"github.com/mdxapi/mdxfile"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/internal/logger"
	"github.com/mdxapi/mdxfile/mdx"
	"go.uber.org/zap"
)

// readFile returns the content of the file at path, or of stdin if path is
// "-".
func (g *globals) readFile(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(g.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.FileError{Path: path, Cause: err}
	}
	return data, nil
}

// writeFile writes data to the file at path, or to stdout if path is "-".
func (g *globals) writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := io.Copy(g.stdout, bytes.NewReader(data))
		return err
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return errors.FileError{Path: path, Cause: err}
	}
	return nil
}

// readData returns the MDX data of the file at path, unpacking it if it is
// packed. raw is the content of the file as read.
func (g *globals) readData(path string) (data, raw []byte, err error) {
	raw, err = g.readFile(path)
	if err != nil {
		return nil, nil, err
	}
	if !mdxfile.IsPacked(raw) {
		return raw, raw, nil
	}
	if data, err = mdxfile.Unpack(raw, g.limit); err != nil {
		return nil, nil, errors.FileError{Path: path, Cause: err}
	}
	logger.Debug("unpacked file",
		zap.String("path", path),
		zap.Stringer("codec", packedCodec(raw)),
		zap.Int("packed", len(raw)),
		zap.Int("size", len(data)),
	)
	return data, raw, nil
}

// packedCodec returns the codec of packed data that has been unpacked
// successfully.
func packedCodec(raw []byte) mdxfile.Codec {
	return mdxfile.Codec(raw[len(mdxfile.PackMagic)])
}

// readModel decodes the model in the file at path.
func (g *globals) readModel(path string) (*mdx.Model, error) {
	data, _, err := g.readData(path)
	if err != nil {
		return nil, err
	}
	m, warn, err := mdx.Decoder{Logger: logger.Log}.Decode(data)
	g.warn(path, warn)
	if err != nil {
		return nil, errors.FileError{Path: path, Cause: err}
	}
	return m, nil
}

// encodeModel encodes m, packing it with codec unless codec is CodecNone.
func (g *globals) encodeModel(path string, m *mdx.Model, codec mdxfile.Codec) ([]byte, error) {
	data, warn, err := mdx.Encoder{Logger: logger.Log}.Encode(m)
	g.warn(path, warn)
	if err != nil {
		return nil, errors.FileError{Path: path, Cause: err}
	}
	if codec == mdxfile.CodecNone {
		return data, nil
	}
	return mdxfile.Pack(data, codec)
}

// warn logs each warning in warn.
func (g *globals) warn(path string, warn error) {
	if warn == nil {
		return
	}
	if errs, ok := warn.(errors.Errors); ok {
		for _, w := range errs {
			logger.Warn("warning", zap.String("path", path), zap.Error(w))
		}
		return
	}
	logger.Warn("warning", zap.String("path", path), zap.Error(warn))
}
