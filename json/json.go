// The json package is used to encode and decode mdx models to the JSON
// format.
//
// A model is encoded as an object with two fields: "version", the version of
// the schema, and "model", the model itself. Tags are encoded as their
// four-character names. Size fields are included for reference, but are
// recomputed when a model is decoded.
package json

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/mdx"
)

// The current version of the schema.
const jsonVersion = 0

// Indent is the indentation used by Write.
const Indent = "  "

// ErrIndent indicates an indentation that contains characters other than
// spaces.
var ErrIndent = errors.New("indent can only contain spaces")

var api = jsoniter.ConfigCompatibleWithStandardLibrary

type document struct {
	Version int        `json:"version"`
	Model   *mdx.Model `json:"model"`
}

// Encode encodes m as compact JSON.
func Encode(m *mdx.Model) (b []byte, err error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	return api.Marshal(document{Version: jsonVersion, Model: m})
}

// EncodeIndent encodes m as JSON, with each element on its own line, nested
// by indent. The indent must consist of spaces.
func EncodeIndent(m *mdx.Model, indent string) (b []byte, err error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	if strings.Trim(indent, " ") != "" {
		return nil, fmt.Errorf("%w: %q", ErrIndent, indent)
	}
	return api.MarshalIndent(document{Version: jsonVersion, Model: m}, "", indent)
}

// Write encodes m to w as indented JSON.
func Write(w io.Writer, m *mdx.Model) error {
	if m == nil {
		return errors.New("nil model")
	}
	enc := api.NewEncoder(w)
	enc.SetIndent("", Indent)
	return enc.Encode(document{Version: jsonVersion, Model: m})
}

// Decode decodes a model from JSON produced by Encode. The size fields of the
// model are recomputed from its content.
func Decode(b []byte) (m *mdx.Model, err error) {
	v := api.Get(b, "version")
	if err := v.LastError(); err != nil {
		return nil, fmt.Errorf("invalid JSON model: missing version: %w", err)
	}
	switch version := v.ToInt(); version {
	case 0:
		var doc document
		if err := api.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON model: %w", err)
		}
		if doc.Model == nil {
			return nil, errors.New("invalid JSON model: missing model")
		}
		m = doc.Model
	default:
		return nil, fmt.Errorf("unsupported JSON model version %d", version)
	}
	m.UpdateSizes()
	return m, nil
}

// Read decodes a model from JSON read from r.
func Read(r io.Reader) (m *mdx.Model, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}
