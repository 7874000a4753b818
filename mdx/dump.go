package mdx

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/mdxapi/mdxfile/errors"
)

// Dump writes to w a readable representation of the chunks decoded from data,
// in the order they appear in the file.
func (d Decoder) Dump(w io.Writer, data []byte) (warn, err error) {
	if w == nil {
		return nil, errors.New("nil writer")
	}

	chunks, warn, err := d.decode(data)
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Magic: %s", TagMDLX)
	fmt.Fprintf(bw, "\nSize: %d", len(data))
	fmt.Fprint(bw, "\nChunks: {")
	for i, chunk := range chunks {
		dumpChunk(bw, 1, i, chunk)
	}
	fmt.Fprint(bw, "\n}")
	fmt.Fprintln(bw)
	return warn, bw.Flush()
}

func dumpChunk(w *bufio.Writer, indent, i int, chunk Chunk) {
	dumpNewline(w, indent)
	if i >= 0 {
		fmt.Fprintf(w, "#%d: ", i)
	}
	w.WriteString(chunk.Tag().String())
	w.WriteString(" {")
	dumpFields(w, indent+1, reflect.ValueOf(chunk).Elem())
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

var tagType = reflect.TypeOf(Tag(0))

// dumpFields writes each field of struct v on its own line. Absent blocks and
// empty order lists are omitted.
func dumpFields(w *bufio.Writer, indent int, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Pointer:
			if f.IsNil() {
				continue
			}
		case reflect.Slice:
			if t.Field(i).Name == "Order" && f.Len() == 0 {
				continue
			}
		}
		dumpNewline(w, indent)
		w.WriteString(t.Field(i).Name)
		w.WriteString(": ")
		dumpValue(w, indent, f)
	}
}

func dumpValue(w *bufio.Writer, indent int, v reflect.Value) {
	if v.Type() == tagType {
		w.WriteString(Tag(v.Uint()).String())
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		dumpValue(w, indent, v.Elem())
	case reflect.String:
		w.WriteString(strconv.Quote(v.String()))
	case reflect.Float32, reflect.Float64:
		w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			w.WriteString(s.String())
			return
		}
		w.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Struct:
		if isFlat(v.Type()) {
			dumpFlat(w, v)
			return
		}
		w.WriteByte('{')
		dumpFields(w, indent+1, v)
		dumpNewline(w, indent)
		w.WriteByte('}')
	case reflect.Array:
		if isFlat(v.Type()) {
			dumpFlat(w, v)
			return
		}
		dumpList(w, indent, v)
	case reflect.Slice:
		dumpList(w, indent, v)
	default:
		fmt.Fprint(w, v.Interface())
	}
}

// dumpList writes lists of scalars and flat structs on one line, and lists of
// records one element per line.
func dumpList(w *bufio.Writer, indent int, v reflect.Value) {
	fmt.Fprintf(w, "(len:%d) ", v.Len())
	elem := v.Type().Elem()
	if elem.Kind() != reflect.Struct && elem.Kind() != reflect.Slice || isFlat(elem) {
		w.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				w.WriteByte(' ')
			}
			dumpValue(w, indent, v.Index(i))
		}
		w.WriteByte(']')
		return
	}
	w.WriteByte('{')
	for i := 0; i < v.Len(); i++ {
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "#%d: ", i)
		dumpValue(w, indent+1, v.Index(i))
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

// isFlat returns whether t is a struct or array made only of numbers, such as
// a vector or a face.
func isFlat(t reflect.Type) bool {
	if t.Kind() == reflect.Array {
		switch t.Elem().Kind() {
		case reflect.Float32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return true
		}
		return false
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		switch t.Field(i).Type.Kind() {
		case reflect.Float32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		default:
			return false
		}
	}
	return true
}

func dumpFlat(w *bufio.Writer, v reflect.Value) {
	w.WriteByte('(')
	n := v.Len
	elem := v.Index
	if v.Kind() == reflect.Struct {
		n, elem = v.NumField, v.Field
	}
	for i := 0; i < n(); i++ {
		if i > 0 {
			w.WriteString(", ")
		}
		dumpValue(w, 0, elem(i))
	}
	w.WriteByte(')')
}
