package mdxfile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/anaminus/parse"
	lz4 "github.com/bkaradzic/go-lz4"
	"github.com/klauspost/compress/zstd"
	"github.com/mdxapi/mdxfile/errors"
)

// PackMagic is the signature at the start of a packed file.
const PackMagic = "MDXP"

// packHeaderSize is the size of the envelope header: the magic, the codec,
// and the unpacked length.
const packHeaderSize = 4 + 1 + 8

// DefaultUnpackLimit is the largest unpacked size accepted by Unpack when no
// limit is given.
const DefaultUnpackLimit = 256 << 20

var (
	ErrNotPacked     = errors.New("not a packed file")
	ErrUnknownCodec  = errors.New("unknown codec")
	ErrLimitExceeded = errors.New("unpacked size exceeds limit")
	ErrCorruptPack   = errors.New("corrupt packed payload")
)

// Codec selects the compression applied to the payload of a packed file.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecLZ4
	CodecZstd
	CodecBrotli
)

var codecNames = [...]string{
	CodecNone:   "none",
	CodecLZ4:    "lz4",
	CodecZstd:   "zstd",
	CodecBrotli: "brotli",
}

func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// ParseCodec returns the codec with the given name.
func ParseCodec(s string) (Codec, error) {
	for c, name := range codecNames {
		if strings.EqualFold(s, name) {
			return Codec(c), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCodec, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Codec) MarshalText() ([]byte, error) {
	if int(c) >= len(codecNames) {
		return nil, fmt.Errorf("%w %d", ErrUnknownCodec, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Codec) UnmarshalText(text []byte) (err error) {
	*c, err = ParseCodec(string(text))
	return err
}

// IsPacked returns whether data begins with the signature of a packed file.
func IsPacked(data []byte) bool {
	return bytes.HasPrefix(data, []byte(PackMagic))
}

// Pack wraps data in an envelope, compressing it with codec.
func Pack(data []byte, codec Codec) ([]byte, error) {
	var payload []byte
	var err error
	switch {
	case codec >= Codec(len(codecNames)):
		return nil, fmt.Errorf("%w %d", ErrUnknownCodec, uint8(codec))
	case len(data) == 0:
	case codec == CodecNone:
		payload = data
	case codec == CodecLZ4:
		if uint64(len(data)) > math.MaxUint32 {
			return nil, fmt.Errorf("pack lz4: data too large")
		}
		// go-lz4 prefixes its output with the unpacked length, which the
		// envelope already carries.
		payload, err = lz4.Encode(nil, data)
		if err == nil {
			payload = payload[4:]
		}
	case codec == CodecZstd:
		var enc *zstd.Encoder
		if enc, err = zstd.NewWriter(nil); err == nil {
			payload = enc.EncodeAll(data, nil)
			enc.Close()
		}
	case codec == CodecBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		if _, err = w.Write(data); err == nil {
			err = w.Close()
		}
		payload = buf.Bytes()
	}
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", codec, err)
	}

	var buf bytes.Buffer
	buf.Grow(packHeaderSize + len(payload))
	if err := writePackHeader(&buf, codec, uint64(len(data))); err != nil {
		return nil, err
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}

func writePackHeader(w io.Writer, codec Codec, length uint64) error {
	fw := parse.NewBinaryWriter(w)
	if fw.Bytes([]byte(PackMagic)) {
		return fw.Err()
	}
	if fw.Number(uint8(codec)) {
		return fw.Err()
	}
	fw.Number(length)
	return fw.Err()
}

func readPackHeader(r io.Reader) (codec Codec, length uint64, err error) {
	var magic [4]byte
	fr := parse.NewBinaryReader(r)
	if fr.Bytes(magic[:]) {
		return 0, 0, fr.Err()
	}
	if fr.Number((*uint8)(&codec)) {
		return 0, 0, fr.Err()
	}
	fr.Number(&length)
	return codec, length, fr.Err()
}

// Unpack returns the original data of a packed file. An error is returned if
// the unpacked size exceeds limit. If limit is 0, DefaultUnpackLimit is used.
func Unpack(data []byte, limit uint64) ([]byte, error) {
	if !IsPacked(data) {
		return nil, ErrNotPacked
	}
	if limit == 0 {
		limit = DefaultUnpackLimit
	}

	codec, length, err := readPackHeader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: header: %s", ErrCorruptPack, err)
	}
	if length > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, length, limit)
	}
	payload := data[packHeaderSize:]

	var out []byte
	switch {
	case codec >= Codec(len(codecNames)):
		return nil, fmt.Errorf("%w %d", ErrUnknownCodec, uint8(codec))
	case length == 0:
		// Empty data has an empty payload under every codec.
	case codec == CodecNone:
		out = payload
	case codec == CodecLZ4 && length > math.MaxUint32:
		return nil, fmt.Errorf("%w: lz4 length %d", ErrCorruptPack, length)
	case codec == CodecLZ4:
		src := make([]byte, 4+len(payload))
		src[0] = byte(length)
		src[1] = byte(length >> 8)
		src[2] = byte(length >> 16)
		src[3] = byte(length >> 24)
		copy(src[4:], payload)
		out, err = lz4.Decode(nil, src)
	case codec == CodecZstd:
		var dec *zstd.Decoder
		if dec, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(limit)); err == nil {
			out, err = dec.DecodeAll(payload, nil)
			dec.Close()
		}
	case codec == CodecBrotli:
		r := brotli.NewReader(bytes.NewReader(payload))
		out, err = io.ReadAll(io.LimitReader(r, int64(length)+1))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorruptPack, codec, err)
	}
	if uint64(len(out)) != length {
		return nil, fmt.Errorf("%w: unpacked %d bytes, expected %d", ErrCorruptPack, len(out), length)
	}
	return out, nil
}
