package mdxfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/mdxapi/mdxfile/declare"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/mdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) *mdx.Model {
	t.Helper()
	m, err := Model{
		Version(mdx.FormatVersion),
		Info("Footman", 150, Bounds(64, mdx.Vec3{X: -32, Y: -32}, mdx.Vec3{X: 32, Y: 32, Z: 96})),
		Sequence("Stand", 0, 1000),
		Sequence("Walk", 1000, 2000, MoveSpeed(270)),
		Texture(`Textures\Footman.blp`),
		Material(0, Layer(`Textures\Footman.blp`, 1)),
		Bone("Bone_Root", Pivot(0, 0, 0),
			Translation(mdx.InterpolationLinear, Key(0, 0, 0, 0), Key(1000, 0, 0, 10)),
			Helper("Helper_Head", Pivot(0, 0, 80)),
		),
	}.Declare()
	require.NoError(t, err)
	return m
}

func testData(t *testing.T) []byte {
	t.Helper()
	b, err := mdx.Serialize(testModel(t))
	require.NoError(t, err)
	return b
}

func TestCodec(t *testing.T) {
	for _, c := range []Codec{CodecNone, CodecLZ4, CodecZstd, CodecBrotli} {
		p, err := ParseCodec(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, p)
	}
	p, err := ParseCodec("ZSTD")
	require.NoError(t, err)
	assert.Equal(t, CodecZstd, p)

	_, err = ParseCodec("gzip")
	assert.True(t, errors.Is(err, ErrUnknownCodec))
	assert.Equal(t, "Codec(9)", Codec(9).String())

	var c Codec
	require.NoError(t, c.UnmarshalText([]byte("brotli")))
	assert.Equal(t, CodecBrotli, c)
	_, err = Codec(9).MarshalText()
	assert.Error(t, err)
}

func TestPack(t *testing.T) {
	data := testData(t)
	for _, codec := range []Codec{CodecNone, CodecLZ4, CodecZstd, CodecBrotli} {
		t.Run(codec.String(), func(t *testing.T) {
			p, err := Pack(data, codec)
			require.NoError(t, err)
			assert.True(t, IsPacked(p))
			assert.Equal(t, []byte("MDXP"), p[:4])
			assert.Equal(t, byte(codec), p[4])

			u, err := Unpack(p, 0)
			require.NoError(t, err)
			assert.Equal(t, data, u)

			e, err := Pack(nil, codec)
			require.NoError(t, err)
			assert.Len(t, e, packHeaderSize)
			u, err = Unpack(e, 0)
			require.NoError(t, err)
			assert.Empty(t, u)
		})
	}
}

func TestPackCompresses(t *testing.T) {
	data := bytes.Repeat([]byte("KGTR"), 4096)
	for _, codec := range []Codec{CodecLZ4, CodecZstd, CodecBrotli} {
		p, err := Pack(data, codec)
		require.NoError(t, err)
		assert.Less(t, len(p), len(data)/4, codec.String())
	}
}

func TestUnpackErrors(t *testing.T) {
	data := testData(t)
	assert.False(t, IsPacked(data))
	_, err := Unpack(data, 0)
	assert.True(t, errors.Is(err, ErrNotPacked))

	_, err = Pack(data, Codec(9))
	assert.True(t, errors.Is(err, ErrUnknownCodec))

	p, err := Pack(data, CodecNone)
	require.NoError(t, err)

	_, err = Unpack(p[:8], 0)
	assert.True(t, errors.Is(err, ErrCorruptPack), "short header: %v", err)

	_, err = Unpack(p, uint64(len(data)-1))
	assert.True(t, errors.Is(err, ErrLimitExceeded))

	_, err = Unpack(p[:len(p)-1], 0)
	assert.True(t, errors.Is(err, ErrCorruptPack), "truncated payload: %v", err)

	bad := append([]byte{}, p...)
	bad[4] = 9
	_, err = Unpack(bad, 0)
	assert.True(t, errors.Is(err, ErrUnknownCodec))

	z, err := Pack(data, CodecZstd)
	require.NoError(t, err)
	z[len(z)-1] ^= 0xFF
	z[len(z)-2] ^= 0xFF
	_, err = Unpack(z, 0)
	assert.True(t, errors.Is(err, ErrCorruptPack), "corrupt zstd: %v", err)
}

func TestOpenSave(t *testing.T) {
	dir := t.TempDir()
	m := testModel(t)
	want := testData(t)

	for _, codec := range []Codec{CodecNone, CodecLZ4, CodecZstd, CodecBrotli} {
		t.Run(codec.String(), func(t *testing.T) {
			path := filepath.Join(dir, codec.String()+".mdx")
			warn, err := Save(path, m, codec)
			require.NoError(t, err)
			assert.NoError(t, warn)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, codec != CodecNone, IsPacked(raw))

			got, warn, err := Open(path)
			require.NoError(t, err)
			assert.NoError(t, warn)
			b, err := mdx.Serialize(got)
			require.NoError(t, err)
			assert.Equal(t, want, b)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Open(filepath.Join(dir, "missing.mdx"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(dir, "bad.mdx")
	require.NoError(t, os.WriteFile(path, []byte("MDLY"), 0666))
	_, _, err = Open(path)
	var ferr errors.FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, path, ferr.Path)
	assert.True(t, errors.Is(err, mdx.ErrInvalidMagic))

	p, err := Pack(testData(t), CodecLZ4)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, p, 0666))
	_, _, err = Options{Limit: 16}.Open(path)
	assert.True(t, errors.Is(err, ErrLimitExceeded))

	_, err = Save(filepath.Join(dir, "nil.mdx"), nil, CodecNone)
	assert.Error(t, err)
}

func TestOptionsReadWrite(t *testing.T) {
	var buf bytes.Buffer
	warn, err := Options{Codec: CodecZstd}.Write(&buf, testModel(t))
	require.NoError(t, err)
	assert.NoError(t, warn)
	assert.True(t, IsPacked(buf.Bytes()))

	m, _, err := Options{}.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Footman", m.Model.Name)
	assert.Equal(t, float32(270), m.Sequences.Sequences[1].MoveSpeed)
}

func TestDigest(t *testing.T) {
	data := testData(t)
	a := Digest(data)
	assert.Equal(t, a, Digest(append([]byte{}, data...)))
	assert.Len(t, a.String(), 64)

	s, err := DigestModel(testModel(t))
	require.NoError(t, err)
	assert.Equal(t, a, s)

	m := testModel(t)
	m.Model.Name = "Grunt"
	s, err = DigestModel(m)
	require.NoError(t, err)
	assert.NotEqual(t, a, s)

	_, err = DigestModel(nil)
	assert.Error(t, err)
}
