package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/mdxapi/mdxfile"
	. "github.com/mdxapi/mdxfile/declare"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/mdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run runs mdxtool with args, isolated from any user configuration.
func run(t *testing.T, stdin []byte, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)

	var out, errOut bytes.Buffer
	app := newApp(bytes.NewReader(stdin), &out, &errOut)
	_, err = app.Parse(args)
	return out.String(), errOut.String(), err
}

func writeModel(t *testing.T) (path string, data []byte) {
	t.Helper()
	m, err := Model{
		Version(mdx.FormatVersion),
		Info("Footman", 150, Bounds(64, mdx.Vec3{X: -32, Y: -32}, mdx.Vec3{X: 32, Y: 32, Z: 96})),
		Sequence("Stand", 0, 1000),
		Texture(`Textures\Footman.blp`),
		Material(0, Layer(`Textures\Footman.blp`, 1)),
		Geoset(mdx.Geoset{
			Vertices:        []mdx.Vec3{{}, {X: 1}, {Y: 1}},
			Normals:         []mdx.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
			FaceTypes:       []uint32{4},
			FaceGroups:      []uint32{3},
			Faces:           []mdx.Face{{0, 1, 2}},
			VertexGroups:    []uint8{0, 0, 0},
			MatrixGroups:    []uint32{1},
			MatrixIndices:   []uint32{0},
			SequenceExtents: []mdx.Extent{{}},
			TextureCoordinateSets: [][]mdx.Vec2{
				{{}, {X: 1}, {Y: 1}},
			},
		}),
		Bone("Bone_Root", Pivot(0, 0, 0), UseGeoset(0, mdx.NoParent),
			Translation(mdx.InterpolationLinear, Key(0, 0, 0, 0), Key(500, 0, 0, 5), Key(1000, 0, 0, 0)),
			Helper("Helper_Head", Pivot(0, 0, 80)),
		),
	}.Declare()
	require.NoError(t, err)
	data, err = mdx.Serialize(m)
	require.NoError(t, err)
	path = filepath.Join(t.TempDir(), "footman.mdx")
	require.NoError(t, os.WriteFile(path, data, 0666))
	return path, data
}

func TestDump(t *testing.T) {
	path, data := writeModel(t)
	stdout, _, err := run(t, nil, "dump", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Magic: MDLX\n"))
	assert.Contains(t, stdout, "\n\t#0: VERS {")
	assert.Contains(t, stdout, `Name: "Footman"`)

	stdin, _, err := run(t, data, "dump", "-")
	require.NoError(t, err)
	assert.Equal(t, stdout, stdin)
}

func TestStat(t *testing.T) {
	path, data := writeModel(t)
	packed := filepath.Join(t.TempDir(), "footman.mdxp")
	p, err := mdxfile.Pack(data, mdxfile.CodecZstd)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(packed, p, 0666))

	stdout, _, err := run(t, nil, "stat", "--json", path, packed)
	require.NoError(t, err)
	var stats []Stats
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(stdout), &stats))
	require.Len(t, stats, 2)

	s := stats[0]
	assert.Equal(t, "Footman", s.Name)
	assert.Equal(t, uint32(800), s.Version)
	assert.Equal(t, len(data), s.Size)
	assert.Equal(t, mdxfile.Digest(data).String(), s.Digest)
	assert.Equal(t, 2, s.NodeCount)
	assert.Equal(t, map[string]int{"Bone": 1, "Helper": 1}, s.NodeKinds)
	assert.Equal(t, 3, s.VertexCount)
	assert.Equal(t, 1, s.TriangleCount)
	assert.Equal(t, 1, s.TransformCount)
	assert.Equal(t, 3, s.TrackCount)
	assert.Equal(t, mdx.TagVERS, s.Chunks[0].Tag)
	assert.Empty(t, s.Codec)

	assert.Equal(t, "zstd", stats[1].Codec)
	assert.Equal(t, len(p), stats[1].PackedSize)
	assert.Equal(t, s.Digest, stats[1].Digest)

	stdout, _, err = run(t, nil, "stat", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `footman.mdx: "Footman", version 800`)
	assert.Contains(t, stdout, "vertices: 3, triangles: 1")
	assert.Contains(t, stdout, "\tGEOS: 1 records,")
}

func TestPackUnpack(t *testing.T) {
	path, data := writeModel(t)
	dir := t.TempDir()
	packed := filepath.Join(dir, "footman.mdxp")
	unpacked := filepath.Join(dir, "footman.mdx")

	_, _, err := run(t, nil, "pack", "--codec", "lz4", path, packed)
	require.NoError(t, err)
	p, err := os.ReadFile(packed)
	require.NoError(t, err)
	assert.True(t, mdxfile.IsPacked(p))
	assert.Equal(t, byte(mdxfile.CodecLZ4), p[4])

	_, _, err = run(t, nil, "unpack", packed, unpacked)
	require.NoError(t, err)
	u, err := os.ReadFile(unpacked)
	require.NoError(t, err)
	assert.Equal(t, data, u)

	_, _, err = run(t, nil, "unpack", path, unpacked)
	assert.True(t, errors.Is(err, mdxfile.ErrNotPacked))

	_, _, err = run(t, nil, "--limit", "16 B", "unpack", packed, unpacked)
	assert.True(t, errors.Is(err, mdxfile.ErrLimitExceeded))

	_, _, err = run(t, nil, "pack", "--codec", "gzip", path, packed)
	assert.True(t, errors.Is(err, mdxfile.ErrUnknownCodec))
}

func TestPackConfiguredCodec(t *testing.T) {
	path, _ := writeModel(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mdxtool.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("pack:\n  codec: brotli\n"), 0666))

	stdout, _, err := run(t, nil, "--config", cfg, "pack", path)
	require.NoError(t, err)
	assert.True(t, mdxfile.IsPacked([]byte(stdout)))
	assert.Equal(t, byte(mdxfile.CodecBrotli), stdout[4])
}

func TestPackInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.mdx")
	require.NoError(t, os.WriteFile(bad, []byte("MDLY"), 0666))
	_, _, err := run(t, nil, "pack", bad, filepath.Join(dir, "bad.mdxp"))
	assert.True(t, errors.Is(err, mdx.ErrInvalidMagic))
}

func TestVerify(t *testing.T) {
	path, data := writeModel(t)
	dir := t.TempDir()

	truncated := filepath.Join(dir, "truncated.mdx")
	require.NoError(t, os.WriteFile(truncated, data[:len(data)-3], 0666))

	// GLBS with a remainder decodes, but encodes without it.
	remainder := filepath.Join(dir, "remainder.mdx")
	b := append([]byte{}, data...)
	b = append(b, 'G', 'L', 'B', 'S', 6, 0, 0, 0, 100, 0, 0, 0, 1, 2)
	require.NoError(t, os.WriteFile(remainder, b, 0666))

	stdout, _, err := run(t, nil, "verify", path)
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", stdout)

	stdout, _, err = run(t, nil, "verify", path, truncated, remainder)
	require.Error(t, err)
	assert.Equal(t, path+": ok\n", stdout)
	errs, ok := err.(errors.Errors)
	require.True(t, ok)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], mdx.ErrOutOfBounds))
	assert.True(t, errors.Is(errs[1], ErrMismatch))
	var ferr errors.FileError
	require.True(t, errors.As(errs[1], &ferr))
	assert.Equal(t, remainder, ferr.Path)
}

func TestVerifyStrict(t *testing.T) {
	path, data := writeModel(t)
	var warned mdx.VersionChunk
	warned.Version = 900
	m, err := mdx.Deserialize(data)
	require.NoError(t, err)
	m.Version = &warned
	b, err := mdx.Serialize(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0666))

	_, stderr, err := run(t, nil, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "WARN warning")

	_, _, err = run(t, nil, "verify", "--strict", path)
	var vw mdx.VersionWarning
	require.True(t, errors.As(err, &vw), "%v", err)
	assert.Equal(t, uint32(900), vw.Version)
}

func TestResave(t *testing.T) {
	path, data := writeModel(t)
	out := filepath.Join(t.TempDir(), "out.mdx")

	_, _, err := run(t, nil, "resave", path, out)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	_, _, err = run(t, nil, "resave", "--codec", "zstd", path, out)
	require.NoError(t, err)
	b, err = os.ReadFile(out)
	require.NoError(t, err)
	u, err := mdxfile.Unpack(b, 0)
	require.NoError(t, err)
	assert.Equal(t, data, u)
}

func TestJSON(t *testing.T) {
	path, data := writeModel(t)
	dir := t.TempDir()
	j := filepath.Join(dir, "footman.json")
	back := filepath.Join(dir, "footman.mdx")

	_, _, err := run(t, nil, "json", path, j)
	require.NoError(t, err)
	b, err := os.ReadFile(j)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "{\n  \"version\": 0,\n  \"model\": {\n    "), "%s", b)

	_, _, err = run(t, nil, "fromjson", j, back)
	require.NoError(t, err)
	b, err = os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	stdout, _, err := run(t, nil, "json", "--compact", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, `{"version":0,"model":{`))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version":7}`), 0666))
	_, _, err = run(t, nil, "fromjson", bad, back)
	var ferr errors.FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, bad, ferr.Path)
}

func TestConfig(t *testing.T) {
	stdout, _, err := run(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "codec: zstd")
	assert.Contains(t, stdout, "level: info")

	stdout, _, err = run(t, nil, "--debug", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "level: debug")

	path := filepath.Join(t.TempDir(), "mdxtool.yaml")
	_, _, err = run(t, nil, "config", "init", path)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "max_unpacked_size: 256 MiB")

	_, _, err = run(t, nil, "--log-level", "loud", "config", "show")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, _, err := run(t, nil, "dump", filepath.Join(t.TempDir(), "missing.mdx"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
