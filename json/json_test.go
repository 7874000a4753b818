package json

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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
		Texture(`Textures\Footman.blp`),
		Material(0, Layer(`Textures\Footman.blp`, 1)),
		Bone("Bone_Root", Pivot(0, 0, 0),
			Translation(mdx.InterpolationHermite,
				Key(0, 0, 0, 0, 0, 0, 1, 0, 0, 1),
				Key(1000, 0, 0, 10, 0, 0, -1, 0, 0, -1),
			),
			Rotation(mdx.InterpolationBezier, Key(0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1)),
			Scaling(mdx.InterpolationLinear, Key(0, 1, 1, 1)),
			Attachment("Overhead Ref", "", Visibility(Key(0, 1), Key(500, 0))),
		),
		EventObject("SNDxFOO1", Times{100}),
		CollisionBox("Collision01", mdx.Vec3{X: -1, Y: -1, Z: -1}, mdx.Vec3{X: 1, Y: 1, Z: 1}),
	}.Declare()
	require.NoError(t, err)
	return m
}

func TestRoundTrip(t *testing.T) {
	b, err := mdx.Serialize(testModel(t))
	require.NoError(t, err)
	m, err := mdx.Deserialize(b)
	require.NoError(t, err)

	j, err := Encode(m)
	require.NoError(t, err)
	assert.Contains(t, string(j), `"version":0`)
	assert.Contains(t, string(j), `"Order":["KGTR","KGRT","KGSC"]`)

	d, err := Decode(j)
	require.NoError(t, err)
	b2, err := mdx.Serialize(d)
	require.NoError(t, err)
	assert.Equal(t, b, b2)
}

func TestWriteRead(t *testing.T) {
	m := testModel(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Contains(t, buf.String(), "\n  \"model\": {\n    ")

	d, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Size(), d.Size())
	assert.Equal(t, m.Model.Name, d.Model.Name)
}

func TestDecodeModel(t *testing.T) {
	m := testModel(t)
	bone := m.Bones.Bones[0].Node
	require.NotNil(t, bone.Translation)
	assert.Equal(t, mdx.Vec3{Z: -1}, bone.Translation.Tracks[1].OutTan)

	for _, indent := range []string{"", " ", "    "} {
		j, err := EncodeIndent(m, indent)
		require.NoError(t, err)
		d, err := Decode(j)
		require.NoError(t, err)
		if diff := cmp.Diff(m, d, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("indent %q: decoded model mismatch (-want +got):\n%s", indent, diff)
		}
	}
}

func TestEncodeIndentInvalid(t *testing.T) {
	for _, indent := range []string{"\t", " \t", "--"} {
		b, err := EncodeIndent(testModel(t), indent)
		assert.True(t, errors.Is(err, ErrIndent), "indent %q: %v", indent, err)
		assert.Nil(t, b)
	}
}

func TestDecodeSizes(t *testing.T) {
	j, err := EncodeIndent(testModel(t), "  ")
	require.NoError(t, err)
	// Stale sizes are recomputed.
	j = bytes.Replace(j, []byte(`"InclusiveSize": `), []byte(`"InclusiveSize": 1`), -1)
	d, err := Decode(j)
	require.NoError(t, err)
	_, err = mdx.Serialize(d)
	require.NoError(t, err)
	assert.Equal(t, uint32(d.Bones.Bones[0].Node.Size()), d.Bones.Bones[0].Node.InclusiveSize)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `[`},
		{"missing version", `{"model":{}}`},
		{"unsupported version", `{"version":1,"model":{}}`},
		{"missing model", `{"version":0}`},
		{"bad tag", `{"version":0,"model":{"Bones":{"Bones":[{"Node":{"Order":["TOOLONG"]}}]}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, m)
		})
	}

	_, err := Encode(nil)
	assert.Error(t, err)
}
