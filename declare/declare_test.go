package declare_test

import (
	"fmt"
	"testing"

	. "github.com/mdxapi/mdxfile/declare"
	"github.com/mdxapi/mdxfile/mdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footman() Model {
	return Model{
		Version(mdx.FormatVersion),
		Info("Footman", 150, Bounds(64, mdx.Vec3{X: -32, Y: -32}, mdx.Vec3{X: 32, Y: 32, Z: 96})),
		Sequence("Stand", 0, 1000),
		Sequence("Death", 1000, 2000, NonLooping, Rarity(0)),
		GlobalSequence(1000),
		Texture(`Textures\Footman.blp`),
		ReplaceableTexture("TeamColor", 1),
		Material(0,
			Layer("TeamColor", 0),
			Layer(`Textures\Footman.blp`, 1).WithAlpha(Alpha(mdx.InterpolationLinear, Key(0, 1), Key(1000, 0))),
		),
		Helper("Helper_Root", Pivot(0, 0, 0),
			Bone("Bone_Chest", Pivot(0, 0, 50), UseGeoset(0, mdx.NoParent),
				Rotation(mdx.InterpolationHermite, Key(0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1)),
				Attachment("Overhead Ref", "", Pivot(0, 0, 96), Visibility(Key(0, 1), Key(500, 0))),
			),
		),
		Light("Omni01", mdx.LightOmni, Parent("Bone_Chest"),
			Translation(mdx.InterpolationLinear, Key(0, 0, 0, 10), Key(1000, 0, 0, 20)).Global(0),
		),
		EventObject("SNDxFOO1", Times{100, 1500}),
		CollisionSphere("Collision01", mdx.Vec3{Z: 40}, 40),
	}
}

func TestDeclare(t *testing.T) {
	m, err := footman().Declare()
	require.NoError(t, err)

	require.NotNil(t, m.Version)
	assert.Equal(t, uint32(mdx.FormatVersion), m.Version.Version)
	assert.Equal(t, "Footman", m.Model.Name)
	require.Len(t, m.Sequences.Sequences, 2)
	assert.Equal(t, uint32(1), m.Sequences.Sequences[1].NonLooping)
	assert.Equal(t, []uint32{1000}, m.GlobalSequences.Durations)

	// Object ids follow node kind, then declaration order.
	bone := m.Bones.Bones[0]
	light := m.Lights.Lights[0]
	helper := m.Helpers.Helpers[0]
	attachment := m.Attachments.Attachments[0]
	assert.Equal(t, uint32(0), bone.Node.ObjectID)
	assert.Equal(t, uint32(1), light.Node.ObjectID)
	assert.Equal(t, uint32(2), helper.Node.ObjectID)
	assert.Equal(t, uint32(3), attachment.Node.ObjectID)
	assert.Equal(t, uint32(4), m.EventObjects.Events[0].Node.ObjectID)
	assert.Equal(t, uint32(5), m.CollisionShapes.Shapes[0].Node.ObjectID)

	// Parents resolve by nesting or by name.
	assert.Equal(t, uint32(mdx.NoParent), helper.Node.ParentID)
	assert.Equal(t, uint32(2), bone.Node.ParentID)
	assert.Equal(t, uint32(0), attachment.Node.ParentID)
	assert.Equal(t, uint32(0), light.Node.ParentID)

	assert.Equal(t, []mdx.Vec3{{Z: 50}, {}, {}, {Z: 96}, {}, {}}, m.PivotPoints.Points)

	require.NotNil(t, bone.Node.Rotation)
	assert.Equal(t, mdx.Vec4{W: 1}, bone.Node.Rotation.Tracks[0].OutTan)
	require.NotNil(t, light.Node.Translation)
	assert.Equal(t, uint32(0), light.Node.Translation.GlobalSequenceID)
	require.NotNil(t, attachment.Visibility)
	assert.Equal(t, uint32(mdx.NoGlobalSequence), attachment.Visibility.GlobalSequenceID)
	assert.Len(t, attachment.Visibility.Tracks, 2)

	layers := m.Materials.Materials[0].Layers
	assert.Equal(t, uint32(1), layers[0].TextureID)
	assert.Equal(t, uint32(0), layers[1].TextureID)
	require.NotNil(t, layers[1].AlphaCurve)

	// Declared models are ready to encode, and sizes are already computed.
	before := m.Size()
	b, err := mdx.Serialize(m)
	require.NoError(t, err)
	assert.Len(t, b, before)
	d, err := mdx.Deserialize(b)
	require.NoError(t, err)
	assert.Equal(t, bone.Node.Rotation, d.Bones.Bones[0].Node.Rotation)
	assert.Equal(t, m.Bones.Bones[0].Node.InclusiveSize, d.Bones.Bones[0].Node.InclusiveSize)
}

func TestDeclareErrors(t *testing.T) {
	_, err := Model{
		Texture("a.blp"),
		Texture("a.blp"),
		Material(0, Layer("b.blp", 0)),
		Bone("Bone01"),
		Helper("Bone01"),
		Light("Omni01", mdx.LightOmni, Parent("Missing")),
	}.Declare()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `texture "a.blp" declared more than once`)
	assert.Contains(t, msg, `undeclared texture "b.blp"`)
	assert.Contains(t, msg, `node "Bone01" declared more than once`)
	assert.Contains(t, msg, `undeclared parent "Missing"`)
}

func TestDeclareEmpty(t *testing.T) {
	m, err := Model{}.Declare()
	require.NoError(t, err)
	assert.Empty(t, m.Chunks())
}

func Example() {
	m, err := Model{
		Version(800),
		Info("Box", 150, Bounds(1, mdx.Vec3{X: -1, Y: -1, Z: -1}, mdx.Vec3{X: 1, Y: 1, Z: 1})),
		Bone("Root", Pivot(0, 0, 0),
			Helper("Child"),
		),
	}.Declare()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Helpers.Helpers[0].Node.ParentID, m.Helpers.Helpers[0].Node.ObjectID)
	// Output: 0 1
}
