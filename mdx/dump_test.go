package mdx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	b, err := Serialize(testModel())
	require.NoError(t, err)

	var s strings.Builder
	warn, err := Decoder{}.Dump(&s, b)
	require.NoError(t, err)
	require.NoError(t, warn)

	out := s.String()
	assert.True(t, strings.HasPrefix(out, "Magic: MDLX\nSize: "))
	for _, want := range []string{
		"\n\t#0: VERS {\n\t\tChunkSize: 4\n\t\tVersion: 800\n\t}",
		"\n\t#1: MODL {",
		`Name: "Footman"`,
		"Min: (-32, -32, 0)",
		"Faces: (len:1) [(0, 1, 2)]",
		"InterpolationType: Hermite",
		"Order: (len:1) [KGAO]",
		"#19: MTLS {",
	} {
		assert.Contains(t, out, want)
	}
	// Absent blocks are omitted.
	assert.NotContains(t, out, "\tScaling:")
}

func TestDumpError(t *testing.T) {
	var s strings.Builder
	_, err := Decoder{}.Dump(&s, []byte("MDLY"))
	assert.ErrorIs(t, err, ErrInvalidMagic)
	assert.Empty(t, s.String())

	_, err = Decoder{}.Dump(nil, nil)
	assert.Error(t, err)
}
