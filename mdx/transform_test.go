package mdx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		t    interface{ Size() int }
	}{
		{"empty", 12, &Transform[Vec3]{}},
		{"linear vec3", 12 + 2*16, &Transform[Vec3]{
			InterpolationType: InterpolationLinear,
			Tracks:            make([]Track[Vec3], 2),
		}},
		{"hermite vec3", 12 + 2*40, &Transform[Vec3]{
			InterpolationType: InterpolationHermite,
			Tracks:            make([]Track[Vec3], 2),
		}},
		{"bezier vec4", 12 + 52, &Transform[Vec4]{
			InterpolationType: InterpolationBezier,
			Tracks:            make([]Track[Vec4], 1),
		}},
		{"none scalar", 12 + 8, &Transform[Scalar]{
			Tracks: make([]Track[Scalar], 1),
		}},
		{"hermite integer", 12 + 16, &Transform[Integer]{
			InterpolationType: InterpolationHermite,
			Tracks:            make([]Track[Integer], 1),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.t.Size())
		})
	}
}

func TestTransformLinear(t *testing.T) {
	b := app(
		uint32(2), uint32(InterpolationLinear), uint32(NoGlobalSequence),
		uint32(0), float32(1), float32(2), float32(3),
		uint32(100), float32(4), float32(5), float32(6),
	)
	r := newReader(b)
	tr := decodeTransform[Vec3](r)
	require.NoError(t, r.err())
	assert.Equal(t, len(b), r.offset())

	want := &Transform[Vec3]{
		InterpolationType: InterpolationLinear,
		GlobalSequenceID:  NoGlobalSequence,
		Tracks: []Track[Vec3]{
			{Time: 0, Value: Vec3{1, 2, 3}},
			{Time: 100, Value: Vec3{4, 5, 6}},
		},
	}
	if diff := cmp.Diff(want, tr); diff != "" {
		t.Errorf("transform mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(b), tr.Size())

	w := newWriter(len(b))
	tr.encode(w)
	require.NoError(t, w.err())
	assert.Equal(t, b, w.data())
}

func TestTransformTangents(t *testing.T) {
	b := app(
		uint32(1), uint32(InterpolationHermite), uint32(3),
		uint32(10), float32(0.5), float32(0.25), float32(0.75),
	)
	r := newReader(b)
	tr := decodeTransform[Scalar](r)
	require.NoError(t, r.err())
	require.Len(t, tr.Tracks, 1)
	assert.Equal(t, Track[Scalar]{Time: 10, Value: 0.5, InTan: 0.25, OutTan: 0.75}, tr.Tracks[0])

	w := newWriter(len(b))
	tr.encode(w)
	assert.Equal(t, b, w.data())
}

func TestTransformTruncated(t *testing.T) {
	r := newReader(app(uint32(1000), uint32(InterpolationLinear), uint32(0), uint32(0)))
	decodeTransform[Vec4](r)
	assert.True(t, errors.Is(r.err(), ErrOutOfBounds))
}

func TestInterpolationType(t *testing.T) {
	assert.False(t, InterpolationNone.HasTangents())
	assert.False(t, InterpolationLinear.HasTangents())
	assert.True(t, InterpolationHermite.HasTangents())
	assert.True(t, InterpolationBezier.HasTangents())
	assert.Equal(t, "Bezier", InterpolationBezier.String())
	assert.Equal(t, "Unknown", InterpolationType(9).String())
}
