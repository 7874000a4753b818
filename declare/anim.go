package declare

import (
	"github.com/mdxapi/mdxfile/mdx"
)

type animTarget int

const (
	targetTranslation animTarget = iota
	targetRotation
	targetScaling
	targetVisibility
)

// anim represents the declaration of an animated value.
type anim struct {
	target animTarget
	interp mdx.InterpolationType
	global uint32
	keys   []key
}

func (anim) element() {}

// Global returns the animation driven by the global sequence with the given
// index instead of the sequence timeline.
func (a anim) Global(id uint32) anim {
	a.global = id
	return a
}

// key represents the declaration of a single keyframe.
type key struct {
	time   uint32
	values []float32
}

// Key declares a keyframe at the given time. The values are numbers: the
// components of the value, followed by the components of the in and out
// tangents when the interpolation has tangents. Missing components are zero.
func Key(time uint32, values ...interface{}) key {
	k := key{time: time, values: make([]float32, len(values))}
	for i, v := range values {
		k.values[i] = normFloat32(v)
	}
	return k
}

func newAnim(target animTarget, interp mdx.InterpolationType, keys []key) anim {
	return anim{target: target, interp: interp, global: mdx.NoGlobalSequence, keys: keys}
}

// Translation declares an animated translation of three components.
func Translation(interp mdx.InterpolationType, keys ...key) anim {
	return newAnim(targetTranslation, interp, keys)
}

// Rotation declares an animated rotation quaternion of four components.
func Rotation(interp mdx.InterpolationType, keys ...key) anim {
	return newAnim(targetRotation, interp, keys)
}

// Scaling declares an animated scaling of three components.
func Scaling(interp mdx.InterpolationType, keys ...key) anim {
	return newAnim(targetScaling, interp, keys)
}

// Visibility declares when a node is visible. Each key has one component,
// and values are held until the next key.
func Visibility(keys ...key) anim {
	return newAnim(targetVisibility, mdx.InterpolationNone, keys)
}

// Alpha declares an animated alpha of one component, for use with
// Layer.WithAlpha.
func Alpha(interp mdx.InterpolationType, keys ...key) anim {
	return newAnim(targetVisibility, interp, keys)
}

// transform builds a transform from a, reading width components for each
// value and tangent.
func transform[T mdx.Keyable[T]](a anim, width int, value func(v []float32) T) *mdx.Transform[T] {
	t := &mdx.Transform[T]{
		InterpolationType: a.interp,
		GlobalSequenceID:  a.global,
		Tracks:            make([]mdx.Track[T], len(a.keys)),
	}
	n := width
	if a.interp.HasTangents() {
		n = 3 * width
	}
	for i, k := range a.keys {
		v := make([]float32, n)
		copy(v, k.values)
		tr := &t.Tracks[i]
		tr.Time = k.time
		tr.Value = value(v[:width])
		if a.interp.HasTangents() {
			tr.InTan = value(v[width : 2*width])
			tr.OutTan = value(v[2*width:])
		}
	}
	return t
}

func vec3(v []float32) mdx.Vec3     { return mdx.Vec3{X: v[0], Y: v[1], Z: v[2]} }
func vec4(v []float32) mdx.Vec4     { return mdx.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]} }
func scalar(v []float32) mdx.Scalar { return mdx.Scalar(v[0]) }

func normFloat32(v interface{}) float32 {
	switch v := v.(type) {
	case int:
		return float32(v)
	case uint:
		return float32(v)
	case uint8:
		return float32(v)
	case uint16:
		return float32(v)
	case uint32:
		return float32(v)
	case uint64:
		return float32(v)
	case int8:
		return float32(v)
	case int16:
		return float32(v)
	case int32:
		return float32(v)
	case int64:
		return float32(v)
	case float32:
		return float32(v)
	case float64:
		return float32(v)
	case mdx.Scalar:
		return float32(v)
	}

	return 0
}
