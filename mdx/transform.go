package mdx

// Keyable is the set of values that can be animated by a Transform. It is
// satisfied only by Vec3, Vec4, Color, Scalar and Integer.
type Keyable[T any] interface {
	keySize() int
	putKey(w *writer)
	getKey(r *reader) T
}

// InterpolationType selects how a Transform interpolates between tracks.
type InterpolationType uint32

const (
	InterpolationNone    InterpolationType = 0
	InterpolationLinear  InterpolationType = 1
	InterpolationHermite InterpolationType = 2
	InterpolationBezier  InterpolationType = 3
)

// HasTangents returns whether tracks under this interpolation carry in and
// out tangents.
func (i InterpolationType) HasTangents() bool {
	return i > InterpolationLinear
}

func (i InterpolationType) String() string {
	switch i {
	case InterpolationNone:
		return "None"
	case InterpolationLinear:
		return "Linear"
	case InterpolationHermite:
		return "Hermite"
	case InterpolationBezier:
		return "Bezier"
	}
	return "Unknown"
}

// NoGlobalSequence is the GlobalSequenceID of a Transform that follows the
// regular sequence timeline.
const NoGlobalSequence = 0xFFFFFFFF

////////////////////////////////////////////////////////////////

// Track is a single keyframe of a Transform. InTan and OutTan are encoded only
// when the interpolation type of the enclosing Transform has tangents.
type Track[T Keyable[T]] struct {
	Time   uint32
	Value  T
	InTan  T
	OutTan T
}

// Transform is an animated value: a list of keyframes and how to interpolate
// between them.
type Transform[T Keyable[T]] struct {
	InterpolationType InterpolationType
	GlobalSequenceID  uint32
	Tracks            []Track[T]
}

// Size returns the encoded size of the transform, excluding its tag.
func (t *Transform[T]) Size() int {
	var zero T
	per := 4 + zero.keySize()
	if t.InterpolationType.HasTangents() {
		per += 2 * zero.keySize()
	}
	return 12 + len(t.Tracks)*per
}

func decodeTransform[T Keyable[T]](r *reader) *Transform[T] {
	var zero T
	t := &Transform[T]{}
	width := 4 + zero.keySize()
	n := r.u32()
	t.InterpolationType = InterpolationType(r.u32())
	t.GlobalSequenceID = r.u32()
	if !r.ok() {
		return t
	}
	tangents := t.InterpolationType.HasTangents()
	if tangents {
		width += 2 * zero.keySize()
	}
	if uint64(n)*uint64(width) > uint64(r.remaining()) {
		r.fail(outOfBoundsCount(n, width, r.remaining()))
		return t
	}
	t.Tracks = make([]Track[T], n)
	for i := range t.Tracks {
		k := &t.Tracks[i]
		k.Time = r.u32()
		k.Value = zero.getKey(r)
		if tangents {
			k.InTan = zero.getKey(r)
			k.OutTan = zero.getKey(r)
		}
	}
	return t
}

func (t *Transform[T]) encode(w *writer) {
	w.u32(uint32(len(t.Tracks)))
	w.u32(uint32(t.InterpolationType))
	w.u32(t.GlobalSequenceID)
	tangents := t.InterpolationType.HasTangents()
	for _, k := range t.Tracks {
		w.u32(k.Time)
		k.Value.putKey(w)
		if tangents {
			k.InTan.putKey(w)
			k.OutTan.putKey(w)
		}
	}
}
