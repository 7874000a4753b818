// The declare package is used to generate mdx models in a declarative style.
//
// A Model is a list of declarations. Nodes are declared with their children
// nested inside them, and other declarations refer to nodes and textures by
// name rather than by index. Declare resolves these names, assigns object ids
// and computes every size field.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//     import . "github.com/mdxapi/mdxfile/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package declare

import (
	"fmt"

	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/mdx"
)

// primary is implemented by declarations that can be directly within a Model
// declaration.
type primary interface {
	primary()
}

// Model declares an mdx.Model. It is a list that contains version, info,
// sequence, texture, material, geoset, camera and node declarations.
type Model []primary

// Declare evaluates the Model declaration. Chunks are created only for kinds
// that have at least one declaration. Nodes receive object ids in the order
// bones, lights, helpers, attachments, event objects, then collision shapes,
// and in declaration order within each kind.
//
// An error is returned if a name is declared twice, or if a reference names
// something that was not declared.
func (dm Model) Declare() (*mdx.Model, error) {
	m := new(mdx.Model)
	var nodes []*node
	var layers []layerRef
	textures := map[string]uint32{}
	var errs errors.Errors

	for _, p := range dm {
		switch p := p.(type) {
		case version:
			m.Version = &mdx.VersionChunk{Version: uint32(p)}
		case info:
			m.Model = &mdx.ModelChunk{Name: p.name, BlendTime: p.blendTime, Extent: p.extent}
		case sequence:
			if m.Sequences == nil {
				m.Sequences = new(mdx.SequenceChunk)
			}
			m.Sequences.Sequences = append(m.Sequences.Sequences, mdx.Sequence(p))
		case globalSequence:
			if m.GlobalSequences == nil {
				m.GlobalSequences = new(mdx.GlobalSequenceChunk)
			}
			m.GlobalSequences.Durations = append(m.GlobalSequences.Durations, uint32(p))
		case texture:
			if m.Textures == nil {
				m.Textures = new(mdx.TextureChunk)
			}
			if _, ok := textures[p.name]; ok {
				errs = errs.Append(fmt.Errorf("texture %q declared more than once", p.name))
				continue
			}
			textures[p.name] = uint32(len(m.Textures.Textures))
			m.Textures.Textures = append(m.Textures.Textures, p.texture)
		case material:
			if m.Materials == nil {
				m.Materials = new(mdx.MaterialChunk)
			}
			mi := len(m.Materials.Materials)
			mat := mdx.Material{PriorityPlane: p.priorityPlane, Layers: make([]mdx.Layer, len(p.layers))}
			for i, l := range p.layers {
				mat.Layers[i] = l.layer
				layers = append(layers, layerRef{material: mi, layer: i, texture: l.texture})
			}
			m.Materials.Materials = append(m.Materials.Materials, mat)
		case geoset:
			if m.Geosets == nil {
				m.Geosets = new(mdx.GeosetChunk)
			}
			m.Geosets.Geosets = append(m.Geosets.Geosets, mdx.Geoset(p))
		case camera:
			if m.Cameras == nil {
				m.Cameras = new(mdx.CameraChunk)
			}
			m.Cameras.Cameras = append(m.Cameras.Cameras, mdx.Camera(p))
		case node:
			nodes = flatten(nodes, p, "")
		}
	}

	for _, ref := range layers {
		id, ok := textures[ref.texture]
		if !ok {
			errs = errs.Append(fmt.Errorf("layer of material %d refers to undeclared texture %q", ref.material, ref.texture))
			continue
		}
		m.Materials.Materials[ref.material].Layers[ref.layer].TextureID = id
	}

	errs = errs.Append(buildNodes(m, nodes)...)
	if err := errs.Return(); err != nil {
		return nil, err
	}
	m.UpdateSizes()
	return m, nil
}

// layerRef locates a layer whose texture is resolved after all textures are
// declared.
type layerRef struct {
	material int
	layer    int
	texture  string
}

////////////////////////////////////////////////////////////////

// version represents the declaration of the format version.
type version uint32

func (version) primary() {}

// Version declares the VERS chunk of the model.
func Version(v uint32) version {
	return version(v)
}

type info struct {
	name      string
	blendTime uint32
	extent    mdx.Extent
}

func (info) primary() {}

// Info declares the MODL chunk of the model: its name, blend time, and
// bounds.
func Info(name string, blendTime uint32, bounds mdx.Extent) info {
	return info{name: name, blendTime: blendTime, extent: bounds}
}

// Bounds returns an extent from a radius and two corners.
func Bounds(radius float32, min, max mdx.Vec3) mdx.Extent {
	return mdx.Extent{BoundsRadius: radius, Min: min, Max: max}
}

type sequence mdx.Sequence

func (sequence) primary() {}

// SequenceOption modifies a declared sequence.
type SequenceOption func(s *mdx.Sequence)

// MoveSpeed sets the movement speed of a sequence.
func MoveSpeed(v float32) SequenceOption {
	return func(s *mdx.Sequence) { s.MoveSpeed = v }
}

// NonLooping marks a sequence as playing once.
func NonLooping(s *mdx.Sequence) {
	s.NonLooping = 1
}

// Rarity sets the rarity of a sequence.
func Rarity(v float32) SequenceOption {
	return func(s *mdx.Sequence) { s.Rarity = v }
}

// Sequence declares an interval of the animation timeline.
func Sequence(name string, start, end uint32, options ...SequenceOption) sequence {
	s := mdx.Sequence{Name: name, IntervalStart: start, IntervalEnd: end}
	for _, o := range options {
		o(&s)
	}
	return sequence(s)
}

type globalSequence uint32

func (globalSequence) primary() {}

// GlobalSequence declares a global sequence with the given duration. Global
// sequences are numbered in declaration order.
func GlobalSequence(duration uint32) globalSequence {
	return globalSequence(duration)
}

type texture struct {
	name    string
	texture mdx.Texture
}

func (texture) primary() {}

// Texture declares a texture loaded from path. Layers refer to the texture by
// its path.
func Texture(path string) texture {
	return texture{name: path, texture: mdx.Texture{FileName: path}}
}

// ReplaceableTexture declares a texture supplied by the engine. Layers refer
// to the texture by name.
func ReplaceableTexture(name string, id uint32) texture {
	return texture{name: name, texture: mdx.Texture{ReplaceableID: id}}
}

type layer struct {
	texture string
	layer   mdx.Layer
}

// Layer declares one pass of a material, using the texture declared with the
// given name.
func Layer(texture string, filterMode uint32) layer {
	return layer{
		texture: texture,
		layer: mdx.Layer{
			FilterMode:         filterMode,
			TextureAnimationID: mdx.NoParent,
			Alpha:              1,
		},
	}
}

// WithAlpha returns the layer with an animated alpha.
func (l layer) WithAlpha(a anim) layer {
	l.layer.AlphaCurve = transform(a, 1, scalar)
	return l
}

type material struct {
	priorityPlane uint32
	layers        []layer
}

func (material) primary() {}

// Material declares a material made of the given layers.
func Material(priorityPlane uint32, layers ...layer) material {
	return material{priorityPlane: priorityPlane, layers: layers}
}

type geoset mdx.Geoset

func (geoset) primary() {}

// Geoset declares a mesh. Geoset content has no names to resolve, so it is
// given directly.
func Geoset(g mdx.Geoset) geoset {
	return geoset(g)
}

type camera mdx.Camera

func (camera) primary() {}

// Camera declares a camera looking from position at target.
func Camera(name string, position, target mdx.Vec3, fieldOfView, farClip, nearClip float32) camera {
	return camera{
		Name:        name,
		Position:    position,
		Target:      target,
		FieldOfView: fieldOfView,
		FarClip:     farClip,
		NearClip:    nearClip,
	}
}
