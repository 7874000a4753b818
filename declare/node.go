package declare

import (
	"fmt"
	"sort"

	"github.com/mdxapi/mdxfile/mdx"
)

// element is implemented by declarations that can be within a node
// declaration.
type element interface {
	element()
}

type nodeKind int

// Node kinds in the order they receive object ids.
const (
	kindBone nodeKind = iota
	kindLight
	kindHelper
	kindAttachment
	kindEvent
	kindCollision
)

// node represents the declaration of a node of any kind.
type node struct {
	kind     nodeKind
	name     string
	parent   string
	flags    uint32
	pivot    *mdx.Vec3
	anims    []anim
	children []node

	// Resolved by Declare.
	nestedIn string
	id       uint32

	geosetID          uint32
	geosetAnimationID uint32
	light             mdx.Light
	path              string
	times             []uint32
	shape             mdx.ShapeType
	vertices          []mdx.Vec3
	radius            float32
}

func (node) primary() {}
func (node) element() {}

func newNode(kind nodeKind, name string, elements []element) node {
	n := node{
		kind:              kind,
		name:              name,
		geosetID:          mdx.NoParent,
		geosetAnimationID: mdx.NoParent,
	}
	for _, e := range elements {
		switch e := e.(type) {
		case Parent:
			n.parent = string(e)
		case Flags:
			n.flags = uint32(e)
		case pivot:
			p := mdx.Vec3(e)
			n.pivot = &p
		case anim:
			n.anims = append(n.anims, e)
		case node:
			n.children = append(n.children, e)
		case geosetRef:
			n.geosetID = e[0]
			n.geosetAnimationID = e[1]
		case Times:
			n.times = append(n.times, e...)
		}
	}
	return n
}

// Bone declares a bone. Nodes declared within it become its children.
func Bone(name string, elements ...element) node {
	return newNode(kindBone, name, elements)
}

// Light declares a light of the given type, with a white color and an
// intensity of 1.
func Light(name string, typ mdx.LightType, elements ...element) node {
	n := newNode(kindLight, name, elements)
	n.light = mdx.Light{
		Type:      typ,
		Color:     mdx.Color{B: 1, G: 1, R: 1},
		Intensity: 1,
	}
	return n
}

// Helper declares a helper.
func Helper(name string, elements ...element) node {
	return newNode(kindHelper, name, elements)
}

// Attachment declares an attachment point. Attachment ids are assigned in
// declaration order.
func Attachment(name, path string, elements ...element) node {
	n := newNode(kindAttachment, name, elements)
	n.path = path
	return n
}

// EventObject declares an event object. Its key times are declared with
// Times.
func EventObject(name string, elements ...element) node {
	return newNode(kindEvent, name, elements)
}

// CollisionSphere declares a spherical collision shape.
func CollisionSphere(name string, center mdx.Vec3, radius float32, elements ...element) node {
	n := newNode(kindCollision, name, elements)
	n.shape = mdx.ShapeSphere
	n.vertices = []mdx.Vec3{center}
	n.radius = radius
	return n
}

// CollisionBox declares a box collision shape between two corners.
func CollisionBox(name string, min, max mdx.Vec3, elements ...element) node {
	n := newNode(kindCollision, name, elements)
	n.shape = mdx.ShapeBox
	n.vertices = []mdx.Vec3{min, max}
	return n
}

// Parent declares the parent of a node by name, overriding the node it is
// nested in.
type Parent string

func (Parent) element() {}

// Flags declares the flags of a node.
type Flags uint32

func (Flags) element() {}

type pivot mdx.Vec3

func (pivot) element() {}

// Pivot declares the pivot point of a node. If any node declares a pivot, the
// model receives one pivot point per node, indexed by object id.
func Pivot(x, y, z interface{}) pivot {
	return pivot{X: normFloat32(x), Y: normFloat32(y), Z: normFloat32(z)}
}

type geosetRef [2]uint32

func (geosetRef) element() {}

// UseGeoset declares the geoset and geoset animation deformed by a bone.
func UseGeoset(geoset, geosetAnimation uint32) geosetRef {
	return geosetRef{geoset, geosetAnimation}
}

// Times declares the key times of an event object.
type Times []uint32

func (Times) element() {}

////////////////////////////////////////////////////////////////

// flatten appends n and its descendants to nodes in declaration order.
func flatten(nodes []*node, n node, nestedIn string) []*node {
	n.nestedIn = nestedIn
	p := &n
	nodes = append(nodes, p)
	for _, c := range n.children {
		nodes = flatten(nodes, c, n.name)
	}
	return nodes
}

// buildNodes assigns object ids, resolves parents, and adds the node chunks to
// m.
func buildNodes(m *mdx.Model, nodes []*node) (errs []error) {
	if len(nodes) == 0 {
		return nil
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].kind < nodes[j].kind
	})
	byName := make(map[string]*node, len(nodes))
	for i, n := range nodes {
		if _, ok := byName[n.name]; ok {
			errs = append(errs, fmt.Errorf("node %q declared more than once", n.name))
		}
		byName[n.name] = n
		n.id = uint32(i)
	}

	var pivots []mdx.Vec3
	for _, n := range nodes {
		if n.pivot != nil {
			pivots = make([]mdx.Vec3, len(nodes))
			break
		}
	}

	for _, n := range nodes {
		hdr := mdx.Node{
			Name:     n.name,
			ObjectID: n.id,
			ParentID: mdx.NoParent,
			Flags:    n.flags,
		}
		parent := n.nestedIn
		if n.parent != "" {
			parent = n.parent
		}
		if parent != "" {
			p, ok := byName[parent]
			if !ok {
				errs = append(errs, fmt.Errorf("node %q refers to undeclared parent %q", n.name, parent))
				continue
			}
			hdr.ParentID = p.id
		}
		if pivots != nil && n.pivot != nil {
			pivots[n.id] = *n.pivot
		}
		visibility := applyAnims(&hdr, n.anims)
		addNode(m, n, hdr, visibility)
	}
	if pivots != nil {
		m.PivotPoints = &mdx.PivotPointChunk{Points: pivots}
	}
	return errs
}

// applyAnims sets the node transforms declared in anims, and returns the
// declared visibility, if any.
func applyAnims(hdr *mdx.Node, anims []anim) (visibility *mdx.Transform[mdx.Scalar]) {
	for _, a := range anims {
		switch a.target {
		case targetTranslation:
			hdr.Translation = transform(a, 3, vec3)
		case targetRotation:
			hdr.Rotation = transform(a, 4, vec4)
		case targetScaling:
			hdr.Scaling = transform(a, 3, vec3)
		case targetVisibility:
			visibility = transform(a, 1, scalar)
		}
	}
	return visibility
}

func addNode(m *mdx.Model, n *node, hdr mdx.Node, visibility *mdx.Transform[mdx.Scalar]) {
	switch n.kind {
	case kindBone:
		if m.Bones == nil {
			m.Bones = new(mdx.BoneChunk)
		}
		m.Bones.Bones = append(m.Bones.Bones, mdx.Bone{
			Node:              hdr,
			GeosetID:          n.geosetID,
			GeosetAnimationID: n.geosetAnimationID,
		})
	case kindLight:
		if m.Lights == nil {
			m.Lights = new(mdx.LightChunk)
		}
		l := n.light
		l.Node = hdr
		l.Visibility = visibility
		m.Lights.Lights = append(m.Lights.Lights, l)
	case kindHelper:
		if m.Helpers == nil {
			m.Helpers = new(mdx.HelperChunk)
		}
		m.Helpers.Helpers = append(m.Helpers.Helpers, mdx.Helper{Node: hdr})
	case kindAttachment:
		if m.Attachments == nil {
			m.Attachments = new(mdx.AttachmentChunk)
		}
		m.Attachments.Attachments = append(m.Attachments.Attachments, mdx.Attachment{
			Node:         hdr,
			Path:         n.path,
			AttachmentID: uint32(len(m.Attachments.Attachments)),
			Visibility:   visibility,
		})
	case kindEvent:
		if m.EventObjects == nil {
			m.EventObjects = new(mdx.EventObjectChunk)
		}
		e := mdx.EventObject{Node: hdr}
		if n.times != nil {
			e.Keys = &mdx.EventTrack{GlobalSequenceID: mdx.NoGlobalSequence, Times: n.times}
		}
		m.EventObjects.Events = append(m.EventObjects.Events, e)
	case kindCollision:
		if m.CollisionShapes == nil {
			m.CollisionShapes = new(mdx.CollisionShapeChunk)
		}
		m.CollisionShapes.Shapes = append(m.CollisionShapes.Shapes, mdx.CollisionShape{
			Node:     hdr,
			Shape:    n.shape,
			Vertices: n.vertices,
			Radius:   n.radius,
		})
	}
}
