package mdx

// NameSize is the width of node, camera and sequence names.
const NameSize = 80

// NoParent is the ParentID of a node at the root of the hierarchy.
const NoParent = 0xFFFFFFFF

// Node is the common header of every object in the node hierarchy: bones,
// lights, helpers, attachments, emitters, event objects and collision shapes.
type Node struct {
	InclusiveSize uint32
	Name          string
	ObjectID      uint32
	ParentID      uint32
	Flags         uint32

	Translation *Transform[Vec3] // KGTR
	Rotation    *Transform[Vec4] // KGRT
	Scaling     *Transform[Vec3] // KGSC

	// Order lists the tags of the transforms in the order they were decoded.
	Order []Tag
}

func (n *Node) blocks() []block {
	return []block{
		transformBlock(TagKGTR, &n.Translation),
		transformBlock(TagKGRT, &n.Rotation),
		transformBlock(TagKGSC, &n.Scaling),
	}
}

// Size returns the encoded size of the node.
func (n *Node) Size() int {
	return 4 + NameSize + 12 + blocksSize(n.blocks())
}

// UpdateSize sets InclusiveSize from the node's content.
func (n *Node) UpdateSize() {
	n.InclusiveSize = uint32(n.Size())
}

func (n *Node) decode(r *reader) {
	start := r.offset()
	n.InclusiveSize = r.u32()
	n.Name = r.fixedString(NameSize)
	n.ObjectID = r.u32()
	n.ParentID = r.u32()
	n.Flags = r.u32()
	n.Order = scanBlocks(r, "node", start, n.InclusiveSize, n.blocks())
	checkSize(r, "node "+n.Name, n.InclusiveSize, n.Size())
}

func (n *Node) encode(w *writer) {
	w.u32(n.InclusiveSize)
	w.fixedString(n.Name, NameSize)
	w.u32(n.ObjectID)
	w.u32(n.ParentID)
	w.u32(n.Flags)
	encodeBlocks(w, n.blocks(), n.Order)
}
