package mdx

// block binds an optional tagged sub-block to the record field that holds
// it.
type block struct {
	tag     Tag
	present func() bool
	// size excludes the tag.
	size   func() int
	decode func(r *reader)
	encode func(w *writer)
}

func transformBlock[T Keyable[T]](tag Tag, p **Transform[T]) block {
	return block{
		tag:     tag,
		present: func() bool { return *p != nil },
		size:    func() int { return (*p).Size() },
		decode:  func(r *reader) { *p = decodeTransform[T](r) },
		encode:  func(w *writer) { (*p).encode(w) },
	}
}

func findBlock(blocks []block, t Tag) int {
	for i, b := range blocks {
		if b.tag == t {
			return i
		}
	}
	return -1
}

// blocksSize returns the encoded size of the present blocks, tags included.
func blocksSize(blocks []block) (n int) {
	for _, b := range blocks {
		if b.present() {
			n += 4 + b.size()
		}
	}
	return n
}

// scanBlocks decodes tagged blocks while the cursor is within size bytes of
// start. It returns the tags in the order they were found. A tag that is not
// one of blocks fails with ErrUnknownSubTag.
func scanBlocks(r *reader, record string, start int, size uint32, blocks []block) (order []Tag) {
	for r.ok() && r.offset()-start < int(size) {
		t, ok := r.peekTag()
		if !ok {
			r.need(4)
			break
		}
		i := findBlock(blocks, t)
		if i < 0 {
			r.fail(unknownSubTag(record, t))
			break
		}
		r.tag()
		if !blocks[i].present() {
			order = append(order, t)
		}
		blocks[i].decode(r)
	}
	return order
}

// encodeBlocks writes the present blocks, first in the given order, then any
// remaining blocks in declared order.
func encodeBlocks(w *writer, blocks []block, order []Tag) {
	var done uint64
	emit := func(i int) {
		done |= 1 << uint(i)
		w.tag(blocks[i].tag)
		blocks[i].encode(w)
	}
	for _, t := range order {
		i := findBlock(blocks, t)
		if i < 0 || done&(1<<uint(i)) != 0 || !blocks[i].present() {
			continue
		}
		emit(i)
	}
	for i, b := range blocks {
		if done&(1<<uint(i)) == 0 && b.present() {
			emit(i)
		}
	}
}

// checkSize fails with ErrSizeMismatch if a declared size does not match the
// size computed from content.
func checkSize(r *reader, what string, declared uint32, computed int) {
	if r.ok() && declared != uint32(computed) {
		r.fail(sizeMismatch(what, declared, computed))
	}
}
