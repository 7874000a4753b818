package mdx

// EventTrack lists the times at which an event fires.
type EventTrack struct {
	GlobalSequenceID uint32
	Times            []uint32
}

// Size returns the encoded size of the track, excluding its tag.
func (t *EventTrack) Size() int {
	return 4 + 4 + 4*len(t.Times)
}

func decodeEventTrack(r *reader) *EventTrack {
	n := r.count(4)
	t := &EventTrack{GlobalSequenceID: r.u32()}
	t.Times = make([]uint32, n)
	for i := range t.Times {
		t.Times[i] = r.u32()
	}
	return t
}

func (t *EventTrack) encode(w *writer) {
	w.u32(uint32(len(t.Times)))
	w.u32(t.GlobalSequenceID)
	for _, v := range t.Times {
		w.u32(v)
	}
}

// EventObject is a node that fires an event, such as a sound or a spawned
// splat, at each of its key times.
type EventObject struct {
	Node Node
	Keys *EventTrack // KEVT
}

// Size returns the encoded size of the event object.
func (e *EventObject) Size() int {
	n := e.Node.Size()
	if e.Keys != nil {
		n += 4 + e.Keys.Size()
	}
	return n
}

func readEventObject(r *reader) (EventObject, uint32) {
	var e EventObject
	e.Node.decode(r)
	if t, ok := r.peekTag(); ok && t == TagKEVT {
		r.tag()
		e.Keys = decodeEventTrack(r)
	}
	return e, uint32(e.Size())
}

func (e *EventObject) put(w *writer) {
	e.Node.encode(w)
	if e.Keys != nil {
		w.tag(TagKEVT)
		e.Keys.encode(w)
	}
}

// EventObjectChunk (EVTS) lists the event objects of the model.
type EventObjectChunk struct {
	ChunkSize uint32
	Events    []EventObject
}

func (c *EventObjectChunk) Tag() Tag { return TagEVTS }

func (c *EventObjectChunk) Size() int {
	n := 4
	for i := range c.Events {
		n += c.Events[i].Size()
	}
	return n
}

func (c *EventObjectChunk) UpdateSize() {
	for i := range c.Events {
		c.Events[i].Node.UpdateSize()
	}
	c.ChunkSize = uint32(c.Size() - 4)
}

func (c *EventObjectChunk) decode(r *reader) (warn error) {
	c.ChunkSize, c.Events, warn = decodeInclusive(r, TagEVTS, readEventObject)
	return warn
}

func (c *EventObjectChunk) encode(w *writer) {
	w.u32(c.ChunkSize)
	for i := range c.Events {
		c.Events[i].put(w)
	}
}
