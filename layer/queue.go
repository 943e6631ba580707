// Package layer implements the ordered sequence of per-layer draw-call
// queues the compositor flattens each frame.
//
// Layers are kept in z-order via insertion sort by (priority, registration
// order): equal or larger z inserts stably after the layers already there.
// Rather than sorting a single slice of entries in place, that's split into
// a stable, append-only store of layers (so a LayerIndex handed out by
// CreateLayer stays valid for the process lifetime) plus a separately
// maintained sorted index into it.
//
// A layer's pushed draw calls are NOT stored as drawcall.DrawCall interface
// values: boxing a multi-field call (Fill, Text, Twoxel, Octad, Standard)
// into an interface for storage in a slice that outlives the call forces a
// heap allocation on every Push, which would defeat the whole point of a
// per-frame queue meant to be pushed into every frame without growing the
// heap. Instead each layer holds one concretely-typed slice per call kind,
// plus a small ordered list of (kind, index) tags recording push order
// across kinds — Each replays that order by switching on kind and calling
// Visit on the concrete stored value directly, never constructing a
// DrawCall interface value.
package layer

import "github.com/lixenwraith/termforge/drawcall"

// LayerIndex is an opaque handle to a layer, stable for the process
// lifetime — it is a position into an append-only store, never reused.
type LayerIndex int

type callKind uint8

const (
	kindFill callKind = iota
	kindText
	kindTwoxel
	kindOctad
	kindStandard
)

// callRef is the per-push tag: which kind, and its index into that kind's
// slice. Small and comparable, so appending one never boxes anything.
type callRef struct {
	kind callKind
	idx  int
}

type layerEntry struct {
	z   int
	seq int // creation order, used to break z ties

	order []callRef

	fills     []drawcall.Fill
	texts     []drawcall.Text
	twoxels   []drawcall.Twoxel
	octads    []drawcall.Octad
	standards []drawcall.Standard
}

// Queue is the layered draw queue: an ordered sequence of layers, each an
// ordered sequence of draw calls.
type Queue struct {
	layers  []layerEntry
	order   []LayerIndex // layers, sorted by (z asc, seq asc)
	nextSeq int
}

// New creates an empty queue with capacity for an initial set of layers,
// to avoid reallocating the order/layers slices during early CreateLayer
// calls in the common case of a fixed, small layer count.
func New(layerCapacityHint int) *Queue {
	return &Queue{
		layers: make([]layerEntry, 0, layerCapacityHint),
		order:  make([]LayerIndex, 0, layerCapacityHint),
	}
}

// CreateLayer inserts a new empty layer at z-order z. If another layer
// already occupies z, the new layer is placed after it in composite order —
// stable insertion, so later-created layers draw on top at equal z.
func (q *Queue) CreateLayer(z int) LayerIndex {
	idx := LayerIndex(len(q.layers))
	q.layers = append(q.layers, layerEntry{z: z, seq: q.nextSeq})
	q.nextSeq++

	pos := len(q.order)
	for i, existing := range q.order {
		e := q.layers[existing]
		if z < e.z {
			pos = i
			break
		}
	}
	q.order = append(q.order, 0)
	copy(q.order[pos+1:], q.order[pos:])
	q.order[pos] = idx
	return idx
}

// PushFill appends a Fill draw call to layer idx. Amortized O(1), and never
// boxes dc into an interface: it is copied directly into the layer's own
// []drawcall.Fill.
func (q *Queue) PushFill(idx LayerIndex, dc drawcall.Fill) {
	e := &q.layers[idx]
	e.fills = append(e.fills, dc)
	e.order = append(e.order, callRef{kind: kindFill, idx: len(e.fills) - 1})
}

// PushText appends a Text draw call to layer idx.
func (q *Queue) PushText(idx LayerIndex, dc drawcall.Text) {
	e := &q.layers[idx]
	e.texts = append(e.texts, dc)
	e.order = append(e.order, callRef{kind: kindText, idx: len(e.texts) - 1})
}

// PushTwoxel appends a Twoxel draw call to layer idx.
func (q *Queue) PushTwoxel(idx LayerIndex, dc drawcall.Twoxel) {
	e := &q.layers[idx]
	e.twoxels = append(e.twoxels, dc)
	e.order = append(e.order, callRef{kind: kindTwoxel, idx: len(e.twoxels) - 1})
}

// PushOctad appends an Octad draw call to layer idx.
func (q *Queue) PushOctad(idx LayerIndex, dc drawcall.Octad) {
	e := &q.layers[idx]
	e.octads = append(e.octads, dc)
	e.order = append(e.order, callRef{kind: kindOctad, idx: len(e.octads) - 1})
}

// PushStandard appends a Standard draw call to layer idx.
func (q *Queue) PushStandard(idx LayerIndex, dc drawcall.Standard) {
	e := &q.layers[idx]
	e.standards = append(e.standards, dc)
	e.order = append(e.order, callRef{kind: kindStandard, idx: len(e.standards) - 1})
}

// Each visits every draw call's contributions in composite order: layers
// ascending by z-order, draw calls within a layer in push order. Dispatch
// is a direct method call on the concretely-typed value held in that kind's
// slice — Each never constructs a drawcall.DrawCall interface value, so
// visiting a whole frame's queue allocates nothing.
func (q *Queue) Each(fn func(x, y int, c drawcall.Contribution)) {
	for _, li := range q.order {
		e := &q.layers[li]
		for _, ref := range e.order {
			switch ref.kind {
			case kindFill:
				e.fills[ref.idx].Visit(fn)
			case kindText:
				e.texts[ref.idx].Visit(fn)
			case kindTwoxel:
				e.twoxels[ref.idx].Visit(fn)
			case kindOctad:
				e.octads[ref.idx].Visit(fn)
			case kindStandard:
				e.standards[ref.idx].Visit(fn)
			}
		}
	}
}

// ClearForNextFrame truncates every layer's per-kind call slices and its
// order tag list to length zero without releasing their backing arrays —
// the queue structure (and layer ordering) persists across frames
// untouched.
func (q *Queue) ClearForNextFrame() {
	for i := range q.layers {
		e := &q.layers[i]
		e.order = e.order[:0]
		e.fills = e.fills[:0]
		e.texts = e.texts[:0]
		e.twoxels = e.twoxels[:0]
		e.octads = e.octads[:0]
		e.standards = e.standards[:0]
	}
}

// LayerCount returns the number of layers created so far (for diagnostics
// and tests; not part of the hot path).
func (q *Queue) LayerCount() int {
	return len(q.layers)
}
