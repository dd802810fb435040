package searcher

// varHeap is a binary heap over cdcl.Var ordered by decreasing activity,
// used to pick the next decision variable. A MiniSat-style Heap.h
// translation, rebased on the searcher's own activity slice instead of a
// shared solver field.
type varHeap struct {
	activity []float64
	content  []int32
	indices  []int32 // indices[v] is v's position in content, -1 if absent
}

func newVarHeap(activity []float64) *varHeap {
	return &varHeap{activity: activity}
}

func (h *varHeap) lt(a, b int32) bool { return h.activity[a] > h.activity[b] }

func left(i int32) int32   { return i*2 + 1 }
func right(i int32) int32  { return (i + 1) * 2 }
func parent(i int32) int32 { return (i - 1) >> 1 }

func (h *varHeap) len() int    { return len(h.content) }
func (h *varHeap) empty() bool { return len(h.content) == 0 }

func (h *varHeap) contains(v int32) bool {
	return int(v) < len(h.indices) && h.indices[v] >= 0
}

func (h *varHeap) grow(n int) {
	for int32(len(h.indices)) < int32(n) {
		h.indices = append(h.indices, -1)
	}
}

func (h *varHeap) percolateUp(i int32) {
	x := h.content[i]
	p := parent(i)
	for i != 0 && h.lt(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.indices[h.content[p]] = i
		i = p
		p = parent(p)
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) percolateDown(i int32) {
	x := h.content[i]
	for left(i) < int32(len(h.content)) {
		child := left(i)
		if r := right(i); r < int32(len(h.content)) && h.lt(h.content[r], h.content[left(i)]) {
			child = r
		}
		if !h.lt(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.indices[h.content[i]] = i
		i = child
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) insert(v int32) {
	h.grow(int(v) + 1)
	h.indices[v] = int32(len(h.content))
	h.content = append(h.content, v)
	h.percolateUp(h.indices[v])
}

func (h *varHeap) update(v int32) {
	if !h.contains(v) {
		h.insert(v)
		return
	}
	h.percolateUp(h.indices[v])
	h.percolateDown(h.indices[v])
}

func (h *varHeap) removeMin() int32 {
	x := h.content[0]
	last := len(h.content) - 1
	h.content[0] = h.content[last]
	h.indices[h.content[0]] = 0
	h.indices[x] = -1
	h.content = h.content[:last]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}

// rebuild discards the current heap order and reinserts exactly ns,
// used by RebuildOrderHeap to re-seed the heap with the currently
// unassigned, active variables after an inprocessing pass.
func (h *varHeap) rebuild(ns []int32) {
	for _, v := range h.content {
		h.indices[v] = -1
	}
	h.content = h.content[:0]
	for i, v := range ns {
		h.grow(int(v) + 1)
		h.indices[v] = int32(i)
		h.content = append(h.content, v)
	}
	for i := int32(len(h.content))/2 - 1; i >= 0; i-- {
		h.percolateDown(i)
	}
}
