// Package heap implements the slab allocator that backs every runtime
// object: a growing list of fixed-cell slabs, a singly-linked free list
// threaded through the cells themselves, and the range/alignment check a
// conservative root scan would need.
//
// Go's own allocator and garbage collector already sit underneath this —
// slabs are ordinary Go slices — but the slab/free-list shape is kept
// faithful to the reference design rather than simply calling `new` per
// object, because the collector in internal/gc drives unmark/sweep over
// exactly this structure, and free cells must be recognisable by address
// even from a conservative-style scan.
package heap

import "github.com/cwbudde/ember/internal/runtime"

const initialSlabSize = 8

// slab is one fixed-size block of object cells.
type slab struct {
	cells []runtime.Object
}

// Heap owns every slab and the current free list.
type Heap struct {
	slabs    []*slab
	nextSize int
	free     *runtime.Object

	lowest  *runtime.Object
	highest *runtime.Object
}

// New creates an empty heap; its first slab is allocated lazily on first
// Allocate call.
func New() *Heap {
	return &Heap{nextSize: initialSlabSize}
}

func (h *Heap) addSlab() {
	s := &slab{cells: make([]runtime.Object, h.nextSize)}
	h.slabs = append(h.slabs, s)
	h.nextSize *= 2

	for i := range s.cells {
		cell := &s.cells[i]
		cell.Class = nil // free sentinel
		cell.FreeNext = h.free
		h.free = cell
	}

	first, last := &s.cells[0], &s.cells[len(s.cells)-1]
	if h.lowest == nil || before(first, h.lowest) {
		h.lowest = first
	}
	if h.highest == nil || before(h.highest, last) {
		h.highest = last
	}
}

func before(a, b *runtime.Object) bool {
	return uintptr(ptrOf(a)) < uintptr(ptrOf(b))
}

// Allocate pops a cell off the free list, growing the heap with a new,
// doubled-size slab if the free list is empty. Allocation never fails
// gracefully: if Go's own allocator cannot satisfy make([]runtime.Object,
// n), the process aborts via the normal out-of-memory panic — matching the
// reference interpreter's stance that it is not designed to survive OOM.
func (h *Heap) Allocate() *runtime.Object {
	if h.free == nil {
		h.addSlab()
	}
	obj := h.free
	h.free = obj.FreeNext
	*obj = runtime.Object{}
	return obj
}

// Free returns obj to the free list. Used only by the collector during
// sweep.
func (h *Heap) Free(obj *runtime.Object) {
	*obj = runtime.Object{Class: nil, FreeNext: h.free}
	h.free = obj
}

// Contains reports whether pointer addresses a live (non-free) cell inside
// this heap. It is the building block a conservative stack/register scan
// would use; the precise-rooting GC in internal/gc does not call it, but
// it is kept as the documented alternative described in the design notes.
func (h *Heap) Contains(pointer *runtime.Object) bool {
	if pointer == nil {
		return false
	}
	if before(pointer, h.lowest) || before(h.highest, pointer) {
		return false
	}
	for _, s := range h.slabs {
		if len(s.cells) == 0 {
			continue
		}
		first := &s.cells[0]
		last := &s.cells[len(s.cells)-1]
		if before(pointer, first) || before(last, pointer) {
			continue
		}
		offset := uintptr(ptrOf(pointer)) - uintptr(ptrOf(first))
		if offset%cellSize() != 0 {
			return false
		}
		return pointer.Class != nil
	}
	return false
}

// UnmarkAll clears the mark bit on every live cell, the first half of a
// mark-sweep cycle.
func (h *Heap) UnmarkAll() {
	for _, s := range h.slabs {
		for i := range s.cells {
			if s.cells[i].Class != nil {
				s.cells[i].Marked = false
			}
		}
	}
}

// SweepUnmarked destroys every live-but-unmarked cell via destroy, then
// returns it to the free list. destroy is expected to run the class's
// destructor chain; the cell's class pointer is nulled only after destroy
// returns.
func (h *Heap) SweepUnmarked(destroy func(*runtime.Object)) {
	for _, s := range h.slabs {
		for i := range s.cells {
			cell := &s.cells[i]
			if cell.Class != nil && !cell.Marked {
				destroy(cell)
				h.Free(cell)
			}
		}
	}
}

// Walk calls f for every live cell in the heap, in slab order. Used by
// diagnostics and tests; SweepUnmarked walks the slabs itself.
func (h *Heap) Walk(f func(*runtime.Object)) {
	for _, s := range h.slabs {
		for i := range s.cells {
			if s.cells[i].Class != nil {
				f(&s.cells[i])
			}
		}
	}
}
