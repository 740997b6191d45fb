// Package gc implements the tracing mark-sweep collector that reclaims
// heap objects once they are unreachable from any root. Rooting is
// precise: the collector is handed an explicit root set (built-in
// classes, loaded modules, the active scope stack, the in-flight
// result) rather than scanning the Go stack/registers conservatively —
// internal/heap.Contains exists only as the documented conservative
// alternative, unused here.
package gc

import (
	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
)

// Roots is every GC root the collector must trace from. Module and
// Scopes are walked directly (they are plain Go structs managed by Go's
// own collector, not heap cells); what matters to this package is the
// runtime.Object and runtime.Value references reachable through them.
type Roots struct {
	// Objects holds the built-in class descriptors' backing objects
	// (classrt.Builtins.Roots) plus any other standalone objects the
	// caller needs traced directly.
	Objects []*runtime.Object
	Modules []*runtime.Module
	Scopes  []*runtime.Scope
	Result  *runtime.Result
}

// Collector runs stop-the-world mark-sweep cycles over one heap.
type Collector struct {
	h       *heap.Heap
	running bool
}

// New creates a collector over h.
func New(h *heap.Heap) *Collector {
	return &Collector{h: h}
}

// Collect runs one full cycle: unmark everything, mark everything
// reachable from roots, then sweep (and destroy) everything left
// unmarked. It is not reentrant — a Collect triggered while another is
// in progress (e.g. from a destructor that happens to allocate) is a
// caller bug, not silently ignored, so it panics.
func (c *Collector) Collect(roots Roots) {
	if c.running {
		panic("gc: Collect called re-entrantly")
	}
	c.running = true
	defer func() { c.running = false }()

	c.h.UnmarkAll()

	for _, obj := range roots.Objects {
		c.markObject(obj)
	}
	for _, m := range roots.Modules {
		c.markModule(m)
	}
	for _, s := range roots.Scopes {
		c.markScope(s)
	}
	if roots.Result != nil {
		c.markValue(roots.Result.Value)
		c.markObject(roots.Result.Exception)
	}

	c.h.SweepUnmarked(c.destroy)
}

func (c *Collector) markValue(v runtime.Value) {
	if v.Tag == runtime.TagObject {
		c.markObject(v.Obj)
	}
}

// markObject marks obj and, if newly marked, traces everything it
// keeps alive: its class's backing object (so the class itself is
// never collected out from under a live instance), its per-instance
// field chain, and whatever its dynamic class's GCAccept chain
// reports the generic field walk cannot see.
func (c *Collector) markObject(obj *runtime.Object) {
	if obj == nil || obj.Marked {
		return
	}
	obj.Marked = true
	if !obj.Initialized {
		return
	}

	if obj.Class != nil {
		c.markObject(obj.Class.Object())
	}

	for level := obj.Fields; level != nil; level = level.Parent {
		for _, v := range level.Values {
			c.markValue(v)
		}
	}

	for class := obj.Class; class != nil; class = class.Super {
		if class.GCAccept != nil {
			class.GCAccept(obj, c.markValue, c.markObject, c.markScope)
		}
	}
}

func (c *Collector) markScope(s *runtime.Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		for _, v := range cur.Vars {
			c.markValue(v)
		}
		c.markObject(cur.Self)
		if cur.DefClass != nil {
			c.markObject(cur.DefClass.Object())
		}
		if cur.Module != nil {
			c.markModule(cur.Module)
		}
	}
}

func (c *Collector) markModule(m *runtime.Module) {
	if m == nil {
		return
	}
	for _, v := range m.Exports {
		c.markValue(v)
	}
}

// destroy runs the destructor chain from obj's dynamic class up to the
// root, per class, before the cell is returned to the free list.
func (c *Collector) destroy(obj *runtime.Object) {
	for class := obj.Class; class != nil; class = class.Super {
		if class.Destructor != nil {
			class.Destructor(obj)
		}
	}
}
