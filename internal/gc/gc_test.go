package gc

import (
	"testing"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
)

func TestCollectFreesUnreachable(t *testing.T) {
	h := heap.New()
	b := classrt.NewBuiltins(h)
	c := New(h)

	live := b.NewStructure()
	garbage := b.NewStructure()
	_ = garbage

	var liveCount int
	h.Walk(func(*runtime.Object) { liveCount++ })
	if liveCount == 0 {
		t.Fatalf("expected live cells before collection")
	}

	c.Collect(Roots{Objects: append(b.Roots(), live)})

	var seenLive, seenGarbage bool
	h.Walk(func(o *runtime.Object) {
		if o == live {
			seenLive = true
		}
		if o == garbage {
			seenGarbage = true
		}
	})
	if !seenLive {
		t.Errorf("live object was collected")
	}
	if seenGarbage {
		t.Errorf("unreachable object survived collection")
	}
}

func TestCollectKeepsStructurePayloadReachable(t *testing.T) {
	h := heap.New()
	b := classrt.NewBuiltins(h)
	c := New(h)

	outer := b.NewStructure()
	inner := b.NewStructure()
	classrt.StructureSet(outer, "inner", runtime.Obj(inner))

	c.Collect(Roots{Objects: append(b.Roots(), outer)})

	var seenInner bool
	h.Walk(func(o *runtime.Object) {
		if o == inner {
			seenInner = true
		}
	})
	if !seenInner {
		t.Errorf("object reachable only via a native GCAccept payload was collected")
	}
}

func TestCollectTracesScopes(t *testing.T) {
	h := heap.New()
	b := classrt.NewBuiltins(h)
	c := New(h)

	held := b.NewStructure()
	scope := runtime.NewRootScope(nil)
	scope.Declare("x", runtime.Obj(held))

	c.Collect(Roots{Objects: b.Roots(), Scopes: []*runtime.Scope{scope}})

	var seenHeld bool
	h.Walk(func(o *runtime.Object) {
		if o == held {
			seenHeld = true
		}
	})
	if !seenHeld {
		t.Errorf("object reachable only through a scope binding was collected")
	}
}

func TestCollectRunsDestructorChain(t *testing.T) {
	h := heap.New()
	b := classrt.NewBuiltins(h)
	c := New(h)

	var calls []string
	child := b.Structure
	child.Destructor = func(*runtime.Object) { calls = append(calls, "child") }
	b.Object.Destructor = func(*runtime.Object) { calls = append(calls, "object") }

	b.NewStructure() // unreachable once collected

	c.Collect(Roots{Objects: b.Roots()})

	if len(calls) != 2 || calls[0] != "child" || calls[1] != "object" {
		t.Errorf("destructor chain = %v, want [child object]", calls)
	}
}
