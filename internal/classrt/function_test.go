package classrt

import (
	"testing"

	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
)

func TestFunctionValueRoundTrip(t *testing.T) {
	b := NewBuiltins(heap.New())
	fn := &runtime.Function{Name: "f", Params: []string{"a"}}
	obj := b.NewFunction(fn)

	if !b.IsFunction(obj.Class) {
		t.Fatalf("NewFunction should produce an object of the Function class")
	}
	got, ok := FunctionValue(obj)
	if !ok || got != fn {
		t.Fatalf("FunctionValue should return the wrapped *runtime.Function")
	}
	if _, ok := FunctionValue(b.NewString("x")); ok {
		t.Errorf("FunctionValue should reject non-Function objects")
	}
}

func TestFunctionGCAcceptMarksScope(t *testing.T) {
	b := NewBuiltins(heap.New())
	scope := runtime.NewRootScope(runtime.NewModule("m", true, nil))
	fn := &runtime.Function{Name: "f", Scope: scope}
	obj := b.NewFunction(fn)

	var marked *runtime.Scope
	b.Function.GCAccept(obj, nil, nil, func(s *runtime.Scope) { marked = s })
	if marked != scope {
		t.Fatalf("Function.GCAccept should mark its captured scope")
	}
}
