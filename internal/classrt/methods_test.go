package classrt

import (
	"testing"

	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
)

func TestIsAAcrossInstanceHierarchy(t *testing.T) {
	b := NewBuiltins(heap.New())
	sub := b.NewScriptedClass("Sub", b.Object, false)
	obj := b.heap.Allocate()
	obj.Class = sub
	obj.Initialized = true

	self := runtime.Obj(obj)
	isA := b.Object.Methods["isA"]

	result, exc := isA.Native(self, []runtime.Value{runtime.Obj(b.Object.Object())})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if !result.Bool {
		t.Errorf("instance of Sub should be isA(Object)")
	}

	result, exc = isA.Native(self, []runtime.Value{runtime.Obj(sub.Object())})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if !result.Bool {
		t.Errorf("instance of Sub should be isA(Sub)")
	}
}

func TestIsAOnClassReferenceItself(t *testing.T) {
	b := NewBuiltins(heap.New())
	a := b.NewScriptedClass("A", b.Object, false)
	bb := b.NewScriptedClass("B", a, false)
	isA := b.Object.Methods["isA"]

	result, exc := isA.Native(runtime.Obj(bb.Object()), []runtime.Value{runtime.Obj(a.Object())})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if !result.Bool {
		t.Errorf("B.isA(A) should be true")
	}

	result, exc = isA.Native(runtime.Obj(a.Object()), []runtime.Value{runtime.Obj(bb.Object())})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if result.Bool {
		t.Errorf("A.isA(B) should be false")
	}
}

func TestClassOfRejectsNonClassObjects(t *testing.T) {
	b := NewBuiltins(heap.New())
	str := b.NewString("hi")
	if _, ok := b.ClassOf(str); ok {
		t.Errorf("a String instance is not a class reference")
	}
	if desc, ok := b.ClassOf(b.Object.Object()); !ok || desc != b.Object {
		t.Errorf("Object's own backing object should resolve to the Object descriptor")
	}
}

func TestIsExceptionClass(t *testing.T) {
	b := NewBuiltins(heap.New())
	if !b.IsExceptionClass(b.TypeError) {
		t.Errorf("TypeError should descend from Exception")
	}
	if b.IsExceptionClass(b.String) {
		t.Errorf("String does not descend from Exception")
	}
}

func TestNewScriptedClassDoesNotLeakIntoByName(t *testing.T) {
	b := NewBuiltins(heap.New())
	before := len(b.ByName)
	b.NewScriptedClass("Widget", b.Object, false)
	if len(b.ByName) != before {
		t.Errorf("NewScriptedClass must not register into ByName (leaks as a permanent GC root otherwise)")
	}
	if _, found := b.ByName["Widget"]; found {
		t.Errorf("scripted class leaked into ByName")
	}
}
