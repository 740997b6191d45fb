package evaluator

import "testing"

// These six cases are the concrete end-to-end scenarios pinned for the
// evaluator: each exercises a distinct node kind combination end to end,
// from source text through to a Result.

func TestScenarioArithmeticReassignment(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`var x = 1; x = x + 2; x`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsInt() || res.Value.Int != 3 {
		t.Fatalf("got %#v, want Int(3)", res.Value)
	}
}

func TestScenarioGetterBackedByPrivateField(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`class A { init { @x = 10 } get x; }; A().x`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsInt() || res.Value.Int != 10 {
		t.Fatalf("got %#v, want Int(10)", res.Value)
	}
}

func TestScenarioIsAAcrossInheritance(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`class A { init { } }; class B: A { }; B().isA(A)`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsBool() || !res.Value.Bool {
		t.Fatalf("got %#v, want Bool(true)", res.Value)
	}
}

func TestScenarioDivisionByZeroRaises(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`1 / 0`, nil)
	if !res.Failed() {
		t.Fatalf("expected ZeroDivisionError, got value %#v", res.Value)
	}
	if res.Exception.Class != ctx.Builtins.ZeroDivisionError {
		t.Fatalf("got exception class %s, want ZeroDivisionError", res.Exception.Class.Name)
	}
}

func TestScenarioExceptRecoversFromAttributeError(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`var a = ""; try { a.nope } except AttributeError (e) { a = "ok" }; a`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsObject() || res.Value.Obj == nil {
		t.Fatalf("got %#v, want a String object", res.Value)
	}
	if got := res.Value.Obj.Native.(string); got != "ok" {
		t.Fatalf("got %q, want %q", got, "ok")
	}
}

func TestScenarioImportBuiltinModuleExport(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`import math; math.pi`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsFloat() {
		t.Fatalf("got %#v, want a Float", res.Value)
	}
	const pi = 3.14159265358979323846
	if diff := res.Value.Float - pi; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got %v, want pi", res.Value.Float)
	}
}

// TestIsAOnClassReference covers the property test's class-level form:
// for scripted class C with superclass S, C.isA(S) holds and S.isA(C) does
// not.
func TestIsAOnClassReference(t *testing.T) {
	ctx := New(nil)
	scope := ctx.RootScope()
	setup := ctx.EvalString(`class A { init { } }; class B: A { }`, scope)
	if setup.Failed() {
		t.Fatalf("unexpected exception: %v", setup.Exception)
	}

	res := ctx.EvalString(`B.isA(A)`, scope)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsBool() || !res.Value.Bool {
		t.Fatalf("B.isA(A) got %#v, want Bool(true)", res.Value)
	}

	res = ctx.EvalString(`A.isA(B)`, scope)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsBool() || res.Value.Bool {
		t.Fatalf("A.isA(B) got %#v, want Bool(false)", res.Value)
	}
}
