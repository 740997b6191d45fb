package evaluator

import "testing"

// Closures capture their defining scope, not the call-time scope: a
// function built inside one scope still sees that scope's bindings when
// invoked from somewhere else entirely.
func TestClosureCapturesLexicalScope(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`
		var make = function() {
			var captured = 41;
			function() { captured + 1 }
		};
		var counter = make();
		counter()
	`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if !res.Value.IsInt() || res.Value.Int != 42 {
		t.Fatalf("got %#v, want Int(42)", res.Value)
	}
}

// finally must run exactly once whether the try body succeeds, raises, or
// the except handler itself raises.
func TestFinallyRunsExactlyOnceOnSuccess(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`
		var count = 0;
		try { 1 } finally { count = count + 1 };
		count
	`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if res.Value.Int != 1 {
		t.Fatalf("finally ran %d times, want 1", res.Value.Int)
	}
}

func TestFinallyRunsExactlyOnceWhenExceptHandles(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`
		var count = 0;
		try { 1 / 0 } except ZeroDivisionError (e) { } finally { count = count + 1 };
		count
	`, nil)
	if res.Failed() {
		t.Fatalf("unexpected exception: %v", res.Exception)
	}
	if res.Value.Int != 1 {
		t.Fatalf("finally ran %d times, want 1", res.Value.Int)
	}
}

func TestFinallyRunsAndExceptionPropagatesWhenUnhandled(t *testing.T) {
	ctx := New(nil)
	res := ctx.EvalString(`
		var count = 0;
		try { 1 / 0 } except TypeError (e) { } finally { count = count + 1 };
		count
	`, nil)
	if !res.Failed() {
		t.Fatalf("expected the ZeroDivisionError to propagate past the non-matching except clause")
	}
	if res.Exception.Class != ctx.Builtins.ZeroDivisionError {
		t.Fatalf("got %s, want ZeroDivisionError", res.Exception.Class.Name)
	}
}

// Operator dispatch commutativity: whichever side implements the operator,
// the cascade produces the same value. `1 + 2.5` reaches Float's reflected
// plus; `2.5 + 1` is answered by Float's own plus.
func TestBinaryOperatorDispatchCommutativity(t *testing.T) {
	ctx := New(nil)
	a := ctx.EvalString(`1 + 2.5`, nil)
	b := ctx.EvalString(`2.5 + 1`, nil)
	if a.Failed() || b.Failed() {
		t.Fatalf("unexpected exceptions: %v %v", a.Exception, b.Exception)
	}
	if a.Value.Float != b.Value.Float {
		t.Fatalf("1+2.5=%v but 2.5+1=%v", a.Value.Float, b.Value.Float)
	}
}
