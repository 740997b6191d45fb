package classrt

import "github.com/cwbudde/ember/internal/runtime"

// Invoker runs a resolved Method against self and args. The evaluator
// supplies the concrete implementation: for a native method it is just
// m.Native(self, args); for a method backed by a language-level closure it
// must build a fresh scope parented at the closure's captured scope, bind
// parameters, and evaluate the body — machinery only the evaluator package
// has, since only it understands AST nodes. classrt never evaluates AST
// itself; it only decides *which* method a dispatch resolves to.
type Invoker func(m *runtime.Method, self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object)

// HasPrivateAccess reports whether a call site evaluating inside scope may
// see non-public members of receiver: exactly when the scope's self is
// identical (by pointer) to the receiver object.
func HasPrivateAccess(scope *runtime.Scope, receiver *runtime.Object) bool {
	return scope != nil && scope.Self != nil && receiver != nil && scope.Self == receiver
}

// ResolveMemberRead finds the method/getter that should answer a member
// read, searching from startClass: the receiver's own dynamic class for
// ordinary `receiver.name` access (so overrides dispatch virtually), or
// the defining class's superclass for `super.name` (bypassing the
// receiver's dynamic class entirely, by construction of the caller's
// startClass argument). A member lacking FlagPublic is visible only when
// the call site has private access to receiver.
func ResolveMemberRead(scope *runtime.Scope, startClass *runtime.ClassDescriptor, receiver *runtime.Object, name string) (*runtime.Method, bool) {
	private := HasPrivateAccess(scope, receiver)
	m, _ := runtime.FindMethodOrGetter(startClass, name)
	if m == nil {
		return nil, false
	}
	if !private && !m.Flags.Has(runtime.FlagPublic) {
		return nil, false
	}
	return m, true
}

// ResolveMemberWrite is ResolveMemberRead's setter-table counterpart.
func ResolveMemberWrite(scope *runtime.Scope, startClass *runtime.ClassDescriptor, receiver *runtime.Object, name string) (*runtime.Method, bool) {
	private := HasPrivateAccess(scope, receiver)
	m, _ := runtime.FindSetter(startClass, name)
	if m == nil {
		return nil, false
	}
	if !private && !m.Flags.Has(runtime.FlagPublic) {
		return nil, false
	}
	return m, true
}

// New constructs an instance of class: allocates a cell, wires the field
// chain, marks it initialised, then invokes the constructor (honouring
// the reference lifecycle — a constructor failure still leaves a valid,
// collectable object since Initialized is already true; no rollback is
// attempted).
func (b *Builtins) New(invoke Invoker, class *runtime.ClassDescriptor, args []runtime.Value) (*runtime.Object, *runtime.Object) {
	obj := b.heap.Allocate()
	obj.Class = class
	if !class.Native {
		obj.Fields = runtime.NewFieldChain(class)
	}
	obj.Initialized = true

	ctor := class.Constructor
	if ctor == nil {
		return obj, nil
	}
	_, exc := invoke(ctor, runtime.Obj(obj), args)
	if exc != nil {
		return obj, exc
	}
	return obj, nil
}

// DispatchBinary runs the four-step binary operator cascade: try L's own
// operator, then R's reflected operator, then R's own operator with
// swapped operands, finally a TypeError. Any exception other than the
// dispatch-miss sentinel, including a NotImplementedError raised by user
// code, short-circuits immediately.
func (b *Builtins) DispatchBinary(invoke Invoker, op string, left, right runtime.Value) (runtime.Value, *runtime.Object) {
	lClass := left.ClassOf(&b.Primitives)
	rClass := right.ClassOf(&b.Primitives)

	if v, exc, tried := b.tryOperator(invoke, lClass, "operator "+op, left, []runtime.Value{right}); tried {
		if exc == nil || !IsNotImplemented(b, exc) {
			return v, exc
		}
	}
	if v, exc, tried := b.tryOperator(invoke, rClass, "operator r"+op, right, []runtime.Value{left}); tried {
		if exc == nil || !IsNotImplemented(b, exc) {
			return v, exc
		}
	}
	if v, exc, tried := b.tryOperator(invoke, rClass, "operator "+op, right, []runtime.Value{left}); tried {
		if exc == nil || !IsNotImplemented(b, exc) {
			return v, exc
		}
	}
	return runtime.Null, b.TypeErrorf("Unsupported classes for %s: %s and %s", op, lClass.Name, rClass.Name)
}

func (b *Builtins) tryOperator(invoke Invoker, class *runtime.ClassDescriptor, name string, self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object, bool) {
	m, _ := runtime.FindMethodOrGetter(class, name)
	if m == nil {
		return runtime.Null, nil, false
	}
	v, exc := invoke(m, self, args)
	return v, exc, true
}

// DispatchUnary runs the single-step unary cascade: L's own operator, then
// a TypeError.
func (b *Builtins) DispatchUnary(invoke Invoker, op string, operand runtime.Value) (runtime.Value, *runtime.Object) {
	class := operand.ClassOf(&b.Primitives)
	m, _ := runtime.FindMethodOrGetter(class, "unary "+op)
	if m == nil {
		return runtime.Null, b.TypeErrorf("Unsupported class for unary %s: %s", op, class.Name)
	}
	v, exc := invoke(m, operand, nil)
	if exc != nil && IsNotImplemented(b, exc) {
		return runtime.Null, b.TypeErrorf("Unsupported class for unary %s: %s", op, class.Name)
	}
	return v, exc
}
