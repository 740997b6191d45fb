package classrt

import "github.com/cwbudde/ember/internal/runtime"

// NewFunction wraps fn as a callable Function object: a language-level
// closure produced by evaluating a function-declaration node. Calling it
// is the evaluator's job (only it can walk fn.Body); this package only
// needs to allocate and keep it reachable.
func (b *Builtins) NewFunction(fn *runtime.Function) *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = b.Function
	obj.Initialized = true
	obj.Native = fn
	return obj
}

// FunctionValue extracts the *runtime.Function payload of a function
// object, or nil (with ok=false) if obj is not one.
func FunctionValue(obj *runtime.Object) (*runtime.Function, bool) {
	if obj == nil {
		return nil, false
	}
	fn, ok := obj.Native.(*runtime.Function)
	return fn, ok
}

// IsFunction reports whether class is exactly the built-in Function class.
func (b *Builtins) IsFunction(class *runtime.ClassDescriptor) bool {
	return class == b.Function
}
