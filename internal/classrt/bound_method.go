package classrt

import "github.com/cwbudde/ember/internal/runtime"

// BoundMethod is the native payload of an InstanceMethod object: a method
// found via member access, paired with the receiver it is bound to as a
// Value rather than an Object pointer — the receiver may be a primitive
// (e.g. a non-getter method looked up on an Int). Calling it dispatches
// with that receiver as self regardless of what expression produced the
// InstanceMethod value.
type BoundMethod struct {
	Method *runtime.Method
	Self   runtime.Value
}

// NewBoundMethod wraps m/self as a callable InstanceMethod value.
func (b *Builtins) NewBoundMethod(m *runtime.Method, self runtime.Value) *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = b.InstanceMethod
	obj.Initialized = true
	obj.Native = &BoundMethod{Method: m, Self: self}
	return obj
}

// BoundMethodValue extracts the *BoundMethod payload of an InstanceMethod
// object, or nil (with ok=false) if obj is not one.
func BoundMethodValue(obj *runtime.Object) (*BoundMethod, bool) {
	if obj == nil {
		return nil, false
	}
	bound, ok := obj.Native.(*BoundMethod)
	return bound, ok
}
