package classrt

import "github.com/cwbudde/ember/internal/runtime"

// NewModuleObject wraps m as a value bindable in a scope: `import`
// produces one of these, and member access on it (the "for Module class,
// look up in exported members" fallback) reads straight through to
// m.Exports.
func (b *Builtins) NewModuleObject(m *runtime.Module) *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = b.Module
	obj.Initialized = true
	obj.Native = m
	return obj
}

// ModuleValue extracts the *runtime.Module payload of a module object, or
// nil (with ok=false) if obj is not one.
func ModuleValue(obj *runtime.Object) (*runtime.Module, bool) {
	if obj == nil {
		return nil, false
	}
	m, ok := obj.Native.(*runtime.Module)
	return m, ok
}

// IsModule reports whether class is exactly the built-in Module class.
func (b *Builtins) IsModule(class *runtime.ClassDescriptor) bool {
	return class == b.Module
}
