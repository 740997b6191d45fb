package classrt

import "github.com/cwbudde/ember/internal/runtime"

// ClassOf extracts the *ClassDescriptor a class-reference object wraps —
// every class descriptor's backing object is itself an instance of
// ClassOfClasses with the descriptor riding as its Native payload. Returns
// ok=false for any object that isn't a class reference.
func (b *Builtins) ClassOf(obj *runtime.Object) (*runtime.ClassDescriptor, bool) {
	if obj == nil || obj.Class != b.ClassOfClasses {
		return nil, false
	}
	desc, ok := obj.Native.(*runtime.ClassDescriptor)
	return desc, ok
}

// IsExceptionClass reports whether class is Exception or one of its
// descendants — the check an except clause's listed classes must satisfy.
func (b *Builtins) IsExceptionClass(class *runtime.ClassDescriptor) bool {
	for c := class; c != nil; c = c.Super {
		if c == b.Exception {
			return true
		}
	}
	return false
}
