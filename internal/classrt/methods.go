package classrt

import "github.com/cwbudde/ember/internal/runtime"

// method builds a native Method, the Go analogue of the reference
// implementation's MethodDef table entries.
func method(name string, flags runtime.MethodFlags, paramCount int, fn runtime.NativeFunc) *runtime.Method {
	return &runtime.Method{Name: name, Flags: flags, ParamCount: paramCount, Native: fn}
}

func installObjectMethods(b *Builtins) {
	o := b.Object
	o.Methods["toString"] = method("toString", runtime.FlagValue|runtime.FlagGet|runtime.FlagPublic, 0,
		func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Obj(b.NewString(self.String())), nil
		})
	o.Methods["class"] = method("class", runtime.FlagValue|runtime.FlagGet|runtime.FlagPublic, 0,
		func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			class := self.ClassOf(&b.Primitives)
			if class == nil {
				return runtime.Null, nil
			}
			return runtime.Obj(class.Object()), nil
		})
	o.Methods["isA"] = method("isA", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			if len(args) == 0 || args[0].Tag != runtime.TagObject {
				return runtime.Bool(false), nil
			}
			target, ok := b.ClassOf(args[0].Obj)
			if !ok {
				return runtime.Bool(false), nil
			}
			// A class descriptor's own dynamic class is always
			// ClassOfClasses, so `C.isA(S)` on a class reference itself
			// must walk C's own Super chain, not ClassOfClasses's.
			var selfClass *runtime.ClassDescriptor
			if self.Tag == runtime.TagObject {
				if desc, ok := b.ClassOf(self.Obj); ok {
					selfClass = desc
				}
			}
			if selfClass == nil {
				selfClass = self.ClassOf(&b.Primitives)
			}
			for c := selfClass; c != nil; c = c.Super {
				if c == target {
					return runtime.Bool(true), nil
				}
			}
			return runtime.Bool(false), nil
		})

	for _, spec := range []string{"==", "!=", "+", "-", "*", "/"} {
		op := spec
		notImpl := func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Null, b.notImplemented()
		}
		o.Methods["operator "+op] = method("operator "+op, runtime.FlagValue|runtime.FlagPublic, 1, notImpl)
		o.Methods["operator r"+op] = method("operator r"+op, runtime.FlagValue|runtime.FlagPublic, 1, notImpl)
	}
}

func installExceptionMethods(b *Builtins, exception *runtime.ClassDescriptor) {
	exception.Constructor = method("init", runtime.FlagInit|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			msg := ""
			if len(args) > 0 {
				msg = args[0].String()
			}
			if self.Obj != nil {
				self.Obj.Native = &ExceptionData{Message: msg}
			}
			return runtime.Null, nil
		})
	exception.Methods["message"] = method("message", runtime.FlagValue|runtime.FlagGet|runtime.FlagPublic, 0,
		func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Obj(b.NewString(ExceptionMessage(self.Obj))), nil
		})
}

// NewString allocates a String object wrapping s.
func (b *Builtins) NewString(s string) *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = b.String
	obj.Initialized = true
	obj.Native = s
	return obj
}

// StringValue extracts the Go string payload of a String object, or ""
// (with ok=false) if obj is not one.
func StringValue(obj *runtime.Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	s, ok := obj.Native.(string)
	return s, ok
}
