// Package classrt implements the class runtime: method/getter/setter
// resolution along the superclass chain, private-access rules, object
// construction, the two method-calling shapes, the binary/unary operator
// dispatch cascade, and the built-in class hierarchy (Object, the
// exception taxonomy, and the mutable Structure class).
package classrt

import (
	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/runtime"
)

// Builtins holds every class descriptor the evaluator needs a direct
// handle to, plus the primitive-class table Value.ClassOf consults.
type Builtins struct {
	heap *heap.Heap

	ClassOfClasses *runtime.ClassDescriptor // the metaclass every class descriptor's backing object belongs to
	Object         *runtime.ClassDescriptor
	Structure      *runtime.ClassDescriptor
	String         *runtime.ClassDescriptor
	InstanceMethod *runtime.ClassDescriptor
	Module         *runtime.ClassDescriptor
	Function       *runtime.ClassDescriptor

	Null  *runtime.ClassDescriptor
	Bool  *runtime.ClassDescriptor
	Int   *runtime.ClassDescriptor
	Float *runtime.ClassDescriptor

	Exception          *runtime.ClassDescriptor
	TypeError          *runtime.ClassDescriptor
	NameError          *runtime.ClassDescriptor
	AttributeError     *runtime.ClassDescriptor
	ParameterError     *runtime.ClassDescriptor
	ImportError        *runtime.ClassDescriptor
	NotImplementedError *runtime.ClassDescriptor
	ZeroDivisionError  *runtime.ClassDescriptor
	ValueError         *runtime.ClassDescriptor
	SyntaxError        *runtime.ClassDescriptor

	Primitives runtime.PrimitiveClasses

	// ByName lets the root scope seed one binding per built-in class and
	// lets `import` resolve built-in modules that export classes.
	ByName map[string]*runtime.ClassDescriptor

	// notImplementedSentinel is the one NotImplementedError instance every
	// primitive operator body returns to mean "try the next cascade step".
	notImplementedSentinel *runtime.Object
}

// allocClass allocates a class descriptor's backing heap cell, without
// registering it anywhere. Class descriptors are themselves heap Objects
// — per the object model, "all built-in class descriptors... live on the
// heap" and are enumerated as GC roots — so construction always goes
// through the heap, never a bare Go `&ClassDescriptor{}`.
func (b *Builtins) allocClass(name string, super *runtime.ClassDescriptor, final, native bool) *runtime.ClassDescriptor {
	desc := &runtime.ClassDescriptor{
		Name:    name,
		Super:   super,
		Final:   final,
		Native:  native,
		Methods: make(map[string]*runtime.Method),
		Setters: make(map[string]*runtime.Method),
	}
	cell := b.heap.Allocate()
	cell.Initialized = true
	cell.Native = desc
	if b.ClassOfClasses != nil {
		cell.Class = b.ClassOfClasses
	}
	desc.SetObject(cell)
	return desc
}

// newClass allocates a built-in class descriptor and registers it by name
// — ByName seeds one root-scope binding per built-in and is never touched
// by language-declared classes, which would otherwise leak forever as GC
// roots and collide across unrelated modules declaring the same name.
func (b *Builtins) newClass(name string, super *runtime.ClassDescriptor, final, native bool) *runtime.ClassDescriptor {
	desc := b.allocClass(name, super, final, native)
	b.ByName[name] = desc
	return desc
}

// NewScriptedClass allocates a class descriptor for a language-level
// `class` declaration: non-native, with empty method/setter tables ready
// for the evaluator to populate from the declaration's members.
func (b *Builtins) NewScriptedClass(name string, super *runtime.ClassDescriptor, final bool) *runtime.ClassDescriptor {
	return b.allocClass(name, super, final, false)
}

// NewBuiltins bootstraps the built-in class hierarchy against h. It must
// run exactly once per interpreter context.
func NewBuiltins(h *heap.Heap) *Builtins {
	b := &Builtins{heap: h, ByName: make(map[string]*runtime.ClassDescriptor)}

	// Class descriptors need a class of their own for `.class` to work
	// uniformly; ClassOfClasses is self-referential, bootstrapped before
	// any other class exists.
	meta := &runtime.ClassDescriptor{Name: "Class", Native: true, Methods: map[string]*runtime.Method{}, Setters: map[string]*runtime.Method{}}
	metaCell := h.Allocate()
	metaCell.Initialized = true
	metaCell.Native = meta
	metaCell.Class = meta
	meta.SetObject(metaCell)
	b.ClassOfClasses = meta
	b.ByName["Class"] = meta

	// A class reference keeps its superclass and the scopes captured by its
	// closure-backed constructor, methods, and setters alive.
	meta.GCAccept = func(obj *runtime.Object, _ func(runtime.Value), markObject func(*runtime.Object), markScope func(*runtime.Scope)) {
		desc, ok := obj.Native.(*runtime.ClassDescriptor)
		if !ok {
			return
		}
		if desc.Super != nil {
			markObject(desc.Super.Object())
		}
		for _, table := range []map[string]*runtime.Method{desc.Methods, desc.Setters, {"init": desc.Constructor}} {
			for _, m := range table {
				if m != nil && m.Closure != nil {
					markScope(m.Closure.Scope)
				}
			}
		}
	}

	b.Object = b.newClass("Object", nil, false, true)
	installObjectMethods(b)

	// Class descriptors are themselves Objects — `C.isA(...)`, `C.class`,
	// `C.toString` all resolve through Object's method table once the
	// metaclass is wired into the hierarchy.
	meta.Super = b.Object

	b.Structure = b.newClass("Structure", b.Object, false, true)
	b.Structure.GCAccept = func(obj *runtime.Object, markValue func(runtime.Value), _ func(*runtime.Object), _ func(*runtime.Scope)) {
		if fields, ok := obj.Native.(structureFields); ok {
			for _, v := range fields {
				markValue(v)
			}
		}
	}
	b.String = b.newClass("String", b.Object, true, true)
	b.InstanceMethod = b.newClass("InstanceMethod", b.Object, true, true)
	b.InstanceMethod.GCAccept = func(obj *runtime.Object, markValue func(runtime.Value), _ func(*runtime.Object), _ func(*runtime.Scope)) {
		if bound, ok := obj.Native.(*BoundMethod); ok {
			markValue(bound.Self)
		}
	}

	b.Module = b.newClass("Module", b.Object, true, true)
	b.Module.GCAccept = func(obj *runtime.Object, markValue func(runtime.Value), _ func(*runtime.Object), _ func(*runtime.Scope)) {
		if m, ok := obj.Native.(*runtime.Module); ok {
			for _, v := range m.Exports {
				markValue(v)
			}
		}
	}

	b.Function = b.newClass("Function", b.Object, true, true)
	b.Function.GCAccept = func(obj *runtime.Object, _ func(runtime.Value), _ func(*runtime.Object), markScope func(*runtime.Scope)) {
		if fn, ok := obj.Native.(*runtime.Function); ok {
			markScope(fn.Scope)
		}
	}

	b.Null = b.newClass("NullClass", b.Object, true, true)
	b.Bool = b.newClass("Bool", b.Object, true, true)
	b.Int = b.newClass("Int", b.Object, true, true)
	b.Float = b.newClass("Float", b.Object, true, true)
	installPrimitiveOperators(b)

	b.Primitives = runtime.PrimitiveClasses{
		NullClass: b.Null, BoolClass: b.Bool, IntClass: b.Int, FloatClass: b.Float,
	}

	b.Exception = b.newClass("Exception", b.Object, false, true)
	b.Exception.GCAccept = func(obj *runtime.Object, _ func(runtime.Value), markObject func(*runtime.Object), _ func(*runtime.Scope)) {
		if data, ok := obj.Native.(*ExceptionData); ok && data.Cause != nil {
			markObject(data.Cause)
		}
	}
	installExceptionMethods(b, b.Exception)
	b.TypeError = b.newExceptionSubclass("TypeError")
	b.NameError = b.newExceptionSubclass("NameError")
	b.AttributeError = b.newExceptionSubclass("AttributeError")
	b.ParameterError = b.newExceptionSubclass("ParameterError")
	b.ImportError = b.newExceptionSubclass("ImportError")
	b.NotImplementedError = b.newExceptionSubclass("NotImplementedError")
	b.ZeroDivisionError = b.newExceptionSubclass("ZeroDivisionError")
	b.ValueError = b.newExceptionSubclass("ValueError")
	b.SyntaxError = b.newExceptionSubclass("SyntaxError")

	b.notImplementedSentinel = b.NewException(b.NotImplementedError, "Not implemented")

	return b
}

func (b *Builtins) newExceptionSubclass(name string) *runtime.ClassDescriptor {
	c := b.newClass(name, b.Exception, false, true)
	c.Constructor = b.Exception.Constructor
	return c
}

// Roots returns every built-in class descriptor's backing object, the GC
// root set contributed by this package.
func (b *Builtins) Roots() []*runtime.Object {
	var roots []*runtime.Object
	roots = append(roots, b.ClassOfClasses.Object())
	for _, c := range b.ByName {
		roots = append(roots, c.Object())
	}
	roots = append(roots, b.notImplementedSentinel)
	return roots
}
