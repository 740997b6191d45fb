// Package runtime defines the tagged-union value representation, the heap
// object header, class descriptors, methods, closures, scopes, and modules
// that the evaluator and class runtime operate on.
//
// This package owns every runtime type in one place — there is no separate
// "interp" layer sitting above it — so none of the interface-decoupling
// tricks a larger, multi-package interpreter needs are required here.
package runtime

import "fmt"

// Tag identifies which variant of Value is populated.
type Tag uint8

const (
	TagNull Tag = iota
	TagBool
	TagInt
	TagFloat
	TagObject
)

// Value is a tagged union: the four primitive variants are carried inline,
// and TagObject carries a pointer into the managed heap. Values are always
// passed by value; only the Object they may point to is heap-allocated.
type Value struct {
	Tag   Tag
	Bool  bool
	Int   int64
	Float float64
	Obj   *Object
}

// Null is the singleton null value.
var Null = Value{Tag: TagNull}

func Bool(b bool) Value  { return Value{Tag: TagBool, Bool: b} }
func Int(i int64) Value  { return Value{Tag: TagInt, Int: i} }
func Float(f float64) Value { return Value{Tag: TagFloat, Float: f} }
func Obj(o *Object) Value {
	if o == nil {
		return Null
	}
	return Value{Tag: TagObject, Obj: o}
}

func (v Value) IsNull() bool   { return v.Tag == TagNull }
func (v Value) IsBool() bool   { return v.Tag == TagBool }
func (v Value) IsInt() bool    { return v.Tag == TagInt }
func (v Value) IsFloat() bool  { return v.Tag == TagFloat }
func (v Value) IsObject() bool { return v.Tag == TagObject }

// ClassOf returns the class descriptor governing v, consulting the
// primitive class table for non-object tags.
func (v Value) ClassOf(prim *PrimitiveClasses) *ClassDescriptor {
	switch v.Tag {
	case TagNull:
		return prim.NullClass
	case TagBool:
		return prim.BoolClass
	case TagInt:
		return prim.IntClass
	case TagFloat:
		return prim.FloatClass
	case TagObject:
		return v.Obj.Class
	default:
		return nil
	}
}

// String renders v for diagnostics; it never allocates a language-level
// String object. Object's `toString` getter wraps this rendering in one.
func (v Value) String() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagBool:
		return fmt.Sprintf("%t", v.Bool)
	case TagInt:
		return fmt.Sprintf("%d", v.Int)
	case TagFloat:
		return fmt.Sprintf("%g", v.Float)
	case TagObject:
		if v.Obj == nil {
			return "null"
		}
		return fmt.Sprintf("<%s>", v.Obj.Class.Name)
	default:
		return "<invalid>"
	}
}

// PrimitiveClasses holds the class descriptors backing the four primitive
// tags, so that operator and member dispatch can treat primitives
// uniformly with objects.
type PrimitiveClasses struct {
	NullClass  *ClassDescriptor
	BoolClass  *ClassDescriptor
	IntClass   *ClassDescriptor
	FloatClass *ClassDescriptor
}
