package classrt

import "github.com/cwbudde/ember/internal/runtime"

// structureFields is the native payload of a Structure instance: unlike
// every other native class, Structure accepts arbitrary attribute
// reads/writes, going through this map rather than methods or the
// superclass-chain field-level machinery scripted classes use.
type structureFields map[string]runtime.Value

// NewStructure allocates an empty Structure instance.
func (b *Builtins) NewStructure() *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = b.Structure
	obj.Initialized = true
	obj.Native = structureFields{}
	return obj
}

// StructureGet reads a direct field from a Structure instance.
func StructureGet(obj *runtime.Object, name string) (runtime.Value, bool) {
	fields, ok := obj.Native.(structureFields)
	if !ok {
		return runtime.Value{}, false
	}
	v, ok := fields[name]
	return v, ok
}

// StructureSet writes a direct field on a Structure instance, creating it
// if absent — the one native class whose instances are mutable in the
// sense of "can have attributes assigned by language code".
func StructureSet(obj *runtime.Object, name string, v runtime.Value) {
	fields, ok := obj.Native.(structureFields)
	if !ok {
		fields = structureFields{}
	}
	fields[name] = v
	obj.Native = fields
}

// IsStructure reports whether class is exactly the built-in Structure
// class — the member-assignment rule carves this one native class out as
// an exception to "native objects are immutable".
func (b *Builtins) IsStructure(class *runtime.ClassDescriptor) bool {
	return class == b.Structure
}
