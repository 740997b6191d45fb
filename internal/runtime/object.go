package runtime

// FieldLevel is one class level's worth of instance fields. A scripted
// object's Fields chain has one FieldLevel per non-native class from its
// dynamic class up to (but not including) the first native ancestor —
// mirroring the shape of the superclass chain at construction time. The
// chain never grows structurally after construction: no level is added or
// removed, though a level gains an entry the first time one of its fields
// is assigned.
type FieldLevel struct {
	Values map[string]Value
	Parent *FieldLevel
}

// NewFieldChain builds the field-level chain for class, stopping at the
// first native ancestor (every chain therefore bottoms out at worst at the
// native Object root, which itself gets no level).
func NewFieldChain(class *ClassDescriptor) *FieldLevel {
	if class == nil || class.Native {
		return nil
	}
	return &FieldLevel{
		Values: make(map[string]Value),
		Parent: NewFieldChain(class.Super),
	}
}

// Get searches this level and then its ancestors for name.
func (f *FieldLevel) Get(name string) (Value, bool) {
	for l := f; l != nil; l = l.Parent {
		if v, ok := l.Values[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Declare binds name at this exact level, creating or overwriting it.
func (f *FieldLevel) Declare(name string, v Value) {
	f.Values[name] = v
}

// FieldLevelFor returns the level of obj's field chain belonging to
// class, walking obj's dynamic-class chain and field chain in lockstep
// (they mirror each other by construction), or nil if class is native or
// not an ancestor of obj's dynamic class.
func FieldLevelFor(obj *Object, class *ClassDescriptor) *FieldLevel {
	level := obj.Fields
	for c := obj.Class; c != nil && level != nil; c, level = c.Super, level.Parent {
		if c == class {
			return level
		}
	}
	return nil
}

// Object is the uniform heap cell header plus payload. Every value of
// TagObject carries a non-nil *Object. The header fields (Marked,
// Initialized, Class) are exactly what the tracing collector inspects;
// everything past them is payload specific to the class.
//
// FreeNext links free cells into the heap's free list; it is valid only
// while the cell is unused and is overwritten the moment the cell is
// allocated. A free cell always has Class == nil, which is what the
// allocator and any pointer-validity check use to recognise it.
type Object struct {
	Class       *ClassDescriptor
	Marked      bool
	Initialized bool

	// Fields is non-nil only for objects of non-native classes.
	Fields *FieldLevel

	// Native carries the payload for native (built-in) classes: a Go
	// string for String objects, an error message for exceptions, a
	// map[string]Value for Structure, a bound receiver for
	// InstanceMethod, and so on. Scripted objects leave this nil.
	Native any

	// FreeNext links free cells into the heap's free list. It is
	// meaningful only while Class == nil; the allocator overwrites it
	// the moment a cell is handed out. Exported solely so the heap
	// package, which owns the slabs, can thread the list without this
	// package importing heap (which would invert the dependency).
	FreeNext *Object
}

// IsA reports whether object's dynamic class is, or descends from, class.
func (o *Object) IsA(class *ClassDescriptor) bool {
	for c := o.Class; c != nil; c = c.Super {
		if c == class {
			return true
		}
	}
	return false
}
