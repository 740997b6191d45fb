package runtime

// MethodFlags classifies how a Method participates in dispatch.
type MethodFlags uint8

const (
	// FlagPublic marks a member callable from outside private-access scope.
	FlagPublic MethodFlags = 1 << iota
	// FlagInit marks the constructor slot.
	FlagInit
	// FlagGet routes lookup through find_method_or_getter and fires on
	// access rather than producing a bound InstanceMethod.
	FlagGet
	// FlagSet installs the member into the setter table instead of the
	// method table.
	FlagSet
	// FlagValue means the method accepts a Value directly as self rather
	// than requiring an object pointer — used by primitive operators.
	FlagValue
)

func (f MethodFlags) Has(flag MethodFlags) bool { return f&flag != 0 }

// NativeFunc is a built-in method body. self is either a Value (when the
// method has the Value flag) or wrapped as Obj(self-object) otherwise.
type NativeFunc func(self Value, args []Value) (Value, *Object)

// Method is one constructor/method/getter/setter slot on a class.
type Method struct {
	Name       string
	Flags      MethodFlags
	ParamCount int

	// Exactly one of Native or Closure is set.
	Native  NativeFunc
	Closure *Function

	// DefClass is the class this method was declared on — nil for built-in
	// native methods, set for every member of a language-level class
	// (including the native body of a bodyless `get x;`). Threaded into the call scope as Scope.DefClass so private
	// access and `super` resolve against the declaring class rather than
	// the receiver's dynamic class.
	DefClass *ClassDescriptor
}

// GCAcceptFunc lets a native class enumerate the Values, Objects, and
// Scopes it holds internally, so the tracing collector can mark through
// opaque native payloads (markScope is needed by Function, whose closure
// keeps its defining Scope chain alive). mark must be called once per
// live reference found.
type GCAcceptFunc func(obj *Object, markValue func(Value), markObject func(*Object), markScope func(*Scope))

// ClassDescriptor is the runtime metadata for one class: name, place in
// the hierarchy, flags, and its method/setter tables.
type ClassDescriptor struct {
	Name  string
	Super *ClassDescriptor
	Final bool

	// Native distinguishes built-in classes (Structure, String, the
	// exception hierarchy, Object itself, ...) from classes declared in
	// language source.
	Native bool

	// Constructor is nilable; a nil constructor means "install a
	// default no-op" at class-declaration time, never at lookup time.
	Constructor *Method

	// PrivateConstructor marks an INIT method whose Public flag is
	// clear: the evaluator constructs such a class only when the calling
	// scope's self is an instance of it, or through super(...).
	PrivateConstructor bool

	// Destructor runs once on an instance of this exact class during sweep,
	// before the chain continues up Super. Nil for classes that declare
	// none; most classes never set it.
	Destructor func(obj *Object)

	Methods map[string]*Method
	Setters map[string]*Method

	// GCAccept is set only by native classes that hold internal
	// references the collector cannot discover through the generic
	// field-chain walk (Structure, InstanceMethod, Module, Function,
	// Exception, and the Class metaclass).
	GCAccept GCAcceptFunc

	// object is the heap cell backing this descriptor. Class
	// descriptors are themselves heap objects per the object model, so
	// that the GC can treat "all built-in classes" as an ordinary root
	// set of Objects.
	object *Object
}

// Object returns the heap cell wrapping this class descriptor.
func (c *ClassDescriptor) Object() *Object { return c.object }

// SetObject binds the heap cell backing this class descriptor. Called
// exactly once, by classrt during bootstrap.
func (c *ClassDescriptor) SetObject(o *Object) { c.object = o }

// FindMethodOrGetter walks c's own method table, then its superclass
// chain, returning the first Method found (whether an ordinary method or
// one flagged Get).
func FindMethodOrGetter(c *ClassDescriptor, name string) (*Method, *ClassDescriptor) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// FindSetter walks c's own setter table, then its superclass chain.
func FindSetter(c *ClassDescriptor, name string) (*Method, *ClassDescriptor) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Setters[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// Function is a language-level closure: parameter names, an AST body, and
// the scope it was declared in. Body is opaque to this package (a
// pkg/ast.Node) — the runtime layer has no need to walk it, only the
// evaluator does, so importing pkg/ast here would buy nothing.
type Function struct {
	Name   string
	Params []string
	Body   any
	Scope  *Scope
}
