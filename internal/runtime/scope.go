package runtime

// Scope is a lexical environment: identifier bindings plus a parent
// pointer. Declaration is local-only; lookup and assignment walk the
// parent chain. Scopes are heap-allocated and reachable either through the
// active scope stack or through closures that captured them — both are GC
// roots, so a Scope must never be freed while either holds it.
type Scope struct {
	Vars   map[string]Value
	Parent *Scope

	// DefClass is the class a method body was declared in, consulted for
	// private-access checks and for resolving `super`. Nil outside a
	// method body.
	DefClass *ClassDescriptor

	// Self is the receiver bound for the duration of a method body. Nil
	// outside a method body.
	Self *Object

	// Module is set only on a root scope: the module that scope's
	// top-level evaluation belongs to.
	Module *Module
}

// NewRootScope creates a root scope owning module, seeded by the caller
// with one binding per built-in class.
func NewRootScope(module *Module) *Scope {
	return &Scope{Vars: make(map[string]Value), Module: module}
}

// NewChildScope creates a scope nested inside parent, inheriting its
// DefClass, Self, and implicit module (via parent lookup) unless
// overridden by the caller.
func NewChildScope(parent *Scope) *Scope {
	s := &Scope{Vars: make(map[string]Value), Parent: parent}
	if parent != nil {
		s.DefClass = parent.DefClass
		s.Self = parent.Self
	}
	return s
}

// Lookup walks the scope chain for name.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.Vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// DeclaredLocally reports whether name is bound in s itself, ignoring
// ancestors.
func (s *Scope) DeclaredLocally(name string) bool {
	_, ok := s.Vars[name]
	return ok
}

// Declare binds name in s itself. Callers must check DeclaredLocally first
// to raise the "already declared" error the evaluator specifies.
func (s *Scope) Declare(name string, v Value) {
	s.Vars[name] = v
}

// Assign updates the nearest binding of name in the chain, returning false
// if no scope declares it.
func (s *Scope) Assign(name string, v Value) bool {
	for cur := s; cur != nil; cur = cur.Parent {
		if _, ok := cur.Vars[name]; ok {
			cur.Vars[name] = v
			return true
		}
	}
	return false
}

// GetModule returns the module attached to the root found by walking
// parents from s.
func (s *Scope) GetModule() *Module {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Module != nil {
			return cur.Module
		}
	}
	return nil
}

// Module is a named collection of exports: either a statically-registered
// built-in, or backed by a source file identified by absolute path (which
// doubles as the module-cache key).
type Module struct {
	Name    string
	Builtin bool
	File    *ProgramFile // nil for built-ins
	Exports map[string]Value
}

// NewModule creates an empty module.
func NewModule(name string, builtin bool, file *ProgramFile) *Module {
	return &Module{Name: name, Builtin: builtin, File: file, Exports: make(map[string]Value)}
}

// ProgramFile identifies a source file for module-cache identity and error
// locations.
type ProgramFile struct {
	AbsPath string
	Dir     string
	Base    string
	Source  string
}

// Result is the outcome of any evaluator entry point: exactly one of Value
// or Exception is populated.
type Result struct {
	Value     Value
	Exception *Object // nil on success
}

func Ok(v Value) Result            { return Result{Value: v} }
func Raise(exc *Object) Result     { return Result{Exception: exc} }
func (r Result) Failed() bool      { return r.Exception != nil }
