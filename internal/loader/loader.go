// Package loader implements the module loader: a statically-registered
// built-in module table and a file-path-keyed cache for module source
// files, enforcing "at most one Module per builtin name / absolute file
// path".
package loader

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/errors"
	"github.com/cwbudde/ember/internal/parser"
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

// SourceExt is the file extension module source is read from.
const SourceExt = ".ember"

// Evaluator runs a parsed module's top-level sequence in scope. Supplied
// by the evaluator package at construction time — only it understands
// AST nodes, so this package never imports it, the same dependency
// inversion classrt.Invoker uses for method bodies.
type Evaluator func(scope *runtime.Scope, program *emberast.Sequence) runtime.Result

// BuiltinFactory populates one static built-in module's exports.
type BuiltinFactory func(b *classrt.Builtins) map[string]runtime.Value

// Registry is the module loader.
type Registry struct {
	b *classrt.Builtins

	builtins     map[string]BuiltinFactory
	builtinCache map[string]*runtime.Module
	fileCache    map[string]*runtime.Module
}

// New creates an empty registry. RegisterBuiltin must be called for every
// built-in module name before an import resolves it.
func New(b *classrt.Builtins) *Registry {
	return &Registry{
		b:            b,
		builtins:     make(map[string]BuiltinFactory),
		builtinCache: make(map[string]*runtime.Module),
		fileCache:    make(map[string]*runtime.Module),
	}
}

// RegisterBuiltin adds name to the static registry.
func (r *Registry) RegisterBuiltin(name string, factory BuiltinFactory) {
	r.builtins[name] = factory
}

// Modules returns every cached module — built-in and file-backed — for GC
// root enumeration.
func (r *Registry) Modules() []*runtime.Module {
	mods := make([]*runtime.Module, 0, len(r.builtinCache)+len(r.fileCache))
	for _, m := range r.builtinCache {
		mods = append(mods, m)
	}
	for _, m := range r.fileCache {
		mods = append(mods, m)
	}
	return mods
}

// LoadBuiltin resolves a Level==0 import by name, building and caching its
// Module on first use.
func (r *Registry) LoadBuiltin(name string) (*runtime.Module, *runtime.Object) {
	if m, ok := r.builtinCache[name]; ok {
		return m, nil
	}
	factory, ok := r.builtins[name]
	if !ok {
		return nil, r.b.ImportErrorf("No module named '%s'", name)
	}
	m := runtime.NewModule(name, true, nil)
	for k, v := range factory(r.b) {
		m.Exports[k] = v
	}
	r.builtinCache[name] = m
	return m, nil
}

// LoadFile resolves a Level>=1 file import relative to dir (the importing
// file's directory): level 1 means dir itself, level N walks N-1
// directories up before joining name+SourceExt. name must be a valid
// identifier, since it becomes the Module's name. Successful evaluation
// happens at most once per absolute path; re-importing the same path
// returns the cached Module without re-running its top level. A module
// whose evaluation fails is dropped from the cache, so a later import
// evaluates it again.
func (r *Registry) LoadFile(dir string, level int, name string, eval Evaluator) (*runtime.Module, *runtime.Object) {
	if level < 1 {
		return nil, r.b.ImportErrorf("invalid import level %d", level)
	}
	if !isValidIdentifier(name) {
		return nil, r.b.ImportErrorf("module name %q is not a valid identifier", name)
	}

	base := dir
	for i := 1; i < level; i++ {
		base = filepath.Dir(base)
	}
	abs, err := filepath.Abs(filepath.Join(base, name+SourceExt))
	if err != nil {
		return nil, r.b.ImportErrorf("cannot resolve import %q: %v", name, err)
	}

	if m, ok := r.fileCache[abs]; ok {
		return m, nil
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, r.b.ImportErrorf("No module named '%s'", name)
	}

	program, perrs := parser.ParseProgram(string(src), abs)
	if len(perrs) > 0 {
		return nil, r.b.SyntaxErrorf("%s", errors.FormatErrors(perrs, false))
	}

	file := &runtime.ProgramFile{AbsPath: abs, Dir: filepath.Dir(abs), Base: filepath.Base(abs), Source: string(src)}
	module := runtime.NewModule(name, false, file)
	scope := runtime.NewRootScope(module)
	r.seedBuiltins(scope)

	// Cache before evaluating so a self-importing or mutually-importing
	// module sees its own in-progress Module rather than looping forever.
	r.fileCache[abs] = module

	result := eval(scope, program)
	if result.Failed() {
		delete(r.fileCache, abs)
		return nil, result.Exception
	}
	return module, nil
}

// seedBuiltins binds one identifier per built-in class into scope, the
// same seeding every root scope gets (the top-level "main" scope and the
// REPL's persistent scope) so an imported module can reference Object,
// Exception, Int, and so on by name without an import of its own.
func (r *Registry) seedBuiltins(scope *runtime.Scope) {
	for name, class := range r.b.ByName {
		scope.Declare(name, runtime.Obj(class.Object()))
	}
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
