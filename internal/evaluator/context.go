// Package evaluator walks the AST produced by the parser, allocating
// runtime objects through the heap, dispatching through the class
// runtime, resolving names through the scope chain, and driving the
// garbage collector at evaluation boundaries.
package evaluator

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/errors"
	"github.com/cwbudde/ember/internal/gc"
	"github.com/cwbudde/ember/internal/heap"
	"github.com/cwbudde/ember/internal/loader"
	"github.com/cwbudde/ember/internal/parser"
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

// Context is the single mutable state value threaded through every
// evaluator entry point: the heap, the built-in class table, the module
// registry, the active scope stack, and a logger. Exactly one Context
// exists per interpreter process; there are no package-level globals.
type Context struct {
	Heap     *heap.Heap
	Builtins *classrt.Builtins
	Loader   *loader.Registry
	GC       *gc.Collector
	Log      *slog.Logger

	// scopes is the active scope stack: every scope currently being
	// evaluated, outermost first. Maintained by pushScope/popScope around
	// every scope boundary (sequence, call, except clause) and enumerated
	// as a GC root.
	scopes []*runtime.Scope

	// result is the in-flight Result of the evaluation currently running,
	// enumerated as a GC root so a value mid-construction (between its
	// allocation and being bound anywhere) survives a collection
	// triggered by a nested allocation.
	result runtime.Result

	// replScope is the one persistent root scope a REPL session evaluates
	// successive lines against. Unlike scopes pushed for a single
	// EvalString/EvalFile call, it outlives any single evaluation, so it
	// is rooted independently of the active scope stack.
	replScope *runtime.Scope
}

// New builds a Context with a freshly bootstrapped heap and built-in
// class hierarchy, and the three standard built-in modules registered.
func New(log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	h := heap.New()
	b := classrt.NewBuiltins(h)
	reg := loader.New(b)
	ctx := &Context{
		Heap:     h,
		Builtins: b,
		Loader:   reg,
		GC:       gc.New(h),
		Log:      log,
	}
	registerBuiltinModules(reg)
	return ctx
}

func (c *Context) pushScope(s *runtime.Scope) { c.scopes = append(c.scopes, s) }
func (c *Context) popScope()                  { c.scopes = c.scopes[:len(c.scopes)-1] }
func (c *Context) currentScope() *runtime.Scope {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}

// Collect runs one GC cycle over the current root set. Called by the
// external entry points after each top-level evaluation, and available
// for callers (e.g. a long-running REPL) to invoke on demand.
func (c *Context) Collect() {
	scopes := append([]*runtime.Scope(nil), c.scopes...)
	if c.replScope != nil {
		scopes = append(scopes, c.replScope)
	}
	roots := gc.Roots{
		Objects: c.Builtins.Roots(),
		Modules: c.Loader.Modules(),
		Scopes:  scopes,
		Result:  &c.result,
	}
	c.GC.Collect(roots)
}

// RootScope returns the persistent root scope a REPL evaluates successive
// lines against, creating it (seeded with one binding per built-in class,
// owning a "repl" module) on first use.
func (c *Context) RootScope() *runtime.Scope {
	if c.replScope == nil {
		c.replScope = c.rootScopeSeededWithBuiltins(runtime.NewModule("repl", true, nil))
	}
	return c.replScope
}

// rootScopeSeededWithBuiltins creates a root scope owning module, bound
// with one identifier per built-in class so language code can reference
// Object, Exception, Int, and so on by name without an import.
func (c *Context) rootScopeSeededWithBuiltins(module *runtime.Module) *runtime.Scope {
	s := runtime.NewRootScope(module)
	for name, class := range c.Builtins.ByName {
		s.Declare(name, runtime.Obj(class.Object()))
	}
	return s
}

// EvalString parses and evaluates source as the top level of a fresh
// "main" module, or within scope if supplied. Drives one GC cycle before
// returning.
func (c *Context) EvalString(source string, scope *runtime.Scope) (res runtime.Result) {
	defer func() {
		c.result = res
		c.Collect()
	}()
	return c.evalStringNoCollect(source, scope, "<string>")
}

func (c *Context) evalStringNoCollect(source string, scope *runtime.Scope, file string) runtime.Result {
	program, perrs := parser.ParseProgram(source, file)
	if len(perrs) > 0 {
		exc := c.Builtins.SyntaxErrorf("%s", errors.FormatErrors(perrs, false))
		return runtime.Raise(exc)
	}
	if scope == nil {
		scope = c.rootScopeSeededWithBuiltins(runtime.NewModule("main", true, nil))
	}
	return c.evalProgram(scope, program)
}

// EvalFile reads and evaluates a source file as a fresh "main" module (or
// within scope if supplied).
func (c *Context) EvalFile(path string, scope *runtime.Scope) (res runtime.Result) {
	defer func() {
		c.result = res
		c.Collect()
	}()
	abs, err := filepath.Abs(path)
	if err != nil {
		return runtime.Raise(c.Builtins.ImportErrorf("cannot resolve path %q: %v", path, err))
	}
	srcBytes, err := os.ReadFile(abs)
	if err != nil {
		return runtime.Raise(c.Builtins.ImportErrorf("cannot read %q: %v", path, err))
	}
	return c.evalStringNoCollect(string(srcBytes), scope, abs)
}

// EvalModuleFile is the import subroutine: load (or fetch from cache) the
// Module at path, returning it wrapped as a Value.
func (c *Context) EvalModuleFile(dir string, level int, name string) (*runtime.Object, *runtime.Object) {
	module, exc := c.Loader.LoadFile(dir, level, name, func(scope *runtime.Scope, program *emberast.Sequence) runtime.Result {
		return c.evalProgram(scope, program)
	})
	if exc != nil {
		return nil, exc
	}
	return c.Builtins.NewModuleObject(module), nil
}

// evalProgram evaluates program's top-level sequence directly in scope
// (a root scope — not pushed as a child, since the root scope itself is
// what owns the module and seeds the active scope stack entry).
func (c *Context) evalProgram(scope *runtime.Scope, program *emberast.Sequence) runtime.Result {
	c.pushScope(scope)
	defer c.popScope()

	var last runtime.Value
	for _, child := range program.Children {
		res := c.eval(child, scope)
		c.result = res
		if res.Failed() {
			return res
		}
		last = res.Value
	}
	return runtime.Ok(last)
}
