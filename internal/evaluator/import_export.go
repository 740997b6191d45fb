package evaluator

import (
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

func (c *Context) evalImport(n *emberast.Import, scope *runtime.Scope) runtime.Result {
	b := c.Builtins

	var moduleVal runtime.Value
	if n.Level == 0 {
		mod, exc := c.Loader.LoadBuiltin(n.Name)
		if exc != nil {
			return runtime.Raise(exc)
		}
		moduleVal = runtime.Obj(b.NewModuleObject(mod))
	} else {
		dir := "."
		if mod := scope.GetModule(); mod != nil && mod.File != nil {
			dir = mod.File.Dir
		}
		obj, exc := c.EvalModuleFile(dir, n.Level, n.Name)
		if exc != nil {
			return runtime.Raise(exc)
		}
		moduleVal = runtime.Obj(obj)
	}

	if scope.DeclaredLocally(n.Name) {
		return runtime.Raise(b.NameErrorf("Identifier '%s' already declared", n.Name))
	}
	scope.Declare(n.Name, moduleVal)
	return runtime.Ok(moduleVal)
}

func (c *Context) evalExport(n *emberast.Export, scope *runtime.Scope) runtime.Result {
	b := c.Builtins
	module := scope.GetModule()

	if n.Value != nil {
		res := c.eval(n.Value, scope)
		if res.Failed() {
			return res
		}
		if scope.DeclaredLocally(n.Name) {
			return runtime.Raise(b.NameErrorf("Identifier '%s' already declared", n.Name))
		}
		scope.Declare(n.Name, res.Value)
		if module != nil {
			module.Exports[n.Name] = res.Value
		}
		return runtime.Ok(res.Value)
	}

	if !scope.DeclaredLocally(n.Name) {
		return runtime.Raise(b.NameErrorf("Use of undeclared identifier '%s'", n.Name))
	}
	v, _ := scope.Lookup(n.Name)
	if module != nil {
		module.Exports[n.Name] = v
	}
	return runtime.Ok(v)
}
