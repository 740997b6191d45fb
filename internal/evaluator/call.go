package evaluator

import (
	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

// evalCall dispatches a call expression: class construction, a bound
// instance method, a plain function closure, or super(args).
func (c *Context) evalCall(n *emberast.Call, scope *runtime.Scope) runtime.Result {
	b := c.Builtins

	args, exc := c.evalArgs(n.Args, scope)
	if exc != nil {
		return runtime.Raise(exc)
	}

	if n.SuperCall {
		return c.evalSuperCall(scope, args)
	}

	res := c.eval(n.Callee, scope)
	if res.Failed() {
		return res
	}
	callee := res.Value

	if callee.Tag == runtime.TagObject {
		if class, ok := b.ClassOf(callee.Obj); ok {
			return c.construct(scope, class, args)
		}
		if bound, ok := classrt.BoundMethodValue(callee.Obj); ok {
			v, exc := c.invoke(bound.Method, bound.Self, args)
			if exc != nil {
				return runtime.Raise(exc)
			}
			return runtime.Ok(v)
		}
		if fn, ok := classrt.FunctionValue(callee.Obj); ok {
			v, exc := c.callClosure(fn, nil, runtime.Null, args)
			if exc != nil {
				return runtime.Raise(exc)
			}
			return runtime.Ok(v)
		}
	}

	return runtime.Raise(b.TypeErrorf("'%s' objects are not callable", callee.ClassOf(&b.Primitives).Name))
}

// evalSuperCall runs super(args): the superclass constructor of the
// currently executing method's declaring class, called on the same self.
func (c *Context) evalSuperCall(scope *runtime.Scope, args []runtime.Value) runtime.Result {
	b := c.Builtins
	if scope.DefClass == nil || scope.Self == nil {
		return runtime.Raise(b.TypeErrorf("'super' used outside of a method"))
	}
	super := scope.DefClass.Super
	if super == nil || super.Constructor == nil {
		return runtime.Ok(runtime.Null)
	}
	v, exc := c.invoke(super.Constructor, runtime.Obj(scope.Self), args)
	if exc != nil {
		return runtime.Raise(exc)
	}
	return runtime.Ok(v)
}

// construct builds a new instance of class, honouring PrivateConstructor:
// a private INIT is reachable only from code already executing with
// private access to an instance of that class (the common case being the
// body of one of its own methods — e.g. a class-side factory method, or
// a subclass constructor via super(...), which bypasses this check
// entirely since it calls the constructor directly).
func (c *Context) construct(scope *runtime.Scope, class *runtime.ClassDescriptor, args []runtime.Value) runtime.Result {
	b := c.Builtins
	if class.PrivateConstructor && !(scope.Self != nil && scope.Self.IsA(class)) {
		return runtime.Raise(b.TypeErrorf("'%s' has no accessible constructor", class.Name))
	}
	obj, exc := b.New(c.invoke, class, args)
	if exc != nil {
		return runtime.Raise(exc)
	}
	return runtime.Ok(runtime.Obj(obj))
}
