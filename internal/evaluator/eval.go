package evaluator

import (
	"fmt"

	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

// maxArgs is the hard cap on positional arguments to a single call.
const maxArgs = 32

// eval dispatches on node's dynamic type, evaluating it in scope. Every
// AST node kind the parser can produce has a case here; reaching default
// means the parser emitted a node kind the evaluator was never taught
// about, a programming bug rather than a user-facing error.
func (c *Context) eval(node emberast.Node, scope *runtime.Scope) runtime.Result {
	b := c.Builtins
	switch n := node.(type) {

	case *emberast.NullLit:
		return runtime.Ok(runtime.Null)
	case *emberast.BoolLit:
		return runtime.Ok(runtime.Bool(n.Value))
	case *emberast.IntLit:
		return runtime.Ok(runtime.Int(n.Value))
	case *emberast.FloatLit:
		return runtime.Ok(runtime.Float(n.Value))
	case *emberast.StringLit:
		return runtime.Ok(runtime.Obj(b.NewString(n.Value)))

	case *emberast.Sequence:
		return c.evalSequence(n, scope)

	case *emberast.Identifier:
		v, ok := scope.Lookup(n.Name)
		if !ok {
			return runtime.Raise(b.NameErrorf("Use of undeclared identifier '%s'", n.Name))
		}
		return runtime.Ok(v)

	case *emberast.VarDecl:
		if scope.DeclaredLocally(n.Name) {
			return runtime.Raise(b.NameErrorf("Identifier '%s' already declared", n.Name))
		}
		v := runtime.Null
		if n.Init != nil {
			res := c.eval(n.Init, scope)
			if res.Failed() {
				return res
			}
			v = res.Value
		}
		scope.Declare(n.Name, v)
		return runtime.Ok(v)

	case *emberast.SelfExpr:
		if scope.Self == nil {
			return runtime.Raise(b.GenericExceptionf("'@' used outside of a class"))
		}
		return runtime.Ok(runtime.Obj(scope.Self))

	case *emberast.SuperExpr:
		return runtime.Raise(b.TypeErrorf("'super' is only valid as a call or member-access target"))

	case *emberast.Assign:
		res := c.eval(n.Value, scope)
		if res.Failed() {
			return res
		}
		if !scope.Assign(n.Name, res.Value) {
			return runtime.Raise(b.NameErrorf("Use of undeclared identifier '%s'", n.Name))
		}
		return runtime.Ok(res.Value)

	case *emberast.MemberAssign:
		return c.evalMemberAssign(n, scope)

	case *emberast.FunctionDecl:
		fn := &runtime.Function{Name: n.Name, Params: n.Params, Body: n.Body, Scope: scope}
		return runtime.Ok(runtime.Obj(b.NewFunction(fn)))

	case *emberast.Call:
		return c.evalCall(n, scope)

	case *emberast.MemberAccess:
		return c.evalMemberAccess(n, scope)

	case *emberast.ClassDecl:
		return c.evalClassDecl(n, scope)

	case *emberast.If:
		return c.evalIf(n, scope)

	case *emberast.Try:
		return c.evalTry(n, scope)

	case *emberast.Import:
		return c.evalImport(n, scope)

	case *emberast.Export:
		return c.evalExport(n, scope)

	case *emberast.BinaryOp:
		left := c.eval(n.Left, scope)
		if left.Failed() {
			return left
		}
		right := c.eval(n.Right, scope)
		if right.Failed() {
			return right
		}
		v, exc := b.DispatchBinary(c.invoke, n.Op, left.Value, right.Value)
		if exc != nil {
			return runtime.Raise(exc)
		}
		return runtime.Ok(v)

	case *emberast.UnaryOp:
		operand := c.eval(n.Operand, scope)
		if operand.Failed() {
			return operand
		}
		v, exc := b.DispatchUnary(c.invoke, n.Op, operand.Value)
		if exc != nil {
			return runtime.Raise(exc)
		}
		return runtime.Ok(v)

	default:
		panic(fmt.Sprintf("evaluator: unhandled node kind %T", node))
	}
}

func (c *Context) evalSequence(n *emberast.Sequence, scope *runtime.Scope) runtime.Result {
	child := runtime.NewChildScope(scope)
	c.pushScope(child)
	defer c.popScope()

	last := runtime.Null
	for _, stmt := range n.Children {
		res := c.eval(stmt, child)
		if res.Failed() {
			return res
		}
		last = res.Value
	}
	return runtime.Ok(last)
}

// evalArgs evaluates expressions left-to-right, stopping at the first
// failure, and rejects lists longer than maxArgs before evaluating any of
// them (a ParameterError, not a truncation).
func (c *Context) evalArgs(exprs []emberast.Node, scope *runtime.Scope) ([]runtime.Value, *runtime.Object) {
	if len(exprs) > maxArgs {
		return nil, c.Builtins.ParameterErrorf("too many arguments: %d exceeds the limit of %d", len(exprs), maxArgs)
	}
	args := make([]runtime.Value, 0, len(exprs))
	for _, e := range exprs {
		res := c.eval(e, scope)
		if res.Failed() {
			return nil, res.Exception
		}
		args = append(args, res.Value)
	}
	return args, nil
}

// invoke is the classrt.Invoker this package supplies: native methods call
// straight through, closure-backed methods get a fresh scope parented at
// the closure's captured scope with DefClass/Self set from the method and
// receiver.
func (c *Context) invoke(m *runtime.Method, self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
	if m.Native != nil {
		return m.Native(self, args)
	}
	return c.callClosure(m.Closure, m.DefClass, self, args)
}

func (c *Context) callClosure(fn *runtime.Function, defClass *runtime.ClassDescriptor, self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
	child := runtime.NewChildScope(fn.Scope)
	child.DefClass = defClass
	if self.Tag == runtime.TagObject {
		child.Self = self.Obj
	}
	for i, p := range fn.Params {
		v := runtime.Null
		if i < len(args) {
			v = args[i]
		}
		child.Declare(p, v)
	}

	c.pushScope(child)
	defer c.popScope()
	body, _ := fn.Body.(emberast.Node)
	res := c.eval(body, child)
	if res.Failed() {
		return runtime.Null, res.Exception
	}
	return res.Value, nil
}
