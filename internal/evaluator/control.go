package evaluator

import (
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

func (c *Context) evalIf(n *emberast.If, scope *runtime.Scope) runtime.Result {
	b := c.Builtins
	for _, branch := range n.Branches {
		test := c.eval(branch.Test, scope)
		if test.Failed() {
			return test
		}
		if test.Value.Tag != runtime.TagBool {
			return runtime.Raise(b.TypeErrorf("Expected a Boolean"))
		}
		if test.Value.Bool {
			return c.eval(branch.Expr, scope)
		}
	}
	if n.Else != nil {
		return c.eval(n.Else, scope)
	}
	return runtime.Ok(runtime.Null)
}

// evalTry runs the try body, dispatches a raised exception to the first
// matching except clause (in source order), then guarantees finally runs
// on every path — a finally failure overrides whatever result preceded
// it, and an unmatched exception re-raises after finally still runs.
func (c *Context) evalTry(n *emberast.Try, scope *runtime.Scope) runtime.Result {
	result := c.eval(n.Body, scope)

	if !result.Failed() {
		if n.Else != nil {
			result = c.eval(n.Else, scope)
		}
	} else {
		exc := result.Exception
		handled := false
		for _, clause := range n.Excepts {
			matched, matchExc := c.exceptionMatches(clause, exc, scope)
			if matchExc != nil {
				result = runtime.Raise(matchExc)
				handled = true
				break
			}
			if !matched {
				continue
			}
			handlerScope := runtime.NewChildScope(scope)
			if clause.VarName != "" {
				handlerScope.Declare(clause.VarName, runtime.Obj(exc))
			}
			c.pushScope(handlerScope)
			result = c.eval(clause.Body, handlerScope)
			c.popScope()
			handled = true
			break
		}
		if !handled {
			result = runtime.Raise(exc)
		}
	}

	if n.Finally != nil {
		finallyResult := c.eval(n.Finally, scope)
		if finallyResult.Failed() {
			result = finallyResult
		}
	}
	return result
}

// exceptionMatches evaluates clause's listed exception classes (an empty
// list matches anything) and reports whether exc is an instance of one of
// them. A non-Exception class expression is a TypeError, returned as
// matchExc so the caller can surface it as the try's result.
func (c *Context) exceptionMatches(clause emberast.ExceptClause, exc *runtime.Object, scope *runtime.Scope) (matched bool, matchExc *runtime.Object) {
	b := c.Builtins
	if len(clause.Classes) == 0 {
		return true, nil
	}
	for _, classExpr := range clause.Classes {
		res := c.eval(classExpr, scope)
		if res.Failed() {
			return false, res.Exception
		}
		if res.Value.Tag != runtime.TagObject {
			return false, b.TypeErrorf("Not an Exception")
		}
		desc, ok := b.ClassOf(res.Value.Obj)
		if !ok || !b.IsExceptionClass(desc) {
			return false, b.TypeErrorf("Not an Exception")
		}
		if exc.IsA(desc) {
			return true, nil
		}
	}
	return false, nil
}
