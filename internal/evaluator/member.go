package evaluator

import (
	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

// receiverAndStartClass evaluates a MemberAccess/MemberAssign receiver,
// handling the `super` form: its receiver is the implicit self, and
// lookup starts from the defining class's superclass rather than the
// receiver's own dynamic class, so it skips straight past any override.
// Ordinary access starts from the receiver's actual dynamic class, so
// overrides still dispatch virtually.
func (c *Context) receiverAndStartClass(receiverExpr emberast.Node, super bool, scope *runtime.Scope) (runtime.Value, *runtime.ClassDescriptor, *runtime.Object) {
	b := c.Builtins
	if super {
		if scope.DefClass == nil || scope.Self == nil {
			return runtime.Value{}, nil, b.TypeErrorf("'super' used outside of a method")
		}
		return runtime.Obj(scope.Self), scope.DefClass.Super, nil
	}
	res := c.eval(receiverExpr, scope)
	if res.Failed() {
		return runtime.Value{}, nil, res.Exception
	}
	return res.Value, res.Value.ClassOf(&b.Primitives), nil
}

func (c *Context) evalMemberAccess(n *emberast.MemberAccess, scope *runtime.Scope) runtime.Result {
	b := c.Builtins
	receiver, startClass, exc := c.receiverAndStartClass(n.Receiver, n.Super, scope)
	if exc != nil {
		return runtime.Raise(exc)
	}
	var receiverObj *runtime.Object
	if receiver.Tag == runtime.TagObject {
		receiverObj = receiver.Obj
	}

	if m, ok := classrt.ResolveMemberRead(scope, startClass, receiverObj, n.Name); ok {
		if m.Flags.Has(runtime.FlagGet) {
			v, exc := c.invoke(m, receiver, nil)
			if exc != nil {
				return runtime.Raise(exc)
			}
			return runtime.Ok(v)
		}
		return runtime.Ok(runtime.Obj(b.NewBoundMethod(m, receiver)))
	}

	if receiverObj != nil {
		if b.IsModule(startClass) {
			if mod, ok := classrt.ModuleValue(receiverObj); ok {
				if v, ok := mod.Exports[n.Name]; ok {
					return runtime.Ok(v)
				}
			}
		}
		if b.IsStructure(startClass) {
			if v, ok := classrt.StructureGet(receiverObj, n.Name); ok {
				return runtime.Ok(v)
			}
		}
		if classrt.HasPrivateAccess(scope, receiverObj) && receiverObj.Fields != nil {
			level := receiverObj.Fields
			if n.Super {
				level = runtime.FieldLevelFor(receiverObj, startClass)
			}
			if level != nil {
				if v, ok := level.Get(n.Name); ok {
					return runtime.Ok(v)
				}
			}
		}
	}

	return runtime.Raise(b.AttributeErrorf("'%s' object has no attribute '%s'", startClass.Name, n.Name))
}

func (c *Context) evalMemberAssign(n *emberast.MemberAssign, scope *runtime.Scope) runtime.Result {
	b := c.Builtins
	receiver, startClass, exc := c.receiverAndStartClass(n.Receiver, n.Super, scope)
	if exc != nil {
		return runtime.Raise(exc)
	}
	if receiver.Tag != runtime.TagObject || (receiver.Obj.Class.Native && !b.IsStructure(receiver.Obj.Class)) {
		return runtime.Raise(b.TypeErrorf("'%s' objects are immutables", startClass.Name))
	}
	receiverObj := receiver.Obj

	valRes := c.eval(n.Value, scope)
	if valRes.Failed() {
		return valRes
	}
	val := valRes.Value

	if m, ok := classrt.ResolveMemberWrite(scope, startClass, receiverObj, n.Name); ok {
		_, exc := c.invoke(m, receiver, []runtime.Value{val})
		if exc != nil {
			return runtime.Raise(exc)
		}
		return runtime.Ok(val)
	}

	if b.IsStructure(receiverObj.Class) {
		classrt.StructureSet(receiverObj, n.Name, val)
		return runtime.Ok(val)
	}

	if classrt.HasPrivateAccess(scope, receiverObj) {
		fieldClass := scope.DefClass
		if n.Super {
			fieldClass = scope.DefClass.Super
		}
		if level := runtime.FieldLevelFor(receiverObj, fieldClass); level != nil {
			level.Declare(n.Name, val)
			return runtime.Ok(val)
		}
	}

	return runtime.Raise(b.AttributeErrorf("'%s' object has no attribute '%s'", receiverObj.Class.Name, n.Name))
}
