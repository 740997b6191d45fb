package evaluator

import (
	"github.com/cwbudde/ember/internal/runtime"
	emberast "github.com/cwbudde/ember/pkg/ast"
)

func (c *Context) evalClassDecl(n *emberast.ClassDecl, scope *runtime.Scope) runtime.Result {
	b := c.Builtins

	if scope.DeclaredLocally(n.Name) {
		return runtime.Raise(b.NameErrorf("Identifier '%s' already declared", n.Name))
	}

	super := b.Object
	if n.Superclass != nil {
		res := c.eval(n.Superclass, scope)
		if res.Failed() {
			return res
		}
		if res.Value.Tag != runtime.TagObject {
			return runtime.Raise(b.TypeErrorf("not a class"))
		}
		desc, ok := b.ClassOf(res.Value.Obj)
		if !ok {
			return runtime.Raise(b.TypeErrorf("not a class"))
		}
		if desc.Final {
			return runtime.Raise(b.TypeErrorf("cannot subclass final class '%s'", desc.Name))
		}
		super = desc
	}

	class := b.NewScriptedClass(n.Name, super, n.Final)

	for _, member := range n.Members {
		flags := runtime.MethodFlags(0)
		if member.Public {
			flags |= runtime.FlagPublic
		}

		// `get x;` with no body is shorthand for a getter that returns the
		// field of the same name declared at this class's own level.
		if member.Kind == emberast.MemberGetter && member.Body == nil {
			fieldName := member.Name
			defClass := class
			m := &runtime.Method{
				Name: member.Name, Flags: flags | runtime.FlagGet, DefClass: defClass,
				Native: func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
					if self.Tag != runtime.TagObject {
						return runtime.Null, nil
					}
					if level := runtime.FieldLevelFor(self.Obj, defClass); level != nil {
						if v, ok := level.Get(fieldName); ok {
							return v, nil
						}
					}
					return runtime.Null, nil
				},
			}
			class.Methods[member.Name] = m
			continue
		}

		fn := &runtime.Function{Name: member.Name, Params: member.Params, Body: member.Body, Scope: scope}
		m := &runtime.Method{Name: member.Name, ParamCount: len(member.Params), Closure: fn, DefClass: class}

		switch member.Kind {
		case emberast.MemberInit:
			m.Flags = flags | runtime.FlagInit
			class.Constructor = m
			class.PrivateConstructor = !member.Public
		case emberast.MemberSetter:
			m.Flags = flags | runtime.FlagSet
			class.Setters[member.Name] = m
		case emberast.MemberGetter:
			m.Flags = flags | runtime.FlagGet
			class.Methods[member.Name] = m
		default: // emberast.MemberMethod
			m.Flags = flags
			class.Methods[member.Name] = m
		}
	}

	if class.Constructor == nil {
		class.Constructor = &runtime.Method{
			Name: "init", Flags: runtime.FlagInit | runtime.FlagPublic,
			Native: func(_ runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) { return runtime.Null, nil },
		}
	}

	classVal := runtime.Obj(class.Object())
	scope.Declare(n.Name, classVal)
	return runtime.Ok(classVal)
}
