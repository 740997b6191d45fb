package evaluator

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/loader"
	"github.com/cwbudde/ember/internal/runtime"
)

// registerBuiltinModules installs the three statically-registered
// built-in modules: math, strings, os.
func registerBuiltinModules(reg *loader.Registry) {
	reg.RegisterBuiltin("math", mathModule)
	reg.RegisterBuiltin("strings", stringsModule)
	reg.RegisterBuiltin("os", osModule)
}

// nativeFunc wraps fn as a callable value with no meaningful receiver —
// a free function exported by a built-in module, not a class method. Self
// is always Null and the underlying Method is never installed into any
// class's table; it exists only to ride inside a BoundMethod.
func nativeFunc(b *classrt.Builtins, name string, paramCount int, fn runtime.NativeFunc) runtime.Value {
	m := &runtime.Method{Name: name, Flags: runtime.FlagPublic | runtime.FlagValue, ParamCount: paramCount, Native: fn}
	return runtime.Obj(b.NewBoundMethod(m, runtime.Null))
}

func mathModule(b *classrt.Builtins) map[string]runtime.Value {
	asFloat := func(v runtime.Value) (float64, *runtime.Object) {
		switch v.Tag {
		case runtime.TagInt:
			return float64(v.Int), nil
		case runtime.TagFloat:
			return v.Float, nil
		default:
			return 0, b.TypeErrorf("Expected a number, got '%s'", v.ClassOf(&b.Primitives).Name)
		}
	}
	unary := func(name string, fn func(float64) float64) runtime.Value {
		return nativeFunc(b, name, 1, func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			f, exc := asFloat(args[0])
			if exc != nil {
				return runtime.Null, exc
			}
			return runtime.Float(fn(f)), nil
		})
	}
	return map[string]runtime.Value{
		"pi":    runtime.Float(math.Pi),
		"e":     runtime.Float(math.E),
		"sqrt":  unary("sqrt", math.Sqrt),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"abs":   unary("abs", math.Abs),
	}
}

func stringsModule(b *classrt.Builtins) map[string]runtime.Value {
	asString := func(v runtime.Value) (string, *runtime.Object) {
		if v.Tag != runtime.TagObject {
			return "", b.TypeErrorf("Expected a String, got '%s'", v.ClassOf(&b.Primitives).Name)
		}
		s, ok := classrt.StringValue(v.Obj)
		if !ok {
			return "", b.TypeErrorf("Expected a String, got '%s'", v.Obj.Class.Name)
		}
		return s, nil
	}
	return map[string]runtime.Value{
		"upper": nativeFunc(b, "upper", 1, func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			s, exc := asString(args[0])
			if exc != nil {
				return runtime.Null, exc
			}
			return runtime.Obj(b.NewString(strings.ToUpper(s))), nil
		}),
		"lower": nativeFunc(b, "lower", 1, func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			s, exc := asString(args[0])
			if exc != nil {
				return runtime.Null, exc
			}
			return runtime.Obj(b.NewString(strings.ToLower(s))), nil
		}),
		"len": nativeFunc(b, "len", 1, func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			s, exc := asString(args[0])
			if exc != nil {
				return runtime.Null, exc
			}
			return runtime.Int(int64(len(s))), nil
		}),
		"concat": nativeFunc(b, "concat", 2, func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			a, exc := asString(args[0])
			if exc != nil {
				return runtime.Null, exc
			}
			c, exc := asString(args[1])
			if exc != nil {
				return runtime.Null, exc
			}
			return runtime.Obj(b.NewString(a + c)), nil
		}),
	}
}

func osModule(b *classrt.Builtins) map[string]runtime.Value {
	args := b.NewStructure()
	argv := os.Args
	classrt.StructureSet(args, "count", runtime.Int(int64(len(argv))))
	for i, a := range argv {
		classrt.StructureSet(args, strconv.Itoa(i), runtime.Obj(b.NewString(a)))
	}
	return map[string]runtime.Value{
		"args": runtime.Obj(args),
		"getenv": nativeFunc(b, "getenv", 1, func(_ runtime.Value, callArgs []runtime.Value) (runtime.Value, *runtime.Object) {
			if len(callArgs) == 0 || callArgs[0].Tag != runtime.TagObject {
				return runtime.Null, b.TypeErrorf("getenv expects a String argument")
			}
			name, ok := classrt.StringValue(callArgs[0].Obj)
			if !ok {
				return runtime.Null, b.TypeErrorf("getenv expects a String argument")
			}
			v, ok := os.LookupEnv(name)
			if !ok {
				return runtime.Null, nil
			}
			return runtime.Obj(b.NewString(v)), nil
		}),
	}
}
