package classrt

import "github.com/cwbudde/ember/internal/runtime"

// installPrimitiveOperators wires the inline operator bodies for Bool,
// Int, and Float. Each body raises the NotImplementedError sentinel for
// operand combinations it doesn't handle itself, letting the cascade in
// dispatch.go try the other side — this is how `1 + 1.5` ends up falling
// through to Float's reflected plus.
func installPrimitiveOperators(b *Builtins) {
	installIntOperators(b)
	installFloatOperators(b)
	installBoolOperators(b)
	installNullOperators(b)
}

func installNullOperators(b *Builtins) {
	c := b.Null
	c.Methods["operator =="] = method("operator ==", runtime.FlagValue|runtime.FlagPublic, 1,
		func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Bool(args[0].Tag == runtime.TagNull), nil
		})
	c.Methods["operator !="] = method("operator !=", runtime.FlagValue|runtime.FlagPublic, 1,
		func(_ runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Bool(args[0].Tag != runtime.TagNull), nil
		})
}

func asNumber(v runtime.Value) (float64, bool) {
	switch v.Tag {
	case runtime.TagInt:
		return float64(v.Int), true
	case runtime.TagFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func installIntOperators(b *Builtins) {
	c := b.Int
	arith := func(name string, intFn func(a, bv int64) (runtime.Value, *runtime.Object)) {
		c.Methods["operator "+name] = method("operator "+name, runtime.FlagValue|runtime.FlagPublic, 1,
			func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
				right := args[0]
				if right.Tag == runtime.TagInt {
					return intFn(self.Int, right.Int)
				}
				return runtime.Null, b.notImplemented()
			})
	}
	arith("+", func(a, bv int64) (runtime.Value, *runtime.Object) { return runtime.Int(a + bv), nil })
	arith("-", func(a, bv int64) (runtime.Value, *runtime.Object) { return runtime.Int(a - bv), nil })
	arith("*", func(a, bv int64) (runtime.Value, *runtime.Object) { return runtime.Int(a * bv), nil })
	arith("/", func(a, bv int64) (runtime.Value, *runtime.Object) {
		if bv == 0 {
			return runtime.Null, b.ZeroDivisionErrorf("Division by zero")
		}
		return runtime.Int(a / bv), nil
	})

	c.Methods["operator =="] = method("operator ==", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			n, ok := asNumber(args[0])
			if !ok {
				return runtime.Bool(false), nil
			}
			return runtime.Bool(float64(self.Int) == n), nil
		})
	c.Methods["operator !="] = method("operator !=", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			n, ok := asNumber(args[0])
			if !ok {
				return runtime.Bool(true), nil
			}
			return runtime.Bool(float64(self.Int) != n), nil
		})

	unary := map[string]func(int64) runtime.Value{
		"-": func(a int64) runtime.Value { return runtime.Int(-a) },
		"!": func(a int64) runtime.Value { return runtime.Bool(a == 0) },
	}
	for op, fn := range unary {
		f := fn
		c.Methods["unary "+op] = method("unary "+op, runtime.FlagValue|runtime.FlagPublic, 0,
			func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
				return f(self.Int), nil
			})
	}
}

func installFloatOperators(b *Builtins) {
	c := b.Float
	arith := func(name string, fn func(a, bv float64) (runtime.Value, *runtime.Object)) {
		c.Methods["operator "+name] = method("operator "+name, runtime.FlagValue|runtime.FlagPublic, 1,
			func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
				n, ok := asNumber(args[0])
				if !ok {
					return runtime.Null, b.notImplemented()
				}
				return fn(self.Float, n)
			})
		c.Methods["operator r"+name] = method("operator r"+name, runtime.FlagValue|runtime.FlagPublic, 1,
			func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
				n, ok := asNumber(args[0])
				if !ok {
					return runtime.Null, b.notImplemented()
				}
				return fn(n, self.Float)
			})
	}
	arith("+", func(a, bv float64) (runtime.Value, *runtime.Object) { return runtime.Float(a + bv), nil })
	arith("-", func(a, bv float64) (runtime.Value, *runtime.Object) { return runtime.Float(a - bv), nil })
	arith("*", func(a, bv float64) (runtime.Value, *runtime.Object) { return runtime.Float(a * bv), nil })
	arith("/", func(a, bv float64) (runtime.Value, *runtime.Object) {
		if bv == 0 {
			return runtime.Null, b.ZeroDivisionErrorf("Division by zero")
		}
		return runtime.Float(a / bv), nil
	})

	c.Methods["operator =="] = method("operator ==", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			n, ok := asNumber(args[0])
			return runtime.Bool(ok && self.Float == n), nil
		})
	c.Methods["operator !="] = method("operator !=", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			n, ok := asNumber(args[0])
			return runtime.Bool(!ok || self.Float != n), nil
		})
	c.Methods["unary -"] = method("unary -", runtime.FlagValue|runtime.FlagPublic, 0,
		func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Float(-self.Float), nil
		})
}

func installBoolOperators(b *Builtins) {
	c := b.Bool
	c.Methods["operator =="] = method("operator ==", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			if args[0].Tag != runtime.TagBool {
				return runtime.Bool(false), nil
			}
			return runtime.Bool(self.Bool == args[0].Bool), nil
		})
	c.Methods["operator !="] = method("operator !=", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			if args[0].Tag != runtime.TagBool {
				return runtime.Bool(true), nil
			}
			return runtime.Bool(self.Bool != args[0].Bool), nil
		})
	c.Methods["unary !"] = method("unary !", runtime.FlagValue|runtime.FlagPublic, 0,
		func(self runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Object) {
			return runtime.Bool(!self.Bool), nil
		})

	// && and || are ordinary BinaryOp nodes with no dedicated AST shape, so
	// both operands are always evaluated before dispatch reaches here —
	// there is no short-circuiting.
	c.Methods["operator &&"] = method("operator &&", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			if args[0].Tag != runtime.TagBool {
				return runtime.Null, b.notImplemented()
			}
			return runtime.Bool(self.Bool && args[0].Bool), nil
		})
	c.Methods["operator ||"] = method("operator ||", runtime.FlagValue|runtime.FlagPublic, 1,
		func(self runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Object) {
			if args[0].Tag != runtime.TagBool {
				return runtime.Null, b.notImplemented()
			}
			return runtime.Bool(self.Bool || args[0].Bool), nil
		})
}
