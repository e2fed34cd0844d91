/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package expr

import (
	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

// Value is the set of evaluator output types.
type Value interface {
	float64 | int64 | bool | types.Bool3
}

// Evaluator is a node compiled for one output type. It takes keys of the
// kind it was compiled for.
type Evaluator[T Value] func(k types.Key) T

// Compile binds n into a chain of closures producing T, so repeated
// evaluation does no per-node type dispatch. Nullability of every logical
// operand is decided here, once.
//
// Compile does not modify n and may be called concurrently on the same tree.
// Compiling a crossing for types.KeyNone returns an UnsupportedOperationError.
func Compile[T Value](n Node, kind types.KeyKind) (ev Evaluator[T], err error) {
	defer recoverContractError(&err)
	c := newCompiler(kind)

	var zero T
	var out interface{}
	switch any(zero).(type) {
	case float64:
		out = Evaluator[float64](c.double(n))
	case int64:
		out = Evaluator[int64](c.integer(n))
	case bool:
		out = Evaluator[bool](c.boolean(n))
	case types.Bool3:
		out = Evaluator[types.Bool3](c.nullable(n))
	}
	return out.(Evaluator[T]), nil
}

type compiler struct {
	kind types.KeyKind
}

func newCompiler(kind types.KeyKind) *compiler {
	if !kind.Valid() {
		panic(unknownArgument("key kind", kind))
	}
	return &compiler{kind: kind}
}

func (c *compiler) double(n Node) func(types.Key) float64 {
	switch t := n.(type) {
	case *Constant:
		v := t.value
		return func(types.Key) float64 { return v }
	case *Binary:
		return c.binaryDouble(t)
	case *Logical:
		if !t.nullable {
			b := c.logicalBoolean(t)
			if t.op == Or {
				return func(k types.Key) float64 { return legacyOrDouble(b(k)) }
			}
			return func(k types.Key) float64 { return cast.BoolToDouble(b(k)) }
		}
		b3 := c.logicalNullable(t)
		return func(k types.Key) float64 { return cast.Bool3ToDouble(b3(k)) }
	case *Negation:
		if !t.nullable {
			b := c.boolean(t)
			return func(k types.Key) float64 { return cast.BoolToDouble(b(k)) }
		}
		b3 := c.nullable(t)
		return func(k types.Key) float64 { return cast.Bool3ToDouble(b3(k)) }
	case *Crossing:
		b := c.crossing(t)
		return func(k types.Key) float64 { return cast.BoolToDouble(b(k)) }
	default:
		return n.EvalDouble
	}
}

func (c *compiler) integer(n Node) func(types.Key) int64 {
	switch t := n.(type) {
	case *Constant:
		// integer reads of a NaN literal must fail at evaluation, not here
		return t.EvalInteger
	case *Binary:
		return c.binaryInteger(t)
	case *Logical, *Negation:
		if t.Type().IsNullable() {
			b3 := c.nullable(t)
			return func(k types.Key) int64 { return cast.Bool3ToInteger(b3(k)) }
		}
		b := c.boolean(t)
		return func(k types.Key) int64 { return cast.BoolToInteger(b(k)) }
	case *Crossing:
		b := c.crossing(t)
		return func(k types.Key) int64 { return cast.BoolToInteger(b(k)) }
	default:
		return n.EvalInteger
	}
}

func (c *compiler) boolean(n Node) func(types.Key) bool {
	switch t := n.(type) {
	case *Constant:
		v := t.EvalBoolean(types.NoKey)
		return func(types.Key) bool { return v }
	case *Binary:
		return c.binaryBoolean(t)
	case *Logical:
		if !t.nullable {
			return c.logicalBoolean(t)
		}
		b3 := c.logicalNullable(t)
		return func(k types.Key) bool { return b3(k) == types.True }
	case *Negation:
		if !t.nullable {
			operand := c.boolean(t.operand)
			return func(k types.Key) bool { return !operand(k) }
		}
		b3 := c.nullable(t)
		return func(k types.Key) bool { return b3(k) == types.True }
	case *Crossing:
		return c.crossing(t)
	default:
		return n.EvalBoolean
	}
}

func (c *compiler) nullable(n Node) func(types.Key) types.Bool3 {
	switch t := n.(type) {
	case *Constant:
		v := t.EvalNullable(types.NoKey)
		return func(types.Key) types.Bool3 { return v }
	case *Binary:
		return c.binaryNullable(t)
	case *Logical:
		if !t.nullable {
			return lift(c.logicalBoolean(t))
		}
		return c.logicalNullable(t)
	case *Negation:
		if !t.nullable {
			return lift(c.boolean(t))
		}
		operand := c.truth(t.operand)
		return func(k types.Key) types.Bool3 { return operand(k).Not() }
	case *Crossing:
		return lift(c.crossing(t))
	default:
		return n.EvalNullable
	}
}

// truth is the compiled form of reading a logical operand: the single
// nullability branch taken per operand.
func (c *compiler) truth(n Node) func(types.Key) types.Bool3 {
	if n.Type().IsNullable() {
		return c.nullable(n)
	}
	return lift(c.boolean(n))
}

func lift(b func(types.Key) bool) func(types.Key) types.Bool3 {
	return func(k types.Key) types.Bool3 { return types.Of(b(k)) }
}

func (c *compiler) binaryDouble(b *Binary) func(types.Key) float64 {
	fn := b.op.info().fn
	fd := fn.doubleFromDouble
	if fd == nil {
		panic(b.op.unsupported("double from double"))
	}
	l, r := c.double(b.left), c.double(b.right)
	if b.narrowed {
		fi := fn.doubleFromInteger
		if fi == nil {
			panic(b.op.unsupported("double from integer"))
		}
		return func(k types.Key) float64 {
			lv, rv := l(k), r(k)
			if li, ri, ok := integerOperands(lv, rv); ok {
				return fi(li, ri)
			}
			return fd(lv, rv)
		}
	}
	return func(k types.Key) float64 { return fd(l(k), r(k)) }
}

func (c *compiler) binaryInteger(b *Binary) func(types.Key) int64 {
	fn := b.op.info().fn
	fd := fn.integerFromDouble
	if fd == nil {
		panic(b.op.unsupported("integer from double"))
	}
	l, r := c.double(b.left), c.double(b.right)
	if b.narrowed {
		fi := fn.integerFromInteger
		if fi == nil {
			panic(b.op.unsupported("integer from integer"))
		}
		return func(k types.Key) int64 {
			lv, rv := l(k), r(k)
			if li, ri, ok := integerOperands(lv, rv); ok {
				return fi(li, ri)
			}
			return fd(lv, rv)
		}
	}
	return func(k types.Key) int64 { return fd(l(k), r(k)) }
}

func (c *compiler) binaryBoolean(b *Binary) func(types.Key) bool {
	fn := b.op.info().fn
	fd := fn.booleanFromDouble
	if fd == nil {
		panic(b.op.unsupported("boolean from double"))
	}
	l, r := c.double(b.left), c.double(b.right)
	if b.narrowed {
		fi := fn.booleanFromInteger
		if fi == nil {
			panic(b.op.unsupported("boolean from integer"))
		}
		return func(k types.Key) bool {
			lv, rv := l(k), r(k)
			if li, ri, ok := integerOperands(lv, rv); ok {
				return fi(li, ri)
			}
			return fd(lv, rv)
		}
	}
	return func(k types.Key) bool { return fd(l(k), r(k)) }
}

func (c *compiler) binaryNullable(b *Binary) func(types.Key) types.Bool3 {
	fn := b.op.info().fn
	fd := fn.nullableFromDouble
	if fd == nil {
		panic(b.op.unsupported("nullable from double"))
	}
	l, r := c.double(b.left), c.double(b.right)
	if b.narrowed {
		fi := fn.nullableFromInteger
		if fi == nil {
			panic(b.op.unsupported("nullable from integer"))
		}
		return func(k types.Key) types.Bool3 {
			lv, rv := l(k), r(k)
			if li, ri, ok := integerOperands(lv, rv); ok {
				return fi(li, ri)
			}
			return fd(lv, rv)
		}
	}
	return func(k types.Key) types.Bool3 { return fd(l(k), r(k)) }
}

func (c *compiler) logicalBoolean(n *Logical) func(types.Key) bool {
	l, r := c.boolean(n.left), c.boolean(n.right)
	switch n.op {
	case And:
		if n.parallel {
			return func(k types.Key) bool {
				a, b := l(k), r(k)
				return a && b
			}
		}
		return func(k types.Key) bool { return l(k) && r(k) }
	case Or:
		if n.parallel {
			return func(k types.Key) bool {
				a, b := l(k), r(k)
				return a || b
			}
		}
		return func(k types.Key) bool { return l(k) || r(k) }
	case Xor:
		return func(k types.Key) bool { return l(k) != r(k) }
	default:
		panic(unknownArgument("logical operator", n.op))
	}
}

// logicalNullable picks one of four closure shapes by which operands can be
// Unknown. Two-valued operands skip the tri-state checks entirely.
func (c *compiler) logicalNullable(n *Logical) func(types.Key) types.Bool3 {
	ln, rn := n.left.Type().IsNullable(), n.right.Type().IsNullable()
	compileLog.Debug("%s: %s", n, shapeName(ln, rn))

	if n.op == Xor || n.parallel {
		l, r := c.truth(n.left), c.truth(n.right)
		switch n.op {
		case And:
			return func(k types.Key) types.Bool3 { return and3(l(k), r(k)) }
		case Or:
			return func(k types.Key) types.Bool3 { return or3(l(k), r(k)) }
		default:
			return func(k types.Key) types.Bool3 { return xor3(l(k), r(k)) }
		}
	}

	// decider is the left value that settles the result without the right
	decider := types.False
	if n.op == Or {
		decider = types.True
	} else if n.op != And {
		panic(unknownArgument("logical operator", n.op))
	}
	deciderBool := decider == types.True

	switch {
	case ln && rn:
		l, r := c.nullable(n.left), c.nullable(n.right)
		return func(k types.Key) types.Bool3 {
			if l(k) == decider {
				return decider
			}
			return r(k)
		}
	case ln:
		l, r := c.nullable(n.left), c.boolean(n.right)
		return func(k types.Key) types.Bool3 {
			if l(k) == decider {
				return decider
			}
			return types.Of(r(k))
		}
	case rn:
		l, r := c.boolean(n.left), c.nullable(n.right)
		return func(k types.Key) types.Bool3 {
			if l(k) == deciderBool {
				return decider
			}
			return r(k)
		}
	default:
		l, r := c.boolean(n.left), c.boolean(n.right)
		return func(k types.Key) types.Bool3 {
			if l(k) == deciderBool {
				return decider
			}
			return types.Of(r(k))
		}
	}
}

func shapeName(leftNullable, rightNullable bool) string {
	switch {
	case leftNullable && rightNullable:
		return "both operands nullable"
	case leftNullable:
		return "left operand nullable"
	case rightNullable:
		return "right operand nullable"
	default:
		return "no nullable operand"
	}
}

func (c *compiler) crossing(x *Crossing) func(types.Key) bool {
	if c.kind == types.KeyNone {
		panic(x.unkeyed())
	}
	l, r := c.double(x.left), c.double(x.right)
	left, right := x.left, x.right
	lp, rp := x.leftProvider, x.rightProvider

	if x.shared {
		if x.op == CrossesAbove {
			return func(k types.Key) bool {
				if !(l(k) >= r(k)) {
					return false
				}
				prev := lp.PreviousKey(k, 1)
				return lp.EvalDouble(left, prev) < lp.EvalDouble(right, prev)
			}
		}
		return func(k types.Key) bool {
			if !(l(k) <= r(k)) {
				return false
			}
			prev := lp.PreviousKey(k, 1)
			return lp.EvalDouble(left, prev) > lp.EvalDouble(right, prev)
		}
	}
	if x.op == CrossesAbove {
		return func(k types.Key) bool {
			if !(l(k) > r(k)) {
				return false
			}
			return lp.EvalDouble(left, lp.PreviousKey(k, 1)) <= rp.EvalDouble(right, rp.PreviousKey(k, 1))
		}
	}
	return func(k types.Key) bool {
		if !(l(k) < r(k)) {
			return false
		}
		return lp.EvalDouble(left, lp.PreviousKey(k, 1)) >= rp.EvalDouble(right, rp.PreviousKey(k, 1))
	}
}
