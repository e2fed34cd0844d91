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

// Logical implements AND, OR and XOR over three-valued booleans.
//
//	AND: a False left operand decides False, otherwise the result is the right operand.
//	OR:  a True left operand decides True, otherwise the result is the right operand.
//	XOR: Unknown if either side is Unknown.
//
// So Unknown AND x = x and Unknown OR x = x. The short-circuit forms skip the
// right operand once the left one decides; parallel forms always evaluate
// both. The non-nullable form is used when neither operand can be Unknown.
type Logical struct {
	op       Operator
	left     Node
	right    Node
	nullable bool
	parallel bool
}

func newLogical(op Operator, left, right Node, nullable, parallel bool) *Logical {
	if !op.IsLogical() {
		panic(unknownArgument("logical operator", op))
	}
	return &Logical{op: op, left: left, right: right, nullable: nullable, parallel: parallel}
}

// NewLogical returns the three-valued short-circuit form.
func NewLogical(op Operator, left, right Node) *Logical {
	return newLogical(op, left, right, true, false)
}

// NewParallelLogical returns the three-valued form that evaluates both
// operands on every call.
func NewParallelLogical(op Operator, left, right Node) *Logical {
	return newLogical(op, left, right, true, true)
}

// NewBooleanLogical returns the two-valued form. Its operands must never be
// Unknown.
func NewBooleanLogical(op Operator, left, right Node) *Logical {
	return newLogical(op, left, right, false, false)
}

func (n *Logical) Operator() Operator { return n.op }

func (n *Logical) Left() Node { return n.left }

func (n *Logical) Right() Node { return n.right }

func (n *Logical) Nullable() bool { return n.nullable }

func (n *Logical) Parallel() bool { return n.parallel }

// WithLeft returns a copy of n with a different left operand.
func (n *Logical) WithLeft(left Node) *Logical {
	return &Logical{op: n.op, left: left, right: n.right, nullable: n.nullable, parallel: n.parallel}
}

func (n *Logical) Type() types.ExpressionType {
	if n.nullable {
		return types.BooleanNullable
	}
	return types.Boolean
}

func (n *Logical) IsConstant() bool {
	return n.left.IsConstant() && n.right.IsConstant()
}

func (n *Logical) Children() []Node { return []Node{n.left, n.right} }

func (n *Logical) ShouldPersist() bool { return anyPersist(n.left, n.right) }

func (n *Logical) ShouldDraw() bool { return anyDraw(n.left, n.right) }

func (n *Logical) EvalNullable(k types.Key) types.Bool3 {
	if !n.nullable {
		return types.Of(n.EvalBoolean(k))
	}
	switch n.op {
	case And:
		if n.parallel {
			return and3(truth(n.left, k), truth(n.right, k))
		}
		if truth(n.left, k) == types.False {
			return types.False
		}
		return truth(n.right, k)
	case Or:
		if n.parallel {
			return or3(truth(n.left, k), truth(n.right, k))
		}
		if truth(n.left, k) == types.True {
			return types.True
		}
		return truth(n.right, k)
	case Xor:
		return xor3(truth(n.left, k), truth(n.right, k))
	default:
		panic(unknownArgument("logical operator", n.op))
	}
}

func (n *Logical) EvalBoolean(k types.Key) bool {
	if n.nullable {
		return n.EvalNullable(k) == types.True
	}
	switch n.op {
	case And:
		if n.parallel {
			l, r := n.left.EvalBoolean(k), n.right.EvalBoolean(k)
			return l && r
		}
		return n.left.EvalBoolean(k) && n.right.EvalBoolean(k)
	case Or:
		if n.parallel {
			l, r := n.left.EvalBoolean(k), n.right.EvalBoolean(k)
			return l || r
		}
		return n.left.EvalBoolean(k) || n.right.EvalBoolean(k)
	case Xor:
		return n.left.EvalBoolean(k) != n.right.EvalBoolean(k)
	default:
		panic(unknownArgument("logical operator", n.op))
	}
}

// EvalDouble maps True to 1 and Unknown to NaN. False maps to 0, except for
// the non-nullable OR where it maps to -1.
func (n *Logical) EvalDouble(k types.Key) float64 {
	if n.nullable {
		return cast.Bool3ToDouble(n.EvalNullable(k))
	}
	if n.op == Or {
		return legacyOrDouble(n.EvalBoolean(k))
	}
	return cast.BoolToDouble(n.EvalBoolean(k))
}

func (n *Logical) EvalInteger(k types.Key) int64 {
	if n.nullable {
		return cast.Bool3ToInteger(n.EvalNullable(k))
	}
	return cast.BoolToInteger(n.EvalBoolean(k))
}

// Simplify folds constant operand pairs and applies the short-circuit rules
// to a single constant operand:
//
//	false and x => false      x and false => false
//	true and x  => x          x and true  => x   (x two-valued)
//	null and x  => x
//	true or x   => true       x or true   => true
//	false or x  => x          x or false  => x   (x two-valued)
//	null or x   => x
//
// XOR only folds when both operands are constant.
func (n *Logical) Simplify() Node {
	l := n.left.Simplify()
	r := n.right.Simplify()

	if l.IsConstant() && r.IsConstant() {
		return fold(narrowLogical(n.op, l, r, n.parallel))
	}

	var out Node
	switch n.op {
	case And:
		out = shortCircuit(l, r, types.False)
	case Or:
		out = shortCircuit(l, r, types.True)
	}
	if out != nil {
		simplifyLog.Debug("short-circuit %s => %s", n, out)
		return out
	}
	return narrowLogical(n.op, l, r, n.parallel)
}

// shortCircuit applies the single-constant rules for an operator whose
// deciding left value is decider. It returns nil when no rule applies.
func shortCircuit(l, r Node, decider types.Bool3) Node {
	if l.IsConstant() {
		if truth(l, types.NoKey) == decider {
			return BoolConstant(decider)
		}
		if r.Type().IsBoolean() {
			return r
		}
		return nil
	}
	if r.IsConstant() {
		rv := truth(r, types.NoKey)
		if rv == decider {
			// the right operand alone decides whatever the left one says
			return BoolConstant(decider)
		}
		if rv == decider.Not() && l.Type() == types.Boolean {
			return l
		}
	}
	return nil
}

func narrowLogical(op Operator, l, r Node, parallel bool) *Logical {
	if t, ok := op.SimplifyType(l.Type(), r.Type()); ok && t == types.Boolean {
		return newLogical(op, l, r, false, parallel)
	}
	return newLogical(op, l, r, true, parallel)
}

// truth reads a logical operand. Operands typed Boolean or Integer are read
// through their two-valued evaluation, so narrowing a node to its boolean
// form never changes its result.
func truth(n Node, k types.Key) types.Bool3 {
	if n.Type().IsNullable() {
		return n.EvalNullable(k)
	}
	return types.Of(n.EvalBoolean(k))
}

func and3(l, r types.Bool3) types.Bool3 {
	if l == types.False {
		return types.False
	}
	return r
}

func or3(l, r types.Bool3) types.Bool3 {
	if l == types.True {
		return types.True
	}
	return r
}

func xor3(l, r types.Bool3) types.Bool3 {
	if !l.IsKnown() || !r.IsKnown() {
		return types.Unknown
	}
	return types.Of(l != r)
}

func legacyOrDouble(b bool) float64 {
	if b {
		return 1
	}
	return -1
}

// Negation implements NOT. Unknown stays Unknown.
type Negation struct {
	operand  Node
	nullable bool
}

// NewNot returns the three-valued form.
func NewNot(operand Node) *Negation {
	return &Negation{operand: operand, nullable: true}
}

// NewBooleanNot returns the two-valued form.
func NewBooleanNot(operand Node) *Negation {
	return &Negation{operand: operand}
}

func (n *Negation) Operator() Operator { return Not }

func (n *Negation) Operand() Node { return n.operand }

func (n *Negation) Nullable() bool { return n.nullable }

func (n *Negation) Type() types.ExpressionType {
	if n.nullable {
		return types.BooleanNullable
	}
	return types.Boolean
}

func (n *Negation) IsConstant() bool { return n.operand.IsConstant() }

func (n *Negation) Children() []Node { return []Node{n.operand} }

func (n *Negation) ShouldPersist() bool { return n.operand.ShouldPersist() }

func (n *Negation) ShouldDraw() bool { return n.operand.ShouldDraw() }

func (n *Negation) EvalNullable(k types.Key) types.Bool3 {
	if !n.nullable {
		return types.Of(!n.operand.EvalBoolean(k))
	}
	return truth(n.operand, k).Not()
}

func (n *Negation) EvalBoolean(k types.Key) bool {
	if n.nullable {
		return n.EvalNullable(k) == types.True
	}
	return !n.operand.EvalBoolean(k)
}

func (n *Negation) EvalDouble(k types.Key) float64 {
	if n.nullable {
		return cast.Bool3ToDouble(n.EvalNullable(k))
	}
	return cast.BoolToDouble(n.EvalBoolean(k))
}

func (n *Negation) EvalInteger(k types.Key) int64 {
	if n.nullable {
		return cast.Bool3ToInteger(n.EvalNullable(k))
	}
	return cast.BoolToInteger(n.EvalBoolean(k))
}

// Simplify folds a constant operand and removes double negation of a
// boolean operand.
func (n *Negation) Simplify() Node {
	operand := n.operand.Simplify()
	if operand.IsConstant() {
		return fold(narrowNot(operand))
	}
	if inner, ok := operand.(*Negation); ok && inner.operand.Type().IsBoolean() {
		simplifyLog.Debug("double negation %s => %s", n, inner.operand)
		return inner.operand
	}
	return narrowNot(operand)
}

func narrowNot(operand Node) *Negation {
	if t, ok := Not.SimplifyType(operand.Type(), operand.Type()); ok && t == types.Boolean {
		return NewBooleanNot(operand)
	}
	return NewNot(operand)
}
