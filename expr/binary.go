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

// Binary applies an operator table function to two operands.
//
// The generic form evaluates both operands as doubles. The narrowed form,
// chosen by Simplify when both operand types are Integer or lower, takes the
// integer slots of the table whenever both operand values are integers and
// the double slots when one is missing.
type Binary struct {
	op       Operator
	left     Node
	right    Node
	narrowed bool
}

// NewBinary returns the generic form.
func NewBinary(op Operator, left, right Node) *Binary {
	op.info()
	return &Binary{op: op, left: left, right: right}
}

// NewNarrowedBinary returns the integer-operand form.
func NewNarrowedBinary(op Operator, left, right Node) *Binary {
	op.info()
	return &Binary{op: op, left: left, right: right, narrowed: true}
}

func (b *Binary) Operator() Operator { return b.op }

func (b *Binary) Left() Node { return b.left }

func (b *Binary) Right() Node { return b.right }

// Narrowed reports whether operands are evaluated as integers.
func (b *Binary) Narrowed() bool { return b.narrowed }

// WithLeft returns a copy of b with a different left operand.
func (b *Binary) WithLeft(left Node) *Binary {
	return &Binary{op: b.op, left: left, right: b.right, narrowed: b.narrowed}
}

// WithRight returns a copy of b with a different right operand.
func (b *Binary) WithRight(right Node) *Binary {
	return &Binary{op: b.op, left: b.left, right: right, narrowed: b.narrowed}
}

func (b *Binary) Type() types.ExpressionType {
	if b.narrowed {
		return b.op.SimplifiedReturnType()
	}
	return b.op.ReturnType()
}

func (b *Binary) IsConstant() bool {
	return b.left.IsConstant() && b.right.IsConstant()
}

func (b *Binary) Children() []Node { return []Node{b.left, b.right} }

func (b *Binary) ShouldPersist() bool { return anyPersist(b.left, b.right) }

func (b *Binary) ShouldDraw() bool { return anyDraw(b.left, b.right) }

func (b *Binary) EvalDouble(k types.Key) float64 {
	l, r := b.left.EvalDouble(k), b.right.EvalDouble(k)
	if b.narrowed {
		if li, ri, ok := integerOperands(l, r); ok {
			return b.op.DoubleFromInteger(li, ri)
		}
	}
	return b.op.DoubleFromDouble(l, r)
}

func (b *Binary) EvalInteger(k types.Key) int64 {
	l, r := b.left.EvalDouble(k), b.right.EvalDouble(k)
	if b.narrowed {
		if li, ri, ok := integerOperands(l, r); ok {
			return b.op.IntegerFromInteger(li, ri)
		}
	}
	return b.op.IntegerFromDouble(l, r)
}

func (b *Binary) EvalBoolean(k types.Key) bool {
	l, r := b.left.EvalDouble(k), b.right.EvalDouble(k)
	if b.narrowed {
		if li, ri, ok := integerOperands(l, r); ok {
			return b.op.BooleanFromInteger(li, ri)
		}
	}
	return b.op.BooleanFromDouble(l, r)
}

func (b *Binary) EvalNullable(k types.Key) types.Bool3 {
	l, r := b.left.EvalDouble(k), b.right.EvalDouble(k)
	if b.narrowed {
		if li, ri, ok := integerOperands(l, r); ok {
			return b.op.NullableFromInteger(li, ri)
		}
	}
	return b.op.NullableFromDouble(l, r)
}

// integerOperands reports whether both operand values have an integer
// value. A missing value sends a narrowed node down the double path, which
// yields NaN or Unknown instead of failing the integer cast.
func integerOperands(l, r float64) (int64, int64, bool) {
	li, lok := cast.IntegerOf(l)
	ri, rok := cast.IntegerOf(r)
	return li, ri, lok && rok
}

// Simplify folds constants, reorders ADD and MULTIPLY chains so constants
// meet and fold, and narrows the operand type when both sides allow it.
func (b *Binary) Simplify() Node {
	l := b.left.Simplify()
	r := b.right.Simplify()

	if l.IsConstant() && r.IsConstant() {
		return fold(narrowBinary(b.op, l, r))
	}

	if b.op.IsAssociative() {
		// canonical order puts the constant operand on the left
		if r.IsConstant() && !l.IsConstant() {
			l, r = r, l
		}
		if inner, ok := r.(*Binary); ok && inner.op == b.op && inner.left.IsConstant() {
			if l.IsConstant() {
				// c1 op (c2 op x) => (c1 op c2) op x
				combined := fold(narrowBinary(b.op, l, inner.left))
				out := NewBinary(b.op, combined, inner.right).Simplify()
				simplifyLog.Debug("reassociate %s => %s", b, out)
				return out
			}
			// x op (c op y) => c op (x op y)
			out := NewBinary(b.op, inner.left, NewBinary(b.op, l, inner.right)).Simplify()
			simplifyLog.Debug("rotate %s => %s", b, out)
			return out
		}
	}

	return narrowBinary(b.op, l, r)
}

// narrowBinary builds the cheapest Binary form the operand types allow.
func narrowBinary(op Operator, l, r Node) *Binary {
	if t, ok := op.SimplifyType(l.Type(), r.Type()); ok && t == types.Integer {
		return NewNarrowedBinary(op, l, r)
	}
	return NewBinary(op, l, r)
}
