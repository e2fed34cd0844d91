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

// Crossing implements CROSSES_ABOVE and CROSSES_BELOW: true only at the key
// where the order of two series just flipped, which takes one step of
// lookback through a PreviousValueProvider.
//
// The dual-provider form looks each operand up through its own provider:
//
//	above: L0 > R0 and L1 <= R1
//	below: L0 < R0 and L1 >= R1
//
// The shared-provider form computes the previous key once and gates on the
// non-strict comparison:
//
//	above: L0 >= R0 and L1 < R1
//	below: L0 <= R0 and L1 > R1
//
// Crossing has no unkeyed evaluation and is never constant.
type Crossing struct {
	op            Operator
	left          Node
	right         Node
	leftProvider  PreviousValueProvider
	rightProvider PreviousValueProvider
	shared        bool
	narrowed      bool
}

func newCrossing(op Operator, left Node, lp PreviousValueProvider, right Node, rp PreviousValueProvider, shared, narrowed bool) *Crossing {
	if !op.IsCrossing() {
		panic(unknownArgument("crossing operator", op))
	}
	if lp == nil || rp == nil {
		panic(&UnsupportedOperationError{Operator: op.String(), Shape: "evaluation without a previous-value provider"})
	}
	return &Crossing{op: op, left: left, right: right, leftProvider: lp, rightProvider: rp, shared: shared, narrowed: narrowed}
}

// NewCrossing returns the dual-provider form.
func NewCrossing(op Operator, left Node, lp PreviousValueProvider, right Node, rp PreviousValueProvider) *Crossing {
	return newCrossing(op, left, lp, right, rp, false, false)
}

// NewSharedCrossing returns the single-provider form.
func NewSharedCrossing(op Operator, left, right Node, p PreviousValueProvider) *Crossing {
	return newCrossing(op, left, p, right, p, true, false)
}

func (c *Crossing) Operator() Operator { return c.op }

func (c *Crossing) Left() Node { return c.left }

func (c *Crossing) Right() Node { return c.right }

func (c *Crossing) LeftProvider() PreviousValueProvider { return c.leftProvider }

func (c *Crossing) RightProvider() PreviousValueProvider { return c.rightProvider }

// Shared reports the single-provider form.
func (c *Crossing) Shared() bool { return c.shared }

// Narrowed reports whether the current values are read as integers.
func (c *Crossing) Narrowed() bool { return c.narrowed }

// WithLeft returns a copy of c with a different left operand.
func (c *Crossing) WithLeft(left Node) *Crossing {
	out := *c
	out.left = left
	return &out
}

func (c *Crossing) Type() types.ExpressionType { return types.Boolean }

func (c *Crossing) IsConstant() bool { return false }

func (c *Crossing) Children() []Node { return []Node{c.left, c.right} }

func (c *Crossing) ShouldPersist() bool { return anyPersist(c.left, c.right) }

func (c *Crossing) ShouldDraw() bool { return anyDraw(c.left, c.right) }

func (c *Crossing) EvalBoolean(k types.Key) bool {
	if k.Kind() == types.KeyNone {
		panic(c.unkeyed())
	}
	l0, r0 := c.current(k)
	if c.shared {
		return c.crossedShared(k, l0, r0)
	}
	return c.crossedDual(k, l0, r0)
}

func (c *Crossing) EvalNullable(k types.Key) types.Bool3 { return types.Of(c.EvalBoolean(k)) }

func (c *Crossing) EvalDouble(k types.Key) float64 { return cast.BoolToDouble(c.EvalBoolean(k)) }

func (c *Crossing) EvalInteger(k types.Key) int64 { return cast.BoolToInteger(c.EvalBoolean(k)) }

// current reads both operands as doubles, narrowed or not: integer operands
// may be missing at k and a missing value never crosses.
func (c *Crossing) current(k types.Key) (float64, float64) {
	return c.left.EvalDouble(k), c.right.EvalDouble(k)
}

func (c *Crossing) crossedShared(k types.Key, l0, r0 float64) bool {
	if c.op == CrossesAbove {
		if !(l0 >= r0) {
			return false
		}
	} else if !(l0 <= r0) {
		return false
	}
	prev := c.leftProvider.PreviousKey(k, 1)
	l1 := c.leftProvider.EvalDouble(c.left, prev)
	r1 := c.leftProvider.EvalDouble(c.right, prev)
	if c.op == CrossesAbove {
		return l1 < r1
	}
	return l1 > r1
}

func (c *Crossing) crossedDual(k types.Key, l0, r0 float64) bool {
	if c.op == CrossesAbove {
		if !(l0 > r0) {
			return false
		}
	} else if !(l0 < r0) {
		return false
	}
	l1 := c.leftProvider.EvalDouble(c.left, c.leftProvider.PreviousKey(k, 1))
	r1 := c.rightProvider.EvalDouble(c.right, c.rightProvider.PreviousKey(k, 1))
	if c.op == CrossesAbove {
		return l1 <= r1
	}
	return l1 >= r1
}

func (c *Crossing) unkeyed() *UnsupportedOperationError {
	return &UnsupportedOperationError{Operator: c.op.String(), Shape: "unkeyed evaluation", Required: "an index or timestamp key"}
}

// Simplify simplifies the operands, switches to the shared-provider form when
// both operands use the same provider instance and narrows integer operands.
// It never folds.
func (c *Crossing) Simplify() Node {
	l := c.left.Simplify()
	r := c.right.Simplify()
	shared := c.shared || c.leftProvider == c.rightProvider
	if shared && !c.shared {
		simplifyLog.Debug("shared provider %s", c)
	}
	t, ok := c.op.SimplifyType(l.Type(), r.Type())
	narrowed := ok && t == types.Integer
	return newCrossing(c.op, l, c.leftProvider, r, c.rightProvider, shared, narrowed)
}
