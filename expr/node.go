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
	"math"

	"github.com/rulego/signalexpr/logger"
	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

var (
	simplifyLog = logger.Named("simplify")
	compileLog  = logger.Named("compile")
)

// Node is an element of an expression tree.
//
// Nodes are immutable once built and may be evaluated from many goroutines
// at once. Each Eval method takes a key whose kind selects the indexing
// domain: types.NoKey, types.IndexKey or types.TimeKey. Four output types
// times three keyings give the twelve evaluation entry points.
type Node interface {
	// Type is the static result type. It never changes for a given node.
	Type() types.ExpressionType
	// IsConstant reports whether evaluation is independent of the key and of
	// any previous-value lookups.
	IsConstant() bool
	// Simplify returns a semantically equivalent, possibly different node.
	// Simplify(Simplify(n)) is structurally equal to Simplify(n).
	Simplify() Node
	// Children returns zero, one or two operands.
	Children() []Node
	// ShouldPersist and ShouldDraw are consumer hints. Composite nodes OR
	// them across their children.
	ShouldPersist() bool
	ShouldDraw() bool

	EvalDouble(k types.Key) float64
	EvalInteger(k types.Key) int64
	EvalBoolean(k types.Key) bool
	EvalNullable(k types.Key) types.Bool3

	String() string
}

// PreviousValueProvider supplies the position lag steps before a key and
// evaluates expressions there. Crossing operators use it for lookback.
//
// Providers are compared by identity, so implementations must be comparable
// (normally pointers): two operands holding the same provider instance share
// one lookback.
type PreviousValueProvider interface {
	PreviousKey(current types.Key, lag int) types.Key
	EvalDouble(n Node, k types.Key) float64
}

// Constant is a literal leaf.
type Constant struct {
	value float64
	typ   types.ExpressionType
}

// Shared boolean constants. Boolean constants built through NewConstant are
// always one of these.
var (
	True    = &Constant{value: 1, typ: types.Boolean}
	False   = &Constant{value: 0, typ: types.Boolean}
	Unknown = &Constant{value: math.NaN(), typ: types.BooleanNullable}
)

// NewConstant returns a literal of the given type. Boolean values are
// canonicalised: any known boolean becomes True or False, NaN becomes Unknown.
func NewConstant(value float64, typ types.ExpressionType) *Constant {
	switch typ {
	case types.Boolean, types.BooleanNullable:
		return BoolConstant(cast.DoubleToBool3(value))
	case types.Integer:
		return &Constant{value: math.Trunc(value), typ: typ}
	case types.Double:
		return &Constant{value: value, typ: typ}
	default:
		panic(unknownArgument("expression type", typ))
	}
}

// NewDouble returns a Double literal.
func NewDouble(v float64) *Constant { return &Constant{value: v, typ: types.Double} }

// NewInteger returns an Integer literal.
func NewInteger(v int64) *Constant { return &Constant{value: float64(v), typ: types.Integer} }

// BoolConstant maps a tri-state to True, False or Unknown.
func BoolConstant(b types.Bool3) *Constant {
	switch b {
	case types.True:
		return True
	case types.False:
		return False
	default:
		return Unknown
	}
}

// Value returns the literal as a double.
func (c *Constant) Value() float64 { return c.value }

func (c *Constant) Type() types.ExpressionType { return c.typ }

func (c *Constant) IsConstant() bool { return true }

func (c *Constant) Simplify() Node { return c }

func (c *Constant) Children() []Node { return nil }

func (c *Constant) ShouldPersist() bool { return false }

func (c *Constant) ShouldDraw() bool { return false }

func (c *Constant) EvalDouble(types.Key) float64 { return c.value }

func (c *Constant) EvalInteger(types.Key) int64 {
	if c.typ.IsBoolean() {
		return cast.Bool3ToInteger(cast.DoubleToBool3(c.value))
	}
	return cast.DoubleToInteger(c.value)
}

func (c *Constant) EvalBoolean(types.Key) bool { return cast.DoubleToBool(c.value) }

func (c *Constant) EvalNullable(types.Key) types.Bool3 { return cast.DoubleToBool3(c.value) }

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

func anyPersist(children ...Node) bool {
	for _, c := range children {
		if c.ShouldPersist() {
			return true
		}
	}
	return false
}

func anyDraw(children ...Node) bool {
	for _, c := range children {
		if c.ShouldDraw() {
			return true
		}
	}
	return false
}

// fold evaluates a node whose operands are all constant and returns the
// literal of its result type.
func fold(n Node) Node {
	var c *Constant
	switch t := n.Type(); t {
	case types.Boolean, types.BooleanNullable:
		// a comparison with a missing operand folds to Unknown
		c = BoolConstant(n.EvalNullable(types.NoKey))
	case types.Integer:
		// integer results with no int64 value (x % 0, overflow) stay doubles
		v := n.EvalDouble(types.NoKey)
		if i, ok := cast.IntegerOf(v); ok && v == math.Trunc(v) {
			c = NewInteger(i)
		} else {
			c = NewDouble(v)
		}
	case types.Double:
		c = NewDouble(n.EvalDouble(types.NoKey))
	default:
		panic(unknownArgument("expression type", t))
	}
	simplifyLog.Debug("fold %s => %s", n, c)
	return c
}
