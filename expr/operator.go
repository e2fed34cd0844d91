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

	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

// Operator identifies one of the closed set of binary and unary operators.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Modulo
	Power
	LessThan
	LessThanOrEqual
	Equal
	GreaterThanOrEqual
	GreaterThan
	NotEqual
	And
	Or
	Xor
	Not
	CrossesAbove
	CrossesBelow

	operatorCount
)

// Operators lists every operator in declaration order.
var Operators = func() []Operator {
	ops := make([]Operator, 0, operatorCount)
	for op := Add; op < operatorCount; op++ {
		ops = append(ops, op)
	}
	return ops
}()

// Node families named by operators that the table cannot evaluate directly.
const (
	logicalNodeName  = "Logical node"
	notNodeName      = "Negation node"
	crossingNodeName = "Crossing node"
)

// evalFuncs holds the eight (output type x operand type) slots of an
// operator. A nil slot means the operator needs a dedicated node type.
type evalFuncs struct {
	doubleFromDouble    func(a, b float64) float64
	doubleFromInteger   func(a, b int64) float64
	integerFromDouble   func(a, b float64) int64
	integerFromInteger  func(a, b int64) int64
	booleanFromDouble   func(a, b float64) bool
	booleanFromInteger  func(a, b int64) bool
	nullableFromDouble  func(a, b float64) types.Bool3
	nullableFromInteger func(a, b int64) types.Bool3
}

type operatorInfo struct {
	name                 string
	text                 string
	precedence           int
	returnType           types.ExpressionType
	simplifiedReturnType types.ExpressionType
	simplifyType         func(l, r types.ExpressionType) (types.ExpressionType, bool)
	dedicated            string
	fn                   evalFuncs
}

// Precedence levels, higher binds tighter.
const (
	precedenceOr       = 1
	precedenceXor      = 2
	precedenceAnd      = 3
	precedenceNot      = 4
	precedenceEquality = 5
	precedenceCompare  = 6
	precedenceAdd      = 7
	precedenceMultiply = 8
	precedencePower    = 9
	precedenceAtom     = 100
)

var operatorTable = [operatorCount]operatorInfo{
	Add: {
		name: "ADD", text: "+", precedence: precedenceAdd,
		returnType: types.Double, simplifiedReturnType: types.Integer,
		simplifyType: integerNarrowing,
		fn: arithmetic(func(a, b float64) float64 { return a + b },
			cast.AddInteger),
	},
	Subtract: {
		name: "SUBTRACT", text: "-", precedence: precedenceAdd,
		returnType: types.Double, simplifiedReturnType: types.Integer,
		simplifyType: integerNarrowing,
		fn: arithmetic(func(a, b float64) float64 { return a - b },
			cast.SubtractInteger),
	},
	Multiply: {
		name: "MULTIPLY", text: "*", precedence: precedenceMultiply,
		returnType: types.Double, simplifiedReturnType: types.Integer,
		simplifyType: integerNarrowing,
		fn: arithmetic(func(a, b float64) float64 { return a * b },
			cast.MultiplyInteger),
	},
	Divide: {
		name: "DIVIDE", text: "/", precedence: precedenceMultiply,
		returnType: types.Double, simplifiedReturnType: types.Double,
		simplifyType: noNarrowing,
		fn: arithmetic(func(a, b float64) float64 { return a / b },
			func(a, b int64) int64 { return cast.DoubleToInteger(float64(a) / float64(b)) }),
	},
	Modulo: {
		name: "MODULO", text: "%", precedence: precedenceMultiply,
		returnType: types.Double, simplifiedReturnType: types.Integer,
		simplifyType: integerNarrowing,
		fn:           arithmetic(math.Mod, cast.IntegerMod),
	},
	Power: {
		name: "POWER", text: "^", precedence: precedencePower,
		returnType: types.Double, simplifiedReturnType: types.Double,
		simplifyType: noNarrowing,
		fn: arithmetic(math.Pow,
			func(a, b int64) int64 { return cast.DoubleToInteger(math.Pow(float64(a), float64(b))) }),
	},
	LessThan: {
		name: "LT", text: "<", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.LessThan,
			func(a, b int64) bool { return a < b }),
	},
	LessThanOrEqual: {
		name: "LT_EQ", text: "<=", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.LessThanOrEqual,
			func(a, b int64) bool { return a <= b }),
	},
	Equal: {
		name: "EQ", text: "==", precedence: precedenceEquality,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.Equal,
			func(a, b int64) bool { return a == b }),
	},
	GreaterThanOrEqual: {
		name: "GT_EQ", text: ">=", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.GreaterThanOrEqual,
			func(a, b int64) bool { return a >= b }),
	},
	GreaterThan: {
		name: "GT", text: ">", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.GreaterThan,
			func(a, b int64) bool { return a > b }),
	},
	NotEqual: {
		name: "NEQ", text: "!=", precedence: precedenceEquality,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing,
		fn: comparison(cast.NotEqual,
			func(a, b int64) bool { return a != b }),
	},
	And: {
		name: "AND", text: "and", precedence: precedenceAnd,
		returnType: types.BooleanNullable, simplifiedReturnType: types.Boolean,
		simplifyType: booleanNarrowing, dedicated: logicalNodeName,
	},
	Or: {
		name: "OR", text: "or", precedence: precedenceOr,
		returnType: types.BooleanNullable, simplifiedReturnType: types.Boolean,
		simplifyType: booleanNarrowing, dedicated: logicalNodeName,
	},
	Xor: {
		name: "XOR", text: "xor", precedence: precedenceXor,
		returnType: types.BooleanNullable, simplifiedReturnType: types.Boolean,
		simplifyType: booleanNarrowing, dedicated: logicalNodeName,
	},
	Not: {
		name: "NOT", text: "not", precedence: precedenceNot,
		returnType: types.BooleanNullable, simplifiedReturnType: types.Boolean,
		simplifyType: notNarrowing, dedicated: notNodeName,
	},
	CrossesAbove: {
		name: "CROSSES_ABOVE", text: "crosses above", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing, dedicated: crossingNodeName,
	},
	CrossesBelow: {
		name: "CROSSES_BELOW", text: "crosses below", precedence: precedenceCompare,
		returnType: types.Boolean, simplifiedReturnType: types.Boolean,
		simplifyType: integerNarrowing, dedicated: crossingNodeName,
	},
}

// arithmetic derives all slots from a double and an integer implementation.
// Every non-integer output goes through the double function so a narrowed
// node agrees with the generic one, NaN included.
func arithmetic(d func(a, b float64) float64, i func(a, b int64) int64) evalFuncs {
	fromInts := func(a, b int64) float64 { return d(float64(a), float64(b)) }
	return evalFuncs{
		doubleFromDouble:    d,
		doubleFromInteger:   fromInts,
		integerFromDouble:   func(a, b float64) int64 { return cast.DoubleToInteger(d(a, b)) },
		integerFromInteger:  i,
		booleanFromDouble:   func(a, b float64) bool { return cast.DoubleToBool(d(a, b)) },
		booleanFromInteger:  func(a, b int64) bool { return cast.DoubleToBool(fromInts(a, b)) },
		nullableFromDouble:  func(a, b float64) types.Bool3 { return cast.DoubleToBool3(d(a, b)) },
		nullableFromInteger: func(a, b int64) types.Bool3 { return cast.DoubleToBool3(fromInts(a, b)) },
	}
}

// comparison derives the double slots from a tri-state comparison and the
// integer slots from a two-valued one. A NaN operand reads as false, Unknown
// and NaN.
func comparison(tri func(a, b float64) types.Bool3, i func(a, b int64) bool) evalFuncs {
	return evalFuncs{
		doubleFromDouble:    func(a, b float64) float64 { return cast.Bool3ToDouble(tri(a, b)) },
		doubleFromInteger:   func(a, b int64) float64 { return cast.BoolToDouble(i(a, b)) },
		integerFromDouble:   func(a, b float64) int64 { return cast.Bool3ToInteger(tri(a, b)) },
		integerFromInteger:  func(a, b int64) int64 { return cast.BoolToInteger(i(a, b)) },
		booleanFromDouble:   func(a, b float64) bool { return tri(a, b) == types.True },
		booleanFromInteger:  i,
		nullableFromDouble:  tri,
		nullableFromInteger: func(a, b int64) types.Bool3 { return types.Of(i(a, b)) },
	}
}

func mustKnowType(t types.ExpressionType) {
	if !t.Valid() {
		panic(unknownArgument("expression type", t))
	}
}

func integerNarrowing(l, r types.ExpressionType) (types.ExpressionType, bool) {
	mustKnowType(l)
	mustKnowType(r)
	if l.LessOrEqual(types.Integer) && r.LessOrEqual(types.Integer) {
		return types.Integer, true
	}
	return 0, false
}

func noNarrowing(l, r types.ExpressionType) (types.ExpressionType, bool) {
	mustKnowType(l)
	mustKnowType(r)
	return 0, false
}

func booleanNarrowing(l, r types.ExpressionType) (types.ExpressionType, bool) {
	mustKnowType(l)
	mustKnowType(r)
	if l.LessOrEqual(types.Boolean) && r.LessOrEqual(types.Boolean) {
		return types.Boolean, true
	}
	return 0, false
}

// notNarrowing only looks at the operand, which NOT carries on the right.
func notNarrowing(_, r types.ExpressionType) (types.ExpressionType, bool) {
	mustKnowType(r)
	if r.LessOrEqual(types.Boolean) {
		return types.Boolean, true
	}
	return 0, false
}

func (op Operator) info() *operatorInfo {
	if op < 0 || op >= operatorCount {
		panic(unknownArgument("operator", int(op)))
	}
	return &operatorTable[op]
}

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	return op >= 0 && op < operatorCount
}

// String returns the operator name, e.g. "CROSSES_ABOVE".
func (op Operator) String() string {
	if !op.Valid() {
		return "Operator(?)"
	}
	return op.info().name
}

// Text returns the display text, e.g. "+" or "crosses above".
func (op Operator) Text() string { return op.info().text }

func (op Operator) Precedence() int { return op.info().precedence }

// ReturnType is the result type of the generic form.
func (op Operator) ReturnType() types.ExpressionType { return op.info().returnType }

// SimplifiedReturnType is the result type once narrowing has been applied.
func (op Operator) SimplifiedReturnType() types.ExpressionType {
	return op.info().simplifiedReturnType
}

// SimplifyType returns the narrower common operand type for the given operand
// types, or false when no narrowing applies.
func (op Operator) SimplifyType(l, r types.ExpressionType) (types.ExpressionType, bool) {
	return op.info().simplifyType(l, r)
}

// IsArithmetic reports ADD, SUBTRACT, MULTIPLY, DIVIDE, MODULO and POWER.
func (op Operator) IsArithmetic() bool { return op >= Add && op <= Power }

// IsComparison reports LT, LT_EQ, EQ, GT_EQ, GT and NEQ.
func (op Operator) IsComparison() bool { return op >= LessThan && op <= NotEqual }

// IsLogical reports AND, OR and XOR.
func (op Operator) IsLogical() bool { return op == And || op == Or || op == Xor }

// IsCrossing reports CROSSES_ABOVE and CROSSES_BELOW.
func (op Operator) IsCrossing() bool { return op == CrossesAbove || op == CrossesBelow }

// IsAssociative reports the commutative and associative operators that the
// simplifier reorders.
func (op Operator) IsAssociative() bool { return op == Add || op == Multiply }

// Direct reports whether the table evaluates op without a dedicated node.
func (op Operator) Direct() bool { return op.info().dedicated == "" }

func (op Operator) unsupported(shape string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Operator: op.String(), Shape: shape, Required: op.info().dedicated}
}

// The eight table slots. Each panics with *UnsupportedOperationError when
// the operator needs a dedicated node type.

func (op Operator) DoubleFromDouble(a, b float64) float64 {
	f := op.info().fn.doubleFromDouble
	if f == nil {
		panic(op.unsupported("double from double"))
	}
	return f(a, b)
}

func (op Operator) DoubleFromInteger(a, b int64) float64 {
	f := op.info().fn.doubleFromInteger
	if f == nil {
		panic(op.unsupported("double from integer"))
	}
	return f(a, b)
}

func (op Operator) IntegerFromDouble(a, b float64) int64 {
	f := op.info().fn.integerFromDouble
	if f == nil {
		panic(op.unsupported("integer from double"))
	}
	return f(a, b)
}

func (op Operator) IntegerFromInteger(a, b int64) int64 {
	f := op.info().fn.integerFromInteger
	if f == nil {
		panic(op.unsupported("integer from integer"))
	}
	return f(a, b)
}

func (op Operator) BooleanFromDouble(a, b float64) bool {
	f := op.info().fn.booleanFromDouble
	if f == nil {
		panic(op.unsupported("boolean from double"))
	}
	return f(a, b)
}

func (op Operator) BooleanFromInteger(a, b int64) bool {
	f := op.info().fn.booleanFromInteger
	if f == nil {
		panic(op.unsupported("boolean from integer"))
	}
	return f(a, b)
}

func (op Operator) NullableFromDouble(a, b float64) types.Bool3 {
	f := op.info().fn.nullableFromDouble
	if f == nil {
		panic(op.unsupported("nullable boolean from double"))
	}
	return f(a, b)
}

func (op Operator) NullableFromInteger(a, b int64) types.Bool3 {
	f := op.info().fn.nullableFromInteger
	if f == nil {
		panic(op.unsupported("nullable boolean from integer"))
	}
	return f(a, b)
}
