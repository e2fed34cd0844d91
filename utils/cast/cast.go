/*
 * Copyright 2024 The RuleGo Authors.
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

// Package cast holds the numeric conversions shared by the evaluators:
// boolean and tri-state to number mappings, checked integer casts and
// coercion of loosely typed literal values.
package cast

import (
	"fmt"
	"math"
	"time"

	spfcast "github.com/spf13/cast"

	"github.com/rulego/signalexpr/types"
)

// ArithmeticError is raised (as a panic value) by checked integer
// conversions and integer arithmetic that has no integer result.
type ArithmeticError struct {
	Op    string
	Value float64
}

func (e *ArithmeticError) Error() string {
	if e.Op == "modulo" {
		return "arithmetic error: integer modulo by zero"
	}
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("arithmetic error: %s of NaN", e.Op)
	}
	return fmt.Sprintf("arithmetic error: %s overflows int64 (%g)", e.Op, e.Value)
}

// BoolToDouble maps true to 1 and false to 0.
func BoolToDouble(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// BoolToInteger maps true to 1 and false to 0.
func BoolToInteger(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Bool3ToDouble maps True to 1, False to 0 and Unknown to NaN.
func Bool3ToDouble(b types.Bool3) float64 {
	switch b {
	case types.True:
		return 1
	case types.False:
		return 0
	default:
		return math.NaN()
	}
}

// Bool3ToInteger maps True to 1 and everything else to 0; integers have no
// Unknown.
func Bool3ToInteger(b types.Bool3) int64 {
	if b == types.True {
		return 1
	}
	return 0
}

// DoubleToBool3 maps NaN to Unknown, zero to False and anything else to True.
func DoubleToBool3(f float64) types.Bool3 {
	if math.IsNaN(f) {
		return types.Unknown
	}
	return types.Of(f != 0)
}

// DoubleToBool is DoubleToBool3 with Unknown read as false.
func DoubleToBool(f float64) bool {
	return !math.IsNaN(f) && f != 0
}

// IntegerToBool3 maps zero to False and anything else to True.
func IntegerToBool3(i int64) types.Bool3 {
	return types.Of(i != 0)
}

// DoubleToInteger truncates f toward zero. It panics with *ArithmeticError
// when f is NaN or outside the int64 range.
func DoubleToInteger(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		panic(&ArithmeticError{Op: "integer cast", Value: f})
	}
	return int64(f)
}

// IntegerOf returns the integer value of f and whether it has one: NaN,
// infinities and values outside the int64 range have none. Fractions are
// truncated.
func IntegerOf(f float64) (int64, bool) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// AddInteger is a+b. It panics with *ArithmeticError on overflow.
func AddInteger(a, b int64) int64 {
	c := a + b
	if (c > a) != (b > 0) {
		panic(&ArithmeticError{Op: "integer add", Value: float64(a) + float64(b)})
	}
	return c
}

// SubtractInteger is a-b. It panics with *ArithmeticError on overflow.
func SubtractInteger(a, b int64) int64 {
	c := a - b
	if (c < a) != (b > 0) {
		panic(&ArithmeticError{Op: "integer subtract", Value: float64(a) - float64(b)})
	}
	return c
}

// MultiplyInteger is a*b. It panics with *ArithmeticError on overflow.
func MultiplyInteger(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(&ArithmeticError{Op: "integer multiply", Value: float64(a) * float64(b)})
	}
	return c
}

// IntegerMod is a%b. It panics with *ArithmeticError when b is zero.
func IntegerMod(a, b int64) int64 {
	if b == 0 {
		panic(&ArithmeticError{Op: "modulo"})
	}
	return a % b
}

// ToDouble coerces a loosely typed value (literal, YAML scalar, JSON number)
// to a double. Booleans map to 1 and 0, nil maps to NaN.
func ToDouble(x any) (float64, error) {
	switch v := x.(type) {
	case nil:
		return math.NaN(), nil
	case bool:
		return BoolToDouble(v), nil
	}
	return spfcast.ToFloat64E(x)
}

// ToDoubles coerces every element of a slice with ToDouble.
func ToDoubles(xs []any) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		f, err := ToDouble(x)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// ToTime coerces a timestamp literal: a time.Time, an RFC3339 or other
// common layout string, or Unix seconds.
func ToTime(x any) (time.Time, error) {
	return spfcast.ToTimeE(x)
}
