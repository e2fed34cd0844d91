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

package types

import "fmt"

// ExpressionType is the static result category of an expression node.
type ExpressionType int

const (
	// Boolean is a two-valued boolean that is never Unknown.
	Boolean ExpressionType = iota
	// BooleanNullable is a three-valued boolean (True, False, Unknown).
	BooleanNullable
	// Integer is a 64-bit signed integer.
	Integer
	// Double is an IEEE 754 double, the widest category.
	Double
)

// ExpressionTypes lists every lattice member in declaration order.
var ExpressionTypes = []ExpressionType{Boolean, BooleanNullable, Integer, Double}

// String returns the display name of the type
func (t ExpressionType) String() string {
	switch t {
	case Boolean:
		return "Boolean"
	case BooleanNullable:
		return "BooleanNullable"
	case Integer:
		return "Integer"
	case Double:
		return "Double"
	default:
		return fmt.Sprintf("ExpressionType(%d)", int(t))
	}
}

// Valid reports whether t is one of the four lattice members.
func (t ExpressionType) Valid() bool {
	return t >= Boolean && t <= Double
}

// IsNullable reports whether values of this type may be Unknown.
// Double is nullable too: NaN is its Unknown.
func (t ExpressionType) IsNullable() bool {
	return t == BooleanNullable || t == Double
}

// IsBoolean reports whether t is one of the boolean categories.
func (t ExpressionType) IsBoolean() bool {
	return t == Boolean || t == BooleanNullable
}

// Nullable returns the nullable counterpart of t.
// Boolean maps to BooleanNullable, everything else maps to itself.
func (t ExpressionType) Nullable() ExpressionType {
	if t == Boolean {
		return BooleanNullable
	}
	return t
}

// LessOrEqual is the partial order of the lattice.
//
// The numeric chain is Boolean < Integer < Double. BooleanNullable sits above
// Boolean and below Double but is not comparable with Integer, because an
// Unknown has no integer representation.
func (t ExpressionType) LessOrEqual(other ExpressionType) bool {
	if t == other {
		return true
	}
	switch t {
	case Boolean:
		return true
	case BooleanNullable:
		return other == Double
	case Integer:
		return other == Double
	default:
		return false
	}
}

// Widen returns the least upper bound of t and other.
func Widen(t, other ExpressionType) ExpressionType {
	switch {
	case t.LessOrEqual(other):
		return other
	case other.LessOrEqual(t):
		return t
	default:
		return Double
	}
}
