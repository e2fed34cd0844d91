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

package cast

import (
	"math"

	"github.com/rulego/signalexpr/types"
)

// Tri-valued comparisons: a NaN operand makes the result Unknown.

func LessThan(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a < b)
}

func LessThanOrEqual(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a <= b)
}

func Equal(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a == b)
}

func NotEqual(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a != b)
}

func GreaterThanOrEqual(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a >= b)
}

func GreaterThan(a, b float64) types.Bool3 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return types.Unknown
	}
	return types.Of(a > b)
}
