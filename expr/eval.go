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
	"time"

	"github.com/rulego/signalexpr/types"
)

// Spelled-out evaluation entry points: output type x keying.

func Double(n Node) float64                    { return n.EvalDouble(types.NoKey) }
func DoubleAt(n Node, i int) float64           { return n.EvalDouble(types.IndexKey(i)) }
func DoubleAtTime(n Node, t time.Time) float64 { return n.EvalDouble(types.TimeKey(t)) }

func Integer(n Node) int64                    { return n.EvalInteger(types.NoKey) }
func IntegerAt(n Node, i int) int64           { return n.EvalInteger(types.IndexKey(i)) }
func IntegerAtTime(n Node, t time.Time) int64 { return n.EvalInteger(types.TimeKey(t)) }

func Boolean(n Node) bool                    { return n.EvalBoolean(types.NoKey) }
func BooleanAt(n Node, i int) bool           { return n.EvalBoolean(types.IndexKey(i)) }
func BooleanAtTime(n Node, t time.Time) bool { return n.EvalBoolean(types.TimeKey(t)) }

func Nullable(n Node) types.Bool3                    { return n.EvalNullable(types.NoKey) }
func NullableAt(n Node, i int) types.Bool3           { return n.EvalNullable(types.IndexKey(i)) }
func NullableAtTime(n Node, t time.Time) types.Bool3 { return n.EvalNullable(types.TimeKey(t)) }
