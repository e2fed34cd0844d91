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

/*
Package types provides the value-level vocabulary shared by every signalexpr package.

# Type Lattice

Expression results fall into four categories:

	Boolean         - two-valued, never Unknown
	BooleanNullable - three-valued (True, False, Unknown)
	Integer         - int64
	Double          - float64, NaN plays the role of Unknown

The numeric chain Boolean < Integer < Double drives widening. BooleanNullable
is the nullable counterpart of Boolean: it is below Double but not comparable
with Integer.

	types.Boolean.LessOrEqual(types.Integer)          // true
	types.BooleanNullable.LessOrEqual(types.Integer)  // false
	types.Widen(types.BooleanNullable, types.Integer) // Double

# Three-valued Booleans

Bool3 carries True, False and Unknown. Its zero value is Unknown so an
uninitialised result never reads as a definite answer.

# Keys

Key is the position an expression is evaluated at:

	types.NoKey              // unkeyed
	types.IndexKey(42)       // bar index
	types.TimeKey(time.Now()) // timestamp

Keys are plain values; passing them never allocates.
*/
package types
