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
Package expr is the typed expression tree of signalexpr: the operator table,
the node families, the algebraic simplifier and the specialized-evaluator
factory.

# Core Features

• Operator Table - a static table of 18 operators with precedence, display text, result types, narrowing rules and eight evaluation slots each
• Node Families - Constant, Binary (generic and integer-narrowed), Logical and Negation (three-valued and two-valued), Crossing (shared and dual provider)
• Simplifier - constant folding, ADD/MULTIPLY re-association, logical short-circuits and type narrowing
• Three-valued Logic - SQL-like AND, OR, XOR and NOT over True, False and Unknown
• Crossing Operators - one-step lookback through a PreviousValueProvider
• Compiled Evaluators - closures bound once per output type, with no per-call dispatch

# Node Families

	Constant  - literal leaf; booleans are the True, False and Unknown singletons
	Binary    - arithmetic and comparison through the operator table
	Logical   - AND, OR, XOR
	Negation  - NOT
	Crossing  - CROSSES_ABOVE, CROSSES_BELOW

Leaf nodes reading data (series fields) live outside this package and only
need to implement Node.

# Usage Examples

Build and simplify a tree:

	x := series.NewField(close)
	n := expr.NewBinary(expr.Add, expr.NewInteger(2),
		expr.NewBinary(expr.Add, expr.NewInteger(3), x))
	fmt.Println(n.Simplify()) // 5 + close

Evaluate directly, for any keying:

	v := expr.DoubleAt(n, 10)
	b := n.EvalNullable(types.TimeKey(ts))

Compile once, evaluate many times:

	ev, err := expr.Compile[bool](n, types.KeyIndex)
	if err != nil {
		return err
	}
	for i := 0; i < close.Len(); i++ {
		if ev(types.IndexKey(i)) {
			...
		}
	}

# Three-valued Logic

	AND: False decides; otherwise the right operand is the result (Unknown and x = x)
	OR:  True decides; otherwise the right operand is the result (Unknown or x = x)
	XOR: Unknown if either operand is Unknown
	NOT: Unknown stays Unknown

EvalDouble maps True to 1, False to 0 and Unknown to NaN. The two-valued OR
maps False to -1.

# Errors

Contract violations panic with *UnsupportedOperationError (an evaluation
shape the operator or node cannot provide, e.g. AND through the operator
table or an unkeyed crossing) or *UnknownArgumentError (an enum value no
switch anticipated). Compile, CompileTrueReason, CompileFalseReason and
Builder.Build recover these and return them as errors.

# Concurrency

Nodes are immutable after construction. Any number of goroutines may
evaluate, simplify or compile the same tree at once.
*/
package expr
