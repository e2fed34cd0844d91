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
Package signalexpr evaluates typed signal conditions over series of bars.

A condition such as

	crossesAbove(fast, slow) and volume > 1000

is parsed into an expression tree, simplified (constant folding, type
narrowing, short-circuit rewrites) and compiled into closures that evaluate
it at a bar index or timestamp. Results are two-valued or three-valued
(true, false, unknown) and come with a short explanation of the deciding
operand.

# Getting Started

	frame, err := series.LoadFile("bars.yaml")
	if err != nil {
		panic(err)
	}
	engine := signalexpr.New(signalexpr.WithFrame(frame))
	sig, err := engine.Compile("crossesAbove(fast, slow) and volume > 1000")
	if err != nil {
		panic(err)
	}
	for i := 0; i < frame.Len(); i++ {
		k := types.IndexKey(i)
		fmt.Println(i, sig.Nullable(k), sig.Explain(k))
	}

	// or as a table
	engine.PrintTable(sig)

# Packages

• types - expression type lattice, tri-state booleans, evaluation keys
• expr - operator table, nodes, simplifier, evaluator factory, printing
• series - timelines, series and frames, the previous-value providers
• condition - condition text to expression trees
• logger - levelled logging with component prefixes
• utils/table - tabular output

# Configuration

Engines take functional options:

	engine := signalexpr.New(
		signalexpr.WithFrame(frame),
		signalexpr.WithKeyKind(types.KeyTime),
		signalexpr.WithLogLevel(logger.DEBUG),
	)

Unkeyed engines (types.KeyNone) reject crossings, which need a previous bar.
*/
package signalexpr
