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
Package condition turns condition text into expression trees.

Text is parsed with the expr-lang parser and the resulting AST is converted
node by node into the expr package's operator nodes. Identifiers resolve
through an Env, normally a series frame.

# Syntax

	numbers          1, 2.5
	literals         true, false, null (nil)
	arithmetic       + - * / % ^ **
	comparison       < <= == >= > !=
	logic            and &&, or ||, not !
	functions        xor(a, b), crossesAbove(a, b), crossesBelow(a, b)

Unary minus on a literal gives a negative literal; on anything else it is
written as 0 - operand.

# Crossings

The first series found in an operand of crossesAbove or crossesBelow
supplies that operand's previous-value provider, so fields of one frame cross
in the shared-provider form. An operand that reads no series, such as a
threshold in crossesAbove(close, 2), steps back along the other operand's
provider. At least one operand must read a series.

# Usage Examples

	frame, _ := series.LoadFile("bars.yaml")
	node, err := condition.Parse("crossesAbove(fast, slow) and volume > 1000", frame)
	if err != nil {
		log.Fatal(err)
	}
	node = node.Simplify()

Literal text needs no environment:

	node := condition.MustParse("2 ** 10 / 4", nil)
*/
package condition
