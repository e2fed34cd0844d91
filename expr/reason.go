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
	"fmt"

	"github.com/rulego/signalexpr/types"
)

// Reason explains an outcome at a key. An empty string means the node did
// not have that outcome there.
type Reason func(k types.Key) string

// CompileTrueReason compiles an explanation of why n is true at a key. For
// logical nodes the deciding operand's reason is reported, the left one
// first.
func CompileTrueReason(n Node, kind types.KeyKind) (r Reason, err error) {
	defer recoverContractError(&err)
	return newCompiler(kind).reason(n, true), nil
}

// CompileFalseReason is CompileTrueReason for a false outcome. Unknown is
// neither true nor false and has no reason.
func CompileFalseReason(n Node, kind types.KeyKind) (r Reason, err error) {
	defer recoverContractError(&err)
	return newCompiler(kind).reason(n, false), nil
}

func (c *compiler) reason(n Node, want bool) Reason {
	target := types.Of(want)
	switch t := n.(type) {
	case *Logical:
		self := c.truth(t)
		if t.op == Xor {
			lt, lf := c.reason(t.left, true), c.reason(t.left, false)
			rt, rf := c.reason(t.right, true), c.reason(t.right, false)
			return func(k types.Key) string {
				if self(k) != target {
					return ""
				}
				return firstReason(k, lt, lf, rt, rf)
			}
		}
		l, r := c.reason(t.left, want), c.reason(t.right, want)
		return func(k types.Key) string {
			if self(k) != target {
				return ""
			}
			return firstReason(k, l, r)
		}
	case *Negation:
		self := c.truth(t)
		inner := c.reason(t.operand, !want)
		return func(k types.Key) string {
			if self(k) != target {
				return ""
			}
			return inner(k)
		}
	case *Binary:
		if t.op.IsComparison() {
			// a missing operand leaves the comparison Unknown, with no reason
			self := c.nullable(t)
			l, r := c.double(t.left), c.double(t.right)
			text := t.String()
			return func(k types.Key) string {
				if self(k) != target {
					return ""
				}
				return fmt.Sprintf("%s [%s %s %s]", text, FormatValue(l(k)), t.op.Text(), FormatValue(r(k)))
			}
		}
	}
	self := c.truth(n)
	text := fmt.Sprintf("%s is %t", n, want)
	return func(k types.Key) string {
		if self(k) != target {
			return ""
		}
		return text
	}
}

func firstReason(k types.Key, reasons ...Reason) string {
	for _, r := range reasons {
		if s := r(k); s != "" {
			return s
		}
	}
	return ""
}
