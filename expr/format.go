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
	"strconv"
	"strings"

	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

// Format prints n with the fewest parentheses operator precedence allows.
func Format(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// FormatValue prints a double the way constants print.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (c *Constant) String() string {
	switch c.typ {
	case types.Boolean, types.BooleanNullable:
		switch cast.DoubleToBool3(c.value) {
		case types.True:
			return "true"
		case types.False:
			return "false"
		default:
			return "null"
		}
	case types.Integer:
		return strconv.FormatInt(int64(c.value), 10)
	default:
		return FormatValue(c.value)
	}
}

func (b *Binary) String() string {
	return infix(b.op, b.left, b.right)
}

func (n *Logical) String() string {
	return infix(n.op, n.left, n.right)
}

func (c *Crossing) String() string {
	return infix(c.op, c.left, c.right)
}

func (n *Negation) String() string {
	var sb strings.Builder
	sb.WriteString(Not.Text())
	sb.WriteByte(' ')
	writeOperand(&sb, n.operand, precedenceOf(n.operand) < precedenceNot)
	return sb.String()
}

func infix(op Operator, left, right Node) string {
	p := op.Precedence()
	lp, rp := precedenceOf(left), precedenceOf(right)

	var sb strings.Builder
	// POWER groups to the right, everything else to the left
	if op == Power {
		writeOperand(&sb, left, lp <= p)
	} else {
		writeOperand(&sb, left, lp < p)
	}
	sb.WriteByte(' ')
	sb.WriteString(op.Text())
	sb.WriteByte(' ')
	if op == Power {
		writeOperand(&sb, right, rp < p)
	} else {
		writeOperand(&sb, right, rp <= p)
	}
	return sb.String()
}

func writeOperand(sb *strings.Builder, n Node, paren bool) {
	if paren {
		sb.WriteByte('(')
	}
	sb.WriteString(Format(n))
	if paren {
		sb.WriteByte(')')
	}
}

func precedenceOf(n Node) int {
	switch t := n.(type) {
	case *Binary:
		return t.op.Precedence()
	case *Logical:
		return t.op.Precedence()
	case *Crossing:
		return t.op.Precedence()
	case *Negation:
		return precedenceNot
	case *Constant:
		// a leading minus sign reads like a unary operator
		if !t.typ.IsBoolean() && t.value < 0 {
			return precedenceAdd
		}
	}
	return precedenceAtom
}
