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

package condition

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/logger"
	"github.com/rulego/signalexpr/types"
)

var log = logger.Named("condition")

// ErrUnknownIdentifier is returned for names the environment cannot resolve.
var ErrUnknownIdentifier = errors.New("unknown identifier")

// Env resolves the identifiers of a condition to leaf nodes and the
// previous-value provider they are read along.
type Env interface {
	Lookup(name string) (expr.Node, expr.PreviousValueProvider, bool)
}

// Var is one entry of a Vars environment.
type Var struct {
	Node     expr.Node
	Provider expr.PreviousValueProvider
}

// Vars is an Env backed by a map.
type Vars map[string]Var

func (v Vars) Lookup(name string) (expr.Node, expr.PreviousValueProvider, bool) {
	e, ok := v[name]
	if !ok {
		return nil, nil, false
	}
	return e.Node, e.Provider, true
}

// Envs resolves a name through each environment in turn.
type Envs []Env

func (e Envs) Lookup(name string) (expr.Node, expr.PreviousValueProvider, bool) {
	for _, env := range e {
		if env == nil {
			continue
		}
		if n, p, ok := env.Lookup(name); ok {
			return n, p, true
		}
	}
	return nil, nil, false
}

var binaryOperators = map[string]expr.Operator{
	"+":   expr.Add,
	"-":   expr.Subtract,
	"*":   expr.Multiply,
	"/":   expr.Divide,
	"%":   expr.Modulo,
	"^":   expr.Power,
	"**":  expr.Power,
	"<":   expr.LessThan,
	"<=":  expr.LessThanOrEqual,
	"==":  expr.Equal,
	">=":  expr.GreaterThanOrEqual,
	">":   expr.GreaterThan,
	"!=":  expr.NotEqual,
	"and": expr.And,
	"&&":  expr.And,
	"or":  expr.Or,
	"||":  expr.Or,
}

var functions = map[string]expr.Operator{
	"xor":          expr.Xor,
	"crossesAbove": expr.CrossesAbove,
	"crossesBelow": expr.CrossesBelow,
}

// Parse turns condition text into an expression tree. Identifiers resolve
// through env, which may be nil for literal-only text. The tree is returned
// as built; callers simplify it.
func Parse(text string, env Env) (expr.Node, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	c := &converter{env: env}
	n, _, err := c.convert(tree.Node)
	if err != nil {
		return nil, err
	}
	log.Debug("parsed %q as %s", text, n)
	return n, nil
}

// MustParse is Parse for conditions known to be valid.
func MustParse(text string, env Env) expr.Node {
	n, err := Parse(text, env)
	if err != nil {
		panic(err)
	}
	return n
}

type converter struct {
	env Env
}

// convert returns the node for an AST node together with the provider of the
// first series found in it, nil when it reads no series.
func (c *converter) convert(node ast.Node) (expr.Node, expr.PreviousValueProvider, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return expr.NewInteger(int64(n.Value)), nil, nil
	case *ast.FloatNode:
		return expr.NewDouble(n.Value), nil, nil
	case *ast.BoolNode:
		return expr.BoolConstant(types.Of(n.Value)), nil, nil
	case *ast.NilNode:
		return expr.Unknown, nil, nil
	case *ast.IdentifierNode:
		return c.identifier(n.Value)
	case *ast.UnaryNode:
		return c.unary(n)
	case *ast.BinaryNode:
		return c.binary(n)
	case *ast.CallNode:
		return c.call(n)
	default:
		return nil, nil, fmt.Errorf("unsupported expression %s", node.String())
	}
}

func (c *converter) identifier(name string) (expr.Node, expr.PreviousValueProvider, error) {
	if name == "null" {
		return expr.Unknown, nil, nil
	}
	if c.env != nil {
		if n, p, ok := c.env.Lookup(name); ok {
			return n, p, nil
		}
	}
	return nil, nil, fmt.Errorf("%w %s", ErrUnknownIdentifier, name)
}

func (c *converter) unary(n *ast.UnaryNode) (expr.Node, expr.PreviousValueProvider, error) {
	operand, p, err := c.convert(n.Node)
	if err != nil {
		return nil, nil, err
	}
	switch n.Operator {
	case "not", "!":
		node, err := expr.NewBuilder(expr.Not).SetRight(operand).Build()
		return node, p, err
	case "+":
		return operand, p, nil
	case "-":
		if k, ok := operand.(*expr.Constant); ok && !k.Type().IsBoolean() {
			return expr.NewConstant(-k.Value(), k.Type()), nil, nil
		}
		node, err := expr.NewBuilder(expr.Subtract).SetLeft(expr.NewInteger(0)).SetRight(operand).Build()
		return node, p, err
	default:
		return nil, nil, fmt.Errorf("unsupported unary operator %s", n.Operator)
	}
}

func (c *converter) binary(n *ast.BinaryNode) (expr.Node, expr.PreviousValueProvider, error) {
	op, ok := binaryOperators[n.Operator]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported operator %s", n.Operator)
	}
	left, lp, err := c.convert(n.Left)
	if err != nil {
		return nil, nil, err
	}
	right, rp, err := c.convert(n.Right)
	if err != nil {
		return nil, nil, err
	}
	node, err := expr.NewBuilder(op).SetLeft(left).SetRight(right).Build()
	return node, first(lp, rp), err
}

func (c *converter) call(n *ast.CallNode) (expr.Node, expr.PreviousValueProvider, error) {
	callee, ok := n.Callee.(*ast.IdentifierNode)
	if !ok {
		return nil, nil, fmt.Errorf("unsupported call %s", n.String())
	}
	op, ok := functions[callee.Value]
	if !ok {
		return nil, nil, fmt.Errorf("unknown function %s", callee.Value)
	}
	if len(n.Arguments) != 2 {
		return nil, nil, fmt.Errorf("%s takes 2 arguments, got %d", callee.Value, len(n.Arguments))
	}
	left, lp, err := c.convert(n.Arguments[0])
	if err != nil {
		return nil, nil, err
	}
	right, rp, err := c.convert(n.Arguments[1])
	if err != nil {
		return nil, nil, err
	}
	b := expr.NewBuilder(op).SetLeft(left).SetRight(right)
	if op.IsCrossing() {
		// a constant threshold has no history of its own and steps back
		// along the other operand's bars
		switch {
		case lp == nil && rp == nil:
			return nil, nil, fmt.Errorf("%s: an operand must read a series", callee.Value)
		case lp == nil:
			lp = rp
		case rp == nil:
			rp = lp
		}
		b.SetProviders(lp, rp)
	}
	node, err := b.Build()
	return node, first(lp, rp), err
}

func first(a, b expr.PreviousValueProvider) expr.PreviousValueProvider {
	if a != nil {
		return a
	}
	return b
}
