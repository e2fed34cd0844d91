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
	"errors"
	"fmt"
)

var ErrMissingOperand = errors.New("missing operand")

// Builder assembles an operator node. Operands may be set and replaced freely
// until Build, which returns an immutable node; later rewrites go through the
// node's WithLeft.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	op            Operator
	left          Node
	right         Node
	leftProvider  PreviousValueProvider
	rightProvider PreviousValueProvider
	parallel      bool
}

// NewBuilder starts a node for op. NOT takes its operand on the right.
func NewBuilder(op Operator) *Builder {
	return &Builder{op: op}
}

func (b *Builder) SetLeft(n Node) *Builder {
	b.left = n
	return b
}

func (b *Builder) SetRight(n Node) *Builder {
	b.right = n
	return b
}

// SetProviders sets the previous-value providers of a crossing. Passing the
// same provider twice builds the shared-provider form.
func (b *Builder) SetProviders(left, right PreviousValueProvider) *Builder {
	b.leftProvider = left
	b.rightProvider = right
	return b
}

// Parallel makes AND and OR evaluate both operands on every call.
func (b *Builder) Parallel() *Builder {
	b.parallel = true
	return b
}

// Build returns the node. Contract errors such as an unknown operator are
// returned rather than panicked.
func (b *Builder) Build() (n Node, err error) {
	defer recoverContractError(&err)
	if !b.op.Valid() {
		return nil, unknownArgument("operator", int(b.op))
	}
	if b.right == nil || (b.op != Not && b.left == nil) {
		return nil, fmt.Errorf("%s: %w", b.op, ErrMissingOperand)
	}

	switch {
	case b.op == Not:
		return NewNot(b.right), nil
	case b.op.IsLogical():
		if b.parallel {
			return NewParallelLogical(b.op, b.left, b.right), nil
		}
		return NewLogical(b.op, b.left, b.right), nil
	case b.op.IsCrossing():
		if b.leftProvider != nil && b.leftProvider == b.rightProvider {
			return NewSharedCrossing(b.op, b.left, b.right, b.leftProvider), nil
		}
		return NewCrossing(b.op, b.left, b.leftProvider, b.right, b.rightProvider), nil
	default:
		return NewBinary(b.op, b.left, b.right), nil
	}
}

// MustBuild is Build for trees known to be well formed, e.g. in tests.
func (b *Builder) MustBuild() Node {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}
