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

// UnsupportedOperationError reports an evaluation shape that the called node
// or operator cannot provide. It means the tree was built wrongly: the
// operation belongs to a dedicated node type.
//
// Evaluation methods panic with it; Compile and the builders return it.
type UnsupportedOperationError struct {
	// Operator is the operator or node being evaluated, e.g. "AND".
	Operator string
	// Shape is the evaluation that was attempted, e.g. "double from double".
	Shape string
	// Required names the node type that implements the operation.
	Required string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Required == "" {
		return fmt.Sprintf("unsupported operation: %s does not support %s", e.Operator, e.Shape)
	}
	return fmt.Sprintf("unsupported operation: %s does not support %s, use %s", e.Operator, e.Shape, e.Required)
}

// UnknownArgumentError reports an enum value (operator, expression type, key
// kind) that a switch did not anticipate.
type UnknownArgumentError struct {
	Kind  string
	Value interface{}
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown %s: %v", e.Kind, e.Value)
}

// IsUnsupportedOperation reports whether err is or wraps an
// UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	var target *UnsupportedOperationError
	return errors.As(err, &target)
}

// IsUnknownArgument reports whether err is or wraps an UnknownArgumentError.
func IsUnknownArgument(err error) bool {
	var target *UnknownArgumentError
	return errors.As(err, &target)
}

func unknownArgument(kind string, value interface{}) *UnknownArgumentError {
	return &UnknownArgumentError{Kind: kind, Value: value}
}

// recoverContractError turns a contract panic into an error. Any other panic
// is re-raised.
func recoverContractError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *UnsupportedOperationError:
		*err = e
	case *UnknownArgumentError:
		*err = e
	default:
		panic(r)
	}
}
