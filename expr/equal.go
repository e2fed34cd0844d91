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
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// treeOptions compare nodes field by field, unexported fields included.
// NaN literals are equal to each other.
var treeOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateNaNs(),
}

// SameTree reports whether a and b are structurally equal: same node kinds,
// operators, forms, literals and providers.
func SameTree(a, b Node) bool {
	return cmp.Equal(a, b, treeOptions...)
}

// TreeDiff returns a human-readable difference between two trees, or "" when
// they are structurally equal.
func TreeDiff(a, b Node) string {
	return cmp.Diff(a, b, treeOptions...)
}
