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

package series

import (
	"fmt"

	"github.com/rulego/signalexpr/expr"
)

// Frame is a set of named series sharing one timeline.
type Frame struct {
	timeline *Timeline
	fields   map[string]*Field
	names    []string
}

// NewFrame returns an empty frame on tl.
func NewFrame(tl *Timeline) *Frame {
	return &Frame{timeline: tl, fields: make(map[string]*Field)}
}

// Add puts a series on the frame and returns its field.
func (f *Frame) Add(name string, values []float64, opts ...FieldOption) (*Field, error) {
	if _, exists := f.fields[name]; exists {
		return nil, fmt.Errorf("duplicate series %s", name)
	}
	s, err := NewOn(f.timeline, name, values)
	if err != nil {
		return nil, err
	}
	field := NewField(s, opts...)
	f.fields[name] = field
	f.names = append(f.names, name)
	return field, nil
}

// Field returns the field of a series by name.
func (f *Frame) Field(name string) (*Field, bool) {
	field, ok := f.fields[name]
	return field, ok
}

// Lookup resolves an identifier to its field and the provider it reads
// along.
func (f *Frame) Lookup(name string) (expr.Node, expr.PreviousValueProvider, bool) {
	field, ok := f.fields[name]
	if !ok {
		return nil, nil, false
	}
	return field, f.timeline, true
}

// Names returns the series names in the order they were added.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Frame) Timeline() *Timeline { return f.timeline }

// Len returns the number of bars.
func (f *Frame) Len() int { return f.timeline.Len() }
