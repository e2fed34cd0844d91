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
	"math"

	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

// Series is a named column of values on a timeline.
type Series struct {
	name     string
	values   []float64
	timeline *Timeline
}

// New returns a series on its own index timeline.
func New(name string, values []float64) *Series {
	s, _ := NewOn(NewIndexTimeline(len(values)), name, values)
	return s
}

// NewOn returns a series on an existing timeline. The number of values must
// match the number of bars.
func NewOn(tl *Timeline, name string, values []float64) (*Series, error) {
	if len(values) != tl.Len() {
		return nil, fmt.Errorf("series %s has %d values, timeline has %d bars", name, len(values), tl.Len())
	}
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{name: name, values: v, timeline: tl}, nil
}

func (s *Series) Name() string { return s.name }

func (s *Series) Len() int { return len(s.values) }

func (s *Series) Timeline() *Timeline { return s.timeline }

// At returns the value at k, or NaN when k resolves to no bar.
func (s *Series) At(k types.Key) float64 {
	i, ok := s.timeline.Position(k)
	if !ok {
		return math.NaN()
	}
	return s.values[i]
}

// Field is the leaf node reading a series. Its type decides how values are
// read: Double as is, Integer truncated, Boolean and BooleanNullable as
// non-zero tests (NaN is Unknown for the nullable kind and false otherwise).
type Field struct {
	series  *Series
	typ     types.ExpressionType
	draw    bool
	persist bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithType declares the value type of a field.
func WithType(t types.ExpressionType) FieldOption {
	return func(f *Field) {
		f.typ = t
	}
}

// Drawn marks the field for display.
func Drawn() FieldOption {
	return func(f *Field) {
		f.draw = true
	}
}

// Persisted marks the field for storage.
func Persisted() FieldOption {
	return func(f *Field) {
		f.persist = true
	}
}

// NewField returns a Double field over s.
func NewField(s *Series, opts ...FieldOption) *Field {
	f := &Field{series: s, typ: types.Double}
	for _, opt := range opts {
		opt(f)
	}
	if !f.typ.Valid() {
		panic(&expr.UnknownArgumentError{Kind: "expression type", Value: f.typ})
	}
	return f
}

func (f *Field) Series() *Series { return f.series }

// Provider returns the timeline the field reads along.
func (f *Field) Provider() expr.PreviousValueProvider { return f.series.timeline }

func (f *Field) Type() types.ExpressionType { return f.typ }

func (f *Field) IsConstant() bool { return false }

func (f *Field) Simplify() expr.Node { return f }

func (f *Field) Children() []expr.Node { return nil }

func (f *Field) ShouldPersist() bool { return f.persist }

func (f *Field) ShouldDraw() bool { return f.draw }

func (f *Field) EvalDouble(k types.Key) float64 {
	v := f.series.At(k)
	switch f.typ {
	case types.Integer:
		if math.IsNaN(v) {
			return v
		}
		return math.Trunc(v)
	case types.Boolean:
		return cast.BoolToDouble(cast.DoubleToBool(v))
	case types.BooleanNullable:
		return cast.Bool3ToDouble(cast.DoubleToBool3(v))
	default:
		return v
	}
}

func (f *Field) EvalInteger(k types.Key) int64 {
	if f.typ.IsBoolean() {
		return cast.Bool3ToInteger(f.EvalNullable(k))
	}
	return cast.DoubleToInteger(f.series.At(k))
}

func (f *Field) EvalBoolean(k types.Key) bool {
	return cast.DoubleToBool(f.series.At(k))
}

func (f *Field) EvalNullable(k types.Key) types.Bool3 {
	if f.typ == types.Boolean {
		return types.Of(f.EvalBoolean(k))
	}
	return cast.DoubleToBool3(f.series.At(k))
}

func (f *Field) String() string { return f.series.name }
