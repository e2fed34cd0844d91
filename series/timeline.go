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
	"sort"
	"time"

	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/types"
)

// Timeline is the ordered sequence of bars that series share. It resolves
// keys to bar positions and is the expr.PreviousValueProvider of every field
// on it, so a crossing between two fields of one timeline takes the shared
// provider form.
type Timeline struct {
	length int
	times  []time.Time
}

// NewIndexTimeline returns a timeline of n bars addressed by index only.
func NewIndexTimeline(n int) *Timeline {
	return &Timeline{length: n}
}

// NewTimeline returns a timeline addressed by index or by timestamp. The
// timestamps must be strictly ascending.
func NewTimeline(times []time.Time) (*Timeline, error) {
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("timestamp %d (%s) is not after %s", i, times[i].Format(time.RFC3339), times[i-1].Format(time.RFC3339))
		}
	}
	ts := make([]time.Time, len(times))
	copy(ts, times)
	return &Timeline{length: len(ts), times: ts}, nil
}

// Len returns the number of bars.
func (t *Timeline) Len() int { return t.length }

// Timed reports whether bars carry timestamps.
func (t *Timeline) Timed() bool { return t.times != nil }

// Time returns the timestamp of bar i.
func (t *Timeline) Time(i int) time.Time { return t.times[i] }

// Key returns the key of bar i in the given keying. Timestamp keys of an
// untimed timeline and positions outside it are invalid.
func (t *Timeline) Key(i int, kind types.KeyKind) types.Key {
	if i < 0 || i >= t.length {
		return types.InvalidKey(kind)
	}
	switch kind {
	case types.KeyIndex:
		return types.IndexKey(i)
	case types.KeyTime:
		if !t.Timed() {
			return types.InvalidKey(kind)
		}
		return types.TimeKey(t.times[i])
	case types.KeyNone:
		return types.NoKey
	default:
		panic(&expr.UnknownArgumentError{Kind: "key kind", Value: kind})
	}
}

// Position resolves k to a bar. A timestamp resolves to the last bar at or
// before it.
func (t *Timeline) Position(k types.Key) (int, bool) {
	if !k.Valid() {
		return 0, false
	}
	switch k.Kind() {
	case types.KeyIndex:
		i := k.Index()
		return i, i >= 0 && i < t.length
	case types.KeyTime:
		if !t.Timed() {
			return 0, false
		}
		ts := k.Time()
		i := sort.Search(len(t.times), func(i int) bool { return t.times[i].After(ts) })
		return i - 1, i > 0
	case types.KeyNone:
		panic(unkeyed("bar lookup"))
	default:
		panic(&expr.UnknownArgumentError{Kind: "key kind", Value: k.Kind()})
	}
}

// PreviousKey returns the key lag bars before current, or an invalid key
// when that is before the first bar.
func (t *Timeline) PreviousKey(current types.Key, lag int) types.Key {
	if lag < 0 {
		panic(&expr.UnknownArgumentError{Kind: "lag", Value: lag})
	}
	kind := current.Kind()
	if kind == types.KeyNone {
		panic(unkeyed("lookback"))
	}
	if !current.Valid() {
		return types.InvalidKey(kind)
	}
	if kind == types.KeyIndex {
		if current.Index()-lag < 0 {
			return types.InvalidKey(kind)
		}
		return types.IndexKey(current.Index() - lag)
	}
	pos, ok := t.Position(current)
	if !ok || pos-lag < 0 {
		return types.InvalidKey(kind)
	}
	return types.TimeKey(t.times[pos-lag])
}

// EvalDouble evaluates n at k. Invalid keys read NaN.
func (t *Timeline) EvalDouble(n expr.Node, k types.Key) float64 {
	if !k.Valid() {
		return math.NaN()
	}
	return n.EvalDouble(k)
}

func unkeyed(shape string) *expr.UnsupportedOperationError {
	return &expr.UnsupportedOperationError{Operator: "series", Shape: "unkeyed " + shape, Required: "an index or timestamp key"}
}
