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
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rulego/signalexpr/logger"
	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/cast"
)

var log = logger.Named("series")

// document is the YAML layout of a series file:
//
//	timestamps: [2024-01-02T00:00:00Z, 2024-01-03T00:00:00Z]
//	series:
//	  close: [10, 11.5]
//	  volume: [1200, ~]
//	integer: [volume]
//	draw: [close]
//	persist: [close]
//
// Series keep the order they are declared in. A null value reads as NaN.
type document struct {
	Timestamps []interface{} `yaml:"timestamps"`
	Series     yaml.Node     `yaml:"series"`
	Integer    []string      `yaml:"integer"`
	Boolean    []string      `yaml:"boolean"`
	Nullable   []string      `yaml:"nullable"`
	Draw       []string      `yaml:"draw"`
	Persist    []string      `yaml:"persist"`
}

type column struct {
	name   string
	values []float64
}

// LoadFile reads a series file from disk.
func LoadFile(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadYAML builds a frame from a series document.
func LoadYAML(data []byte) (*Frame, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse series file: %w", err)
	}
	columns, err := decodeColumns(&doc.Series)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.New("series file declares no series")
	}

	tl, err := decodeTimeline(doc.Timestamps, len(columns[0].values))
	if err != nil {
		return nil, err
	}

	opts, err := fieldOptions(&doc, columns)
	if err != nil {
		return nil, err
	}
	frame := NewFrame(tl)
	for _, c := range columns {
		if _, err := frame.Add(c.name, c.values, opts[c.name]...); err != nil {
			return nil, err
		}
	}
	log.Debug("loaded %d series over %d bars (timed: %t)", len(columns), tl.Len(), tl.Timed())
	return frame, nil
}

func decodeColumns(node *yaml.Node) ([]column, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: series must be a mapping of name to values", node.Line)
	}
	columns := make([]column, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var raw []interface{}
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		values, err := cast.ToDoubles(raw)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		columns = append(columns, column{name: name, values: values})
	}
	return columns, nil
}

func decodeTimeline(raw []interface{}, bars int) (*Timeline, error) {
	if len(raw) == 0 {
		return NewIndexTimeline(bars), nil
	}
	times := make([]time.Time, len(raw))
	for i, r := range raw {
		ts, err := cast.ToTime(r)
		if err != nil {
			return nil, fmt.Errorf("timestamp %d: %w", i, err)
		}
		times[i] = ts
	}
	return NewTimeline(times)
}

func fieldOptions(doc *document, columns []column) (map[string][]FieldOption, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.name] = true
	}
	opts := make(map[string][]FieldOption)
	add := func(list string, names []string, opt FieldOption) error {
		for _, n := range names {
			if !known[n] {
				return fmt.Errorf("%s: unknown series %s", list, n)
			}
			opts[n] = append(opts[n], opt)
		}
		return nil
	}
	if err := add("integer", doc.Integer, WithType(types.Integer)); err != nil {
		return nil, err
	}
	if err := add("boolean", doc.Boolean, WithType(types.Boolean)); err != nil {
		return nil, err
	}
	if err := add("nullable", doc.Nullable, WithType(types.BooleanNullable)); err != nil {
		return nil, err
	}
	if err := add("draw", doc.Draw, Drawn()); err != nil {
		return nil, err
	}
	if err := add("persist", doc.Persist, Persisted()); err != nil {
		return nil, err
	}
	return opts, nil
}
