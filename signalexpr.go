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

package signalexpr

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rulego/signalexpr/condition"
	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/logger"
	"github.com/rulego/signalexpr/series"
	"github.com/rulego/signalexpr/types"
	"github.com/rulego/signalexpr/utils/table"
)

var (
	// ErrNoSeries is returned when bars are evaluated without a frame.
	ErrNoSeries = errors.New("no series loaded")
	// ErrUntimed is returned for timestamp keying over untimed bars.
	ErrUntimed = errors.New("series carry no timestamps")
)

// ResultColumns is the column order of evaluation rows.
var ResultColumns = []string{"bar", "key", "value", "state", "reason"}

// Engine parses, simplifies and compiles conditions against a set of series.
//
// Example:
//
//	frame, _ := series.LoadFile("bars.yaml")
//	engine := signalexpr.New(signalexpr.WithFrame(frame))
//	sig, err := engine.Compile("crossesAbove(fast, slow) and volume > 1000")
//	if err != nil {
//		return err
//	}
//	fired := sig.Boolean(types.IndexKey(3))
type Engine struct {
	frame    *series.Frame
	vars     condition.Vars
	extra    condition.Env
	kind     types.KeyKind
	simplify bool
}

// New returns an engine keyed by bar index that simplifies every condition.
func New(options ...Option) *Engine {
	e := &Engine{
		vars:     condition.Vars{},
		kind:     types.KeyIndex,
		simplify: true,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Frame() *series.Frame { return e.frame }

func (e *Engine) KeyKind() types.KeyKind { return e.kind }

func (e *Engine) env() condition.Env {
	envs := condition.Envs{e.vars}
	if e.frame != nil {
		envs = append(envs, e.frame)
	}
	if e.extra != nil {
		envs = append(envs, e.extra)
	}
	return envs
}

// Parse returns the tree of a condition, simplified unless WithoutSimplify
// was given.
func (e *Engine) Parse(text string) (expr.Node, error) {
	node, err := condition.Parse(text, e.env())
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	if e.simplify {
		node = node.Simplify()
	}
	return node, nil
}

// Compile parses a condition and compiles it for the engine's key kind.
func (e *Engine) Compile(text string) (*Signal, error) {
	node, err := e.Parse(text)
	if err != nil {
		return nil, err
	}
	sig, err := e.CompileNode(node)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", text, err)
	}
	logger.Debug("compiled %q as %s for %s keys", text, node, e.kind)
	return sig, nil
}

// CompileNode compiles an already built tree as is.
func (e *Engine) CompileNode(node expr.Node) (*Signal, error) {
	s := &Signal{node: node, kind: e.kind}
	var err error
	if s.boolean, err = expr.Compile[bool](node, e.kind); err != nil {
		return nil, err
	}
	if s.nullable, err = expr.Compile[types.Bool3](node, e.kind); err != nil {
		return nil, err
	}
	if s.double, err = expr.Compile[float64](node, e.kind); err != nil {
		return nil, err
	}
	if s.whyTrue, err = expr.CompileTrueReason(node, e.kind); err != nil {
		return nil, err
	}
	if s.whyFalse, err = expr.CompileFalseReason(node, e.kind); err != nil {
		return nil, err
	}
	return s, nil
}

// Evaluate runs a signal over every bar of the frame. Unkeyed engines
// produce a single row and need no frame.
func (e *Engine) Evaluate(s *Signal) ([]map[string]interface{}, error) {
	if s.kind == types.KeyNone {
		row, err := s.row(-1, types.NoKey)
		if err != nil {
			return nil, err
		}
		return []map[string]interface{}{row}, nil
	}
	if e.frame == nil {
		return nil, ErrNoSeries
	}
	tl := e.frame.Timeline()
	if s.kind == types.KeyTime && !tl.Timed() {
		return nil, ErrUntimed
	}
	rows := make([]map[string]interface{}, 0, tl.Len())
	for i := 0; i < tl.Len(); i++ {
		row, err := s.row(i, tl.Key(i, s.kind))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PrintTable evaluates a signal and prints one row per bar to stdout.
func (e *Engine) PrintTable(s *Signal) error {
	return e.WriteTable(os.Stdout, s)
}

// WriteTable is PrintTable to w.
func (e *Engine) WriteTable(w io.Writer, s *Signal) error {
	rows, err := e.Evaluate(s)
	if err != nil {
		return err
	}
	table.Render(w, rows, ResultColumns)
	return nil
}

// Signal is a compiled condition. It is safe for concurrent use.
type Signal struct {
	node     expr.Node
	kind     types.KeyKind
	boolean  expr.Evaluator[bool]
	nullable expr.Evaluator[types.Bool3]
	double   expr.Evaluator[float64]
	whyTrue  expr.Reason
	whyFalse expr.Reason
}

func (s *Signal) Node() expr.Node { return s.node }

func (s *Signal) KeyKind() types.KeyKind { return s.kind }

func (s *Signal) String() string { return expr.Format(s.node) }

func (s *Signal) Boolean(k types.Key) bool { return s.boolean(k) }

func (s *Signal) Nullable(k types.Key) types.Bool3 { return s.nullable(k) }

func (s *Signal) Double(k types.Key) float64 { return s.double(k) }

// Explain returns why the signal is true or false at k, or an empty string
// when it is unknown there.
func (s *Signal) Explain(k types.Key) string {
	switch s.nullable(k) {
	case types.True:
		return s.whyTrue(k)
	case types.False:
		return s.whyFalse(k)
	default:
		return ""
	}
}

func (s *Signal) row(bar int, k types.Key) (row map[string]interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("bar %s: %w", k, e)
		}
	}()
	row = map[string]interface{}{
		"key":    k.String(),
		"value":  s.double(k),
		"state":  s.nullable(k),
		"reason": s.Explain(k),
	}
	if bar >= 0 {
		row["bar"] = bar
	}
	return row, nil
}
