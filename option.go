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
	"io"

	"github.com/rulego/signalexpr/condition"
	"github.com/rulego/signalexpr/logger"
	"github.com/rulego/signalexpr/series"
	"github.com/rulego/signalexpr/types"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger as the process-wide default.
//
// Example:
//
//	engine := signalexpr.New(signalexpr.WithLogger(logger.NewLogger(logger.DEBUG, os.Stderr)))
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		logger.SetDefault(log)
	}
}

// WithLogLevel sets the level of the default logger. At DEBUG the
// simplifier, the evaluator factory and the condition parser report their
// decisions.
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput replaces the default logger with one writing to output.
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) {
		logger.SetDefault(logger.NewLogger(level, output))
	}
}

// WithDiscardLog disables all log output.
func WithDiscardLog() Option {
	return func(e *Engine) {
		logger.SetDefault(logger.NewDiscardLogger())
	}
}

// WithoutSimplify compiles trees exactly as parsed.
func WithoutSimplify() Option {
	return func(e *Engine) {
		e.simplify = false
	}
}

// WithFrame resolves identifiers to the series of frame.
func WithFrame(frame *series.Frame) Option {
	return func(e *Engine) {
		e.frame = frame
	}
}

// WithSeries binds one field under name. Bound names take precedence over
// the frame's series.
func WithSeries(name string, field *series.Field) Option {
	return func(e *Engine) {
		e.vars[name] = condition.Var{Node: field, Provider: field.Provider()}
	}
}

// WithEnv adds an environment consulted after bound series and the frame.
func WithEnv(env condition.Env) Option {
	return func(e *Engine) {
		e.extra = env
	}
}

// WithKeyKind selects how signals are keyed: types.KeyIndex (the default),
// types.KeyTime or types.KeyNone.
func WithKeyKind(kind types.KeyKind) Option {
	return func(e *Engine) {
		e.kind = kind
	}
}
