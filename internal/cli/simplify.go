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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulego/signalexpr"
	"github.com/rulego/signalexpr/expr"
	"github.com/rulego/signalexpr/series"
	"github.com/rulego/signalexpr/types"
)

// SimplifyOptions holds flags of the simplify command.
type SimplifyOptions struct {
	Series   string
	Integer  []string
	Boolean  []string
	Nullable []string
}

// NewSimplifyCommand creates the simplify command.
func NewSimplifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimplifyOptions{}
	cmd := &cobra.Command{
		Use:   "simplify <expression>",
		Short: "Print the simplified form of a condition",
		Long: `Parse a condition, simplify it and print the result.

Identifiers not found in --series are free Double variables unless declared
with --integer, --boolean or --nullable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimplify(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Series, "series", "s", "", "YAML series file")
	cmd.Flags().StringSliceVar(&opts.Integer, "integer", nil, "names of integer variables")
	cmd.Flags().StringSliceVar(&opts.Boolean, "boolean", nil, "names of boolean variables")
	cmd.Flags().StringSliceVar(&opts.Nullable, "nullable", nil, "names of nullable boolean variables")
	return cmd
}

func runSimplify(opts *SimplifyOptions, text string, cmd *cobra.Command) error {
	options := []signalexpr.Option{signalexpr.WithEnv(newSymbols(opts))}
	if opts.Series != "" {
		frame, err := series.LoadFile(opts.Series)
		if err != nil {
			return err
		}
		options = append(options, signalexpr.WithFrame(frame))
	}
	node, err := signalexpr.New(options...).Parse(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), expr.Format(node))
	return nil
}

// symbols resolves every identifier to a series without bars, created on
// first use, so text can be simplified without data.
type symbols struct {
	frame *series.Frame
	types map[string]types.ExpressionType
}

func newSymbols(opts *SimplifyOptions) *symbols {
	s := &symbols{
		frame: series.NewFrame(series.NewIndexTimeline(0)),
		types: make(map[string]types.ExpressionType),
	}
	for _, n := range opts.Integer {
		s.types[n] = types.Integer
	}
	for _, n := range opts.Boolean {
		s.types[n] = types.Boolean
	}
	for _, n := range opts.Nullable {
		s.types[n] = types.BooleanNullable
	}
	return s
}

func (s *symbols) Lookup(name string) (expr.Node, expr.PreviousValueProvider, bool) {
	if n, p, ok := s.frame.Lookup(name); ok {
		return n, p, true
	}
	typ, ok := s.types[name]
	if !ok {
		typ = types.Double
	}
	if _, err := s.frame.Add(name, nil, series.WithType(typ)); err != nil {
		return nil, nil, false
	}
	return s.frame.Lookup(name)
}
