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
	"github.com/spf13/cobra"

	"github.com/rulego/signalexpr"
	"github.com/rulego/signalexpr/series"
	"github.com/rulego/signalexpr/types"
)

// EvalOptions holds flags of the eval command.
type EvalOptions struct {
	Series string
	Keying string
	Raw    bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}
	cmd := &cobra.Command{
		Use:   "eval --series <file.yaml> <expression>",
		Short: "Evaluate a condition on every bar of a series file",
		Long: `Evaluate a condition on every bar of a series file and print a table of
key, value, three-valued state and the reason for the outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Series, "series", "s", "", "YAML series file")
	cmd.Flags().StringVarP(&opts.Keying, "keying", "k", "index", "key kind (index|time|none)")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "evaluate the condition without simplifying it")
	_ = cmd.MarkFlagRequired("series")
	return cmd
}

func runEval(opts *EvalOptions, text string, cmd *cobra.Command) error {
	kind, err := types.ParseKeyKind(opts.Keying)
	if err != nil {
		return err
	}
	frame, err := series.LoadFile(opts.Series)
	if err != nil {
		return err
	}
	options := []signalexpr.Option{signalexpr.WithFrame(frame), signalexpr.WithKeyKind(kind)}
	if opts.Raw {
		options = append(options, signalexpr.WithoutSimplify())
	}
	engine := signalexpr.New(options...)
	sig, err := engine.Compile(text)
	if err != nil {
		return err
	}
	return engine.WriteTable(cmd.OutOrStdout(), sig)
}
