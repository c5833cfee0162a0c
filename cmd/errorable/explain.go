/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/config"
	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/registry"
)

// sampleError stands in for the Go type a configured name is bound to.
type sampleError struct{ msg string }

func (e *sampleError) Error() string { return e.msg }

type explainOutput struct {
	Name     string        `json:"name" yaml:"name"`
	Status   int           `json:"status" yaml:"status"`
	Document apis.Document `json:"document" yaml:"document"`
}

func newExplainCommand(o *rootOptions) *cobra.Command {
	var (
		message string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "explain <name>",
		Short: "Render the error document a configured exception produces.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			out, err := explain(cfg, args[0], message)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "something went wrong", "message of the sample error")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func explain(cfg *config.Config, name, message string) (explainOutput, error) {
	exc, ok := cfg.Exception(name)
	if !ok {
		return explainOutput{}, fmt.Errorf("explain: no exception %q in configuration", name)
	}
	single := *cfg
	single.Exceptions = map[string]config.Exception{name: exc}

	state := errorable.NewState()
	reg := registry.MustNew()
	if err := config.Apply(&single, reg, state, config.Bindings{name: &sampleError{}}); err != nil {
		return explainOutput{}, err
	}
	state.Enable()
	state.SetLogger(logging.Nop())

	resp, err := errorable.New(reg, errorable.WithState(state)).Dispatch(context.Background(), &sampleError{msg: message})
	if err != nil {
		return explainOutput{}, err
	}
	return explainOutput{Name: name, Status: resp.Status, Document: resp.Document}, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
