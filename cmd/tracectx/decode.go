// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	codec "github.com/MrAlias/tracecontext/internal/tracecontext"
)

func newDecodeCmd() *cobra.Command {
	var tracestate string
	cmd := &cobra.Command{
		Use:   "decode TRACEPARENT",
		Short: "Decode a traceparent header and print the span context as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := codec.DecodeTraceParent(args[0])
			if err != nil {
				return fmt.Errorf("invalid traceparent: %w", err)
			}
			if tracestate != "" {
				ts, err := codec.ParseTraceState(tracestate)
				if err != nil {
					return fmt.Errorf("invalid tracestate: %w", err)
				}
				sc = sc.WithTraceState(ts)
			}

			data, err := json.MarshalIndent(sc, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&tracestate, "tracestate", "", "tracestate header value to decode alongside")
	return cmd
}
