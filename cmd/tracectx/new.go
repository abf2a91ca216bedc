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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAlias/tracecontext/internal/global"
	"github.com/MrAlias/tracecontext/internal/idgen"
	"github.com/MrAlias/tracecontext/propagation"
	"github.com/MrAlias/tracecontext/trace"
)

func newNewCmd() *cobra.Command {
	var (
		sampled    bool
		tracestate string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate headers for a new random trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := trace.ParseTraceState(tracestate)
			if err != nil {
				return err
			}
			sc, err := idgen.New(nil).SpanContext(trace.TraceFlags(0).WithSampled(sampled), ts)
			if err != nil {
				return err
			}
			global.Info("generated span context", "traceID", sc.TraceID().String(), "spanID", sc.SpanID().String(), "sampled", sc.IsSampled())

			prop := propagation.TraceContext{}
			carrier := propagation.MapCarrier{}
			prop.Inject(trace.ContextWithSpanContext(context.Background(), sc), carrier)

			w := cmd.OutOrStdout()
			for _, field := range prop.Fields() {
				if v, ok := carrier[field]; ok {
					if _, err := fmt.Fprintf(w, "%s: %s\n", field, v); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sampled, "sampled", false, "set the sampled flag")
	cmd.Flags().StringVar(&tracestate, "tracestate", "", "tracestate header value to attach")
	return cmd
}
