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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	codec "github.com/MrAlias/tracecontext/internal/tracecontext"
	"github.com/MrAlias/tracecontext/trace"
)

func parseFlags(s string) (trace.TraceFlags, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid trace flags %q: %w", s, err)
	}
	return trace.TraceFlags(v), nil
}

func newEncodeCmd() *cobra.Command {
	var traceID, spanID, flags string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a traceparent header from its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tid, err := trace.TraceIDFromHex(traceID)
			if err != nil {
				return fmt.Errorf("invalid trace ID: %w", err)
			}
			sid, err := trace.SpanIDFromHex(spanID)
			if err != nil {
				return fmt.Errorf("invalid span ID: %w", err)
			}
			tf, err := parseFlags(flags)
			if err != nil {
				return err
			}

			sc := trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    tid,
				SpanID:     sid,
				TraceFlags: tf,
			})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeTraceParent(sc))
			return err
		},
	}
	cmd.Flags().StringVar(&traceID, "trace-id", "", "32 lowercase hex digit trace ID")
	cmd.Flags().StringVar(&spanID, "span-id", "", "16 lowercase hex digit span ID")
	cmd.Flags().StringVar(&flags, "flags", "00", "trace flags as two hex digits")
	_ = cmd.MarkFlagRequired("trace-id")
	_ = cmd.MarkFlagRequired("span-id")
	return cmd
}
