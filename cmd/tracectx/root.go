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
	"log"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/MrAlias/tracecontext"
)

func newRootCmd() *cobra.Command {
	var verbosity int
	cmd := &cobra.Command{
		Use:          "tracectx",
		Short:        "Work with W3C Trace Context traceparent and tracestate headers",
		Version:      tracecontext.Version(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			stdr.SetVerbosity(verbosity)
			logger := stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			tracecontext.SetLogger(logger)
		},
	}
	cmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity (1 warn, 4 info, 8 debug)")

	cmd.AddCommand(newDecodeCmd(), newEncodeCmd(), newNewCmd())
	return cmd
}
