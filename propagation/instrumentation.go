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

package propagation // import "github.com/MrAlias/tracecontext/propagation"

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/MrAlias/tracecontext"
	"github.com/MrAlias/tracecontext/internal/global"
)

// ScopeName is the instrumentation scope name used by the meter of a
// TraceContext.
const ScopeName = "github.com/MrAlias/tracecontext/propagation"

const outcomeKey = attribute.Key("outcome")

type outcome int

const (
	outcomeInjected outcome = iota
	outcomeSkipped
	outcomeValid
	outcomeMissing
	outcomeInvalidTraceParent
	outcomeInvalidTraceState

	numOutcomes
)

var outcomeNames = [numOutcomes]string{
	outcomeInjected:           "injected",
	outcomeSkipped:            "skipped",
	outcomeValid:              "valid",
	outcomeMissing:            "missing",
	outcomeInvalidTraceParent: "invalid_traceparent",
	outcomeInvalidTraceState:  "invalid_tracestate",
}

func (o outcome) String() string {
	if o < 0 || o >= numOutcomes {
		return "unknown"
	}
	return outcomeNames[o]
}

// instrumentation records the outcome of Inject and Extract calls.
type instrumentation struct {
	inject  metric.Int64Counter
	extract metric.Int64Counter

	// opts are the pre-computed attribute options for each outcome.
	opts [numOutcomes][]metric.AddOption
}

func newInstrumentation(mp metric.MeterProvider) *instrumentation {
	m := mp.Meter(
		ScopeName,
		metric.WithInstrumentationVersion(tracecontext.Version()),
	)

	inst := &instrumentation{}
	for o := outcome(0); o < numOutcomes; o++ {
		set := attribute.NewSet(outcomeKey.String(o.String()))
		inst.opts[o] = []metric.AddOption{metric.WithAttributeSet(set)}
	}

	var err error
	inst.inject, err = m.Int64Counter(
		"tracecontext.inject",
		metric.WithDescription("The number of Inject calls by outcome."),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		global.Error(err, "failed to create inject counter")
		inst.inject = noop.Int64Counter{}
	}

	inst.extract, err = m.Int64Counter(
		"tracecontext.extract",
		metric.WithDescription("The number of Extract calls by outcome."),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		global.Error(err, "failed to create extract counter")
		inst.extract = noop.Int64Counter{}
	}
	return inst
}

func (i *instrumentation) recordInject(ctx context.Context, o outcome) {
	if i == nil {
		return
	}
	i.inject.Add(ctx, 1, i.opts[o]...)
}

func (i *instrumentation) recordExtract(ctx context.Context, o outcome) {
	if i == nil {
		return
	}
	i.extract.Add(ctx, 1, i.opts[o]...)
}
