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
	"errors"

	"github.com/go-logr/logr"

	"github.com/MrAlias/tracecontext/internal/global"
	codec "github.com/MrAlias/tracecontext/internal/tracecontext"
	"github.com/MrAlias/tracecontext/trace"
)

const (
	traceparentHeader = codec.TraceParentField
	tracestateHeader  = codec.TraceStateField
)

// TraceContext is a propagator that supports the W3C Trace Context format
// (https://www.w3.org/TR/trace-context/).
//
// This propagator will propagate the traceparent and tracestate headers to
// guarantee traces are not broken. It is up to the users of this propagator
// to choose if they want to participate in a trace by modifying the
// traceparent header and relevant parts of the tracestate header containing
// their proprietary information.
//
// The zero value is ready to use. It records no metrics and logs to the
// process-wide logger.
type TraceContext struct {
	inst   *instrumentation
	logger *logr.Logger
}

// NewTraceContext returns a TraceContext configured with opts.
func NewTraceContext(opts ...Option) TraceContext {
	c := newConfig(opts)
	return TraceContext{
		inst:   newInstrumentation(c.meterProvider),
		logger: c.logger,
	}
}

func (tc TraceContext) debug(msg string, keysAndValues ...any) {
	if tc.logger != nil {
		tc.logger.V(8).Info(msg, keysAndValues...)
		return
	}
	global.Debug(msg, keysAndValues...)
}

// Inject injects the trace context from ctx into carrier.
//
// Nothing is written if ctx holds no SpanContext or an invalid one. The
// tracestate header is only written when the TraceState is not empty.
func (tc TraceContext) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc, ok := trace.LookupSpanContext(ctx)
	if !ok || !sc.IsValid() {
		tc.inst.recordInject(ctx, outcomeSkipped)
		return
	}

	traceparent, tracestate := codec.Encode(sc)
	carrier.Set(traceparentHeader, traceparent)
	if tracestate != "" {
		carrier.Set(tracestateHeader, tracestate)
	}
	tc.inst.recordInject(ctx, outcomeInjected)
}

// Extract reads the trace context from carrier and returns a copy of ctx
// holding the resulting SpanContext.
//
// A SpanContext is always stored. It is invalid if the traceparent header is
// missing or malformed. If only the tracestate header is malformed, the
// SpanContext identity is kept and its TraceState is empty. Extract never
// returns an error or panics because of carrier content.
func (tc TraceContext) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	sc, o, err := tc.extract(carrier)
	tc.inst.recordExtract(ctx, o)
	if err != nil {
		tc.debug("discarding trace context header", "outcome", o.String(), "error", err)
	}
	return trace.ContextWithSpanContext(ctx, sc)
}

func (tc TraceContext) extract(carrier TextMapCarrier) (trace.SpanContext, outcome, error) {
	var traceparent, tracestate []string
	if vg, ok := carrier.(ValuesGetter); ok {
		traceparent = vg.Values(traceparentHeader)
		tracestate = vg.Values(tracestateHeader)
	} else {
		traceparent = nonEmpty(carrier.Get(traceparentHeader))
		tracestate = nonEmpty(carrier.Get(tracestateHeader))
	}

	sc, tsErr, err := codec.Decode(traceparent, tracestate)
	switch {
	case errors.Is(err, codec.ErrMissingTraceParent):
		return sc, outcomeMissing, nil
	case err != nil:
		return sc, outcomeInvalidTraceParent, err
	case tsErr != nil:
		return sc, outcomeInvalidTraceState, tsErr
	}
	return sc, outcomeValid, nil
}

func nonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

// Fields returns the keys whose values are set with Inject.
func (TraceContext) Fields() []string {
	return []string{traceparentHeader, tracestateHeader}
}
