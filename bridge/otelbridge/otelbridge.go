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

// Package otelbridge connects this module's SpanContext and TraceContext
// propagator to the OpenTelemetry Go API.
package otelbridge // import "github.com/MrAlias/tracecontext/bridge/otelbridge"

import (
	"context"

	otelprop "go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/MrAlias/tracecontext/internal/global"
	"github.com/MrAlias/tracecontext/propagation"
	"github.com/MrAlias/tracecontext/trace"
)

// ToOTel converts sc into an OpenTelemetry SpanContext.
//
// Both packages validate tracestate with the same W3C rules, so a TraceState
// that cannot be represented by OpenTelemetry is only possible for values
// OpenTelemetry rejects. In that case the returned SpanContext carries an
// empty TraceState.
func ToOTel(sc trace.SpanContext) oteltrace.SpanContext {
	ts, err := oteltrace.ParseTraceState(sc.TraceState().String())
	if err != nil {
		global.Warn("dropping tracestate not accepted by OpenTelemetry", "error", err)
		ts = oteltrace.TraceState{}
	}
	return oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    oteltrace.TraceID(sc.TraceID()),
		SpanID:     oteltrace.SpanID(sc.SpanID()),
		TraceFlags: oteltrace.TraceFlags(sc.TraceFlags()),
		TraceState: ts,
		Remote:     sc.IsRemote(),
	})
}

// FromOTel converts an OpenTelemetry SpanContext into a SpanContext.
func FromOTel(sc oteltrace.SpanContext) trace.SpanContext {
	ts, err := trace.ParseTraceState(sc.TraceState().String())
	if err != nil {
		global.Warn("dropping tracestate from OpenTelemetry", "error", err)
		ts = trace.TraceState{}
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID(sc.TraceID()),
		SpanID:     trace.SpanID(sc.SpanID()),
		TraceFlags: trace.TraceFlags(sc.TraceFlags()),
		TraceState: ts,
		Remote:     sc.IsRemote(),
	})
}

// Propagator is an OpenTelemetry TextMapPropagator backed by a
// propagation.TraceContext.
//
// Inject reads the OpenTelemetry SpanContext held by the context. Extract
// stores the decoded SpanContext in the returned context both as an
// OpenTelemetry remote SpanContext and as a trace.SpanContext. The
// OpenTelemetry value is only stored when the decoded SpanContext is valid.
type Propagator struct {
	tc propagation.TraceContext
}

var _ otelprop.TextMapPropagator = Propagator{}

// NewPropagator returns a Propagator that encodes and decodes headers with tc.
func NewPropagator(tc propagation.TraceContext) Propagator {
	return Propagator{tc: tc}
}

// Inject sets the traceparent and tracestate headers for the OpenTelemetry
// SpanContext in ctx into carrier.
func (p Propagator) Inject(ctx context.Context, carrier otelprop.TextMapCarrier) {
	sc := FromOTel(oteltrace.SpanContextFromContext(ctx))
	p.tc.Inject(trace.ContextWithSpanContext(ctx, sc), carrier)
}

// Extract reads the traceparent and tracestate headers from carrier.
func (p Propagator) Extract(ctx context.Context, carrier otelprop.TextMapCarrier) context.Context {
	ctx = p.tc.Extract(ctx, carrier)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ctx
	}
	return oteltrace.ContextWithRemoteSpanContext(ctx, ToOTel(sc))
}

// Fields returns the keys whose values are set with Inject.
func (p Propagator) Fields() []string {
	return p.tc.Fields()
}
