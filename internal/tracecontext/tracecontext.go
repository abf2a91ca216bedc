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

/*
Package tracecontext implements the W3C Trace Context header codec
(https://www.w3.org/TR/trace-context).

It converts between a trace.SpanContext and the traceparent and tracestate
header field values. Every error returned wraps ErrTraceContext.
*/
package tracecontext // import "github.com/MrAlias/tracecontext/internal/tracecontext"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrAlias/tracecontext/trace"
)

// Header field names.
const (
	TraceParentField = "traceparent"
	TraceStateField  = "tracestate"
)

var (
	// ErrTraceContext is returned as a wrapped error when an error is
	// returned from this package.
	ErrTraceContext = errors.New("tracecontext")

	// ErrMissingTraceParent is returned when no traceparent header is
	// present.
	ErrMissingTraceParent = errorf("missing traceparent header")

	// ErrMultipleTraceParent is returned when there are multiple
	// traceparent headers present.
	ErrMultipleTraceParent = errorf("multiple traceparent headers")
)

func errorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrTraceContext, fmt.Sprintf(format, a...))
}

// Decode decodes a SpanContext from the traceparent and tracestate header
// field values read from a carrier.
//
// An invalid SpanContext is returned along with an error if the traceparent
// header is missing, repeated, or malformed.
//
// It is not considered an error if the tracestate header(s) is(are) invalid.
// If the traceparent header is valid and tracestate is not, the SpanContext
// is returned with an empty TraceState. The tracestate error, if any, is
// returned as tsErr for the caller to report.
func Decode(traceparent, tracestate []string) (sc trace.SpanContext, tsErr, err error) {
	if len(traceparent) > 1 {
		return trace.SpanContext{}, nil, ErrMultipleTraceParent
	}
	if len(traceparent) == 0 || traceparent[0] == "" {
		return trace.SpanContext{}, nil, ErrMissingTraceParent
	}

	if sc, err = DecodeTraceParent(traceparent[0]); err != nil {
		return trace.SpanContext{}, nil, err
	}

	if strings.TrimSpace(strings.Join(tracestate, "")) == "" {
		return sc, nil, nil
	}
	// Failure to parse tracestate MUST NOT affect the parsing of
	// traceparent.
	ts, tsErr := ParseTraceState(tracestate...)
	if tsErr != nil {
		return sc, tsErr, nil
	}
	return sc.WithTraceState(ts), nil, nil
}

// Encode returns the traceparent and tracestate header field values for sc.
// The returned tracestate is empty when sc has an empty TraceState and
// should not be written.
func Encode(sc trace.SpanContext) (traceparent, tracestate string) {
	return EncodeTraceParent(sc), FormatTraceState(sc.TraceState())
}
