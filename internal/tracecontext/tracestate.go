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

package tracecontext // import "github.com/MrAlias/tracecontext/internal/tracecontext"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrAlias/tracecontext/trace"
)

var (
	// ErrInvalidListMember is returned when at least one list member is
	// invalid, i.e. the list member contains an unexpected character.
	ErrInvalidListMember = errorf("invalid tracestate list member")
	// ErrTooManyListMembers is returned when the list contains more than the
	// maximum number of members per the spec (currently 32:
	// https://www.w3.org/TR/trace-context/#tracestate-header-field-values) .
	ErrTooManyListMembers = errorf("too many list members in tracestate")
)

// ParseTraceState decodes a TraceState from one or more tracestate header
// field values. Multiple values are combined as a single comma separated
// list, in the order passed, before being decoded.
//
// If the combined value is invalid the empty TraceState is returned along
// with an error wrapping ErrTraceContext.
func ParseTraceState(values ...string) (trace.TraceState, error) {
	ts, err := trace.ParseTraceState(strings.Join(values, ","))
	switch {
	case err == nil:
		return ts, nil
	case errors.Is(err, trace.ErrTooManyMembers):
		return trace.TraceState{}, fmt.Errorf("%w: %w", ErrTooManyListMembers, err)
	default:
		return trace.TraceState{}, fmt.Errorf("%w: %w", ErrInvalidListMember, err)
	}
}

// FormatTraceState encodes ts as a tracestate header field value. The empty
// string is returned for an empty TraceState.
func FormatTraceState(ts trace.TraceState) string {
	return ts.String()
}
