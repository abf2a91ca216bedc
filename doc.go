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
Package tracecontext carries the identity of a distributed trace across
process boundaries using the W3C Trace Context format
(https://www.w3.org/TR/trace-context).

The trace package defines the identity itself: TraceID, SpanID, TraceFlags,
TraceState and the SpanContext combining them. The propagation package
injects a SpanContext held by a context.Context into outgoing transport
headers (traceparent and tracestate) and extracts it from incoming ones.

Malformed incoming headers never cause an error to be returned. They result
in an invalid SpanContext, or one without TraceState, and are reported to
the logger set with SetLogger.
*/
package tracecontext // import "github.com/MrAlias/tracecontext"
