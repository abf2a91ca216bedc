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
Package trace provides the identity of a distributed trace as it is carried
between processes: the TraceID, SpanID and TraceFlags of a span, the
vendor-specific TraceState, and the SpanContext that binds them together.

All types are immutable values. A SpanContext is associated with a
context.Context using ContextWithSpanContext and retrieved with
SpanContextFromContext or LookupSpanContext.
*/
package trace // import "github.com/MrAlias/tracecontext/trace"
