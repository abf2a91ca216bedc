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
Package propagation injects and extracts the W3C Trace Context headers.

TraceContext.Inject writes the SpanContext held by a context.Context into a
TextMapCarrier as the traceparent and, when not empty, tracestate fields.
TraceContext.Extract reads them back and returns a new context.Context
holding the decoded SpanContext.

Carriers that are not naturally a key-value store can be used with the
generic Inject and Extract functions by supplying a Getter or Setter.
*/
package propagation // import "github.com/MrAlias/tracecontext/propagation"
