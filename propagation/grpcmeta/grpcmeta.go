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

// Package grpcmeta propagates the W3C Trace Context through gRPC metadata.
package grpcmeta // import "github.com/MrAlias/tracecontext/propagation/grpcmeta"

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/MrAlias/tracecontext/propagation"
)

// Carrier adapts metadata.MD to satisfy the propagation.TextMapCarrier and
// propagation.ValuesGetter interfaces.
type Carrier metadata.MD

var (
	_ propagation.TextMapCarrier = Carrier{}
	_ propagation.ValuesGetter   = Carrier{}
)

// Get returns the first value associated with key.
func (c Carrier) Get(key string) string {
	vals := metadata.MD(c).Get(key)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Values returns all values associated with key.
func (c Carrier) Values(key string) []string {
	return metadata.MD(c).Get(key)
}

// Set replaces the values associated with key by value.
func (c Carrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

// Keys lists the keys stored in c.
func (c Carrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, strings.ToLower(k))
	}
	return keys
}

// ExtractIncoming returns a copy of ctx holding the SpanContext extracted
// from the incoming gRPC metadata of ctx.
func ExtractIncoming(ctx context.Context, p propagation.TraceContext) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	}
	return p.Extract(ctx, Carrier(md))
}

// InjectOutgoing returns a copy of ctx with the SpanContext of ctx injected
// into its outgoing gRPC metadata. Metadata already present in ctx is kept.
func InjectOutgoing(ctx context.Context, p propagation.TraceContext) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	p.Inject(ctx, Carrier(md))
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that extracts
// the trace context of incoming requests into the handler context.
func UnaryServerInterceptor(p propagation.TraceContext) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(ExtractIncoming(ctx, p), req)
	}
}

// UnaryClientInterceptor returns a grpc.UnaryClientInterceptor that injects
// the trace context of the call context into the outgoing metadata.
func UnaryClientInterceptor(p propagation.TraceContext) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(InjectOutgoing(ctx, p), method, req, reply, cc, opts...)
	}
}
