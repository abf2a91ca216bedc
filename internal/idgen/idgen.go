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

// Package idgen generates random trace and span identifiers.
package idgen // import "github.com/MrAlias/tracecontext/internal/idgen"

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/MrAlias/tracecontext/trace"
)

// maxAttempts bounds the number of draws made to obtain a non-zero ID.
const maxAttempts = 8

// ErrExhausted is returned when the random source only produced all-zero
// identifiers.
var ErrExhausted = errors.New("idgen: random source produced no valid identifier")

// Generator draws identifiers from version 4 UUIDs read from a random
// source. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	rand io.Reader
}

// New returns a Generator reading from r. If r is nil, crypto/rand is used.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

func (g *Generator) next() (uuid.UUID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uuid.NewRandomFromReader(g.rand)
}

// TraceID returns a new valid TraceID.
func (g *Generator) TraceID() (trace.TraceID, error) {
	for range maxAttempts {
		u, err := g.next()
		if err != nil {
			return trace.TraceID{}, fmt.Errorf("idgen: trace ID: %w", err)
		}
		// The version and variant bits of u are fixed, all others random.
		if tid := trace.TraceID(u); tid.IsValid() {
			return tid, nil
		}
	}
	return trace.TraceID{}, ErrExhausted
}

// SpanID returns a new valid SpanID.
func (g *Generator) SpanID() (trace.SpanID, error) {
	for range maxAttempts {
		u, err := g.next()
		if err != nil {
			return trace.SpanID{}, fmt.Errorf("idgen: span ID: %w", err)
		}
		// Skip the version (byte 6) and variant (byte 8) bits.
		var sid trace.SpanID
		copy(sid[:6], u[:6])
		copy(sid[6:], u[14:])
		if sid.IsValid() {
			return sid, nil
		}
	}
	return trace.SpanID{}, ErrExhausted
}

// SpanContext returns a new valid local SpanContext with the given flags
// and TraceState.
func (g *Generator) SpanContext(flags trace.TraceFlags, ts trace.TraceState) (trace.SpanContext, error) {
	tid, err := g.TraceID()
	if err != nil {
		return trace.SpanContext{}, err
	}
	sid, err := g.SpanID()
	if err != nil {
		return trace.SpanContext{}, err
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: flags,
		TraceState: ts,
	}), nil
}
