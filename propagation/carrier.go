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
	"net/http"
)

// TextMapCarrier is the storage medium used by a TextMapPropagator.
// See ValuesGetter for how a TextMapCarrier can get multiple values for a key.
type TextMapCarrier interface {
	// DO NOT CHANGE: any modification will not be backwards compatible and
	// must never be done outside of a new major release.

	// Get returns the value associated with the passed key.
	Get(key string) string
	// DO NOT CHANGE: any modification will not be backwards compatible and
	// must never be done outside of a new major release.

	// Set stores the key-value pair.
	Set(key string, value string)
	// DO NOT CHANGE: any modification will not be backwards compatible and
	// must never be done outside of a new major release.

	// Keys lists the keys stored in this carrier.
	Keys() []string
	// DO NOT CHANGE: any modification will not be backwards compatible and
	// must never be done outside of a new major release.
}

// ValuesGetter can return multiple values for a single key,
// with contrast to TextMapCarrier.Get which returns a single value.
type ValuesGetter interface {
	// Values returns all values associated with the passed key.
	Values(key string) []string
}

// MapCarrier is a TextMapCarrier that uses a map held in memory as a storage
// medium for propagated key-value pairs.
type MapCarrier map[string]string

// Compile time check that MapCarrier implements the TextMapCarrier.
var _ TextMapCarrier = MapCarrier{}

// Get returns the value associated with the passed key.
func (c MapCarrier) Get(key string) string {
	return c[key]
}

// Set stores the key-value pair.
func (c MapCarrier) Set(key, value string) {
	c[key] = value
}

// Keys lists the keys stored in this carrier.
func (c MapCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// HeaderCarrier adapts http.Header to satisfy the TextMapCarrier and
// ValuesGetter interfaces.
type HeaderCarrier http.Header

// Compile time check that HeaderCarrier implements ValuesGetter.
var (
	_ TextMapCarrier = HeaderCarrier{}
	_ ValuesGetter   = HeaderCarrier{}
)

// Get returns the first value associated with the passed key.
func (hc HeaderCarrier) Get(key string) string {
	return http.Header(hc).Get(key)
}

// Values returns all values associated with the passed key.
func (hc HeaderCarrier) Values(key string) []string {
	return http.Header(hc).Values(key)
}

// Set stores the key-value pair.
func (hc HeaderCarrier) Set(key string, value string) {
	http.Header(hc).Set(key, value)
}

// Keys lists the keys stored in this carrier.
func (hc HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(hc))
	for k := range hc {
		keys = append(keys, k)
	}
	return keys
}

// Getter reads a header field from a carrier of type C.
type Getter[C any] interface {
	Get(carrier C, key string) string
}

// Setter writes a header field to a carrier of type C.
type Setter[C any] interface {
	Set(carrier C, key, value string)
}

// GetterFunc is a function adapter for Getter.
type GetterFunc[C any] func(carrier C, key string) string

// Get calls f(carrier, key). A nil f reads no value.
func (f GetterFunc[C]) Get(carrier C, key string) string {
	if f == nil {
		return ""
	}
	return f(carrier, key)
}

// SetterFunc is a function adapter for Setter.
type SetterFunc[C any] func(carrier C, key, value string)

// Set calls f(carrier, key, value). A nil f writes nothing.
func (f SetterFunc[C]) Set(carrier C, key, value string) {
	if f == nil {
		return
	}
	f(carrier, key, value)
}

// hookCarrier binds caller supplied hooks to a carrier so it can be used
// as a TextMapCarrier.
type hookCarrier[C any] struct {
	carrier C
	getter  Getter[C]
	setter  Setter[C]
}

func (c hookCarrier[C]) Get(key string) string {
	if c.getter == nil {
		return ""
	}
	return c.getter.Get(c.carrier, key)
}

func (c hookCarrier[C]) Set(key, value string) {
	if c.setter == nil {
		return
	}
	c.setter.Set(c.carrier, key, value)
}

// Keys is unknown for hook based carriers.
func (c hookCarrier[C]) Keys() []string { return nil }

// Inject writes the SpanContext held by ctx into carrier through setter.
// It is equivalent to p.Inject with a TextMapCarrier. A nil setter, or a nil
// SetterFunc, writes nothing.
func Inject[C any](ctx context.Context, p TraceContext, setter Setter[C], carrier C) {
	p.Inject(ctx, hookCarrier[C]{carrier: carrier, setter: setter})
}

// Extract reads a SpanContext from carrier through getter and returns a copy
// of ctx holding it. It is equivalent to p.Extract with a TextMapCarrier.
// A nil getter, or a nil GetterFunc, reads no values and yields an invalid
// SpanContext.
func Extract[C any](ctx context.Context, p TraceContext, getter Getter[C], carrier C) context.Context {
	return p.Extract(ctx, hookCarrier[C]{carrier: carrier, getter: getter})
}
