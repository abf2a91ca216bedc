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
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// config contains the options of a TraceContext.
type config struct {
	meterProvider metric.MeterProvider
	logger        *logr.Logger
}

// newConfig returns a config with all opts applied.
func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		c = o.apply(c)
	}
	if c.meterProvider == nil {
		c.meterProvider = noop.NewMeterProvider()
	}
	return c
}

// Option configures a TraceContext.
type Option interface {
	apply(config) config
}

type optionFunc func(config) config

func (fn optionFunc) apply(c config) config {
	return fn(c)
}

// WithMeterProvider sets the MeterProvider used to create the instruments
// recording Inject and Extract outcomes.
//
// If this option is not used, or mp is nil, no metrics are recorded.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return optionFunc(func(c config) config {
		c.meterProvider = mp
		return c
	})
}

// WithLogger sets the logger used to report discarded headers.
//
// If this option is not used, the process-wide logger set with
// tracecontext.SetLogger is used.
func WithLogger(l logr.Logger) Option {
	return optionFunc(func(c config) config {
		c.logger = &l
		return c
	})
}
