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

package global // import "github.com/MrAlias/tracecontext/internal/global"

import (
	"log"
	"os"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// globalLogger holds a reference to the [logr.Logger] used within
// tracecontext.
//
// The default logger uses stdr which is backed by the standard `log.Logger`
// interface. This logger will only show messages at the Error Level.
var globalLogger = func() *atomic.Pointer[logr.Logger] {
	l := stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))

	p := new(atomic.Pointer[logr.Logger])
	p.Store(&l)
	return p
}()

// SetLogger sets the global Logger to l.
//
// To see Warn messages use a logger with `l.V(1).Enabled() == true`
// To see Info messages use a logger with `l.V(4).Enabled() == true`
// To see Debug messages use a logger with `l.V(8).Enabled() == true`.
func SetLogger(l logr.Logger) {
	globalLogger.Store(&l)
}

// GetLogger returns the global logger.
func GetLogger() logr.Logger {
	return *globalLogger.Load()
}

// Info prints messages about the general state of the propagators.
// This should be used sparingly.
func Info(msg string, keysAndValues ...any) {
	GetLogger().V(4).Info(msg, keysAndValues...)
}

// Error prints messages about exceptional states of the propagators.
func Error(err error, msg string, keysAndValues ...any) {
	GetLogger().Error(err, msg, keysAndValues...)
}

// Debug prints messages about all internal changes in the propagators.
func Debug(msg string, keysAndValues ...any) {
	GetLogger().V(8).Info(msg, keysAndValues...)
}

// Warn prints messages about warnings in the propagators.
func Warn(msg string, keysAndValues ...any) {
	GetLogger().V(1).Info(msg, keysAndValues...)
}
