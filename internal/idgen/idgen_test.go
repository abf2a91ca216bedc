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

package idgen

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrAlias/tracecontext/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGeneratorValidIDs(t *testing.T) {
	g := New(nil)
	seen := make(map[trace.TraceID]struct{})
	for range 100 {
		tid, err := g.TraceID()
		require.NoError(t, err)
		assert.True(t, tid.IsValid())
		seen[tid] = struct{}{}

		sid, err := g.SpanID()
		require.NoError(t, err)
		assert.True(t, sid.IsValid())
	}
	assert.Len(t, seen, 100)
}

func TestGeneratorDeterministic(t *testing.T) {
	src := bytes.Repeat([]byte{0xab}, 16)
	g := New(bytes.NewReader(src))
	tid, err := g.TraceID()
	require.NoError(t, err)
	// Version 4 and RFC 4122 variant bits are applied to the raw bytes.
	assert.Equal(t, "abababababab4bababababababababab", tid.String())
}

func TestGeneratorSkipsZero(t *testing.T) {
	// The version and variant bytes are not part of a SpanID, so an all-zero
	// draw yields an invalid SpanID and is discarded.
	src := append(make([]byte, 16), bytes.Repeat([]byte{0x01}, 16)...)
	g := New(bytes.NewReader(src))

	sid, err := g.SpanID()
	require.NoError(t, err)
	assert.Equal(t, trace.SpanID{1, 1, 1, 1, 1, 1, 1, 1}, sid)
}

type errReader struct{}

var errRead = errors.New("read failure")

func (errReader) Read([]byte) (int, error) { return 0, errRead }

func TestGeneratorSourceError(t *testing.T) {
	g := New(errReader{})
	_, err := g.TraceID()
	assert.ErrorIs(t, err, errRead)
	_, err = g.SpanID()
	assert.ErrorIs(t, err, errRead)
	_, err = g.SpanContext(trace.FlagsSampled, trace.TraceState{})
	assert.ErrorIs(t, err, errRead)
}

func TestGeneratorExhausted(t *testing.T) {
	g := New(bytes.NewReader(make([]byte, 16*maxAttempts)))
	_, err := g.SpanID()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestGeneratorSpanContext(t *testing.T) {
	ts, err := trace.ParseTraceState("rojo=1")
	require.NoError(t, err)

	sc, err := New(nil).SpanContext(trace.FlagsSampled, ts)
	require.NoError(t, err)
	assert.True(t, sc.IsValid())
	assert.True(t, sc.IsSampled())
	assert.False(t, sc.IsRemote())
	assert.Equal(t, "rojo=1", sc.TraceState().String())
}

func TestGeneratorConcurrentSafe(t *testing.T) {
	g := New(nil)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, err := g.SpanID()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
