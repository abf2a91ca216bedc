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

package trace

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(kv ...string) []Entry {
	out := make([]Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Entry{Key: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestNewEntry(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "simple", key: "foo", value: "bar"},
		{name: "digit first", key: "1foo", value: "bar"},
		{name: "all key chars", key: "a0_-*/b", value: "v"},
		{name: "tenant", key: "tenant@vendor", value: "v"},
		{name: "max key", key: "a" + strings.Repeat("b", 255), value: "v"},
		{name: "max value", key: "k", value: strings.Repeat("v", 256)},
		{name: "printable value", key: "k", value: " !\"#$%&'()*+-./:;<>?@[\\]^_`{|}~"},
		{name: "empty key", key: "", value: "v", wantErr: ErrInvalidKey},
		{name: "long key", key: strings.Repeat("a", 257), value: "v", wantErr: ErrInvalidKey},
		{name: "uppercase key", key: "Foo", value: "v", wantErr: ErrInvalidKey},
		{name: "underscore first", key: "_foo", value: "v", wantErr: ErrInvalidKey},
		{name: "at first", key: "@foo", value: "v", wantErr: ErrInvalidKey},
		{name: "two at", key: "a@b@c", value: "v", wantErr: ErrInvalidKey},
		{name: "key space", key: "a b", value: "v", wantErr: ErrInvalidKey},
		{name: "empty value", key: "k", value: "", wantErr: ErrInvalidValue},
		{name: "long value", key: "k", value: strings.Repeat("v", 257), wantErr: ErrInvalidValue},
		{name: "value comma", key: "k", value: "a,b", wantErr: ErrInvalidValue},
		{name: "value equals", key: "k", value: "a=b", wantErr: ErrInvalidValue},
		{name: "value trailing space", key: "k", value: "ab ", wantErr: ErrInvalidValue},
		{name: "value tab", key: "k", value: "a\tb", wantErr: ErrInvalidValue},
		{name: "value non ascii", key: "k", value: "café", wantErr: ErrInvalidValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEntry(tc.key, tc.value)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Entry{Key: tc.key, Value: tc.value}, e)
		})
	}
}

func TestBuilderSetDeduplicates(t *testing.T) {
	b := NewBuilder(TraceState{})
	require.NoError(t, b.Set("a", "1"))
	require.NoError(t, b.Set("a", "2"))

	ts := b.Build()
	assert.Equal(t, entries("a", "2"), ts.Entries())
}

func TestBuilderSetFrontInsertion(t *testing.T) {
	parent, err := ParseTraceState("a=1,b=2,c=3")
	require.NoError(t, err)

	b := parent.Builder()
	require.NoError(t, b.Set("b", "20"))
	require.NoError(t, b.Set("d", "4"))

	got := b.Build()
	if diff := cmp.Diff(entries("d", "4", "b", "20", "a", "1", "c", "3"), got.Entries()); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a=1,b=2,c=3", parent.String(), "parent modified")
}

func TestBuilderSetInvalid(t *testing.T) {
	parent, err := ParseTraceState("a=1")
	require.NoError(t, err)

	b := parent.Builder()
	assert.ErrorIs(t, b.Set("A", "1"), ErrInvalidKey)
	assert.ErrorIs(t, b.Set("a", ""), ErrInvalidValue)
	assert.Equal(t, parent, b.Build(), "failed Set modified builder")
}

func TestBuilderRemove(t *testing.T) {
	parent, err := ParseTraceState("a=1,b=2,c=3")
	require.NoError(t, err)

	b := parent.Builder()
	b.Remove("b")
	b.Remove("missing")
	assert.Equal(t, entries("a", "1", "c", "3"), b.Build().Entries())
	assert.Equal(t, 3, parent.Len(), "parent modified")
}

func TestBuilderNoMutationReturnsParent(t *testing.T) {
	parent, err := ParseTraceState("a=1,b=2")
	require.NoError(t, err)

	b := parent.Builder()
	b.Remove("missing")
	got := b.Build()
	require.Len(t, got.list, 2)
	assert.Same(t, &parent.list[0], &got.list[0], "parent not returned")
}

func TestBuilderCapacity(t *testing.T) {
	b := NewBuilder(TraceState{})
	for i := 0; i < maxListMembers; i++ {
		require.NoError(t, b.Set(fmt.Sprintf("k%d", i), "v"))
	}
	assert.ErrorIs(t, b.Set("overflow", "v"), ErrTooManyMembers)
	// Updating an existing key on a full list is allowed.
	require.NoError(t, b.Set("k0", "updated"))

	ts := b.Build()
	assert.Equal(t, maxListMembers, ts.Len())
	assert.Equal(t, Entry{Key: "k0", Value: "updated"}, ts.Entries()[0])
}

func TestBuilderFullListRejectedSetReturnsParent(t *testing.T) {
	fill := NewBuilder(TraceState{})
	for i := 0; i < maxListMembers; i++ {
		require.NoError(t, fill.Set(fmt.Sprintf("k%d", i), "v"))
	}
	full := fill.Build()

	b := full.Builder()
	assert.ErrorIs(t, b.Set("overflow", "v"), ErrTooManyMembers)
	got := b.Build()
	require.Equal(t, maxListMembers, got.Len())
	assert.Same(t, &full.list[0], &got.list[0], "rejected Set copied the parent")
}

func TestBuilderBuildSnapshots(t *testing.T) {
	b := NewBuilder(TraceState{})
	require.NoError(t, b.Set("a", "1"))
	s0 := b.Build()

	require.NoError(t, b.Set("b", "2"))
	s1 := b.Build()

	require.NoError(t, b.Set("a", "3"))
	b.Remove("b")
	s2 := b.Build()

	assert.Equal(t, "a=1", s0.String(), "set modified")
	assert.Equal(t, "b=2,a=1", s1.String(), "set modified")
	assert.Equal(t, "a=3", s2.String())
}

func TestTraceStateInsertDelete(t *testing.T) {
	ts, err := ParseTraceState("a=1,b=2")
	require.NoError(t, err)

	ins, err := ts.Insert("c", "3")
	require.NoError(t, err)
	assert.Equal(t, "c=3,a=1,b=2", ins.String())

	_, err = ts.Insert("C", "3")
	assert.ErrorIs(t, err, ErrInvalidKey)

	del := ins.Delete("a")
	assert.Equal(t, "c=3,b=2", del.String())
	assert.Equal(t, "a=1,b=2", ts.String(), "original modified")
}

func TestTraceStateGetWalk(t *testing.T) {
	ts, err := ParseTraceState("a=1,b=2,c=3")
	require.NoError(t, err)

	v, ok := ts.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = ts.Get("z")
	assert.False(t, ok)

	var keys []string
	ts.Walk(func(k, _ string) bool {
		keys = append(keys, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestTraceStateEntriesIsCopy(t *testing.T) {
	ts, err := ParseTraceState("a=1")
	require.NoError(t, err)
	e := ts.Entries()
	e[0].Value = "changed"
	assert.Equal(t, "a=1", ts.String())
}

func TestParseTraceState(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    []Entry
		wantErr error
	}{
		{name: "empty", in: ""},
		{name: "single", in: "foo=1", want: entries("foo", "1")},
		{
			name: "order preserved",
			in:   "rojo=00f067aa0ba902b7,congo=t61rcWkgMzE",
			want: entries("rojo", "00f067aa0ba902b7", "congo", "t61rcWkgMzE"),
		},
		{
			name: "tabs and spaces around members",
			in:   "a=1\t,\tb=2 , c=3\t",
			want: entries("a", "1", "b", "2", "c", "3"),
		},
		{name: "empty members", in: ",a=1,,b=2,", want: entries("a", "1", "b", "2")},
		{name: "only delimiters", in: ",,\t,"},
		{name: "leftmost duplicate wins", in: "a=1,b=2,a=3", want: entries("a", "1", "b", "2")},
		{name: "value with equals split at first", in: "a=b=c", wantErr: ErrInvalidValue},
		{name: "missing delimiter", in: "a=1,b", wantErr: ErrInvalidMember},
		{name: "invalid key", in: "A=1", wantErr: ErrInvalidKey},
		{name: "invalid value", in: "a=", wantErr: ErrInvalidValue},
		{name: "inner tab in value", in: "a=x\ty", wantErr: ErrInvalidValue},
		{name: "tenant key", in: "t@v=1", want: entries("t@v", "1")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTraceState(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, 0, got.Len())
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got.list); diff != "" {
				t.Errorf("ParseTraceState(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

// Parsing used to apply members left to right through front insertion,
// reversing the header. In-memory order must match the header.
func TestParseTraceStateKeepsHeaderOrder(t *testing.T) {
	const header = "a=1,b=2,c=3"
	ts, err := ParseTraceState(header)
	require.NoError(t, err)
	assert.Equal(t, Entry{Key: "a", Value: "1"}, ts.Entries()[0])
	assert.Equal(t, header, ts.String())
}

func TestParseTraceStateMemberLimit(t *testing.T) {
	members := make([]string, maxListMembers)
	for i := range members {
		members[i] = fmt.Sprintf("k%d=v", i)
	}

	ts, err := ParseTraceState(strings.Join(members, ","))
	require.NoError(t, err)
	assert.Equal(t, maxListMembers, ts.Len())

	members = append(members, "k32=v")
	_, err = ParseTraceState(strings.Join(members, ","))
	assert.ErrorIs(t, err, ErrTooManyMembers)
}

func TestTraceStateConcurrentReaders(t *testing.T) {
	ts, err := ParseTraceState("a=1,b=2,c=3")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mod, err := ts.Insert(fmt.Sprintf("g%d", i), "x")
			assert.NoError(t, err)
			assert.Equal(t, 4, mod.Len())
			assert.Equal(t, "a=1,b=2,c=3", ts.String())
		}(i)
	}
	wg.Wait()
}
