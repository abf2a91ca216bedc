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

package trace // import "github.com/MrAlias/tracecontext/trace"

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	maxListMembers = 32
	maxKeyLength   = 256
	maxValueLength = 256

	listDelimiter      = ","
	memberDelimiter    = "="
	optionalWhitespace = " \t"
)

var (
	// ErrInvalidKey is returned when a list-member key does not conform to
	// the W3C tracestate key grammar.
	ErrInvalidKey = errors.New("invalid tracestate key")
	// ErrInvalidValue is returned when a list-member value does not conform
	// to the W3C tracestate value grammar.
	ErrInvalidValue = errors.New("invalid tracestate value")
	// ErrInvalidMember is returned when a list-member has no key/value
	// delimiter.
	ErrInvalidMember = errors.New("invalid tracestate list-member")
	// ErrTooManyMembers is returned when a TraceState would hold more than
	// 32 list-members.
	ErrTooManyMembers = errors.New("too many list-members in tracestate")
)

// Entry is an immutable key-value pair of a TraceState.
type Entry struct {
	Key   string
	Value string
}

// NewEntry returns an Entry for key and value. An error is returned if
// either does not conform to the W3C tracestate grammar.
func NewEntry(key, value string) (Entry, error) {
	if !validateKey(key) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !validateValue(value) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}
	return Entry{Key: key, Value: value}, nil
}

// String encodes the Entry as a tracestate list-member.
func (e Entry) String() string {
	return e.Key + memberDelimiter + e.Value
}

func isLowerAlphaNum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}

// validateKey reports whether key is 1 to 256 characters that start with a
// lowercase letter or digit and otherwise only contain lowercase letters,
// digits, '_', '-', '*', '/' and at most one '@'.
func validateKey(key string) bool {
	if len(key) == 0 || len(key) > maxKeyLength || !isLowerAlphaNum(key[0]) {
		return false
	}
	var at bool
	for i := 1; i < len(key); i++ {
		c := key[i]
		switch {
		case isLowerAlphaNum(c), c == '_', c == '-', c == '*', c == '/':
		case c == '@':
			if at {
				return false
			}
			at = true
		default:
			return false
		}
	}
	return true
}

// validateValue reports whether value is 1 to 256 printable ASCII
// characters, excluding ',' and '=', that does not end in a space.
func validateValue(value string) bool {
	if len(value) == 0 || len(value) > maxValueLength || value[len(value)-1] == ' ' {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < 0x20 || c > 0x7e || c == ',' || c == '=' {
			return false
		}
	}
	return true
}

// TraceState provides additional vendor-specific trace identification
// information across different distributed tracing systems. It represents an
// immutable list consisting of key/value pairs. The most recently set entry
// is first.
//
// The zero value is the empty TraceState. Every modification returns a new
// TraceState so values can be shared between goroutines without locking.
type TraceState struct { //nolint:revive // revive complains about stutter of `trace.TraceState`
	list []Entry
}

var _ json.Marshaler = TraceState{}

// String encodes the TraceState into a string compliant with the W3C
// Trace Context specification. The returned string will be invalid if the
// TraceState contains any invalid members.
func (ts TraceState) String() string {
	if len(ts.list) == 0 {
		return ""
	}
	var n int
	n += len(ts.list)     // member delimiters: '='
	n += len(ts.list) - 1 // list delimiters: ','
	for _, e := range ts.list {
		n += len(e.Key)
		n += len(e.Value)
	}

	var sb strings.Builder
	sb.Grow(n)
	_, _ = sb.WriteString(ts.list[0].Key)
	_ = sb.WriteByte('=')
	_, _ = sb.WriteString(ts.list[0].Value)
	for i := 1; i < len(ts.list); i++ {
		_ = sb.WriteByte(listDelimiter[0])
		_, _ = sb.WriteString(ts.list[i].Key)
		_ = sb.WriteByte('=')
		_, _ = sb.WriteString(ts.list[i].Value)
	}
	return sb.String()
}

// MarshalJSON marshals the TraceState into JSON.
func (ts TraceState) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// Len returns the number of list-members in the TraceState.
func (ts TraceState) Len() int {
	return len(ts.list)
}

// Get returns the value paired with key and true if it exists. Otherwise
// an empty string and false are returned.
func (ts TraceState) Get(key string) (string, bool) {
	for _, e := range ts.list {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns a copy of the list-members in order.
func (ts TraceState) Entries() []Entry {
	return slices.Clone(ts.list)
}

// Walk walks all key value pairs in the TraceState by calling f. Iteration
// stops if f returns false.
func (ts TraceState) Walk(f func(key, value string) bool) {
	for _, e := range ts.list {
		if !f(e.Key, e.Value) {
			break
		}
	}
}

// Builder returns a Builder based on ts.
func (ts TraceState) Builder() *Builder {
	return NewBuilder(ts)
}

// Insert returns a copy of the TraceState with key and value set as the
// first list-member. Any existing list-member with the same key is removed.
func (ts TraceState) Insert(key, value string) (TraceState, error) {
	b := NewBuilder(ts)
	if err := b.Set(key, value); err != nil {
		return ts, err
	}
	return b.Build(), nil
}

// Delete returns a copy of the TraceState with the list-member identified by
// key removed.
func (ts TraceState) Delete(key string) TraceState {
	b := NewBuilder(ts)
	b.Remove(key)
	return b.Build()
}

// Builder accumulates modifications to a parent TraceState.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	parent TraceState
	// entries is nil until the first modification. It is owned by the
	// Builder unless shared is true.
	entries []Entry
	shared  bool
}

// NewBuilder returns a Builder that applies modifications to parent.
func NewBuilder(parent TraceState) *Builder {
	return &Builder{parent: parent}
}

// own makes sure b.entries is a private copy that can be mutated.
func (b *Builder) own() {
	switch {
	case b.entries == nil:
		b.entries = make([]Entry, len(b.parent.list), maxListMembers)
		copy(b.entries, b.parent.list)
	case b.shared:
		entries := make([]Entry, len(b.entries), maxListMembers)
		copy(entries, b.entries)
		b.entries = entries
		b.shared = false
	}
}

func (b *Builder) index(key string) int {
	return slices.IndexFunc(b.entries, func(e Entry) bool { return e.Key == key })
}

// Set adds or updates the entry with key. The entry is always placed at the
// front of the list.
//
// An error is returned, and the Builder is left unchanged, if key or value
// are invalid or if adding a new key would exceed 32 list-members.
func (b *Builder) Set(key, value string) error {
	e, err := NewEntry(key, value)
	if err != nil {
		return err
	}

	current := b.entries
	if current == nil {
		current = b.parent.list
	}
	if len(current) >= maxListMembers && !slices.ContainsFunc(current, func(e Entry) bool { return e.Key == key }) {
		return fmt.Errorf("%w: cannot add %q", ErrTooManyMembers, key)
	}
	b.own()

	if i := b.index(key); i >= 0 {
		// Shift the preceding entries right by one, overwriting the old
		// entry, and place the new one first.
		copy(b.entries[1:i+1], b.entries[:i])
		b.entries[0] = e
		return nil
	}
	b.entries = slices.Insert(b.entries, 0, e)
	return nil
}

// Remove removes the entry with key if it exists.
func (b *Builder) Remove(key string) {
	if b.entries == nil {
		if _, ok := b.parent.Get(key); !ok {
			return
		}
	}
	b.own()
	if i := b.index(key); i >= 0 {
		b.entries = slices.Delete(b.entries, i, i+1)
	}
}

// Build returns the resulting TraceState. If no modification was made the
// parent is returned.
//
// The Builder can continue to be used after Build. Subsequent modifications
// do not affect already built TraceStates.
func (b *Builder) Build() TraceState {
	if b.entries == nil {
		return b.parent
	}
	b.shared = true
	if len(b.entries) == 0 {
		return TraceState{}
	}
	return TraceState{list: b.entries[:len(b.entries):len(b.entries)]}
}

// ParseTraceState attempts to decode a TraceState from the passed string. It
// returns an error if the input is invalid according to the W3C Trace
// Context specification.
//
// Optional whitespace around list-members is ignored and empty list-members
// are skipped. When a key appears more than once the leftmost value is kept.
// The order of the returned TraceState matches the order of ts.
func ParseTraceState(ts string) (TraceState, error) {
	if ts == "" {
		return TraceState{}, nil
	}

	wrapErr := func(err error) error {
		return fmt.Errorf("failed to parse tracestate: %w", err)
	}

	var members []string
	for _, m := range strings.Split(ts, listDelimiter) {
		m = strings.Trim(m, optionalWhitespace)
		if m == "" {
			continue
		}
		members = append(members, m)
	}
	if len(members) > maxListMembers {
		return TraceState{}, wrapErr(fmt.Errorf("%w: %d", ErrTooManyMembers, len(members)))
	}

	// Applying members right-to-left with front insertion keeps header
	// order and lets the leftmost duplicate win.
	b := NewBuilder(TraceState{})
	for i := len(members) - 1; i >= 0; i-- {
		key, value, ok := strings.Cut(members[i], memberDelimiter)
		if !ok {
			return TraceState{}, wrapErr(fmt.Errorf("%w: %q", ErrInvalidMember, members[i]))
		}
		if err := b.Set(key, value); err != nil {
			return TraceState{}, wrapErr(err)
		}
	}
	return b.Build(), nil
}
