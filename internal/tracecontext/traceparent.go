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

package tracecontext // import "github.com/MrAlias/tracecontext/internal/tracecontext"

import (
	"fmt"
	"strings"

	"github.com/MrAlias/tracecontext/trace"
)

const (
	// Version is the traceparent header version written by EncodeTraceParent.
	Version = 0

	// invalidVersion is reserved by the W3C specification and never valid.
	invalidVersion = 0xff
)

var (
	// ErrInvalidFormat is returned when the traceparent format is invalid.
	// Such as, if there are missing characters or a field contains an
	// unexpected character set.
	ErrInvalidFormat = errorf("invalid traceparent format")
	// ErrInvalidVersion is returned when the encoded version is invalid, i.e.
	// the version is 255.
	ErrInvalidVersion = errorf("invalid traceparent version")
	// ErrInvalidTraceID is returned when the encoded trace ID is invalid,
	// i.e. all bytes are 0
	ErrInvalidTraceID = errorf("invalid traceparent trace ID")
	// ErrInvalidSpanID is returned when the encoded span ID is invalid, i.e.
	// all bytes are 0
	ErrInvalidSpanID = errorf("invalid traceparent span ID")
)

const (
	numVersionChars = 2
	numTraceIDChars = 32
	numSpanIDChars  = 16
	numFlagChars    = 2
	numDelimiters   = 3

	// HeaderSize is the exact length of a version 00 traceparent value.
	HeaderSize = numVersionChars + numTraceIDChars + numSpanIDChars + numFlagChars + numDelimiters

	delimiter = '-'
)

// fieldLengths are the number of hex digits in each traceparent field.
var fieldLengths = [...]int{numVersionChars, numTraceIDChars, numSpanIDChars, numFlagChars}

// delimiterOffsets are the fixed positions of the '-' delimiters.
var delimiterOffsets = [...]int{
	numVersionChars,
	numVersionChars + 1 + numTraceIDChars,
	numVersionChars + 1 + numTraceIDChars + 1 + numSpanIDChars,
}

const hexDigits = "0123456789abcdef"

var versionPart = fmt.Sprintf("%02x", Version)

// EncodeTraceParent encodes the identity of sc as a version 00 traceparent
// header value. No validation of sc is performed. If sc is invalid the
// returned string will also be invalid.
func EncodeTraceParent(sc trace.SpanContext) string {
	traceID := sc.TraceID()
	spanID := sc.SpanID()
	flags := [1]byte{byte(sc.TraceFlags())}

	var sb strings.Builder
	sb.Grow(HeaderSize)
	_, _ = sb.WriteString(versionPart)
	for _, src := range [][]byte{traceID[:], spanID[:], flags[:]} {
		_ = sb.WriteByte(delimiter)
		for _, b := range src {
			_ = sb.WriteByte(hexDigits[b>>4])
			_ = sb.WriteByte(hexDigits[b&0x0f])
		}
	}
	return sb.String()
}

// DecodeTraceParent decodes a traceparent header value into a remote
// SpanContext with an empty TraceState.
//
// If s is not a valid traceparent value, the zero (invalid) SpanContext is
// returned along with an error wrapping ErrTraceContext.
func DecodeTraceParent(s string) (trace.SpanContext, error) {
	fields, err := scanTraceParent(s)
	if err != nil {
		return trace.SpanContext{}, err
	}
	version, traceID, spanID, flags := fields[0], fields[1], fields[2], fields[3]

	if isZeros(traceID) {
		return trace.SpanContext{}, fmt.Errorf("%w: %q", ErrInvalidTraceID, traceID)
	}
	if isZeros(spanID) {
		return trace.SpanContext{}, fmt.Errorf("%w: %q", ErrInvalidSpanID, spanID)
	}

	var ver, fl [1]byte
	decodeHex(ver[:], version)
	if ver[0] == invalidVersion {
		return trace.SpanContext{}, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	var scc trace.SpanContextConfig
	decodeHex(scc.TraceID[:], traceID)
	decodeHex(scc.SpanID[:], spanID)
	decodeHex(fl[:], flags)
	scc.TraceFlags = trace.TraceFlags(fl[0])
	scc.Remote = true

	return trace.NewSpanContext(scc), nil
}

// scanTraceParent validates the structure of s and returns its four hex
// fields. Tabs are skipped during the scan.
func scanTraceParent(s string) (fields [4]string, err error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s: %q", ErrInvalidFormat, reason, s)
	}

	if len(s) != HeaderSize {
		return fields, invalid("wrong length")
	}
	for _, off := range delimiterOffsets {
		if s[off] != delimiter {
			return fields, invalid("misplaced delimiter")
		}
	}

	field := 0
	remaining := fieldLengths[0]
	start := -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\t':
			continue
		case c == delimiter:
			if remaining != 0 {
				return fields, invalid("short field")
			}
			if field == len(fieldLengths)-1 {
				return fields, invalid("too many fields")
			}
			fields[field] = s[start : start+fieldLengths[field]]
			field++
			remaining = fieldLengths[field]
			start = -1
		case isHexDigit(c):
			if remaining == 0 {
				return fields, invalid("long field")
			}
			if start == -1 {
				start = i
			}
			remaining--
		default:
			return fields, invalid("invalid character")
		}
	}
	if field != len(fieldLengths)-1 || remaining != 0 {
		return fields, invalid("short field")
	}
	fields[field] = s[start : start+fieldLengths[field]]
	return fields, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

func isZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

func fromHexChar(c byte) byte {
	if c <= '9' {
		return c - '0'
	}
	return c - 'a' + 10
}

// decodeHex decodes the already validated lowercase hex string h into dst.
func decodeHex(dst []byte, h string) {
	for i := range dst {
		dst[i] = fromHexChar(h[2*i])<<4 | fromHexChar(h[2*i+1])
	}
}
