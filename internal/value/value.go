package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Value
type Kind int

const (
	KindInteger Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindInteger {
		return "INTEGER"
	}
	return "TEXT"
}

// Value is an immutable tagged scalar: either an unsigned integer or a
// text string. The zero Value is Integer(0).
type Value struct {
	kind Kind
	n    uint64
	s    string
}

// Integer constructs an integer Value
func Integer(n uint64) Value {
	return Value{kind: KindInteger, n: n}
}

// Text constructs a text Value
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

func (v Value) Kind() Kind { return v.kind }

// Uint returns the integer payload; only meaningful when Kind is KindInteger
func (v Value) Uint() uint64 { return v.n }

// Text returns the text payload; only meaningful when Kind is KindText
func (v Value) Text() string { return v.s }

// String renders integers as bare decimal digits and text verbatim,
// without quoting
func (v Value) String() string {
	if v.kind == KindInteger {
		return strconv.FormatUint(v.n, 10)
	}
	return v.s
}

// ParseError reports a field that looked numeric but cannot be represented
// as an unsigned 64-bit integer
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as integer: %s", e.Input, e.Reason)
}

// Parse classifies raw text into a Value. A non-empty string of ASCII
// decimal digits becomes an Integer; everything else, including the empty
// string, becomes Text verbatim. All-digit input with a redundant leading
// zero or exceeding 64 unsigned bits fails with a ParseError.
func Parse(s string) (Value, error) {
	if !isAllDigits(s) {
		return Text(s), nil
	}
	if len(s) > 1 && s[0] == '0' {
		return Value{}, &ParseError{Input: s, Reason: "leading zero"}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Value{}, &ParseError{Input: s, Reason: "exceeds 64-bit unsigned range"}
	}
	return Integer(n), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Compare defines the total order used by indexes and filters.
// Same-variant values compare natively: numeric magnitude for integers,
// lexicographic byte order for text. Across variants every Integer orders
// before every Text; this rank is an explicit policy, not an artifact of
// string formatting.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind == KindInteger {
			return -1
		}
		return 1
	}
	if a.kind == KindInteger {
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.s, b.s)
}
