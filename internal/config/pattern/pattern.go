// Package pattern wraps compiled regular expressions so they can live inside
// comparable configuration values.
//
// A *regexp.Regexp carries internal program state and cannot be compared with
// ==. Two patterns are the same when their source text is identical.
package pattern

import (
	"fmt"
	"regexp"
)

// Error is returned when a pattern source does not compile.
type Error struct {
	// Source is the pattern text that failed to compile.
	Source string
	// Err is the underlying *syntax.Error from the regexp package.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Pattern is a compiled regular expression compared by source text.
// A Pattern is never mutated after construction.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile parses src and returns a Pattern. There is no fallback on failure.
func Compile(src string) (*Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &Error{Source: src, Err: err}
	}
	return &Pattern{source: src, re: re}, nil
}

// MustCompile is like Compile but panics on error.
// It is intended for built-in patterns only.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	if p == nil {
		return nil
	}
	return p.re
}

// Equal reports whether p and other were built from the same source text.
// Two nil patterns are equal.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.source == other.source
}

// FindAllIndex returns the byte offsets of every match in s.
func (p *Pattern) FindAllIndex(s string) [][]int {
	if p == nil {
		return nil
	}
	return p.re.FindAllStringIndex(s, -1)
}

// MarshalText implements encoding.TextMarshaler.
func (p *Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	compiled, err := Compile(string(text))
	if err != nil {
		return err
	}
	*p = *compiled
	return nil
}
