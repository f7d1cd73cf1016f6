package filters

import "fmt"

// LexError reports a byte in the filter source that cannot start any
// token.
type LexError struct {
	Pos  int
	Char byte
}

func (e *LexError) Error() string {
	return fmt.Sprintf("offset %d: unexpected character %q", e.Pos, e.Char)
}

// ParseError reports a grammar violation: what the parser needed and what
// it found instead, with the byte offset of the offending token.
type ParseError struct {
	Expected string
	Found    string
	Pos      int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// UnsupportedOperatorError reports a word used in operator position that
// the language does not implement, such as contains or matches.  These
// are rejected outright rather than approximated.
type UnsupportedOperatorError struct {
	Operator string
	Pos      int
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("offset %d: operator %q is not supported", e.Pos, e.Operator)
}
