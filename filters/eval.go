package filters

import (
	"strconv"

	"github.com/pktai/pktfilter/packet"
)

// literalEqual compares a stored field value against a comparison literal.
// The comparison is numeric when both sides read as integers, so a port
// stored as text still equals a bare number in the filter.  Anything
// else, dotted-quad addresses included, is an exact text match on the
// value's canonical form.
func literalEqual(v packet.Value, lit string) bool {
	if n, ok := v.Int(); ok {
		if m, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n == m
		}
	}
	return v.Text() == lit
}
