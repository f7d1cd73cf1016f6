package filters

import (
	"fmt"
	"strings"

	"github.com/pktai/pktfilter/packet"
)

// Compile turns filter source text into an executable expression.  Empty
// (or all-whitespace) source compiles to the identity filter, which
// matches every packet; that is the only way to get a match-everything
// filter, a malformed expression is always an error and never falls back
// to it.
func Compile(source string) (Expr, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return matchAll{}, nil
	}
	toks, err := tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("lexing filter: %w", err)
	}
	e, err := parse(toks)
	if err != nil {
		return nil, fmt.Errorf("parsing filter: %w", err)
	}
	return e, nil
}

// Apply evaluates a compiled expression across a packet sequence and
// returns the matching subsequence.  Original order is kept and no view
// is duplicated or dropped; the result aliases the same views, it does
// not copy them.
func Apply(views []*packet.View, e Expr) []*packet.View {
	out := make([]*packet.View, 0, len(views))
	for _, v := range views {
		if e.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Filter compiles source and applies it in one step.  On a lex or parse
// error no filtering happens at all; there is no partial application.
func Filter(views []*packet.View, source string) ([]*packet.View, error) {
	e, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return Apply(views, e), nil
}
