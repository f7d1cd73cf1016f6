package filters

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	testCases := map[string]struct {
		src   string
		kinds []tokenKind
	}{
		"empty":       {``, []tokenKind{tkEnd}},
		"bare proto":  {`ngap`, []tokenKind{tkIdent, tkEnd}},
		"dotted name": {`sctp.dstport`, []tokenKind{tkIdent, tkDot, tkIdent, tkEnd}},
		"comparison": {`sctp.dstport == 38412`,
			[]tokenKind{tkIdent, tkDot, tkIdent, tkEq, tkLiteral, tkEnd}},
		"inequality": {`ip.ttl != 64`,
			[]tokenKind{tkIdent, tkDot, tkIdent, tkNe, tkLiteral, tkEnd}},
		"quoted literal": {`http.method == "GET"`,
			[]tokenKind{tkIdent, tkDot, tkIdent, tkEq, tkLiteral, tkEnd}},
		"single quotes": {`http.method == 'GET'`,
			[]tokenKind{tkIdent, tkDot, tkIdent, tkEq, tkLiteral, tkEnd}},
		"dotted quad": {`ip.src == 10.0.0.1`,
			[]tokenKind{tkIdent, tkDot, tkIdent, tkEq, tkLiteral, tkEnd}},
		"logic": {`tcp && udp || sctp`,
			[]tokenKind{tkIdent, tkAnd, tkIdent, tkOr, tkIdent, tkEnd}},
		"negation":     {`!tcp`, []tokenKind{tkNot, tkIdent, tkEnd}},
		"parens":       {`(tcp)`, []tokenKind{tkLParen, tkIdent, tkRParen, tkEnd}},
		"underscore":   {`nas_5gs`, []tokenKind{tkIdent, tkEnd}},
		"no space ops": {`a&&b`, []tokenKind{tkIdent, tkAnd, tkIdent, tkEnd}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			toks, err := tokenize(tc.src)
			is.NoErr(err) // source should lex
			is.Equal(kinds(toks), tc.kinds)
		})
	}
}

func TestTokenizeText(t *testing.T) {
	is := is.New(t)

	toks, err := tokenize(`sctp.dstport == "38412"`)
	is.NoErr(err)
	is.Equal(toks[0].text, "sctp")
	is.Equal(toks[2].text, "dstport")
	is.Equal(toks[4].text, "38412") // quotes are not part of the literal text

	toks, err = tokenize(`ip.src == 10.0.0.1`)
	is.NoErr(err)
	is.Equal(toks[4].text, "10.0.0.1") // the address lexes as one literal
}

func TestTokenizeErrors(t *testing.T) {
	testCases := map[string]struct {
		src  string
		pos  int
		char byte
	}{
		"lone equals":       {`ip.ttl = 64`, 7, '='},
		"lone ampersand":    {`tcp & udp`, 4, '&'},
		"lone pipe":         {`tcp | udp`, 4, '|'},
		"stray byte":        {`tcp @ udp`, 4, '@'},
		"tilde operator":    {`ip.src ~ "10"`, 7, '~'},
		"unmatched quote":   {`http.method == "GET`, 15, '"'},
		"unmatched squote":  {`http.method == 'GET`, 15, '\''},
		"mixed quote marks": {`http.method == "GET'`, 15, '"'},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := tokenize(tc.src)
			var lexErr *LexError
			is.True(errors.As(err, &lexErr)) // failure should be a LexError
			is.Equal(lexErr.Pos, tc.pos)
			is.Equal(lexErr.Char, tc.char)
		})
	}
}
