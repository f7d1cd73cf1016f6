package filters

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestCompileRendering(t *testing.T) {
	// String() renders the canonical source form, which makes tree shape
	// (precedence, grouping) visible without exporting node types.
	testCases := map[string]struct {
		src       string
		canonical string
	}{
		"bare protocol":   {`ngap`, `ngap`},
		"field presence":  {`tcp.flags`, `tcp.flags`},
		"equality":        {`sctp.dstport == 38412`, `sctp.dstport == 38412`},
		"inequality":      {`ip.ttl != 64`, `ip.ttl != 64`},
		"quoted value":    {`http.method == "GET"`, `http.method == "GET"`},
		"address value":   {`ip.src == 10.0.0.1`, `ip.src == 10.0.0.1`},
		"and":             {`tcp && ip`, `tcp && ip`},
		"or":              {`tcp || udp`, `tcp || udp`},
		"and binds tight": {`a && b || c`, `a && b || c`},
		"grouped or":      {`(a || b) && c`, `(a || b) && c`},
		"right group":     {`a && (b || c)`, `a && (b || c)`},
		"redundant group": {`((tcp))`, `tcp`},
		"not":             {`!tcp`, `!tcp`},
		"not group":       {`!(tcp && udp)`, `!(tcp && udp)`},
		"double not":      {`!!tcp`, `!!tcp`},
		"not comparison":  {`!ip.ttl == 64`, `!ip.ttl == 64`},
		"whitespace":      {"  tcp \t&&\n udp ", `tcp && udp`},
		"empty":           {``, ``},
		"blank":           {`   `, ``},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			e, err := Compile(tc.src)
			is.NoErr(err) // filter compiles
			is.Equal(e.String(), tc.canonical)
		})
	}
}

func TestCompileRoundTrip(t *testing.T) {
	is := is.New(t)

	// the canonical rendering re-parses to the same tree
	for _, src := range []string{
		`(a || b) && c`,
		`a || b && !c`,
		`ip.src == 10.0.0.1 && (tcp || udp)`,
		`!(ngap && sctp.dstport == 38412)`,
	} {
		e, err := Compile(src)
		is.NoErr(err)
		again, err := Compile(e.String())
		is.NoErr(err)
		is.Equal(again.String(), e.String()) // rendering is a fixed point
	}
}

func TestCompileParseErrors(t *testing.T) {
	testCases := map[string]struct {
		src      string
		expected string // ParseError.Expected
	}{
		"trailing tokens":   {`tcp udp`, "end of expression"},
		"trailing operator": {`tcp &&`, "protocol name, '!' or '('"},
		"leading operator":  {`&& tcp`, "protocol name, '!' or '('"},
		"unclosed paren":    {`(tcp && udp`, "')'"},
		"stray paren":       {`tcp)`, "end of expression"},
		"empty parens":      {`()`, "protocol name, '!' or '('"},
		"dot without field": {`tcp.`, "field name"},
		"dot then operator": {`tcp. == 80`, "field name"},
		"missing value":     {`tcp.dstport ==`, "comparison value"},
		"ident as value":    {`tcp.dstport == http`, "comparison value"},
		"value as primary":  {`80 && tcp`, "protocol name, '!' or '('"},
		"bare not":          {`!`, "protocol name, '!' or '('"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := Compile(tc.src)
			var parseErr *ParseError
			is.True(errors.As(err, &parseErr)) // failure should be a ParseError
			is.Equal(parseErr.Expected, tc.expected)
		})
	}
}

func TestCompileUnsupportedOperators(t *testing.T) {
	testCases := map[string]struct {
		src      string
		operator string
	}{
		"contains":            {`ip.src contains "1.2"`, "contains"},
		"matches":             {`http.host matches "go.*"`, "matches"},
		"in":                  {`tcp.dstport in 80`, "in"},
		"after bare protocol": {`tcp contains "x"`, "contains"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := Compile(tc.src)
			var unsup *UnsupportedOperatorError
			is.True(errors.As(err, &unsup)) // must be refused by name, not approximated
			is.Equal(unsup.Operator, tc.operator)
		})
	}
}
