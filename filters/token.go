package filters

import "fmt"

type tokenKind int

const (
	tkEnd tokenKind = iota
	tkIdent
	tkLiteral
	tkDot
	tkEq
	tkNe
	tkAnd
	tkOr
	tkNot
	tkLParen
	tkRParen
)

var tokenNames = map[tokenKind]string{
	tkEnd:     "end of expression",
	tkIdent:   "identifier",
	tkLiteral: "value",
	tkDot:     "'.'",
	tkEq:      "'=='",
	tkNe:      "'!='",
	tkAnd:     "'&&'",
	tkOr:      "'||'",
	tkNot:     "'!'",
	tkLParen:  "'('",
	tkRParen:  "')'",
}

// token is one lexed element of a filter source string.  pos is the byte
// offset of its first character, used in error reporting.
type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tkIdent:
		return fmt.Sprintf("identifier %q", t.text)
	case tkLiteral:
		return fmt.Sprintf("value %q", t.text)
	}
	return tokenNames[t.kind]
}
