package filters

// tokenize converts filter source into its token sequence, terminated by
// an end token.  It is a pure function of its input; the only failure is
// a *LexError naming the first byte that fits no token.
func tokenize(src string) ([]token, error) {
	toks := []token{}
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, token{tkLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tkRParen, ")", i})
			i++
		case c == '.':
			toks = append(toks, token{tkDot, ".", i})
			i++
		case c == '=':
			// only == exists; a lone = is not assignment, it's a typo
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{tkEq, "==", i})
				i += 2
				break
			}
			return nil, &LexError{Pos: i, Char: c}
		case c == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{tkNe, "!=", i})
				i += 2
				break
			}
			toks = append(toks, token{tkNot, "!", i})
			i++
		case c == '&':
			if i+1 < len(src) && src[i+1] == '&' {
				toks = append(toks, token{tkAnd, "&&", i})
				i += 2
				break
			}
			return nil, &LexError{Pos: i, Char: c}
		case c == '|':
			if i+1 < len(src) && src[i+1] == '|' {
				toks = append(toks, token{tkOr, "||", i})
				i += 2
				break
			}
			return nil, &LexError{Pos: i, Char: c}
		case c == '"' || c == '\'':
			end := -1
			for j := i + 1; j < len(src); j++ {
				if src[j] == c {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, &LexError{Pos: i, Char: c}
			}
			toks = append(toks, token{tkLiteral, src[i+1 : end], i})
			i = end + 1
		case isDigit(c):
			// bare numeric token; dots included so dotted-quad
			// address literals stay whole
			j := i + 1
			for j < len(src) && (isDigit(src[j]) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{tkLiteral, src[i:j], i})
			i = j
		case isAlpha(c) || c == '_':
			j := i + 1
			for j < len(src) && (isAlpha(src[j]) || isDigit(src[j]) || src[j] == '_') {
				j++
			}
			toks = append(toks, token{tkIdent, src[i:j], i})
			i = j
		default:
			return nil, &LexError{Pos: i, Char: c}
		}
	}
	return append(toks, token{tkEnd, "", len(src)}), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
