package filters

// Recursive descent over the token stream.  Precedence, loosest first:
// ||, &&, !, primary.  Both binary operators are left-associative.

// unsupportedOps are words users reach for from richer filter languages.
// They are recognized only to be refused by name; approximating them
// with equality would silently change what a filter means.
var unsupportedOps = map[string]bool{
	"contains": true,
	"matches":  true,
	"in":       true,
}

type parser struct {
	toks []token
	i    int
}

// parse consumes the whole token stream and returns the expression tree.
// Anything left over after a complete expression is an error, not a
// second expression.
func parse(toks []token) (Expr, error) {
	p := &parser{toks: toks}
	e, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tkEnd {
		if t.kind == tkIdent && unsupportedOps[t.text] {
			return nil, &UnsupportedOperatorError{Operator: t.text, Pos: t.pos}
		}
		return nil, &ParseError{Expected: "end of expression", Found: t.String(), Pos: t.pos}
	}
	return e, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tkEnd {
		p.i++
	}
	return t
}

func (p *parser) orExpr() (Expr, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tkOr {
		p.next()
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = &orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) andExpr() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tkAnd {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.peek().kind == tkNot {
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &notExpr{expr: e}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tkLParen:
		e, err := p.orExpr()
		if err != nil {
			return nil, err
		}
		if close := p.next(); close.kind != tkRParen {
			return nil, &ParseError{Expected: "')'", Found: close.String(), Pos: close.pos}
		}
		return e, nil
	case tkIdent:
		if p.peek().kind != tkDot {
			return &protoExpr{name: t.text}, nil
		}
		p.next()
		field := p.next()
		if field.kind != tkIdent {
			return nil, &ParseError{Expected: "field name", Found: field.String(), Pos: field.pos}
		}
		return p.comparison(t, field)
	}
	return nil, &ParseError{Expected: "protocol name, '!' or '('", Found: t.String(), Pos: t.pos}
}

// comparison parses the optional suffix after proto.field: nothing means
// field presence, ==/!= demand a literal, and a known-but-unimplemented
// operator word is called out as such.
func (p *parser) comparison(proto, field token) (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tkEq, tkNe:
		p.next()
		op := opEq
		if t.kind == tkNe {
			op = opNe
		}
		lit := p.next()
		if lit.kind != tkLiteral {
			return nil, &ParseError{Expected: "comparison value", Found: lit.String(), Pos: lit.pos}
		}
		return &cmpExpr{proto: proto.text, field: field.text, op: op, literal: lit.text}, nil
	case tkIdent:
		if unsupportedOps[t.text] {
			return nil, &UnsupportedOperatorError{Operator: t.text, Pos: t.pos}
		}
	}
	return &fieldExpr{proto: proto.text, field: field.text}, nil
}
