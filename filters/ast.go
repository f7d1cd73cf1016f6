package filters

import (
	"fmt"

	"github.com/pktai/pktfilter/packet"
)

// Expr is a compiled filter expression.  An Expr is immutable and holds
// no shared state: it may be retained, reused, and matched against
// different packets from concurrent goroutines.
type Expr interface {
	// Match reports whether one decoded packet satisfies the expression.
	// Match is total: it never fails, an absent layer or field is simply
	// a non-match.
	Match(v *packet.View) bool

	// String renders the expression back into filter source form.
	String() string

	node()
}

// cmpOp is the comparison operator of a cmpExpr.
type cmpOp int

const (
	opEq cmpOp = iota
	opNe
)

// matchAll is what the empty filter source compiles to: the identity
// filter.
type matchAll struct{}

func (matchAll) Match(*packet.View) bool { return true }
func (matchAll) String() string          { return "" }
func (matchAll) node()                   {}

// protoExpr matches packets carrying a named protocol layer.
type protoExpr struct {
	name string
}

func (e *protoExpr) Match(v *packet.View) bool { return v.HasLayer(e.name) }
func (e *protoExpr) String() string            { return e.name }
func (e *protoExpr) node()                     {}

// fieldExpr matches packets whose named layer contains a named field,
// with any value.
type fieldExpr struct {
	proto string
	field string
}

func (e *fieldExpr) Match(v *packet.View) bool {
	_, ok := v.Field(e.proto, e.field)
	return ok
}

func (e *fieldExpr) String() string { return e.proto + "." + e.field }
func (e *fieldExpr) node()          {}

// cmpExpr matches packets whose named field compares equal (or unequal)
// to a literal.  An absent field matches neither way; != does not imply
// "present with another value or missing", only the former.
type cmpExpr struct {
	proto   string
	field   string
	op      cmpOp
	literal string
}

func (e *cmpExpr) Match(v *packet.View) bool {
	val, ok := v.Field(e.proto, e.field)
	if !ok {
		return false
	}
	eq := literalEqual(val, e.literal)
	if e.op == opNe {
		return !eq
	}
	return eq
}

func (e *cmpExpr) String() string {
	op := "=="
	if e.op == opNe {
		op = "!="
	}
	return fmt.Sprintf("%s.%s %s %s", e.proto, e.field, op, renderLiteral(e.literal))
}

func (e *cmpExpr) node() {}

// andExpr matches when both operands match, evaluating the left one
// first.
type andExpr struct {
	left, right Expr
}

func (e *andExpr) Match(v *packet.View) bool {
	return e.left.Match(v) && e.right.Match(v)
}

func (e *andExpr) String() string {
	return parenthesize(e.left) + " && " + parenthesize(e.right)
}

func (e *andExpr) node() {}

// orExpr matches when either operand matches, evaluating the left one
// first.
type orExpr struct {
	left, right Expr
}

func (e *orExpr) Match(v *packet.View) bool {
	return e.left.Match(v) || e.right.Match(v)
}

func (e *orExpr) String() string {
	return e.left.String() + " || " + e.right.String()
}

func (e *orExpr) node() {}

// notExpr inverts its operand.
type notExpr struct {
	expr Expr
}

func (e *notExpr) Match(v *packet.View) bool { return !e.expr.Match(v) }

func (e *notExpr) String() string {
	switch e.expr.(type) {
	case *andExpr, *orExpr:
		return "!(" + e.expr.String() + ")"
	}
	return "!" + e.expr.String()
}

func (e *notExpr) node() {}

// parenthesize renders an operand of &&, wrapping looser-binding ||
// operands so the rendering re-parses to the same tree.
func parenthesize(e Expr) string {
	if _, ok := e.(*orExpr); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// renderLiteral prints a comparison value the way the lexer would accept
// it back: bare when it lexes as a numeric token, quoted otherwise.
func renderLiteral(lit string) string {
	if lit == "" || !isDigit(lit[0]) {
		return fmt.Sprintf("%q", lit)
	}
	for i := 1; i < len(lit); i++ {
		if !isDigit(lit[i]) && lit[i] != '.' {
			return fmt.Sprintf("%q", lit)
		}
	}
	return lit
}
