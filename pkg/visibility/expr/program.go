package expr

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-roleform/pkg/visibility"
)

// Program is a compiled rule.
//
// Grammar:
//
//	or      = and { "||" and }
//	and     = unary { "&&" unary }
//	unary   = "!" unary | primary
//	primary = "(" or ")" | ident [ ("==" | "!=") literal ]
//
// Literals are quoted strings, numbers, true, false and null. A bare
// identifier on the right-hand side is read as a string.
type Program struct {
	source string
	root   node
}

// Compile parses rule. An empty rule compiles to a program that is always
// true.
func Compile(rule string) (*Program, error) {
	p := &parser{lex: lexer{src: rule}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == kindEOF {
		return &Program{source: rule, root: constNode(true)}, nil
	}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != kindEOF {
		return nil, fmt.Errorf("visibility/expr: unexpected %q at %d", p.tok.text, p.tok.pos)
	}
	return &Program{source: rule, root: root}, nil
}

// Eval runs the program against ctx.
func (p *Program) Eval(ctx visibility.Context) bool {
	if p == nil || p.root == nil {
		return true
	}
	return p.root.eval(ctx)
}

func (p *Program) String() string { return p.source }

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []node{left}
	for p.tok.kind == kindOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return orNode(terms), nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []node{left}
	for p.tok.kind == kindAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return andNode(terms), nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind != kindNot {
		return p.parsePrimary()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return notNode{inner: inner}, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case kindOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != kindClose {
			return nil, fmt.Errorf("visibility/expr: missing ')' at %d", p.tok.pos)
		}
		return inner, p.advance()
	case kindIdent:
	case kindEOF:
		return nil, fmt.Errorf("visibility/expr: unexpected end of rule")
	default:
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q at %d", p.tok.text, p.tok.pos)
	}

	name := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != kindEq && p.tok.kind != kindNeq {
		return truthyNode{name: name}, nil
	}
	negate := p.tok.kind == kindNeq
	if err := p.advance(); err != nil {
		return nil, err
	}
	want, err := p.literal()
	if err != nil {
		return nil, err
	}
	return compareNode{name: name, want: want, negate: negate}, p.advance()
}

func (p *parser) literal() (any, error) {
	switch p.tok.kind {
	case kindString, kindIdent:
		return p.tok.text, nil
	case kindNumber:
		return strconv.ParseFloat(p.tok.text, 64)
	case kindTrue:
		return true, nil
	case kindFalse:
		return false, nil
	case kindNull:
		return nil, nil
	case kindEOF:
		return nil, fmt.Errorf("visibility/expr: missing literal")
	default:
		return nil, fmt.Errorf("visibility/expr: expected literal, got %q at %d", p.tok.text, p.tok.pos)
	}
}
