package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type kind uint8

const (
	kindEOF kind = iota
	kindIdent
	kindString
	kindNumber
	kindTrue
	kindFalse
	kindNull
	kindEq
	kindNeq
	kindAnd
	kindOr
	kindNot
	kindOpen
	kindClose
)

type token struct {
	kind kind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: kindEOF, pos: l.pos}, nil
	}

	start := l.pos
	ch := l.src[l.pos]
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}

	switch {
	case two == "==":
		l.pos += 2
		return token{kind: kindEq, text: two, pos: start}, nil
	case two == "!=":
		l.pos += 2
		return token{kind: kindNeq, text: two, pos: start}, nil
	case two == "&&":
		l.pos += 2
		return token{kind: kindAnd, text: two, pos: start}, nil
	case two == "||":
		l.pos += 2
		return token{kind: kindOr, text: two, pos: start}, nil
	case ch == '!':
		l.pos++
		return token{kind: kindNot, text: "!", pos: start}, nil
	case ch == '(':
		l.pos++
		return token{kind: kindOpen, text: "(", pos: start}, nil
	case ch == ')':
		l.pos++
		return token{kind: kindClose, text: ")", pos: start}, nil
	case ch == '"' || ch == '\'':
		return l.quoted(ch)
	case ch == '=' || ch == '&' || ch == '|':
		return token{}, fmt.Errorf("visibility/expr: unexpected %q at %d", ch, start)
	}

	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !strings.ContainsRune("()!=&|\"'", rune(l.src[l.pos])) {
		l.pos++
	}
	word := l.src[start:l.pos]
	switch strings.ToLower(word) {
	case "true":
		return token{kind: kindTrue, text: word, pos: start}, nil
	case "false":
		return token{kind: kindFalse, text: word, pos: start}, nil
	case "null", "nil":
		return token{kind: kindNull, text: word, pos: start}, nil
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: kindNumber, text: word, pos: start}, nil
	}
	return token{kind: kindIdent, text: word, pos: start}, nil
}

func (l *lexer) quoted(quote byte) (token, error) {
	start := l.pos
	var b strings.Builder
	l.pos++
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		l.pos++
		switch {
		case ch == '\\' && l.pos < len(l.src):
			b.WriteByte(l.src[l.pos])
			l.pos++
		case ch == quote:
			return token{kind: kindString, text: b.String(), pos: start}, nil
		default:
			b.WriteByte(ch)
		}
	}
	return token{}, fmt.Errorf("visibility/expr: unterminated string at %d", start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
