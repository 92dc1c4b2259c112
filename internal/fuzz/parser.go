package fuzz

import (
	"fmt"
	"strings"
	"unicode"
)

// Antecedents in declarative specs are text expressions:
//
//	heart_rate is elevated and (sleep_quality is good or sleep_quality is regular)
//
// Grammar, loosest to tightest binding:
//
//	expr    := orExpr
//	orExpr  := andExpr ("or" andExpr)*
//	andExpr := unary ("and" unary)*
//	unary   := "not" unary | primary
//	primary := IDENT "is" IDENT | "(" expr ")"
//
// Keywords are case-insensitive; identifiers are letters, digits, and
// underscores.

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokAnd
	tokOr
	tokNot
	tokIs
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// ParseError reports a syntax error in a rule antecedent.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// ParseExpr parses a rule-DSL antecedent into an expression tree.
func ParseExpr(input string) (Expr, error) {
	tokens, err := lexExpr(input)
	if err != nil {
		return nil, err
	}
	p := &exprParser{input: input, tokens: tokens}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return e, nil
}

func lexExpr(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := rune(input[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			start := i
			for i < len(input) && isIdentRune(rune(input[i])) {
				i++
			}
			word := input[start:i]
			kind := tokIdent
			switch strings.ToLower(word) {
			case "and":
				kind = tokAnd
			case "or":
				kind = tokOr
			case "not":
				kind = tokNot
			case "is":
				kind = tokIs
			}
			tokens = append(tokens, token{kind: kind, text: word, pos: start})
		default:
			return nil, &ParseError{Input: input, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(input)})
	return tokens, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type exprParser struct {
	input  string
	tokens []token
	pos    int
}

func (p *exprParser) peek() token { return p.tokens[p.pos] }

func (p *exprParser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *exprParser) errorf(tok token, format string, args ...interface{}) error {
	return &ParseError{Input: p.input, Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *exprParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = OrExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = AndExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (Expr, error) {
	if p.peek().kind == tokNot {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NotExpr{Inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.kind {
	case tokLParen:
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected closing parenthesis")
		}
		return e, nil
	case tokIdent:
		if is := p.advance(); is.kind != tokIs {
			return nil, p.errorf(is, "expected %q after variable %q", "is", tok.text)
		}
		term := p.advance()
		if term.kind != tokIdent {
			return nil, p.errorf(term, "expected term name after %q is", tok.text)
		}
		return IsExpr{Variable: tok.text, Term: term.text}, nil
	case tokEOF:
		return nil, p.errorf(tok, "unexpected end of expression")
	default:
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
}
