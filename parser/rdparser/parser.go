package rdparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser/token"
)

// Parser is a recursive descent lisp parser that consumes a token stream
// produced by the lexer.
type Parser struct {
	toks []*token.Token
	pos  int
	curr *token.Token
}

// New initializes and returns a new Parser that reads from toks.  The final
// token in toks should have type token.EOF.
func New(toks []*token.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram parses every expression remaining in the token stream.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for p.PeekType() != token.EOF {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression consumes a single expression from the token stream.  An
// error wrapping lisp.ErrUnexpectedEOF is returned if the stream ends before
// the expression is complete, and an error wrapping
// lisp.ErrUnexpectedCloseParen if a close paren appears where an expression
// is expected.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	switch p.PeekType() {
	case token.EOF:
		p.ReadToken()
		return nil, p.errorf(lisp.ErrUnexpectedEOF)
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf(lisp.ErrUnexpectedCloseParen)
	case token.ATOM:
		return p.ParseAtom(), nil
	default:
		p.ReadToken()
		return nil, fmt.Errorf("%s: unexpected %s", p.Token().Source, p.Token().Type)
	}
}

// ParseConsExpression reads expressions following an open paren until the
// matching close paren.
func (p *Parser) ParseConsExpression() (*lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		return nil, fmt.Errorf("%s: expected %s", p.Peek().Source, token.PAREN_L)
	}
	var cells []*lisp.LVal
	for {
		if p.PeekType() == token.EOF {
			p.ReadToken()
			return nil, p.errorf(lisp.ErrUnexpectedEOF)
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
	return lisp.SExpr(cells), nil
}

// ParseAtom consumes an atom token and returns a number if its text is a
// numeric literal and a symbol otherwise.
func (p *Parser) ParseAtom() *lisp.LVal {
	tok := p.ReadToken()
	if x, ok := ParseNumber(tok.Text); ok {
		return lisp.Number(x)
	}
	return lisp.Symbol(tok.Text)
}

// ParseNumber reports whether text is a numeric literal and returns its
// value.  Any literal accepted by strconv.ParseFloat that begins with a digit,
// a sign or a decimal point and contains a digit is numeric, including zero.
// Literals that overflow a float64 evaluate to an infinity.  Words like "inf"
// and "nan" remain symbols even when signed ("+inf", "-nan").
func ParseNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	switch c := text[0]; {
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
	default:
		return 0, false
	}
	if !strings.ContainsAny(text, "0123456789") {
		return 0, false
	}
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return x, true
		}
		return 0, false
	}
	return x, true
}

// ReadToken advances the stream and returns the token consumed.  The EOF
// token is never consumed.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.toks[p.pos]
	if p.curr.Type != token.EOF {
		p.pos++
	}
	return p.curr
}

// Token returns the most recently consumed token.
func (p *Parser) Token() *token.Token {
	if p.curr == nil {
		return p.toks[0]
	}
	return p.curr
}

// Peek returns the next token in the stream without consuming it.
func (p *Parser) Peek() *token.Token {
	return p.toks[p.pos]
}

func (p *Parser) PeekType() token.Type {
	return p.toks[p.pos].Type
}

func (p *Parser) expect(typ token.Type) bool {
	if p.PeekType() == typ {
		p.ReadToken()
		return true
	}
	return false
}

func (p *Parser) errorf(err error) error {
	return fmt.Errorf("%s: %w", p.Token().Source, err)
}
