/*
Package parser provides the lisp reader.

	expr   := '(' <expr>* ')' | <atom>
	atom   := /[^[:space:]()]+/

An atom that strconv.ParseFloat accepts (and that begins with a digit, sign or
decimal point) is a number.  Every other atom is a symbol.
*/
package parser

import (
	"io"
	"io/ioutil"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser/internal/interntoken"
	"github.com/bmatsuo/nisp/parser/lexer"
	"github.com/bmatsuo/nisp/parser/rdparser"
	"github.com/bmatsuo/nisp/parser/token"
)

// symbols is shared by every reader so that a symbol read repeatedly over a
// session is stored once.
var symbols = interntoken.NewTable()

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseProgram(name, text)
}

// Tokenize splits text into tokens.  Every parenthesis is a token and the
// remaining text is split on whitespace.
func Tokenize(text string) []string {
	toks, err := tokenize("", []byte(text))
	if err != nil {
		return nil
	}
	strs := make([]string, 0, len(toks)-1)
	for _, tok := range toks {
		if tok.Type == token.EOF {
			break
		}
		strs = append(strs, tok.Text)
	}
	return strs
}

// Parse reads the first expression in text.  All of text must be well formed
// even though expressions following the first are discarded.  Parse fails
// with an error wrapping lisp.ErrUnexpectedEOF if text does not contain a
// complete expression and with an error wrapping lisp.ErrUnexpectedCloseParen
// if a close paren appears where an expression was expected.
func Parse(text string) (*lisp.LVal, error) {
	toks, err := tokenize("", []byte(text))
	if err != nil {
		return nil, err
	}
	p := rdparser.New(toks)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	_, err = p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseProgram reads every expression in text so they may be evaluated in
// order as top-level forms.
func ParseProgram(text string) ([]*lisp.LVal, error) {
	return parseProgram("", []byte(text))
}

func parseProgram(name string, text []byte) ([]*lisp.LVal, error) {
	toks, err := tokenize(name, text)
	if err != nil {
		return nil, err
	}
	return rdparser.New(toks).ParseProgram()
}

func tokenize(name string, text []byte) ([]*token.Token, error) {
	return lexer.New(name, symbols).Tokenize(text)
}
