package lexer

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/bmatsuo/nisp/parser/internal/interntoken"
	"github.com/bmatsuo/nisp/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// Lexer splits source text into parenthesis and atom tokens.  Parentheses are
// always tokens of their own, regardless of surrounding whitespace.  No
// quoting, escaping, or comment syntax is recognized.
type Lexer struct {
	file   string
	intern *interntoken.Table
	tokens parsec.Parser
}

// New returns a Lexer for source named file.  Atom text is interned in tab
// when tab is not nil.
func New(file string, tab *interntoken.Table) *Lexer {
	return &Lexer{
		file:   file,
		intern: tab,
		tokens: newParsecLexer(),
	}
}

func newParsecLexer() parsec.Parser {
	parenL := parsec.Token(`[(]`, token.PAREN_L.String())
	parenR := parsec.Token(`[)]`, token.PAREN_R.String())
	atom := parsec.Token(`[^\s()]+`, token.ATOM.String())
	tok := parsec.OrdChoice(nil, parenL, parenR, atom)
	return parsec.Kleene(nil, tok)
}

// Tokenize returns the tokens in text followed by a single EOF token.
func (lex *Lexer) Tokenize(text []byte) ([]*token.Token, error) {
	text = normalizeSpace(text)
	s := parsec.NewScanner(text)
	root, s := lex.tokens(s)
	if !s.Endof() {
		return nil, fmt.Errorf("%s[%d]: unable to scan token", lex.file, s.GetCursor())
	}
	var toks []*token.Token
	for _, node := range flattenNodes([]parsec.ParsecNode{root}) {
		term, ok := node.(*parsec.Terminal)
		if !ok {
			continue
		}
		toks = append(toks, lex.newToken(term))
	}
	toks = append(toks, &token.Token{
		Type:   token.EOF,
		Source: &token.Location{File: lex.file, Pos: len(text)},
	})
	return toks, nil
}

func (lex *Lexer) newToken(term *parsec.Terminal) *token.Token {
	tok := &token.Token{
		Text:   term.Value,
		Source: &token.Location{File: lex.file, Pos: term.Position},
	}
	switch term.Name {
	case token.PAREN_L.String():
		tok.Type = token.PAREN_L
	case token.PAREN_R.String():
		tok.Type = token.PAREN_R
	default:
		tok.Type = token.ATOM
		tok.Text = lex.intern.Get(term.Value)
	}
	return tok
}

func flattenNodes(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, flattenNodes(node)...)
		case nil:
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// normalizeSpace replaces every unicode space in text with ASCII spaces of
// the same byte length and removes trailing space, so token offsets are
// preserved and the scanner reaches the end of its input.
func normalizeSpace(text []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(text))
	for len(text) > 0 {
		c, n := utf8.DecodeRune(text)
		if unicode.IsSpace(c) {
			buf.Write(bytes.Repeat([]byte{' '}, n))
		} else {
			buf.Write(text[:n])
		}
		text = text[n:]
	}
	return bytes.TrimRight(buf.Bytes(), " ")
}
