package token

import "fmt"

// Token is a lexical token in lisp source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	return tok.Text
}

type Type uint

// Type constants used for the lexer/parser.
const (
	INVALID Type = iota
	EOF

	// ATOM is any whitespace delimited text that is not a parenthesis.  The
	// parser decides whether an atom is a number or a symbol.
	ATOM

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		EOF:     "EOF",
		ATOM:    "atom",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is the position of a token in its source.  Pos is a byte offset.
type Location struct {
	File string
	Pos  int
}

func (loc *Location) String() string {
	if loc.File == "" {
		return fmt.Sprintf("[%d]", loc.Pos)
	}
	return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
}
