package parser_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		toks []string
	}{
		{"(+ 1 2)", []string{"(", "+", "1", "2", ")"}},
		{"((a)b)", []string{"(", "(", "a", ")", "b", ")"}},
		{"  (define  x\n\t5)  ", []string{"(", "define", "x", "5", ")"}},
		{"(a b)", []string{"(", "a", "b", ")"}},
		{"'x \"y\" ;z", []string{"'x", `"y"`, ";z"}},
		{"", []string{}},
		{" \n ", []string{}},
	}
	for _, test := range tests {
		assert.Equal(t, test.toks, parser.Tokenize(test.text), "%q", test.text)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"(+ 1 2)", "(+ 1 2)"},
		{"(a (b c) ())", "(a (b c) ())"},
		{"  x  ", "x"},
		{"(1 2) (3 4)", "(1 2)"},
		{"(\n  define x\n  5)", "(define x 5)"},
	}
	for _, test := range tests {
		expr, err := parser.Parse(test.text)
		if assert.NoError(t, err, "%q", test.text) {
			assert.Equal(t, test.want, expr.String(), "%q", test.text)
		}
	}

	expr, err := parser.Parse("(a (b))")
	require.NoError(t, err)
	assert.Equal(t, lisp.LSExpr, expr.Type)
	assert.Equal(t, lisp.LSymbol, expr.Cells[0].Type)
	assert.Equal(t, lisp.LSExpr, expr.Cells[1].Type)
}

func TestParseAtom(t *testing.T) {
	numbers := []struct {
		text string
		want float64
	}{
		{"0", 0},
		{"0.0", 0},
		{"-0", 0},
		{"1", 1},
		{"-5", -5},
		{"+5", 5},
		{"2.5", 2.5},
		{".5", 0.5},
		{"1e3", 1000},
		{"1E-2", 0.01},
	}
	for _, test := range numbers {
		expr, err := parser.Parse(test.text)
		if assert.NoError(t, err, test.text) {
			assert.Equal(t, lisp.LNumber, expr.Type, test.text)
			assert.Equal(t, test.want, expr.Num, test.text)
		}
	}

	expr, err := parser.Parse("1e400")
	require.NoError(t, err)
	assert.Equal(t, lisp.LNumber, expr.Type)
	assert.True(t, math.IsInf(expr.Num, 1))

	symbols := []string{
		"x", "+", "-", "set!", "null?", "1+", "1.2.3", "abc1",
		"inf", "nan", "+inf", "-Inf", "+infinity", "-nan", "+NaN",
	}
	for _, text := range symbols {
		expr, err := parser.Parse(text)
		if assert.NoError(t, err, text) {
			assert.Equal(t, lisp.LSymbol, expr.Type, text)
			assert.Equal(t, text, expr.Str)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		err  error
	}{
		{"", lisp.ErrUnexpectedEOF},
		{"   ", lisp.ErrUnexpectedEOF},
		{"(", lisp.ErrUnexpectedEOF},
		{"(+ 1 2", lisp.ErrUnexpectedEOF},
		{"((+ 1 2)", lisp.ErrUnexpectedEOF},
		{")", lisp.ErrUnexpectedCloseParen},
		{"1 2)", lisp.ErrUnexpectedCloseParen},
		{"(+ 1 2))", lisp.ErrUnexpectedCloseParen},
		{"(1) (", lisp.ErrUnexpectedEOF},
	}
	for _, test := range tests {
		expr, err := parser.Parse(test.text)
		assert.Nil(t, expr, "%q", test.text)
		if assert.Error(t, err, "%q", test.text) {
			assert.True(t, errors.Is(err, test.err), "%q: %v", test.text, err)
		}
	}
}

func TestParseProgram(t *testing.T) {
	exprs, err := parser.ParseProgram("(define x 5) (set! x (+ x 1)) x")
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, "(define x 5)", exprs[0].String())
	assert.Equal(t, "x", exprs[2].String())

	exprs, err = parser.ParseProgram("")
	require.NoError(t, err)
	assert.Len(t, exprs, 0)

	_, err = parser.ParseProgram("(a) b)")
	assert.True(t, errors.Is(err, lisp.ErrUnexpectedCloseParen))
}

func TestReader(t *testing.T) {
	r := parser.NewReader()
	exprs, err := r.Read("test", strings.NewReader("(+ 1 2)\n(list 3)"))
	require.NoError(t, err)
	require.Len(t, exprs, 2)

	_, err = r.Read("test", strings.NewReader("(+ 1 2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lisp.ErrUnexpectedEOF))
	assert.True(t, strings.HasPrefix(err.Error(), "test["), err.Error())

	_, err = r.Read("test", strings.NewReader("1 2)"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected )")
}

func TestEvaluate(t *testing.T) {
	env, err := lisp.NewRootEnv(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	tests := []struct {
		text string
		want string
	}{
		{"(+ 1 2)", "3"},
		{"(+ 1 2 3)", "6"},
		{"(if (> 3 2) 1 2)", "1"},
		{"(if (> 2 3) 1 2)", "2"},
		{"((lambda (x y) (+ x y)) 3 4)", "7"},
		{"(define x 5) (set! x (+ x 1)) x", "6"},
	}
	for _, test := range tests {
		v := env.LoadString("test", test.text)
		require.NoError(t, lisp.GoError(v), test.text)
		assert.Equal(t, test.want, v.String(), test.text)
	}
}
