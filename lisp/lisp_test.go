package lisp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		v    *lisp.LVal
		want string
	}{
		{lisp.Number(3), "3"},
		{lisp.Number(0.5), "0.5"},
		{lisp.Number(-2), "-2"},
		{lisp.Number(math.Copysign(0, -1)), "0"},
		{lisp.Number(math.Inf(1)), "+Inf"},
		{lisp.Symbol("x"), "x"},
		{lisp.Nil(), "()"},
		{lisp.QExpr([]*lisp.LVal{lisp.Number(1), lisp.QExpr([]*lisp.LVal{lisp.Symbol("a")})}), "(1 (a))"},
		{lisp.Errorf("%w: foo", lisp.ErrUnboundSymbol), "unbound symbol: foo"},
		{lisp.Fun("car", lisp.Formals("lis"), identity), "<builtin car>"},
		{lisp.Lambda(lisp.NewEnv(nil), lisp.Formals("x"), lisp.Symbol("x")), "(lambda (x) x)"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.v.String())
	}
}

func identity(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return args
}

func TestDatumRoundTrip(t *testing.T) {
	tree := lisp.SExpr([]*lisp.LVal{
		lisp.Symbol("define"),
		lisp.Symbol("f"),
		lisp.SExpr([]*lisp.LVal{
			lisp.Symbol("lambda"),
			lisp.SExpr([]*lisp.LVal{lisp.Symbol("x")}),
			lisp.SExpr([]*lisp.LVal{lisp.Symbol("+"), lisp.Symbol("x"), lisp.Number(0)}),
		}),
		lisp.SExpr(nil),
	})
	v := lisp.Datum(tree)
	assert.Equal(t, lisp.LQExpr, v.Type)
	assert.Equal(t, lisp.LQExpr, v.Cells[2].Type)
	assert.Equal(t, "(define f (lambda (x) (+ x 0)) ())", v.String())

	// Quoting the rendered text produces an equal datum.
	env := newTestEnv(t)
	expr, err := parser.Parse("(quote " + v.String() + ")")
	require.NoError(t, err)
	quoted := env.Eval(expr)
	require.NoError(t, lisp.GoError(quoted))
	assert.True(t, quoted.Equal(v))
	assert.Equal(t, v.String(), quoted.String())
}

func TestTruthiness(t *testing.T) {
	assert.True(t, lisp.Number(0).IsTrue())
	assert.True(t, lisp.Symbol("x").IsTrue())
	assert.True(t, lisp.QExpr([]*lisp.LVal{lisp.Nil()}).IsTrue())
	assert.False(t, lisp.Nil().IsTrue())
	assert.True(t, lisp.Bool(true).IsTrue())
	assert.False(t, lisp.Bool(false).IsTrue())
}

func TestEqualIdentical(t *testing.T) {
	a := lisp.QExpr([]*lisp.LVal{lisp.Number(1), lisp.Symbol("b")})
	b := lisp.QExpr([]*lisp.LVal{lisp.Number(1), lisp.Symbol("b")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Identical(b))
	assert.True(t, a.Identical(a))
	assert.True(t, lisp.Nil().Identical(lisp.Nil()))
	assert.True(t, lisp.Number(2).Identical(lisp.Number(2)))
	assert.False(t, lisp.Number(2).Equal(lisp.Symbol("2")))
}

func TestGoError(t *testing.T) {
	assert.NoError(t, lisp.GoError(lisp.Number(1)))
	assert.NoError(t, lisp.GoError(nil))

	testerr := errors.New("test error message")
	err := lisp.GoError(lisp.Error(testerr))
	assert.Equal(t, testerr.Error(), err.Error())
	assert.True(t, errors.Is(err, testerr))

	err = lisp.GoError(lisp.Errorf("%w: %d arguments", lisp.ErrArityMismatch, 3))
	assert.Equal(t, "arity mismatch: 3 arguments", err.Error())
	assert.True(t, errors.Is(err, lisp.ErrArityMismatch))
	assert.False(t, errors.Is(err, lisp.ErrTypeMismatch))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "number", lisp.LNumber.String())
	assert.Equal(t, "procedure", lisp.LFun.String())
	assert.Equal(t, "INVALID", lisp.LValType(100).String())
}
