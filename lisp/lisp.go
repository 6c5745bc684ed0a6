package lisp

import (
	"bytes"
	"fmt"
	"strconv"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNumber
	LError
	LSymbol
	LSExpr
	LQExpr
	LFun
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNumber:  "number",
	LError:   "error",
	LSymbol:  "symbol",
	LSExpr:   "sexpr",
	LQExpr:   "list",
	LFun:     "procedure",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// TrueSymbol is the symbol returned by predicates that hold.  The empty list
// is the only false value.
const TrueSymbol = "true"

// LBuiltin is a function that executes a builtin procedure.  The arguments to
// an LBuiltin have already been evaluated and checked against the formals of
// its definition.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LVal is a lisp value.  The reader produces LVals of type LNumber, LSymbol
// and LSExpr.  Evaluation produces LNumber, LSymbol, LQExpr, LFun and LError
// values.
type LVal struct {
	Type  LValType
	Num   float64
	Str   string
	Err   error
	Cells []*LVal

	// Stack is a copy of the call stack at the time an LError was created.
	Stack *CallStack

	// Variables needed for function values
	FID     string
	Builtin LBuiltin
	Env     *LEnv
	Formals *LVal
	Body    *LVal
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Bool returns the symbol true when ok is true and the empty list otherwise.
func Bool(ok bool) *LVal {
	if ok {
		return Symbol(TrueSymbol)
	}
	return Nil()
}

// Nil returns an LVal representing the empty list.
func Nil() *LVal {
	return QExpr(nil)
}

// SExpr returns an LVal representing an S-expression, an unevaluated list
// expression produced by the reader.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// QExpr returns an LVal representing a list value.
func QExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LQExpr,
		Cells: cells,
	}
}

// Fun returns an LVal representing a builtin procedure
func Fun(fid string, formals *LVal, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		FID:     fid,
		Formals: formals,
		Builtin: fn,
	}
}

// Lambda returns an anonymous procedure that has formals as arguments and the
// given body.  The body is evaluated in a new frame whose parent is env each
// time the procedure is called.
func Lambda(env *LEnv, formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LFun,
		FID:     env.getFID(),
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// Formals returns a list of symbols suitable for use as the formal argument
// list of a procedure.  The VarArgSymbol may precede the final symbol.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i, s := range argSymbols {
		cells[i] = Symbol(s)
	}
	return QExpr(cells)
}

// Error returns an LVal representing the error corresponding to err.
func Error(err error) *LVal {
	return &LVal{
		Type: LError,
		Err:  err,
	}
}

// Errorf returns an LVal representing with a formatted error message.  The
// format may use the %w verb to wrap one of the package's sentinel errors.
func Errorf(format string, v ...interface{}) *LVal {
	return &LVal{
		Type: LError,
		Err:  fmt.Errorf(format, v...),
	}
}

// Len returns the number of cells in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LQExpr && len(v.Cells) == 0
}

// IsList returns true if v is a list value.
func (v *LVal) IsList() bool {
	return v.Type == LQExpr
}

// IsTrue applies the truthiness rule used by ``if'' and ``not''.  Every value
// is true except the empty list.  In particular the number zero is true.
func (v *LVal) IsTrue() bool {
	return !v.IsNil()
}

// IsBuiltin returns true if v is a procedure implemented in Go.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Builtin != nil
}

// Equal returns true if v and other are structurally equal.  Procedures are
// only equal to themselves.
func (v *LVal) Equal(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LSymbol:
		return v.Str == other.Str
	case LSExpr, LQExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LError:
		return v.Err.Error() == other.Err.Error()
	default:
		return v == other
	}
}

// Identical returns true if v and other are the same object.  Numbers and
// symbols are compared by value because they have no identity of their own,
// and all empty lists are identical.
func (v *LVal) Identical(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LSymbol:
		return v.Str == other.Str
	case LQExpr:
		if v.IsNil() && other.IsNil() {
			return true
		}
	}
	return v == other
}

// Datum converts an expression produced by the reader into a value without
// evaluating it.  S-expressions become lists, recursively.
func Datum(expr *LVal) *LVal {
	if expr.Type != LSExpr {
		return expr
	}
	cells := make([]*LVal, len(expr.Cells))
	for i, c := range expr.Cells {
		cells[i] = Datum(c)
	}
	return QExpr(cells)
}

func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		if v.Num == 0 {
			// negative zero prints as 0
			return "0"
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case LError:
		return v.Err.Error()
	case LSymbol:
		return v.Str
	case LSExpr, LQExpr:
		return exprString(v, "(", ")")
	case LFun:
		if v.IsBuiltin() {
			return fmt.Sprintf("<builtin %s>", v.FID)
		}
		return fmt.Sprintf("(lambda %v %v)", exprString(v.Formals, "(", ")"), v.Body)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
