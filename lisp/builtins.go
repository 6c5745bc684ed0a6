package lisp

import (
	"fmt"
	"math"
)

// LBuiltinDef is a built-in procedure
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args *LVal) *LVal
}

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd},
	{"-", Formals("x", VarArgSymbol, "rest"), builtinSub},
	{"*", Formals(VarArgSymbol, "x"), builtinMul},
	{"/", Formals("x", VarArgSymbol, "rest"), builtinDiv},
	{">", Formals("a", "b"), builtinGT},
	{"<", Formals("a", "b"), builtinLT},
	{">=", Formals("a", "b"), builtinGEq},
	{"<=", Formals("a", "b"), builtinLEq},
	{"=", Formals("a", "b"), builtinEqNum},
	{"append", Formals(VarArgSymbol, "lists"), builtinAppend},
	{"apply", Formals("fn", VarArgSymbol, "args"), builtinApply},
	{"begin", Formals(VarArgSymbol, "exprs"), builtinBegin},
	{"car", Formals("lis"), builtinCAR},
	{"cdr", Formals("lis"), builtinCDR},
	{"cons", Formals("head", "tail"), builtinCons},
	{"eq?", Formals("a", "b"), builtinEq},
	{"equal?", Formals("a", "b"), builtinEqual},
	{"length", Formals("lis"), builtinLength},
	{"list", Formals(VarArgSymbol, "args"), builtinList},
	{"list?", Formals("x"), builtinListP},
	{"map", Formals("fn", "lis"), builtinMap},
	{"not", Formals("x"), builtinNot},
	{"null?", Formals("x"), builtinNullP},
	{"number?", Formals("x"), builtinNumberP},
	{"procedure?", Formals("x"), builtinProcedureP},
	{"round", Formals("number"), builtinRound},
	{"symbol?", Formals("x"), builtinSymbolP},
	{"debug-print", Formals(VarArgSymbol, "args"), builtinDebugPrint},
	{"debug-stack", Formals(), builtinDebugStack},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	if lerr := checkNumeric(env, "+", args); lerr != nil {
		return lerr
	}
	sum := 0.0
	for _, c := range args.Cells {
		sum += c.Num
	}
	return Number(sum)
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	if lerr := checkNumeric(env, "-", args); lerr != nil {
		return lerr
	}
	if args.Len() == 1 {
		return Number(-args.Cells[0].Num)
	}
	diff := args.Cells[0].Num
	for _, c := range args.Cells[1:] {
		diff -= c.Num
	}
	return Number(diff)
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	if lerr := checkNumeric(env, "*", args); lerr != nil {
		return lerr
	}
	prod := 1.0
	for _, c := range args.Cells {
		prod *= c.Num
	}
	return Number(prod)
}

// builtinDiv performs floating point division.  Division by zero produces an
// infinity (or NaN) rather than an error.
func builtinDiv(env *LEnv, args *LVal) *LVal {
	if lerr := checkNumeric(env, "/", args); lerr != nil {
		return lerr
	}
	if args.Len() == 1 {
		return Number(1 / args.Cells[0].Num)
	}
	div := args.Cells[0].Num
	for _, c := range args.Cells[1:] {
		div /= c.Num
	}
	return Number(div)
}

func builtinGT(env *LEnv, args *LVal) *LVal {
	return compareNumeric(env, ">", args, func(a, b float64) bool { return a > b })
}

func builtinLT(env *LEnv, args *LVal) *LVal {
	return compareNumeric(env, "<", args, func(a, b float64) bool { return a < b })
}

func builtinGEq(env *LEnv, args *LVal) *LVal {
	return compareNumeric(env, ">=", args, func(a, b float64) bool { return a >= b })
}

func builtinLEq(env *LEnv, args *LVal) *LVal {
	return compareNumeric(env, "<=", args, func(a, b float64) bool { return a <= b })
}

func builtinEqNum(env *LEnv, args *LVal) *LVal {
	return compareNumeric(env, "=", args, func(a, b float64) bool { return a == b })
}

func builtinAppend(env *LEnv, args *LVal) *LVal {
	var cells []*LVal
	for i, lis := range args.Cells {
		if lis.Type != LQExpr {
			return env.Errorf("%w: append: argument %d is not a list: %v", ErrTypeMismatch, i+1, lis.Type)
		}
		cells = append(cells, lis.Cells...)
	}
	return QExpr(cells)
}

func builtinApply(env *LEnv, args *LVal) *LVal {
	fn := args.Cells[0]
	if fn.Type != LFun {
		return env.Errorf("%w: apply: %v", ErrNotAProcedure, fn)
	}
	if args.Len() < 2 {
		return env.Errorf("%w: apply: no argument list", ErrArityMismatch)
	}
	last := args.Cells[args.Len()-1]
	if last.Type != LQExpr {
		return env.Errorf("%w: apply: last argument is not a list: %v", ErrTypeMismatch, last.Type)
	}
	fargs := make([]*LVal, 0, args.Len()-2+last.Len())
	fargs = append(fargs, args.Cells[1:args.Len()-1]...)
	fargs = append(fargs, last.Cells...)
	return env.Call(fn, QExpr(fargs))
}

// builtinBegin returns its last argument.  The arguments have already been
// evaluated in order by the time builtinBegin is invoked.
func builtinBegin(env *LEnv, args *LVal) *LVal {
	if args.Len() == 0 {
		return Nil()
	}
	return args.Cells[args.Len()-1]
}

// builtinCAR returns the empty list when its argument is empty.
func builtinCAR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LQExpr {
		return env.Errorf("%w: car: argument is not a list: %v", ErrTypeMismatch, lis.Type)
	}
	if lis.Len() == 0 {
		return Nil()
	}
	return lis.Cells[0]
}

// builtinCDR returns the empty list when its argument has fewer than two
// elements.
func builtinCDR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LQExpr {
		return env.Errorf("%w: cdr: argument is not a list: %v", ErrTypeMismatch, lis.Type)
	}
	if lis.Len() < 2 {
		return Nil()
	}
	return QExpr(lis.Cells[1:])
}

// builtinCons prepends head to tail.  A tail that is not a list becomes the
// second element of a two element list.
func builtinCons(env *LEnv, args *LVal) *LVal {
	head, tail := args.Cells[0], args.Cells[1]
	if tail.Type != LQExpr {
		return QExpr([]*LVal{head, tail})
	}
	cells := make([]*LVal, 0, tail.Len()+1)
	cells = append(cells, head)
	cells = append(cells, tail.Cells...)
	return QExpr(cells)
}

func builtinEq(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Identical(args.Cells[1]))
}

func builtinEqual(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Equal(args.Cells[1]))
}

func builtinLength(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LQExpr {
		return env.Errorf("%w: length: argument is not a list: %v", ErrTypeMismatch, lis.Type)
	}
	return Number(float64(lis.Len()))
}

func builtinList(env *LEnv, args *LVal) *LVal {
	cells := make([]*LVal, args.Len())
	copy(cells, args.Cells)
	return QExpr(cells)
}

func builtinListP(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsList())
}

func builtinMap(env *LEnv, args *LVal) *LVal {
	f := args.Cells[0]
	if f.Type != LFun {
		return env.Errorf("%w: map: %v", ErrNotAProcedure, f)
	}
	lis := args.Cells[1]
	if lis.Type != LQExpr {
		return env.Errorf("%w: map: second argument is not a list: %v", ErrTypeMismatch, lis.Type)
	}
	cells := make([]*LVal, lis.Len())
	for i, c := range lis.Cells {
		fret := env.Call(f, QExpr([]*LVal{c}))
		if fret.Type == LError {
			return fret
		}
		cells[i] = fret
	}
	return QExpr(cells)
}

func builtinNot(env *LEnv, args *LVal) *LVal {
	return Bool(!args.Cells[0].IsTrue())
}

func builtinNullP(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsNil())
}

func builtinNumberP(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LNumber)
}

func builtinProcedureP(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LFun)
}

// builtinRound rounds halfway values toward positive infinity.
func builtinRound(env *LEnv, args *LVal) *LVal {
	if lerr := checkNumeric(env, "round", args); lerr != nil {
		return lerr
	}
	return Number(math.Floor(args.Cells[0].Num + 0.5))
}

func builtinSymbolP(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LSymbol)
}

func builtinDebugPrint(env *LEnv, args *LVal) *LVal {
	fmtargs := make([]interface{}, len(args.Cells))
	for i := range args.Cells {
		fmtargs[i] = args.Cells[i]
	}
	fmt.Fprintln(env.Runtime.Stderr, fmtargs...)
	return Nil()
}

func builtinDebugStack(env *LEnv, args *LVal) *LVal {
	env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
	return Nil()
}

func checkNumeric(env *LEnv, name string, args *LVal) *LVal {
	for i, c := range args.Cells {
		if c.Type != LNumber {
			return env.Errorf("%w: %s: argument %d is not a number: %v", ErrTypeMismatch, name, i+1, c.Type)
		}
	}
	return nil
}

func compareNumeric(env *LEnv, name string, args *LVal, fn func(a, b float64) bool) *LVal {
	if lerr := checkNumeric(env, name, args); lerr != nil {
		return lerr
	}
	return Bool(fn(args.Cells[0].Num, args.Cells[1].Num))
}
