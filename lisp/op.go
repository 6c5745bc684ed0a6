package lisp

var langSpecialOps = []*langBuiltin{
	{"quote", Formals("expr"), opQuote},
	{"if", Formals("condition", "then", "else"), opIf},
	{"define", Formals("symbol", "expr"), opDefine},
	{"set!", Formals("symbol", "expr"), opSet},
	{"lambda", Formals("formals", "body"), opLambda},
}

// specialOpTable maps the head symbols that trigger special evaluation to
// their implementation.
//
// The table is filled by init because the special operators evaluate
// expressions, and evaluation consults the table.
var specialOpTable = map[string]*langBuiltin{}

func init() {
	for _, op := range langSpecialOps {
		specialOpTable[op.name] = op
	}
}

// DefaultSpecialOps returns the special forms recognized by the evaluator.
// Special operators are not bound in any environment and cannot be
// shadowed.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

// IsSpecialOp returns true if name is the head symbol of a special form.
func IsSpecialOp(name string) bool {
	_, ok := specialOpTable[name]
	return ok
}

func opQuote(env *LEnv, args *LVal) *LVal {
	return Datum(args.Cells[0])
}

func opIf(env *LEnv, args *LVal) *LVal {
	test := env.Eval(args.Cells[0])
	if test.Type == LError {
		return test
	}
	if test.IsTrue() {
		return env.Eval(args.Cells[1])
	}
	return env.Eval(args.Cells[2])
}

func opDefine(env *LEnv, args *LVal) *LVal {
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return env.Errorf("%w: define: first argument is not a symbol: %v", ErrTypeMismatch, sym.Type)
	}
	val := env.Eval(args.Cells[1])
	if val.Type == LError {
		return val
	}
	env.Put(sym, val)
	return Nil()
}

func opSet(env *LEnv, args *LVal) *LVal {
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return env.Errorf("%w: set!: first argument is not a symbol: %v", ErrTypeMismatch, sym.Type)
	}
	val := env.Eval(args.Cells[1])
	if val.Type == LError {
		return val
	}
	return env.Set(sym, val)
}

func opLambda(env *LEnv, args *LVal) *LVal {
	formals := args.Cells[0]
	if formals.Type != LSExpr {
		return env.Errorf("%w: lambda: formals are not a list: %v", ErrTypeMismatch, formals.Type)
	}
	for i, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return env.Errorf("%w: lambda: formals contain a non-symbol: %v", ErrTypeMismatch, sym)
		}
		if sym.Str == VarArgSymbol && i != len(formals.Cells)-2 {
			return env.Errorf("%w: lambda: %s must precede exactly one symbol", ErrTypeMismatch, VarArgSymbol)
		}
	}
	return Lambda(env, Datum(formals), args.Cells[1])
}
