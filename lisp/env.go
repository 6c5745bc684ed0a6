package lisp

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var envCount uint64
var funCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Runtime is the state shared by a root environment and every environment
// derived from it.
type Runtime struct {
	Stack  *CallStack
	Stderr io.Writer
	Reader Reader
}

// LEnv is a lisp environment.  Environments form a chain through Parent
// toward a root environment with no parent.  Closures hold a pointer to the
// environment they were created in, so an environment lives as long as the
// longest lived closure or call frame referencing it.
//
// An LEnv is not safe for concurrent use.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a fresh Runtime.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = &Runtime{
			Stack:  &CallStack{},
			Stderr: os.Stderr,
		}
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

func (env *LEnv) getFID() string {
	return fmt.Sprintf("lambda%d", atomic.AddUint64(&funCount, 1))
}

// Lookup returns the environment in the chain starting at env that binds the
// symbol named k.  Lookup returns nil if k is unbound.  A binding is found
// regardless of the value it holds.
func (env *LEnv) Lookup(k string) *LEnv {
	if _, ok := env.Scope[k]; ok {
		return env
	}
	if env.Parent != nil {
		return env.Parent.Lookup(k)
	}
	return nil
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return env.Errorf("%w: cannot look up %v", ErrTypeMismatch, k.Type)
	}
	owner := env.Lookup(k.Str)
	if owner == nil {
		return env.Errorf("%w: %s", ErrUnboundSymbol, k.Str)
	}
	return owner.Scope[k.Str]
}

// Put takes an LSymbol k and binds it to v in env.  Bindings in parent
// environments are never modified by Put.
func (env *LEnv) Put(k, v *LVal) {
	if k.Type != LSymbol {
		return
	}
	if v == nil {
		panic("nil value")
	}
	env.Scope[k.Str] = v
}

// Set takes an LSymbol k and rebinds it to v in the environment that owns
// the existing binding of k.  An error is returned if k is unbound.
func (env *LEnv) Set(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return env.Errorf("%w: cannot set %v", ErrTypeMismatch, k.Type)
	}
	owner := env.Lookup(k.Str)
	if owner == nil {
		return env.Errorf("%w: %s", ErrUnboundSymbol, k.Str)
	}
	owner.Put(k, v)
	return Nil()
}

// Error returns an LError for err that carries a copy of the current call
// stack.
func (env *LEnv) Error(err error) *LVal {
	lerr := Error(err)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

// Errorf returns a formatted LError that carries a copy of the current call
// stack.
func (env *LEnv) Errorf(format string, v ...interface{}) *LVal {
	lerr := Errorf(format, v...)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Numbers and values that have already been evaluated are returned
// unchanged.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LSExpr:
		return env.EvalSExpr(v)
	default:
		return v
	}
}

// EvalSExpr evaluates s and returns the resulting LVal.  Special forms are
// recognized by the literal symbol at the head of s.  Any other s-expression
// is a procedure application and its elements are evaluated left to right
// before the procedure is called.
func (env *LEnv) EvalSExpr(s *LVal) *LVal {
	if s.Type != LSExpr {
		return env.Errorf("%w: not an s-expression: %v", ErrTypeMismatch, s.Type)
	}
	if len(s.Cells) == 0 {
		return env.Errorf("%w: () has no operator", ErrEmptyApplication)
	}

	head := s.Cells[0]
	if head.Type == LSymbol {
		if op, ok := specialOpTable[head.Str]; ok {
			args := SExpr(s.Cells[1:])
			lerr := env.checkArity(op.name, op.formals, args.Len())
			if lerr != nil {
				return lerr
			}
			return op.Eval(env, args)
		}
	}

	f := env.Eval(head)
	if f.Type == LError {
		return f
	}
	if f.Type != LFun {
		return env.Errorf("%w: %v", ErrNotAProcedure, f)
	}

	args := make([]*LVal, len(s.Cells)-1)
	for i, c := range s.Cells[1:] {
		args[i] = env.Eval(c)
		if args[i].Type == LError {
			return args[i]
		}
	}
	return env.Call(f, QExpr(args))
}

// Call invokes LFun fun with the list args.  The number of arguments is
// checked against the formals of fun before it is invoked.  Procedures
// defined with lambda are evaluated in a new frame whose parent is the
// environment captured by the procedure.
func (env *LEnv) Call(fun *LVal, args *LVal) *LVal {
	if fun.Type != LFun {
		return env.Errorf("%w: %v", ErrNotAProcedure, fun)
	}
	lerr := env.checkArity(fun.FID, fun.Formals, args.Len())
	if lerr != nil {
		return lerr
	}
	err := env.Runtime.Stack.PushFID(fun.FID, "")
	if err != nil {
		return env.Error(err)
	}
	defer env.Runtime.Stack.Pop()

	if fun.Builtin != nil {
		return fun.Builtin(env, args)
	}

	frame := NewEnv(fun.Env)
	for i, argSym := range fun.Formals.Cells {
		if argSym.Str == VarArgSymbol {
			frame.Put(fun.Formals.Cells[i+1], QExpr(args.Cells[i:]))
			break
		}
		frame.Put(argSym, args.Cells[i])
	}
	return frame.Eval(fun.Body)
}

// checkArity returns an LError if n arguments cannot be bound to formals.
// It returns nil otherwise.
func (env *LEnv) checkArity(name string, formals *LVal, n int) *LVal {
	if formals == nil {
		return nil
	}
	npos := len(formals.Cells)
	vargs := false
	for i, sym := range formals.Cells {
		if sym.Str == VarArgSymbol {
			npos = i
			vargs = true
			break
		}
	}
	switch {
	case vargs && n < npos:
		return env.Errorf("%w: %s expects at least %d arguments (got %d)", ErrArityMismatch, name, npos, n)
	case !vargs && n != npos:
		return env.Errorf("%w: %s expects %d arguments (got %d)", ErrArityMismatch, name, npos, n)
	}
	return nil
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		k := Symbol(f.Name())
		if env.Lookup(k.Str) != nil {
			panic("symbol already defined: " + f.Name())
		}
		env.Put(k, Fun(f.Name(), f.Formals(), f.Eval))
	}
}

// Load reads LVals from r using the environment's Reader and evaluates them
// in order.  Evaluation stops at the first error, which is returned.
// Otherwise the value of the last form is returned.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}
