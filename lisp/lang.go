package lisp

import (
	"math"
	"strings"
)

// VarArgSymbol is the symbol that indicates a variadic procedure argument in a
// procedure's list of formal arguments.
const VarArgSymbol = "&"

// InitializeUserEnv binds the default builtins and constants into env, which
// should be a root environment, and then applies the given configuration.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins()
	env.Put(Symbol("pi"), Number(math.Pi))
	env.Put(Symbol(TrueSymbol), Symbol(TrueSymbol))
	env.Put(Symbol("false"), Nil())
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// NewRootEnv returns a new root environment populated with the default
// builtins.  The root environment is intended to be created once and passed
// to every evaluation for the lifetime of a session, accumulating the
// definitions it makes.
func NewRootEnv(config ...Config) (*LEnv, error) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env, config...)
	if lerr.Type == LError {
		return nil, GoError(lerr)
	}
	return env, nil
}

// LoadString parses and evaluates the forms in source.  See LEnv.Load.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}
