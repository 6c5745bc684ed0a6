package lisp

import "io"

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  When n is zero
// (the default) procedure calls may recurse until the Go runtime runs out of
// stack.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		if n < 0 {
			return Errorf("%w: negative maximum stack height: %d", ErrTypeMismatch, n)
		}
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}
