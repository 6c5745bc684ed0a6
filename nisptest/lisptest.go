// Package nisptest provides a table driven harness for testing lisp
// evaluation.
package nisptest

import (
	"bytes"
	"testing"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // expected debugging output
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns a root environment that writes debugging output to stderr.
func NewEnv(t testing.TB, stderr *bytes.Buffer) *lisp.LEnv {
	env, err := lisp.NewRootEnv(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(stderr),
	)
	if err != nil {
		t.Fatalf("Failed to initialize lisp environment: %v", err)
	}
	return env
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.  Every
// expression in a sequence is evaluated in the same environment so that
// definitions carry forward to later expressions.  When an expression
// contains several top-level forms the value of the last is compared.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stderr bytes.Buffer
		env := NewEnv(t, &stderr)
		for j, expr := range test.TestSequence {
			stderr.Reset()
			v, err := parser.ParseProgram(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			var result *lisp.LVal
			for _, form := range v {
				result = env.Eval(form)
				if result.Type == lisp.LError {
					break
				}
			}
			if result.String() != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if stderr.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stderr.String())
			}
		}
	}
}
