package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/nisp/lisp"
	"github.com/bmatsuo/nisp/parser"
	"github.com/chzyer/readline"
	"github.com/golang/glog"
)

// DefaultPrompt is the prompt displayed when no expression is pending.
const DefaultPrompt = "nisp> "

// Config configures an interactive session.
type Config struct {
	Prompt      string
	HistoryFile string
	Stdout      io.Writer
	Stderr      io.Writer

	// Trace causes the call stack of failed evaluations to be printed.
	Trace bool
}

// RunRepl runs an interactive session that evaluates every complete
// expression entered against env.  Lines are accumulated while the pending
// input is an incomplete expression.  A failing expression is reported and
// the session continues with env intact.
func RunRepl(env *lisp.LEnv, config *Config) error {
	prompt := config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: config.HistoryFile,
		Stdout:      config.Stdout,
		Stderr:      config.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	s := &Session{Env: env, Stdout: rl.Stdout(), Stderr: rl.Stderr(), Trace: config.Trace}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			s.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Feed(line) {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

// Session accumulates input lines and evaluates them against Env once they
// form complete expressions.  Session is independent of the terminal so that
// it may be driven by other front ends.
type Session struct {
	Env    *lisp.LEnv
	Stdout io.Writer
	Stderr io.Writer
	Trace  bool

	buf []string
}

// Feed adds line to the pending input.  If the pending input contains only
// complete expressions they are evaluated in order, each value is printed to
// Stdout, and the pending input is cleared.  Top-level define and set! forms
// produce no usable value and print nothing.  Feed returns true if the pending
// input is an incomplete expression and more lines are needed.
func (s *Session) Feed(line string) bool {
	s.buf = append(s.buf, line)
	source := strings.Join(s.buf, "\n")
	exprs, err := parser.ParseProgram(source)
	if errors.Is(err, lisp.ErrUnexpectedEOF) {
		return true
	}
	s.buf = nil
	if err != nil {
		errln(s.Stderr, err)
		return false
	}
	for _, expr := range exprs {
		glog.V(2).Infof("eval: %v", expr)
		v := s.Env.Eval(expr)
		if v.Type == lisp.LError {
			errln(s.Stderr, v)
			if s.Trace && v.Stack != nil {
				v.Stack.DebugPrint(s.Stderr)
			}
			continue
		}
		if isBinding(expr) {
			continue
		}
		fmt.Fprintln(s.Stdout, v)
	}
	return false
}

// Pending returns true if an incomplete expression has been fed to s.
func (s *Session) Pending() bool {
	return len(s.buf) > 0
}

// Reset discards any pending input.
func (s *Session) Reset() {
	s.buf = nil
}

// isBinding returns true if expr is a define or set! form.
func isBinding(expr *lisp.LVal) bool {
	if expr.Type != lisp.LSExpr || expr.Len() == 0 {
		return false
	}
	head := expr.Cells[0]
	return head.Type == lisp.LSymbol && (head.Str == "define" || head.Str == "set!")
}

func errln(w io.Writer, v ...interface{}) {
	fmt.Fprintln(w, v...)
}
