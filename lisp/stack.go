package lisp

import (
	"fmt"
	"io"
)

// CallStack is a procedure call stack.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight is the maximum number of frames allowed on the stack.  When
	// MaxHeight is zero the stack height is only limited by the Go runtime.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	FID  string
	Name string
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// PushFID pushes a new stack frame with the given FID onto s.  An error is
// returned if pushing the frame would exceed s.MaxHeight.
func (s *CallStack) PushFID(fid, name string) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return fmt.Errorf("%w: maximum height %d exceeded calling %s", ErrStackOverflow, s.MaxHeight, fid)
	}
	s.Frames = append(s.Frames, CallFrame{FID: fid, Name: name})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		name := f.FID
		if f.Name != "" {
			name = f.Name
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, name)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
