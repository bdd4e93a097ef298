package interpreter

import "fmt"

// EvalError is a fault raised while evaluating a program. It ends the
// evaluation of that program.
type EvalError struct {
	Pos int
	Msg string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error, pos=%d, %s", e.Pos, e.Msg)
}

func errorf(pos int, format string, args ...any) *EvalError {
	return &EvalError{
		Pos: pos,
		Msg: fmt.Sprintf(format, args...),
	}
}
