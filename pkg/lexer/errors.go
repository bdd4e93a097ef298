package lexer

import "fmt"

// Error reports an unrecognized character. The lexer skips it and keeps
// scanning, so an Error never stops a scan.
type Error struct {
	Pos  int
	Char byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error, pos=%d, illegal character %q", e.Pos, e.Char)
}

// ErrorHandler receives every lexical error in scan order.
type ErrorHandler func(err *Error)
