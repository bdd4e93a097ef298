package parser

import (
	"fmt"

	"github.com/rhino1998/duet/pkg/lexer"
)

const (
	// KindStatement is reported as the expected kind when no statement can
	// start at the current token.
	KindStatement lexer.Kind = "stmt"

	// KindRelop is reported as the expected kind when a comparison has no
	// relational operator.
	KindRelop lexer.Kind = "relop"
)

// SyntaxError is the first token mismatch found while parsing a program.
type SyntaxError struct {
	Pos      int
	Expected lexer.Kind
	Found    lexer.Kind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error, pos=%d, expected=%s, found=%s", e.Pos, e.Expected, e.Found)
}
