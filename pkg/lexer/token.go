package lexer

import "fmt"

// Kind classifies a token. For operators and keywords the kind is the
// symbol itself, so Kind("+") matches the text "+".
type Kind string

const (
	KindEOF        Kind = "EOF"
	KindNumber     Kind = "num"
	KindIdentifier Kind = "id"

	KindAssign    Kind = "="
	KindPlus      Kind = "+"
	KindMinus     Kind = "-"
	KindStar      Kind = "*"
	KindSlash     Kind = "/"
	KindLParen    Kind = "("
	KindRParen    Kind = ")"
	KindSemicolon Kind = ";"

	KindLess         Kind = "<"
	KindLessEqual    Kind = "<="
	KindGreater      Kind = ">"
	KindGreaterEqual Kind = ">="
	KindEqual        Kind = "=="
	KindNotEqual     Kind = "<>"

	KindRead  Kind = "rd"
	KindWrite Kind = "wr"
	KindIf    Kind = "if"
	KindThen  Kind = "then"
	KindElse  Kind = "else"
	KindWhile Kind = "while"
	KindDo    Kind = "do"
)

// Keywords is the default reserved word set.
var Keywords = []Kind{
	KindRead,
	KindWrite,
	KindIf,
	KindThen,
	KindElse,
	KindWhile,
	KindDo,
}

// Operators is the default multi-character operator set.
var Operators = []Kind{
	KindLessEqual,
	KindGreaterEqual,
	KindEqual,
	KindNotEqual,
}

// Token is one lexical unit. Tokens compare by Kind only.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

func newToken(kind Kind, text string, pos int) Token {
	return Token{Kind: kind, Text: text, Pos: pos}
}

// Is reports whether t has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// Matches reports whether t and o are the same kind of token; text is ignored.
func (t Token) Matches(o Token) bool {
	return t.Kind == o.Kind
}

func (t Token) String() string {
	return fmt.Sprintf("<%s,%s>", t.Kind, t.Text)
}
