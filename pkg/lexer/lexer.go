// Package lexer converts program text into a stream of tokens.
package lexer

import (
	"iter"
	"strings"
)

// Config holds the configurable token sets. Single character operators and
// character classes are fixed.
type Config struct {
	// Keywords lists the reserved words. An identifier whose text equals one
	// of them lexes with that keyword as its kind.
	Keywords []Kind

	// Operators lists the two character operators, matched before falling
	// back to a single character.
	Operators []Kind
}

func DefaultConfig() Config {
	return Config{
		Keywords:  Keywords,
		Operators: Operators,
	}
}

var singleOperators = map[byte]Kind{
	'=': KindAssign,
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
	'(': KindLParen,
	')': KindRParen,
	';': KindSemicolon,
	'<': KindLess,
	'>': KindGreater,
}

type Lexer struct {
	src string
	pos int
	tok Token

	keywords  map[string]Kind
	operators map[string]Kind

	errh ErrorHandler
	errs []*Error
}

// New returns a lexer positioned before the first token of src. errh may be
// nil; errors are also collected and available from Errors.
func New(cfg Config, src string, errh ErrorHandler) *Lexer {
	l := &Lexer{
		src:       src,
		keywords:  make(map[string]Kind),
		operators: make(map[string]Kind),
		errh:      errh,
	}

	for _, kw := range cfg.Keywords {
		l.keywords[string(kw)] = kw
	}

	for _, op := range cfg.Operators {
		if len(op) == 2 {
			l.operators[string(op)] = op
		}
	}

	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = 0
	l.tok = Token{}
	l.errs = nil
}

// Done reports whether all input has been consumed.
func (l *Lexer) Done() bool {
	return l.pos >= len(l.src)
}

// Errors returns the lexical errors seen since the last Reset.
func (l *Lexer) Errors() []*Error {
	return l.errs
}

// All rewinds the lexer and yields every token up to and including EOF.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l.Reset()
		for {
			tok := l.Next()
			if !yield(tok) || tok.Is(KindEOF) {
				return
			}
		}
	}
}

// Next scans and returns the next token. Once input is exhausted every call
// returns an EOF token.
func (l *Lexer) Next() Token {
	for {
		l.skip()
		if l.Done() {
			l.tok = newToken(KindEOF, string(KindEOF), len(l.src))
			return l.tok
		}

		c := l.src[l.pos]
		switch {
		case isDigit(c):
			l.scanNumber()
		case isLetter(c):
			l.scanWord()
		case isOperator(c):
			l.scanOperator()
		default:
			l.error(c)
			l.pos++
			continue
		}

		return l.tok
	}
}

// skip advances past whitespace and comments.
func (l *Lexer) skip() {
	for !l.Done() {
		c := l.src[l.pos]
		switch {
		case isWhitespace(c):
			l.pos++
		case c == '#', strings.HasPrefix(l.src[l.pos:], "//"):
			l.skipLine()
		default:
			return
		}
	}
}

func (l *Lexer) skipLine() {
	for !l.Done() && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) scanNumber() {
	start := l.pos
	for !l.Done() && isDigit(l.src[l.pos]) {
		l.pos++
	}

	l.tok = newToken(KindNumber, l.src[start:l.pos], start)
}

func (l *Lexer) scanWord() {
	start := l.pos
	for !l.Done() && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
		l.pos++
	}

	text := l.src[start:l.pos]
	kind, ok := l.keywords[text]
	if !ok {
		kind = KindIdentifier
	}

	l.tok = newToken(kind, text, start)
}

func (l *Lexer) scanOperator() {
	start := l.pos
	if start+2 <= len(l.src) {
		if kind, ok := l.operators[l.src[start:start+2]]; ok {
			l.pos += 2
			l.tok = newToken(kind, string(kind), start)
			return
		}
	}

	kind := singleOperators[l.src[start]]
	l.pos++
	l.tok = newToken(kind, string(kind), start)
}

func (l *Lexer) error(c byte) {
	err := &Error{Pos: l.pos, Char: c}
	l.errs = append(l.errs, err)
	if l.errh != nil {
		l.errh(err)
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isOperator(c byte) bool {
	_, ok := singleOperators[c]
	return ok
}
