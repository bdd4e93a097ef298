package lexer_test

import (
	"slices"
	"testing"

	"github.com/rhino1998/duet/pkg/lexer"
	"github.com/stretchr/testify/require"
)

func kinds(l *lexer.Lexer) []lexer.Kind {
	var ks []lexer.Kind
	for tok := range l.All() {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestLexer_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		kinds []lexer.Kind
	}{
		{"empty", "", []lexer.Kind{lexer.KindEOF}},
		{"whitespace", " \t\n ", []lexer.Kind{lexer.KindEOF}},
		{"number", "123", []lexer.Kind{lexer.KindNumber, lexer.KindEOF}},
		{"identifier", "foo1", []lexer.Kind{lexer.KindIdentifier, lexer.KindEOF}},
		{"assignment", "x = 1;", []lexer.Kind{
			lexer.KindIdentifier, lexer.KindAssign, lexer.KindNumber, lexer.KindSemicolon, lexer.KindEOF,
		}},
		{"arithmetic", "1+2-3*4/5", []lexer.Kind{
			lexer.KindNumber, lexer.KindPlus, lexer.KindNumber, lexer.KindMinus, lexer.KindNumber,
			lexer.KindStar, lexer.KindNumber, lexer.KindSlash, lexer.KindNumber, lexer.KindEOF,
		}},
		{"relops", "< <= > >= == <>", []lexer.Kind{
			lexer.KindLess, lexer.KindLessEqual, lexer.KindGreater, lexer.KindGreaterEqual,
			lexer.KindEqual, lexer.KindNotEqual, lexer.KindEOF,
		}},
		{"relops_packed", "a<=b", []lexer.Kind{
			lexer.KindIdentifier, lexer.KindLessEqual, lexer.KindIdentifier, lexer.KindEOF,
		}},
		{"keywords", "rd wr if then else while do", []lexer.Kind{
			lexer.KindRead, lexer.KindWrite, lexer.KindIf, lexer.KindThen,
			lexer.KindElse, lexer.KindWhile, lexer.KindDo, lexer.KindEOF,
		}},
		{"keyword_prefix", "iffy", []lexer.Kind{lexer.KindIdentifier, lexer.KindEOF}},
		{"slash_comment", "x // y z\n;", []lexer.Kind{lexer.KindIdentifier, lexer.KindSemicolon, lexer.KindEOF}},
		{"hash_comment", "# all of it\nx", []lexer.Kind{lexer.KindIdentifier, lexer.KindEOF}},
		{"indented_comment", "  // a\n  # b\n  1", []lexer.Kind{lexer.KindNumber, lexer.KindEOF}},
		{"comment_at_eof", "1 // done", []lexer.Kind{lexer.KindNumber, lexer.KindEOF}},
		{"number_then_word", "12ab", []lexer.Kind{lexer.KindNumber, lexer.KindIdentifier, lexer.KindEOF}},
		{"parens", "(-x)", []lexer.Kind{
			lexer.KindLParen, lexer.KindMinus, lexer.KindIdentifier, lexer.KindRParen, lexer.KindEOF,
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := require.New(t)
			l := lexer.New(lexer.DefaultConfig(), test.src, nil)
			r.Equal(test.kinds, kinds(l))
			r.Empty(l.Errors())
		})
	}
}

func TestLexer_TextAndPosition(t *testing.T) {
	r := require.New(t)

	l := lexer.New(lexer.DefaultConfig(), "abc <= 42", nil)

	tok := l.Next()
	r.Equal(lexer.Token{Kind: lexer.KindIdentifier, Text: "abc", Pos: 0}, tok)

	tok = l.Next()
	r.Equal(lexer.Token{Kind: lexer.KindLessEqual, Text: "<=", Pos: 4}, tok)

	tok = l.Next()
	r.Equal(lexer.Token{Kind: lexer.KindNumber, Text: "42", Pos: 7}, tok)

	tok = l.Next()
	r.True(tok.Is(lexer.KindEOF))
	r.Equal(9, tok.Pos)

	r.True(l.Next().Is(lexer.KindEOF))
}

func TestLexer_EmptyKeywordSet(t *testing.T) {
	r := require.New(t)

	l := lexer.New(lexer.Config{Operators: lexer.Operators}, "while", nil)
	r.Equal([]lexer.Kind{lexer.KindIdentifier, lexer.KindEOF}, kinds(l))
}

func TestLexer_NoMultiCharOperators(t *testing.T) {
	r := require.New(t)

	l := lexer.New(lexer.Config{}, "<=", nil)
	r.Equal([]lexer.Kind{lexer.KindLess, lexer.KindAssign, lexer.KindEOF}, kinds(l))
}

func TestLexer_IllegalCharacter(t *testing.T) {
	r := require.New(t)

	var reported []*lexer.Error
	l := lexer.New(lexer.DefaultConfig(), "x ! y $", func(err *lexer.Error) {
		reported = append(reported, err)
	})

	r.Equal([]lexer.Kind{lexer.KindIdentifier, lexer.KindIdentifier, lexer.KindEOF}, kinds(l))
	r.Len(reported, 2)
	r.Equal(2, reported[0].Pos)
	r.Equal(byte('!'), reported[0].Char)
	r.Equal(6, reported[1].Pos)
	r.Equal(`lex error, pos=2, illegal character '!'`, reported[0].Error())
	r.Equal(reported, l.Errors())
}

func TestLexer_Restart(t *testing.T) {
	r := require.New(t)

	l := lexer.New(lexer.DefaultConfig(), "wr 1;", nil)
	first := slices.Collect(l.All())
	second := slices.Collect(l.All())
	r.Equal(first, second)
	r.Len(first, 4)
}

func TestToken_Matches(t *testing.T) {
	r := require.New(t)

	a := lexer.Token{Kind: lexer.KindIdentifier, Text: "a"}
	b := lexer.Token{Kind: lexer.KindIdentifier, Text: "b"}
	n := lexer.Token{Kind: lexer.KindNumber, Text: "a"}

	r.True(a.Matches(b))
	r.False(a.Matches(n))
	r.Equal("<id,a>", a.String())
}
