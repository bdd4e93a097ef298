// Package parser builds an AST from a token stream by recursive descent.
//
// Grammar:
//
//	program    := block EOF
//	block      := stmt { ";" } { stmt { ";" } }
//	stmt       := id "=" expr ";"
//	            | "rd" id ";"
//	            | "wr" expr ";"
//	            | "if" comparison "then" stmt [ "else" stmt ]
//	            | "while" comparison "do" stmt
//	comparison := expr relop expr
//	expr       := term [ addop expr ]
//	term       := factor [ mulop term ]
//	factor     := "-" factor | "(" expr ")" | id | num
package parser

import (
	"github.com/rhino1998/duet/pkg/lexer"
)

var relops = map[lexer.Kind]Operator{
	lexer.KindLess:         OperatorLessThan,
	lexer.KindLessEqual:    OperatorLessThanOrEqual,
	lexer.KindGreater:      OperatorGreaterThan,
	lexer.KindGreaterEqual: OperatorGreaterThanOrEqual,
	lexer.KindEqual:        OperatorEqual,
	lexer.KindNotEqual:     OperatorNotEqual,
}

var addops = map[lexer.Kind]Operator{
	lexer.KindPlus:  OperatorAddition,
	lexer.KindMinus: OperatorSubtraction,
}

var mulops = map[lexer.Kind]Operator{
	lexer.KindStar:  OperatorMultiplication,
	lexer.KindSlash: OperatorDivision,
}

type Parser struct {
	lexer *lexer.Lexer
	tok   lexer.Token
}

// New returns a parser reading from l, which must be positioned before its
// first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer: l,
	}
	p.next()
	return p
}

// ParseString parses src with the default lexer configuration. Lexical
// errors are ignored apart from the skipped characters.
func ParseString(src string) (*Program, error) {
	return New(lexer.New(lexer.DefaultConfig(), src, nil)).Parse()
}

// Parse consumes the whole token stream. It stops at the first mismatch and
// returns it as a *SyntaxError.
func (p *Parser) Parse() (*Program, error) {
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindEOF)
	if err != nil {
		return nil, err
	}

	return &Program{Block: block}, nil
}

func (p *Parser) next() {
	p.tok = p.lexer.Next()
}

func (p *Parser) got(kind lexer.Kind) bool {
	if p.tok.Is(kind) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.tok
	if !tok.Is(kind) {
		return tok, p.errorf(kind)
	}

	p.next()
	return tok, nil
}

func (p *Parser) errorf(expected lexer.Kind) error {
	return &SyntaxError{
		Pos:      p.tok.Pos,
		Expected: expected,
		Found:    p.tok.Kind,
	}
}

func startsStatement(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.KindIdentifier, lexer.KindRead, lexer.KindWrite, lexer.KindIf, lexer.KindWhile:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBlock() (*Block, error) {
	var block Block
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)

		for p.got(lexer.KindSemicolon) {
		}

		if !startsStatement(p.tok) {
			return &block, nil
		}
	}
}

func (p *Parser) parseStatement() (Statement, error) {
	switch p.tok.Kind {
	case lexer.KindIdentifier:
		return p.parseAssignStatement()
	case lexer.KindRead:
		return p.parseReadStatement()
	case lexer.KindWrite:
		return p.parseWriteStatement()
	case lexer.KindIf:
		return p.parseIfStatement()
	case lexer.KindWhile:
		return p.parseWhileStatement()
	default:
		return nil, p.errorf(KindStatement)
	}
}

func (p *Parser) parseAssignStatement() (*AssignStatement, error) {
	id, err := p.expect(lexer.KindIdentifier)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindAssign)
	if err != nil {
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &AssignStatement{Position: id.Pos, Name: id.Text, Expr: expr}, nil
}

func (p *Parser) parseReadStatement() (*ReadStatement, error) {
	rd, err := p.expect(lexer.KindRead)
	if err != nil {
		return nil, err
	}

	id, err := p.expect(lexer.KindIdentifier)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &ReadStatement{Position: rd.Pos, Name: id.Text}, nil
}

func (p *Parser) parseWriteStatement() (*WriteStatement, error) {
	wr, err := p.expect(lexer.KindWrite)
	if err != nil {
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &WriteStatement{Position: wr.Pos, Expr: expr}, nil
}

func (p *Parser) parseIfStatement() (*IfStatement, error) {
	tok, err := p.expect(lexer.KindIf)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindThen)
	if err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &IfStatement{Position: tok.Pos, Condition: cond, Then: then}
	if p.got(lexer.KindElse) {
		stmt.Else, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*WhileStatement, error) {
	tok, err := p.expect(lexer.KindWhile)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.KindDo)
	if err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &WhileStatement{Position: tok.Pos, Condition: cond, Body: body}, nil
}

func (p *Parser) parseComparison() (*Comparison, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	op, ok := relops[p.tok.Kind]
	if !ok {
		return nil, p.errorf(KindRelop)
	}
	pos := p.tok.Pos
	p.next()

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Comparison{Position: pos, Left: left, Operator: op, Right: right}, nil
}

// chain is a run of same-precedence operands in source order:
// units[0] ops[0] units[1] ... ops[n-1] units[n].
type chain struct {
	units []Expr
	ops   []operatorAt
}

type operatorAt struct {
	op  Operator
	pos int
}

// fold nests the chain to the left so that a-b-c groups as (a-b)-c.
func (c chain) fold() Expr {
	expr := c.units[0]
	for i, op := range c.ops {
		expr = &BinaryExpr{
			Position: op.pos,
			Left:     expr,
			Operator: op.op,
			Right:    c.units[i+1],
		}
	}
	return expr
}

// parseChain reads unit {op unit} for the operators in ops. Each tail of
// the right-recursive rule is appended in place, so the chain stays in
// source order for fold.
func (p *Parser) parseChain(ops map[lexer.Kind]Operator, unit func() (Expr, error)) (Expr, error) {
	var c chain
	for {
		u, err := unit()
		if err != nil {
			return nil, err
		}
		c.units = append(c.units, u)

		op, ok := ops[p.tok.Kind]
		if !ok {
			return c.fold(), nil
		}
		c.ops = append(c.ops, operatorAt{op: op, pos: p.tok.Pos})
		p.next()
	}
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseChain(addops, p.parseTerm)
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.parseChain(mulops, p.parseFactor)
}

func (p *Parser) parseFactor() (Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case lexer.KindMinus:
		p.next()
		expr, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		return &NegateExpr{Position: tok.Pos, Expr: expr}, nil
	case lexer.KindLParen:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		_, err = p.expect(lexer.KindRParen)
		if err != nil {
			return nil, err
		}

		return &ParenExpr{Position: tok.Pos, Expr: expr}, nil
	case lexer.KindIdentifier:
		p.next()
		return &IdentifierExpr{Position: tok.Pos, Name: tok.Text}, nil
	default:
		num, err := p.expect(lexer.KindNumber)
		if err != nil {
			return nil, err
		}

		return &NumberLiteral{Position: num.Pos, Text: num.Text}, nil
	}
}
