package parser

// Operator is an arithmetic or relational operator symbol.
type Operator string

const (
	OperatorAddition       Operator = "+"
	OperatorSubtraction    Operator = "-"
	OperatorMultiplication Operator = "*"
	OperatorDivision       Operator = "/"

	OperatorLessThan           Operator = "<"
	OperatorLessThanOrEqual    Operator = "<="
	OperatorGreaterThan        Operator = ">"
	OperatorGreaterThanOrEqual Operator = ">="
	OperatorEqual              Operator = "=="
	OperatorNotEqual           Operator = "<>"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() int
}

// Program is one parsed source text.
type Program struct {
	Block *Block
}

func (p *Program) Pos() int { return p.Block.Pos() }

// Block is a non-empty sequence of statements.
type Block struct {
	Statements []Statement
}

func (b *Block) Pos() int { return b.Statements[0].Pos() }

type Statement interface {
	Node
	statement()
}

type AssignStatement struct {
	Position int
	Name     string
	Expr     Expr
}

func (s *AssignStatement) Pos() int { return s.Position }
func (*AssignStatement) statement() {}

type ReadStatement struct {
	Position int
	Name     string
}

func (s *ReadStatement) Pos() int { return s.Position }
func (*ReadStatement) statement() {}

type WriteStatement struct {
	Position int
	Expr     Expr
}

func (s *WriteStatement) Pos() int { return s.Position }
func (*WriteStatement) statement() {}

type IfStatement struct {
	Position  int
	Condition *Comparison
	Then      Statement
	Else      Statement // nil when absent
}

func (s *IfStatement) Pos() int { return s.Position }
func (*IfStatement) statement() {}

type WhileStatement struct {
	Position  int
	Condition *Comparison
	Body      Statement
}

func (s *WhileStatement) Pos() int { return s.Position }
func (*WhileStatement) statement() {}

// Comparison is a relational test between two expressions. It evaluates
// to 1 or 0.
type Comparison struct {
	Position int
	Left     Expr
	Operator Operator
	Right    Expr
}

func (c *Comparison) Pos() int { return c.Position }

type Expr interface {
	Node
	expr()
}

// BinaryExpr applies Operator to Left and Right. Chains of operators with
// the same precedence nest on the left, so Left is evaluated first.
type BinaryExpr struct {
	Position int
	Left     Expr
	Operator Operator
	Right    Expr
}

func (e *BinaryExpr) Pos() int { return e.Position }
func (*BinaryExpr) expr() {}

type NumberLiteral struct {
	Position int
	Text     string
}

func (e *NumberLiteral) Pos() int { return e.Position }
func (*NumberLiteral) expr() {}

type IdentifierExpr struct {
	Position int
	Name     string
}

func (e *IdentifierExpr) Pos() int { return e.Position }
func (*IdentifierExpr) expr() {}

type NegateExpr struct {
	Position int
	Expr     Expr
}

func (e *NegateExpr) Pos() int { return e.Position }
func (*NegateExpr) expr() {}

type ParenExpr struct {
	Position int
	Expr     Expr
}

func (e *ParenExpr) Pos() int { return e.Position }
func (*ParenExpr) expr() {}
