// Package cgen translates parsed programs into C source text.
package cgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhino1998/duet/pkg/interpreter"
	"github.com/rhino1998/duet/pkg/parser"
)

const (
	writeFunc = "duet_wr"
	readFunc  = "duet_rd"
)

// Code renders node as C. Rendering has no side effects and does not depend
// on runtime values.
func Code(node parser.Node) string {
	var b strings.Builder
	emit(&b, node)
	return b.String()
}

func emit(b *strings.Builder, node parser.Node) {
	switch node := node.(type) {
	case *parser.Program:
		emit(b, node.Block)
	case *parser.Block:
		for _, stmt := range node.Statements {
			emit(b, stmt)
		}
	case *parser.AssignStatement:
		name := interpreter.CName(node.Name)
		fmt.Fprintf(b, "%s = %s;\n", name, expr(node.Expr))
		fmt.Fprintf(b, "%s(%s);\n", writeFunc, name)
	case *parser.ReadStatement:
		fmt.Fprintf(b, "%s = %s(%s);\n", interpreter.CName(node.Name), readFunc, strconv.Quote(node.Name))
	case *parser.WriteStatement:
		fmt.Fprintf(b, "%s(%s);\n", writeFunc, expr(node.Expr))
	case *parser.IfStatement:
		fmt.Fprintf(b, "if %s {\n", comparison(node.Condition))
		emit(b, node.Then)
		if node.Else != nil {
			b.WriteString("} else {\n")
			emit(b, node.Else)
		}
		b.WriteString("}\n")
	case *parser.WhileStatement:
		fmt.Fprintf(b, "while %s {\n", comparison(node.Condition))
		emit(b, node.Body)
		b.WriteString("}\n")
	case *parser.Comparison:
		b.WriteString(comparison(node))
	case parser.Expr:
		b.WriteString(expr(node))
	}
}

var cOperators = map[parser.Operator]string{
	parser.OperatorNotEqual: "!=",
}

func operator(op parser.Operator) string {
	if c, ok := cOperators[op]; ok {
		return c
	}
	return string(op)
}

func comparison(cmp *parser.Comparison) string {
	return fmt.Sprintf("(%s %s %s)", expr(cmp.Left), operator(cmp.Operator), expr(cmp.Right))
}

// expr renders an expression. Operands are already grouped left to right
// with C's precedence, so only source parentheses are emitted.
func expr(e parser.Expr) string {
	switch e := e.(type) {
	case *parser.BinaryExpr:
		return fmt.Sprintf("%s %s %s", expr(e.Left), operator(e.Operator), expr(e.Right))
	case *parser.NegateExpr:
		operand := expr(e.Expr)
		if strings.HasPrefix(operand, "-") {
			return "- " + operand
		}
		return "-" + operand
	case *parser.ParenExpr:
		return "(" + expr(e.Expr) + ")"
	case *parser.IdentifierExpr:
		return interpreter.CName(e.Name)
	case *parser.NumberLiteral:
		return number(e.Text)
	default:
		return fmt.Sprintf("/* %T */", e)
	}
}

// number renders a digit string as a C double literal. Leading zeros are
// dropped so C does not read the literal as octal.
func number(text string) string {
	digits := strings.TrimLeft(text, "0")
	if digits == "" {
		digits = "0"
	}
	return digits + ".0"
}
