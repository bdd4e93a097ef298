// Package interpreter evaluates parsed programs directly.
package interpreter

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/rhino1998/duet/pkg/parser"
)

// Interpreter walks an AST against one Environment. Read and write
// statements go through the Console.
type Interpreter struct {
	logger  *slog.Logger
	env     *Environment
	console Console
}

func New(logger *slog.Logger, env *Environment, console Console) *Interpreter {
	return &Interpreter{
		logger:  logger,
		env:     env,
		console: console,
	}
}

// Execute evaluates prog and returns the value of the last statement run.
// Any error is an *EvalError.
func (i *Interpreter) Execute(prog *parser.Program) (float64, error) {
	val, err := i.Eval(prog)
	if err != nil {
		return 0, err
	}

	i.logger.Debug("program evaluated",
		slog.Float64("result", val),
		slog.Int("variables", i.env.Len()),
	)

	return val, nil
}

// Eval evaluates a single node. Statements without a natural value yield the
// value of the last statement they ran, or 0 if none ran.
func (i *Interpreter) Eval(node parser.Node) (float64, error) {
	switch node := node.(type) {
	case *parser.Program:
		return i.Eval(node.Block)
	case *parser.Block:
		var val float64
		for _, stmt := range node.Statements {
			var err error
			val, err = i.executeStatement(stmt)
			if err != nil {
				return 0, err
			}
		}

		return val, nil
	case parser.Statement:
		return i.executeStatement(node)
	case *parser.Comparison:
		return i.executeComparison(node)
	case parser.Expr:
		return i.executeExpression(node)
	default:
		return 0, errorf(node.Pos(), "cannot evaluate %T", node)
	}
}

func (i *Interpreter) executeStatement(stmt parser.Statement) (float64, error) {
	switch stmt := stmt.(type) {
	case *parser.AssignStatement:
		val, err := i.write(stmt.Pos(), stmt.Expr)
		if err != nil {
			return 0, err
		}

		return i.env.Put(stmt.Name, val), nil
	case *parser.ReadStatement:
		val, err := i.console.Read(stmt.Name)
		if err != nil {
			return 0, errorf(stmt.Pos(), "cannot read %s: %v", stmt.Name, err)
		}

		return i.env.Put(stmt.Name, val), nil
	case *parser.WriteStatement:
		return i.write(stmt.Pos(), stmt.Expr)
	case *parser.IfStatement:
		cond, err := i.executeComparison(stmt.Condition)
		if err != nil {
			return 0, err
		}

		if cond != 0 {
			return i.executeStatement(stmt.Then)
		} else if stmt.Else != nil {
			return i.executeStatement(stmt.Else)
		}

		return 0, nil
	case *parser.WhileStatement:
		var val float64
		for {
			cond, err := i.executeComparison(stmt.Condition)
			if err != nil {
				return 0, err
			}

			if cond == 0 {
				return val, nil
			}

			val, err = i.executeStatement(stmt.Body)
			if err != nil {
				return 0, err
			}
		}
	default:
		return 0, errorf(stmt.Pos(), "invalid statement %T", stmt)
	}
}

func (i *Interpreter) write(pos int, expr parser.Expr) (float64, error) {
	val, err := i.executeExpression(expr)
	if err != nil {
		return 0, err
	}

	err = i.console.Write(val)
	if err != nil {
		return 0, errorf(pos, "cannot write: %v", err)
	}

	return val, nil
}

func (i *Interpreter) executeComparison(cmp *parser.Comparison) (float64, error) {
	lhs, err := i.executeExpression(cmp.Left)
	if err != nil {
		return 0, err
	}

	rhs, err := i.executeExpression(cmp.Right)
	if err != nil {
		return 0, err
	}

	var b bool
	switch cmp.Operator {
	case parser.OperatorLessThan:
		b = lhs < rhs
	case parser.OperatorLessThanOrEqual:
		b = lhs <= rhs
	case parser.OperatorGreaterThan:
		b = lhs > rhs
	case parser.OperatorGreaterThanOrEqual:
		b = lhs >= rhs
	case parser.OperatorEqual:
		b = lhs == rhs
	case parser.OperatorNotEqual:
		b = lhs != rhs
	default:
		return 0, errorf(cmp.Pos(), "invalid relop: %s", cmp.Operator)
	}

	if b {
		return 1, nil
	}
	return 0, nil
}

func (i *Interpreter) executeExpression(expr parser.Expr) (float64, error) {
	switch expr := expr.(type) {
	case *parser.NumberLiteral:
		val, err := strconv.ParseFloat(expr.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, errorf(expr.Pos(), "invalid number: %s", expr.Text)
		}

		return val, nil
	case *parser.IdentifierExpr:
		return i.env.Get(expr.Pos(), expr.Name)
	case *parser.NegateExpr:
		val, err := i.executeExpression(expr.Expr)
		if err != nil {
			return 0, err
		}

		return -val, nil
	case *parser.ParenExpr:
		return i.executeExpression(expr.Expr)
	case *parser.BinaryExpr:
		lhs, err := i.executeExpression(expr.Left)
		if err != nil {
			return 0, err
		}

		rhs, err := i.executeExpression(expr.Right)
		if err != nil {
			return 0, err
		}

		return binaryOperate(expr.Pos(), lhs, rhs, expr.Operator)
	default:
		return 0, errorf(expr.Pos(), "unhandled expression type: %T", expr)
	}
}

// binaryOperate follows IEEE 754, so division by zero yields an infinity or
// NaN rather than an error.
func binaryOperate(pos int, lhs, rhs float64, op parser.Operator) (float64, error) {
	switch op {
	case parser.OperatorAddition:
		return lhs + rhs, nil
	case parser.OperatorSubtraction:
		return lhs - rhs, nil
	case parser.OperatorMultiplication:
		return lhs * rhs, nil
	case parser.OperatorDivision:
		return lhs / rhs, nil
	default:
		return 0, errorf(pos, "bogus operator: %s", op)
	}
}
