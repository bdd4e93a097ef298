package parser

// Visitor is called for each node during Walk. Returning false skips the
// node's children.
type Visitor func(node Node) bool

// Walk traverses an AST depth first in source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		Walk(n.Block, v)
	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, v)
		}
	case *AssignStatement:
		Walk(n.Expr, v)
	case *ReadStatement:
	case *WriteStatement:
		Walk(n.Expr, v)
	case *IfStatement:
		Walk(n.Condition, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}
	case *WhileStatement:
		Walk(n.Condition, v)
		Walk(n.Body, v)
	case *Comparison:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case *BinaryExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case *NegateExpr:
		Walk(n.Expr, v)
	case *ParenExpr:
		Walk(n.Expr, v)
	case *NumberLiteral, *IdentifierExpr:
	}
}

// Variables returns the names of every variable the program assigns, reads
// or references, in order of first appearance.
func Variables(node Node) []string {
	var names []string
	seen := make(map[string]struct{})

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	Walk(node, func(node Node) bool {
		switch n := node.(type) {
		case *AssignStatement:
			add(n.Name)
		case *ReadStatement:
			add(n.Name)
		case *IdentifierExpr:
			add(n.Name)
		}
		return true
	})

	return names
}
