package ast

// Inspect traverses the tree rooted at node in depth-first order, calling fn
// for every node. If fn returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Inspect(f, fn)
		}
	case *Function:
		Inspect(&n.Name, fn)
		for i := range n.Params {
			Inspect(&n.Params[i], fn)
		}
		inspectBody(n.Body, fn)
	case *DeclareStmt:
		Inspect(&n.Name, fn)
	case *AssignStmt:
		Inspect(&n.Name, fn)
		Inspect(n.Value, fn)
	case *ReturnStmt:
		Inspect(n.Value, fn)
	case *ExprStmt:
		Inspect(n.Expr, fn)
	case *IfStmt:
		Inspect(n.Cond, fn)
		inspectBody(n.Body, fn)
	case *BinaryExpr:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *CallExpr:
		Inspect(&n.Callee, fn)
		for _, arg := range n.Args {
			Inspect(arg, fn)
		}
	case *ParenExpr:
		Inspect(n.Expr, fn)
	}
}

func inspectBody(body []Stmt, fn func(Node) bool) {
	for _, stmt := range body {
		Inspect(stmt, fn)
	}
}

// Unparen strips any number of enclosing parentheses from e
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}
