package ast

type Expr interface {
	Node
	isExpr()
}

func (*LiteralExpr) isExpr() {}

func (*IdentExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*ParenExpr) isExpr() {}
