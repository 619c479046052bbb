package ast

type Stmt interface {
	Node
	isStmt()
}

func (*DeclareStmt) isStmt() {}
func (*AssignStmt) isStmt()  {}
func (*ReturnStmt) isStmt()  {}
func (*ExprStmt) isStmt()    {}
func (*IfStmt) isStmt()      {}
