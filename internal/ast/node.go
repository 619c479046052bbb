package ast

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position { return p.Pos }
func (*Program) NodeType() NodeType   { return PROGRAM }

func (f *Function) NodePos() Position { return f.Pos }
func (*Function) NodeType() NodeType   { return FUNCTION }

func (i *Ident) NodePos() Position { return i.Pos }
func (*Ident) NodeType() NodeType   { return IDENT }

func (d *DeclareStmt) NodePos() Position { return d.Pos }
func (*DeclareStmt) NodeType() NodeType   { return DECLARE_STMT }

func (a *AssignStmt) NodePos() Position { return a.Pos }
func (*AssignStmt) NodeType() NodeType   { return ASSIGN_STMT }

func (r *ReturnStmt) NodePos() Position { return r.Pos }
func (*ReturnStmt) NodeType() NodeType   { return RETURN_STMT }

func (e *ExprStmt) NodePos() Position { return e.Pos }
func (*ExprStmt) NodeType() NodeType   { return EXPR_STMT }

func (i *IfStmt) NodePos() Position { return i.Pos }
func (*IfStmt) NodeType() NodeType   { return IF_STMT }

func (l *LiteralExpr) NodePos() Position { return l.Pos }
func (*LiteralExpr) NodeType() NodeType   { return LITERAL_EXPR }

func (i *IdentExpr) NodePos() Position { return i.Pos }
func (*IdentExpr) NodeType() NodeType   { return IDENT_EXPR }

func (b *BinaryExpr) NodePos() Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType   { return BINARY_EXPR }

func (c *CallExpr) NodePos() Position { return c.Pos }
func (*CallExpr) NodeType() NodeType   { return CALL_EXPR }

func (p *ParenExpr) NodePos() Position { return p.Pos }
func (*ParenExpr) NodeType() NodeType   { return PAREN_EXPR }
