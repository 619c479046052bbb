package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	PROGRAM
	FUNCTION
	IDENT

	// Statements
	DECLARE_STMT
	ASSIGN_STMT
	RETURN_STMT
	EXPR_STMT
	IF_STMT

	// Expressions
	LITERAL_EXPR
	IDENT_EXPR
	BINARY_EXPR
	CALL_EXPR
	PAREN_EXPR
)

var nodeTypeNames = map[NodeType]string{
	ILLEGAL:      "ILLEGAL",
	PROGRAM:      "PROGRAM",
	FUNCTION:     "FUNCTION",
	IDENT:        "IDENT",
	DECLARE_STMT: "DECLARE_STMT",
	ASSIGN_STMT:  "ASSIGN_STMT",
	RETURN_STMT:  "RETURN_STMT",
	EXPR_STMT:    "EXPR_STMT",
	IF_STMT:      "IF_STMT",
	LITERAL_EXPR: "LITERAL_EXPR",
	IDENT_EXPR:   "IDENT_EXPR",
	BINARY_EXPR:  "BINARY_EXPR",
	CALL_EXPR:    "CALL_EXPR",
	PAREN_EXPR:   "PAREN_EXPR",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "ILLEGAL"
}

// BinaryOp is the operator of a BinaryExpr
type BinaryOp string

const (
	ADD BinaryOp = "+"
	SUB BinaryOp = "-"
	MUL BinaryOp = "*"
	DIV BinaryOp = "/"
	LT  BinaryOp = "<"
	EQ  BinaryOp = "=="
	GT  BinaryOp = ">"
)

// IsComparison reports whether the operator yields a boolean
func (op BinaryOp) IsComparison() bool {
	return op == LT || op == EQ || op == GT
}

// Precedence returns the binding strength of the operator; higher binds tighter
func (op BinaryOp) Precedence() int {
	switch op {
	case MUL, DIV:
		return 3
	case ADD, SUB:
		return 2
	case LT, EQ, GT:
		return 1
	default:
		return 0
	}
}

// ParseBinaryOp converts operator text into a BinaryOp
func ParseBinaryOp(text string) (BinaryOp, bool) {
	switch op := BinaryOp(text); op {
	case ADD, SUB, MUL, DIV, LT, EQ, GT:
		return op, true
	}
	return "", false
}
