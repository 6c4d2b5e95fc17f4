package ast

// Program is the root node: exactly one function in this subset.
type Program struct {
	Function *Function
}

type Function struct {
	Name string
	Body []Stmt
}

type Stmt interface{ isStmt() }

type ReturnStmt struct{ Expr Expr }

func (*ReturnStmt) isStmt() {}

type Expr interface{ isExpr() }

type IntLit struct{ Value int64 }

func (*IntLit) isExpr() {}

type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

func (*UnaryExpr) isExpr() {}

type BinaryExpr struct {
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) isExpr() {}

type UnaryOp int

const (
	OpNeg UnaryOp = iota // -
	OpBitNot             // ~
	OpNot                // !
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	case OpNot:
		return "!"
	}
	return "?"
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLAnd
	OpLOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLAnd:
		return "&&"
	case OpLOr:
		return "||"
	}
	return "?"
}
