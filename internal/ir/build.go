package ir

import (
	"fmt"

	"github.com/smallcc/smallcc/internal/ast"
)

// Generate lowers a parsed program into the linear IR. It assumes a
// well-formed AST and cannot fail; parse errors are caught upstream.
func Generate(prog *ast.Program) *Program {
	g := &generator{}
	fn := &Function{Name: prog.Function.Name}
	for _, s := range prog.Function.Body {
		switch s := s.(type) {
		case *ast.ReturnStmt:
			v := g.lowerExpr(s.Expr)
			g.emit(Return{Value: v})
		}
	}
	fn.Body = g.body
	return &Program{Function: fn}
}

// generator holds the per-run temporary and label counters. Both only ever
// increase, so every temporary and label in one compilation unit is unique.
type generator struct {
	body      []Instruction
	nextTemp  int
	nextLabel int
}

func (g *generator) emit(ins Instruction) { g.body = append(g.body, ins) }

func (g *generator) newTemp() Var {
	v := Var{ID: g.nextTemp}
	g.nextTemp++
	return v
}

func (g *generator) newLabel(kind string) string {
	name := fmt.Sprintf("%s.%d", kind, g.nextLabel)
	g.nextLabel++
	return name
}

func (g *generator) lowerExpr(e ast.Expr) Value {
	switch e := e.(type) {
	case *ast.IntLit:
		// Literals lower in place; no temporary.
		return Constant{Value: e.Value}
	case *ast.UnaryExpr:
		src := g.lowerExpr(e.X)
		dst := g.newTemp()
		g.emit(Unary{Op: unaryOp(e.Op), Src: src, Dst: dst})
		return dst
	case *ast.BinaryExpr:
		switch e.Op {
		case ast.OpLAnd:
			return g.lowerAnd(e)
		case ast.OpLOr:
			return g.lowerOr(e)
		}
		// Left before right, preserving evaluation order.
		src1 := g.lowerExpr(e.Left)
		src2 := g.lowerExpr(e.Right)
		dst := g.newTemp()
		g.emit(Binary{Op: binaryOp(e.Op), Src1: src1, Src2: src2, Dst: dst})
		return dst
	}
	panic(fmt.Sprintf("ir: unknown expression %T", e))
}

// lowerAnd emits the short-circuit form of a && b: if a is zero the right
// operand is never evaluated and the result is 0, otherwise the result is
// whether b is nonzero.
func (g *generator) lowerAnd(e *ast.BinaryExpr) Value {
	falseLabel := g.newLabel("and_false")
	endLabel := g.newLabel("and_end")
	result := g.newTemp()

	v1 := g.lowerExpr(e.Left)
	g.emit(JumpIfZero{Cond: v1, Target: falseLabel})
	v2 := g.lowerExpr(e.Right)
	g.emit(JumpIfZero{Cond: v2, Target: falseLabel})
	g.emit(Copy{Src: Constant{Value: 1}, Dst: result})
	g.emit(Jump{Target: endLabel})
	g.emit(Label{Name: falseLabel})
	g.emit(Copy{Src: Constant{Value: 0}, Dst: result})
	g.emit(Label{Name: endLabel})
	return result
}

// lowerOr is the mirror image: a truthy left operand short-circuits to 1.
func (g *generator) lowerOr(e *ast.BinaryExpr) Value {
	trueLabel := g.newLabel("or_true")
	endLabel := g.newLabel("or_end")
	result := g.newTemp()

	v1 := g.lowerExpr(e.Left)
	g.emit(JumpIfNotZero{Cond: v1, Target: trueLabel})
	v2 := g.lowerExpr(e.Right)
	g.emit(JumpIfNotZero{Cond: v2, Target: trueLabel})
	g.emit(Copy{Src: Constant{Value: 0}, Dst: result})
	g.emit(Jump{Target: endLabel})
	g.emit(Label{Name: trueLabel})
	g.emit(Copy{Src: Constant{Value: 1}, Dst: result})
	g.emit(Label{Name: endLabel})
	return result
}

func unaryOp(op ast.UnaryOp) UnaryOp {
	switch op {
	case ast.OpNeg:
		return Negate
	case ast.OpBitNot:
		return Complement
	case ast.OpNot:
		return Not
	}
	panic(fmt.Sprintf("ir: unknown unary operator %v", op))
}

func binaryOp(op ast.BinaryOp) BinaryOp {
	switch op {
	case ast.OpAdd:
		return Add
	case ast.OpSub:
		return Subtract
	case ast.OpMul:
		return Multiply
	case ast.OpDiv:
		return Divide
	case ast.OpRem:
		return Remainder
	case ast.OpEq:
		return Equal
	case ast.OpNe:
		return NotEqual
	case ast.OpLt:
		return LessThan
	case ast.OpLe:
		return LessOrEqual
	case ast.OpGt:
		return GreaterThan
	case ast.OpGe:
		return GreaterOrEqual
	}
	panic(fmt.Sprintf("ir: unknown binary operator %v", op))
}
