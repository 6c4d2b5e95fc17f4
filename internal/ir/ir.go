// Package ir defines the flat three-address intermediate representation the
// compiler lowers the AST into: a linear instruction list over constants and
// numbered temporaries, with explicit jumps and labels for control flow.
package ir

import (
	"fmt"
	"io"
)

type Program struct {
	Function *Function
}

type Function struct {
	Name string
	Body []Instruction
}

type Instruction interface{ isInstr() }

type Copy struct{ Src, Dst Value }

type Unary struct {
	Op  UnaryOp
	Src Value
	Dst Value
}

type Binary struct {
	Op         BinaryOp
	Src1, Src2 Value
	Dst        Value
}

type Jump struct{ Target string }

type JumpIfZero struct {
	Cond   Value
	Target string
}

type JumpIfNotZero struct {
	Cond   Value
	Target string
}

type Label struct{ Name string }

type Return struct{ Value Value }

func (Copy) isInstr()          {}
func (Unary) isInstr()         {}
func (Binary) isInstr()        {}
func (Jump) isInstr()          {}
func (JumpIfZero) isInstr()    {}
func (JumpIfNotZero) isInstr() {}
func (Label) isInstr()         {}
func (Return) isInstr()        {}

type Value interface{ isValue() }

type Constant struct{ Value int64 }

// Var is a temporary introduced during lowering, identified by a number
// unique within one generation run.
type Var struct{ ID int }

func (Constant) isValue() {}
func (Var) isValue()      {}

func (v Constant) String() string { return fmt.Sprintf("%d", v.Value) }
func (v Var) String() string      { return fmt.Sprintf("tmp.%d", v.ID) }

type UnaryOp int

const (
	Negate UnaryOp = iota
	Complement
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "neg"
	case Complement:
		return "not"
	case Not:
		return "lnot"
	}
	return "?"
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Remainder
	Equal
	NotEqual
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "sub"
	case Multiply:
		return "mul"
	case Divide:
		return "div"
	case Remainder:
		return "rem"
	case Equal:
		return "eq"
	case NotEqual:
		return "ne"
	case LessThan:
		return "lt"
	case LessOrEqual:
		return "le"
	case GreaterThan:
		return "gt"
	case GreaterOrEqual:
		return "ge"
	}
	return "?"
}

// Fprint writes a readable listing of the program, one instruction per line.
func Fprint(w io.Writer, p *Program) {
	fmt.Fprintf(w, "function %s:\n", p.Function.Name)
	for _, ins := range p.Function.Body {
		switch ins := ins.(type) {
		case Copy:
			fmt.Fprintf(w, "  %v = %v\n", ins.Dst, ins.Src)
		case Unary:
			fmt.Fprintf(w, "  %v = %v %v\n", ins.Dst, ins.Op, ins.Src)
		case Binary:
			fmt.Fprintf(w, "  %v = %v %v, %v\n", ins.Dst, ins.Op, ins.Src1, ins.Src2)
		case Jump:
			fmt.Fprintf(w, "  jump %s\n", ins.Target)
		case JumpIfZero:
			fmt.Fprintf(w, "  jumpz %v, %s\n", ins.Cond, ins.Target)
		case JumpIfNotZero:
			fmt.Fprintf(w, "  jumpnz %v, %s\n", ins.Cond, ins.Target)
		case Label:
			fmt.Fprintf(w, "%s:\n", ins.Name)
		case Return:
			fmt.Fprintf(w, "  return %v\n", ins.Value)
		}
	}
}
