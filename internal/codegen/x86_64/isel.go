package x86_64

import (
	"fmt"

	"github.com/smallcc/smallcc/internal/ir"
)

// Select maps each IR instruction onto abstract assembly with Pseudo
// operands. Operand placement is not yet legal here; stack allocation and
// fixups run afterwards.
func Select(p *ir.Program) *Program {
	fn := &Function{Name: p.Function.Name}
	for _, ins := range p.Function.Body {
		fn.Body = append(fn.Body, selectInstr(ins)...)
	}
	return &Program{Function: fn}
}

func selectInstr(ins ir.Instruction) []Instruction {
	switch ins := ins.(type) {
	case ir.Copy:
		return []Instruction{Mov{Src: operand(ins.Src), Dst: operand(ins.Dst)}}
	case ir.Unary:
		return selectUnary(ins)
	case ir.Binary:
		return selectBinary(ins)
	case ir.Jump:
		return []Instruction{Jmp{Target: ins.Target}}
	case ir.JumpIfZero:
		return []Instruction{
			Cmp{Src: Imm{0}, Dst: operand(ins.Cond)},
			JmpCC{Cond: E, Target: ins.Target},
		}
	case ir.JumpIfNotZero:
		return []Instruction{
			Cmp{Src: Imm{0}, Dst: operand(ins.Cond)},
			JmpCC{Cond: NE, Target: ins.Target},
		}
	case ir.Label:
		return []Instruction{LabelIns{Name: ins.Name}}
	case ir.Return:
		return []Instruction{
			Mov{Src: operand(ins.Value), Dst: Reg{AX}},
			Ret{},
		}
	}
	panic(fmt.Sprintf("x86_64: unknown IR instruction %T", ins))
}

func selectUnary(ins ir.Unary) []Instruction {
	dst := operand(ins.Dst)
	switch ins.Op {
	case ir.Negate:
		return []Instruction{
			Mov{Src: operand(ins.Src), Dst: dst},
			UnaryIns{Op: Neg, Dst: dst},
		}
	case ir.Complement:
		return []Instruction{
			Mov{Src: operand(ins.Src), Dst: dst},
			UnaryIns{Op: Not, Dst: dst},
		}
	case ir.Not:
		// Logical not is a comparison against zero producing 0 or 1.
		return []Instruction{
			Cmp{Src: Imm{0}, Dst: operand(ins.Src)},
			Mov{Src: Imm{0}, Dst: dst},
			SetCC{Cond: E, Dst: dst},
		}
	}
	panic(fmt.Sprintf("x86_64: unknown unary op %v", ins.Op))
}

func selectBinary(ins ir.Binary) []Instruction {
	dst := operand(ins.Dst)
	switch ins.Op {
	case ir.Add, ir.Subtract, ir.Multiply:
		op := map[ir.BinaryOp]BinaryOp{
			ir.Add:      Add,
			ir.Subtract: Sub,
			ir.Multiply: Mult,
		}[ins.Op]
		return []Instruction{
			Mov{Src: operand(ins.Src1), Dst: dst},
			BinaryIns{Op: op, Src: operand(ins.Src2), Dst: dst},
		}
	case ir.Divide, ir.Remainder:
		// idiv divides %edx:%eax; the quotient lands in %eax and the
		// remainder in %edx.
		res := AX
		if ins.Op == ir.Remainder {
			res = DX
		}
		return []Instruction{
			Mov{Src: operand(ins.Src1), Dst: Reg{AX}},
			Cdq{},
			Idiv{Src: operand(ins.Src2)},
			Mov{Src: Reg{res}, Dst: dst},
		}
	case ir.Equal, ir.NotEqual, ir.LessThan, ir.LessOrEqual,
		ir.GreaterThan, ir.GreaterOrEqual:
		cc := map[ir.BinaryOp]CondCode{
			ir.Equal:          E,
			ir.NotEqual:       NE,
			ir.LessThan:       L,
			ir.LessOrEqual:    LE,
			ir.GreaterThan:    G,
			ir.GreaterOrEqual: GE,
		}[ins.Op]
		return []Instruction{
			Cmp{Src: operand(ins.Src2), Dst: operand(ins.Src1)},
			Mov{Src: Imm{0}, Dst: dst},
			SetCC{Cond: cc, Dst: dst},
		}
	}
	panic(fmt.Sprintf("x86_64: unknown binary op %v", ins.Op))
}

func operand(v ir.Value) Operand {
	switch v := v.(type) {
	case ir.Constant:
		return Imm{Value: v.Value}
	case ir.Var:
		return Pseudo{ID: v.ID}
	}
	panic(fmt.Sprintf("x86_64: unknown IR value %T", v))
}
