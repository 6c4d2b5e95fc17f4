package x86_64

// stackAlignment is the frame alignment the ABI requires at function entry.
const stackAlignment = 16

// slotSize is the width of every local: the subset is 32-bit ints only.
const slotSize = 4

// AllocateStackSlots rewrites every Pseudo operand to a fixed Stack slot
// and prepends the AllocateStack reservation. Slots are handed out in first-
// appearance order at offsets -4, -8, ... from the frame base; the total is
// rounded up to the required alignment. After this pass no Pseudo operand
// remains anywhere in the function.
func AllocateStackSlots(p *Program) *Program {
	a := &slotAlloc{offsets: map[int]int{}}
	body := make([]Instruction, 0, len(p.Function.Body)+1)
	for _, ins := range p.Function.Body {
		body = append(body, a.rewrite(ins))
	}
	if frame := align(a.used, stackAlignment); frame > 0 {
		body = append([]Instruction{AllocateStack{Bytes: frame}}, body...)
	}
	return &Program{Function: &Function{Name: p.Function.Name, Body: body}}
}

type slotAlloc struct {
	offsets map[int]int // pseudo id -> negative frame offset
	used    int         // bytes handed out so far
}

func (a *slotAlloc) rewrite(ins Instruction) Instruction {
	switch ins := ins.(type) {
	case Mov:
		return Mov{Src: a.operand(ins.Src), Dst: a.operand(ins.Dst)}
	case UnaryIns:
		return UnaryIns{Op: ins.Op, Dst: a.operand(ins.Dst)}
	case BinaryIns:
		return BinaryIns{Op: ins.Op, Src: a.operand(ins.Src), Dst: a.operand(ins.Dst)}
	case Cmp:
		return Cmp{Src: a.operand(ins.Src), Dst: a.operand(ins.Dst)}
	case Idiv:
		return Idiv{Src: a.operand(ins.Src)}
	case SetCC:
		return SetCC{Cond: ins.Cond, Dst: a.operand(ins.Dst)}
	default:
		// Cdq, Jmp, JmpCC, LabelIns, AllocateStack, Ret carry no
		// pseudo-capable operands.
		return ins
	}
}

func (a *slotAlloc) operand(o Operand) Operand {
	ps, ok := o.(Pseudo)
	if !ok {
		return o
	}
	off, ok := a.offsets[ps.ID]
	if !ok {
		a.used += slotSize
		off = -a.used
		a.offsets[ps.ID] = off
	}
	return Stack{Offset: off}
}

func align(n, a int) int { return (n + (a - 1)) &^ (a - 1) }
