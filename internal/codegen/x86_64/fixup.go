package x86_64

// FixUp rewrites instructions whose operand placement the instruction set
// rejects. R10 routes sources, R11 routes destinations, so a single
// instruction needing both rewrites never collides with itself.
func FixUp(p *Program) *Program {
	var body []Instruction
	for _, ins := range p.Function.Body {
		body = append(body, fixInstr(ins)...)
	}
	return &Program{Function: &Function{Name: p.Function.Name, Body: body}}
}

func fixInstr(ins Instruction) []Instruction {
	switch ins := ins.(type) {
	case Mov:
		// mov cannot take two memory operands.
		if isMem(ins.Src) && isMem(ins.Dst) {
			return []Instruction{
				Mov{Src: ins.Src, Dst: Reg{R10}},
				Mov{Src: Reg{R10}, Dst: ins.Dst},
			}
		}
	case BinaryIns:
		switch ins.Op {
		case Add, Sub:
			if isMem(ins.Src) && isMem(ins.Dst) {
				return []Instruction{
					Mov{Src: ins.Src, Dst: Reg{R10}},
					BinaryIns{Op: ins.Op, Src: Reg{R10}, Dst: ins.Dst},
				}
			}
		case Mult:
			// imul cannot write to memory.
			if isMem(ins.Dst) {
				return []Instruction{
					Mov{Src: ins.Dst, Dst: Reg{R11}},
					BinaryIns{Op: Mult, Src: ins.Src, Dst: Reg{R11}},
					Mov{Src: Reg{R11}, Dst: ins.Dst},
				}
			}
		}
	case Idiv:
		// idiv has no immediate form.
		if _, ok := ins.Src.(Imm); ok {
			return []Instruction{
				Mov{Src: ins.Src, Dst: Reg{R10}},
				Idiv{Src: Reg{R10}},
			}
		}
	case Cmp:
		if isMem(ins.Src) && isMem(ins.Dst) {
			return []Instruction{
				Mov{Src: ins.Src, Dst: Reg{R10}},
				Cmp{Src: Reg{R10}, Dst: ins.Dst},
			}
		}
		// cmp cannot have an immediate second operand.
		if _, ok := ins.Dst.(Imm); ok {
			return []Instruction{
				Mov{Src: ins.Dst, Dst: Reg{R11}},
				Cmp{Src: ins.Src, Dst: Reg{R11}},
			}
		}
	}
	return []Instruction{ins}
}
