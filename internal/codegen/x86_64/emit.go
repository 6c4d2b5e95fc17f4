package x86_64

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/smallcc/smallcc/internal/ir"
)

// Target selects the assembler dialect details that differ between the
// supported platforms: symbol prefixes, local-label prefixes, and the
// GNU-stack note.
type Target int

const (
	TargetLinux Target = iota
	TargetDarwin
)

func (t Target) String() string {
	switch t {
	case TargetLinux:
		return "linux"
	case TargetDarwin:
		return "darwin"
	}
	return "unknown"
}

// ParseTarget maps a target name to a Target.
func ParseTarget(name string) (Target, error) {
	switch name {
	case "linux":
		return TargetLinux, nil
	case "darwin":
		return TargetDarwin, nil
	}
	return 0, fmt.Errorf("unsupported target %q (want linux or darwin)", name)
}

// DefaultTarget picks the host platform's target, falling back to Linux.
func DefaultTarget() Target {
	if runtime.GOOS == "darwin" {
		return TargetDarwin
	}
	return TargetLinux
}

func (t Target) symbol(name string) string {
	if t == TargetDarwin {
		return "_" + name
	}
	return name
}

// Local labels get an assembler-local prefix so they never clash with
// linker-visible symbols.
func (t Target) label(name string) string {
	if t == TargetDarwin {
		return "L" + name
	}
	return ".L" + name
}

// Generate runs the whole backend: selection, stack allocation, fixups,
// then serialization for the given target.
func Generate(p *ir.Program, target Target) (string, error) {
	asm := FixUp(AllocateStackSlots(Select(p)))
	return Emit(asm, target)
}

// Emit serializes a fully-allocated, fixed-up program as AT&T assembly.
func Emit(p *Program, target Target) (string, error) {
	var b strings.Builder
	fn := p.Function
	sym := target.symbol(fn.Name)
	fmt.Fprintf(&b, "\t.globl\t%s\n", sym)
	fmt.Fprintf(&b, "%s:\n", sym)
	b.WriteString("\tpushq\t%rbp\n")
	b.WriteString("\tmovq\t%rsp, %rbp\n")
	for _, ins := range fn.Body {
		if err := emitInstr(&b, ins, target); err != nil {
			return "", err
		}
	}
	if target == TargetLinux {
		b.WriteString("\t.section\t.note.GNU-stack,\"\",@progbits\n")
	}
	return b.String(), nil
}

func emitInstr(b *strings.Builder, ins Instruction, target Target) error {
	switch ins := ins.(type) {
	case Mov:
		src, err := fmtOperand(ins.Src)
		if err != nil {
			return err
		}
		dst, err := fmtDst(ins.Dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\tmovl\t%s, %s\n", src, dst)
	case UnaryIns:
		dst, err := fmtDst(ins.Dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\t%v\t%s\n", ins.Op, dst)
	case BinaryIns:
		src, err := fmtOperand(ins.Src)
		if err != nil {
			return err
		}
		dst, err := fmtDst(ins.Dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\t%v\t%s, %s\n", ins.Op, src, dst)
	case Cmp:
		src, err := fmtOperand(ins.Src)
		if err != nil {
			return err
		}
		dst, err := fmtDst(ins.Dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\tcmpl\t%s, %s\n", src, dst)
	case Idiv:
		src, err := fmtDst(ins.Src) // no immediate form
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\tidivl\t%s\n", src)
	case Cdq:
		b.WriteString("\tcdq\n")
	case Jmp:
		fmt.Fprintf(b, "\tjmp\t%s\n", target.label(ins.Target))
	case JmpCC:
		fmt.Fprintf(b, "\tj%v\t%s\n", ins.Cond, target.label(ins.Target))
	case SetCC:
		dst, err := fmtByteOperand(ins.Dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\tset%v\t%s\n", ins.Cond, dst)
	case LabelIns:
		fmt.Fprintf(b, "%s:\n", target.label(ins.Name))
	case AllocateStack:
		fmt.Fprintf(b, "\tsubq\t$%d, %%rsp\n", ins.Bytes)
	case Ret:
		b.WriteString("\tmovq\t%rbp, %rsp\n")
		b.WriteString("\tpopq\t%rbp\n")
		b.WriteString("\tret\n")
	default:
		return emitErrorf("unknown instruction %T", ins)
	}
	return nil
}

func fmtOperand(o Operand) (string, error) {
	switch o := o.(type) {
	case Imm:
		return fmt.Sprintf("$%d", o.Value), nil
	case Reg:
		return o.R.name4(), nil
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset), nil
	case Pseudo:
		return "", emitErrorf("pseudo operand tmp.%d survived allocation", o.ID)
	}
	return "", emitErrorf("unknown operand %T", o)
}

// fmtDst rejects immediates: no instruction in the model writes to one.
func fmtDst(o Operand) (string, error) {
	if imm, ok := o.(Imm); ok {
		return "", emitErrorf("immediate $%d in destination position", imm.Value)
	}
	return fmtOperand(o)
}

// fmtByteOperand renders the one-byte form setcc needs: low-byte register
// names, stack slots unchanged (the store is a single byte either way).
func fmtByteOperand(o Operand) (string, error) {
	if r, ok := o.(Reg); ok {
		return r.R.name1(), nil
	}
	return fmtDst(o)
}
