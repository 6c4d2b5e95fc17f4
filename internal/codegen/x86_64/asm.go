// Package x86_64 turns the linear IR into AT&T-syntax assembly for the
// System V AMD64 ABI. It runs three passes over an abstract instruction
// list: instruction selection (isel.go), stack-slot allocation for pseudo
// operands (stack.go), and operand legalization (fixup.go), before
// serializing the result as text (emit.go).
package x86_64

import "fmt"

// EmitError marks an operand combination that survived to emission even
// though the instruction set cannot encode it. It indicates a defect in
// allocation or selection, not bad user input.
type EmitError struct {
	Detail string
}

func (e *EmitError) Error() string {
	return "internal codegen fault: " + e.Detail
}

func emitErrorf(format string, args ...any) error {
	return &EmitError{Detail: fmt.Sprintf(format, args...)}
}

type Program struct {
	Function *Function
}

type Function struct {
	Name string
	Body []Instruction
}

type Instruction interface{ isInstr() }

type Mov struct{ Src, Dst Operand }

type UnaryIns struct {
	Op  UnaryOp
	Dst Operand
}

type BinaryIns struct {
	Op       BinaryOp
	Src, Dst Operand
}

type Cmp struct{ Src, Dst Operand }

type Idiv struct{ Src Operand }

// Cdq sign-extends %eax into %edx ahead of a division.
type Cdq struct{}

type Jmp struct{ Target string }

type JmpCC struct {
	Cond   CondCode
	Target string
}

type SetCC struct {
	Cond CondCode
	Dst  Operand
}

type LabelIns struct{ Name string }

// AllocateStack reserves the function's frame at entry.
type AllocateStack struct{ Bytes int }

// Ret expands to the full epilogue at emission time.
type Ret struct{}

func (Mov) isInstr()           {}
func (UnaryIns) isInstr()      {}
func (BinaryIns) isInstr()     {}
func (Cmp) isInstr()           {}
func (Idiv) isInstr()          {}
func (Cdq) isInstr()           {}
func (Jmp) isInstr()           {}
func (JmpCC) isInstr()         {}
func (SetCC) isInstr()         {}
func (LabelIns) isInstr()      {}
func (AllocateStack) isInstr() {}
func (Ret) isInstr()           {}

type Operand interface{ isOperand() }

type Imm struct{ Value int64 }

type Reg struct{ R Register }

// Pseudo stands in for an IR temporary until stack allocation rewrites it.
type Pseudo struct{ ID int }

// Stack is a 4-byte slot at a negative offset from the frame base.
type Stack struct{ Offset int }

func (Imm) isOperand()    {}
func (Reg) isOperand()    {}
func (Pseudo) isOperand() {}
func (Stack) isOperand()  {}

// isMem reports whether the operand is a memory location after allocation.
func isMem(o Operand) bool {
	_, ok := o.(Stack)
	return ok
}

type Register int

const (
	AX Register = iota
	DX
	R10
	R11
)

// name4 is the 32-bit register name, name1 the low-byte name used by setcc.
func (r Register) name4() string {
	switch r {
	case AX:
		return "%eax"
	case DX:
		return "%edx"
	case R10:
		return "%r10d"
	case R11:
		return "%r11d"
	}
	return "%bad"
}

func (r Register) name1() string {
	switch r {
	case AX:
		return "%al"
	case DX:
		return "%dl"
	case R10:
		return "%r10b"
	case R11:
		return "%r11b"
	}
	return "%bad"
}

type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "negl"
	case Not:
		return "notl"
	}
	return "bad"
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mult
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "addl"
	case Sub:
		return "subl"
	case Mult:
		return "imull"
	}
	return "bad"
}

type CondCode int

const (
	E CondCode = iota
	NE
	L
	LE
	G
	GE
)

func (cc CondCode) String() string {
	switch cc {
	case E:
		return "e"
	case NE:
		return "ne"
	case L:
		return "l"
	case LE:
		return "le"
	case G:
		return "g"
	case GE:
		return "ge"
	}
	return "bad"
}
