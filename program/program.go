// Package program loads chronospatial programs and their initial register
// values.
package program

import (
	"github.com/sarchlab/chronos/isa"
)

// Registers holds the values of registers A, B and C.
type Registers struct {
	A, B, C uint64
}

// NewRegisters is shorthand for Registers{A: a, B: b, C: c}.
func NewRegisters(a, b, c uint64) Registers {
	return Registers{A: a, B: b, C: c}
}

// Program is an ordered list of instructions. The instruction pointer of the
// machine indexes this list, not the raw byte stream.
type Program struct {
	Instructions []isa.Instruction
}

// FromRaw builds a program from its flat (opcode, operand, ...) encoding.
func FromRaw(raw []uint8) (Program, error) {
	if len(raw)%2 != 0 {
		return Program{}, ErrOddLength
	}

	insts := make([]isa.Instruction, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		insts = append(insts, isa.NewInstruction(raw[i], raw[i+1]))
	}

	return Program{Instructions: insts}, nil
}

// MustFromRaw is like FromRaw but panics on odd-length input. It is meant for
// programs written as literals.
func MustFromRaw(raw ...uint8) Program {
	p, err := FromRaw(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.Instructions)
}

// Raw returns the flat byte encoding of the program.
func (p Program) Raw() []uint8 {
	raw := make([]uint8, 0, 2*len(p.Instructions))
	for _, inst := range p.Instructions {
		raw = append(raw, uint8(inst.Opcode), inst.Operand.Literal())
	}

	return raw
}
