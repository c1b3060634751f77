package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Operand is the 3-bit value that follows an opcode.
type Operand struct {
	literal uint8
}

// NewOperand wraps a raw operand byte.
func NewOperand(literal uint8) Operand {
	return Operand{literal: literal}
}

// Literal returns the operand as written in the program.
func (o Operand) Literal() uint8 {
	return o.literal
}

// ComboRegister returns the register name ("A", "B" or "C") a combo operand
// reads, or "" if the operand is a plain value.
func (o Operand) ComboRegister() string {
	switch o.literal {
	case 4:
		return "A"
	case 5:
		return "B"
	case 6:
		return "C"
	default:
		return ""
	}
}

// Instruction is an opcode together with its operand.
type Instruction struct {
	Opcode  Opcode
	Operand Operand
}

// NewInstruction creates an instruction from two raw bytes.
func NewInstruction(opcode, operand uint8) Instruction {
	return Instruction{
		Opcode:  Opcode(opcode),
		Operand: NewOperand(operand),
	}
}

// String disassembles the instruction, e.g. "adv 3", "out B", "bxc".
func (i Instruction) String() string {
	switch i.Opcode.OperandKind() {
	case KindIgnored:
		return i.Opcode.String()
	case KindCombo:
		if reg := i.Operand.ComboRegister(); reg != "" {
			return i.Opcode.String() + " " + reg
		}
	}

	return fmt.Sprintf("%s %d", i.Opcode, i.Operand.Literal())
}

// Parse assembles a single instruction from its disassembled form. It
// accepts everything String produces.
func Parse(text string) (Instruction, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return Instruction{}, fmt.Errorf("malformed instruction %q", text)
	}

	op, ok := Lookup(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("unknown mnemonic %q", fields[0])
	}

	if len(fields) == 1 {
		if op.OperandKind() != KindIgnored {
			return Instruction{}, fmt.Errorf("%s expects an operand", op)
		}

		return Instruction{Opcode: op}, nil
	}

	operand, err := parseOperand(op, fields[1])
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{Opcode: op, Operand: operand}, nil
}

func parseOperand(op Opcode, text string) (Operand, error) {
	if op.OperandKind() == KindCombo {
		switch strings.ToUpper(text) {
		case "A":
			return NewOperand(4), nil
		case "B":
			return NewOperand(5), nil
		case "C":
			return NewOperand(6), nil
		}
	}

	v, err := strconv.ParseUint(text, 10, 8)
	if err != nil || v > 7 {
		return Operand{}, fmt.Errorf("invalid operand %q for %s", text, op)
	}

	return NewOperand(uint8(v)), nil
}
