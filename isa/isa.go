// Package isa defines the instruction set of the 3-bit chronospatial
// machine: eight opcodes, each followed by one 3-bit operand.
package isa

import (
	"fmt"
	"strings"
)

// Opcode selects the behavior of an instruction.
type Opcode uint8

const (
	ADV Opcode = iota // A <- A >> combo
	BXL               // B <- B ^ literal
	BST               // B <- combo % 8
	JNZ               // jump to literal/2 if A != 0
	BXC               // B <- B ^ C
	OUT               // emit combo % 8
	BDV               // B <- A >> combo
	CDV               // C <- A >> combo
)

// NumOpcodes is the number of opcodes the machine understands.
const NumOpcodes = 8

// OperandKind tells how an opcode interprets its operand.
type OperandKind int

const (
	// KindLiteral operands are used as is.
	KindLiteral OperandKind = iota
	// KindCombo operands 4, 5 and 6 read registers A, B and C.
	KindCombo
	// KindIgnored operands are read but have no effect.
	KindIgnored
)

func (k OperandKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindCombo:
		return "combo"
	case KindIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("OperandKind(%d)", int(k))
	}
}

// ISA is a named table of opcodes.
type ISA struct {
	// name of the ISA.
	name string

	mnemonics    [NumOpcodes]string
	operandKinds [NumOpcodes]OperandKind
	byMnemonic   map[string]Opcode
}

// newISA creates an empty ISA.
func newISA(name string) *ISA {
	return &ISA{
		name:       name,
		byMnemonic: make(map[string]Opcode),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.name
}

// register adds an opcode to the ISA.
func (isa *ISA) register(op Opcode, mnemonic string, kind OperandKind) {
	isa.mnemonics[op] = mnemonic
	isa.operandKinds[op] = kind
	isa.byMnemonic[mnemonic] = op
}

// Default is the only instruction set the machine runs.
var Default = newDefaultISA()

func newDefaultISA() *ISA {
	isa := newISA("Chronospatial 3-bit ISA")

	isa.register(ADV, "adv", KindCombo)
	isa.register(BXL, "bxl", KindLiteral)
	isa.register(BST, "bst", KindCombo)
	isa.register(JNZ, "jnz", KindLiteral)
	isa.register(BXC, "bxc", KindIgnored)
	isa.register(OUT, "out", KindCombo)
	isa.register(BDV, "bdv", KindCombo)
	isa.register(CDV, "cdv", KindCombo)

	return isa
}

// Valid reports whether the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return op < NumOpcodes
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("op%d", uint8(op))
	}

	return Default.mnemonics[op]
}

// OperandKind returns how the opcode reads its operand. Invalid opcodes
// report KindLiteral.
func (op Opcode) OperandKind() OperandKind {
	if !op.Valid() {
		return KindLiteral
	}

	return Default.operandKinds[op]
}

// Lookup resolves a mnemonic such as "adv" to its opcode. Lookup is case
// insensitive.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := Default.byMnemonic[strings.ToLower(strings.TrimSpace(mnemonic))]
	return op, ok
}
