package core

import (
	"github.com/sarchlab/chronos/isa"
)

type instFunc func(op isa.Operand, state *State)

type instEmulator struct {
	instFuncs [isa.NumOpcodes]instFunc
}

func newInstEmulator() instEmulator {
	i := instEmulator{}

	i.instFuncs = [isa.NumOpcodes]instFunc{
		isa.ADV: i.runAdv,
		isa.BXL: i.runBxl,
		isa.BST: i.runBst,
		isa.JNZ: i.runJnz,
		isa.BXC: i.runBxc,
		isa.OUT: i.runOut,
		isa.BDV: i.runBdv,
		isa.CDV: i.runCdv,
	}

	return i
}

// RunInst executes one instruction and moves the PC. The state is left
// untouched when the opcode is unknown.
func (i instEmulator) RunInst(inst isa.Instruction, state *State) error {
	if !inst.Opcode.Valid() {
		return &ExecutionError{PC: state.PC, Instruction: inst, Err: ErrUnknownOpcode}
	}

	i.instFuncs[inst.Opcode](inst.Operand, state)
	state.Steps++

	return nil
}

// combo resolves an operand that may name a register. Values other than
// 4, 5 and 6 are taken literally.
func (i instEmulator) combo(op isa.Operand, state *State) uint64 {
	switch v := op.Literal(); v {
	case 4:
		return state.Registers.A
	case 5:
		return state.Registers.B
	case 6:
		return state.Registers.C
	default:
		return uint64(v)
	}
}

// shiftRight computes floor(v / 2^k). Shifts of 64 or more give 0.
func shiftRight(v, k uint64) uint64 {
	if k >= 64 {
		return 0
	}

	return v >> k
}

func (i instEmulator) dividedA(op isa.Operand, state *State) uint64 {
	return shiftRight(state.Registers.A, i.combo(op, state))
}

func (i instEmulator) runAdv(op isa.Operand, state *State) {
	state.Registers.A = i.dividedA(op, state)
	state.PC++
}

func (i instEmulator) runBxl(op isa.Operand, state *State) {
	state.Registers.B ^= uint64(op.Literal())
	state.PC++
}

func (i instEmulator) runBst(op isa.Operand, state *State) {
	state.Registers.B = i.combo(op, state) % 8
	state.PC++
}

// runJnz replaces the increment with the jump target when A is non-zero.
func (i instEmulator) runJnz(op isa.Operand, state *State) {
	if state.Registers.A == 0 {
		state.PC++
		return
	}

	state.PC = int(op.Literal() / 2)
}

func (i instEmulator) runBxc(_ isa.Operand, state *State) {
	state.Registers.B ^= state.Registers.C
	state.PC++
}

func (i instEmulator) runOut(op isa.Operand, state *State) {
	state.Output = append(state.Output, uint8(i.combo(op, state)%8))
	state.PC++
}

func (i instEmulator) runBdv(op isa.Operand, state *State) {
	state.Registers.B = i.dividedA(op, state)
	state.PC++
}

func (i instEmulator) runCdv(op isa.Operand, state *State) {
	state.Registers.C = i.dividedA(op, state)
	state.PC++
}
