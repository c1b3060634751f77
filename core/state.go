package core

import "github.com/sarchlab/chronos/program"

// State is everything a running program can observe or change. A State
// belongs to exactly one run.
type State struct {
	Registers program.Registers

	// PC indexes the instruction list, not the raw bytes.
	PC int

	// Output collects the values emitted by OUT, in order.
	Output []uint8

	// Steps counts executed instructions.
	Steps uint64
}

// NewState creates the state a run starts from.
func NewState(regs program.Registers) *State {
	return &State{
		Registers: regs,
		Output:    make([]uint8, 0, 16),
	}
}

// Halted reports whether the PC has left the program.
func (s *State) Halted(prog program.Program) bool {
	return s.PC < 0 || s.PC >= prog.Len()
}
