package core

import (
	"github.com/sarchlab/chronos/program"
)

// Machine runs programs. A Machine holds no run state and can be shared
// between goroutines; every run gets its own State.
type Machine struct {
	emu      instEmulator
	maxSteps uint64
	trace    bool
}

// MachineBuilder configures a Machine.
type MachineBuilder struct {
	maxSteps uint64
	trace    bool
}

// WithMaxSteps bounds the number of instructions a single run may execute.
// Zero means no bound.
func (b MachineBuilder) WithMaxSteps(n uint64) MachineBuilder {
	b.maxSteps = n
	return b
}

// WithTrace logs every executed instruction at LevelTrace.
func (b MachineBuilder) WithTrace(trace bool) MachineBuilder {
	b.trace = trace
	return b
}

// Build creates the machine.
func (b MachineBuilder) Build() *Machine {
	return &Machine{
		emu:      newInstEmulator(),
		maxSteps: b.maxSteps,
		trace:    b.trace,
	}
}

// Result describes a run started by RunMatching.
type Result struct {
	Output []uint8
	Steps  uint64

	// Matched is set when Output equals the wanted sequence exactly.
	Matched bool

	// Aborted is set when the run was stopped early because Output could no
	// longer match.
	Aborted bool
}

var defaultMachine = MachineBuilder{}.Build()

// Run executes prog from regs until it halts and returns everything it
// emitted. Run is deterministic and does not bound the number of steps.
func Run(regs program.Registers, prog program.Program) ([]uint8, error) {
	return defaultMachine.Run(regs, prog)
}

// Step executes the instruction at the PC. Calling Step on a halted state
// does nothing.
func (m *Machine) Step(state *State, prog program.Program) error {
	if state.Halted(prog) {
		return nil
	}

	inst := prog.Instructions[state.PC]
	if m.maxSteps > 0 && state.Steps >= m.maxSteps {
		return &ExecutionError{PC: state.PC, Instruction: inst, Err: ErrStepLimit}
	}

	if m.trace {
		Trace("Inst",
			"PC", state.PC,
			"Inst", inst.String(),
			"A", state.Registers.A,
			"B", state.Registers.B,
			"C", state.Registers.C,
		)
	}

	return m.emu.RunInst(inst, state)
}

// RunState executes until the state halts.
func (m *Machine) RunState(state *State, prog program.Program) error {
	for !state.Halted(prog) {
		if err := m.Step(state, prog); err != nil {
			return err
		}
	}

	return nil
}

// Run executes prog from regs until it halts.
func (m *Machine) Run(regs program.Registers, prog program.Program) ([]uint8, error) {
	state := NewState(regs)
	if err := m.RunState(state, prog); err != nil {
		return nil, err
	}

	return state.Output, nil
}

// RunMatching executes prog from regs and compares every emitted value with
// want as it appears. The run stops at the first value that differs from
// want or that would make the output longer than want.
func (m *Machine) RunMatching(
	regs program.Registers,
	prog program.Program,
	want []uint8,
) (Result, error) {
	state := NewState(regs)

	for !state.Halted(prog) {
		emitted := len(state.Output)

		if err := m.Step(state, prog); err != nil {
			return Result{}, err
		}

		if len(state.Output) == emitted {
			continue
		}

		idx := len(state.Output) - 1
		if idx >= len(want) || state.Output[idx] != want[idx] {
			return Result{
				Output:  state.Output,
				Steps:   state.Steps,
				Aborted: true,
			}, nil
		}
	}

	return Result{
		Output:  state.Output,
		Steps:   state.Steps,
		Matched: len(state.Output) == len(want),
	}, nil
}

// JoinOutput renders an output sequence the way answers are reported,
// e.g. "4,6,3,5,6,3,5,2,1,0".
func JoinOutput(out []uint8) string {
	return program.JoinBytes(out)
}
