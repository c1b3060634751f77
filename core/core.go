package core

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/chronos/program"
)

// Core runs a program on the akita simulation engine, one instruction per
// cycle. It is used to time programs in simulated cycles; Machine is the
// faster path when only the output matters.
type Core struct {
	*sim.TickingComponent

	machine *Machine
	prog    program.Program
	state   *State
	err     error
}

// MapProgram loads the program and the initial registers into the core and
// schedules its first tick.
func (c *Core) MapProgram(regs program.Registers, prog program.Program) {
	c.prog = prog
	c.state = NewState(regs)
	c.err = nil

	Trace("MapProgram",
		"Core", c.Name(),
		"Instructions", prog.Len(),
		"A", regs.A, "B", regs.B, "C", regs.C,
	)

	if !c.state.Halted(prog) {
		c.TickNow()
	}
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.state == nil || c.err != nil || c.state.Halted(c.prog) {
		return false
	}

	pc := c.state.PC
	if err := c.machine.Step(c.state, c.prog); err != nil {
		c.err = err
		slog.Error("core stopped",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Error", err,
		)

		return false
	}

	Trace("Tick",
		"Core", c.Name(),
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"PC", pc,
		"NextPC", c.state.PC,
	)

	return true
}

// Halted reports whether the program has run to completion.
func (c *Core) Halted() bool {
	return c.state != nil && c.state.Halted(c.prog)
}

// Err returns the error that stopped the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Output returns what the program has emitted so far.
func (c *Core) Output() []uint8 {
	if c.state == nil {
		return nil
	}

	return c.state.Output
}

// Cycles returns the number of instructions executed, one per cycle.
func (c *Core) Cycles() uint64 {
	if c.state == nil {
		return 0
	}

	return c.state.Steps
}

// State exposes the core's state for inspection.
func (c *Core) State() *State {
	return c.state
}

// Program returns the mapped program.
func (c *Core) Program() program.Program {
	return c.prog
}
