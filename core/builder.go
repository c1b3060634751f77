package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps uint64
	trace    bool
}

// NewBuilder returns a builder for a 1 GHz core with no step limit.
func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMaxSteps stops the core with ErrStepLimit after n instructions.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// WithTrace logs every executed instruction.
func (b Builder) WithTrace(trace bool) Builder {
	b.trace = trace
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.machine = MachineBuilder{}.
		WithMaxSteps(b.maxSteps).
		WithTrace(b.trace).
		Build()

	return c
}
