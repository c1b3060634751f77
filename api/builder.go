package api

import (
	"runtime"

	"github.com/sarchlab/chronos/core"
)

// DefaultProgressInterval is how many candidates pass between progress logs.
const DefaultProgressInterval = 100_000_000

// DriverBuilder creates drivers.
type DriverBuilder struct {
	runner           Runner
	maxSteps         uint64
	strategy         Strategy
	start            uint64
	maxCandidates    uint64
	workers          int
	batchSize        uint64
	progressInterval uint64
}

// NewDriverBuilder returns a builder with the default settings: automatic
// strategy, one worker, no candidate limit.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		workers:          1,
		progressInterval: DefaultProgressInterval,
	}
}

// WithRunner sets the runner that executes candidate programs. By default a
// core.Machine is used.
func (b DriverBuilder) WithRunner(runner Runner) DriverBuilder {
	b.runner = runner
	return b
}

// WithMaxSteps bounds every run of the default runner. Candidates that hit
// the bound are skipped during the search.
func (b DriverBuilder) WithMaxSteps(n uint64) DriverBuilder {
	b.maxSteps = n
	return b
}

// WithStrategy sets the search strategy.
func (b DriverBuilder) WithStrategy(s Strategy) DriverBuilder {
	b.strategy = s
	return b
}

// WithStart sets the first seed the brute-force search tries.
func (b DriverBuilder) WithStart(a uint64) DriverBuilder {
	b.start = a
	return b
}

// WithMaxCandidates caps how many seeds the brute-force search tries before
// it gives up with ErrSearchExhausted. Zero means no cap.
func (b DriverBuilder) WithMaxCandidates(n uint64) DriverBuilder {
	b.maxCandidates = n
	return b
}

// WithWorkers sets how many goroutines the brute-force search uses. Values
// below 1 use one worker per CPU.
func (b DriverBuilder) WithWorkers(n int) DriverBuilder {
	b.workers = n
	return b
}

// WithBatchSize sets how many seeds a parallel search covers before it
// checks for a result.
func (b DriverBuilder) WithBatchSize(n uint64) DriverBuilder {
	b.batchSize = n
	return b
}

// WithProgressInterval sets how many candidates pass between progress logs.
// Zero disables progress logs.
func (b DriverBuilder) WithProgressInterval(n uint64) DriverBuilder {
	b.progressInterval = n
	return b
}

// Build creates the driver.
func (b DriverBuilder) Build() Driver {
	d := &driverImpl{
		runner:           b.runner,
		strategy:         b.strategy,
		start:            b.start,
		maxCandidates:    b.maxCandidates,
		workers:          b.workers,
		batchSize:        b.batchSize,
		progressInterval: b.progressInterval,
	}

	if d.runner == nil {
		d.runner = core.MachineBuilder{}.WithMaxSteps(b.maxSteps).Build()
	}

	if d.workers < 1 {
		d.workers = runtime.NumCPU()
	}

	if d.batchSize == 0 {
		d.batchSize = 4096 * uint64(d.workers)
	}

	return d
}
