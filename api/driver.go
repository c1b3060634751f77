// Package api defines the driver API of the chronospatial machine: running a
// program and searching for the register value that makes a program print
// itself.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/program"
)

var (
	// ErrSearchExhausted means the candidate budget ran out before a quine
	// seed was found. It says nothing about whether one exists.
	ErrSearchExhausted = errors.New("search exhausted")

	// ErrNoQuine means the search covered every possible seed.
	ErrNoQuine = errors.New("no quine seed exists")

	// ErrStrategyNotApplicable means the digit strategy was requested for a
	// program that does not have the loop shape it depends on.
	ErrStrategyNotApplicable = errors.New("strategy not applicable to program")
)

// Runner executes programs. *core.Machine is the production Runner.
type Runner interface {
	Run(regs program.Registers, prog program.Program) ([]uint8, error)
	RunMatching(
		regs program.Registers,
		prog program.Program,
		want []uint8,
	) (core.Result, error)
}

// Driver provides the interface to run programs and search quine seeds.
type Driver interface {
	// Run executes prog from regs and returns the emitted values.
	Run(regs program.Registers, prog program.Program) ([]uint8, error)

	// FindMinimalQuineSeed returns the smallest value of register A for
	// which the program, started with B = C = 0, emits its own raw
	// encoding.
	FindMinimalQuineSeed(ctx context.Context, prog program.Program) (uint64, error)
}

type driverImpl struct {
	runner Runner

	strategy         Strategy
	start            uint64
	maxCandidates    uint64
	workers          int
	batchSize        uint64
	progressInterval uint64
}

func (d *driverImpl) Run(
	regs program.Registers,
	prog program.Program,
) ([]uint8, error) {
	return d.runner.Run(regs, prog)
}

func (d *driverImpl) FindMinimalQuineSeed(
	ctx context.Context,
	prog program.Program,
) (uint64, error) {
	want := prog.Raw()

	strategy := d.strategy
	if strategy == StrategyAuto {
		strategy = StrategyBruteForce
		if DigitSearchable(prog) {
			strategy = StrategyDigits
		}
	}

	slog.Debug("quine search",
		"Strategy", strategy.String(),
		"Instructions", prog.Len(),
		"Workers", d.workers,
	)

	switch strategy {
	case StrategyDigits:
		if !DigitSearchable(prog) {
			return 0, ErrStrategyNotApplicable
		}

		return d.digitSearch(ctx, prog, want)
	case StrategyBruteForce:
		if d.workers > 1 {
			return d.parallelBruteForce(ctx, prog, want)
		}

		return d.bruteForce(ctx, prog, want)
	default:
		return 0, fmt.Errorf("unknown strategy %d", int(strategy))
	}
}

// try reports whether a is a quine seed. Candidates that hit the runner's
// step limit are not seeds.
func (d *driverImpl) try(a uint64, prog program.Program, want []uint8) (bool, error) {
	res, err := d.runner.RunMatching(program.NewRegisters(a, 0, 0), prog, want)
	if errors.Is(err, core.ErrStepLimit) {
		slog.Debug("candidate hit step limit", "A", a)
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("candidate %d: %w", a, err)
	}

	return res.Matched, nil
}

// logProgress logs when the number of tried candidates crosses a multiple
// of the progress interval.
func (d *driverImpl) logProgress(candidate, before, after uint64) {
	if d.progressInterval == 0 || before/d.progressInterval == after/d.progressInterval {
		return
	}

	slog.Info("search progress", "Candidate", candidate, "Tried", after)
}
