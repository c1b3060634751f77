// Command chronos loads a chronospatial program, prints what it outputs and
// searches the smallest value of register A that makes it print itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/chronos/config"
	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/program"
	"github.com/sarchlab/chronos/verify"
)

type flags struct {
	config string

	input            string
	part             int
	strategy         string
	start            uint64
	maxSteps         uint64
	maxCandidates    uint64
	workers          int
	batchSize        uint64
	progressInterval uint64
	logLevel         string
	trace            bool
	timed            bool
	freqGHz          float64

	disasm bool
	lint   bool
	state  bool
}

func parseFlags() *flags {
	f := &flags{}
	d := config.Default()

	flag.StringVar(&f.config, "config", "", "YAML configuration file")
	flag.StringVar(&f.input, "input", d.Input, "program file (.txt or .yaml)")
	flag.IntVar(&f.part, "part", d.Part, "answer to compute: 1, 2, or 0 for both")
	flag.StringVar(&f.strategy, "strategy", d.Strategy, "quine search strategy: auto, bruteforce, digits")
	flag.Uint64Var(&f.start, "start", d.Start, "first seed of the brute-force search")
	flag.Uint64Var(&f.maxSteps, "max-steps", d.MaxSteps, "step limit per run, 0 for none")
	flag.Uint64Var(&f.maxCandidates, "max-candidates", d.MaxCandidates, "brute-force budget, 0 for none")
	flag.IntVar(&f.workers, "workers", d.Workers, "brute-force goroutines, 0 for one per CPU")
	flag.Uint64Var(&f.batchSize, "batch-size", d.BatchSize, "seeds per parallel batch, 0 for default")
	flag.Uint64Var(&f.progressInterval, "progress", d.ProgressInterval, "candidates between progress logs, 0 to disable")
	flag.StringVar(&f.logLevel, "log-level", d.LogLevel, "trace, debug, info, warn or error")
	flag.BoolVar(&f.trace, "trace", d.Trace, "log every executed instruction at trace level")
	flag.BoolVar(&f.timed, "timed", d.Timed, "also run part 1 on the akita engine and report cycles")
	flag.Float64Var(&f.freqGHz, "freq", d.FreqGHz, "core frequency of the timed run in GHz")
	flag.BoolVar(&f.disasm, "disasm", false, "print the disassembled program")
	flag.BoolVar(&f.lint, "lint", false, "print the verification report")
	flag.BoolVar(&f.state, "state", false, "print the final machine state of part 1")
	flag.Parse()

	return f
}

// resolveConfig starts from the config file, if any, and applies every flag
// that was set on the command line.
func resolveConfig(f *flags) (config.Config, error) {
	c := config.Default()
	if f.config != "" {
		var err error
		if c, err = config.Load(f.config); err != nil {
			return config.Config{}, err
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input":
			c.Input = f.input
		case "part":
			c.Part = f.part
		case "strategy":
			c.Strategy = f.strategy
		case "start":
			c.Start = f.start
		case "max-steps":
			c.MaxSteps = f.maxSteps
		case "max-candidates":
			c.MaxCandidates = f.maxCandidates
		case "workers":
			c.Workers = f.workers
		case "batch-size":
			c.BatchSize = f.batchSize
		case "progress":
			c.ProgressInterval = f.progressInterval
		case "log-level":
			c.LogLevel = f.logLevel
		case "trace":
			c.Trace = f.trace
		case "timed":
			c.Timed = f.timed
		case "freq":
			c.FreqGHz = f.freqGHz
		}
	})

	return c, c.Validate()
}

func setupLogging(c config.Config) {
	level, _ := c.Level()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

func main() {
	f := parseFlags()

	c, err := resolveConfig(f)
	if err != nil {
		atexit.Fatalf("config: %v", err)
	}

	setupLogging(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	inputStart := time.Now()
	regs, prog, err := program.LoadFile(c.Input)
	if err != nil {
		atexit.Fatalf("%v", err)
	}
	fmt.Printf("input took %v\n", time.Since(inputStart))
	fmt.Print(program.Format(regs, prog))

	if f.disasm {
		core.PrintProgram(os.Stdout, prog)
	}

	if f.lint {
		verify.GenerateReport(regs, prog, c.MaxSteps).WriteReport(os.Stdout)
	}

	if c.Part != 2 {
		solvePart1(c, f, regs, prog)
	}

	if c.Part != 1 {
		solvePart2(ctx, c, prog)
	}

	atexit.Exit(0)
}

func solvePart1(c config.Config, f *flags, regs program.Registers, prog program.Program) {
	start := time.Now()
	m := c.MachineBuilder().Build()
	state := core.NewState(regs)
	if err := m.RunState(state, prog); err != nil {
		atexit.Fatalf("solution_1: %v", err)
	}
	fmt.Printf("solution_1: %s, took %v\n", core.JoinOutput(state.Output), time.Since(start))

	if f.state {
		core.PrintState(os.Stdout, state, prog)
	}

	if c.Timed {
		runTimed(c, regs, prog)
	}
}

func runTimed(c config.Config, regs program.Registers, prog program.Program) {
	engine := sim.NewSerialEngine()
	tc := c.CoreBuilder(engine).Build("Chronos.Core")

	tc.MapProgram(regs, prog)
	if err := engine.Run(); err != nil {
		atexit.Fatalf("timed run: %v", err)
	}

	if tc.Err() != nil {
		atexit.Fatalf("timed run: %v", tc.Err())
	}

	fmt.Printf("timed: %d cycles, %.0f ns at %g GHz\n",
		tc.Cycles(),
		float64(engine.CurrentTime()*1e9),
		c.FreqGHz,
	)
}

func solvePart2(ctx context.Context, c config.Config, prog program.Program) {
	start := time.Now()
	seed, err := c.DriverBuilder().Build().FindMinimalQuineSeed(ctx, prog)
	if err != nil {
		atexit.Fatalf("solution_2: %v", err)
	}
	fmt.Printf("solution_2: %d, took %v\n", seed, time.Since(start))
}
