package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/program"
)

//go:embed program.yaml
var source string

func timed(engine sim.Engine, c *core.Core, regs program.Registers, prog program.Program) {
	c.MapProgram(regs, prog)

	if err := engine.Run(); err != nil {
		atexit.Fatalf("engine: %v", err)
	}

	if c.Err() != nil {
		atexit.Fatalf("core: %v", c.Err())
	}

	core.PrintState(os.Stdout, c.State(), prog)
	fmt.Printf("%d cycles, finished at %.0f ns\n",
		c.Cycles(), float64(engine.CurrentTime()*1e9))
}

func main() {
	withMonitor := flag.Bool("monitor", false, "serve the akita monitor while running")
	flag.Parse()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	regs, prog, err := program.LoadYAML(strings.NewReader(source))
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	engine := sim.NewSerialEngine()

	c := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithTrace(true).
		Build("Core")

	if *withMonitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(c)
		monitor.StartServer()
	}

	core.PrintProgram(os.Stdout, prog)
	timed(engine, c, regs, prog)
	atexit.Exit(0)
}
