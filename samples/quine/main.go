package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/chronos/api"
	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/program"
)

//go:embed input.txt
var input string

func quine(driver api.Driver, regs program.Registers, prog program.Program) {
	out, err := driver.Run(regs, prog)
	if err != nil {
		atexit.Fatalf("run: %v", err)
	}
	fmt.Println("output:", core.JoinOutput(out))

	start := time.Now()
	seed, err := driver.FindMinimalQuineSeed(context.Background(), prog)
	if err != nil {
		atexit.Fatalf("search: %v", err)
	}
	fmt.Printf("minimal quine seed: %d (octal %o), took %v\n", seed, seed, time.Since(start))

	check, err := driver.Run(program.NewRegisters(seed, 0, 0), prog)
	if err != nil {
		atexit.Fatalf("check: %v", err)
	}
	fmt.Println("program:", program.JoinBytes(prog.Raw()))
	fmt.Println("replay: ", core.JoinOutput(check))
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	regs, prog, err := program.ParseString(input)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	driver := api.NewDriverBuilder().
		WithStrategy(api.StrategyDigits).
		Build()

	quine(driver, regs, prog)
	atexit.Exit(0)
}
