package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/chronos/program"
	"github.com/sarchlab/chronos/verify"
)

func main() {
	input := flag.String("input", "samples/quine/input.txt", "program file (.txt or .yaml)")
	maxSteps := flag.Uint64("max-steps", 1_000_000, "step limit of the bounded run, 0 for none")
	out := flag.String("out", "", "also save the report to this file")
	flag.Parse()

	regs, prog, err := program.LoadFile(*input)
	if err != nil {
		atexit.Fatalf("Failed to load program from %s: %v", *input, err)
	}

	report := verify.GenerateReport(regs, prog, *maxSteps)
	report.WriteReport(os.Stdout)

	if *out != "" {
		if err := report.SaveReportToFile(*out); err != nil {
			atexit.Fatalf("%v", err)
		}
		fmt.Printf("Report saved to %s\n", *out)
	}

	if len(report.StructIssues) > 0 {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
