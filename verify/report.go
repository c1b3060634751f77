package verify

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/isa"
	"github.com/sarchlab/chronos/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Registers    program.Registers
	Program      program.Program
	LintIssues   []Issue
	StructIssues []Issue
	FlowIssues   []Issue

	MaxSteps uint64
	Output   []uint8
	Steps    uint64
	RunErr   error
	RunOK    bool
	IsQuine  bool
}

// GenerateReport runs lint and a bounded run, returns a report. A maxSteps of
// zero runs without a bound.
func GenerateReport(
	regs program.Registers,
	prog program.Program,
	maxSteps uint64,
) *VerificationReport {
	report := &VerificationReport{
		Registers: regs,
		Program:   prog,
		MaxSteps:  maxSteps,
	}

	// Run lint
	report.LintIssues = RunLint(prog)

	// Categorize issues
	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.FlowIssues = append(report.FlowIssues, issue)
		}
	}

	// Bounded run
	m := core.MachineBuilder{}.WithMaxSteps(maxSteps).Build()
	state := core.NewState(regs)
	report.RunErr = m.RunState(state, prog)
	report.RunOK = report.RunErr == nil
	report.Output = state.Output
	report.Steps = state.Steps
	report.IsQuine = report.RunOK && slices.Equal(state.Output, prog.Raw())

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nISA: %s\n", isa.Default.Name())
	fmt.Fprintf(w, "Loaded %d instructions: %s\n", r.Program.Len(), program.JoinBytes(r.Program.Raw()))
	fmt.Fprintf(w, "Registers: A=%d B=%d C=%d\n\n",
		r.Registers.A, r.Registers.B, r.Registers.C)
	core.PrintProgram(w, r.Program)

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n\n", len(r.LintIssues))

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"#", "Type", "PC", "Message"})
		for i, issue := range r.LintIssues {
			pc := "-"
			if issue.PC >= 0 {
				pc = fmt.Sprint(issue.PC)
			}
			t.AppendRow(table.Row{i + 1, issue.Type, pc, issue.Message})
		}
		t.Render()
	}

	// STAGE 2: RUN
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: BOUNDED RUN")
	fmt.Fprintln(w, separator)

	limit := "none"
	if r.MaxSteps > 0 {
		limit = fmt.Sprint(r.MaxSteps)
	}

	fmt.Fprintf(w, "Step limit: %s\n", limit)
	fmt.Fprintf(w, "Steps: %d\n", r.Steps)
	fmt.Fprintf(w, "Output: %s\n", core.JoinOutput(r.Output))
	if r.RunOK {
		fmt.Fprintln(w, "Run completed successfully")
	} else {
		fmt.Fprintf(w, "Run error: %v\n", r.RunErr)
	}

	// STAGE 3: SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d FLOW)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.FlowIssues))
	runStatus := "SUCCESS"
	if !r.RunOK {
		runStatus = "FAILED: " + r.RunErr.Error()
	}
	fmt.Fprintf(w, "Run Result: %s\n", runStatus)
	fmt.Fprintf(w, "Quine: %t\n", r.IsQuine)

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
