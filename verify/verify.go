// Package verify provides debugging tools for chronospatial programs.
//
// It works in two stages:
//
// 1. Static Lint (lint.go): structural and control-flow checks that need no
// register values
//   - STRUCT checks: opcode and operand ranges, jump targets
//   - FLOW checks: programs that can never print themselves, loops that
//     never change A
//
// 2. Bounded run (report.go): executes the program from given registers
// with a step limit, so that a diverging program still yields a report.
//
// # Program Structure
//
// A program.Program is a flat list of instructions. Each instruction is an
// opcode byte and an operand byte, both expected in 0..7:
//
//	program.Program
//	  └── Instruction (one per byte pair)
//	      ├── Opcode  (adv, bxl, bst, jnz, bxc, out, bdv, cdv)
//	      └── Operand (literal, combo, or ignored, depending on the opcode)
//
// The PC indexes instructions. A jump operand is a byte offset and is
// halved to find the target instruction.
//
// # Usage Example
//
//	regs, prog, err := program.LoadFile("input.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, issue := range verify.RunLint(prog) {
//	    log.Printf("[%s] pc=%d: %s", issue.Type, issue.PC, issue.Message)
//	}
//
//	report := verify.GenerateReport(regs, prog, 1_000_000)
//	report.WriteReport(os.Stdout)
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Encoding error (bad opcode, operand, or jump target)
	IssueFlow   IssueType = "FLOW"   // Control-flow problem (no output, loop that cannot end)
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT or FLOW
	PC      int                    // Instruction index (-1 if not applicable)
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
