package verify

import (
	"fmt"

	"github.com/sarchlab/chronos/isa"
	"github.com/sarchlab/chronos/program"
)

// RunLint performs static lint checks on a program.
// It validates the encoding (STRUCT) and the control flow (FLOW).
// Returns a list of issues found, or empty list if no issues.
func RunLint(prog program.Program) []Issue {
	var issues []Issue

	// STRUCT: per-instruction encoding
	for pc, inst := range prog.Instructions {
		issues = append(issues, checkEncoding(pc, inst, prog.Len())...)
	}

	// FLOW: output and loops
	issues = append(issues, checkFlow(prog)...)

	return issues
}

func checkEncoding(pc int, inst isa.Instruction, n int) []Issue {
	var issues []Issue

	op := uint8(inst.Opcode)
	lit := inst.Operand.Literal()

	if !inst.Opcode.Valid() {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Message: fmt.Sprintf("Unknown opcode %d at pc %d", op, pc),
			Details: map[string]interface{}{"opcode": op, "byte": 2 * pc},
		})
	}

	if lit > 7 {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Message: fmt.Sprintf("Operand %d at pc %d is not a 3-bit value", lit, pc),
			Details: map[string]interface{}{"operand": lit, "byte": 2*pc + 1},
		})
	}

	if inst.Opcode != isa.JNZ {
		return issues
	}

	if lit%2 != 0 {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Message: fmt.Sprintf("Jump at pc %d targets odd byte %d (runs pc %d)", pc, lit, lit/2),
			Details: map[string]interface{}{"target_byte": lit, "target_pc": int(lit / 2)},
		})
	}

	if int(lit/2) >= n {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Message: fmt.Sprintf("Jump at pc %d targets pc %d past the end of the program", pc, lit/2),
			Details: map[string]interface{}{"target_pc": int(lit / 2), "len": n},
		})
	}

	return issues
}

func checkFlow(prog program.Program) []Issue {
	var issues []Issue

	if prog.Len() == 0 {
		return issues
	}

	emits := false
	for _, inst := range prog.Instructions {
		if inst.Opcode == isa.OUT {
			emits = true
			break
		}
	}

	if !emits {
		issues = append(issues, Issue{
			Type:    IssueFlow,
			PC:      -1,
			Message: "Program has no out instruction and can never print itself",
		})
	}

	for pc, inst := range prog.Instructions {
		if inst.Opcode != isa.JNZ {
			continue
		}

		target := int(inst.Operand.Literal() / 2)
		if target > pc {
			continue
		}

		if !updatesA(prog.Instructions[target : pc+1]) {
			issues = append(issues, Issue{
				Type: IssueFlow,
				PC:   pc,
				Message: fmt.Sprintf(
					"Loop pc %d..%d never changes A and does not end for any A != 0",
					target, pc,
				),
				Details: map[string]interface{}{"loop_start": target, "loop_end": pc},
			})
		}
	}

	return issues
}

// updatesA reports whether body contains an adv that can change A. adv 0
// shifts by zero and leaves A as it is.
func updatesA(body []isa.Instruction) bool {
	for _, inst := range body {
		if inst.Opcode != isa.ADV {
			continue
		}

		if inst.Operand.Literal() != 0 {
			return true
		}
	}

	return false
}
