package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/chronos/program"
)

// LevelTrace sits below slog.LevelDebug and carries per-instruction logs.
const LevelTrace slog.Level = slog.LevelDebug - 4

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState renders the registers, the PC and the output as tables.
func PrintState(w io.Writer, state *State, prog program.Program) {
	regTable := table.NewWriter()
	regTable.SetOutputMirror(w)
	regTable.SetTitle("Registers")
	regTable.AppendHeader(table.Row{"Reg", "Decimal", "Octal"})
	regTable.AppendRow(table.Row{"A", state.Registers.A, fmt.Sprintf("%o", state.Registers.A)})
	regTable.AppendRow(table.Row{"B", state.Registers.B, fmt.Sprintf("%o", state.Registers.B)})
	regTable.AppendRow(table.Row{"C", state.Registers.C, fmt.Sprintf("%o", state.Registers.C)})
	regTable.Render()

	next := "halted"
	if !state.Halted(prog) {
		next = prog.Instructions[state.PC].String()
	}

	runTable := table.NewWriter()
	runTable.SetOutputMirror(w)
	runTable.AppendRows([]table.Row{
		{"PC", state.PC},
		{"Next", next},
		{"Steps", state.Steps},
		{"Output", JoinOutput(state.Output)},
	})
	runTable.Render()
}

// PrintProgram renders a disassembly listing with the raw bytes of each
// instruction.
func PrintProgram(w io.Writer, prog program.Program) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"PC", "Byte", "Raw", "Inst"})

	for pc, inst := range prog.Instructions {
		t.AppendRow(table.Row{
			pc,
			2 * pc,
			fmt.Sprintf("%d,%d", uint8(inst.Opcode), inst.Operand.Literal()),
			inst.String(),
		})
	}

	t.Render()
}

func LogState(state *State) {
	slog.Debug("StateCheckpoint",
		"PC", state.PC,
		"A", state.Registers.A,
		"B", state.Registers.B,
		"C", state.Registers.C,
		"Steps", state.Steps,
		"Output", JoinOutput(state.Output),
	)
}
