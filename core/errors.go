package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/chronos/isa"
)

var (
	// ErrUnknownOpcode means the program holds a byte that is not an opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStepLimit means the run was cut off by the machine's step limit.
	ErrStepLimit = errors.New("step limit reached")
)

// ExecutionError stops a run. No partial output is reported with it.
type ExecutionError struct {
	PC          int
	Instruction isa.Instruction
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute: pc %d (%d,%d): %v",
		e.PC, uint8(e.Instruction.Opcode), e.Instruction.Operand.Literal(), e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
