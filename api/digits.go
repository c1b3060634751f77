package api

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/sarchlab/chronos/isa"
	"github.com/sarchlab/chronos/program"
)

// DigitSearchable reports whether prog is a single loop that
//
//   - ends with "jnz 0" and has no other jump,
//   - shifts A by exactly 3 bits once per iteration ("adv 3"),
//   - emits exactly one value per iteration,
//   - writes B and C before reading them in every iteration.
//
// For such programs every iteration's output is a function of the A the
// iteration starts with, so a seed can be built three bits at a time from
// the last output backward.
func DigitSearchable(prog program.Program) bool {
	n := prog.Len()
	if n < 2 {
		return false
	}

	last := prog.Instructions[n-1]
	if last.Opcode != isa.JNZ || last.Operand.Literal() != 0 {
		return false
	}

	var (
		shifts, outs       int
		writtenB, writtenC bool
	)

	for _, inst := range prog.Instructions[:n-1] {
		if !inst.Opcode.Valid() {
			return false
		}

		op := inst.Operand
		if inst.Opcode.OperandKind() == isa.KindCombo {
			if (op.Literal() == 5 && !writtenB) || (op.Literal() == 6 && !writtenC) {
				return false
			}
		}

		switch inst.Opcode {
		case isa.JNZ:
			return false
		case isa.ADV:
			if op.Literal() != 3 {
				return false
			}
			shifts++
		case isa.BXL:
			if !writtenB {
				return false
			}
		case isa.BXC:
			if !writtenB || !writtenC {
				return false
			}
		case isa.OUT:
			outs++
		case isa.BST, isa.BDV:
			writtenB = true
		case isa.CDV:
			writtenC = true
		}
	}

	return shifts == 1 && outs == 1
}

// digitSearch builds the seed one octal digit at a time. A candidate with k
// digits must reproduce the last k bytes of the program; digits are tried in
// ascending order depth first, so the first full-length hit is the smallest
// seed.
func (d *driverImpl) digitSearch(
	ctx context.Context,
	prog program.Program,
	want []uint8,
) (uint64, error) {
	var extend func(prefix uint64, k int) (uint64, bool, error)

	extend = func(prefix uint64, k int) (uint64, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		suffix := want[len(want)-k:]
		for digit := uint64(0); digit < 8; digit++ {
			if prefix > (math.MaxUint64-digit)/8 {
				return 0, false, nil
			}

			a := prefix*8 + digit
			ok, err := d.try(a, prog, suffix)
			if err != nil {
				return 0, false, err
			}

			if !ok {
				continue
			}

			if k == len(want) {
				return a, true, nil
			}

			seed, found, err := extend(a, k+1)
			if err != nil || found {
				return seed, found, err
			}
		}

		return 0, false, nil
	}

	seed, found, err := extend(0, 1)
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, ErrNoQuine
	}

	out, err := d.runner.Run(program.NewRegisters(seed, 0, 0), prog)
	if err != nil {
		return 0, err
	}

	if !slices.Equal(out, want) {
		return 0, fmt.Errorf("seed %d reproduces the suffixes but not the program", seed)
	}

	return seed, nil
}
