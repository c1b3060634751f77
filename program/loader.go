package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMissingProgram    = errors.New("missing Program line")
	ErrMissingRegister   = errors.New("missing Register line")
	ErrMalformedRegister = errors.New("malformed Register line")
	ErrDuplicateRegister = errors.New("register defined twice")
	ErrDuplicateProgram  = errors.New("program defined twice")
	ErrMalformedProgram  = errors.New("malformed Program line")
	ErrOddLength         = errors.New("program has an odd number of bytes")
	ErrUnexpectedLine    = errors.New("unexpected line")
)

// LoadError reports why an input could not be loaded. Line is 1-based and 0
// when the problem is not tied to a line, e.g. a missing section.
type LoadError struct {
	Line int
	Text string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return "load: " + e.Err.Error()
	}

	return fmt.Sprintf("load: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// maxLineSize bounds a single input line, which holds the whole program.
const maxLineSize = 1 << 20

var (
	registerRe = regexp.MustCompile(`^Register\s+(\S+):\s*(\S*)$`)
	programRe  = regexp.MustCompile(`^Program:\s*(.*)$`)
)

// Parse reads the puzzle text format:
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
//
// All three registers and the program are required. Nothing is returned on
// error.
func Parse(r io.Reader) (Registers, Program, error) {
	var (
		regs    Registers
		seen    = map[string]bool{}
		prog    Program
		hasProg bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fail := func(err error) (Registers, Program, error) {
			return Registers{}, Program{}, &LoadError{Line: lineNo, Text: line, Err: err}
		}

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Register"):
			name, value, err := parseRegisterLine(line)
			if err != nil {
				return fail(err)
			}
			if seen[name] {
				return fail(ErrDuplicateRegister)
			}
			seen[name] = true

			switch name {
			case "A":
				regs.A = value
			case "B":
				regs.B = value
			case "C":
				regs.C = value
			}
		case strings.HasPrefix(line, "Program"):
			if hasProg {
				return fail(ErrDuplicateProgram)
			}

			p, err := parseProgramLine(line)
			if err != nil {
				return fail(err)
			}
			prog, hasProg = p, true
		default:
			return fail(ErrUnexpectedLine)
		}
	}

	if err := scanner.Err(); err != nil {
		return Registers{}, Program{}, &LoadError{Line: lineNo + 1, Err: err}
	}

	for _, name := range []string{"A", "B", "C"} {
		if !seen[name] {
			return Registers{}, Program{}, &LoadError{
				Err: fmt.Errorf("%w: Register %s", ErrMissingRegister, name),
			}
		}
	}

	if !hasProg {
		return Registers{}, Program{}, &LoadError{Err: ErrMissingProgram}
	}

	return regs, prog, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (Registers, Program, error) {
	return Parse(strings.NewReader(s))
}

// LoadFile loads a program from disk. Files ending in .yaml or .yml are read
// with LoadYAML, everything else with Parse.
func LoadFile(path string) (Registers, Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Registers{}, Program{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Parse(f)
	}
}

func parseRegisterLine(line string) (string, uint64, error) {
	m := registerRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, ErrMalformedRegister
	}

	name := m[1]
	if name != "A" && name != "B" && name != "C" {
		return "", 0, fmt.Errorf("%w: unknown register %q", ErrMalformedRegister, name)
	}

	value, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrMalformedRegister, err)
	}

	return name, value, nil
}

func parseProgramLine(line string) (Program, error) {
	m := programRe.FindStringSubmatch(line)
	if m == nil {
		return Program{}, ErrMalformedProgram
	}

	raw, err := parseBytes(m[1])
	if err != nil {
		return Program{}, err
	}

	return FromRaw(raw)
}

// parseBytes does not check that values fit in 3 bits.
func parseBytes(list string) ([]uint8, error) {
	fields := strings.Split(list, ",")
	raw := make([]uint8, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedProgram, err)
		}

		raw = append(raw, uint8(v))
	}

	return raw, nil
}
