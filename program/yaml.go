package program

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlRegisters struct {
	A *uint64 `yaml:"a"`
	B *uint64 `yaml:"b"`
	C *uint64 `yaml:"c"`
}

type yamlFile struct {
	Registers yamlRegisters `yaml:"registers"`
	Program   []int         `yaml:"program"`
}

// LoadYAML reads the YAML form of a program:
//
//	registers: {a: 729, b: 0, c: 0}
//	program: [0, 1, 5, 4, 3, 0]
//
// It reports the same sentinel errors as Parse.
func LoadYAML(r io.Reader) (Registers, Program, error) {
	var f yamlFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return Registers{}, Program{}, &LoadError{Err: ErrMissingProgram}
		}

		return Registers{}, Program{}, &LoadError{Err: fmt.Errorf("%w: %v", ErrMalformedProgram, err)}
	}

	named := []struct {
		name string
		v    *uint64
	}{{"A", f.Registers.A}, {"B", f.Registers.B}, {"C", f.Registers.C}}
	for _, reg := range named {
		if reg.v == nil {
			return Registers{}, Program{}, &LoadError{
				Err: fmt.Errorf("%w: Register %s", ErrMissingRegister, reg.name),
			}
		}
	}

	if len(f.Program) == 0 {
		return Registers{}, Program{}, &LoadError{Err: ErrMissingProgram}
	}

	raw := make([]uint8, len(f.Program))
	for i, v := range f.Program {
		if v < 0 || v > 255 {
			return Registers{}, Program{}, &LoadError{
				Err: fmt.Errorf("%w: byte %d out of range", ErrMalformedProgram, v),
			}
		}
		raw[i] = uint8(v)
	}

	prog, err := FromRaw(raw)
	if err != nil {
		return Registers{}, Program{}, &LoadError{Err: err}
	}

	return NewRegisters(*f.Registers.A, *f.Registers.B, *f.Registers.C), prog, nil
}

// WriteYAML writes regs and prog in the form LoadYAML reads.
func WriteYAML(w io.Writer, regs Registers, prog Program) error {
	f := yamlFile{
		Registers: yamlRegisters{A: &regs.A, B: &regs.B, C: &regs.C},
	}
	for _, b := range prog.Raw() {
		f.Program = append(f.Program, int(b))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}

	return enc.Close()
}

// Format renders regs and prog in the puzzle text format Parse reads.
func Format(regs Registers, prog Program) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Register A: %d\n", regs.A)
	fmt.Fprintf(&sb, "Register B: %d\n", regs.B)
	fmt.Fprintf(&sb, "Register C: %d\n", regs.C)
	sb.WriteString("\nProgram: ")
	sb.WriteString(JoinBytes(prog.Raw()))
	sb.WriteString("\n")

	return sb.String()
}

// JoinBytes renders values as a comma-separated list, e.g. "4,6,3".
func JoinBytes(values []uint8) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(int(v))
	}

	return strings.Join(parts, ",")
}
