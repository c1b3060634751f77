package program_test

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chronos/isa"
	"github.com/sarchlab/chronos/program"
)

const sampleInput = `Register A: 729
Register B: 0
Register C: 0

Program: 0,1,5,4,3,0
`

var _ = Describe("Program", func() {
	It("should pair raw bytes into instructions", func() {
		prog, err := program.FromRaw([]uint8{0, 1, 5, 4, 3, 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(3))
		Expect(prog.Instructions[1]).To(Equal(isa.NewInstruction(5, 4)))
		Expect(prog.Raw()).To(Equal([]uint8{0, 1, 5, 4, 3, 0}))
	})

	It("should refuse odd-length encodings", func() {
		_, err := program.FromRaw([]uint8{0, 1, 5})
		Expect(err).To(MatchError(program.ErrOddLength))
		Expect(func() { program.MustFromRaw(0) }).To(Panic())
	})
})

var _ = Describe("Parse", func() {
	It("should load registers and program", func() {
		regs, prog, err := program.ParseString(sampleInput)
		Expect(err).NotTo(HaveOccurred())
		Expect(regs).To(Equal(program.NewRegisters(729, 0, 0)))
		Expect(prog.Raw()).To(Equal([]uint8{0, 1, 5, 4, 3, 0}))
	})

	It("should accept registers in any order and surrounding blanks", func() {
		regs, prog, err := program.ParseString(
			"\n  Register C: 3\nRegister A: 1\nRegister B: 2\n\nProgram: 0, 3 ,5,4\n\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(regs).To(Equal(program.NewRegisters(1, 2, 3)))
		Expect(prog.Raw()).To(Equal([]uint8{0, 3, 5, 4}))
	})

	It("should not validate the 3-bit range", func() {
		_, prog, err := program.ParseString(
			"Register A: 0\nRegister B: 0\nRegister C: 0\nProgram: 9,1")
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Raw()).To(Equal([]uint8{9, 1}))
	})

	DescribeTable("load errors",
		func(input string, want error, line int) {
			_, _, err := program.ParseString(input)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, want)).To(BeTrue(), err.Error())

			var loadErr *program.LoadError
			Expect(errors.As(err, &loadErr)).To(BeTrue())
			Expect(loadErr.Line).To(Equal(line))
		},
		Entry("odd length",
			"Register A: 0\nRegister B: 0\nRegister C: 0\nProgram: 0,1,5",
			program.ErrOddLength, 4),
		Entry("missing program",
			"Register A: 0\nRegister B: 0\nRegister C: 0\n",
			program.ErrMissingProgram, 0),
		Entry("missing register",
			"Register A: 0\nRegister C: 0\nProgram: 0,1",
			program.ErrMissingRegister, 0),
		Entry("non-numeric register",
			"Register A: x\nRegister B: 0\nRegister C: 0\nProgram: 0,1",
			program.ErrMalformedRegister, 1),
		Entry("unknown register",
			"Register D: 1\nRegister A: 0\nRegister B: 0\nRegister C: 0\nProgram: 0,1",
			program.ErrMalformedRegister, 1),
		Entry("duplicate register",
			"Register A: 0\nRegister A: 0\nRegister B: 0\nRegister C: 0\nProgram: 0,1",
			program.ErrDuplicateRegister, 2),
		Entry("non-numeric byte",
			"Register A: 0\nRegister B: 0\nRegister C: 0\nProgram: 0,x",
			program.ErrMalformedProgram, 4),
		Entry("empty program",
			"Register A: 0\nRegister B: 0\nRegister C: 0\nProgram:",
			program.ErrMalformedProgram, 4),
		Entry("two programs",
			"Register A: 0\nRegister B: 0\nRegister C: 0\nProgram: 0,1\nProgram: 0,1",
			program.ErrDuplicateProgram, 5),
		Entry("stray text",
			"Register A: 0\nRegister B: 0\nRegister C: 0\nhello\nProgram: 0,1",
			program.ErrUnexpectedLine, 4),
	)

	It("should describe the failing line", func() {
		_, _, err := program.ParseString("Register A: 0\nRegister B: q\n")
		Expect(err.Error()).To(ContainSubstring("line 2"))
		Expect(err.Error()).To(ContainSubstring("Register B: q"))
	})

	It("should read program lines longer than the default scanner buffer", func() {
		raw := strings.TrimSuffix(strings.Repeat("0,3,5,4,", 10_000), ",")
		input := "Register A: 1\nRegister B: 0\nRegister C: 0\n\nProgram: " + raw + "\n"
		Expect(len(input)).To(BeNumerically(">", 64*1024))

		_, prog, err := program.ParseString(input)

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(20_000))
	})

	It("should report oversized lines as load errors", func() {
		input := "Register A: 1\nProgram: " + strings.Repeat("0,", 1<<20) + "0\n"

		_, _, err := program.ParseString(input)

		var loadErr *program.LoadError
		Expect(errors.As(err, &loadErr)).To(BeTrue())
		Expect(loadErr.Line).To(Equal(2))
		Expect(err).To(MatchError(bufio.ErrTooLong))
	})

	It("should report read failures as load errors", func() {
		readErr := errors.New("disk on fire")

		_, _, err := program.Parse(iotest.ErrReader(readErr))

		var loadErr *program.LoadError
		Expect(errors.As(err, &loadErr)).To(BeTrue())
		Expect(err).To(MatchError(readErr))
	})
})

var _ = Describe("Formats", func() {
	var (
		regs program.Registers
		prog program.Program
	)

	BeforeEach(func() {
		regs = program.NewRegisters(117440, 0, 0)
		prog = program.MustFromRaw(0, 3, 5, 4, 3, 0)
	})

	It("should write text that parses back", func() {
		text := program.Format(regs, prog)
		Expect(text).To(ContainSubstring("Program: 0,3,5,4,3,0"))

		gotRegs, gotProg, err := program.ParseString(text)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotRegs).To(Equal(regs))
		Expect(gotProg).To(Equal(prog))
	})

	It("should write YAML that loads back", func() {
		var buf bytes.Buffer
		Expect(program.WriteYAML(&buf, regs, prog)).To(Succeed())

		gotRegs, gotProg, err := program.LoadYAML(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotRegs).To(Equal(regs))
		Expect(gotProg).To(Equal(prog))
	})

	DescribeTable("YAML load errors",
		func(input string, want error) {
			_, _, err := program.LoadYAML(bytes.NewBufferString(input))
			Expect(errors.Is(err, want)).To(BeTrue(), "%v", err)
		},
		Entry("empty document", "", program.ErrMissingProgram),
		Entry("missing register",
			"registers: {a: 1, b: 0}\nprogram: [0, 1]\n", program.ErrMissingRegister),
		Entry("missing program",
			"registers: {a: 1, b: 0, c: 0}\n", program.ErrMissingProgram),
		Entry("odd length",
			"registers: {a: 1, b: 0, c: 0}\nprogram: [0, 1, 5]\n", program.ErrOddLength),
		Entry("unknown field",
			"registers: {a: 1, b: 0, c: 0}\nprogram: [0, 1]\nextra: 1\n", program.ErrMalformedProgram),
		Entry("byte out of range",
			"registers: {a: 1, b: 0, c: 0}\nprogram: [0, 300]\n", program.ErrMalformedProgram),
	)

	It("should pick the loader from the file extension", func() {
		dir := GinkgoT().TempDir()

		txtPath := filepath.Join(dir, "input.dat")
		Expect(os.WriteFile(txtPath, []byte(sampleInput), 0o644)).To(Succeed())

		yamlPath := filepath.Join(dir, "input.yaml")
		f, err := os.Create(yamlPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(program.WriteYAML(f, regs, prog)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		r1, p1, err := program.LoadFile(txtPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(r1.A).To(Equal(uint64(729)))
		Expect(p1.Len()).To(Equal(3))

		r2, p2, err := program.LoadFile(yamlPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(r2).To(Equal(regs))
		Expect(p2).To(Equal(prog))

		_, _, err = program.LoadFile(filepath.Join(dir, "missing.dat"))
		Expect(err).To(HaveOccurred())
	})

	It("should join values with commas", func() {
		Expect(program.JoinBytes([]uint8{4, 6, 3})).To(Equal("4,6,3"))
		Expect(program.JoinBytes(nil)).To(Equal(""))
	})
})
