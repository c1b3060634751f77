package e2e

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/chronos/api"
	"github.com/sarchlab/chronos/core"
	"github.com/sarchlab/chronos/program"
	"github.com/sarchlab/chronos/verify"
)

func load(name string) (program.Registers, program.Program) {
	regs, prog, err := program.LoadFile(filepath.Join("testdata", name))
	Expect(err).NotTo(HaveOccurred())

	return regs, prog
}

func runTimed(regs program.Registers, prog program.Program) *core.Core {
	engine := sim.NewSerialEngine()
	c := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Core")

	c.MapProgram(regs, prog)
	Expect(engine.Run()).To(Succeed())
	Expect(c.Err()).NotTo(HaveOccurred())

	return c
}

var _ = Describe("Scenarios", func() {
	var (
		ctx    context.Context
		driver api.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = api.NewDriverBuilder().Build()
	})

	It("A: prints the octal digits of 729 shifted by one bit", func() {
		regs, prog := load("scenario_a.txt")
		want := []uint8{4, 6, 3, 5, 6, 3, 5, 2, 1, 0}

		out, err := driver.Run(regs, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(want))
		Expect(core.JoinOutput(out)).To(Equal("4,6,3,5,6,3,5,2,1,0"))

		c := runTimed(regs, prog)
		Expect(c.Output()).To(Equal(want))
		Expect(c.Cycles()).To(Equal(uint64(30)))
	})

	It("B: prints the octal digits of 2024", func() {
		regs, prog := load("scenario_b.txt")

		out, err := driver.Run(regs, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]uint8{5, 7, 3, 0}))

		shiftByOne := program.MustFromRaw(0, 1, 5, 4, 3, 0)
		out, err = driver.Run(regs, shiftByOne)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]uint8{4, 2, 5, 6, 7, 7, 7, 7, 3, 1, 0}))

		seed, err := driver.FindMinimalQuineSeed(ctx, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(seed).To(Equal(uint64(117440)))
	})

	It("C: reproduces its own program", func() {
		regs, prog := load("scenario_c.yaml")

		out, err := driver.Run(regs, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(prog.Raw()))

		seed, err := driver.FindMinimalQuineSeed(ctx, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(seed).To(Equal(regs.A))

		report := verify.GenerateReport(regs, prog, 1000)
		Expect(report.LintIssues).To(BeEmpty())
		Expect(report.IsQuine).To(BeTrue())

		c := runTimed(regs, prog)
		Expect(c.Output()).To(Equal(prog.Raw()))
	})

	It("should agree between brute force and digits on scenario C", func() {
		_, prog := load("scenario_c.yaml")

		brute, err := api.NewDriverBuilder().
			WithStrategy(api.StrategyBruteForce).
			WithWorkers(2).
			Build().
			FindMinimalQuineSeed(ctx, prog)
		Expect(err).NotTo(HaveOccurred())

		digits, err := api.NewDriverBuilder().
			WithStrategy(api.StrategyDigits).
			Build().
			FindMinimalQuineSeed(ctx, prog)
		Expect(err).NotTo(HaveOccurred())

		Expect(brute).To(Equal(digits))
	})

	DescribeTable("malformed input",
		func(name string, want error) {
			_, _, err := program.LoadFile(filepath.Join("testdata", name))
			Expect(err).To(MatchError(want))
		},
		Entry("odd-length program", "odd_length.txt", program.ErrOddLength),
		Entry("missing program line", "missing_program.txt", program.ErrMissingProgram),
	)
})
