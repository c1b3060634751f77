package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chronos/isa"
)

var _ = Describe("ISA", func() {
	It("should name every opcode", func() {
		names := []string{}
		for op := isa.Opcode(0); op < isa.NumOpcodes; op++ {
			names = append(names, op.String())
		}

		Expect(names).To(Equal([]string{
			"adv", "bxl", "bst", "jnz", "bxc", "out", "bdv", "cdv",
		}))
		Expect(isa.Default.Name()).To(ContainSubstring("3-bit"))
	})

	It("should report invalid opcodes", func() {
		Expect(isa.Opcode(8).Valid()).To(BeFalse())
		Expect(isa.Opcode(8).String()).To(Equal("op8"))
		Expect(isa.Opcode(8).OperandKind()).To(Equal(isa.KindLiteral))
	})

	DescribeTable("operand kinds",
		func(op isa.Opcode, kind isa.OperandKind) {
			Expect(op.OperandKind()).To(Equal(kind))
		},
		Entry("adv", isa.ADV, isa.KindCombo),
		Entry("bxl", isa.BXL, isa.KindLiteral),
		Entry("bst", isa.BST, isa.KindCombo),
		Entry("jnz", isa.JNZ, isa.KindLiteral),
		Entry("bxc", isa.BXC, isa.KindIgnored),
		Entry("out", isa.OUT, isa.KindCombo),
		Entry("bdv", isa.BDV, isa.KindCombo),
		Entry("cdv", isa.CDV, isa.KindCombo),
	)

	It("should look up mnemonics case-insensitively", func() {
		op, ok := isa.Lookup(" OUT ")
		Expect(ok).To(BeTrue())
		Expect(op).To(Equal(isa.OUT))

		_, ok = isa.Lookup("hlt")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Instruction", func() {
	DescribeTable("disassembly",
		func(opcode, operand uint8, text string) {
			inst := isa.NewInstruction(opcode, operand)
			Expect(inst.String()).To(Equal(text))

			back, err := isa.Parse(text)
			Expect(err).NotTo(HaveOccurred())
			if inst.Opcode.OperandKind() == isa.KindIgnored {
				Expect(back.Opcode).To(Equal(inst.Opcode))
			} else {
				Expect(back).To(Equal(inst))
			}
		},
		Entry("combo literal", uint8(0), uint8(3), "adv 3"),
		Entry("combo register A", uint8(5), uint8(4), "out A"),
		Entry("combo register B", uint8(2), uint8(5), "bst B"),
		Entry("combo register C", uint8(6), uint8(6), "bdv C"),
		Entry("literal 4 stays a number", uint8(1), uint8(4), "bxl 4"),
		Entry("combo 7 stays a number", uint8(5), uint8(7), "out 7"),
		Entry("jump", uint8(3), uint8(0), "jnz 0"),
		Entry("ignored operand", uint8(4), uint8(1), "bxc"),
	)

	It("should name a register only for 4, 5 and 6", func() {
		Expect(isa.NewOperand(7).ComboRegister()).To(BeEmpty())
		Expect(isa.NewOperand(3).ComboRegister()).To(BeEmpty())
		Expect(isa.NewOperand(6).ComboRegister()).To(Equal("C"))
	})

	It("should reject malformed text", func() {
		for _, text := range []string{"", "nop 1", "adv", "bxl 8", "bxl A", "adv 1 2", "out 3x"} {
			_, err := isa.Parse(text)
			Expect(err).To(HaveOccurred(), text)
		}
	})
})
