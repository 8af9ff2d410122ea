package vm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/endec"
	"github.com/qexat/marrow/vm"
)

func word(v uint64) [8]byte {
	return endec.EncodeInteger(v, true)
}

var _ = Describe("ALU", func() {
	It("adds without setting Overflow when the sum fits in 64 bits", func() {
		alu := &vm.ALU{}
		result := alu.Execute(vm.Add{Left: word(2), Right: word(3)})

		Expect(endec.DecodeInteger(result)).To(Equal(uint64(5)))
		Expect(alu.Flags.Has(vm.Overflow)).To(BeFalse())
	})

	It("sets Overflow when an add wraps past 2^64-1", func() {
		alu := &vm.ALU{}
		alu.Execute(vm.Add{Left: word(^uint64(0)), Right: word(1)})

		Expect(alu.Flags.Has(vm.Overflow)).To(BeTrue())
	})

	It("sets Overflow on a subtraction that borrows", func() {
		alu := &vm.ALU{}
		result := alu.Execute(vm.Sub{Left: word(0), Right: word(1)})

		Expect(alu.Flags.Has(vm.Overflow)).To(BeTrue())
		Expect(endec.DecodeInteger(result)).To(Equal(^uint64(0)))
	})

	It("sets Overflow when a multiplication overflows 64 bits", func() {
		alu := &vm.ALU{}
		big := word(1 << 40)
		alu.Execute(vm.Mul{Left: big, Right: big})

		Expect(alu.Flags.Has(vm.Overflow)).To(BeTrue())
	})

	It("sets DivByZero and returns zero on division by zero", func() {
		alu := &vm.ALU{}
		result := alu.Execute(vm.Div{Left: word(10), Right: word(0)})

		Expect(alu.Flags.Has(vm.DivByZero)).To(BeTrue())
		Expect(endec.DecodeInteger(result)).To(Equal(uint64(0)))
	})

	It("sets DivByZero and returns zero on modulo by zero", func() {
		alu := &vm.ALU{}
		result := alu.Execute(vm.Mod{Left: word(10), Right: word(0)})

		Expect(alu.Flags.Has(vm.DivByZero)).To(BeTrue())
		Expect(endec.DecodeInteger(result)).To(Equal(uint64(0)))
	})

	It("divides and mods correctly when the divisor is nonzero", func() {
		alu := &vm.ALU{}

		quotient := alu.Execute(vm.Div{Left: word(10), Right: word(3)})
		Expect(endec.DecodeInteger(quotient)).To(Equal(uint64(3)))

		alu2 := &vm.ALU{}
		remainder := alu2.Execute(vm.Mod{Left: word(10), Right: word(3)})
		Expect(endec.DecodeInteger(remainder)).To(Equal(uint64(1)))
	})

	It("resets flags at the start of every Execute call", func() {
		alu := &vm.ALU{}
		alu.Execute(vm.Div{Left: word(1), Right: word(0)})
		Expect(alu.Flags.Has(vm.DivByZero)).To(BeTrue())

		alu.Execute(vm.Add{Left: word(1), Right: word(1)})
		Expect(alu.Flags.Has(vm.DivByZero)).To(BeFalse())
	})
})
