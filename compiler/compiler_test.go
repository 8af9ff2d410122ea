package compiler_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/ast"
	"github.com/qexat/marrow/compiler"
	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/vm"
)

var _ = Describe("Compiler", func() {
	It("compiles `1 + 2` to a 0 exit code and produces macro-ops", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("1 + 2"), "<test>")

		Expect(code).To(Equal(0))
		Expect(result.Ops).NotTo(BeEmpty())
		Expect(result.Invalid).To(BeEmpty())
	})

	It("executing `1 + 2`'s ops leaves 3 at the top-level address", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("1 + 2"), "<test>")
		Expect(code).To(Equal(0))

		m := vm.NewMachine()
		m.Execute(result.Ops, false)

		Expect(m.DecodeHeapInteger(2)).To(Equal(uint64(3)))
	})

	It("respects precedence for `2 * 3 + 4`, leaving 10 at the top-level address", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("2 * 3 + 4"), "<test>")
		Expect(code).To(Equal(0))
		Expect(result.Instructions).To(HaveLen(5))

		m := vm.NewMachine()
		m.Execute(result.Ops, false)

		Expect(m.DecodeHeapInteger(4)).To(Equal(uint64(10)))
	})

	It("returns 1 and collects an Invalid node for `1 +`", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("1 +"), "<test>")

		Expect(code).To(Equal(1))
		Expect(result.Invalid).To(HaveLen(1))
		Expect(result.Invalid[0].Message).To(ContainSubstring("unexpected token"))
	})

	It("returns 1 and reports a missing ')' for `(1 + 2`", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("(1 + 2"), "<test>")

		Expect(code).To(Equal(1))
		Expect(result.Invalid).To(HaveLen(1))
		Expect(result.Invalid[0].Message).To(ContainSubstring("missing expected ')'"))
	})

	It("surfaces a DIV_BY_ZERO warning and a zeroed result for `10 / 0`", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("10 / 0"), "<test>")
		Expect(code).To(Equal(0))

		collector := &diag.Collector{}
		m := vm.NewMachine(vm.WithSink(collector))
		m.Execute(result.Ops, false)

		Expect(collector.Has(diag.Warning)).To(BeTrue())
		Expect(m.DecodeHeapInteger(2)).To(Equal(uint64(0)))
	})

	It("builds an in/end block as a sequence of expressions", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("in 1; 2; end"), "<test>")

		Expect(code).To(Equal(0))
		Expect(result.ParseTree).To(BeAssignableToTypeOf(&ast.Block{}))
	})

	It("lays out `in 1; 2; 3 end`'s literals in the first three heap slots", func() {
		c := compiler.New(diag.Discard, compiler.Config{})
		code, result := c.Compile(strings.NewReader("in 1; 2; 3 end"), "<test>")
		Expect(code).To(Equal(0))
		Expect(result.Instructions).To(HaveLen(3))

		m := vm.NewMachine()
		m.Execute(result.Ops, false)

		Expect(m.DecodeHeapInteger(0)).To(Equal(uint64(1)))
		Expect(m.DecodeHeapInteger(1)).To(Equal(uint64(2)))
		Expect(m.DecodeHeapInteger(2)).To(Equal(uint64(3)))
	})
})
