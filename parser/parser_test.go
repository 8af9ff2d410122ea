package parser_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/ast"
	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/lexer"
	"github.com/qexat/marrow/parser"
	"github.com/qexat/marrow/token"
)

func parse(src string) (ast.Expr, *diag.Collector) {
	collector := &diag.Collector{}
	lx := lexer.New(strings.NewReader(src), "<test>")
	tree := parser.New(lx, collector).Parse()

	return tree, collector
}

var _ = Describe("Parser", func() {
	It("parses `2 * 3 + 4` respecting precedence: (2*3)+4", func() {
		tree, _ := parse("2 * 3 + 4")

		top, ok := tree.(*ast.Binary)
		Expect(ok).To(BeTrue())
		Expect(top.Operator).To(Equal(token.Plus))

		left, ok := top.Left.(*ast.Binary)
		Expect(ok).To(BeTrue())
		Expect(left.Operator).To(Equal(token.Star))

		_, ok = top.Right.(*ast.LiteralScalar)
		Expect(ok).To(BeTrue())
	})

	It("parses a parenthesized group", func() {
		tree, _ := parse("(1 + 2)")

		grouping, ok := tree.(*ast.Grouping)
		Expect(ok).To(BeTrue())
		Expect(grouping.Inner).To(BeAssignableToTypeOf(&ast.Binary{}))
	})

	It("parses a unary minus", func() {
		tree, _ := parse("-5")

		unary, ok := tree.(*ast.Unary)
		Expect(ok).To(BeTrue())
		Expect(unary.Operator).To(Equal(token.Minus))
	})

	It("emits a warning diagnostic for a float literal", func() {
		_, collector := parse("1.5")

		Expect(collector.Has(diag.Warning)).To(BeTrue())
	})

	It("produces an Invalid node for an unexpected token", func() {
		tree, _ := parse("1 +")

		top, ok := tree.(*ast.Binary)
		Expect(ok).To(BeTrue())

		invalid, ok := top.Right.(*ast.Invalid)
		Expect(ok).To(BeTrue())
		Expect(invalid.Message).To(ContainSubstring("unexpected token"))
	})

	It("produces an Invalid node for a missing closing paren", func() {
		tree, _ := parse("(1 + 2")

		invalid, ok := tree.(*ast.Invalid)
		Expect(ok).To(BeTrue())
		Expect(invalid.Message).To(ContainSubstring("missing expected ')'"))
	})

	It("parses an in/end block as a Block of its expressions", func() {
		tree, _ := parse("in 1; 2 end")

		block, ok := tree.(*ast.Block)
		Expect(ok).To(BeTrue())
		Expect(block.Exprs).To(HaveLen(2))
	})

	It("produces an Invalid node for a block missing 'end'", func() {
		tree, _ := parse("in 1;")

		invalid, ok := tree.(*ast.Invalid)
		Expect(ok).To(BeTrue())
		Expect(invalid.Message).To(ContainSubstring("missing expected 'end'"))
	})
})
