package lexer_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qexat/marrow/lexer"
	"github.com/qexat/marrow/token"
)

func allKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

var _ = Describe("Lexer", func() {
	It("tokenizes a simple arithmetic expression", func() {
		lx := lexer.New(strings.NewReader("1 + 2;"), "<test>")

		tok := lx.Next()
		Expect(tok.Kind).To(Equal(token.Integer))
		Expect(tok.Lexeme).To(Equal("1"))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.Plus))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.Integer))
		Expect(tok.Lexeme).To(Equal("2"))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.Semicolon))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.EOF))
	})

	It("returns EOF forever once the stream is exhausted", func() {
		lx := lexer.New(strings.NewReader("1"), "<test>")

		lx.Next()
		for i := 0; i < 5; i++ {
			Expect(lx.Next().Kind).To(Equal(token.EOF))
		}
	})

	It("scans float literals with a decimal tail", func() {
		lx := lexer.New(strings.NewReader("3.14"), "<test>")

		tok := lx.Next()
		Expect(tok.Kind).To(Equal(token.Float))
		Expect(tok.Lexeme).To(Equal("3.14"))
	})

	It("recognizes keyword lexemes", func() {
		lx := lexer.New(strings.NewReader("end in mod"), "<test>")

		Expect(allKinds(lx)).To(Equal([]token.Kind{
			token.End, token.In, token.Mod, token.EOF,
		}))
	})

	It("produces Invalid for an unrecognized symbol", func() {
		lx := lexer.New(strings.NewReader("foo @"), "<test>")

		tok := lx.Next()
		Expect(tok.Kind).To(Equal(token.Invalid))
		Expect(tok.Lexeme).To(Equal("foo"))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.Invalid))
		Expect(tok.Lexeme).To(Equal("@"))
	})

	It("skips whitespace between tokens without including it in spans", func() {
		lx := lexer.New(strings.NewReader("  1   ;"), "<test>")

		tok := lx.Next()
		Expect(tok.Lexeme).To(Equal("1"))

		tok = lx.Next()
		Expect(tok.Kind).To(Equal(token.Semicolon))
	})

	It("produces spans whose source slice equals the lexeme", func() {
		source := "in 12 + 3.5 end"
		lx := lexer.New(strings.NewReader(source), "<test>")

		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}

			Expect(source[tok.Span.Start:tok.Span.End]).To(Equal(tok.Lexeme))
		}
	})
})
