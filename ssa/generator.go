// Package ssa lowers a sane parse tree into a flat, ordered list of SSA
// instructions, each defining a fresh AbstractAddress. There is no
// expr-to-address side table: each recursive visit returns the address
// holding its subexpression's value, so transparent nodes (groupings,
// blocks, modules) simply hand back their inner value's address with no
// lookup to go wrong.
package ssa

import (
	"fmt"

	"github.com/qexat/marrow/ast"
)

// Generator lowers a parse tree to SSA instructions.
type Generator struct {
	instructions []Instruction
	nextAddr     AbstractAddress
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) allocate() AbstractAddress {
	addr := g.nextAddr
	g.nextAddr++

	return addr
}

func (g *Generator) emit(destination AbstractAddress, rvalue RValue) {
	g.instructions = append(g.instructions, Instruction{
		Destination: destination,
		RValue:      rvalue,
	})
}

// Generate lowers tree to SSA instructions. tree must already be sane:
// an ast.Invalid node reaching here is a contract violation (the sanity
// check precedes IR generation) and panics.
func (g *Generator) Generate(tree ast.Expr) []Instruction {
	g.visit(tree)

	return g.instructions
}

// visit lowers expr and returns the address holding its value. Block and
// Module produce no address of their own; visiting one as a bare
// expression is only meaningful as a side effect of visiting its
// children, so the address returned is the last nested value produced,
// for cases where the grammar lets them sit in operand position.
func (g *Generator) visit(expr ast.Expr) AbstractAddress {
	switch e := expr.(type) {
	case *ast.LiteralScalar:
		addr := g.allocate()
		g.emit(addr, Atom{Token: e.Token})

		return addr

	case *ast.Grouping:
		return g.visit(e.Inner)

	case *ast.Module:
		return g.visit(e.Inner)

	case *ast.Block:
		var last AbstractAddress
		for _, sub := range e.Exprs {
			last = g.visit(sub)
		}

		return last

	case *ast.Unary:
		right := g.visit(e.Operand)
		addr := g.allocate()
		g.emit(addr, UnaryRValue{Operator: e.Operator, Right: right})

		return addr

	case *ast.Binary:
		left := g.visit(e.Left)
		right := g.visit(e.Right)
		addr := g.allocate()
		g.emit(addr, BinaryRValue{Operator: e.Operator, Left: left, Right: right})

		return addr

	case *ast.Invalid:
		panic(fmt.Sprintf("found invalid expression while generating SSA IR: %s", e.Message))

	default:
		panic(fmt.Sprintf("ssa: unhandled expression type %T", expr))
	}
}
