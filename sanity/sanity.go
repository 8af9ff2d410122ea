// Package sanity implements the depth-first pass that collects every
// ast.Invalid node in a parse tree. A tree is "sane" iff the pass finds
// none.
package sanity

import "github.com/qexat/marrow/ast"

// Checker walks a parse tree collecting Invalid nodes.
type Checker struct {
	invalid []*ast.Invalid
}

// NewChecker returns an empty Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check walks tree and returns every Invalid node found, depth-first.
// Unlike the other node kinds, an Invalid node's own SubExprs are not
// recursed into: it is a leaf to this walk even though it carries child
// expressions for diagnostic rendering.
func (c *Checker) Check(tree ast.Expr) []*ast.Invalid {
	c.invalid = nil
	c.walk(tree)

	return c.invalid
}

// IsSane reports whether tree contains no Invalid node.
func (c *Checker) IsSane(tree ast.Expr) bool {
	return len(c.Check(tree)) == 0
}

func (c *Checker) walk(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Binary:
		c.walk(e.Left)
		c.walk(e.Right)
	case *ast.Block:
		for _, sub := range e.Exprs {
			c.walk(sub)
		}
	case *ast.Grouping:
		c.walk(e.Inner)
	case *ast.Invalid:
		c.invalid = append(c.invalid, e)
	case *ast.LiteralScalar:
		// leaf, nothing to collect
	case *ast.Module:
		c.walk(e.Inner)
	case *ast.Unary:
		c.walk(e.Operand)
	}
}
