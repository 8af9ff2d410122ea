// Package ast defines Marrow's expression-tree data model: a tagged
// variant over literals, groupings, blocks, modules, unary/binary
// expressions and inline Invalid error nodes. Consumers walk the tree
// with a type switch over the sealed Expr interface.
package ast

import "github.com/qexat/marrow/token"

// LiteralScalarKind distinguishes the two literal shapes the front end
// knows about.
type LiteralScalarKind int

const (
	IntegerLiteral LiteralScalarKind = iota
	FloatLiteral
)

// Expr is the sealed interface every AST node implements. It carries no
// behavior beyond the marker method; consumers type-switch on the
// concrete variant.
type Expr interface {
	exprNode()
}

// LiteralScalar is a leaf node wrapping a single INTEGER or FLOAT token.
type LiteralScalar struct {
	Token token.Token
	Kind  LiteralScalarKind
}

// Grouping is a parenthesized expression; it is transparent to later
// stages and owns no address of its own.
type Grouping struct {
	Inner Expr
}

// Block is a sequence of expressions delimited by `in ... end`.
type Block struct {
	Exprs []Expr
}

// Module wraps a single expression parsed from `mod ...`.
type Module struct {
	Inner Expr
}

// Unary is a prefix `+`/`-` applied to an operand.
type Unary struct {
	Operator token.Kind
	Operand  Expr
}

// Binary is an infix arithmetic expression.
type Binary struct {
	Operator token.Kind
	Left     Expr
	Right    Expr
}

// Invalid represents a parse error encountered inline; SubExprs holds any
// child expressions already parsed before the error was detected, kept
// around for diagnostic rendering.
type Invalid struct {
	Message  string
	Token    token.Token
	SubExprs []Expr
}

func (*LiteralScalar) exprNode() {}
func (*Grouping) exprNode()      {}
func (*Block) exprNode()         {}
func (*Module) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Binary) exprNode()        {}
func (*Invalid) exprNode()       {}
