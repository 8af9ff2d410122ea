package macro

import "github.com/qexat/marrow/token"

// BinaryArithFunc selects which ALU binary operation a BinaryArith op
// executes.
type BinaryArithFunc int

const (
	Add BinaryArithFunc = iota
	Sub
	Mul
	Div
	Mod
)

// UnaryArithFunc selects which ALU unary operation a UnaryArith op
// executes.
type UnaryArithFunc int

const (
	Pos UnaryArithFunc = iota
	Neg
)

// BinaryFuncFor maps a binary operator token to its ALU function.
var BinaryFuncFor = map[token.Kind]BinaryArithFunc{
	token.Plus:    Add,
	token.Minus:   Sub,
	token.Star:    Mul,
	token.Slash:   Div,
	token.Percent: Mod,
}

// UnaryFuncFor maps a unary operator token to its ALU function.
var UnaryFuncFor = map[token.Kind]UnaryArithFunc{
	token.Plus:  Pos,
	token.Minus: Neg,
}
