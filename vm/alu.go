// Package vm implements Marrow's register-based virtual machine: an ALU
// computing typed arithmetic over raw 8-byte operands with status flags,
// and a Machine that drives macro-ops against a 16-register file and a
// 64 KiB byte-addressable heap.
package vm

import (
	"math/bits"

	"github.com/qexat/marrow/endec"
)

// Flags is the ALU's status bit set, reset at the start of every
// operation.
type Flags int

const (
	Overflow Flags = 1 << iota
	Negative
	DivByZero
)

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// ALUOp is the sealed interface over the five arithmetic operations the
// ALU can execute, each over two raw 8-byte operands.
type ALUOp interface {
	aluOpNode()
}

type Add struct{ Left, Right [8]byte }
type Sub struct{ Left, Right [8]byte }
type Mul struct{ Left, Right [8]byte }
type Div struct{ Left, Right [8]byte }
type Mod struct{ Left, Right [8]byte }

func (Add) aluOpNode() {}
func (Sub) aluOpNode() {}
func (Mul) aluOpNode() {}
func (Div) aluOpNode() {}
func (Mod) aluOpNode() {}

// ALU is stateless except for its flag bitset, reset at the start of
// every Execute call.
type ALU struct {
	Flags Flags
}

func (a *ALU) resetFlags() {
	a.Flags = 0
}

// Execute dispatches op and returns its raw 8-byte result, updating Flags
// as a side effect.
func (a *ALU) Execute(op ALUOp) [8]byte {
	a.resetFlags()

	switch o := op.(type) {
	case Add:
		return a.add(o.Left, o.Right)
	case Sub:
		return a.sub(o.Left, o.Right)
	case Mul:
		return a.mul(o.Left, o.Right)
	case Div:
		return a.div(o.Left, o.Right)
	case Mod:
		return a.mod(o.Left, o.Right)
	default:
		panic("vm: unhandled ALU op")
	}
}

func (a *ALU) add(leftBuf, rightBuf [8]byte) [8]byte {
	left := endec.DecodeInteger(leftBuf)
	right := endec.DecodeInteger(rightBuf)

	sum, carry := bits.Add64(left, right, 0)
	if carry != 0 {
		a.Flags |= Overflow
	}

	return endec.EncodeInteger(sum, true)
}

func (a *ALU) sub(leftBuf, rightBuf [8]byte) [8]byte {
	left := endec.DecodeInteger(leftBuf)
	right := endec.DecodeInteger(rightBuf)

	diff, borrow := bits.Sub64(left, right, 0)
	if borrow != 0 {
		a.Flags |= Overflow
	}

	return endec.EncodeInteger(diff, true)
}

func (a *ALU) mul(leftBuf, rightBuf [8]byte) [8]byte {
	left := endec.DecodeInteger(leftBuf)
	right := endec.DecodeInteger(rightBuf)

	hi, lo := bits.Mul64(left, right)
	if hi != 0 {
		a.Flags |= Overflow
	}

	return endec.EncodeInteger(lo, true)
}

func (a *ALU) div(leftBuf, rightBuf [8]byte) [8]byte {
	left := endec.DecodeInteger(leftBuf)
	right := endec.DecodeInteger(rightBuf)

	if right == 0 {
		a.Flags |= DivByZero

		return [8]byte{}
	}

	return endec.EncodeInteger(left/right, true)
}

func (a *ALU) mod(leftBuf, rightBuf [8]byte) [8]byte {
	left := endec.DecodeInteger(leftBuf)
	right := endec.DecodeInteger(rightBuf)

	if right == 0 {
		a.Flags |= DivByZero

		return [8]byte{}
	}

	return endec.EncodeInteger(left%right, true)
}
