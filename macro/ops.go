// Package macro lowers SSA instructions to a flat sequence of
// register-oriented macro-ops against a 15-register pool. Register 0 is
// reserved and never allocated; it stands for the implicit zero operand
// unary lowering needs.
package macro

import "github.com/qexat/marrow/endec"

// Register is a register number in 0..=15; 0 is reserved.
type Register int

// Address is the heap slot an SSA abstract address maps onto directly.
type Address int

// Op is the sealed interface over Marrow's macro-op instruction set.
type Op interface {
	opNode()
}

// Load copies 8 bytes from heap slot Source into register Destination.
type Load struct {
	Destination Register
	Source      Address
}

// Store copies 8 bytes from register Source into heap slot Destination.
type Store struct {
	Destination Address
	Source      Register
}

// StoreImmediate writes an 8-byte immediate literal directly to a heap
// slot, bypassing the register file.
type StoreImmediate struct {
	Destination Address
	Type        endec.Type
	Immediate   [8]byte
}

// BinaryArith executes a two-operand ALU function over two registers,
// writing the result to a third.
type BinaryArith struct {
	Func        BinaryArithFunc
	Type        endec.Type
	Destination Register
	Left        Register
	Right       Register
}

// UnaryArith executes a one-operand ALU function, writing the result to
// a destination register.
type UnaryArith struct {
	Func        UnaryArithFunc
	Type        endec.Type
	Destination Register
	Source      Register
}

// DumpMemory requests a debug-level hex dump of one 256-byte heap section.
type DumpMemory struct {
	SectionID int
}

func (Load) opNode()           {}
func (Store) opNode()          {}
func (StoreImmediate) opNode() {}
func (BinaryArith) opNode()    {}
func (UnaryArith) opNode()     {}
func (DumpMemory) opNode()     {}
