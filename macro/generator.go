package macro

import (
	"fmt"
	"strconv"

	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/endec"
	"github.com/qexat/marrow/ssa"
	"github.com/qexat/marrow/token"
)

const (
	minRegister = Register(1)
	maxRegister = Register(15)
)

// Generator lowers SSA instructions to macro-ops over a free-list
// register pool. The pool is a stack: registers are handed out lowest
// first on a fresh generator, but once a register is freed and reused
// the order becomes last-freed-first.
type Generator struct {
	ops  []Op
	pool []Register

	sink diag.Sink
}

// NewGenerator returns a Generator with all 15 registers free.
func NewGenerator(sink diag.Sink) *Generator {
	pool := make([]Register, 0, maxRegister)
	for r := maxRegister; r >= minRegister; r-- {
		pool = append(pool, r)
	}

	return &Generator{pool: pool, sink: sink}
}

// allocate pops the top of the register stack. It panics if the pool is
// exhausted, a contract violation rather than a user error.
func (g *Generator) allocate() Register {
	if len(g.pool) == 0 {
		panic("macro: critical error: no available registers")
	}

	top := len(g.pool) - 1
	r := g.pool[top]
	g.pool = g.pool[:top]

	return r
}

// free pushes r back onto the register stack. It panics on a double free,
// a contract violation.
func (g *Generator) free(r Register) {
	for _, held := range g.pool {
		if held == r {
			panic(fmt.Sprintf("macro: cannot free register %#x: already freed", r))
		}
	}

	g.pool = append(g.pool, r)
}

func (g *Generator) freeAll(regs ...Register) {
	for _, r := range regs {
		g.free(r)
	}
}

func (g *Generator) addOps(ops ...Op) {
	g.ops = append(g.ops, ops...)
}

func (g *Generator) lowerAtom(destination Address, tok token.Token) {
	var typ endec.Type
	var immediate [8]byte

	switch tok.Kind {
	case token.Integer:
		// TODO: check if the integer literal fits in 64 bits
		value, _ := strconv.ParseUint(tok.Lexeme, 10, 64)
		typ = endec.Integer
		immediate = endec.EncodeInteger(value, true)
	case token.Float:
		// TODO: check if the float literal fits in 64 bits
		value, _ := strconv.ParseFloat(tok.Lexeme, 64)
		typ = endec.Float
		immediate = endec.EncodeFloat(value)
	default:
		panic(fmt.Sprintf("macro: unexpected literal token kind %s", tok.Kind))
	}

	g.addOps(StoreImmediate{Destination: destination, Type: typ, Immediate: immediate})
}

func (g *Generator) lowerBinary(
	kind token.Kind,
	destination Address,
	left, right Address,
) {
	rDest := g.allocate()
	rLeft := g.allocate()
	rRight := g.allocate()

	fn := BinaryFuncFor[kind]

	// The IR is untyped, so the arithmetic type is always INTEGER for
	// now; a typed IR would supply it instead of hardcoding it here.
	g.addOps(
		Load{Destination: rLeft, Source: left},
		Load{Destination: rRight, Source: right},
		BinaryArith{Func: fn, Type: endec.Integer, Destination: rDest, Left: rLeft, Right: rRight},
		Store{Destination: destination, Source: rDest},
	)

	g.freeAll(rDest, rLeft, rRight)
}

func (g *Generator) lowerUnary(kind token.Kind, destination Address, right Address) {
	rDest := g.allocate()
	rRight := g.allocate()

	fn := UnaryFuncFor[kind]

	g.addOps(
		Load{Destination: rRight, Source: right},
		UnaryArith{Func: fn, Type: endec.Integer, Destination: rDest, Source: rRight},
		Store{Destination: destination, Source: rDest},
	)

	g.freeAll(rDest, rRight)
}

func (g *Generator) lower(instruction ssa.Instruction) {
	destination := Address(instruction.Destination)

	switch rv := instruction.RValue.(type) {
	case ssa.Atom:
		g.lowerAtom(destination, rv.Token)
	case ssa.BinaryRValue:
		g.lowerBinary(rv.Operator, destination, Address(rv.Left), Address(rv.Right))
	case ssa.UnaryRValue:
		g.lowerUnary(rv.Operator, destination, Address(rv.Right))
	default:
		panic(fmt.Sprintf("macro: unhandled rvalue type %T", instruction.RValue))
	}
}

// Generate lowers ir to macro-ops, in order. After lowering, if any
// register in 1..=15 is still allocated, it emits a warning naming each
// one; generation still succeeds, since this is a diagnostic, not a
// contract violation.
func (g *Generator) Generate(ir []ssa.Instruction) []Op {
	for _, instruction := range ir {
		g.lower(instruction)
	}

	var nonfreed []Register
	for r := minRegister; r <= maxRegister; r++ {
		if !g.isFree(r) {
			nonfreed = append(nonfreed, r)
		}
	}

	if len(nonfreed) > 0 {
		g.sink.Emit(diag.Record{
			Kind:    diag.Warning,
			Message: nonfreedRegistersMessage(nonfreed),
		})
	}

	return g.ops
}

func (g *Generator) isFree(r Register) bool {
	for _, held := range g.pool {
		if held == r {
			return true
		}
	}

	return false
}

func nonfreedRegistersMessage(regs []Register) string {
	msg := fmt.Sprintf(
		"macro op generation has finished, but %d register(s) are still allocated\n",
		len(regs),
	)

	for _, r := range regs {
		msg += fmt.Sprintf("register %#x was never freed\n", r)
	}

	return msg
}
