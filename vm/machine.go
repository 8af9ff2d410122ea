package vm

import (
	"fmt"
	"time"

	"github.com/qexat/marrow/diag"
	"github.com/qexat/marrow/endec"
	"github.com/qexat/marrow/macro"
)

const (
	// RegisterCount is the number of general-purpose registers; register
	// 0 is reserved and never targeted by the generator, but it is still
	// addressable storage.
	RegisterCount = 16
	RegisterSize  = 8

	HeapSize     = 0x10000
	SectionSize  = 0x100
	SectionCount = 0x100
)

// Register is a register number in 0..=15.
type Register int

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithSink routes the Machine's diagnostics (overflow/div-by-zero
// warnings, debug dumps) to sink instead of diag.Discard.
func WithSink(sink diag.Sink) Option {
	return func(m *Machine) { m.sink = sink }
}

// Machine executes a flat macro-op program against a register file and a
// byte-addressable heap. It has no fetch/decode cycle and no control
// flow; Execute simply walks the op slice in order.
type Machine struct {
	registers [RegisterCount][RegisterSize]byte
	heap      [HeapSize]byte

	alu ALU

	access []Access
	sink   diag.Sink
}

// NewMachine returns a Machine with a zeroed register file, a zeroed
// heap, and an empty access log.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{sink: diag.Discard}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AccessLog returns the append-only register access log recorded during
// the most recent Execute call.
func (m *Machine) AccessLog() []Access {
	return m.access
}

// Heap returns the raw 64 KiB heap backing store.
func (m *Machine) Heap() *[HeapSize]byte {
	return &m.heap
}

func (m *Machine) getRegisterRaw(r Register) [8]byte {
	m.access = append(m.access, ReadAccess{Number: r})

	return m.registers[r]
}

func (m *Machine) setRegisterRaw(r Register, value [8]byte) {
	m.access = append(m.access, WriteAccess{Number: r, Value: value})

	m.registers[r] = value
}

func (m *Machine) getHeapRaw(address int) [8]byte {
	var buf [8]byte
	copy(buf[:], m.heap[address:address+RegisterSize])

	return buf
}

func (m *Machine) setHeapRaw(address int, value [8]byte) {
	copy(m.heap[address:address+RegisterSize], value[:])
}

func (m *Machine) checkHeapBounds(address int) {
	if address < 0 || address+RegisterSize > HeapSize {
		panic(fmt.Sprintf("vm: out-of-range heap address %#x", address))
	}
}

func (m *Machine) checkRegisterBounds(r Register) {
	if r < 0 || r >= RegisterCount {
		panic(fmt.Sprintf("vm: out-of-range register %#x", r))
	}
}

func (m *Machine) visitLoad(op macro.Load) {
	dst := Register(op.Destination)
	src := int(op.Source) * RegisterSize

	m.checkRegisterBounds(dst)
	m.checkHeapBounds(src)

	m.setRegisterRaw(dst, m.getHeapRaw(src))
}

func (m *Machine) visitStore(op macro.Store) {
	dst := int(op.Destination) * RegisterSize
	src := Register(op.Source)

	m.checkRegisterBounds(src)
	m.checkHeapBounds(dst)

	m.setHeapRaw(dst, m.getRegisterRaw(src))
}

func (m *Machine) visitStoreImmediate(op macro.StoreImmediate) {
	dst := int(op.Destination) * RegisterSize

	m.checkHeapBounds(dst)

	m.setHeapRaw(dst, op.Immediate)
}

func (m *Machine) aluOpFor(fn macro.BinaryArithFunc, left, right [8]byte) ALUOp {
	switch fn {
	case macro.Add:
		return Add{Left: left, Right: right}
	case macro.Sub:
		return Sub{Left: left, Right: right}
	case macro.Mul:
		return Mul{Left: left, Right: right}
	case macro.Div:
		return Div{Left: left, Right: right}
	case macro.Mod:
		return Mod{Left: left, Right: right}
	default:
		panic(fmt.Sprintf("vm: unhandled binary arithmetic function %d", fn))
	}
}

// unaryALUOpFor implements unary POS/NEG as ADD/SUB with an implicit
// zero left operand, the same "register 0 is zero" convention the
// generator relies on.
func (m *Machine) unaryALUOpFor(fn macro.UnaryArithFunc, right [8]byte) ALUOp {
	var zero [8]byte

	switch fn {
	case macro.Pos:
		return Add{Left: zero, Right: right}
	case macro.Neg:
		return Sub{Left: zero, Right: right}
	default:
		panic(fmt.Sprintf("vm: unhandled unary arithmetic function %d", fn))
	}
}

func (m *Machine) visitBinaryArith(op macro.BinaryArith) {
	left := m.getRegisterRaw(Register(op.Left))
	right := m.getRegisterRaw(Register(op.Right))

	result := m.alu.Execute(m.aluOpFor(op.Func, left, right))

	m.reportFlags()

	m.setRegisterRaw(Register(op.Destination), result)
}

func (m *Machine) visitUnaryArith(op macro.UnaryArith) {
	right := m.getRegisterRaw(Register(op.Source))

	result := m.alu.Execute(m.unaryALUOpFor(op.Func, right))

	m.reportFlags()

	m.setRegisterRaw(Register(op.Destination), result)
}

func (m *Machine) reportFlags() {
	if m.alu.Flags.Has(Overflow) {
		m.sink.Emit(diag.Record{Kind: diag.Warning, Message: "overflow detected"})
	}
	if m.alu.Flags.Has(DivByZero) {
		m.sink.Emit(diag.Record{Kind: diag.Warning, Message: "division by zero"})
	}
}

func (m *Machine) visitDumpMemory(op macro.DumpMemory) {
	m.sink.Emit(diag.Record{Kind: diag.Debug, Message: m.dumpMemoryMessage(op.SectionID)})
}

func (m *Machine) dumpMemoryMessage(sectionID int) string {
	start := sectionID * SectionSize
	section := m.heap[start : start+SectionSize]

	msg := fmt.Sprintf("memory dump (section 0x%02x)\n", sectionID)

	for row := 0; row < SectionSize; row += 16 {
		for col := 0; col < 16; col++ {
			if col > 0 {
				msg += " "
			}
			msg += hexByte(section[row+col])
		}
		msg += "\n"
	}

	return msg
}

// hexByte renders a byte as two hex digits, dimming zero bytes with ANSI
// SGR codes so nonzero bytes stand out in a dump.
func hexByte(b byte) string {
	if b == 0 {
		return "\x1b[2m00\x1b[22m"
	}

	return fmt.Sprintf("%02x", b)
}

// Execute runs ops against the register file and heap in order, starting
// from a zeroed register file, a zeroed heap and an empty access log.
// When debug is set, it also logs execution time and the full register
// access log at Debug level.
func (m *Machine) Execute(ops []macro.Op, debug bool) {
	start := time.Now()

	m.registers = [RegisterCount][RegisterSize]byte{}
	m.heap = [HeapSize]byte{}
	m.access = nil

	for _, op := range ops {
		m.dispatch(op)
	}

	if debug {
		m.sink.Emit(diag.Record{
			Kind:    diag.Debug,
			Message: fmt.Sprintf("execution time: %s", time.Since(start)),
		})
		m.sink.Emit(diag.Record{
			Kind:    diag.Debug,
			Message: m.accessLogMessage(),
		})
	}
}

func (m *Machine) dispatch(op macro.Op) {
	switch o := op.(type) {
	case macro.Load:
		m.visitLoad(o)
	case macro.Store:
		m.visitStore(o)
	case macro.StoreImmediate:
		m.visitStoreImmediate(o)
	case macro.BinaryArith:
		m.visitBinaryArith(o)
	case macro.UnaryArith:
		m.visitUnaryArith(o)
	case macro.DumpMemory:
		m.visitDumpMemory(o)
	default:
		panic(fmt.Sprintf("vm: unhandled macro-op type %T", op))
	}
}

func (m *Machine) accessLogMessage() string {
	msg := "register access log\n"

	for _, a := range m.access {
		switch ac := a.(type) {
		case ReadAccess:
			msg += fmt.Sprintf("- read from register %#x\n", ac.Number)
		case WriteAccess:
			msg += fmt.Sprintf("- write to register %#x\n", ac.Number)
		}
	}

	return msg
}

// ReadHeapWord returns the 8-byte word stored at abstract address addr,
// i.e. heap bytes [8*addr, 8*addr+8). Exposed for callers (tests,
// environment) that need to inspect results after Execute returns.
func (m *Machine) ReadHeapWord(addr int) [8]byte {
	offset := addr * RegisterSize

	m.checkHeapBounds(offset)

	return m.getHeapRaw(offset)
}

// DecodeHeapInteger decodes the 8-byte word at abstract address addr as
// an unsigned 64-bit integer.
func (m *Machine) DecodeHeapInteger(addr int) uint64 {
	return endec.DecodeInteger(m.ReadHeapWord(addr))
}

// DecodeHeapFloat decodes the 8-byte word at abstract address addr as a
// binary64 float.
func (m *Machine) DecodeHeapFloat(addr int) float64 {
	return endec.DecodeFloat(m.ReadHeapWord(addr))
}
