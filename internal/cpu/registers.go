package cpu

import "fmt"

// Pair is the index of a 16-bit register pair.
type Pair = uint8

const (
	AF Pair = iota
	BC
	DE
	HL
	SP
	PC
)

// Operand indexes, as encoded in the 3-bit register field of an
// opcode. RegHL refers to the memory at (HL) and has no register.
const (
	RegB uint8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHL
	RegA
)

// Flag is a bit mask over the F register.
type Flag = uint8

const (
	FlagZero      Flag = 0x80
	FlagSubtract  Flag = 0x40
	FlagHalfCarry Flag = 0x20
	FlagCarry     Flag = 0x10
)

// Registers holds the six 16-bit register pairs of the CPU. A, B,
// C, D, E, H, L and F are views onto the high and low bytes of the
// first four pairs. The low nibble of F is always zero.
type Registers struct {
	pairs [6]uint16
}

// Pair returns the value of the register pair p.
func (r *Registers) Pair(p Pair) uint16 {
	return r.pairs[p]
}

// SetPair sets the value of the register pair p.
func (r *Registers) SetPair(p Pair, value uint16) {
	if p == AF {
		value &= 0xFFF0
	}
	r.pairs[p] = value
}

func (r *Registers) GetHigh(p Pair) uint8 {
	return uint8(r.pairs[p] >> 8)
}

func (r *Registers) GetLow(p Pair) uint8 {
	return uint8(r.pairs[p])
}

func (r *Registers) SetHigh(p Pair, value uint8) {
	r.pairs[p] = uint16(value)<<8 | r.pairs[p]&0x00FF
}

func (r *Registers) SetLow(p Pair, value uint8) {
	if p == AF {
		value &= 0xF0
	}
	r.pairs[p] = r.pairs[p]&0xFF00 | uint16(value)
}

// operand maps an operand index to the pair holding it, and
// whether it is the high byte of that pair.
func operandPair(index uint8) (Pair, bool) {
	switch index {
	case RegB:
		return BC, true
	case RegC:
		return BC, false
	case RegD:
		return DE, true
	case RegE:
		return DE, false
	case RegH:
		return HL, true
	case RegL:
		return HL, false
	case RegA:
		return AF, true
	}
	panic(fmt.Sprintf("invalid register operand: %d", index))
}

// GetByte returns the 8-bit register addressed by an operand index.
// RegHL has no register and panics.
func (r *Registers) GetByte(index uint8) uint8 {
	p, high := operandPair(index)
	if high {
		return r.GetHigh(p)
	}
	return r.GetLow(p)
}

// SetByte sets the 8-bit register addressed by an operand index.
func (r *Registers) SetByte(index uint8, value uint8) {
	p, high := operandPair(index)
	if high {
		r.SetHigh(p, value)
	} else {
		r.SetLow(p, value)
	}
}

func (r *Registers) A() uint8       { return r.GetHigh(AF) }
func (r *Registers) SetA(v uint8)   { r.SetHigh(AF, v) }
func (r *Registers) F() uint8       { return r.GetLow(AF) }
func (r *Registers) PC() uint16     { return r.pairs[PC] }
func (r *Registers) SetPC(v uint16) { r.pairs[PC] = v }
func (r *Registers) SP() uint16     { return r.pairs[SP] }
func (r *Registers) SetSP(v uint16) { r.pairs[SP] = v }

// Set sets the given flags.
func (r *Registers) Set(flags Flag) {
	r.SetLow(AF, r.F()|flags)
}

// Unset clears the given flags.
func (r *Registers) Unset(flags Flag) {
	r.SetLow(AF, r.F()&^flags)
}

// Place sets the given flags if cond is true, otherwise
// clears them.
func (r *Registers) Place(cond bool, flags Flag) {
	if cond {
		r.Set(flags)
	} else {
		r.Unset(flags)
	}
}

// IsSet returns true if all the given flags are set.
func (r *Registers) IsSet(flags Flag) bool {
	return r.F()&flags == flags
}

// Flip toggles the given flags.
func (r *Registers) Flip(flags Flag) {
	r.SetLow(AF, r.F()^flags)
}

// FlushFlags replaces the whole of F with flags.
func (r *Registers) FlushFlags(flags Flag) {
	r.SetLow(AF, flags)
}

// CheckHCarry8 places the half carry flag for the 8-bit operation
// a op b = result, by detecting a carry (or borrow) into bit 4.
func (r *Registers) CheckHCarry8(a, b, result uint8) {
	r.Place((a^b^result)&0x10 != 0, FlagHalfCarry)
}

// CheckHCarry16 places the half carry flag for the 16-bit addition
// a + b = result, by detecting a carry into bit 12.
func (r *Registers) CheckHCarry16(a, b, result uint16) {
	r.Place((a^b^result)&0x1000 != 0, FlagHalfCarry)
}

// String returns a dump of every register pair.
func (r *Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X",
		r.pairs[AF], r.pairs[BC], r.pairs[DE], r.pairs[HL], r.pairs[SP], r.pairs[PC])
}
