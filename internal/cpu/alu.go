package cpu

// ALU implements the arithmetic and logic primitives of the CPU,
// computing results and updating the flags held in Registers.
type ALU struct {
	r *Registers
}

// NewALU returns an ALU operating on the flags of r.
func NewALU(r *Registers) *ALU {
	return &ALU{r: r}
}

func (a *ALU) carry() uint8 {
	if a.r.IsSet(FlagCarry) {
		return 1
	}
	return 0
}

// Inc8 increments n by 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (a *ALU) Inc8(n uint8) uint8 {
	result := n + 1
	a.r.Place(result == 0, FlagZero)
	a.r.Unset(FlagSubtract)
	a.r.CheckHCarry8(n, 1, result)
	return result
}

// Dec8 decrements n by 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (a *ALU) Dec8(n uint8) uint8 {
	result := n - 1
	a.r.Place(result == 0, FlagZero)
	a.r.Set(FlagSubtract)
	a.r.CheckHCarry8(n, 1, result)
	return result
}

// Inc16 increments nn by 1. No flags are affected.
func (a *ALU) Inc16(nn uint16) uint16 {
	return nn + 1
}

// Dec16 decrements nn by 1. No flags are affected.
func (a *ALU) Dec16(nn uint16) uint16 {
	return nn - 1
}

// Add16 adds x and y.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (a *ALU) Add16(x, y uint16) uint16 {
	sum := uint32(x) + uint32(y)
	result := uint16(sum)
	a.r.Unset(FlagSubtract)
	a.r.CheckHCarry16(x, y, result)
	a.r.Place(sum > 0xFFFF, FlagCarry)
	return result
}

// Add8 adds x and y.
//
//	ADD A, n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (a *ALU) Add8(x, y uint8) uint8 {
	return a.add8(x, y, 0)
}

// Adc8 adds x, y and the carry flag.
//
//	ADC A, n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (a *ALU) Adc8(x, y uint8) uint8 {
	return a.add8(x, y, a.carry())
}

func (a *ALU) add8(x, y, carry uint8) uint8 {
	sum := uint16(x) + uint16(y) + uint16(carry)
	result := uint8(sum)
	a.r.FlushFlags(0)
	a.r.Place(result == 0, FlagZero)
	a.r.CheckHCarry8(x, y, result)
	a.r.Place(sum > 0xFF, FlagCarry)
	return result
}

// Sub8 subtracts y from x.
//
//	SUB n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (a *ALU) Sub8(x, y uint8) uint8 {
	return a.sub8(x, y, 0)
}

// Sbc8 subtracts y and the carry flag from x.
//
//	SBC A, n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (a *ALU) Sbc8(x, y uint8) uint8 {
	return a.sub8(x, y, a.carry())
}

func (a *ALU) sub8(x, y, carry uint8) uint8 {
	result := x - y - carry
	a.r.FlushFlags(FlagSubtract)
	a.r.Place(result == 0, FlagZero)
	a.r.CheckHCarry8(x, y, result)
	a.r.Place(uint16(y)+uint16(carry) > uint16(x), FlagCarry)
	return result
}

// AddSP adds the signed offset e to sp. Carry and half carry are
// computed on the low byte, as an unsigned 8-bit addition.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (a *ALU) AddSP(sp uint16, e int8) uint16 {
	offset := uint16(int16(e))
	result := sp + offset
	carries := sp ^ offset ^ result
	a.r.FlushFlags(0)
	a.r.Place(carries&0x10 != 0, FlagHalfCarry)
	a.r.Place(carries&0x100 != 0, FlagCarry)
	return result
}

// And performs a bitwise AND operation on x and y.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (a *ALU) And(x, y uint8) uint8 {
	result := x & y
	a.r.FlushFlags(FlagHalfCarry)
	a.r.Place(result == 0, FlagZero)
	return result
}

// Or performs a bitwise OR operation on x and y.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (a *ALU) Or(x, y uint8) uint8 {
	result := x | y
	a.r.FlushFlags(0)
	a.r.Place(result == 0, FlagZero)
	return result
}

// Xor performs a bitwise XOR operation on x and y.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (a *ALU) Xor(x, y uint8) uint8 {
	result := x ^ y
	a.r.FlushFlags(0)
	a.r.Place(result == 0, FlagZero)
	return result
}

// Cp compares y to x, setting the flags as Sub8 would, whilst
// discarding the result.
func (a *ALU) Cp(x, y uint8) {
	a.sub8(x, y, 0)
}

// DAA decimal adjusts n, correcting the result of the previous
// addition or subtraction to packed BCD. The correction is chosen
// from the N, H and C flags left by that operation.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (a *ALU) DAA(n uint8) uint8 {
	carry := a.r.IsSet(FlagCarry)
	if !a.r.IsSet(FlagSubtract) {
		if carry || n > 0x99 {
			n += 0x60
			carry = true
		}
		if a.r.IsSet(FlagHalfCarry) || n&0x0F > 0x09 {
			n += 0x06
		}
	} else {
		if carry {
			n -= 0x60
		}
		if a.r.IsSet(FlagHalfCarry) {
			n -= 0x06
		}
	}
	a.r.Place(n == 0, FlagZero)
	a.r.Unset(FlagHalfCarry)
	a.r.Place(carry, FlagCarry)
	return n
}

// CPL complements n.
//
// Flags affected:
//
//	N - Set.
//	H - Set.
func (a *ALU) CPL(n uint8) uint8 {
	a.r.Set(FlagSubtract | FlagHalfCarry)
	return ^n
}

// SCF sets the carry flag, resetting N and H.
func (a *ALU) SCF() {
	a.r.Unset(FlagSubtract | FlagHalfCarry)
	a.r.Set(FlagCarry)
}

// CCF complements the carry flag, resetting N and H.
func (a *ALU) CCF() {
	a.r.Unset(FlagSubtract | FlagHalfCarry)
	a.r.Flip(FlagCarry)
}

// shifted flushes the flags left by every rotate and shift, where
// out is the bit shifted out of n.
func (a *ALU) shifted(result uint8, out bool) uint8 {
	a.r.FlushFlags(0)
	a.r.Place(result == 0, FlagZero)
	a.r.Place(out, FlagCarry)
	return result
}

// RLC rotates n left. Bit 7 is copied to both bit 0 and the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (a *ALU) RLC(n uint8) uint8 {
	return a.shifted(n<<1|n>>7, n&0x80 != 0)
}

// RRC rotates n right. Bit 0 is copied to both bit 7 and the carry flag.
func (a *ALU) RRC(n uint8) uint8 {
	return a.shifted(n>>1|n<<7, n&0x01 != 0)
}

// RL rotates n left through the carry flag.
func (a *ALU) RL(n uint8) uint8 {
	return a.shifted(n<<1|a.carry(), n&0x80 != 0)
}

// RR rotates n right through the carry flag.
func (a *ALU) RR(n uint8) uint8 {
	return a.shifted(n>>1|a.carry()<<7, n&0x01 != 0)
}

// SLA shifts n left into the carry flag. Bit 0 is reset.
func (a *ALU) SLA(n uint8) uint8 {
	return a.shifted(n<<1, n&0x80 != 0)
}

// SRA shifts n right into the carry flag. Bit 7 is unchanged.
func (a *ALU) SRA(n uint8) uint8 {
	return a.shifted(n>>1|n&0x80, n&0x01 != 0)
}

// Swap swaps the upper and lower nibbles of n.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (a *ALU) Swap(n uint8) uint8 {
	return a.shifted(n<<4|n>>4, false)
}

// SRL shifts n right into the carry flag. Bit 7 is reset.
func (a *ALU) SRL(n uint8) uint8 {
	return a.shifted(n>>1, n&0x01 != 0)
}

// Bit tests bit b of n.
//
//	BIT b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (a *ALU) Bit(b uint8, n uint8) {
	a.r.Place(n&(1<<b) == 0, FlagZero)
	a.r.Unset(FlagSubtract)
	a.r.Set(FlagHalfCarry)
}

// Res resets bit b of n.
func (a *ALU) Res(b uint8, n uint8) uint8 {
	return n &^ (1 << b)
}

// Set sets bit b of n.
func (a *ALU) Set(b uint8, n uint8) uint8 {
	return n | 1<<b
}
