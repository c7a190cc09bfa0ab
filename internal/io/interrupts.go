package io

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankINT is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankINT = types.Bit0
	// LCDINT is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDINT = types.Bit1
	// TimerINT is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerINT = types.Bit2
	// SerialINT is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialINT = types.Bit3
	// JoypadINT is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low, if the corresponding select
	// bit (types.P1 bit 4 or 5) is set to 0.
	JoypadINT = types.Bit4
)

// IRQVector returns the vector of the highest priority interrupt
// that is both requested and enabled, and clears it from the
// types.IF register. It returns 0 if no interrupt is pending.
//
// Only one interrupt is serviced at a time, and they are
// serviced in the order of priority:
//
//   - VBlank
//   - LCD
//   - Timer
//   - Serial
//   - Joypad
func (b *Bus) IRQVector() uint16 {
	pending := b.data[types.IE] & b.data[types.IF]
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if pending&flag == flag {
			b.data[types.IF] &^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// RaiseInterrupt raises the specified interrupt by setting
// the flag in the types.IF register.
func (b *Bus) RaiseInterrupt(interrupt byte) {
	b.data[types.IF] |= interrupt
}

// HasInterrupts returns true if there are pending interrupts
// that are also enabled in types.IE.
func (b *Bus) HasInterrupts() bool {
	return b.data[types.IE]&b.data[types.IF]&0x1F != 0
}
