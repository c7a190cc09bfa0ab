// Package io provides the memory bus of the Game Boy, which routes
// reads and writes across the 64KiB address space and dispatches
// writes to memory mapped devices.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// ROM is the read only overlay mapped below types.VRAM.
type ROM interface {
	Read(addr uint16) uint8
}

// Device is a memory mapped device, notified after a value
// has been stored at one of its reserved addresses.
type Device interface {
	OnWrite(addr uint16, value uint8)
}

// WriteHandler adapts a function to the Device interface.
type WriteHandler func(addr uint16, value uint8)

// OnWrite calls h(addr, value).
func (h WriteHandler) OnWrite(addr uint16, value uint8) {
	h(addr, value)
}

// Bus is the 64KiB address space of the Game Boy.
type Bus struct {
	data [0x10000]byte
	rom  ROM

	devices [0x80]Device

	// accessGating blocks VRAM during mode 3 and OAM during
	// modes 2 and 3, whilst the LCD is enabled.
	accessGating bool
}

// NewBus returns a new Bus with rom mapped below types.VRAM.
// The OAM DMA device is reserved at types.DMA.
func NewBus(rom ROM) *Bus {
	b := &Bus{rom: rom}
	b.ReserveAddress(types.DMA, WriteHandler(b.dma))
	return b
}

// SetAccessGating enables or disables PPU mode based access
// restrictions to VRAM and OAM.
func (b *Bus) SetAccessGating(enabled bool) {
	b.accessGating = enabled
}

// ReserveAddress reserves an I/O register on the bus, so that d
// is notified of every write to addr. Reserving an address twice,
// or outside of the I/O region, panics.
func (b *Bus) ReserveAddress(addr uint16, d Device) {
	if addr < types.IO || addr >= types.HRAM {
		panic(fmt.Sprintf("address %04X is not an I/O register", addr))
	}
	if b.devices[addr-types.IO] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.devices[addr-types.IO] = d
}

// Read returns the value visible to the CPU at addr.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < types.VRAM:
		if b.rom == nil {
			return 0xFF
		}
		return b.rom.Read(addr)
	case addr < types.ExtRAM:
		if b.blocked(addr) {
			return 0xFF
		}
	case addr >= types.EchoRAM && addr < types.OAM:
		return b.data[addr-types.EchoOffset]
	case addr < types.Unusable && addr >= types.OAM:
		if b.blocked(addr) {
			return 0xFF
		}
	case addr >= types.Unusable && addr < types.IO:
		return 0xFF
	case addr == types.IF:
		return b.data[addr] | 0xE0
	}
	return b.data[addr]
}

// Write stores value at addr, and then notifies the device
// reserved at addr, if any. Writes to ROM and the unusable
// region are ignored.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < types.VRAM:
		return
	case addr >= types.EchoRAM && addr < types.OAM:
		addr -= types.EchoOffset
	case addr >= types.Unusable && addr < types.IO:
		return
	}
	if b.blocked(addr) {
		return
	}

	b.data[addr] = value

	if addr >= types.IO && addr < types.HRAM {
		if d := b.devices[addr-types.IO]; d != nil {
			d.OnWrite(addr, value)
		}
	}
}

// Read16 reads a little endian word from addr.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// Write16 writes a little endian word to addr.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, uint8(value))
	b.Write(addr+1, uint8(value>>8))
}

// Push pushes value onto the stack at sp, high byte first, and
// returns the new stack pointer.
func (b *Bus) Push(sp uint16, value uint16) uint16 {
	sp--
	b.Write(sp, uint8(value>>8))
	sp--
	b.Write(sp, uint8(value))
	return sp
}

// Pop pops a word from the stack at sp, returning the value and
// the new stack pointer.
func (b *Bus) Pop(sp uint16) (uint16, uint16) {
	lo := b.Read(sp)
	sp++
	hi := b.Read(sp)
	sp++
	return uint16(hi)<<8 | uint16(lo), sp
}

// Get gets the value at the specified memory address. This
// function bypasses the ROM overlay and any access restrictions.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores any reserved device and just sets the value.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// SetBit sets the bit at the specified memory address.
func (b *Bus) SetBit(addr uint16, bit byte) {
	b.data[addr] |= bit
}

// ClearBit clears the bit at the specified memory address.
func (b *Bus) ClearBit(addr uint16, bit byte) {
	b.data[addr] &^= bit
}

// TestBit tests the bit at the specified memory address.
func (b *Bus) TestBit(addr uint16, bit byte) bool {
	return b.data[addr]&bit != 0
}

// blocked reports whether addr is currently inaccessible to the
// CPU because the PPU owns it.
func (b *Bus) blocked(addr uint16) bool {
	if !b.accessGating || b.data[types.LCDC]&types.Bit7 == 0 {
		return false
	}
	mode := b.data[types.STAT] & 0x03
	switch {
	case addr >= types.VRAM && addr < types.ExtRAM:
		return mode == 3
	case addr >= types.OAM && addr < types.Unusable:
		return mode == 2 || mode == 3
	}
	return false
}

var _ types.Stater = (*Bus)(nil)

// Save saves the RAM regions of the bus; the ROM overlay is
// not part of the state.
func (b *Bus) Save(s *types.State) {
	s.WriteData(b.data[types.VRAM:])
}

// Load loads the RAM regions of the bus.
func (b *Bus) Load(s *types.State) {
	s.ReadData(b.data[types.VRAM:])
}
