package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are built.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its CPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithErrorMode sets how invalid opcodes are handled.
func WithErrorMode(mode cpu.ErrorMode) Opt {
	return func(gb *GameBoy) {
		gb.errorMode = mode
	}
}

// WithInput attaches the host input the joypad samples once
// per frame.
func WithInput(input joypad.Input) Opt {
	return func(gb *GameBoy) {
		gb.input = input
	}
}

// WithSerialSink sets the sink receiving bytes transmitted over
// the serial port.
func WithSerialSink(sink serial.Sink) Opt {
	return func(gb *GameBoy) {
		gb.sink = sink
	}
}

// WithAccessGating blocks CPU access to VRAM and OAM whilst the
// PPU is using them.
func WithAccessGating() Opt {
	return func(gb *GameBoy) {
		gb.accessGating = true
	}
}

// Trace logs every executed instruction at debug level.
func Trace() Opt {
	return func(gb *GameBoy) {
		gb.trace = true
	}
}

// WithPalette sets the palette used by Image.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.palette = p
	}
}
