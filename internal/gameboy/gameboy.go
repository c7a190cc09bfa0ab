// Package gameboy provides an emulation of a Nintendo Game Boy.
// It builds every component of the system and wires them together,
// and is the main entry point for the emulator.
package gameboy

import (
	"image"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
type GameBoy struct {
	CPU    *cpu.CPU
	Bus    *io.Bus
	PPU    *ppu.PPU
	Timer  *timer.Controller
	Joypad *joypad.State
	Serial *serial.Controller

	log.Logger

	rom *cartridge.Rom

	input        joypad.Input
	sink         serial.Sink
	errorMode    cpu.ErrorMode
	accessGating bool
	trace        bool
	palette      palette.Palette

	frames uint64
}

// NewGameBoy returns a new GameBoy running rom, with the registers
// and IO set to the values left behind by the boot ROM. A nil rom
// is replaced with cartridge.Empty.
func NewGameBoy(rom *cartridge.Rom, opts ...Opt) *GameBoy {
	if rom == nil {
		rom = cartridge.Empty()
	}

	g := &GameBoy{
		Logger:  log.NewNullLogger(),
		rom:     rom,
		palette: palette.Palettes[palette.Greyscale],
	}
	for _, opt := range opts {
		opt(g)
	}

	g.Bus = io.NewBus(rom)
	g.Bus.SetAccessGating(g.accessGating)
	g.Timer = timer.NewController(g.Bus)
	g.PPU = ppu.New(g.Bus)
	g.Joypad = joypad.New(g.Bus, g.input)
	g.Serial = serial.NewController(g.Bus, g.sink)

	registers := &cpu.Registers{}
	var input cpu.Sampler
	if g.input != nil {
		input = g.Joypad
	}
	g.CPU = cpu.NewCPU(registers, cpu.NewALU(registers), g.Bus, g.Timer, g.PPU, input)
	g.CPU.SetErrorMode(g.errorMode)
	g.CPU.SetLogger(g.Logger)
	g.CPU.SetTrace(g.trace)

	g.skipBoot()

	g.Infof("cartridge: %s", rom.Header())
	if rom.Header().Banked() {
		g.Warnf("cartridge type %s is not supported, only bank 0 and 1 are mapped", rom.Header().CartridgeType)
	}

	return g
}

// skipBoot sets the registers and IO to the state the DMG boot ROM
// leaves them in upon jumping to the cartridge.
func (g *GameBoy) skipBoot() {
	g.CPU.SetPair(cpu.AF, 0x01B0)
	g.CPU.SetPair(cpu.BC, 0x0013)
	g.CPU.SetPair(cpu.DE, 0x00D8)
	g.CPU.SetPair(cpu.HL, 0x014D)
	g.CPU.SetSP(0xFFFE)
	g.CPU.SetPC(0x0100)

	g.Bus.Set(types.LCDC, 0x91)
	g.Bus.Set(types.BGP, 0xFC)
	g.Bus.Set(types.OBP0, 0xFF)
	g.Bus.Set(types.OBP1, 0xFF)
	g.Bus.Set(types.TAC, 0xF8)
	g.Bus.Write(types.P1, 0xCF)
}

// Step runs the emulation for a single frame.
func (g *GameBoy) Step() error {
	g.PPU.ClearFrame()
	if err := g.CPU.Step(); err != nil {
		return err
	}
	g.frames++
	return nil
}

// Run steps frames frames, stopping at the first error.
func (g *GameBoy) Run(frames int) error {
	for i := 0; i < frames; i++ {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Frame returns a copy of the framebuffer.
func (g *GameBoy) Frame() ppu.Frame {
	return *g.PPU.Frame()
}

// Frames returns the number of frames stepped.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// Image returns the framebuffer coloured with the palette given by
// WithPalette, scaled by scale.
func (g *GameBoy) Image(scale int) *image.RGBA {
	return utils.FrameImage(g.PPU.Frame(), g.palette, scale)
}

// Rom returns the cartridge the GameBoy is running.
func (g *GameBoy) Rom() *cartridge.Rom {
	return g.rom
}
