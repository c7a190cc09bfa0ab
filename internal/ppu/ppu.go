// Package ppu provides the display controller of the Game Boy,
// which steps through the modes of each scanline and resolves the
// background, window and sprites into a Frame.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// ModeHBlank (Mode 0) - Horizontal Blanking Period
	//
	//	Duration: remainder of the 456 dot line
	//	- STAT interrupt available if enabled via STAT.3
	ModeHBlank uint8 = iota

	// ModeVBlank (Mode 1) - Vertical Blanking Period
	//
	//	Duration 4560 dots (10 lines)
	//	- VBlank interrupt requested on entering LY 144
	//	- STAT interrupt available if enabled via STAT.4
	//	- Active during LY 144-153
	ModeVBlank

	// ModeOAM (Mode 2) - OAM Scan
	//
	//	Duration: 80 dots
	//	- STAT interrupt available if enabled via STAT.5
	//	- Occurs at start of each visible line
	ModeOAM

	// ModeVRAM (Mode 3) - Pixel Transfer
	//
	//	Duration: 172 dots
	//	- No STAT interrupts available
	//	- The scanline is rendered as this mode ends
	ModeVRAM
)

const (
	oamDots   = 80
	vramDots  = 172
	lineDots  = 456
	lastLine  = 153
	vramStart = oamDots
	vramEnd   = oamDots + vramDots
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// The registers it is controlled by (types.LCDC, types.STAT,
// types.LY, ...) live on the bus, the PPU only keeps the position
// within the current line.
type PPU struct {
	bus *io.Bus

	enabled bool  // LCDC.7 as of the last update
	dots    int   // dot within the current line (0-455)
	mode    uint8 // mode reported to STAT

	frame      Frame
	frameReady bool

	// bgColour holds the colour index of the background
	// and window, before mapping through BGP, for the
	// line being rendered.
	bgColour [ScreenWidth]uint8
}

// New returns a new PPU, starting in ModeOAM at LY 0.
func New(bus *io.Bus) *PPU {
	p := &PPU{bus: bus}
	p.mode = ModeOAM
	p.writeMode()
	bus.ReserveAddress(types.STAT, p)
	return p
}

// OnWrite restores the read only bits of types.STAT, the
// coincidence flag and mode, after it has been written.
func (p *PPU) OnWrite(addr uint16, value uint8) {
	if addr != types.STAT {
		return
	}
	status := value&0x78 | p.mode
	if p.enabled && p.bus.Get(types.LY) == p.bus.Get(types.LYC) {
		status |= types.Bit2
	}
	p.bus.Set(types.STAT, status)
}

// Mode returns the current mode of the PPU.
func (p *PPU) Mode() uint8 {
	return p.mode
}

// Frame returns the framebuffer.
func (p *PPU) Frame() *Frame {
	return &p.frame
}

// FrameReady returns true once the PPU has entered VBlank, and
// the frame is complete.
func (p *PPU) FrameReady() bool {
	return p.frameReady
}

// ClearFrame clears the frame ready flag.
func (p *PPU) ClearFrame() {
	p.frameReady = false
}

// Update advances the PPU by ticks clock ticks. Each mode
// boundary crossed is handled in order.
func (p *PPU) Update(ticks int) {
	if p.bus.Get(types.LCDC)&types.Bit7 == 0 {
		if p.enabled {
			p.disable()
		}
		return
	}
	if !p.enabled {
		p.enabled = true
		p.dots = 0
		p.setMode(ModeOAM)
		p.compareLY()
	}

	for ticks > 0 {
		step := p.nextBoundary() - p.dots
		if step > ticks {
			step = ticks
		}
		p.dots += step
		ticks -= step

		if p.dots == p.nextBoundary() {
			p.transition()
		}
	}
}

// nextBoundary returns the dot at which the current mode ends.
func (p *PPU) nextBoundary() int {
	switch p.mode {
	case ModeOAM:
		return vramStart
	case ModeVRAM:
		return vramEnd
	}
	return lineDots
}

func (p *PPU) transition() {
	switch p.mode {
	case ModeOAM:
		p.setMode(ModeVRAM)
	case ModeVRAM:
		p.renderScanline()
		p.setMode(ModeHBlank)
	default:
		p.dots = 0
		p.nextLine()
	}
}

func (p *PPU) nextLine() {
	ly := p.bus.Get(types.LY) + 1
	if ly > lastLine {
		ly = 0
	}
	p.bus.Set(types.LY, ly)

	switch {
	case ly == ScreenHeight:
		p.setMode(ModeVBlank)
		p.bus.RaiseInterrupt(io.VBlankINT)
		p.frameReady = true
	case ly < ScreenHeight:
		p.setMode(ModeOAM)
	}

	p.compareLY()
}

// setMode changes the mode reported to STAT, requesting a STAT
// interrupt if the mode changed and its source is enabled.
func (p *PPU) setMode(mode uint8) {
	if mode == p.mode {
		return
	}
	p.mode = mode
	p.writeMode()

	var source uint8
	switch mode {
	case ModeHBlank:
		source = types.Bit3
	case ModeVBlank:
		source = types.Bit4
	case ModeOAM:
		source = types.Bit5
	}
	if source != 0 && p.bus.TestBit(types.STAT, source) {
		p.bus.RaiseInterrupt(io.LCDINT)
	}
}

func (p *PPU) writeMode() {
	p.bus.Set(types.STAT, p.bus.Get(types.STAT)&^0x03|p.mode)
}

// compareLY updates the coincidence flag of STAT, requesting a STAT
// interrupt if LY == LYC and the source is enabled.
func (p *PPU) compareLY() {
	if p.bus.Get(types.LY) == p.bus.Get(types.LYC) {
		p.bus.SetBit(types.STAT, types.Bit2)
		if p.bus.TestBit(types.STAT, types.Bit6) {
			p.bus.RaiseInterrupt(io.LCDINT)
		}
	} else {
		p.bus.ClearBit(types.STAT, types.Bit2)
	}
}

// disable pins LY to 0 and the mode to ModeHBlank.
func (p *PPU) disable() {
	p.enabled = false
	p.dots = 0
	p.mode = ModeHBlank
	p.writeMode()
	p.bus.Set(types.LY, 0)
}

var _ types.Stater = (*PPU)(nil)

// Save saves the position of the PPU. The framebuffer is not
// saved, and is redrawn by the next frame.
func (p *PPU) Save(s *types.State) {
	s.WriteBool(p.enabled)
	s.Write16(uint16(p.dots))
	s.Write8(p.mode)
	s.WriteBool(p.frameReady)
}

// Load loads the position of the PPU.
func (p *PPU) Load(s *types.State) {
	p.enabled = s.ReadBool()
	p.dots = int(s.Read16())
	p.mode = s.Read8()
	p.frameReady = s.ReadBool()
}
