package ppu

import (
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Frame holds the shade (0-3) of every pixel on the screen.
type Frame [ScreenHeight][ScreenWidth]uint8

// Digest returns the xxhash of the frame.
func (f *Frame) Digest() uint64 {
	h := xxhash.New()
	for _, row := range f {
		_, _ = h.Write(row[:])
	}
	return h.Sum64()
}

// renderScanline resolves the background, window and sprites of the
// current line into the frame.
func (p *PPU) renderScanline() {
	ly := p.bus.Get(types.LY)
	if ly >= ScreenHeight {
		return
	}
	lcdc := p.bus.Get(types.LCDC)
	line := &p.frame[ly]

	p.renderBackground(ly, lcdc, line)
	if lcdc&types.Bit1 != 0 {
		p.renderSprites(ly, lcdc, line)
	}
}

func (p *PPU) renderBackground(ly uint8, lcdc uint8, line *[ScreenWidth]uint8) {
	bgp := p.bus.Get(types.BGP)

	// the background and window are blank whilst LCDC.0 is reset
	if lcdc&types.Bit0 == 0 {
		for x := range line {
			p.bgColour[x] = 0
			line[x] = palette.Shade(bgp, 0)
		}
		return
	}

	scx, scy := p.bus.Get(types.SCX), p.bus.Get(types.SCY)
	wy, wx := p.bus.Get(types.WY), int(p.bus.Get(types.WX))-7
	window := lcdc&types.Bit5 != 0 && wy <= ly

	for x := 0; x < ScreenWidth; x++ {
		var colour uint8
		if window && x >= wx {
			colour = p.tileColour(lcdc, lcdc&types.Bit6 != 0, uint8(x-wx), ly-wy)
		} else {
			colour = p.tileColour(lcdc, lcdc&types.Bit3 != 0, uint8(x)+scx, ly+scy)
		}
		p.bgColour[x] = colour
		line[x] = palette.Shade(bgp, colour)
	}
}

// tileColour returns the colour index of the pixel at (x, y) of the
// 256x256 map, selecting the upper tile map (0x9C00) if highMap.
func (p *PPU) tileColour(lcdc uint8, highMap bool, x, y uint8) uint8 {
	tileMap := uint16(0x9800)
	if highMap {
		tileMap = 0x9C00
	}
	index := p.bus.Get(tileMap + uint16(y/8)*32 + uint16(x/8))

	// LCDC.4 selects unsigned indexing from 0x8000, or
	// signed indexing from 0x9000
	var tile uint16
	if lcdc&types.Bit4 != 0 {
		tile = types.VRAM + uint16(index)*16
	} else {
		tile = uint16(int32(0x9000) + int32(int8(index))*16)
	}

	return p.tilePixel(tile, y%8, 7-x%8)
}

// tilePixel decodes the colour index of bit of row from the two
// bitplanes of the tile at address.
func (p *PPU) tilePixel(tile uint16, row uint8, bit uint8) uint8 {
	lo := p.bus.Get(tile + uint16(row)*2)
	hi := p.bus.Get(tile + uint16(row)*2 + 1)
	return (hi>>bit&1)<<1 | lo>>bit&1
}

const (
	attrPriority = types.Bit7 // background colours 1-3 are drawn over the sprite
	attrYFlip    = types.Bit6
	attrXFlip    = types.Bit5
	attrPalette  = types.Bit4 // OBP1 if set, else OBP0
)

// renderSprites draws each of the 40 sprites in OAM that cover the
// line, in OAM order, with later sprites drawn over earlier ones.
func (p *PPU) renderSprites(ly uint8, lcdc uint8, line *[ScreenWidth]uint8) {
	height := 8
	if lcdc&types.Bit2 != 0 {
		height = 16
	}

	for i := uint16(0); i < 40; i++ {
		entry := types.OAM + i*4
		y := int(p.bus.Get(entry)) - 16
		x := int(p.bus.Get(entry+1)) - 8
		tile := p.bus.Get(entry + 2)
		attr := p.bus.Get(entry + 3)

		row := int(ly) - y
		if row < 0 || row >= height {
			continue
		}
		if attr&attrYFlip != 0 {
			row = height - 1 - row
		}
		if height == 16 {
			tile &= 0xFE
		}

		obp := p.bus.Get(types.OBP0)
		if attr&attrPalette != 0 {
			obp = p.bus.Get(types.OBP1)
		}

		address := types.VRAM + uint16(tile)*16
		for px := 0; px < 8; px++ {
			sx := x + px
			if sx < 0 || sx >= ScreenWidth {
				continue
			}
			bit := uint8(7 - px)
			if attr&attrXFlip != 0 {
				bit = uint8(px)
			}

			colour := p.tilePixel(address, uint8(row), bit)
			if colour == 0 {
				continue
			}
			if attr&attrPriority != 0 && p.bgColour[sx] != 0 {
				continue
			}
			line[sx] = palette.Shade(obp, colour)
		}
	}
}
