package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge type byte found at 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC3RAM     Type = 0x12
	MBC3RAMBATT Type = 0x13
	MBC5        Type = 0x19
	MBC5RAM     Type = 0x1A
	MBC5RAMBATT Type = 0x1B
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC3RAM:     "MBC3+RAM",
	MBC3RAMBATT: "MBC3+RAM+BATTERY",
	MBC5:        "MBC5",
	MBC5RAM:     "MBC5+RAM",
	MBC5RAMBATT: "MBC5+RAM+BATTERY",
}

// String returns the conventional name of the cartridge type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (%02X)", uint8(t))
}

const (
	titleStart    = 0x0134
	titleEnd      = 0x0144
	typeAddress   = 0x0147
	romSizeAddress = 0x0148
	headerEnd     = 0x014F
)

// Header represents the parts of the cartridge header, located in the
// address space 0x0100-0x014F, that the core makes use of.
type Header struct {
	// 0x0134-0x0143 - Title of the game, upper case ASCII padded
	// with zeroes.
	Title string

	// 0x0147 - CartridgeType indicates which memory bank controller,
	// if any, the cartridge carries.
	CartridgeType Type

	// 0x0148 - ROMSize code. The ROM size is 32KiB << code.
	ROMSize uint8
}

// parseHeader reads the header from rom. Fields beyond the end of
// rom are left zeroed.
func parseHeader(rom []byte) Header {
	h := Header{}
	if len(rom) > titleStart {
		end := titleEnd
		if len(rom) < end {
			end = len(rom)
		}
		title := rom[titleStart:end]
		if i := strings.IndexByte(string(title), 0); i >= 0 {
			title = title[:i]
		}
		h.Title = strings.TrimSpace(string(title))
	}
	if len(rom) > typeAddress {
		h.CartridgeType = Type(rom[typeAddress])
	}
	if len(rom) > romSizeAddress {
		h.ROMSize = rom[romSizeAddress]
	}
	return h
}

// ROMBytes returns the ROM size in bytes indicated by the header.
func (h Header) ROMBytes() int {
	if h.ROMSize > 8 {
		return 0
	}
	return (32 * 1024) << h.ROMSize
}

// Banked reports whether the cartridge expects a memory bank controller.
func (h Header) Banked() bool {
	return h.CartridgeType != ROM && h.CartridgeType != ROMRAM && h.CartridgeType != ROMRAMBATT
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | %dKiB", h.Title, h.CartridgeType, h.ROMBytes()/1024)
}
