// Package palette maps the 4 shades of the DMG to RGB colours.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// indexed by shade, from lightest to darkest.
type Palette struct {
	Name   string
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	Greyscale: {
		Name: "greyscale",
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	Green: {
		Name: "green",
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	Red: {
		Name: "red",
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	Yellow: {
		Name: "yellow",
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

// ByName returns the palette with the given name.
func ByName(name string) (Palette, error) {
	for _, p := range Palettes {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
}

// GetColour returns the colour of the given shade.
func (p Palette) GetColour(shade uint8) [3]uint8 {
	return p.Colors[shade&0x03]
}

// RGBA returns the colour of the given shade as an opaque
// color.RGBA.
func (p Palette) RGBA(shade uint8) color.RGBA {
	c := p.GetColour(shade)
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

// Shade maps a 2-bit colour index through a palette register
// (types.BGP, types.OBP0 or types.OBP1) to a shade.
func Shade(register uint8, colour uint8) uint8 {
	return (register >> (colour * 2)) & 0x03
}
