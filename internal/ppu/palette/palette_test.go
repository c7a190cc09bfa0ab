package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShade(t *testing.T) {
	// 0xE4 is the identity palette, 11 10 01 00
	for i := uint8(0); i < 4; i++ {
		assert.Equal(t, i, Shade(0xE4, i))
	}
	// 0x1B reverses it, 00 01 10 11
	for i := uint8(0); i < 4; i++ {
		assert.Equal(t, 3-i, Shade(0x1B, i))
	}
	assert.Equal(t, uint8(3), Shade(0xFC, 1))
	assert.Equal(t, uint8(0), Shade(0xFC, 0))
}

func TestByName(t *testing.T) {
	p, err := ByName("Green")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF}, p.RGBA(3))

	_, err = ByName("purple")
	assert.Error(t, err)
}
