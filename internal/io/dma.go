package io

import "github.com/thelolagemann/dmgcore/internal/types"

// dma performs an OAM DMA transfer, copying types.OAMSize bytes
// from value<<8 into OAM. The transfer completes instantly.
func (b *Bus) dma(_ uint16, value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < types.OAMSize; i++ {
		b.data[types.OAM+i] = b.Read(source + i)
	}
}
