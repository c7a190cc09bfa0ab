// Package serial provides the serial port of the Game Boy. No
// link partner is emulated, transmitted bytes are handed to a
// Sink and the incoming byte is always 0xFF.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Sink receives every byte transmitted over the serial port.
type Sink interface {
	OnByteTransmitted(b byte)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(b byte)

// OnByteTransmitted calls f(b).
func (f SinkFunc) OnByteTransmitted(b byte) {
	f(b)
}

// Controller is the serial controller. Writing types.SC with
// bit 7 set transfers types.SB to the Sink immediately.
type Controller struct {
	b    *io.Bus
	sink Sink
}

// NewController creates a new Controller, transmitting to sink
// which may be nil.
func NewController(b *io.Bus, sink Sink) *Controller {
	c := &Controller{b: b, sink: sink}
	b.ReserveAddress(types.SC, c)
	return c
}

// OnWrite starts a transfer if the transfer start flag was set,
// completing it in the same write.
func (c *Controller) OnWrite(_ uint16, value uint8) {
	if value&types.Bit7 == 0 {
		return
	}

	if c.sink != nil {
		c.sink.OnByteTransmitted(c.b.Get(types.SB))
	}
	c.b.Set(types.SC, value&^types.Bit7)
	c.b.Set(types.SB, 0xFF)
	c.b.RaiseInterrupt(io.SerialINT)
}
