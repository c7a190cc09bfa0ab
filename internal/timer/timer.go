// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// divPeriod is the number of clock ticks between
// increments of types.DIV (16384Hz).
const divPeriod = 256

// frequencies are the TIMA frequencies selected by the
// low 2 bits of types.TAC.
var frequencies = [4]int{4096, 262144, 65536, 16384}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	bus *io.Bus

	div  int // ticks accumulated towards the next DIV increment
	tima int // ticks accumulated towards the next TIMA increment
}

// NewController returns a new timer controller, reserving
// types.DIV on the bus so that writes reset the divider.
func NewController(bus *io.Bus) *Controller {
	c := &Controller{bus: bus}
	bus.ReserveAddress(types.DIV, c)
	return c
}

// OnWrite resets the divider whenever types.DIV is written.
func (c *Controller) OnWrite(addr uint16, _ uint8) {
	if addr == types.DIV {
		c.bus.Set(types.DIV, 0)
		c.div = 0
	}
}

// Update advances the timer by ticks clock ticks.
func (c *Controller) Update(ticks int) {
	c.div += ticks
	for c.div >= divPeriod {
		c.div -= divPeriod
		c.bus.Set(types.DIV, c.bus.Get(types.DIV)+1)
	}

	tac := c.bus.Get(types.TAC)
	if tac&types.Bit2 == 0 {
		return
	}

	period := types.ClockSpeed / frequencies[tac&0x03]
	c.tima += ticks
	for c.tima >= period {
		c.tima -= period
		c.increment()
	}
}

// increment increments types.TIMA, reloading it from
// types.TMA and requesting io.TimerINT on overflow.
func (c *Controller) increment() {
	tima := c.bus.Get(types.TIMA) + 1
	if tima == 0 {
		tima = c.bus.Get(types.TMA)
		c.bus.RaiseInterrupt(io.TimerINT)
	}
	c.bus.Set(types.TIMA, tima)
}

var _ types.Stater = (*Controller)(nil)

// Save saves the internal counters of the timer. The registers
// themselves are saved by the bus.
func (c *Controller) Save(s *types.State) {
	s.Write32(uint32(c.div))
	s.Write32(uint32(c.tima))
}

// Load loads the internal counters of the timer.
func (c *Controller) Load(s *types.State) {
	c.div = int(s.Read32())
	c.tima = int(s.Read32())
}
