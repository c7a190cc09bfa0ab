package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newTestTimer() (*io.Bus, *Controller) {
	b := io.NewBus(nil)
	return b, NewController(b)
}

func TestController_Divider(t *testing.T) {
	b, c := newTestTimer()

	c.Update(255)
	assert.Equal(t, uint8(0), b.Read(types.DIV))
	c.Update(1)
	assert.Equal(t, uint8(1), b.Read(types.DIV))
	c.Update(256 * 10)
	assert.Equal(t, uint8(11), b.Read(types.DIV))

	// any write resets the divider
	c.Update(200)
	b.Write(types.DIV, 0x42)
	assert.Equal(t, uint8(0), b.Read(types.DIV))
	c.Update(100)
	assert.Equal(t, uint8(0), b.Read(types.DIV), "the accumulator should reset with the register")
	c.Update(156)
	assert.Equal(t, uint8(1), b.Read(types.DIV))
}

func TestController_Disabled(t *testing.T) {
	b, c := newTestTimer()
	b.Write(types.TAC, 0x01)

	c.Update(1024)
	assert.Equal(t, uint8(0), b.Read(types.TIMA))
}

func TestController_Overflow(t *testing.T) {
	b, c := newTestTimer()
	b.Write(types.TMA, 0xF0)
	b.Write(types.TIMA, 0xF0)
	b.Write(types.TAC, 0x05) // enabled, 262144Hz

	c.Update(15)
	assert.Equal(t, uint8(0xF0), b.Read(types.TIMA))
	c.Update(1)
	assert.Equal(t, uint8(0xF1), b.Read(types.TIMA))

	// (256 - TMA) increments from TMA overflow
	c.Update(16 * 14)
	assert.Equal(t, uint8(0xFF), b.Read(types.TIMA))
	assert.Zero(t, b.Get(types.IF)&io.TimerINT)

	c.Update(16)
	assert.Equal(t, uint8(0xF0), b.Read(types.TIMA))
	assert.NotZero(t, b.Get(types.IF)&io.TimerINT)
}

func TestController_Frequencies(t *testing.T) {
	for tac, period := range map[uint8]int{0x04: 1024, 0x05: 16, 0x06: 64, 0x07: 256} {
		b, c := newTestTimer()
		b.Write(types.TAC, tac)

		c.Update(period - 1)
		assert.Equal(t, uint8(0), b.Read(types.TIMA), "TAC %02X", tac)
		c.Update(1)
		assert.Equal(t, uint8(1), b.Read(types.TIMA), "TAC %02X", tac)
	}
}

func TestController_State(t *testing.T) {
	_, c := newTestTimer()
	c.Update(100)

	s := types.NewState()
	c.Save(s)

	_, restored := newTestTimer()
	restored.Load(types.StateFromBytes(s.Bytes()))
	assert.Equal(t, c.div, restored.div)
}
