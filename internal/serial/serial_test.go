package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestController_Transfer(t *testing.T) {
	b := io.NewBus(nil)
	buf := &Buffer{}
	NewController(b, buf)

	for _, c := range []byte("Passed") {
		b.Write(types.SB, c)
		b.Write(types.SC, 0x81)

		assert.Equal(t, uint8(0x01), b.Read(types.SC), "transfer start flag should be cleared")
		assert.Equal(t, uint8(0xFF), b.Read(types.SB))
	}

	assert.Equal(t, "Passed", buf.String())
	assert.NotZero(t, b.Get(types.IF)&io.SerialINT)
}

func TestController_NoTransfer(t *testing.T) {
	b := io.NewBus(nil)
	var got []byte
	NewController(b, SinkFunc(func(c byte) { got = append(got, c) }))

	b.Write(types.SB, 'x')
	b.Write(types.SC, 0x01)

	assert.Empty(t, got)
	assert.Zero(t, b.Get(types.IF)&io.SerialINT)
	assert.Equal(t, uint8('x'), b.Read(types.SB))
}

func TestController_NilSink(t *testing.T) {
	b := io.NewBus(nil)
	NewController(b, nil)
	b.Write(types.SC, 0x80)
	assert.NotZero(t, b.Get(types.IF)&io.SerialINT)
}
