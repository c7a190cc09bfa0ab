package gameboy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrStateMismatch is returned when restoring a state taken
	// from another cartridge.
	ErrStateMismatch = errors.New("gameboy: state belongs to another cartridge")
	// ErrStateCorrupt is returned when a state cannot be decoded.
	ErrStateCorrupt = errors.New("gameboy: state is corrupt")
)

const (
	stateMagic   = "DMGS"
	stateHeader  = len(stateMagic) + 8
	maxStateSize = 1 << 20
)

// components returns the components making up the state, in the
// order they are saved.
func (g *GameBoy) components() []types.Stater {
	return []types.Stater{g.CPU, g.Bus, g.Timer, g.PPU, g.Joypad}
}

// Save returns the state of the GameBoy, bound to the cartridge
// by its checksum:
//
//	"DMGS" | xxhash of the cartridge (little endian) | brotli(state)
func (g *GameBoy) Save() ([]byte, error) {
	state := types.NewState()
	for _, c := range g.components() {
		c.Save(state)
	}

	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	var sum [8]byte
	binary.LittleEndian.PutUint64(sum[:], g.rom.Checksum())
	buf.Write(sum[:])

	w := brotli.NewWriterLevel(&buf, 9)
	if _, err := w.Write(state.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	g.Debugf("saved state: %d bytes (%d uncompressed)", buf.Len(), len(state.Bytes()))
	return buf.Bytes(), nil
}

// Restore returns a new GameBoy running rom, from a state
// previously returned by Save.
func Restore(rom *cartridge.Rom, data []byte, opts ...Opt) (*GameBoy, error) {
	if rom == nil {
		rom = cartridge.Empty()
	}
	if len(data) < stateHeader || string(data[:len(stateMagic)]) != stateMagic {
		return nil, fmt.Errorf("%w: bad header", ErrStateCorrupt)
	}
	if binary.LittleEndian.Uint64(data[len(stateMagic):stateHeader]) != rom.Checksum() {
		return nil, ErrStateMismatch
	}

	raw, err := io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(data[stateHeader:])), maxStateSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}

	g := NewGameBoy(rom, opts...)
	state := types.StateFromBytes(raw)
	for _, c := range g.components() {
		c.Load(state)
	}
	if err := state.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if state.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrStateCorrupt, state.Remaining())
	}

	g.Debugf("restored state: %d bytes", len(raw))
	return g, nil
}
