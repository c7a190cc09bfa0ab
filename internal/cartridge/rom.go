// Package cartridge provides the read-only cartridge image the bus
// overlays on the address space below VRAM.
package cartridge

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cespare/xxhash"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// MaxSize is the largest cartridge image accepted, 8MiB.
const MaxSize = 8 << 20

var (
	// ErrRomNotFound is returned when the cartridge file does not exist.
	ErrRomNotFound = errors.New("cartridge: rom not found")
	// ErrRomTooLarge is returned when the cartridge image exceeds MaxSize.
	ErrRomTooLarge = errors.New("cartridge: rom too large")
)

// Rom is an immutable cartridge image. Banking is not supported, reads
// pass straight through to the image.
type Rom struct {
	data   []byte
	header Header
}

// New returns a Rom backed by a copy of data.
func New(data []byte) (*Rom, error) {
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrRomTooLarge, len(data))
	}
	rom := make([]byte, len(data))
	copy(rom, data)
	return &Rom{data: rom, header: parseHeader(rom)}, nil
}

// Load reads a cartridge image from filename, which may be compressed
// or archived in any of the formats utils.LoadFile understands.
func Load(filename string) (*Rom, error) {
	data, err := utils.LoadFile(filename, MaxSize)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrRomNotFound, filename)
	case errors.Is(err, utils.ErrTooLarge):
		return nil, fmt.Errorf("%w: %s", ErrRomTooLarge, filename)
	case err != nil:
		return nil, fmt.Errorf("cartridge: loading %s: %w", filename, err)
	}
	return New(data)
}

// Empty returns a minimal image with zeroed header fields and a single
// HALT at the entry point.
func Empty() *Rom {
	data := make([]byte, headerEnd)
	data[0x100] = 0x76
	return &Rom{data: data, header: parseHeader(data)}
}

// Read returns the byte at address, or 0xFF past the end of the image.
func (r *Rom) Read(address uint16) uint8 {
	if int(address) >= len(r.data) {
		return 0xFF
	}
	return r.data[address]
}

// Header returns the parsed cartridge header.
func (r *Rom) Header() Header {
	return r.header
}

// Title returns the cartridge title.
func (r *Rom) Title() string {
	return r.header.Title
}

// Size returns the length of the image in bytes.
func (r *Rom) Size() int {
	return len(r.data)
}

// Checksum returns the xxhash of the image, used to bind save states to
// the cartridge they were taken from.
func (r *Rom) Checksum() uint64 {
	return xxhash.Sum64(r.data)
}
