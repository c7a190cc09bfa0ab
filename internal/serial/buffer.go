package serial

import (
	"bytes"
	"sync"
)

// Buffer is a Sink that collects every transmitted byte. It is
// safe to read whilst the emulator is running on another goroutine.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// OnByteTransmitted appends b to the buffer.
func (s *Buffer) OnByteTransmitted(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteByte(b)
}

// Bytes returns a copy of the transmitted bytes.
func (s *Buffer) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

// String returns the transmitted bytes as a string.
func (s *Buffer) String() string {
	return string(s.Bytes())
}
