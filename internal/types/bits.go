package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// TestBit returns true if any of the bits in mask are set in value.
func TestBit(value uint8, mask uint8) bool {
	return value&mask != 0
}

// SetBit returns value with the given mask set or cleared.
func SetBit(value uint8, mask uint8, set bool) uint8 {
	if set {
		return value | mask
	}
	return value &^ mask
}
