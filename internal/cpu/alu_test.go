package cpu

import "testing"

func newTestALU() (*Registers, *ALU) {
	r := &Registers{}
	return r, NewALU(r)
}

func TestALU_Add8(t *testing.T) {
	r, alu := newTestALU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			r.FlushFlags(FlagSubtract)
			result := alu.Add8(uint8(a), uint8(b))

			if result != uint8((a+b)%256) {
				t.Fatalf("Expected %d + %d to be %d, got %d", a, b, (a+b)%256, result)
			}
			if r.IsSet(FlagCarry) != (a+b > 255) {
				t.Fatalf("Expected carry to be %t for %d + %d", a+b > 255, a, b)
			}
			if r.IsSet(FlagHalfCarry) != ((a&0xF)+(b&0xF) > 15) {
				t.Fatalf("Expected half carry to be %t for %d + %d", (a&0xF)+(b&0xF) > 15, a, b)
			}
			if r.IsSet(FlagZero) != (result == 0) {
				t.Fatalf("Expected zero to be %t for %d + %d", result == 0, a, b)
			}
			if r.IsSet(FlagSubtract) {
				t.Fatalf("Expected subtract to be reset for %d + %d", a, b)
			}
		}
	}
}

func TestALU_Sub8(t *testing.T) {
	r, alu := newTestALU()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			result := alu.Sub8(uint8(a), uint8(b))

			if result != uint8(a-b) {
				t.Fatalf("Expected %d - %d to be %d, got %d", a, b, uint8(a-b), result)
			}
			if r.IsSet(FlagCarry) != (b > a) {
				t.Fatalf("Expected carry to be %t for %d - %d", b > a, a, b)
			}
			if r.IsSet(FlagHalfCarry) != (b&0xF > a&0xF) {
				t.Fatalf("Expected half carry to be %t for %d - %d", b&0xF > a&0xF, a, b)
			}
			if !r.IsSet(FlagSubtract) {
				t.Fatalf("Expected subtract to be set for %d - %d", a, b)
			}
		}
	}
}

func TestALU_CarryIn(t *testing.T) {
	r, alu := newTestALU()

	r.FlushFlags(FlagCarry)
	if v := alu.Adc8(0x0E, 0x01); v != 0x10 || !r.IsSet(FlagHalfCarry) || r.IsSet(FlagCarry) {
		t.Errorf("Expected ADC 0x0E, 0x01 with carry to be 0x10 with H, got 0x%02X %02X", v, r.F())
	}

	r.FlushFlags(FlagCarry)
	if v := alu.Adc8(0xFF, 0x00); v != 0x00 || r.F() != FlagZero|FlagHalfCarry|FlagCarry {
		t.Errorf("Expected ADC 0xFF, 0x00 with carry to be 0x00 with ZHC, got 0x%02X %02X", v, r.F())
	}

	r.FlushFlags(FlagCarry)
	if v := alu.Sbc8(0x10, 0x0F); v != 0x00 || r.F() != FlagZero|FlagSubtract|FlagHalfCarry {
		t.Errorf("Expected SBC 0x10, 0x0F with carry to be 0x00 with ZNH, got 0x%02X %02X", v, r.F())
	}

	r.FlushFlags(FlagCarry)
	if v := alu.Sbc8(0x00, 0xFF); v != 0x00 || !r.IsSet(FlagCarry) {
		t.Errorf("Expected SBC 0x00, 0xFF with carry to borrow, got 0x%02X %02X", v, r.F())
	}
}

func TestALU_IncDec(t *testing.T) {
	r, alu := newTestALU()

	r.FlushFlags(FlagCarry)
	if v := alu.Inc8(0xFF); v != 0x00 || r.F() != FlagZero|FlagHalfCarry|FlagCarry {
		t.Errorf("Expected INC 0xFF to be 0x00 with ZHC, got 0x%02X %02X", v, r.F())
	}
	r.FlushFlags(0)
	if v := alu.Dec8(0x10); v != 0x0F || r.F() != FlagSubtract|FlagHalfCarry {
		t.Errorf("Expected DEC 0x10 to be 0x0F with NH, got 0x%02X %02X", v, r.F())
	}
	if v := alu.Dec8(0x01); v != 0x00 || r.F() != FlagZero|FlagSubtract {
		t.Errorf("Expected DEC 0x01 to be 0x00 with ZN, got 0x%02X %02X", v, r.F())
	}
	if alu.Inc16(0xFFFF) != 0 || alu.Dec16(0) != 0xFFFF {
		t.Errorf("Expected 16-bit increments to wrap")
	}
}

func TestALU_Add16(t *testing.T) {
	r, alu := newTestALU()

	r.FlushFlags(FlagZero | FlagSubtract)
	if v := alu.Add16(0x8FFF, 0x8001); v != 0x1000 || r.F() != FlagZero|FlagHalfCarry|FlagCarry {
		t.Errorf("Expected 0x8FFF + 0x8001 to be 0x1000 with ZHC, got 0x%04X %02X", v, r.F())
	}
}

func TestALU_AddSP(t *testing.T) {
	r, alu := newTestALU()

	if v := alu.AddSP(0xFFF8, 8); v != 0x0000 || r.F() != FlagHalfCarry|FlagCarry {
		t.Errorf("Expected 0xFFF8 + 8 to be 0x0000 with HC, got 0x%04X %02X", v, r.F())
	}
	if v := alu.AddSP(0x0001, -1); v != 0x0000 || r.F() != FlagHalfCarry|FlagCarry {
		t.Errorf("Expected 0x0001 - 1 to be 0x0000 with HC, got 0x%04X %02X", v, r.F())
	}
	if v := alu.AddSP(0x1000, -16); v != 0x0FF0 || r.F() != 0 {
		t.Errorf("Expected 0x1000 - 16 to be 0x0FF0, got 0x%04X %02X", v, r.F())
	}
}

func TestALU_DAA(t *testing.T) {
	r, alu := newTestALU()

	a := alu.Add8(0x15, 0x27)
	if a != 0x3C {
		t.Fatalf("Expected 0x15 + 0x27 to be 0x3C, got 0x%02X", a)
	}
	a = alu.DAA(a)
	if a != 0x42 {
		t.Errorf("Expected DAA to be 0x42, got 0x%02X", a)
	}
	if r.IsSet(FlagCarry) {
		t.Errorf("Expected carry to be clear")
	}

	// 0x99 + 0x01 = 0x00, carry
	a = alu.DAA(alu.Add8(0x99, 0x01))
	if a != 0x00 || !r.IsSet(FlagCarry) || !r.IsSet(FlagZero) {
		t.Errorf("Expected DAA of 99 + 01 to be 00 with ZC, got 0x%02X %02X", a, r.F())
	}

	// 0x42 - 0x15 = 0x27
	a = alu.DAA(alu.Sub8(0x42, 0x15))
	if a != 0x27 || r.IsSet(FlagCarry) {
		t.Errorf("Expected DAA of 42 - 15 to be 27, got 0x%02X %02X", a, r.F())
	}

	// 0x10 - 0x20 = 0x90, borrow
	a = alu.DAA(alu.Sub8(0x10, 0x20))
	if a != 0x90 || !r.IsSet(FlagCarry) {
		t.Errorf("Expected DAA of 10 - 20 to be 90 with C, got 0x%02X %02X", a, r.F())
	}
}

func TestALU_Logic(t *testing.T) {
	r, alu := newTestALU()

	if v := alu.And(0xF0, 0x0F); v != 0 || r.F() != FlagZero|FlagHalfCarry {
		t.Errorf("Expected AND to be 0 with ZH, got 0x%02X %02X", v, r.F())
	}
	if v := alu.Or(0xF0, 0x0F); v != 0xFF || r.F() != 0 {
		t.Errorf("Expected OR to be 0xFF, got 0x%02X %02X", v, r.F())
	}
	if v := alu.Xor(0xAA, 0xAA); v != 0 || r.F() != FlagZero {
		t.Errorf("Expected XOR to be 0 with Z, got 0x%02X %02X", v, r.F())
	}
	alu.Cp(0x10, 0x20)
	if r.F() != FlagSubtract|FlagCarry {
		t.Errorf("Expected CP 0x10, 0x20 to set NC, got %02X", r.F())
	}
	if v := alu.CPL(0x35); v != 0xCA || r.F()&(FlagSubtract|FlagHalfCarry) != FlagSubtract|FlagHalfCarry {
		t.Errorf("Expected CPL 0x35 to be 0xCA with NH, got 0x%02X %02X", v, r.F())
	}

	r.FlushFlags(FlagZero | FlagSubtract | FlagHalfCarry)
	alu.SCF()
	if r.F() != FlagZero|FlagCarry {
		t.Errorf("Expected SCF to leave ZC, got %02X", r.F())
	}
	alu.CCF()
	if r.F() != FlagZero {
		t.Errorf("Expected CCF to leave Z, got %02X", r.F())
	}
}

func TestALU_Rotate(t *testing.T) {
	r, alu := newTestALU()

	tests := []struct {
		name     string
		fn       func(uint8) uint8
		carryIn  bool
		in, out  uint8
		carryOut bool
	}{
		{"RLC", alu.RLC, false, 0x85, 0x0B, true},
		{"RRC", alu.RRC, false, 0x01, 0x80, true},
		{"RL", alu.RL, true, 0x80, 0x01, true},
		{"RL without carry", alu.RL, false, 0x80, 0x00, true},
		{"RR", alu.RR, true, 0x01, 0x80, true},
		{"SLA", alu.SLA, false, 0xFF, 0xFE, true},
		{"SRA", alu.SRA, false, 0x81, 0xC0, true},
		{"SWAP", alu.Swap, true, 0xAB, 0xBA, false},
		{"SRL", alu.SRL, false, 0x81, 0x40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.FlushFlags(0)
			r.Place(tt.carryIn, FlagCarry)
			if v := tt.fn(tt.in); v != tt.out {
				t.Errorf("Expected 0x%02X, got 0x%02X", tt.out, v)
			}
			if r.IsSet(FlagCarry) != tt.carryOut {
				t.Errorf("Expected carry to be %t", tt.carryOut)
			}
			if r.IsSet(FlagZero) != (tt.out == 0) {
				t.Errorf("Expected zero to be %t", tt.out == 0)
			}
		})
	}
}

func TestALU_Bits(t *testing.T) {
	r, alu := newTestALU()

	r.FlushFlags(FlagSubtract | FlagCarry)
	alu.Bit(7, 0x7F)
	if r.F() != FlagZero|FlagHalfCarry|FlagCarry {
		t.Errorf("Expected BIT 7 of 0x7F to set ZH and keep C, got %02X", r.F())
	}
	alu.Bit(0, 0x01)
	if r.F() != FlagHalfCarry|FlagCarry {
		t.Errorf("Expected BIT 0 of 0x01 to clear Z, got %02X", r.F())
	}
	if v := alu.Res(3, 0xFF); v != 0xF7 {
		t.Errorf("Expected RES 3 to be 0xF7, got 0x%02X", v)
	}
	if v := alu.Set(3, 0x00); v != 0x08 {
		t.Errorf("Expected SET 3 to be 0x08, got 0x%02X", v)
	}
}
