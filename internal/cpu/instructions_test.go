package cpu

import (
	"fmt"
	"testing"
)

// instructionTimings holds the cost in machine cycles of every base
// opcode, when no branch is taken.
var instructionTimings = [256]uint8{
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0x00
	1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 0x10
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x20
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x80
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x90
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xB0
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 1, 3, 6, 2, 4, // 0xC0
	2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4, // 0xD0
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // 0xE0
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // 0xF0
}

// instructionLengths holds the encoded length of every base opcode.
var instructionLengths = [256]uint8{
	1, 3, 1, 1, 1, 1, 2, 1, 3, 1, 1, 1, 1, 1, 2, 1, // 0x00
	2, 3, 1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 2, 1, // 0x10
	2, 3, 1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 2, 1, // 0x20
	2, 3, 1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x40
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x50
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x60
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x70
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x80
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x90
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xB0
	1, 1, 3, 3, 3, 1, 2, 1, 1, 1, 3, 1, 3, 3, 2, 1, // 0xC0
	1, 1, 3, 1, 3, 1, 2, 1, 1, 1, 3, 1, 3, 1, 2, 1, // 0xD0
	2, 1, 1, 1, 1, 1, 2, 1, 2, 1, 3, 1, 1, 1, 2, 1, // 0xE0
	2, 1, 1, 1, 1, 1, 2, 1, 2, 1, 3, 1, 1, 1, 2, 1, // 0xF0
}

func TestInstructionSet_Timings(t *testing.T) {
	for opcode, instr := range InstructionSet {
		if instr.invalid {
			continue
		}
		if instr.Cycles != instructionTimings[opcode] {
			t.Errorf("%02X %s: Expected %d cycles, got %d", opcode, instr.Name, instructionTimings[opcode], instr.Cycles)
		}
		if instr.Length != instructionLengths[opcode] {
			t.Errorf("%02X %s: Expected length %d, got %d", opcode, instr.Name, instructionLengths[opcode], instr.Length)
		}
	}
}

func TestInstructionSet_Conditionals(t *testing.T) {
	taken := map[uint8]uint8{
		0x20: 3, 0x28: 3, 0x30: 3, 0x38: 3,
		0xC2: 4, 0xCA: 4, 0xD2: 4, 0xDA: 4,
		0xC4: 6, 0xCC: 6, 0xD4: 6, 0xDC: 6,
		0xC0: 5, 0xC8: 5, 0xD0: 5, 0xD8: 5,
	}
	for opcode, instr := range InstructionSet {
		expected, ok := taken[uint8(opcode)]
		if instr.Conditional() != ok {
			t.Errorf("%02X %s: Expected conditional to be %t", opcode, instr.Name, ok)
		}
		if ok && instr.Taken != expected {
			t.Errorf("%02X %s: Expected %d cycles when taken, got %d", opcode, instr.Name, expected, instr.Taken)
		}
	}
}

func TestInstructionSet_Invalid(t *testing.T) {
	invalid := 0
	for opcode, instr := range InstructionSet {
		if !instr.Valid() {
			invalid++
			found := false
			for _, d := range disallowedOpcodes {
				if d == uint8(opcode) {
					found = true
				}
			}
			if !found {
				t.Errorf("%02X: Expected opcode to be defined", opcode)
			}
		}
	}
	if invalid != 11 {
		t.Errorf("Expected 11 invalid opcodes, got %d", invalid)
	}
}

func TestInstructionSetCB(t *testing.T) {
	for opcode, instr := range InstructionSetCB {
		if !instr.Valid() {
			t.Fatalf("CB %02X: Expected opcode to be defined", opcode)
		}
		expected := uint8(2)
		if opcode&0x07 == int(RegHL) {
			expected = 4
			if opcode >= 0x40 && opcode < 0x80 {
				expected = 3
			}
		}
		if instr.Cycles != expected {
			t.Errorf("CB %02X %s: Expected %d cycles, got %d", opcode, instr.Name, expected, instr.Cycles)
		}
		if instr.Length != 2 {
			t.Errorf("CB %02X %s: Expected length 2, got %d", opcode, instr.Name, instr.Length)
		}
	}

	names := map[uint8]string{
		0x00: "RLC B", 0x1E: "RR (HL)", 0x37: "SWAP A",
		0x7C: "BIT 7,H", 0x86: "RES 0,(HL)", 0xFF: "SET 7,A",
	}
	for opcode, name := range names {
		if InstructionSetCB[opcode].Name != name {
			t.Errorf("CB %02X: Expected %q, got %q", opcode, name, InstructionSetCB[opcode].Name)
		}
	}
}

func TestInstruction_Loads(t *testing.T) {
	// every LD r, r' for register operands
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == RegHL || src == RegHL {
				continue
			}
			opcode := 0x40 | dst<<3 | src
			t.Run(fmt.Sprintf("%02X %s", opcode, InstructionSet[opcode].Name), func(t *testing.T) {
				c := newTestCPU(opcode)
				c.SetByte(src, 0x5A)
				c.stepInstruction(t)
				if c.GetByte(dst) != 0x5A {
					t.Errorf("Expected %s to be 0x5A, got 0x%02X", registerNames[dst], c.GetByte(dst))
				}
			})
		}
	}

	t.Run("LD (HL+),A", func(t *testing.T) {
		c := newTestCPU(0x22)
		c.SetPair(HL, 0xC000)
		c.SetA(0x42)
		c.stepInstruction(t)
		if c.bus.Read(0xC000) != 0x42 || c.Pair(HL) != 0xC001 {
			t.Errorf("Expected (0xC000) = 0x42 and HL = 0xC001, got 0x%02X 0x%04X", c.bus.Read(0xC000), c.Pair(HL))
		}
	})
	t.Run("LD (a16),SP", func(t *testing.T) {
		c := newTestCPU(0x08, 0x00, 0xC0)
		c.SetSP(0xBEEF)
		c.stepInstruction(t)
		if c.bus.Read16(0xC000) != 0xBEEF {
			t.Errorf("Expected (0xC000) = 0xBEEF, got 0x%04X", c.bus.Read16(0xC000))
		}
	})
	t.Run("LDH A,(a8)", func(t *testing.T) {
		c := newTestCPU(0xF0, 0x80)
		c.bus.Write(0xFF80, 0x99)
		c.stepInstruction(t)
		if c.A() != 0x99 {
			t.Errorf("Expected A = 0x99, got 0x%02X", c.A())
		}
	})
	t.Run("POP AF", func(t *testing.T) {
		c := newTestCPU(0xF1)
		c.SetSP(0xD000)
		c.bus.Write16(0xD000, 0x12FF)
		c.stepInstruction(t)
		if c.Pair(AF) != 0x12F0 {
			t.Errorf("Expected AF = 0x12F0, got 0x%04X", c.Pair(AF))
		}
	})
}

func TestInstruction_Branches(t *testing.T) {
	t.Run("JR NZ taken", func(t *testing.T) {
		c := newTestCPU(0x20, 0xFE)
		if cycles := c.stepInstruction(t); cycles != 3 {
			t.Errorf("Expected 3 cycles, got %d", cycles)
		}
		if c.PC() != 0x0100 {
			t.Errorf("Expected PC = 0x0100, got 0x%04X", c.PC())
		}
	})
	t.Run("JR NZ not taken", func(t *testing.T) {
		c := newTestCPU(0x20, 0xFE)
		c.Set(FlagZero)
		if cycles := c.stepInstruction(t); cycles != 2 {
			t.Errorf("Expected 2 cycles, got %d", cycles)
		}
		if c.PC() != 0x0102 {
			t.Errorf("Expected PC = 0x0102, got 0x%04X", c.PC())
		}
	})
	t.Run("CALL and RET", func(t *testing.T) {
		c := newTestCPU(0xCD, 0x10, 0x01)
		c.SetSP(0xFFFE)
		if cycles := c.stepInstruction(t); cycles != 6 {
			t.Errorf("Expected 6 cycles, got %d", cycles)
		}
		if c.PC() != 0x0110 || c.SP() != 0xFFFC {
			t.Errorf("Expected PC = 0x0110, SP = 0xFFFC, got 0x%04X 0x%04X", c.PC(), c.SP())
		}
		c.rom[0x0110] = 0xC9
		if cycles := c.stepInstruction(t); cycles != 4 {
			t.Errorf("Expected 4 cycles, got %d", cycles)
		}
		if c.PC() != 0x0103 || c.SP() != 0xFFFE {
			t.Errorf("Expected PC = 0x0103, SP = 0xFFFE, got 0x%04X 0x%04X", c.PC(), c.SP())
		}
	})
	t.Run("RET C not taken", func(t *testing.T) {
		c := newTestCPU(0xD8)
		if cycles := c.stepInstruction(t); cycles != 2 {
			t.Errorf("Expected 2 cycles, got %d", cycles)
		}
	})
	t.Run("RST 38H", func(t *testing.T) {
		c := newTestCPU(0xFF)
		c.SetSP(0xFFFE)
		c.stepInstruction(t)
		if c.PC() != 0x0038 {
			t.Errorf("Expected PC = 0x0038, got 0x%04X", c.PC())
		}
		if v, _ := c.bus.Pop(c.SP()); v != 0x0101 {
			t.Errorf("Expected return address 0x0101, got 0x%04X", v)
		}
	})
	t.Run("RETI", func(t *testing.T) {
		c := newTestCPU(0xD9)
		c.SetSP(c.bus.Push(0xFFFE, 0x1234))
		c.stepInstruction(t)
		if c.PC() != 0x1234 || !c.IME() {
			t.Errorf("Expected PC = 0x1234 with IME set, got 0x%04X %t", c.PC(), c.IME())
		}
	})
}

func TestInstruction_CB(t *testing.T) {
	t.Run("SWAP (HL)", func(t *testing.T) {
		c := newTestCPU(0xCB, 0x36)
		c.SetPair(HL, 0xC000)
		c.bus.Write(0xC000, 0xF1)
		if cycles := c.stepInstruction(t); cycles != 4 {
			t.Errorf("Expected 4 cycles, got %d", cycles)
		}
		if c.bus.Read(0xC000) != 0x1F {
			t.Errorf("Expected (HL) = 0x1F, got 0x%02X", c.bus.Read(0xC000))
		}
	})
	t.Run("BIT 7,H", func(t *testing.T) {
		c := newTestCPU(0xCB, 0x7C)
		c.SetHigh(HL, 0x80)
		c.stepInstruction(t)
		if c.IsSet(FlagZero) || !c.IsSet(FlagHalfCarry) {
			t.Errorf("Expected Z clear and H set, got %s", c.FlagsString())
		}
	})
	t.Run("RLCA clears zero", func(t *testing.T) {
		c := newTestCPU(0x07)
		c.SetA(0x00)
		c.Set(FlagZero)
		c.stepInstruction(t)
		if c.IsSet(FlagZero) {
			t.Errorf("Expected Z clear, got %s", c.FlagsString())
		}
	})
}
