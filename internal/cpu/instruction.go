package cpu

import "fmt"

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	// Name is the mnemonic of the instruction. Immediate operands
	// are written as d8, d16, a8, a16 or r8.
	Name string
	// Length is the encoded length in bytes, including any prefix.
	Length uint8
	// Cycles is the cost in machine cycles. For conditional
	// instructions, this is the cost when the branch is not taken.
	Cycles uint8
	// Taken is the cost in machine cycles of a conditional
	// instruction when its branch is taken.
	Taken uint8

	fn      func(*CPU)
	invalid bool
}

// Conditional returns true if the cost of the instruction depends
// on whether its branch is taken.
func (i Instruction) Conditional() bool {
	return i.Taken != 0
}

// Valid returns false for the undefined opcodes.
func (i Instruction) Valid() bool {
	return !i.invalid && i.fn != nil
}

var (
	// InstructionSet holds the 256 base instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, length, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{Name: name, Length: length, Cycles: cycles, fn: fn}
}

// DefineConditional defines a branching instruction in the
// InstructionSet, which costs taken cycles when its branch is taken.
func DefineConditional(opcode uint8, name string, length, cycles, taken uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{Name: name, Length: length, Cycles: cycles, Taken: taken, fn: fn}
}

// DefineInstructionCB defines the instruction in the
// InstructionSetCB, with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{Name: name, Length: 2, Cycles: cycles, fn: fn}
}

// disallowedOpcodes are undefined on the LR35902.
var disallowedOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func disallowedOpcode(opcode uint8) Instruction {
	return Instruction{
		Name:    fmt.Sprintf("INVALID %02X", opcode),
		Length:  1,
		Cycles:  1,
		invalid: true,
	}
}

// registerNames are the names of the operand indexes, as encoded
// in the register field of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pairNames are the register pairs addressed by bits 4-5 of the
// 16-bit load, increment and arithmetic opcodes.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

var pairs = [4]Pair{BC, DE, HL, SP}

// stackPairs are addressed by bits 4-5 of PUSH and POP.
var stackPairs = [4]Pair{BC, DE, HL, AF}

var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

// conditionNames are the branch conditions addressed by bits
// 3-4 of the conditional opcodes.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.IsSet(FlagZero)
	case 1:
		return c.IsSet(FlagZero)
	case 2:
		return !c.IsSet(FlagCarry)
	}
	return c.IsSet(FlagCarry)
}

// operand reads the operand addressed by index, which may be
// the memory at (HL).
func (c *CPU) operand(index uint8) uint8 {
	if index == RegHL {
		return c.bus.Read(c.Pair(HL))
	}
	return c.GetByte(index)
}

// setOperand writes the operand addressed by index.
func (c *CPU) setOperand(index uint8, value uint8) {
	if index == RegHL {
		c.bus.Write(c.Pair(HL), value)
		return
	}
	c.SetByte(index, value)
}

// cost returns the machine cycles of an instruction reading or
// writing operand index, where the (HL) form costs extra.
func cost(index uint8, cycles, extra uint8) uint8 {
	if index == RegHL {
		return cycles + extra
	}
	return cycles
}
