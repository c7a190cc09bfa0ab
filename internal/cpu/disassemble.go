package cpu

import (
	"fmt"
	"strings"
)

// Disassemble decodes the instruction at addr, using read to fetch
// its bytes. It returns the text of the instruction, with immediate
// operands substituted, and its length in bytes.
func Disassemble(read func(uint16) uint8, addr uint16) (string, uint8) {
	opcode := read(addr)
	if opcode == 0xCB {
		return InstructionSetCB[read(addr+1)].Name, 2
	}

	instr := InstructionSet[opcode]
	name := instr.Name
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		nn := uint16(read(addr+1)) | uint16(read(addr+2))<<8
		name = strings.NewReplacer("d16", fmt.Sprintf("$%04X", nn), "a16", fmt.Sprintf("$%04X", nn)).Replace(name)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", read(addr+1)), 1)
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", read(addr+1)), 1)
	case strings.Contains(name, "r8"):
		e := int8(read(addr + 1))
		if strings.HasPrefix(name, "JR") {
			target := uint16(int32(addr) + 2 + int32(e))
			name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
		} else {
			name = strings.NewReplacer("+r8", fmt.Sprintf("%+d", e), "r8", fmt.Sprintf("%d", e)).Replace(name)
		}
	}

	return name, instr.Length
}
