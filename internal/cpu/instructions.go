package cpu

import "fmt"

func init() {
	generateLoadInstructions()
	generateArithmeticInstructions()
	generateJumpInstructions()
	generateMiscInstructions()
	generateCBInstructions()

	for _, opcode := range disallowedOpcodes {
		InstructionSet[opcode] = disallowedOpcode(opcode)
	}
}

func generateLoadInstructions() {
	// 0x40 - 0x7F - LD r, r' (except 0x76 HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == RegHL && src == RegHL {
				continue
			}
			dst, src := dst, src
			DefineInstruction(0x40|dst<<3|src,
				fmt.Sprintf("LD %s,%s", registerNames[dst], registerNames[src]),
				1, cost(dst, cost(src, 1, 1), 1),
				func(c *CPU) {
					c.setOperand(dst, c.operand(src))
				})
		}
	}

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x06|r<<3, fmt.Sprintf("LD %s,d8", registerNames[r]), 2, cost(r, 2, 1), func(c *CPU) {
			c.setOperand(r, c.fetch())
		})
	}

	// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
	for i, p := range pairs {
		p := p
		DefineInstruction(uint8(0x01|i<<4), fmt.Sprintf("LD %s,d16", pairNames[i]), 3, 3, func(c *CPU) {
			c.SetPair(p, c.fetch16())
		})
	}

	// 0x02, 0x12 - LD (rr), A and 0x0A, 0x1A - LD A, (rr)
	for i, p := range pairs[:2] {
		p := p
		DefineInstruction(uint8(0x02|i<<4), fmt.Sprintf("LD (%s),A", pairNames[i]), 1, 2, func(c *CPU) {
			c.bus.Write(c.Pair(p), c.A())
		})
		DefineInstruction(uint8(0x0A|i<<4), fmt.Sprintf("LD A,(%s)", pairNames[i]), 1, 2, func(c *CPU) {
			c.SetA(c.bus.Read(c.Pair(p)))
		})
	}
	DefineInstruction(0x22, "LD (HL+),A", 1, 2, func(c *CPU) {
		hl := c.Pair(HL)
		c.bus.Write(hl, c.A())
		c.SetPair(HL, hl+1)
	})
	DefineInstruction(0x32, "LD (HL-),A", 1, 2, func(c *CPU) {
		hl := c.Pair(HL)
		c.bus.Write(hl, c.A())
		c.SetPair(HL, hl-1)
	})
	DefineInstruction(0x2A, "LD A,(HL+)", 1, 2, func(c *CPU) {
		hl := c.Pair(HL)
		c.SetA(c.bus.Read(hl))
		c.SetPair(HL, hl+1)
	})
	DefineInstruction(0x3A, "LD A,(HL-)", 1, 2, func(c *CPU) {
		hl := c.Pair(HL)
		c.SetA(c.bus.Read(hl))
		c.SetPair(HL, hl-1)
	})

	DefineInstruction(0x08, "LD (a16),SP", 3, 5, func(c *CPU) {
		c.bus.Write16(c.fetch16(), c.SP())
	})
	DefineInstruction(0xE0, "LDH (a8),A", 2, 3, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.fetch()), c.A())
	})
	DefineInstruction(0xF0, "LDH A,(a8)", 2, 3, func(c *CPU) {
		c.SetA(c.bus.Read(0xFF00 | uint16(c.fetch())))
	})
	DefineInstruction(0xE2, "LD (C),A", 1, 2, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.GetLow(BC)), c.A())
	})
	DefineInstruction(0xF2, "LD A,(C)", 1, 2, func(c *CPU) {
		c.SetA(c.bus.Read(0xFF00 | uint16(c.GetLow(BC))))
	})
	DefineInstruction(0xEA, "LD (a16),A", 3, 4, func(c *CPU) {
		c.bus.Write(c.fetch16(), c.A())
	})
	DefineInstruction(0xFA, "LD A,(a16)", 3, 4, func(c *CPU) {
		c.SetA(c.bus.Read(c.fetch16()))
	})
	DefineInstruction(0xF8, "LD HL,SP+r8", 2, 3, func(c *CPU) {
		c.SetPair(HL, c.alu.AddSP(c.SP(), int8(c.fetch())))
	})
	DefineInstruction(0xF9, "LD SP,HL", 1, 2, func(c *CPU) {
		c.SetSP(c.Pair(HL))
	})

	// 0xC1 ... 0xF1 - POP rr and 0xC5 ... 0xF5 - PUSH rr
	for i, p := range stackPairs {
		p := p
		DefineInstruction(uint8(0xC1|i<<4), "POP "+stackPairNames[i], 1, 3, func(c *CPU) {
			c.SetPair(p, c.pop())
		})
		DefineInstruction(uint8(0xC5|i<<4), "PUSH "+stackPairNames[i], 1, 4, func(c *CPU) {
			c.push(c.Pair(p))
		})
	}
}

func generateArithmeticInstructions() {
	// 0x80 - 0xBF - ALU A, r and 0xC6 ... 0xFE - ALU A, d8
	ops := [8]struct {
		name string
		fn   func(c *CPU, n uint8)
	}{
		{"ADD A,", func(c *CPU, n uint8) { c.SetA(c.alu.Add8(c.A(), n)) }},
		{"ADC A,", func(c *CPU, n uint8) { c.SetA(c.alu.Adc8(c.A(), n)) }},
		{"SUB ", func(c *CPU, n uint8) { c.SetA(c.alu.Sub8(c.A(), n)) }},
		{"SBC A,", func(c *CPU, n uint8) { c.SetA(c.alu.Sbc8(c.A(), n)) }},
		{"AND ", func(c *CPU, n uint8) { c.SetA(c.alu.And(c.A(), n)) }},
		{"XOR ", func(c *CPU, n uint8) { c.SetA(c.alu.Xor(c.A(), n)) }},
		{"OR ", func(c *CPU, n uint8) { c.SetA(c.alu.Or(c.A(), n)) }},
		{"CP ", func(c *CPU, n uint8) { c.alu.Cp(c.A(), n) }},
	}
	for i, op := range ops {
		op := op
		for r := uint8(0); r < 8; r++ {
			r := r
			DefineInstruction(uint8(0x80|i<<3)|r, op.name+registerNames[r], 1, cost(r, 1, 1), func(c *CPU) {
				op.fn(c, c.operand(r))
			})
		}
		DefineInstruction(uint8(0xC6|i<<3), op.name+"d8", 2, 2, func(c *CPU) {
			op.fn(c, c.fetch())
		})
	}

	// 0x04, 0x0C ... 0x3C - INC r and 0x05, 0x0D ... 0x3D - DEC r
	for r := uint8(0); r < 8; r++ {
		r := r
		DefineInstruction(0x04|r<<3, "INC "+registerNames[r], 1, cost(r, 1, 2), func(c *CPU) {
			c.setOperand(r, c.alu.Inc8(c.operand(r)))
		})
		DefineInstruction(0x05|r<<3, "DEC "+registerNames[r], 1, cost(r, 1, 2), func(c *CPU) {
			c.setOperand(r, c.alu.Dec8(c.operand(r)))
		})
	}

	// 0x03 ... 0x33 - INC rr, 0x0B ... 0x3B - DEC rr, 0x09 ... 0x39 - ADD HL, rr
	for i, p := range pairs {
		p := p
		DefineInstruction(uint8(0x03|i<<4), "INC "+pairNames[i], 1, 2, func(c *CPU) {
			c.SetPair(p, c.alu.Inc16(c.Pair(p)))
		})
		DefineInstruction(uint8(0x0B|i<<4), "DEC "+pairNames[i], 1, 2, func(c *CPU) {
			c.SetPair(p, c.alu.Dec16(c.Pair(p)))
		})
		DefineInstruction(uint8(0x09|i<<4), "ADD HL,"+pairNames[i], 1, 2, func(c *CPU) {
			c.SetPair(HL, c.alu.Add16(c.Pair(HL), c.Pair(p)))
		})
	}

	DefineInstruction(0xE8, "ADD SP,r8", 2, 4, func(c *CPU) {
		c.SetSP(c.alu.AddSP(c.SP(), int8(c.fetch())))
	})
	DefineInstruction(0x27, "DAA", 1, 1, func(c *CPU) {
		c.SetA(c.alu.DAA(c.A()))
	})
	DefineInstruction(0x2F, "CPL", 1, 1, func(c *CPU) {
		c.SetA(c.alu.CPL(c.A()))
	})
	DefineInstruction(0x37, "SCF", 1, 1, func(c *CPU) {
		c.alu.SCF()
	})
	DefineInstruction(0x3F, "CCF", 1, 1, func(c *CPU) {
		c.alu.CCF()
	})

	// rotates of A always reset the zero flag
	DefineInstruction(0x07, "RLCA", 1, 1, func(c *CPU) {
		c.SetA(c.alu.RLC(c.A()))
		c.Unset(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", 1, 1, func(c *CPU) {
		c.SetA(c.alu.RRC(c.A()))
		c.Unset(FlagZero)
	})
	DefineInstruction(0x17, "RLA", 1, 1, func(c *CPU) {
		c.SetA(c.alu.RL(c.A()))
		c.Unset(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", 1, 1, func(c *CPU) {
		c.SetA(c.alu.RR(c.A()))
		c.Unset(FlagZero)
	})
}

func generateJumpInstructions() {
	DefineInstruction(0x18, "JR r8", 2, 3, func(c *CPU) {
		c.jumpRelative(int8(c.fetch()))
	})
	DefineInstruction(0xC3, "JP a16", 3, 4, func(c *CPU) {
		c.SetPC(c.fetch16())
	})
	DefineInstruction(0xE9, "JP HL", 1, 1, func(c *CPU) {
		c.SetPC(c.Pair(HL))
	})
	DefineInstruction(0xCD, "CALL a16", 3, 6, func(c *CPU) {
		c.call(c.fetch16())
	})
	DefineInstruction(0xC9, "RET", 1, 4, func(c *CPU) {
		c.SetPC(c.pop())
	})
	DefineInstruction(0xD9, "RETI", 1, 4, func(c *CPU) {
		c.SetPC(c.pop())
		c.ime = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineConditional(0x20|cc<<3, "JR "+conditionNames[cc]+",r8", 2, 2, 3, func(c *CPU) {
			e := int8(c.fetch())
			if c.condition(cc) {
				c.jumpRelative(e)
				c.taken = true
			}
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineConditional(0xC2|cc<<3, "JP "+conditionNames[cc]+",a16", 3, 3, 4, func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.SetPC(addr)
				c.taken = true
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineConditional(0xC4|cc<<3, "CALL "+conditionNames[cc]+",a16", 3, 3, 6, func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.call(addr)
				c.taken = true
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineConditional(0xC0|cc<<3, "RET "+conditionNames[cc], 1, 2, 5, func(c *CPU) {
			if c.condition(cc) {
				c.SetPC(c.pop())
				c.taken = true
			}
		})
	}

	// 0xC7, 0xCF ... 0xFF - RST n
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 1, 4, func(c *CPU) {
			c.call(vector)
		})
	}
}

func generateMiscInstructions() {
	DefineInstruction(0x00, "NOP", 1, 1, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 2, 1, func(c *CPU) {
		c.fetch()
		c.mode = ModeStop
	})
	DefineInstruction(0x76, "HALT", 1, 1, func(c *CPU) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", 1, 1, func(c *CPU) {
		c.ime = false
	})
	DefineInstruction(0xFB, "EI", 1, 1, func(c *CPU) {
		c.ime = true
	})
	// the prefix is decoded by the CPU, the entry only
	// describes it for disassembly
	InstructionSet[0xCB] = Instruction{Name: "PREFIX CB", Length: 1, Cycles: 1, fn: func(c *CPU) {}}
}

func generateCBInstructions() {
	rotates := [8]struct {
		name string
		fn   func(a *ALU, n uint8) uint8
	}{
		{"RLC", (*ALU).RLC},
		{"RRC", (*ALU).RRC},
		{"RL", (*ALU).RL},
		{"RR", (*ALU).RR},
		{"SLA", (*ALU).SLA},
		{"SRA", (*ALU).SRA},
		{"SWAP", (*ALU).Swap},
		{"SRL", (*ALU).SRL},
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x00 - 0x3F - rotates, shifts and swaps
		for i, op := range rotates {
			op := op
			DefineInstructionCB(uint8(i<<3)|r, op.name+" "+registerNames[r], cost(r, 2, 2), func(c *CPU) {
				c.setOperand(r, op.fn(c.alu, c.operand(r)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d,%s", b, registerNames[r]), cost(r, 2, 1), func(c *CPU) {
				c.alu.Bit(b, c.operand(r))
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d,%s", b, registerNames[r]), cost(r, 2, 2), func(c *CPU) {
				c.setOperand(r, c.alu.Res(b, c.operand(r)))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d,%s", b, registerNames[r]), cost(r, 2, 2), func(c *CPU) {
				c.setOperand(r, c.alu.Set(b, c.operand(r)))
			})
		}
	}
}

func (c *CPU) jumpRelative(e int8) {
	c.SetPC(uint16(int32(c.PC()) + int32(e)))
}

func (c *CPU) call(addr uint16) {
	c.push(c.PC())
	c.SetPC(addr)
}
