// Package cpu provides an implementation of the Sharp LR35902
// CPU found in the DMG Game Boy.
package cpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

var (
	// ErrInvalidOpcode is reported when the CPU fetches one of the
	// 11 opcodes that are undefined on the LR35902.
	ErrInvalidOpcode = errors.New("cpu: invalid opcode")
	// ErrUnknownOpcode is reported when an opcode has no handler.
	ErrUnknownOpcode = errors.New("cpu: unknown opcode")
)

// Mode is the execution mode of the CPU.
type Mode uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal Mode = iota
	// ModeHalt is entered by HALT, and exited once an enabled
	// interrupt is requested.
	ModeHalt
	// ModeStop is entered by STOP, and exited once a button
	// is pressed.
	ModeStop
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeHalt:
		return "Halt"
	case ModeStop:
		return "Stop"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ErrorMode determines how the CPU reacts to an opcode error.
type ErrorMode uint8

const (
	// Strict returns the error from Step, leaving PC on the
	// faulting opcode.
	Strict ErrorMode = iota
	// Diagnostic logs and records the error, and continues.
	Diagnostic
	// Silent ignores the error.
	Silent
)

// ParseErrorMode parses the name of an ErrorMode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "strict":
		return Strict, nil
	case "diagnostic":
		return Diagnostic, nil
	case "silent":
		return Silent, nil
	}
	return Strict, fmt.Errorf("cpu: unknown error mode %q", s)
}

// Ticker is a component driven by the elapsed clock ticks of
// the CPU.
type Ticker interface {
	Update(ticks int)
}

// Sampler samples the host input once per Step, returning true
// if any button was just pressed.
type Sampler interface {
	Sample() bool
}

const lastOpcodes = 16

// CPU represents the Gameboy CPU. It is responsible for executing
// instructions, advancing the timer and display by the cycles they
// take, and servicing interrupts.
type CPU struct {
	*Registers
	alu *ALU

	bus     *io.Bus
	timer   Ticker
	display Ticker
	input   Sampler

	ime   bool
	mode  Mode
	taken bool // set by conditional instructions whose branch was taken

	// cycles is the number of clock ticks elapsed in the
	// current frame.
	cycles int

	errorMode   ErrorMode
	diagnostics *multierror.Error
	log         log.Logger
	trace       bool

	history   [lastOpcodes]uint16
	historyAt int
	recorded  int
}

// NewCPU creates a new CPU with the given components. The program
// counter starts at 0x0100, the entry point of a cartridge. input
// may be nil.
func NewCPU(r *Registers, alu *ALU, bus *io.Bus, timer Ticker, display Ticker, input Sampler) *CPU {
	c := &CPU{
		Registers: r,
		alu:       alu,
		bus:       bus,
		timer:     timer,
		display:   display,
		input:     input,
		log:       log.NewNullLogger(),
	}
	c.SetPC(0x0100)
	return c
}

// SetErrorMode sets the ErrorMode of the CPU.
func (c *CPU) SetErrorMode(m ErrorMode) {
	c.errorMode = m
}

// SetLogger sets the logger used for diagnostics and tracing.
func (c *CPU) SetLogger(l log.Logger) {
	c.log = l
}

// SetTrace enables logging every executed instruction.
func (c *CPU) SetTrace(enabled bool) {
	c.trace = enabled
}

// Mode returns the current Mode of the CPU.
func (c *CPU) Mode() Mode {
	return c.mode
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// Step runs the CPU for a single frame, which is
// types.CyclesPerFrame clock ticks. Ticks run over the frame
// are carried into the next.
func (c *CPU) Step() error {
	if c.input != nil && c.input.Sample() && c.mode == ModeStop {
		c.mode = ModeNormal
	}

	for c.cycles < types.CyclesPerFrame {
		if err := c.tick(); err != nil {
			return err
		}
	}
	c.cycles -= types.CyclesPerFrame

	return nil
}

// RunUntilSuspended executes instructions until the CPU leaves
// ModeNormal, or limit instructions have been executed. It returns
// the number of instructions executed.
func (c *CPU) RunUntilSuspended(limit int) (int, error) {
	n := 0
	for c.mode == ModeNormal && n < limit {
		if err := c.tick(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// tick executes a single instruction, or a single idle cycle whilst
// suspended, advances the timer and display and then services any
// pending interrupt.
func (c *CPU) tick() error {
	cycles, err := c.execute()
	if err != nil {
		return err
	}
	c.advance(cycles)
	c.handleInterrupts()
	return nil
}

// advance feeds m machine cycles to the timer and display.
func (c *CPU) advance(m int) {
	ticks := m * 4
	c.cycles += ticks
	c.timer.Update(ticks)
	c.display.Update(ticks)
}

func (c *CPU) execute() (int, error) {
	switch c.mode {
	case ModeHalt:
		if c.bus.HasInterrupts() {
			c.mode = ModeNormal
		}
		return 1, nil
	case ModeStop:
		return 1, nil
	}

	pc := c.PC()
	opcode := c.fetch()
	instr := &InstructionSet[opcode]
	code := uint16(opcode)
	if opcode == 0xCB {
		cb := c.fetch()
		instr = &InstructionSetCB[cb]
		code = 0xCB00 | uint16(cb)
	}
	c.record(code)

	if c.trace {
		text, _ := Disassemble(c.bus.Read, pc)
		c.log.Debugf("%04X  %-20s %s %s", pc, text, c.Registers, c.FlagsString())
	}

	if instr.invalid || instr.fn == nil {
		err := ErrUnknownOpcode
		if instr.invalid {
			err = ErrInvalidOpcode
		}
		return 1, c.fault(fmt.Errorf("%w 0x%02X at 0x%04X", err, code, pc), pc)
	}

	c.taken = false
	instr.fn(c)
	if c.taken {
		return int(instr.Taken), nil
	}
	return int(instr.Cycles), nil
}

// fault applies the ErrorMode to err.
func (c *CPU) fault(err error, pc uint16) error {
	switch c.errorMode {
	case Strict:
		c.SetPC(pc)
		return err
	case Diagnostic:
		c.log.Warnf("%v", err)
		c.diagnostics = multierror.Append(c.diagnostics, err)
	}
	return nil
}

// Diagnostics returns every error recorded in Diagnostic mode,
// or nil.
func (c *CPU) Diagnostics() error {
	return c.diagnostics.ErrorOrNil()
}

// handleInterrupts dispatches the highest priority pending
// interrupt, if the IME flag is set.
func (c *CPU) handleInterrupts() {
	if !c.ime || !c.bus.HasInterrupts() {
		return
	}

	vector := c.bus.IRQVector()
	c.ime = false
	c.mode = ModeNormal
	c.push(c.PC())
	c.SetPC(vector)
	c.advance(5)
}

func (c *CPU) record(code uint16) {
	c.history[c.historyAt] = code
	c.historyAt = (c.historyAt + 1) % lastOpcodes
	if c.recorded < lastOpcodes {
		c.recorded++
	}
}

// LastOpcodes returns up to the last 16 executed opcodes, oldest
// first. CB prefixed opcodes are reported as 0xCBxx.
func (c *CPU) LastOpcodes() []uint16 {
	n := c.recorded
	out := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.history[(c.historyAt-n+i+lastOpcodes)%lastOpcodes])
	}
	return out
}

// FlagsString returns the flags as a string, such as "Z-H-".
func (c *CPU) FlagsString() string {
	b := []byte("----")
	for i, f := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if c.IsSet(f) {
			b[i] = "ZNHC"[i]
		}
	}
	return string(b)
}

func (c *CPU) fetch() uint8 {
	pc := c.PC()
	c.SetPC(pc + 1)
	return c.bus.Read(pc)
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch()
	return uint16(c.fetch())<<8 | uint16(lo)
}

func (c *CPU) push(value uint16) {
	c.SetSP(c.bus.Push(c.SP(), value))
}

func (c *CPU) pop() uint16 {
	value, sp := c.bus.Pop(c.SP())
	c.SetSP(sp)
	return value
}

var _ types.Stater = (*CPU)(nil)

// Save saves the state of the CPU.
func (c *CPU) Save(s *types.State) {
	for p := AF; p <= PC; p++ {
		s.Write16(c.Pair(p))
	}
	s.WriteBool(c.ime)
	s.Write8(uint8(c.mode))
	s.Write32(uint32(c.cycles))
}

// Load loads the state of the CPU.
func (c *CPU) Load(s *types.State) {
	for p := AF; p <= PC; p++ {
		c.SetPair(p, s.Read16())
	}
	c.ime = s.ReadBool()
	c.mode = Mode(s.Read8())
	c.cycles = int(s.Read32())
}
