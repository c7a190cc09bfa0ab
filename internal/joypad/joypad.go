// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonRight is the Right button.
	ButtonRight Button = iota
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
	// ButtonA is the A button.
	ButtonA
	// ButtonB is the B button.
	ButtonB
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonSelect is the Select button.
	ButtonSelect
)

// Input is implemented by the host, to report the state of
// each Button.
type Input interface {
	IsDown(Button) bool
	WasJustPressed(Button) bool
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds a bit for each Button, the lower 4 bits
	// hold the direction buttons and the upper 4 bits hold
	// the action buttons. A 1 indicates the button is down.
	pressed uint8
	// nibble is the last value of the input lines.
	nibble uint8

	b     *io.Bus
	input Input
}

// New returns a new joypad state, reading buttons from input,
// which may be nil.
func New(b *io.Bus, input Input) *State {
	s := &State{
		b:      b,
		input:  input,
		nibble: 0x0F,
	}
	b.ReserveAddress(types.P1, s)
	return s
}

// Sample reads the state of every button from the host input,
// and updates the input lines. It returns true if any button
// was just pressed.
func (s *State) Sample() bool {
	if s.input == nil {
		return false
	}

	justPressed := false
	s.pressed = 0
	for button := ButtonRight; button <= ButtonSelect; button++ {
		if s.input.IsDown(button) {
			s.pressed |= 1 << button
		}
		if s.input.WasJustPressed(button) {
			justPressed = true
		}
	}

	s.refresh(s.b.Get(types.P1))
	return justPressed
}

// OnWrite recomputes the input lines for the newly selected
// buttons.
func (s *State) OnWrite(_ uint16, value uint8) {
	s.refresh(value)
}

// refresh folds the pressed buttons selected by value into the
// lower nibble of types.P1, requesting io.JoypadINT if any line
// goes from high to low.
func (s *State) refresh(value uint8) {
	nibble := uint8(0x0F)
	if value&types.Bit4 == 0 {
		nibble &^= s.pressed & 0x0F
	}
	if value&types.Bit5 == 0 {
		nibble &^= s.pressed >> 4
	}

	if s.nibble&^nibble != 0 {
		s.b.RaiseInterrupt(io.JoypadINT)
	}
	s.nibble = nibble
	s.b.Set(types.P1, 0xC0|value&0x30|nibble)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.pressed = st.Read8()
	s.nibble = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.pressed)
	st.Write8(s.nibble)
}
