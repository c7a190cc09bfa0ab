package joypad

// Keys is an Input whose buttons are pressed and released
// programmatically, such as from a script or a test.
type Keys struct {
	down [8]bool
	just [8]bool
}

// Press presses a button.
func (k *Keys) Press(b Button) {
	if !k.down[b] {
		k.just[b] = true
	}
	k.down[b] = true
}

// Release releases a button.
func (k *Keys) Release(b Button) {
	k.down[b] = false
}

// IsDown returns true whilst b is pressed.
func (k *Keys) IsDown(b Button) bool {
	return k.down[b]
}

// WasJustPressed returns true if b has been pressed since the
// last call.
func (k *Keys) WasJustPressed(b Button) bool {
	just := k.just[b]
	k.just[b] = false
	return just
}
