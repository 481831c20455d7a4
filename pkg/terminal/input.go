package terminal

import (
	"github.com/antibyte/nxterm/pkg/machine"
	"github.com/antibyte/nxterm/pkg/nxbasic"
)

type gamepadKey struct {
	player int
	bit    machine.Gamepad
}

// Browser key names for the two gamepads when the program does not use
// the keyboard.
var gamepadKeys = map[string]gamepadKey{
	"ArrowUp":    {0, machine.GamepadUp},
	"ArrowDown":  {0, machine.GamepadDown},
	"ArrowLeft":  {0, machine.GamepadLeft},
	"ArrowRight": {0, machine.GamepadRight},
	"z":          {0, machine.GamepadA},
	"n":          {0, machine.GamepadA},
	"x":          {0, machine.GamepadB},
	"m":          {0, machine.GamepadB},

	"e":   {1, machine.GamepadUp},
	"d":   {1, machine.GamepadDown},
	"s":   {1, machine.GamepadLeft},
	"f":   {1, machine.GamepadRight},
	"Tab": {1, machine.GamepadA},
	"q":   {1, machine.GamepadB},
}

// keyRune converts a browser key name to a key of nxbasic.Input.
func keyRune(key string) (rune, bool) {
	switch key {
	case "Enter":
		return nxbasic.KeyReturn, true
	case "Backspace":
		return nxbasic.KeyBackspace, true
	}
	if len(key) == 1 && key[0] >= 32 && key[0] < 127 {
		return rune(key[0]), true
	}
	return 0, false
}

// keyboardMode is the wire name of m.
func keyboardMode(m nxbasic.KeyboardMode) string {
	switch m {
	case nxbasic.KeyboardOn:
		return "on"
	case nxbasic.KeyboardOptional:
		return "optional"
	}
	return "off"
}
