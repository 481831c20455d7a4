package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// setIOAttr changes the input configuration and tells the host.
func (it *Interpreter) setIOAttr(fn func(machine.IOAttributes) machine.IOAttributes) ErrorCode {
	if !it.m.PokeIOAttr(fn(it.m.IOAttr())) {
		return ErrorInputChangeNotAllowed
	}
	it.core.controlsDidChange()
	return ErrorNone
}

// cmdKeyboard: KEYBOARD ON|OFF|OPTIONAL.
func (it *Interpreter) cmdKeyboard() ErrorCode {
	it.pc++
	t := it.tokenType()
	switch t {
	case TokenON, TokenOFF, TokenOPTIONAL:
	default:
		return ErrorSyntax
	}
	it.pc++
	if it.running() {
		it.keyboardOptional = t == TokenOPTIONAL
		code := it.setIOAttr(func(a machine.IOAttributes) machine.IOAttributes {
			return a.WithKeyboard(t != TokenOFF)
		})
		if code != ErrorNone {
			return code
		}
	}
	return it.endOfCommand()
}

// cmdGamepad: GAMEPAD n|OFF. Gamepad and touch states are cleared.
func (it *Interpreter) cmdGamepad() ErrorCode {
	it.pc++
	n := 0
	if it.tokenType() == TokenOFF {
		it.pc++
	} else {
		var code ErrorCode
		if n, code = it.evaluateInt(0, machine.NumGamepads); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		code := it.setIOAttr(func(a machine.IOAttributes) machine.IOAttributes {
			return a.WithGamepads(n)
		})
		if code != ErrorNone {
			return code
		}
		it.m.SetIOStatus(it.m.IOStatus() &^ machine.StatusTouch)
		for i := 0; i < machine.NumGamepads; i++ {
			it.m.SetGamepad(i, 0)
		}
	}
	return it.endOfCommand()
}

// cmdTouchscreen enables touch input.
func (it *Interpreter) cmdTouchscreen() ErrorCode {
	it.pc++
	if it.running() {
		code := it.setIOAttr(func(a machine.IOAttributes) machine.IOAttributes {
			return a.WithTouch(true)
		})
		if code != ErrorNone {
			return code
		}
	}
	return it.endOfCommand()
}

// cmdPause: PAUSE ON|OFF switches the automatic pause handling, a plain
// PAUSE pauses the program.
func (it *Interpreter) cmdPause() ErrorCode {
	it.pc++
	t := it.tokenType()
	if t == TokenON || t == TokenOFF {
		it.pc++
	} else if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	if !it.running() {
		return it.endOfCommand()
	}
	switch t {
	case TokenON:
		it.m.SetIOStatus(it.m.IOStatus() &^ machine.StatusPause)
		it.handlesPause = true
	case TokenOFF:
		it.handlesPause = false
	default:
		it.state = StatePaused
		code := it.endOfCommand()
		it.exitEvaluation = true
		return code
	}
	return it.endOfCommand()
}
