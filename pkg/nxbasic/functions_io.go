package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/machine"
)

func (it *Interpreter) fnPeek(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	addr := int(args[0].Float)
	var ok bool
	var v float32
	switch t {
	case TokenPEEK:
		var b byte
		b, ok = it.m.Peek(addr)
		v = float32(b)
	case TokenPEEKW:
		var w int
		w, ok = it.m.PeekWord(addr)
		v = float32(w)
	default:
		var l int32
		l, ok = it.m.PeekLong(addr)
		v = float32(l)
	}
	if !ok {
		return errorValue(ErrorIllegalMemoryAccess)
	}
	return floatValue(v)
}

// fnRomEntry returns the start address or the size of a cartridge
// ROM entry.
func (it *Interpreter) fnRomEntry(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[0], 0, datamanager.MaxEntries-1)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	entry := it.core.rom.Entry(n)
	if t == TokenROM {
		return floatValue(float32(machine.RomAddr + entry.Start))
	}
	return floatValue(float32(entry.Length))
}

func (it *Interpreter) fnInkey() TypedValue {
	it.pc++
	if !it.running() {
		return stringValue(nil)
	}
	if !it.m.IOAttr().Keyboard() {
		return errorValue(ErrorKeyboardNotEnabled)
	}
	key := it.m.Key()
	if key == 0 {
		return stringValue(it.nullString.Retain())
	}
	it.m.SetKey(0)
	return it.newString([]byte{key})
}

// gamepadArgs handles "F(p)" and "F TAP(p)". The player is checked
// against the number of enabled gamepads.
func (it *Interpreter) gamepadArgs(optional bool) (player, extra int, tap bool, code ErrorCode) {
	it.pc++
	if it.tokenType() == TokenTAP {
		tap = true
		it.pc++
	}
	classes := []TypeClass{TypeClassNumeric}
	if optional {
		classes = append(classes, TypeClassNumeric)
	}
	args, code := it.functionArgs(1, classes...)
	if code != ErrorNone {
		return 0, 0, false, code
	}
	if player, code = it.intArg(args[0], 0, machine.NumGamepads-1); code != ErrorNone {
		return 0, 0, false, code
	}
	if len(args) > 1 {
		if extra, code = it.intArg(args[1], 0, 2); code != ErrorNone {
			return 0, 0, false, code
		}
	}
	if it.running() {
		if it.m.IOAttr().Gamepads() == 0 {
			return 0, 0, false, ErrorGamepadNotEnabled
		}
	}
	return player, extra, tap, ErrorNone
}

func (it *Interpreter) gamepadState(player int, bits machine.Gamepad, tap bool) TypedValue {
	now := it.m.Gamepad(player) & bits
	if tap {
		now &^= it.lastFrameGamepads[player]
	}
	return boolValue(now != 0)
}

func (it *Interpreter) fnDirection(t TokenType) TypedValue {
	player, _, tap, code := it.gamepadArgs(false)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	var bit machine.Gamepad
	switch t {
	case TokenUP:
		bit = machine.GamepadUp
	case TokenDOWN:
		bit = machine.GamepadDown
	case TokenLEFT:
		bit = machine.GamepadLeft
	default:
		bit = machine.GamepadRight
	}
	return it.gamepadState(player, bit, tap)
}

// fnButton: BUTTON(p[,n]) with n 0 for any button, 1 for A, 2 for B.
func (it *Interpreter) fnButton() TypedValue {
	player, n, tap, code := it.gamepadArgs(true)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	bits := machine.GamepadA | machine.GamepadB
	switch n {
	case 1:
		bits = machine.GamepadA
	case 2:
		bits = machine.GamepadB
	}
	return it.gamepadState(player, bits, tap)
}

func (it *Interpreter) fnTouch(t TokenType) TypedValue {
	it.pc++
	if !it.running() {
		return floatValue(0)
	}
	if !it.m.IOAttr().Touch() {
		return errorValue(ErrorTouchNotEnabled)
	}
	touching := it.m.IOStatus()&machine.StatusTouch != 0
	if t == TokenTAP {
		return boolValue(touching && it.lastFrameIOStatus&machine.StatusTouch == 0)
	}
	return boolValue(touching)
}

func (it *Interpreter) fnTouchPosition(t TokenType) TypedValue {
	it.pc++
	if !it.running() {
		return floatValue(0)
	}
	if !it.m.IOAttr().Touch() {
		return errorValue(ErrorTouchNotEnabled)
	}
	x, y := it.m.Touch()
	if t == TokenTOUCHX {
		return floatValue(float32(x))
	}
	return floatValue(float32(y))
}

// fnPause reports and clears a press of the pause button.
func (it *Interpreter) fnPause() TypedValue {
	it.pc++
	if !it.running() {
		return floatValue(0)
	}
	if it.handlesPause {
		return errorValue(ErrorAutomaticPauseNotDisabled)
	}
	status := it.m.IOStatus()
	paused := status&machine.StatusPause != 0
	it.m.SetIOStatus(status &^ machine.StatusPause)
	return boolValue(paused)
}

func (it *Interpreter) fnCell(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(2, TypeClassNumeric, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	cell := it.m.Cell(it.textLib.bg, int(args[0].Float), int(args[1].Float))
	if t == TokenCELLC {
		return floatValue(float32(cell.Character))
	}
	return floatValue(float32(cell.Attr))
}

func (it *Interpreter) fnSprite(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[0], 0, machine.NumSprites-1)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	s := it.m.Sprite(n)
	switch t {
	case TokenSPRITEX:
		return floatValue(float32(int(s.X) - machine.SpriteOffset))
	case TokenSPRITEY:
		return floatValue(float32(int(s.Y) - machine.SpriteOffset))
	case TokenSPRITEC:
		return floatValue(float32(s.Character))
	}
	return floatValue(float32(s.Attr))
}

func (it *Interpreter) fnColor() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[0], 0, machine.NumColors-1)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	return floatValue(float32(it.m.Color(n)))
}

// fnFile reads the directory loaded by FILES.
func (it *Interpreter) fnFile(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[0], 0, datamanager.MaxEntries-1)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		if t == TokenFILE {
			return stringValue(nil)
		}
		return floatValue(0)
	}
	dir := it.core.diskDrive.directory
	if dir == nil {
		return errorValue(ErrorDirectoryNotLoaded)
	}
	if t == TokenFILE {
		return it.newString([]byte(dir[n].Comment))
	}
	return floatValue(float32(dir[n].Length))
}
