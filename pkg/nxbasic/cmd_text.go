package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// cmdPrint prints a list of values separated by ';' or ','. A comma
// prints a space, a separator at the end suppresses the line break.
func (it *Interpreter) cmdPrint() ErrorCode {
	it.pc++
	newLine := true
	for !isEndOfCommand(it.tokenType()) {
		v := it.evaluateExpression(TypeClassAny)
		if v.isError() {
			return v.Err
		}
		if it.running() {
			var b []byte
			if v.Type == ValueTypeString {
				b = v.Str.Bytes()
			} else {
				b = []byte(formatNumber(v.Float))
			}
			it.textLib.printText(b)
			it.cycles += len(b)
		}
		v.release()

		newLine = true
		sep := it.tokenType()
		if sep != TokenSemicolon && sep != TokenComma {
			break
		}
		it.pc++
		newLine = false
		if sep == TokenComma && it.running() {
			it.textLib.printText([]byte{' '})
		}
	}
	if newLine && it.running() {
		it.textLib.printText([]byte{'\n'})
	}
	return it.endOfCommand()
}

// cmdInput prints the prompt and switches to line input. The variable
// is assigned by finishInput once Return was pressed.
func (it *Interpreter) cmdInput() ErrorCode {
	it.pc++
	if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	var prompt *RCString
	if it.tokenType() == TokenString && it.tokens[it.pc+1].Type == TokenSemicolon {
		prompt = it.tokens[it.pc].Str
		it.pc += 2
	}
	if it.running() {
		it.textLib.printText(prompt.Bytes())
		it.inputVarToken = it.pc
		it.state = StateInput
		it.textLib.inputBegin()
		it.exitEvaluation = true
		return ErrorNone
	}
	if _, _, code := it.accessVariable(); code != ErrorNone {
		return code
	}
	return it.endOfCommand()
}

// cmdText writes a string at plane coordinates: TEXT x,y,s.
func (it *Interpreter) cmdText() ErrorCode {
	it.pc++
	x, y, code := it.cellPosition()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	s, code := it.evaluateString()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.writeText(s.Bytes(), x, y)
		it.cycles += s.Len()
	}
	s.Release()
	return it.endOfCommand()
}

// cmdNumber: NUMBER x,y,n,digits.
func (it *Interpreter) cmdNumber() ErrorCode {
	it.pc++
	x, y, code := it.cellPosition()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	n, code := it.evaluateInt(minInt, maxInt)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	digits, code := it.evaluateInt(1, 10)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.writeNumber(n, digits, x, y)
		it.cycles += digits
	}
	return it.endOfCommand()
}

// cmdCls clears both planes and homes the cursor, or with a number only
// that plane.
func (it *Interpreter) cmdCls() ErrorCode {
	it.pc++
	bg, present, code := it.evaluateOptionalInt(0, 1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		if present {
			it.textLib.clearBg(bg)
		} else {
			it.textLib.clearBg(0)
			it.textLib.clearBg(1)
			it.textLib.cursorX, it.textLib.cursorY = 0, 0
		}
		it.cycles += machine.PlaneColumns * machine.PlaneRows / 8
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdClw() ErrorCode {
	it.pc++
	if it.running() {
		it.textLib.clearWindow()
		it.cycles += it.textLib.windowWidth * it.textLib.windowHeight / 8
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdLocate() ErrorCode {
	it.pc++
	x, code := it.evaluateInt(0, it.textLib.windowWidth-1)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	y, code := it.evaluateInt(0, it.textLib.windowHeight-1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.cursorX, it.textLib.cursorY = x, y
	}
	return it.endOfCommand()
}

// cmdWindow: WINDOW x,y,w,h,bg.
func (it *Interpreter) cmdWindow() ErrorCode {
	it.pc++
	args, code := it.intList(
		[2]int{0, machine.PlaneColumns - 1},
		[2]int{0, machine.PlaneRows - 1},
		[2]int{1, machine.PlaneColumns},
		[2]int{1, machine.PlaneRows},
		[2]int{0, 1},
	)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		x, y, w, h := args[0], args[1], args[2], args[3]
		if x+w > machine.PlaneColumns || y+h > machine.PlaneRows {
			return ErrorInvalidParameter
		}
		it.textLib.setWindow(x, y, w, h, args[4])
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdFont() ErrorCode {
	it.pc++
	c, code := it.evaluateInt(0, machine.NumCharacters-1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.fontCharOffset = c
	}
	return it.endOfCommand()
}

// cellPosition parses "x,y" plane coordinates.
func (it *Interpreter) cellPosition() (x, y int, code ErrorCode) {
	if x, code = it.evaluateInt(0, machine.PlaneColumns-1); code != ErrorNone {
		return 0, 0, code
	}
	if code = it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return 0, 0, code
	}
	if y, code = it.evaluateInt(0, machine.PlaneRows-1); code != ErrorNone {
		return 0, 0, code
	}
	return x, y, ErrorNone
}

// intList parses a fixed number of comma separated integers.
func (it *Interpreter) intList(ranges ...[2]int) ([]int, ErrorCode) {
	values := make([]int, len(ranges))
	for i, r := range ranges {
		if i > 0 {
			if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
				return nil, code
			}
		}
		n, code := it.evaluateInt(r[0], r[1])
		if code != ErrorNone {
			return nil, code
		}
		values[i] = n
	}
	return values, ErrorNone
}
