package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// cmdPalette: PALETTE n,[c0],[c1],[c2],[c3]. Empty colors stay.
func (it *Interpreter) cmdPalette() ErrorCode {
	it.pc++
	n, code := it.evaluateInt(0, machine.NumPalettes-1)
	if code != ErrorNone {
		return code
	}
	var colors [4]int
	for i := range colors {
		if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
			return code
		}
		c, present, code := it.evaluateOptionalInt(0, 63)
		if code != ErrorNone {
			return code
		}
		colors[i] = -1
		if present {
			colors[i] = c
		}
	}
	if it.running() {
		for i, c := range colors {
			if c >= 0 {
				it.m.SetColor(n*4+i, byte(c))
			}
		}
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdColor() ErrorCode {
	it.pc++
	args, code := it.intList([2]int{0, machine.NumColors - 1}, [2]int{0, 63})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.m.SetColor(args[0], byte(args[1]))
	}
	return it.endOfCommand()
}

// cmdScroll: SCROLL bg,x,y with 9 bit positions.
func (it *Interpreter) cmdScroll() ErrorCode {
	it.pc++
	bg, code := it.evaluateInt(0, 1)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	return it.scrollTo(bg)
}

// scrollTo parses "x,y" and sets the scroll position of bg.
func (it *Interpreter) scrollTo(bg int) ErrorCode {
	x, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	y, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.m.SetScroll(bg, int(x)&0x1FF, int(y)&0x1FF)
	}
	return it.endOfCommand()
}

// cmdDisplay sets the display attributes, either as one number or as
// "(sprites,planeA,planeB)" where empty entries keep their value. The old
// form "DISPLAY bg,x,y" scrolls a plane.
func (it *Interpreter) cmdDisplay() ErrorCode {
	it.pc++
	if it.tokenType() == TokenBracketOpen {
		values, code := it.evaluateTuple([2]int{0, 1}, [2]int{0, 1}, [2]int{0, 1})
		if code != ErrorNone {
			return code
		}
		if it.running() {
			d := it.m.DisplayAttr()
			flags := []machine.DisplayAttributes{machine.DisplaySprites, machine.DisplayPlaneA, machine.DisplayPlaneB}
			for i, v := range values {
				if v >= 0 {
					d = d.With(flags[i], v == 1)
				}
			}
			it.m.SetDisplayAttr(d)
		}
		return it.endOfCommand()
	}

	attr, code := it.evaluateInt(0, 255)
	if code != ErrorNone {
		return code
	}
	if it.tokenType() == TokenComma {
		if it.running() && attr > 1 {
			return ErrorInvalidParameter
		}
		it.pc++
		return it.scrollTo(attr)
	}
	if it.running() {
		it.m.SetDisplayAttr(machine.DisplayAttributes(attr))
	}
	return it.endOfCommand()
}

// cmdCellSize: CELL SIZE bg,s with s 0 for 8x8 and 1 for 16x16 cells.
func (it *Interpreter) cmdCellSize() ErrorCode {
	it.pc += 2
	args, code := it.intList([2]int{0, 1}, [2]int{0, 1})
	if code != ErrorNone {
		return code
	}
	if it.running() {
		flag := machine.DisplayPlaneACellSize
		if args[0] == 1 {
			flag = machine.DisplayPlaneBCellSize
		}
		it.m.SetDisplayAttr(it.m.DisplayAttr().With(flag, args[1] == 1))
	}
	return it.endOfCommand()
}

// cmdView handles SPRITE VIEW ON|OFF and BG VIEW ON|OFF. BG VIEW works on
// the current plane.
func (it *Interpreter) cmdView(t TokenType) ErrorCode {
	it.pc += 2
	on := false
	switch it.tokenType() {
	case TokenON:
		on = true
	case TokenOFF:
	default:
		return ErrorSyntax
	}
	it.pc++
	if it.running() {
		flag := machine.DisplaySprites
		if t == TokenBG {
			flag = machine.DisplayPlaneA
			if it.textLib.bg == 1 {
				flag = machine.DisplayPlaneB
			}
		}
		it.m.SetDisplayAttr(it.m.DisplayAttr().With(flag, on))
	}
	return it.endOfCommand()
}

// evaluateTuple parses "(a,b,...)" where every entry may be empty or
// missing at the end. Empty entries are -1.
func (it *Interpreter) evaluateTuple(ranges ...[2]int) ([]int, ErrorCode) {
	if code := it.expect(TokenBracketOpen, ErrorExpectedLeftParenthesis); code != ErrorNone {
		return nil, code
	}
	values := make([]int, len(ranges))
	for i := range values {
		values[i] = -1
	}
	for i, r := range ranges {
		if i > 0 {
			if it.tokenType() != TokenComma {
				break
			}
			it.pc++
		}
		n, present, code := it.evaluateOptionalInt(r[0], r[1])
		if code != ErrorNone {
			return nil, code
		}
		if present {
			values[i] = n
		}
	}
	if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
		return nil, code
	}
	return values, ErrorNone
}
