package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// attrChange collects PAL, FLIP, PRIO and SIZE modifiers. Fields are -1
// when not given.
type attrChange struct {
	pal, flipX, flipY, prio, size int
}

func (c attrChange) empty() bool {
	return c.pal < 0 && c.flipX < 0 && c.prio < 0 && c.size < 0
}

func (c attrChange) apply(a machine.CharAttributes) machine.CharAttributes {
	if c.pal >= 0 {
		a = a.WithPalette(c.pal)
	}
	if c.flipX >= 0 {
		a = a.WithFlip(c.flipX == 1, c.flipY == 1)
	}
	if c.prio >= 0 {
		a = a.WithPriority(c.prio == 1)
	}
	if c.size >= 0 {
		a = a.WithSize(c.size)
	}
	return a
}

// evaluateAttrChange parses modifiers in any order until something else
// follows. SIZE is only accepted for sprites.
func (it *Interpreter) evaluateAttrChange(withSize bool) (attrChange, ErrorCode) {
	c := attrChange{-1, -1, -1, -1, -1}
	var code ErrorCode
	for {
		switch it.tokenType() {
		case TokenPAL:
			it.pc++
			c.pal, code = it.evaluateInt(0, machine.NumPalettes-1)
		case TokenFLIP:
			it.pc++
			if c.flipX, code = it.evaluateInt(0, 1); code == ErrorNone {
				if code = it.expect(TokenComma, ErrorExpectedComma); code == ErrorNone {
					c.flipY, code = it.evaluateInt(0, 1)
				}
			}
		case TokenPRIO:
			it.pc++
			c.prio, code = it.evaluateInt(0, 1)
		case TokenSIZE:
			if !withSize {
				return c, ErrorSyntax
			}
			it.pc++
			c.size, code = it.evaluateInt(0, 3)
		default:
			return c, ErrorNone
		}
		if code != ErrorNone {
			return c, code
		}
	}
}

// evaluateCharAttr parses an attribute byte or "(pal,fx,fy,prio,size)"
// where empty entries keep the bits of old.
func (it *Interpreter) evaluateCharAttr(old machine.CharAttributes) (machine.CharAttributes, ErrorCode) {
	if it.tokenType() != TokenBracketOpen {
		n, code := it.evaluateInt(0, 255)
		return machine.CharAttributes(n), code
	}
	v, code := it.evaluateTuple(
		[2]int{0, machine.NumPalettes - 1},
		[2]int{0, 1},
		[2]int{0, 1},
		[2]int{0, 1},
		[2]int{0, 3},
	)
	if code != ErrorNone {
		return old, code
	}
	a := old
	if v[0] >= 0 {
		a = a.WithPalette(v[0])
	}
	if v[1] >= 0 {
		a = a.WithFlip(v[1] == 1, a.FlipY())
	}
	if v[2] >= 0 {
		a = a.WithFlip(a.FlipX(), v[2] == 1)
	}
	if v[3] >= 0 {
		a = a.WithPriority(v[3] == 1)
	}
	if v[4] >= 0 {
		a = a.WithSize(v[4])
	}
	return a, ErrorNone
}

// region parses "x1,y1 TO x2,y2" and orders the corners.
func (it *Interpreter) region() (x1, y1, x2, y2 int, code ErrorCode) {
	if x1, y1, code = it.cellPosition(); code != ErrorNone {
		return
	}
	if code = it.expect(TokenTO, ErrorExpectedTo); code != ErrorNone {
		return
	}
	if x2, y2, code = it.cellPosition(); code != ErrorNone {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2, ErrorNone
}

// cmdBg selects the plane for CELL, TEXT, NUMBER and the BG commands.
func (it *Interpreter) cmdBg() ErrorCode {
	it.pc++
	bg, code := it.evaluateInt(0, 1)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.bg = bg
	}
	return it.endOfCommand()
}

// cmdBgSource: BG SOURCE a[,w,h]. Without a size the map starts with a
// 4 byte header holding width and height at offsets 2 and 3.
func (it *Interpreter) cmdBgSource() ErrorCode {
	it.pc += 2
	a, code := it.evaluateInt(0, 0xFFFF)
	if code != ErrorNone {
		return code
	}
	w, h := -1, -1
	if it.tokenType() == TokenComma {
		it.pc++
		if w, code = it.evaluateInt(1, 0xFFFF); code != ErrorNone {
			return code
		}
		if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
			return code
		}
		if h, code = it.evaluateInt(1, 0xFFFF); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		if w < 0 {
			bw, ok1 := it.m.Peek(a + 2)
			bh, ok2 := it.m.Peek(a + 3)
			if !ok1 || !ok2 {
				return ErrorIllegalMemoryAccess
			}
			w, h = int(bw), int(bh)
			a += 4
		}
		it.textLib.sourceAddress = a
		it.textLib.sourceWidth = w
		it.textLib.sourceHeight = h
	}
	return it.endOfCommand()
}

// cmdBgCopy: BG COPY sx,sy,w,h TO dx,dy.
func (it *Interpreter) cmdBgCopy() ErrorCode {
	it.pc += 2
	src, code := it.intList(
		[2]int{0, 0xFFFF},
		[2]int{0, 0xFFFF},
		[2]int{1, machine.PlaneColumns},
		[2]int{1, machine.PlaneRows},
	)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenTO, ErrorExpectedTo); code != ErrorNone {
		return code
	}
	dx, dy, code := it.cellPosition()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.copyBackground(src[0], src[1], src[2], src[3], dx, dy)
		it.cycles += src[2] * src[3] * 2
	}
	return it.endOfCommand()
}

// cmdBgScroll: BG SCROLL x1,y1 TO x2,y2 STEP dx,dy.
func (it *Interpreter) cmdBgScroll() ErrorCode {
	it.pc += 2
	x1, y1, x2, y2, code := it.region()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenSTEP, ErrorSyntax); code != ErrorNone {
		return code
	}
	d, code := it.intList(
		[2]int{-machine.PlaneColumns, machine.PlaneColumns},
		[2]int{-machine.PlaneRows, machine.PlaneRows},
	)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.scrollBackground(x1, y1, x2, y2, d[0], d[1])
		it.cycles += (x2 - x1 + 1) * (y2 - y1 + 1) * 2
	}
	return it.endOfCommand()
}

// cmdBgFill: BG FILL x1,y1 TO x2,y2 [CHAR c]. Without CHAR the cell
// character set by CHAR is used.
func (it *Interpreter) cmdBgFill() ErrorCode {
	it.pc += 2
	x1, y1, x2, y2, code := it.region()
	if code != ErrorNone {
		return code
	}
	c := -1
	if it.tokenType() == TokenCHAR {
		it.pc++
		if c, code = it.evaluateInt(0, machine.NumCharacters-1); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		if c < 0 {
			c = it.textLib.cellChar
		}
		it.textLib.setCells(x1, y1, x2, y2, c)
		it.cycles += (x2 - x1 + 1) * (y2 - y1 + 1)
	}
	return it.endOfCommand()
}

// cmdBgTint: BG TINT x1,y1 TO x2,y2 followed by PAL, FLIP or PRIO.
func (it *Interpreter) cmdBgTint() ErrorCode {
	it.pc += 2
	x1, y1, x2, y2, code := it.region()
	if code != ErrorNone {
		return code
	}
	change, code := it.evaluateAttrChange(false)
	if code != ErrorNone {
		return code
	}
	if change.empty() {
		return ErrorSyntax
	}
	if it.running() {
		it.textLib.tintCells(x1, y1, x2, y2, change.apply)
		it.cycles += (x2 - x1 + 1) * (y2 - y1 + 1)
	}
	return it.endOfCommand()
}

// cmdCell: CELL x,y[,c]. The short form uses the cell character of CHAR.
func (it *Interpreter) cmdCell() ErrorCode {
	it.pc++
	x, y, code := it.cellPosition()
	if code != ErrorNone {
		return code
	}
	c := -1
	if it.tokenType() == TokenComma {
		it.pc++
		if c, code = it.evaluateInt(0, machine.NumCharacters-1); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		if c < 0 {
			c = it.textLib.cellChar
		}
		it.m.SetCell(it.textLib.bg, x, y, machine.Cell{Character: byte(c), Attr: it.textLib.charAttr})
	}
	return it.endOfCommand()
}

// cmdChar: CHAR [c],[attr] sets the cell character and attributes for
// CELL and BG FILL.
func (it *Interpreter) cmdChar() ErrorCode {
	it.pc++
	c, present, code := it.evaluateOptionalInt(0, machine.NumCharacters-1)
	if code != ErrorNone {
		return code
	}
	attr := it.textLib.charAttr
	attrGiven := false
	if it.tokenType() == TokenComma {
		it.pc++
		if !isEndOfCommand(it.tokenType()) {
			if attr, code = it.evaluateCharAttr(attr); code != ErrorNone {
				return code
			}
			attrGiven = true
		}
	}
	if !present && !attrGiven {
		return ErrorSyntax
	}
	if it.running() {
		if present {
			it.textLib.cellChar = c
		}
		it.textLib.charAttr = attr
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdAttr() ErrorCode {
	it.pc++
	attr, code := it.evaluateCharAttr(it.textLib.charAttr)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.charAttr = attr
	}
	return it.endOfCommand()
}

// cmdTextAttr handles PAL p, FLIP fx,fy and PRIO p as commands for the
// attributes of printed text and cells.
func (it *Interpreter) cmdTextAttr(TokenType) ErrorCode {
	change, code := it.evaluateAttrChange(false)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.textLib.charAttr = change.apply(it.textLib.charAttr)
	}
	return it.endOfCommand()
}
