package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

const (
	defaultFontCharOffset = 192
	maxInputLength        = 254
	cursorBlinkFrames     = 30
)

// TextLib prints text into a window of a background plane and handles
// line input.
type TextLib struct {
	m *machine.Machine

	fontCharOffset int
	charAttr       machine.CharAttributes
	cellChar       int

	windowX, windowY          int
	windowWidth, windowHeight int
	windowBg                  int
	cursorX, cursorY          int

	// current plane for CELL, TEXT and the BG commands
	bg int

	sourceAddress int
	sourceWidth   int
	sourceHeight  int

	inputBuffer []byte
	blink       int
}

func (lib *TextLib) init(m *machine.Machine) {
	lib.m = m
	lib.reset()
}

func (lib *TextLib) reset() {
	lib.fontCharOffset = defaultFontCharOffset
	lib.charAttr = 0
	lib.cellChar = 0
	lib.windowX, lib.windowY = 0, 0
	lib.windowWidth = machine.ScreenWidth / 8
	lib.windowHeight = machine.ScreenHeight / 8
	lib.windowBg = 0
	lib.cursorX, lib.cursorY = 0, 0
	lib.bg = 0
	lib.sourceAddress = 0
	lib.sourceWidth = 0
	lib.sourceHeight = 0
	lib.inputBuffer = lib.inputBuffer[:0]
	lib.blink = 0
}

func (lib *TextLib) free() {
	lib.inputBuffer = nil
}

// charFor maps an ASCII byte to a font character. Lowercase letters use
// the uppercase glyphs, everything above '_' prints as space.
func (lib *TextLib) charFor(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 32 || c > 95 {
		c = 32
	}
	return byte(lib.fontCharOffset + int(c) - 32)
}

func (lib *TextLib) setWindowCell(x, y int, char byte) {
	lib.m.SetCell(lib.windowBg, lib.windowX+x, lib.windowY+y, machine.Cell{Character: char, Attr: lib.charAttr})
}

func (lib *TextLib) scrollIfNeeded() {
	if lib.cursorY < lib.windowHeight {
		return
	}
	for y := 0; y < lib.windowHeight-1; y++ {
		for x := 0; x < lib.windowWidth; x++ {
			cell := lib.m.Cell(lib.windowBg, lib.windowX+x, lib.windowY+y+1)
			lib.m.SetCell(lib.windowBg, lib.windowX+x, lib.windowY+y, cell)
		}
	}
	for x := 0; x < lib.windowWidth; x++ {
		lib.setWindowCell(x, lib.windowHeight-1, lib.charFor(' '))
	}
	lib.cursorY = lib.windowHeight - 1
}

// printText writes text at the cursor. '\n' starts a new line; the
// window scrolls when the cursor leaves it.
func (lib *TextLib) printText(text []byte) {
	for _, c := range text {
		lib.scrollIfNeeded()
		if c == '\n' {
			lib.cursorX = 0
			lib.cursorY++
		} else if c >= 32 {
			lib.setWindowCell(lib.cursorX, lib.cursorY, lib.charFor(c))
			lib.cursorX++
		}
		if lib.cursorX >= lib.windowWidth {
			lib.cursorX = 0
			lib.cursorY++
		}
	}
}

func (lib *TextLib) deleteBackward() bool {
	lib.setWindowCell(lib.cursorX, lib.cursorY, lib.charFor(' '))
	switch {
	case lib.cursorX > 0:
		lib.cursorX--
	case lib.cursorY > 0:
		lib.cursorX = lib.windowWidth - 1
		lib.cursorY--
	default:
		return false
	}
	lib.setWindowCell(lib.cursorX, lib.cursorY, lib.charFor(' '))
	return true
}

// writeText writes text at plane coordinates without moving the cursor.
func (lib *TextLib) writeText(text []byte, x, y int) {
	for _, c := range text {
		if c < 32 {
			continue
		}
		lib.m.SetCell(lib.bg, x, y, machine.Cell{Character: lib.charFor(c), Attr: lib.charAttr})
		x++
	}
}

// writeNumber writes the lowest digits of a number, right aligned and
// padded with zeros.
func (lib *TextLib) writeNumber(number, digits, x, y int) {
	if number < 0 {
		number = -number
	}
	x += digits
	div := 1
	for i := 0; i < digits; i++ {
		x--
		digit := (number / div) % 10
		lib.m.SetCell(lib.bg, x, y, machine.Cell{Character: byte(lib.fontCharOffset + 16 + digit), Attr: lib.charAttr})
		div *= 10
	}
}

// clearWindow fills the window with spaces and homes the cursor.
func (lib *TextLib) clearWindow() {
	for y := 0; y < lib.windowHeight; y++ {
		for x := 0; x < lib.windowWidth; x++ {
			lib.setWindowCell(x, y, lib.charFor(' '))
		}
	}
	lib.cursorX, lib.cursorY = 0, 0
}

// clearBg clears a complete plane to character 0.
func (lib *TextLib) clearBg(bg int) {
	for y := 0; y < machine.PlaneRows; y++ {
		for x := 0; x < machine.PlaneColumns; x++ {
			lib.m.SetCell(bg, x, y, machine.Cell{})
		}
	}
}

func (lib *TextLib) setWindow(x, y, w, h, bg int) {
	lib.windowX, lib.windowY = x, y
	lib.windowWidth, lib.windowHeight = w, h
	lib.windowBg = bg
	lib.cursorX, lib.cursorY = 0, 0
}

func (lib *TextLib) inputBegin() {
	lib.inputBuffer = lib.inputBuffer[:0]
	lib.blink = 0
	lib.m.SetKey(0)
	lib.scrollIfNeeded()
}

// inputUpdate consumes one key per frame and reports whether Return was
// pressed.
func (lib *TextLib) inputUpdate() bool {
	key := lib.m.Key()
	done := false
	if key != 0 {
		switch key {
		case '\b':
			if len(lib.inputBuffer) > 0 && lib.deleteBackward() {
				lib.inputBuffer = lib.inputBuffer[:len(lib.inputBuffer)-1]
			}
		case '\n':
			lib.setWindowCell(lib.cursorX, lib.cursorY, lib.charFor(' '))
			lib.printText([]byte{'\n'})
			done = true
		default:
			if len(lib.inputBuffer) < maxInputLength && key >= 32 && key < 128 {
				lib.printText([]byte{key})
				lib.inputBuffer = append(lib.inputBuffer, key)
			}
		}
		lib.blink = 0
		lib.m.SetKey(0)
	}
	if !done {
		lib.scrollIfNeeded()
		char := lib.charFor(' ')
		if lib.blink < cursorBlinkFrames/2 {
			char = byte(lib.fontCharOffset + 63)
		}
		lib.setWindowCell(lib.cursorX, lib.cursorY, char)
		lib.blink = (lib.blink + 1) % cursorBlinkFrames
	}
	return done
}

func (lib *TextLib) inputText() string {
	return string(lib.inputBuffer)
}

// copyBackground copies a w*h block of the BG SOURCE map to the current
// plane. Source cells are two bytes, character and attributes.
func (lib *TextLib) copyBackground(srcX, srcY, w, h, dstX, dstY int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if srcX+x >= lib.sourceWidth || srcY+y >= lib.sourceHeight {
				continue
			}
			a := lib.sourceAddress + ((srcY+y)*lib.sourceWidth+srcX+x)*2
			c, ok1 := lib.m.Peek(a)
			attr, ok2 := lib.m.Peek(a + 1)
			if !ok1 || !ok2 {
				continue
			}
			lib.m.SetCell(lib.bg, dstX+x, dstY+y, machine.Cell{Character: c, Attr: machine.CharAttributes(attr)})
		}
	}
}

// scrollBackground moves the cells of a region by dx,dy. Cells moved
// out of the region are lost, vacated cells keep their content.
func (lib *TextLib) scrollBackground(x1, y1, x2, y2, dx, dy int) {
	w, h := x2-x1+1, y2-y1+1
	if w <= 0 || h <= 0 {
		return
	}
	cells := make([]machine.Cell, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells[y*w+x] = lib.m.Cell(lib.bg, x1+x, y1+y)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tx, ty := x+dx, y+dy
			if tx < 0 || tx >= w || ty < 0 || ty >= h {
				continue
			}
			lib.m.SetCell(lib.bg, x1+tx, y1+ty, cells[y*w+x])
		}
	}
}

// setCells fills a region of the current plane with char and the
// current attributes.
func (lib *TextLib) setCells(x1, y1, x2, y2, char int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			lib.m.SetCell(lib.bg, x, y, machine.Cell{Character: byte(char), Attr: lib.charAttr})
		}
	}
}

// tintCells changes the attributes of a region with fn.
func (lib *TextLib) tintCells(x1, y1, x2, y2 int, fn func(machine.CharAttributes) machine.CharAttributes) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			cell := lib.m.Cell(lib.bg, x, y)
			cell.Attr = fn(cell.Attr)
			lib.m.SetCell(lib.bg, x, y, cell)
		}
	}
}
