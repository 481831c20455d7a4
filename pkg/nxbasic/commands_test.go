package nxbasic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/machine"
)

// glyph returns the character a printed ASCII byte ends up as with the
// default font offset.
func glyph(c byte) byte {
	return byte(defaultFontCharOffset + int(c) - 32)
}

func TestPrint(t *testing.T) {
	c := runProgram(t, "PRINT \"HI\"\nPRINT 1,2;\nPRINT \"!\"")
	m := c.Machine()
	lib := c.interpreter.textLib

	assert.Equal(t, glyph('H'), m.Cell(0, 0, 0).Character)
	assert.Equal(t, glyph('I'), m.Cell(0, 1, 0).Character)
	assert.Equal(t, glyph('1'), m.Cell(0, 0, 1).Character)
	assert.Equal(t, glyph(' '), m.Cell(0, 1, 1).Character)
	assert.Equal(t, glyph('2'), m.Cell(0, 2, 1).Character)
	assert.Equal(t, glyph('!'), m.Cell(0, 3, 1).Character)
	assert.Equal(t, 0, lib.cursorX)
	assert.Equal(t, 2, lib.cursorY)
}

func TestPrintScrollsWindow(t *testing.T) {
	c := runProgram(t, "WINDOW 0,0,4,2,1\nPRINT \"A\"\nPRINT \"B\"\nPRINT \"C\"")
	m := c.Machine()
	assert.Equal(t, glyph('B'), m.Cell(1, 0, 0).Character)
	assert.Equal(t, glyph('C'), m.Cell(1, 0, 1).Character)
	assert.Equal(t, byte(0), m.Cell(0, 0, 0).Character)
}

func TestTextCommands(t *testing.T) {
	source := `TEXT 3,4,"OK"
NUMBER 0,0,42,3
LOCATE 5,6
PRINT "Q";
BG 1
CELL 2,3,65
CHAR 9
CELL 4,3`
	c := runProgram(t, source)
	m := c.Machine()

	assert.Equal(t, glyph('O'), m.Cell(0, 3, 4).Character)
	assert.Equal(t, glyph('K'), m.Cell(0, 4, 4).Character)
	assert.Equal(t, glyph('0'), m.Cell(0, 0, 0).Character)
	assert.Equal(t, glyph('4'), m.Cell(0, 1, 0).Character)
	assert.Equal(t, glyph('2'), m.Cell(0, 2, 0).Character)
	assert.Equal(t, glyph('Q'), m.Cell(0, 5, 6).Character)
	assert.Equal(t, byte(65), m.Cell(1, 2, 3).Character)
	assert.Equal(t, byte(9), m.Cell(1, 4, 3).Character)
}

func TestCellFunctions(t *testing.T) {
	source := "ATTR (3,1,0,1)\nCELL 1,1,77\nPOKE $A000,CELL.C(1,1)\nPOKE $A001,CELL.A(1,1)"
	c := runProgram(t, source)
	assert.Equal(t, byte(77), peek(t, c, 0xA000))

	attr := machine.CharAttributes(peek(t, c, 0xA001))
	assert.Equal(t, 3, attr.Palette())
	assert.True(t, attr.FlipX())
	assert.False(t, attr.FlipY())
	assert.True(t, attr.Priority())
}

func TestCls(t *testing.T) {
	c := runProgram(t, "PRINT \"X\"\nBG 1\nCELL 0,0,5\nCLS 1")
	m := c.Machine()
	assert.Equal(t, glyph('X'), m.Cell(0, 0, 0).Character)
	assert.Equal(t, byte(0), m.Cell(1, 0, 0).Character)

	c = runProgram(t, "PRINT \"X\"\nCLS")
	assert.Equal(t, byte(0), c.Machine().Cell(0, 0, 0).Character)
	assert.Equal(t, 0, c.interpreter.textLib.cursorY)
}

func TestBackgroundRegions(t *testing.T) {
	source := `CHAR 9,(2,1,,1)
BG FILL 0,0 TO 2,1
BG TINT 2,1 TO 1,1 PAL 5
CELL 5,5,1
CELL 6,5,2
BG SCROLL 5,5 TO 7,5 STEP 1,0`
	c := runProgram(t, source)
	m := c.Machine()

	for y := 0; y <= 1; y++ {
		for x := 0; x <= 2; x++ {
			assert.Equal(t, byte(9), m.Cell(0, x, y).Character)
		}
	}
	a := m.Cell(0, 0, 0).Attr
	assert.Equal(t, 2, a.Palette())
	assert.True(t, a.FlipX())
	assert.True(t, a.Priority())
	assert.Equal(t, 5, m.Cell(0, 1, 1).Attr.Palette())
	assert.Equal(t, 5, m.Cell(0, 2, 1).Attr.Palette())
	assert.Equal(t, 2, m.Cell(0, 0, 1).Attr.Palette())

	assert.Equal(t, byte(1), m.Cell(0, 5, 5).Character)
	assert.Equal(t, byte(1), m.Cell(0, 6, 5).Character)
	assert.Equal(t, byte(2), m.Cell(0, 7, 5).Character)
}

func TestBgCopy(t *testing.T) {
	// a 2x2 map with header, two bytes per cell
	source := `POKE $A002,2
POKE $A003,2
FOR I=0 TO 3
POKE $A004+I*2,10+I
POKE $A005+I*2,I
NEXT I
BG SOURCE $A000
BG COPY 0,0,2,2 TO 4,4
BG SOURCE $A004,2,2
BG 1
BG COPY 1,1,3,3 TO 0,0`
	c := runProgram(t, source)
	m := c.Machine()

	assert.Equal(t, machine.Cell{Character: 10, Attr: 0}, m.Cell(0, 4, 4))
	assert.Equal(t, machine.Cell{Character: 11, Attr: 1}, m.Cell(0, 5, 4))
	assert.Equal(t, machine.Cell{Character: 12, Attr: 2}, m.Cell(0, 4, 5))
	assert.Equal(t, machine.Cell{Character: 13, Attr: 3}, m.Cell(0, 5, 5))
	// cells outside the source map are skipped
	assert.Equal(t, machine.Cell{Character: 13, Attr: 3}, m.Cell(1, 0, 0))
	assert.Equal(t, machine.Cell{}, m.Cell(1, 1, 0))
}

func TestSprites(t *testing.T) {
	source := `SPRITE 3,10,20,5
SPRITE 4,1,2,3
SPRITE 4,,30
SPRITE 3 PAL 2 SIZE 1 FLIP 0,1
SPRITE OFF 4
POKE $A000,SPRITE.X(3)
POKE $A001,SPRITE.C(3)`
	c := runProgram(t, source)
	m := c.Machine()

	s := m.Sprite(3)
	assert.Equal(t, byte(10+machine.SpriteOffset), s.X)
	assert.Equal(t, byte(20+machine.SpriteOffset), s.Y)
	assert.Equal(t, byte(5), s.Character)
	assert.Equal(t, 2, s.Attr.Palette())
	assert.Equal(t, 1, s.Attr.Size())
	assert.True(t, s.Attr.FlipY())
	assert.False(t, s.Attr.FlipX())

	s4 := m.Sprite(4)
	assert.Equal(t, byte(0), s4.X)
	assert.Equal(t, byte(0), s4.Y)
	assert.Equal(t, byte(3), s4.Character)

	assert.Equal(t, byte(10), peek(t, c, 0xA000))
	assert.Equal(t, byte(5), peek(t, c, 0xA001))
}

func TestSpriteNeedsPosition(t *testing.T) {
	err := NewCore().CompileProgram("SPRITE 1", true)
	assert.Equal(t, ErrorExpectedComma, err.Code)
}

func TestScreenCommands(t *testing.T) {
	source := `PALETTE 1,5,,7,
COLOR 2,9
POKE $A000,COLOR(6)
SCROLL 1,300,5
DISPLAY 0,8,16
CELL SIZE 1,1
BG 1
BG VIEW OFF
DISPLAY (0,,)`
	c := runProgram(t, source)
	m := c.Machine()

	assert.Equal(t, byte(5), m.Color(4))
	assert.Equal(t, byte(0), m.Color(5))
	assert.Equal(t, byte(7), m.Color(6))
	assert.Equal(t, byte(9), m.Color(2))
	assert.Equal(t, byte(7), peek(t, c, 0xA000))

	x, y := m.Scroll(1)
	assert.Equal(t, 300, x)
	assert.Equal(t, 5, y)
	x, y = m.Scroll(0)
	assert.Equal(t, 8, x)
	assert.Equal(t, 16, y)

	d := m.DisplayAttr()
	assert.False(t, d.Has(machine.DisplaySprites))
	assert.True(t, d.Has(machine.DisplayPlaneA))
	assert.False(t, d.Has(machine.DisplayPlaneB))
	assert.True(t, d.Has(machine.DisplayPlaneBCellSize))
	assert.False(t, d.Has(machine.DisplayPlaneACellSize))
}

func TestDisplayScrollRejectsPlane(t *testing.T) {
	c, d := newTestCore(t, "DISPLAY 2,0,0")
	runToEnd(t, c)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorInvalidParameter, d.failures[0].Code)
}

func TestWindowMustFit(t *testing.T) {
	c, d := newTestCore(t, "WINDOW 30,0,4,4,0")
	runToEnd(t, c)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorInvalidParameter, d.failures[0].Code)
}

func TestMemoryCommands(t *testing.T) {
	source := `FILL $A100,4,7
POKE $A000,1: POKE $A001,2: POKE $A002,3
COPY $A000,3 TO $A001
POKEW $A010,$1234
POKEL $A020,-2
POKE $A030,PEEKW($A010)=$1234
POKE $A031,PEEKL($A020)=-2`
	c := runProgram(t, source)
	mem := c.Machine().Memory()

	assert.Equal(t, []byte{7, 7, 7, 7, 0}, mem[0xA100:0xA105])
	assert.Equal(t, []byte{1, 1, 2, 3}, mem[0xA000:0xA004])
	assert.Equal(t, []byte{0x34, 0x12}, mem[0xA010:0xA012])
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF}, mem[0xA020:0xA024])
	assert.Equal(t, byte(255), mem[0xA030])
	assert.Equal(t, byte(255), mem[0xA031])
}

func TestRomFunctions(t *testing.T) {
	source := "POKE $A000,ROM(2)\nPOKE $A001,SIZE(2)\nPOKE $A002,PEEK(ROM(2)+1)\n" +
		"#1:A\n01 02\n\n#2:B\nAA BB CC\n"
	c := runProgram(t, source)
	assert.Equal(t, byte(2), peek(t, c, 0xA000))
	assert.Equal(t, byte(3), peek(t, c, 0xA001))
	assert.Equal(t, byte(0xBB), peek(t, c, 0xA002))
}

func voiceReg(c *Core, v, reg int) byte {
	return c.Machine().Voice(v)[reg]
}

func TestSoundRegisters(t *testing.T) {
	source := `SOUND 1,2,8,0
VOLUME 1,10,3
ENVELOPE 0,1,2,3,4
LFO 0,5,,,6`
	c := runProgram(t, source)

	assert.Equal(t, byte(0x28), voiceReg(c, 1, voiceAttr))
	assert.Equal(t, byte(0xCA), voiceReg(c, 1, voiceVolume))
	assert.Equal(t, byte(0x21), voiceReg(c, 0, voiceEnvAD))
	assert.Equal(t, byte(0x43), voiceReg(c, 0, voiceEnvSR))
	assert.Equal(t, byte(0x05), voiceReg(c, 0, voiceLFO1))
	assert.Equal(t, byte(0x60), voiceReg(c, 0, voiceLFO2))
	assert.True(t, c.Machine().AudioEnabled())
}

func TestPlayWithLength(t *testing.T) {
	c, _ := newTestCore(t, "PLAY 0,58,2\nDO\nWAIT VBL\nLOOP")

	runFrames(c, 1)
	assert.Equal(t, byte(0x80), voiceReg(c, 0, voiceFreqLo))
	assert.Equal(t, byte(0x1B), voiceReg(c, 0, voiceFreqHi))
	status := voiceReg(c, 0, voiceStatus)
	assert.NotZero(t, status&statusGate)
	assert.Zero(t, status&statusInit)
	assert.NotZero(t, voiceReg(c, 0, voiceAttr)&attrTimeout)

	runFrames(c, 1)
	assert.Zero(t, voiceReg(c, 0, voiceStatus)&statusGate)
}

func TestPlaySoundAndStop(t *testing.T) {
	source := `POKE $A008,$31
POKE $A009,$42
SOUND SOURCE $A000
PLAY 2,40 SOUND 1
POKE $A010,PEEK($FF40+2*12+2)
STOP`
	c := runProgram(t, source)

	assert.Equal(t, byte(0x31), voiceReg(c, 2, voiceAttr))
	assert.Equal(t, byte(0x42), voiceReg(c, 2, voiceLength))
	assert.NotZero(t, peek(t, c, 0xA010)&statusGate)
	assert.Zero(t, voiceReg(c, 2, voiceStatus)&statusGate)
}

func TestKeyboard(t *testing.T) {
	source := `KEYBOARD ON
DO
K$=INKEY$
IF K$<>"" THEN POKE $A000,ASC(K$)
WAIT VBL
LOOP`
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	c.Update(&Input{Key: 'z'})
	c.Update(nil)

	require.Empty(t, d.failures)
	assert.Equal(t, byte('z'), peek(t, c, 0xA000))
	assert.Equal(t, KeyboardOn, c.ControlsInfo().KeyboardMode)
}

func TestTouch(t *testing.T) {
	source := `TOUCHSCREEN
DO
IF TAP THEN POKE $A000,TOUCH.X: POKE $A001,TOUCH.Y
WAIT VBL
LOOP`
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	c.Update(&Input{Touch: true, TouchX: 500, TouchY: 7})

	require.Empty(t, d.failures)
	assert.Equal(t, byte(machine.ScreenWidth-1), peek(t, c, 0xA000))
	assert.Equal(t, byte(7), peek(t, c, 0xA001))
	assert.True(t, c.ControlsInfo().Touch)
}
