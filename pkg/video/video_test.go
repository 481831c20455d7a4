package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/machine"
)

func newScreen() []uint32 {
	return make([]uint32, machine.ScreenWidth*machine.ScreenHeight)
}

// solidCharacter sets all pixels of character i to color c.
func solidCharacter(m *machine.Machine, i int, c byte) {
	b := c | c<<2 | c<<4 | c<<6
	char := m.Character(i)
	for j := range char {
		char[j] = b
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		color byte
		want  uint32
	}{
		{0x00, 0x000000},
		{0x3F, 0xFFFFFF},
		{0x30, 0xFF0000},
		{0x0C, 0x00FF00},
		{0x03, 0x0000FF},
		{0x15, 0x555555},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RGB(tt.color), "color %#x", tt.color)
	}
}

func TestRenderPlaneAndBackground(t *testing.T) {
	m := machine.New(nil)
	m.SetColor(0, 0x01)
	m.SetColor(4+2, 0x30)
	solidCharacter(m, 1, 2)
	m.SetCell(0, 1, 0, machine.Cell{Character: 1, Attr: machine.CharAttributes(0).WithPalette(1)})
	m.SetDisplayAttr(machine.DisplayPlaneA)

	out := newScreen()
	Render(m, out, nil)

	assert.Equal(t, RGB(0x01), out[0], "background color")
	assert.Equal(t, RGB(0x30), out[8], "first pixel of cell 1")
	assert.Equal(t, RGB(0x30), out[7*machine.ScreenWidth+15])
	assert.Equal(t, RGB(0x01), out[16])
}

func TestRenderScroll(t *testing.T) {
	m := machine.New(nil)
	m.SetColor(3, 0x3F)
	solidCharacter(m, 1, 3)
	m.SetCell(0, 1, 1, machine.Cell{Character: 1})
	m.SetScroll(0, 8, 8)
	m.SetDisplayAttr(machine.DisplayPlaneA)

	out := newScreen()
	Render(m, out, nil)
	assert.Equal(t, RGB(0x3F), out[0])
	assert.Equal(t, RGB(0x00), out[8])
}

func TestSpritePriority(t *testing.T) {
	m := machine.New(nil)
	m.SetColor(1, 0x03)
	m.SetColor(4+1, 0x0C)
	solidCharacter(m, 1, 1)
	m.SetCell(0, 0, 0, machine.Cell{Character: 1, Attr: machine.CharAttributes(0).WithPriority(true)})
	m.SetCell(0, 1, 0, machine.Cell{Character: 1})
	m.SetSprite(0, machine.Sprite{
		X:         machine.SpriteOffset + 4,
		Y:         machine.SpriteOffset,
		Character: 1,
		Attr:      machine.CharAttributes(0).WithPalette(1),
	})
	m.SetDisplayAttr(machine.DisplayPlaneA | machine.DisplaySprites)

	out := newScreen()
	Render(m, out, nil)
	assert.Equal(t, RGB(0x03), out[5], "priority cell stays in front")
	assert.Equal(t, RGB(0x0C), out[9], "sprite covers normal cell")
}

func TestSpriteSize(t *testing.T) {
	m := machine.New(nil)
	m.SetColor(1, 0x3F)
	for _, c := range []int{1, 2, 17, 18} {
		solidCharacter(m, c, 1)
	}
	m.SetSprite(0, machine.Sprite{
		X:         machine.SpriteOffset,
		Y:         machine.SpriteOffset,
		Character: 1,
		Attr:      machine.CharAttributes(0).WithSize(1),
	})
	m.SetDisplayAttr(machine.DisplaySprites)

	out := newScreen()
	Render(m, out, nil)
	assert.Equal(t, RGB(0x3F), out[15*machine.ScreenWidth+15])
	assert.Equal(t, RGB(0x00), out[16*machine.ScreenWidth+16])
}

func TestRasterCallback(t *testing.T) {
	m := machine.New(nil)
	var lines []int
	Render(m, newScreen(), func(y int) {
		lines = append(lines, y)
		m.SetColor(0, byte(y&0x3F))
	})
	require.Len(t, lines, machine.ScreenHeight)
	assert.Equal(t, 0, lines[0])
	assert.Equal(t, machine.ScreenHeight-1, lines[len(lines)-1])

	out := newScreen()
	Render(m, out, func(y int) { m.SetColor(0, byte(y&0x3F)) })
	assert.Equal(t, RGB(5), out[5*machine.ScreenWidth])
}
