package machine

// CharAttributes is the attribute byte of cells and sprites:
// palette:3, flipX:1, flipY:1, priority:1, size:2.
type CharAttributes byte

func (a CharAttributes) Palette() int   { return int(a & 0x07) }
func (a CharAttributes) FlipX() bool    { return a&0x08 != 0 }
func (a CharAttributes) FlipY() bool    { return a&0x10 != 0 }
func (a CharAttributes) Priority() bool { return a&0x20 != 0 }

// Size is 0..3 for sprites of 1x1 up to 4x4 characters.
func (a CharAttributes) Size() int { return int(a>>6) & 0x03 }

func (a CharAttributes) WithPalette(p int) CharAttributes {
	return a&^0x07 | CharAttributes(p&0x07)
}

func (a CharAttributes) WithFlip(x, y bool) CharAttributes {
	a &^= 0x18
	if x {
		a |= 0x08
	}
	if y {
		a |= 0x10
	}
	return a
}

func (a CharAttributes) WithPriority(p bool) CharAttributes {
	a &^= 0x20
	if p {
		a |= 0x20
	}
	return a
}

func (a CharAttributes) WithSize(s int) CharAttributes {
	return a&^0xC0 | CharAttributes(s&0x03)<<6
}

// DisplayAttributes: sprites, planeA, planeB, planeACellSize, planeBCellSize.
type DisplayAttributes byte

const (
	DisplaySprites DisplayAttributes = 1 << iota
	DisplayPlaneA
	DisplayPlaneB
	DisplayPlaneACellSize
	DisplayPlaneBCellSize
)

func (d DisplayAttributes) Has(flag DisplayAttributes) bool { return d&flag != 0 }

func (d DisplayAttributes) With(flag DisplayAttributes, on bool) DisplayAttributes {
	if on {
		return d | flag
	}
	return d &^ flag
}

// Gamepad state bits
type Gamepad byte

const (
	GamepadUp Gamepad = 1 << iota
	GamepadDown
	GamepadLeft
	GamepadRight
	GamepadA
	GamepadB
)

func (g Gamepad) Has(b Gamepad) bool { return g&b != 0 }

// IOStatus: pause bit 0, touch bit 1.
type IOStatus byte

const (
	StatusPause IOStatus = 1 << iota
	StatusTouch
)

// IOAttributes: gamepadsEnabled:2, keyboardEnabled:1, touchEnabled:1.
type IOAttributes byte

const (
	ioKeyboard IOAttributes = 0x04
	ioTouch    IOAttributes = 0x08
)

func (a IOAttributes) Gamepads() int  { return int(a & 0x03) }
func (a IOAttributes) Keyboard() bool { return a&ioKeyboard != 0 }
func (a IOAttributes) Touch() bool    { return a&ioTouch != 0 }

func (a IOAttributes) WithGamepads(n int) IOAttributes { return a&^0x03 | IOAttributes(n&0x03) }

func (a IOAttributes) WithKeyboard(on bool) IOAttributes {
	if on {
		return a | ioKeyboard
	}
	return a &^ ioKeyboard
}

func (a IOAttributes) WithTouch(on bool) IOAttributes {
	if on {
		return a | ioTouch
	}
	return a &^ ioTouch
}

// Sprite is one entry of the sprite registers.
type Sprite struct {
	X, Y      byte
	Character byte
	Attr      CharAttributes
}

// Cell is one entry of a background plane.
type Cell struct {
	Character byte
	Attr      CharAttributes
}

func (m *Machine) Sprite(i int) Sprite {
	a := SpritesAddr + (i&(NumSprites-1))*4
	return Sprite{m.mem[a], m.mem[a+1], m.mem[a+2], CharAttributes(m.mem[a+3])}
}

func (m *Machine) SetSprite(i int, s Sprite) {
	a := SpritesAddr + (i&(NumSprites-1))*4
	m.mem[a], m.mem[a+1], m.mem[a+2], m.mem[a+3] = s.X, s.Y, s.Character, byte(s.Attr)
}

func planeAddr(plane int) int {
	if plane&1 == 1 {
		return Bg1Addr
	}
	return Bg0Addr
}

// Cell returns a cell of BG0 or BG1. Coordinates wrap around the plane.
func (m *Machine) Cell(plane, x, y int) Cell {
	a := planeAddr(plane) + ((y&(PlaneRows-1))*PlaneColumns+(x&(PlaneColumns-1)))*2
	return Cell{m.mem[a], CharAttributes(m.mem[a+1])}
}

func (m *Machine) SetCell(plane, x, y int, c Cell) {
	a := planeAddr(plane) + ((y&(PlaneRows-1))*PlaneColumns+(x&(PlaneColumns-1)))*2
	m.mem[a], m.mem[a+1] = c.Character, byte(c.Attr)
}

// Character returns the 16 byte bitmap of a character.
func (m *Machine) Character(i int) []byte {
	a := CharactersAddr + (i&(NumCharacters-1))*CharacterSize
	return m.mem[a : a+CharacterSize]
}

func (m *Machine) Color(i int) byte { return m.mem[ColorsAddr+(i&(NumColors-1))] }

func (m *Machine) SetColor(i int, c byte) { m.mem[ColorsAddr+(i&(NumColors-1))] = c & 0x3F }

func (m *Machine) Colors() []byte { return m.mem[ColorsAddr : ColorsAddr+NumColors] }

func (m *Machine) DisplayAttr() DisplayAttributes {
	return DisplayAttributes(m.mem[VideoRegsAddr+regDisplayAttr])
}

func (m *Machine) SetDisplayAttr(d DisplayAttributes) {
	m.mem[VideoRegsAddr+regDisplayAttr] = byte(d)
}

// Scroll returns the 9 bit scroll position of a plane.
func (m *Machine) Scroll(plane int) (x, y int) {
	msb := m.mem[VideoRegsAddr+regScrollMSB]
	base := VideoRegsAddr + regScrollAX
	shift := uint(0)
	if plane&1 == 1 {
		base = VideoRegsAddr + regScrollBX
		shift = 2
	}
	x = int(m.mem[base]) | int(msb>>shift&1)<<8
	y = int(m.mem[base+1]) | int(msb>>(shift+1)&1)<<8
	return x, y
}

func (m *Machine) SetScroll(plane, x, y int) {
	msbAddr := VideoRegsAddr + regScrollMSB
	base := VideoRegsAddr + regScrollAX
	shift := uint(0)
	if plane&1 == 1 {
		base = VideoRegsAddr + regScrollBX
		shift = 2
	}
	m.mem[base] = byte(x)
	m.mem[base+1] = byte(y)
	msb := m.mem[msbAddr] &^ (0x03 << shift)
	msb |= byte(x>>8&1)<<shift | byte(y>>8&1)<<(shift+1)
	m.mem[msbAddr] = msb
}

func (m *Machine) RasterLine() int { return int(m.mem[VideoRegsAddr+regRasterLine]) }

func (m *Machine) SetRasterLine(y int) { m.mem[VideoRegsAddr+regRasterLine] = byte(y) }

// Voice returns the 12 register bytes of an audio voice.
func (m *Machine) Voice(v int) []byte {
	a := AudioRegsAddr + (v&(NumVoices-1))*VoiceSize
	return m.mem[a : a+VoiceSize]
}

func (m *Machine) Gamepad(player int) Gamepad {
	return Gamepad(m.mem[IORegsAddr+regGamepad0+(player&1)])
}

func (m *Machine) SetGamepad(player int, g Gamepad) {
	m.mem[IORegsAddr+regGamepad0+(player&1)] = byte(g)
}

func (m *Machine) Touch() (x, y int) {
	return int(m.mem[IORegsAddr+regTouchX]), int(m.mem[IORegsAddr+regTouchY])
}

func (m *Machine) SetTouch(x, y int) {
	m.mem[IORegsAddr+regTouchX] = byte(x)
	m.mem[IORegsAddr+regTouchY] = byte(y)
}

func (m *Machine) Key() byte { return m.mem[IORegsAddr+regKey] }

func (m *Machine) SetKey(k byte) { m.mem[IORegsAddr+regKey] = k }

func (m *Machine) IOStatus() IOStatus { return IOStatus(m.mem[IORegsAddr+regStatus]) }

func (m *Machine) SetIOStatus(s IOStatus) { m.mem[IORegsAddr+regStatus] = byte(s) }

func (m *Machine) IOAttr() IOAttributes { return IOAttributes(m.mem[IORegsAddr+regIOAttr]) }

func (m *Machine) SetIOAttr(a IOAttributes) { m.mem[IORegsAddr+regIOAttr] = byte(a) }

// PokeIOAttr changes the input configuration with the same checks as a
// program write.
func (m *Machine) PokeIOAttr(a IOAttributes) bool { return m.Poke(IORegsAddr+regIOAttr, byte(a)) }
