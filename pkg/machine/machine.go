// Package machine implements the 64 KB address space of the console:
// cartridge ROM, video RAM, working and persistent RAM and the
// memory-mapped video, audio and I/O registers.
package machine

// Address map
const (
	RomAddr           = 0x0000
	RomSize           = 0x8000
	CharactersAddr    = 0x8000
	CharactersSize    = 0x1000
	Bg0Addr           = 0x9000
	Bg1Addr           = 0x9800
	PlaneSize         = 0x0800
	WorkingRAMAddr    = 0xA000
	WorkingRAMSize    = 0x4000
	PersistentRAMAddr = 0xE000
	PersistentRAMSize = 0x1000
	ReservedAddr      = 0xF000
	SpritesAddr       = 0xFE00
	ColorsAddr        = 0xFF00
	VideoRegsAddr     = 0xFF20
	AudioRegsAddr     = 0xFF40
	AudioRegsSize     = 0x30
	IORegsAddr        = 0xFF70
	ReservedRegsAddr  = 0xFF80
	MemorySize        = 0x10000
)

// Video geometry
const (
	ScreenWidth   = 160
	ScreenHeight  = 128
	NumCharacters = 256
	CharacterSize = 16
	PlaneColumns  = 32
	PlaneRows     = 32
	NumSprites    = 64
	SpriteOffset  = 32
	NumPalettes   = 8
	NumColors     = NumPalettes * 4
	NumVoices     = 4
	VoiceSize     = 12
	NumGamepads   = 2
)

// Offsets inside the video register block
const (
	regDisplayAttr = iota
	regScrollAX
	regScrollAY
	regScrollBX
	regScrollBY
	regScrollMSB
	regRasterLine
)

// Offsets inside the I/O register block
const (
	regGamepad0 = iota
	regGamepad1
	regTouchX
	regTouchY
	regKey
	regStatus
	regIOAttr
)

// Listener is notified about accesses that the host may have to serve.
type Listener interface {
	// PersistentRAMWillAccess is called once before the first read or
	// write of persistent RAM. The host can fill ram with saved data.
	PersistentRAMWillAccess(ram []byte)
}

// Machine holds the complete memory of the console.
type Machine struct {
	mem [MemorySize]byte

	listener           Listener
	persistentAccessed bool
	persistentDirty    bool
	audioEnabled       bool
}

// New creates a machine with cleared memory.
func New(listener Listener) *Machine {
	return &Machine{listener: listener}
}

// SetListener replaces the access listener.
func (m *Machine) SetListener(listener Listener) {
	m.listener = listener
}

// Reset clears RAM and registers. ROM is kept. Persistent RAM is only
// cleared when resetPersistent is set.
func (m *Machine) Reset(resetPersistent bool) {
	clear(m.mem[CharactersAddr:PersistentRAMAddr])
	clear(m.mem[ReservedAddr:])
	if resetPersistent {
		clear(m.mem[PersistentRAMAddr:ReservedAddr])
		m.persistentAccessed = false
	}
	m.persistentDirty = false
	m.audioEnabled = false
}

// LoadROM copies data into the cartridge ROM and clears the rest of it.
func (m *Machine) LoadROM(data []byte) {
	n := copy(m.mem[RomAddr:RomSize], data)
	clear(m.mem[n:RomSize])
}

// Peek reads one byte. ok is false outside the address space.
func (m *Machine) Peek(addr int) (value byte, ok bool) {
	if addr < 0 || addr >= MemorySize {
		return 0, false
	}
	if isPersistent(addr) {
		m.willAccessPersistent()
	}
	return m.mem[addr], true
}

// Poke writes one byte. ROM, reserved areas and illegal changes of the
// input configuration are rejected.
func (m *Machine) Poke(addr int, value byte) bool {
	if !m.canPoke(addr, value) {
		return false
	}
	switch {
	case isPersistent(addr):
		m.willAccessPersistent()
		m.persistentDirty = true
	case addr >= AudioRegsAddr && addr < AudioRegsAddr+AudioRegsSize:
		m.audioEnabled = true
	}
	m.mem[addr] = value
	return true
}

func (m *Machine) canPoke(addr int, value byte) bool {
	switch {
	case addr < CharactersAddr || addr >= MemorySize:
		return false
	case addr >= ReservedAddr && addr < SpritesAddr:
		return false
	case addr >= ReservedRegsAddr:
		return false
	case addr == IORegsAddr+regIOAttr:
		return validIOChange(IOAttributes(m.mem[addr]), IOAttributes(value))
	}
	return true
}

// pokeBytes writes all of b or nothing.
func (m *Machine) pokeBytes(addr int, b ...byte) bool {
	for i, v := range b {
		if !m.canPoke(addr+i, v) {
			return false
		}
	}
	for i, v := range b {
		m.Poke(addr+i, v)
	}
	return true
}

// PeekWord reads a little-endian 16 bit value.
func (m *Machine) PeekWord(addr int) (int, bool) {
	lo, ok1 := m.Peek(addr)
	hi, ok2 := m.Peek(addr + 1)
	if !ok1 || !ok2 {
		return 0, false
	}
	return int(lo) | int(hi)<<8, true
}

// PokeWord writes a little-endian 16 bit value.
func (m *Machine) PokeWord(addr int, value int) bool {
	return m.pokeBytes(addr, byte(value), byte(value>>8))
}

// PeekLong reads a little-endian signed 32 bit value.
func (m *Machine) PeekLong(addr int) (int32, bool) {
	var v uint32
	for i := 3; i >= 0; i-- {
		b, ok := m.Peek(addr + i)
		if !ok {
			return 0, false
		}
		v = v<<8 | uint32(b)
	}
	return int32(v), true
}

// PokeLong writes a little-endian 32 bit value.
func (m *Machine) PokeLong(addr int, value int32) bool {
	v := uint32(value)
	return m.pokeBytes(addr, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// Memory exposes the raw address space to the renderer and the
// interpreter's system libraries, which bypass the access rules.
func (m *Machine) Memory() []byte {
	return m.mem[:]
}

// ROM returns the cartridge ROM area.
func (m *Machine) ROM() []byte {
	return m.mem[RomAddr:RomSize]
}

// PersistentRAM returns the persistent RAM window.
func (m *Machine) PersistentRAM() []byte {
	return m.mem[PersistentRAMAddr:ReservedAddr]
}

// PersistentRAMDirty reports whether persistent RAM was written since
// the last ClearPersistentRAMDirty.
func (m *Machine) PersistentRAMDirty() bool { return m.persistentDirty }

// ClearPersistentRAMDirty resets the dirty flag after the host saved the data.
func (m *Machine) ClearPersistentRAMDirty() { m.persistentDirty = false }

// AudioEnabled reports whether any audio register was written.
func (m *Machine) AudioEnabled() bool { return m.audioEnabled }

func (m *Machine) willAccessPersistent() {
	if m.persistentAccessed {
		return
	}
	m.persistentAccessed = true
	if m.listener != nil {
		m.listener.PersistentRAMWillAccess(m.PersistentRAM())
	}
}

func isPersistent(addr int) bool {
	return addr >= PersistentRAMAddr && addr < ReservedAddr
}

// validIOChange rejects configurations where touch and gamepads are
// active at the same time, and switching directly from one to the other.
func validIOChange(current, next IOAttributes) bool {
	switch {
	case next.Touch() && next.Gamepads() > 0:
		return false
	case current.Gamepads() > 0 && next.Touch():
		return false
	case current.Touch() && next.Gamepads() > 0:
		return false
	}
	return true
}
