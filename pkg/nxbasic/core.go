// Package nxbasic implements the BASIC interpreter of the console and
// the Core that drives it together with the machine, one frame at a
// time.
package nxbasic

import (
	"errors"

	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/machine"
	"github.com/antibyte/nxterm/pkg/video"
)

// Synthetic keys of Input.Key.
const (
	KeyBackspace = '\b'
	KeyReturn    = '\n'
)

// ROM entries used at program start.
const (
	romEntryFont = iota
	romEntryColors
	romEntryCharacters
	romEntryBackground
)

// Input is the state of the controls for one frame.
type Input struct {
	Key            rune
	Touch          bool
	TouchX, TouchY int
	Gamepads       [machine.NumGamepads]machine.Gamepad
	Pause          bool
}

// Core owns a machine and an interpreter. It is not safe for concurrent
// use; a host drives it from one goroutine.
type Core struct {
	machine     *machine.Machine
	interpreter *Interpreter
	rom         *datamanager.DataManager
	diskDrive   *DiskDrive
	delegate    Delegate
}

// NewCore creates a core without a program.
func NewCore() *Core {
	c := &Core{
		rom:      datamanager.New(),
		delegate: DefaultDelegate{},
	}
	c.machine = machine.New(c)
	c.interpreter = newInterpreter(c, c.machine)
	c.diskDrive = newDiskDrive(c)
	return c
}

// SetDelegate installs the host callbacks. nil restores the default.
func (c *Core) SetDelegate(d Delegate) {
	if d == nil {
		d = DefaultDelegate{}
	}
	c.delegate = d
}

// Machine gives the host access to memory, for example for rendering.
func (c *Core) Machine() *machine.Machine { return c.machine }

// DiskDrive returns the drive used by LOAD, SAVE and FILES.
func (c *Core) DiskDrive() *DiskDrive { return c.diskDrive }

// State of the interpreter.
func (c *Core) State() State { return c.interpreter.state }

// CompileProgram resets the machine, imports the cartridge text (program
// followed by data entries) and prepares the program to run.
func (c *Core) CompileProgram(source string, resetPersistent bool) CoreError {
	c.interpreter.free()
	c.machine.Reset(resetPersistent)
	c.diskDrive.reset()

	if err := c.rom.Import(source, true); err != nil {
		logger.Warn(logger.AreaInterpreter, "cartridge import failed: %v", err)
		return importError(err)
	}
	c.machine.LoadROM(c.rom.Data())

	if err := c.interpreter.compile(c.rom.SourceCode()); err.Code != ErrorNone {
		logger.Info(logger.AreaInterpreter, "compile error: %s", TraceError(c.rom.SourceCode(), err))
		return err
	}
	c.startup()
	c.controlsDidChange()
	return CoreError{}
}

func importError(err error) CoreError {
	pos := -1
	var ie *datamanager.ImportError
	if errors.As(err, &ie) {
		pos = ie.Position
	}
	code := ErrorSyntax
	switch {
	case errors.Is(err, datamanager.ErrRomIsFull):
		code = ErrorRomIsFull
	case errors.Is(err, datamanager.ErrIndexAlreadyDefined):
		code = ErrorIndexAlreadyDefined
	case errors.Is(err, datamanager.ErrUnexpectedCharacter):
		code = ErrorUnexpectedCharacter
	case errors.Is(err, datamanager.ErrIndexOutOfBounds):
		code = ErrorIndexOutOfBounds
	}
	return newCoreError(code, pos)
}

// startup installs font, colors, characters and the background source
// from the first ROM entries and switches on the display.
func (c *Core) startup() {
	m := c.machine
	lib := &c.interpreter.textLib
	mem := m.Memory()

	fontAddr := machine.CharactersAddr + lib.fontCharOffset*machine.CharacterSize
	if font := c.rom.EntryData(romEntryFont); len(font) > 0 {
		copy(mem[fontAddr:machine.CharactersAddr+machine.CharactersSize], font)
	} else {
		copy(mem[fontAddr:machine.CharactersAddr+machine.CharactersSize], defaultFont())
	}

	m.SetColor(1, 0x3F)
	m.SetColor(2, 0x2A)
	m.SetColor(3, 0x15)
	colors := c.rom.EntryData(romEntryColors)
	if len(colors) > machine.NumColors {
		colors = colors[:machine.NumColors]
	}
	for i, col := range colors {
		m.SetColor(i, col)
	}

	chars := c.rom.EntryData(romEntryCharacters)
	if len(chars) > machine.CharactersSize {
		chars = chars[:machine.CharactersSize]
	}
	copy(mem[machine.CharactersAddr:], chars)

	bg := c.rom.Entry(romEntryBackground)
	lib.sourceAddress = machine.RomAddr + bg.Start
	lib.sourceWidth = machine.PlaneColumns
	lib.sourceHeight = bg.Length / (machine.PlaneColumns * 2)

	m.SetDisplayAttr(machine.DisplaySprites | machine.DisplayPlaneA | machine.DisplayPlaneB)
}

// WillRunProgram seeds TIMER with the time since the host started.
func (c *Core) WillRunProgram(secondsSincePowerOn int64) {
	c.interpreter.timer = int(secondsSincePowerOn * 60 % timerWrap)
}

// Update runs one frame: input, VBL interrupt, main program and the
// per-frame bookkeeping.
func (c *Core) Update(input *Input) {
	if input != nil {
		c.handleInput(input)
	}
	it := c.interpreter
	it.runInterrupt(InterruptVBL)
	it.runProgram()
	it.didFinishVBL()
}

func (c *Core) handleInput(input *Input) {
	m := c.machine
	it := c.interpreter
	attr := m.IOAttr()

	if input.Key != 0 && (attr.Keyboard() || it.state == StateInput) {
		switch k := input.Key; {
		case k == KeyBackspace, k == KeyReturn:
			m.SetKey(byte(k))
		case k >= 32 && k < 127:
			m.SetKey(byte(k))
		}
	}

	for i := 0; i < machine.NumGamepads; i++ {
		if attr.Gamepads() > i {
			m.SetGamepad(i, input.Gamepads[i])
		}
	}

	if attr.Touch() {
		status := m.IOStatus() &^ machine.StatusTouch
		if input.Touch {
			status |= machine.StatusTouch
			m.SetTouch(clamp(input.TouchX, 0, machine.ScreenWidth-1), clamp(input.TouchY, 0, machine.ScreenHeight-1))
		}
		m.SetIOStatus(status)
	}

	if input.Pause {
		if it.state == StatePaused {
			it.state = StateEvaluate
		} else {
			m.SetIOStatus(m.IOStatus() | machine.StatusPause)
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Render draws the screen into out (ScreenWidth*ScreenHeight RGB pixels)
// and runs the raster interrupt before every line. It returns false when
// the frame was skipped to catch up with interrupts that used too many
// cycles.
func (c *Core) Render(out []uint32) bool {
	it := c.interpreter
	if it.interruptOverCycles > 0 {
		it.interruptOverCycles -= MaxCyclesTotalPerFrame
		if it.interruptOverCycles < 0 {
			it.interruptOverCycles = 0
		}
		return false
	}
	video.Render(c.machine, out, func(y int) {
		c.machine.SetRasterLine(y)
		it.runInterrupt(InterruptRaster)
	})
	return true
}

// Stop ends a running program as if it executed END.
func (c *Core) Stop() {
	if c.interpreter.state != StateNoProgram {
		c.interpreter.endProgram()
	}
}

// DiskLoaded tells a waiting LOAD, SAVE or FILES that the disk is ready.
func (c *Core) DiskLoaded() {
	c.diskDrive.loaded = true
	if c.interpreter.state == StateWaitForDisk {
		c.interpreter.state = StateEvaluate
	}
}

// TraceError formats err with the line of the current program.
func (c *Core) TraceError(err CoreError) string {
	return TraceError(c.interpreter.sourceCode, err)
}

// CanSaveEnergy reports whether the program is idle, so the host may
// skip frames.
func (c *Core) CanSaveEnergy() bool {
	it := c.interpreter
	if it.suspendEnergySaving > 0 {
		return false
	}
	switch it.state {
	case StateEvaluate:
		return it.waitCount > 0 || it.waitTap
	case StateInput:
		return false
	}
	return true
}

// Peek reads memory like PEEK.
func (c *Core) Peek(addr int) (byte, bool) { return c.machine.Peek(addr) }

// Poke writes memory like POKE.
func (c *Core) Poke(addr int, value byte) bool { return c.machine.Poke(addr, value) }

// ControlsInfo describes the current input configuration.
func (c *Core) ControlsInfo() ControlsInfo {
	attr := c.machine.IOAttr()
	info := ControlsInfo{
		KeyboardMode: KeyboardOff,
		NumGamepads:  attr.Gamepads(),
		Touch:        attr.Touch(),
		AudioEnabled: c.machine.AudioEnabled(),
	}
	if attr.Keyboard() {
		info.KeyboardMode = KeyboardOn
		if c.interpreter.keyboardOptional {
			info.KeyboardMode = KeyboardOptional
		}
		info.NumGamepads = 0
	}
	return info
}

func (c *Core) controlsDidChange() {
	c.delegate.ControlsDidChange(c.ControlsInfo())
}

// PersistentRAMWillAccess implements machine.Listener.
func (c *Core) PersistentRAMWillAccess(ram []byte) {
	c.delegate.PersistentRAMWillAccess(ram)
}
