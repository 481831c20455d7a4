package nxbasic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/machine"
)

type recordingDelegate struct {
	DefaultDelegate

	failures     []CoreError
	controls     []ControlsInfo
	diskReady    bool
	diskRequests int
	saves        int
	full         int
	fillDisk     func(dm *datamanager.DataManager)
	ramAccesses  int
	ramChanges   [][]byte
}

func (d *recordingDelegate) InterpreterDidFail(err CoreError) {
	d.failures = append(d.failures, err)
}

func (d *recordingDelegate) DiskDriveWillAccess(dm *datamanager.DataManager) bool {
	d.diskRequests++
	if d.fillDisk != nil {
		d.fillDisk(dm)
	}
	return d.diskReady
}

func (d *recordingDelegate) DiskDriveDidSave(*datamanager.DataManager) { d.saves++ }
func (d *recordingDelegate) DiskDriveIsFull(*datamanager.DataManager)  { d.full++ }

func (d *recordingDelegate) ControlsDidChange(info ControlsInfo) {
	d.controls = append(d.controls, info)
}

func (d *recordingDelegate) PersistentRAMWillAccess([]byte) { d.ramAccesses++ }

func (d *recordingDelegate) PersistentRAMDidChange(ram []byte) {
	d.ramChanges = append(d.ramChanges, append([]byte(nil), ram...))
}

func newTestCore(t *testing.T, source string) (*Core, *recordingDelegate) {
	t.Helper()
	d := &recordingDelegate{diskReady: true}
	c := NewCore()
	c.SetDelegate(d)
	err := c.CompileProgram(source, true)
	require.Equal(t, ErrorNone, err.Code, c.TraceError(err))
	return c, d
}

func runFrames(c *Core, n int) {
	for i := 0; i < n; i++ {
		c.Update(nil)
	}
}

func runToEnd(t *testing.T, c *Core) {
	t.Helper()
	for i := 0; i < 1000 && c.State() != StateEnd; i++ {
		c.Update(nil)
	}
	require.Equal(t, StateEnd, c.State())
}

// runProgram compiles and runs source and fails on runtime errors.
func runProgram(t *testing.T, source string) *Core {
	t.Helper()
	c, d := newTestCore(t, source)
	runToEnd(t, c)
	require.Empty(t, d.failures)
	return c
}

func peek(t *testing.T, c *Core, addr int) byte {
	t.Helper()
	v, ok := c.Peek(addr)
	require.True(t, ok)
	return v
}

func numVar(t *testing.T, c *Core, name string) float32 {
	t.Helper()
	it := c.interpreter
	sym, ok := it.tokenizer.symbolIndex[name]
	require.True(t, ok, "symbol %s", name)
	v := it.vars.GetSimple(sym, 0)
	require.NotNil(t, v, "variable %s", name)
	return it.vars.Value(v).Float
}

func TestStartupDefaults(t *testing.T) {
	c, d := newTestCore(t, "END")
	m := c.Machine()

	assert.Equal(t, StateEvaluate, c.State())
	assert.Equal(t, machine.DisplaySprites|machine.DisplayPlaneA|machine.DisplayPlaneB, m.DisplayAttr())
	assert.Equal(t, byte(0x3F), m.Color(1))
	assert.Equal(t, byte(0x2A), m.Color(2))
	assert.Equal(t, byte(0x15), m.Color(3))

	glyph := m.Character(defaultFontCharOffset + 'A' - 32)
	assert.NotEqual(t, make([]byte, machine.CharacterSize), glyph)

	require.Len(t, d.controls, 1)
	assert.Equal(t, ControlsInfo{KeyboardMode: KeyboardOff}, d.controls[0])
}

func TestStartupUsesRomEntries(t *testing.T) {
	source := "END\n#1:COLORS\n01 02 03 04\n\n#3:BG\n" +
		"05 00 06 00\n"
	c, _ := newTestCore(t, source)
	m := c.Machine()

	for i, want := range []byte{1, 2, 3, 4} {
		assert.Equal(t, want, m.Color(i), "color %d", i)
	}
	lib := c.interpreter.textLib
	assert.Equal(t, machine.PlaneColumns, lib.sourceWidth)
	assert.Equal(t, 0, lib.sourceHeight)
	assert.Equal(t, c.rom.Entry(3).Start, lib.sourceAddress)
}

func TestCompileProgramImportError(t *testing.T) {
	c := NewCore()
	err := c.CompileProgram("END\n#1:X\nZZ\n", false)
	assert.Equal(t, ErrorUnexpectedCharacter, err.Code)
	assert.Equal(t, StateNoProgram, c.State())
}

func TestPersistentRAMCallbacks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []byte
	}{
		{"end", "POKE $E000,5\nPOKE $E001,PEEK($E000)+1", []byte{5, 6}},
		{"runtime error", "POKE $E000,2\nPOKE $E001,3\nA=1/0", []byte{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestCore(t, tt.source)
			runToEnd(t, c)

			assert.Positive(t, d.ramAccesses)
			require.Len(t, d.ramChanges, 1)
			assert.Equal(t, tt.want, d.ramChanges[0][:2])
		})
	}
}

func TestPersistentRAMReportedOncePerRun(t *testing.T) {
	source := "DO\n" +
		"POKE $E000,PEEK($E000)+1\n" +
		"POKE $E001,7\n" +
		"WAIT VBL\n" +
		"LOOP"
	c, d := newTestCore(t, source)
	runFrames(c, 3)
	assert.Empty(t, d.ramChanges, "no report while running")

	c.Stop()
	c.Stop()
	require.Len(t, d.ramChanges, 1)
	assert.Equal(t, []byte{3, 7}, d.ramChanges[0][:2])
}

func TestControlsChange(t *testing.T) {
	c, d := newTestCore(t, "GAMEPAD 1\nKEYBOARD OPTIONAL")
	runToEnd(t, c)

	require.Len(t, d.controls, 3)
	assert.Equal(t, 1, d.controls[1].NumGamepads)
	assert.Equal(t, KeyboardOptional, d.controls[2].KeyboardMode)
	assert.Equal(t, 0, d.controls[2].NumGamepads)
}

func TestTouchAfterGamepadIsRejected(t *testing.T) {
	c, d := newTestCore(t, "GAMEPAD 1\nTOUCHSCREEN")
	runToEnd(t, c)

	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorInputChangeNotAllowed, d.failures[0].Code)
}

func TestGamepadInput(t *testing.T) {
	source := "GAMEPAD 1\n" +
		"DO\n" +
		"IF UP(0) THEN POKE $A000,1\n" +
		"IF BUTTON TAP(0,1) THEN INC TAPS\n" +
		"WAIT VBL\n" +
		"LOOP"
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	assert.Equal(t, byte(0), peek(t, c, 0xA000))

	pressed := &Input{}
	pressed.Gamepads[0] = machine.GamepadUp | machine.GamepadA
	c.Update(pressed)
	c.Update(pressed)
	assert.Equal(t, byte(1), peek(t, c, 0xA000))
	assert.Equal(t, float32(1), numVar(t, c, "TAPS"))
	assert.Empty(t, d.failures)
}

func TestPauseButton(t *testing.T) {
	c, _ := newTestCore(t, "DO\nWAIT VBL\nLOOP")
	runFrames(c, 1)

	c.Update(&Input{Pause: true})
	assert.Equal(t, StatePaused, c.State())
	assert.True(t, c.CanSaveEnergy())

	c.Update(&Input{Pause: true})
	assert.Equal(t, StateEvaluate, c.State())
}

func TestPauseHandledByProgram(t *testing.T) {
	source := "PAUSE OFF\n" +
		"DO\n" +
		"IF PAUSE THEN INC P\n" +
		"WAIT VBL\n" +
		"LOOP"
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	c.Update(&Input{Pause: true})
	c.Update(nil)

	assert.Equal(t, StateEvaluate, c.State())
	assert.Equal(t, float32(1), numVar(t, c, "P"))
	assert.Empty(t, d.failures)
}

func TestInput(t *testing.T) {
	source := "INPUT \"NAME?\";N$\n" +
		"POKE $A000,LEN(N$)\n" +
		"POKE $A001,ASC(N$)"
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	require.Equal(t, StateInput, c.State())
	assert.False(t, c.CanSaveEnergy())

	for _, k := range []rune{'h', 'X', 'i', KeyBackspace, 'I', KeyReturn} {
		c.Update(&Input{Key: k})
	}
	runToEnd(t, c)
	require.Empty(t, d.failures)
	assert.Equal(t, byte(3), peek(t, c, 0xA000))
	assert.Equal(t, byte('h'), peek(t, c, 0xA001))
}

func TestInputNumber(t *testing.T) {
	c, _ := newTestCore(t, "INPUT N\nPOKE $A000,N*2")
	runFrames(c, 1)
	for _, k := range []rune{'2', '1', KeyReturn} {
		c.Update(&Input{Key: k})
	}
	runToEnd(t, c)
	assert.Equal(t, byte(42), peek(t, c, 0xA000))
}

func TestSaveWaitsForDisk(t *testing.T) {
	source := "POKE $A000,7\nPOKE $A001,9\nSAVE 3,\"NOTE\",$A000,2\nPOKE $A002,1"
	c, d := newTestCore(t, source)
	d.diskReady = false

	runFrames(c, 2)
	assert.Equal(t, StateWaitForDisk, c.State())
	assert.Equal(t, 1, d.diskRequests)
	assert.Equal(t, byte(0), peek(t, c, 0xA002))

	c.DiskLoaded()
	runToEnd(t, c)
	require.Empty(t, d.failures)

	dm := c.DiskDrive().DataManager()
	assert.Equal(t, []byte{7, 9}, dm.EntryData(3))
	assert.Equal(t, "NOTE", dm.Entry(3).Comment)
	assert.Equal(t, 1, d.saves)
	assert.Equal(t, byte(1), peek(t, c, 0xA002))
}

func TestLoadAndFiles(t *testing.T) {
	source := "FILES\n" +
		"POKE $A000,FSIZE(2)\n" +
		"POKE $A001,LEN(FILE$(2))\n" +
		"LOAD 2,$A010\n" +
		"LOAD 2,$A020,1,1"
	c, d := newTestCore(t, source)
	d.fillDisk = func(dm *datamanager.DataManager) {
		dm.SetEntry(2, "LEVEL", []byte{4, 5, 6})
	}
	runToEnd(t, c)
	require.Empty(t, d.failures)

	assert.Equal(t, 1, d.diskRequests)
	assert.Equal(t, byte(3), peek(t, c, 0xA000))
	assert.Equal(t, byte(5), peek(t, c, 0xA001))
	assert.Equal(t, []byte{4, 5, 6}, c.Machine().Memory()[0xA010:0xA013])
	assert.Equal(t, []byte{5, 0}, c.Machine().Memory()[0xA020:0xA022])
}

func TestFileWithoutDirectory(t *testing.T) {
	c, d := newTestCore(t, "A$=FILE$(0)")
	runToEnd(t, c)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorDirectoryNotLoaded, d.failures[0].Code)
}

func TestRender(t *testing.T) {
	source := "ON RASTER CALL SCANLINE\n" +
		"DO\nWAIT VBL\nLOOP\n" +
		"SUB SCANLINE\nINC LINES\nEND SUB"
	c, d := newTestCore(t, "GLOBAL LINES\n"+source)
	runFrames(c, 1)

	out := make([]uint32, machine.ScreenWidth*machine.ScreenHeight)
	require.True(t, c.Render(out))
	require.Empty(t, d.failures)
	assert.Equal(t, float32(machine.ScreenHeight), numVar(t, c, "LINES"))
}

func TestCanSaveEnergy(t *testing.T) {
	busy, _ := newTestCore(t, "DO\nINC A\nLOOP")
	runFrames(busy, 1)
	assert.False(t, busy.CanSaveEnergy())

	waiting, _ := newTestCore(t, "WAIT 10")
	runFrames(waiting, 1)
	assert.True(t, waiting.CanSaveEnergy())
}

func TestEnergySavingSuspendedAfterOverrun(t *testing.T) {
	c, _ := newTestCore(t, "WAIT 100")
	runFrames(c, 1)
	require.True(t, c.CanSaveEnergy())

	// a frame that ran over its budget
	c.interpreter.cycles = MaxCyclesTotalPerFrame + 10
	c.interpreter.didFinishVBL()
	assert.False(t, c.CanSaveEnergy())

	for i := 0; i < energySavingFrames-1; i++ {
		runFrames(c, 1)
		assert.False(t, c.CanSaveEnergy(), "frame %d", i+1)
	}
	runFrames(c, 1)
	assert.True(t, c.CanSaveEnergy())
}

func TestRenderSkipsFramesAfterInterruptOverage(t *testing.T) {
	c, _ := newTestCore(t, "DO\nWAIT VBL\nLOOP")
	runFrames(c, 1)
	out := make([]uint32, machine.ScreenWidth*machine.ScreenHeight)

	c.interpreter.interruptOverCycles = MaxCyclesTotalPerFrame + 1
	assert.False(t, c.Render(out))
	assert.Equal(t, 1, c.interpreter.interruptOverCycles)
	assert.False(t, c.Render(out))
	assert.Zero(t, c.interpreter.interruptOverCycles)
	assert.True(t, c.Render(out))
}

func TestHeavyRasterInterruptSkipsFrames(t *testing.T) {
	source := "GLOBAL LINES\n" +
		"ON RASTER CALL SCANLINE\n" +
		"DO\nWAIT VBL\nLOOP\n" +
		"SUB SCANLINE\n" +
		"INC LINES\n" +
		"FOR I=1 TO 200\nNEXT I\n" +
		"END SUB"
	c, d := newTestCore(t, source)
	runFrames(c, 1)
	out := make([]uint32, machine.ScreenWidth*machine.ScreenHeight)

	mainCycles := c.interpreter.cycles
	require.True(t, c.Render(out))
	require.Empty(t, d.failures)
	assert.Equal(t, mainCycles, c.interpreter.cycles, "interrupts don't use the main budget")
	assert.Equal(t, float32(machine.ScreenHeight), numVar(t, c, "LINES"))
	assert.Greater(t, c.interpreter.interruptOverCycles, 0)

	runFrames(c, 1)
	assert.False(t, c.Render(out))
	assert.Equal(t, float32(machine.ScreenHeight), numVar(t, c, "LINES"))

	rendered := false
	for i := 0; i < 10 && !rendered; i++ {
		runFrames(c, 1)
		rendered = c.Render(out)
	}
	assert.True(t, rendered)
	assert.Empty(t, d.failures)
	assert.Equal(t, StateEvaluate, c.State())
	assert.Equal(t, float32(2*machine.ScreenHeight), numVar(t, c, "LINES"))
}

func TestStop(t *testing.T) {
	c, _ := newTestCore(t, "DO\nINC A\nWAIT VBL\nLOOP")
	runFrames(c, 2)
	require.Equal(t, StateEvaluate, c.State())

	c.Stop()
	assert.Equal(t, StateEnd, c.State())
	runFrames(c, 2)
	assert.Equal(t, float32(2), numVar(t, c, "A"))

	NewCore().Stop()
}
