package terminal

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/diskstore"
	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/machine"
	"github.com/antibyte/nxterm/pkg/nxbasic"
	"github.com/antibyte/nxterm/pkg/shared"
)

// FrameSize is the length of a binary frame message: RGB bytes, row by row.
const FrameSize = machine.ScreenWidth * machine.ScreenHeight * 3

var errSessionIdle = errors.New("session idle")

// DiskStore keeps disks and persistent RAM between sessions.
type DiskStore interface {
	LoadDisk(name string) (string, error)
	SaveDisk(name, content string) error
	LoadPersistentRAM(programID string, buf []byte) error
	SavePersistentRAM(programID string, buf []byte) error
}

// Session runs one console for one connection. All of its state is owned
// by the goroutine in run; other goroutines talk to it through inbox.
type Session struct {
	id    string
	core  *nxbasic.Core
	store DiskStore
	send  func(outbound) bool
	inbox chan *shared.Message

	diskName  string
	programID string
	controls  nxbasic.ControlsInfo

	keys     []rune
	maxKeys  int
	gamepads [machine.NumGamepads]machine.Gamepad
	touch    shared.Touch
	pause    bool

	pixels    []uint32
	lastFrame []byte
	lastState nxbasic.State

	started      time.Time
	lastActivity time.Time
	idleTimeout  time.Duration
}

func newSession(id string, store DiskStore, send func(outbound) bool) *Session {
	queueSize := configuration.GetInt("Console", "input_queue_size", 64)
	s := &Session{
		id:          id,
		core:        nxbasic.NewCore(),
		store:       store,
		send:        send,
		inbox:       make(chan *shared.Message, queueSize),
		diskName:    configuration.GetString("Disk", "default_disk", "DISK"),
		maxKeys:     queueSize,
		pixels:      make([]uint32, machine.ScreenWidth*machine.ScreenHeight),
		lastState:   nxbasic.StateNoProgram,
		started:     time.Now(),
		idleTimeout: configuration.GetDuration("Console", "session_idle_timeout", 30*time.Minute),
	}
	s.lastActivity = s.started
	s.core.SetDelegate(s)
	return s
}

func frameInterval() time.Duration {
	rate := configuration.GetInt("Console", "frame_rate", 60)
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// run drives the console until ctx is done or the session was idle too
// long.
func (s *Session) run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval())
	defer ticker.Stop()
	logger.Info(logger.AreaSession, "Session %s started", s.id)

	for {
		select {
		case <-ctx.Done():
			s.core.Stop()
			logger.Info(logger.AreaSession, "Session %s stopped", s.id)
			return
		case msg := <-s.inbox:
			s.handleMessage(msg, time.Now())
		case now := <-ticker.C:
			if err := s.step(now); err != nil {
				s.core.Stop()
				logger.Info(logger.AreaSession, "Session %s ended: %v", s.id, err)
				return
			}
		}
	}
}

// deliver queues msg for the session goroutine. It returns false if the
// inbox is full.
func (s *Session) deliver(msg *shared.Message) bool {
	select {
	case s.inbox <- msg:
		return true
	default:
		return false
	}
}

func (s *Session) handleMessage(msg *shared.Message, now time.Time) {
	s.lastActivity = now
	switch msg.Type {
	case shared.MessageTypeRun:
		s.runProgram(msg.Source)
	case shared.MessageTypeInput:
		s.handleInput(msg)
	case shared.MessageTypeDisk:
		s.diskName = msg.Name
		logger.Debug(logger.AreaDisk, "Session %s uses disk %s", s.id, s.diskName)
	case shared.MessageTypeStop:
		s.core.Stop()
		s.sendState()
	}
}

func (s *Session) runProgram(source string) {
	// persistent RAM of the previous program is saved under its own id
	s.core.Stop()
	s.programID = diskstore.ProgramID(source)
	s.keys = s.keys[:0]
	s.gamepads = [machine.NumGamepads]machine.Gamepad{}
	s.lastFrame = nil

	if err := s.core.CompileProgram(source, true); err.Code != nxbasic.ErrorNone {
		s.sendError(nxbasic.TraceError(source, err))
		s.sendState()
		return
	}
	s.core.WillRunProgram(int64(time.Since(s.started).Seconds()))
	logger.Info(logger.AreaInterpreter, "Session %s runs program %s", s.id, s.programID[:12])
	s.sendState()
}

func (s *Session) handleInput(msg *shared.Message) {
	if msg.Pause {
		s.pause = true
	}
	if msg.Touch != nil {
		s.touch = *msg.Touch
	}
	if msg.Key == "" {
		return
	}

	if gk, ok := gamepadKeys[msg.Key]; ok && s.usesGamepads() {
		if msg.Down {
			s.gamepads[gk.player] |= gk.bit
		} else {
			s.gamepads[gk.player] &^= gk.bit
		}
		return
	}
	if !msg.Down {
		return
	}
	if msg.Key == "Escape" {
		s.pause = true
		return
	}
	if r, ok := keyRune(msg.Key); ok && len(s.keys) < s.maxKeys {
		s.keys = append(s.keys, r)
	}
}

// usesGamepads reports whether keys should drive the gamepads instead of
// being typed.
func (s *Session) usesGamepads() bool {
	return s.controls.NumGamepads > 0 && s.core.State() != nxbasic.StateInput
}

// step runs one frame and sends what changed.
func (s *Session) step(now time.Time) error {
	if s.idleTimeout > 0 && now.Sub(s.lastActivity) > s.idleTimeout {
		return errSessionIdle
	}
	if s.core.State() == nxbasic.StateNoProgram {
		return nil
	}

	input := nxbasic.Input{
		Gamepads: s.gamepads,
		Touch:    s.touch.Pressed,
		TouchX:   s.touch.X,
		TouchY:   s.touch.Y,
		Pause:    s.pause,
	}
	if len(s.keys) > 0 {
		input.Key = s.keys[0]
		s.keys = s.keys[1:]
	}
	s.pause = false

	s.core.Update(&input)
	s.sendState()
	if s.core.Render(s.pixels) {
		s.sendFrame()
	}
	return nil
}

func (s *Session) sendFrame() {
	frame := make([]byte, FrameSize)
	for i, p := range s.pixels {
		frame[i*3] = byte(p >> 16)
		frame[i*3+1] = byte(p >> 8)
		frame[i*3+2] = byte(p)
	}
	if bytes.Equal(frame, s.lastFrame) {
		return
	}
	if s.send(outbound{binary: true, data: frame}) {
		s.lastFrame = frame
	}
}

func (s *Session) sendState() {
	state := s.core.State()
	if state == s.lastState {
		return
	}
	s.lastState = state
	s.sendMessage(shared.Message{Type: shared.MessageTypeState, State: state.String()})
}

func (s *Session) sendError(trace string) {
	s.sendMessage(shared.Message{Type: shared.MessageTypeError, Content: trace})
}

func (s *Session) sendMessage(msg shared.Message) {
	data, err := marshalMessage(msg)
	if err != nil {
		logger.Error(logger.AreaSession, "Session %s: failed to encode %s message: %v", s.id, msg.Type, err)
		return
	}
	if !s.send(outbound{data: data}) {
		logger.Warn(logger.AreaSession, "Session %s: dropped %s message", s.id, msg.Type)
	}
}

// InterpreterDidFail implements nxbasic.Delegate.
func (s *Session) InterpreterDidFail(err nxbasic.CoreError) {
	s.sendError(s.core.TraceError(err))
}

// DiskDriveWillAccess fills dm from the store. A disk that does not exist
// yet is empty.
func (s *Session) DiskDriveWillAccess(dm *datamanager.DataManager) bool {
	dm.Reset()
	text, err := s.store.LoadDisk(s.diskName)
	switch {
	case errors.Is(err, diskstore.ErrDiskNotFound):
		return true
	case err != nil:
		logger.Error(logger.AreaDisk, "Session %s: %v", s.id, err)
		s.sendError("Disk error")
		return true
	}
	if err := dm.Import(text, false); err != nil {
		logger.Warn(logger.AreaDisk, "Session %s: disk %s is damaged: %v", s.id, s.diskName, err)
		s.sendError("Disk " + s.diskName + " is damaged")
		dm.Reset()
	}
	return true
}

// DiskDriveDidSave implements nxbasic.Delegate.
func (s *Session) DiskDriveDidSave(dm *datamanager.DataManager) {
	if err := s.store.SaveDisk(s.diskName, dm.Export()); err != nil {
		logger.Error(logger.AreaDisk, "Session %s: %v", s.id, err)
		s.sendError("Disk error")
		return
	}
	s.sendMessage(shared.Message{Type: shared.MessageTypeDiskSave, Name: s.diskName})
}

// DiskDriveIsFull implements nxbasic.Delegate.
func (s *Session) DiskDriveIsFull(*datamanager.DataManager) {
	s.sendError("Disk " + s.diskName + " is full")
}

// ControlsDidChange implements nxbasic.Delegate.
func (s *Session) ControlsDidChange(info nxbasic.ControlsInfo) {
	s.controls = info
	s.sendMessage(shared.Message{
		Type: shared.MessageTypeControls,
		Controls: &shared.Controls{
			Keyboard: keyboardMode(info.KeyboardMode),
			Gamepads: info.NumGamepads,
			Touch:    info.Touch,
			Audio:    info.AudioEnabled,
		},
	})
}

// PersistentRAMWillAccess implements nxbasic.Delegate.
func (s *Session) PersistentRAMWillAccess(ram []byte) {
	if s.programID == "" {
		return
	}
	if err := s.store.LoadPersistentRAM(s.programID, ram); err != nil {
		logger.Error(logger.AreaDisk, "Session %s: %v", s.id, err)
	}
}

// PersistentRAMDidChange implements nxbasic.Delegate.
func (s *Session) PersistentRAMDidChange(ram []byte) {
	if s.programID == "" {
		return
	}
	if err := s.store.SavePersistentRAM(s.programID, ram); err != nil {
		logger.Error(logger.AreaDisk, "Session %s: %v", s.id, err)
	}
}
