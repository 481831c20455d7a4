package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/datamanager"
)

// KeyboardMode as reported in ControlsInfo.
type KeyboardMode int

const (
	KeyboardOff KeyboardMode = iota
	KeyboardOn
	KeyboardOptional
)

// ControlsInfo summarizes the input configuration chosen by the program.
type ControlsInfo struct {
	KeyboardMode KeyboardMode
	NumGamepads  int
	Touch        bool
	AudioEnabled bool
}

// Delegate is implemented by the host of a Core.
type Delegate interface {
	// InterpreterDidFail is called when the program stops with an error.
	InterpreterDidFail(err CoreError)

	// DiskDriveWillAccess returns true if dm holds the disk. Otherwise the
	// host has to fill dm and call Core.DiskLoaded later.
	DiskDriveWillAccess(dm *datamanager.DataManager) bool
	DiskDriveDidSave(dm *datamanager.DataManager)
	DiskDriveIsFull(dm *datamanager.DataManager)

	ControlsDidChange(info ControlsInfo)

	// PersistentRAMWillAccess may fill ram with saved data.
	PersistentRAMWillAccess(ram []byte)
	PersistentRAMDidChange(ram []byte)
}

// DefaultDelegate ignores all notifications and always has a disk ready.
type DefaultDelegate struct{}

func (DefaultDelegate) InterpreterDidFail(CoreError)                      {}
func (DefaultDelegate) DiskDriveWillAccess(*datamanager.DataManager) bool { return true }
func (DefaultDelegate) DiskDriveDidSave(*datamanager.DataManager)         {}
func (DefaultDelegate) DiskDriveIsFull(*datamanager.DataManager)          {}
func (DefaultDelegate) ControlsDidChange(ControlsInfo)                    {}
func (DefaultDelegate) PersistentRAMWillAccess([]byte)                    {}
func (DefaultDelegate) PersistentRAMDidChange([]byte)                     {}
