package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/logger"
)

// DiskDrive gives LOAD, SAVE and FILES access to the disk of the host.
// The host fills the data manager when asked by DiskDriveWillAccess,
// possibly later, and then calls Core.DiskLoaded.
type DiskDrive struct {
	core      *Core
	dm        *datamanager.DataManager
	directory []datamanager.Entry
	loaded    bool
}

func newDiskDrive(core *Core) *DiskDrive {
	return &DiskDrive{core: core, dm: datamanager.New()}
}

// DataManager returns the disk contents.
func (d *DiskDrive) DataManager() *datamanager.DataManager { return d.dm }

func (d *DiskDrive) reset() {
	d.dm.Reset()
	d.directory = nil
	d.loaded = false
}

// prepare reports whether the disk can be used now.
func (d *DiskDrive) prepare() bool {
	if d.loaded {
		return true
	}
	if d.core.delegate.DiskDriveWillAccess(d.dm) {
		d.loaded = true
		return true
	}
	logger.Debug(logger.AreaDisk, "waiting for disk")
	return false
}

func (d *DiskDrive) updateDirectory() {
	if d.directory == nil {
		d.directory = make([]datamanager.Entry, datamanager.MaxEntries)
	}
	for i := range d.directory {
		d.directory[i] = d.dm.Entry(i)
	}
}
