package nxbasic

import (
	"github.com/antibyte/nxterm/pkg/datamanager"
	"github.com/antibyte/nxterm/pkg/logger"
)

// waitForDisk asks the disk drive to get ready. If it is not, the command
// at cmdTok runs again once the host called DiskLoaded.
func (it *Interpreter) waitForDisk(cmdTok int) bool {
	if it.core.diskDrive.prepare() {
		return true
	}
	it.state = StateWaitForDisk
	it.pc = cmdTok
	it.exitEvaluation = true
	return false
}

// cmdLoad: LOAD f,a[,max[,offset]] copies a disk entry to memory.
func (it *Interpreter) cmdLoad() ErrorCode {
	cmdTok := it.pc
	it.pc++
	if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	args, code := it.intList([2]int{0, datamanager.MaxEntries - 1}, [2]int{0, 0xFFFF})
	if code != ErrorNone {
		return code
	}
	args = append(args, -1, 0)
	if it.tokenType() == TokenComma {
		it.pc++
		if args[2], code = it.evaluateInt(1, 0xFFFF); code != ErrorNone {
			return code
		}
		if it.tokenType() == TokenComma {
			it.pc++
			if args[3], code = it.evaluateInt(0, datamanager.DataSize-1); code != ErrorNone {
				return code
			}
		}
	}
	if !it.running() {
		return it.endOfCommand()
	}
	if !it.waitForDisk(cmdTok) {
		return ErrorNone
	}

	data := it.core.diskDrive.dm.EntryData(args[0])
	if offset := args[3]; offset > 0 {
		if offset > len(data) {
			offset = len(data)
		}
		data = data[offset:]
	}
	if max := args[2]; max >= 0 && len(data) > max {
		data = data[:max]
	}
	for i, b := range data {
		if !it.m.Poke(args[1]+i, b) {
			return ErrorIllegalMemoryAccess
		}
	}
	it.cycles += len(data)
	logger.Debug(logger.AreaDisk, "loaded entry %d (%d bytes) to $%04X", args[0], len(data), args[1])

	code = it.endOfCommand()
	it.exitEvaluation = true
	return code
}

// cmdSave: SAVE f,comment$,a,n writes n bytes of memory to a disk entry.
func (it *Interpreter) cmdSave() ErrorCode {
	cmdTok := it.pc
	it.pc++
	if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	f, code := it.evaluateInt(0, datamanager.MaxEntries-1)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	comment, code := it.evaluateString()
	if code != ErrorNone {
		return code
	}
	defer comment.Release()
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	args, code := it.intList([2]int{0, 0xFFFF}, [2]int{1, datamanager.DataSize})
	if code != ErrorNone {
		return code
	}
	if !it.running() {
		return it.endOfCommand()
	}
	if !it.waitForDisk(cmdTok) {
		return ErrorNone
	}

	a, n := args[0], args[1]
	data := make([]byte, n)
	for i := range data {
		b, ok := it.m.Peek(a + i)
		if !ok {
			return ErrorIllegalMemoryAccess
		}
		data[i] = b
	}

	drive := it.core.diskDrive
	if drive.dm.CanSetEntry(f, n) {
		drive.dm.SetEntry(f, comment.String(), data)
		drive.updateDirectory()
		it.core.delegate.DiskDriveDidSave(drive.dm)
		logger.Debug(logger.AreaDisk, "saved entry %d (%d bytes)", f, n)
	} else {
		it.core.delegate.DiskDriveIsFull(drive.dm)
		logger.Warn(logger.AreaDisk, "disk full, entry %d not saved", f)
	}
	it.cycles += n

	code = it.endOfCommand()
	it.exitEvaluation = true
	return code
}

// cmdFiles reads the directory of the disk for FILE$ and FSIZE.
func (it *Interpreter) cmdFiles() ErrorCode {
	cmdTok := it.pc
	it.pc++
	if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	if !it.running() {
		return it.endOfCommand()
	}
	if !it.waitForDisk(cmdTok) {
		return ErrorNone
	}
	it.core.diskDrive.updateDirectory()
	code := it.endOfCommand()
	it.exitEvaluation = true
	return code
}
