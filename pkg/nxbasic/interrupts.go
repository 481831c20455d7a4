package nxbasic

// InterruptType selects the subprogram run by runInterrupt.
type InterruptType int

const (
	InterruptRaster InterruptType = iota
	InterruptVBL
)

// runInterrupt calls the subprogram registered for the interrupt with
// its own cycle budget and returns to the interrupted position. The main
// program's cycle count is not touched.
func (it *Interpreter) runInterrupt(t InterruptType) {
	switch it.state {
	case StateEvaluate, StateInput, StateWaitForDisk:
	default:
		return
	}
	startToken := it.currentOnVBLToken
	maxCycles := MaxCyclesPerVBL
	if t == InterruptRaster {
		startToken = it.currentOnRasterToken
		maxCycles = MaxCyclesPerRaster
	}
	if startToken < 0 {
		return
	}

	mainPc := it.pc
	mainCycles := it.cycles
	mainExit := it.exitEvaluation
	mainMode := it.mode
	mainSingleLineIf := it.isSingleLineIf

	it.mode = modeInterrupt
	it.exitEvaluation = false
	it.cycles = 0

	code := it.labels.Push(LabelTypeONCALL, -1)
	if code == ErrorNone {
		it.subLevel++
		code = it.enterSub(startToken, nil)
	}
	for code == ErrorNone && !it.exitEvaluation {
		code = it.evaluateCommand()
		if code == ErrorNone && it.cycles > MaxCyclesTotalPerFrame {
			code = ErrorTooManyCPUCyclesInInterrupt
		}
	}
	// Only the overage counts, it makes Render skip frames.
	if it.cycles > maxCycles {
		it.interruptOverCycles += it.cycles - maxCycles
	}

	it.cycles = mainCycles
	it.pc = mainPc
	it.mode = mainMode
	it.isSingleLineIf = mainSingleLineIf
	it.exitEvaluation = mainExit
	if code != ErrorNone {
		it.fail(code)
	}
}
