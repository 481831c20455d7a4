package nxbasic

import (
	"math/rand/v2"

	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/machine"
)

// Pass selects whether commands only check syntax and patch jumps, or
// really execute. Both passes consume exactly the same tokens.
type Pass int

const (
	PassPrepare Pass = iota
	PassRun
)

// State of the interpreter driver.
type State int

const (
	StateNoProgram State = iota
	StateEvaluate
	StateInput
	StatePaused
	StateWaitForDisk
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateNoProgram:
		return "no-program"
	case StateEvaluate:
		return "evaluate"
	case StateInput:
		return "input"
	case StatePaused:
		return "paused"
	case StateWaitForDisk:
		return "wait-for-disk"
	case StateEnd:
		return "end"
	}
	return "unknown"
}

type mode int

const (
	modeNone mode = iota
	modeMain
	modeInterrupt
)

const (
	MaxCyclesTotalPerFrame = 17556
	MaxCyclesPerVBL        = 1140
	MaxCyclesPerRaster     = 51

	timerWrap          = 5184000
	energySavingFrames = 2
)

// Interpreter runs one tokenized program against the machine of its core.
type Interpreter struct {
	core *Core
	m    *machine.Machine

	sourceCode string
	tokenizer  *Tokenizer
	tokens     []Token

	pass  Pass
	state State
	mode  mode
	pc    int

	subLevel       int
	labels         labelStack
	vars           *variableStore
	nullString     *RCString
	prepareValue   Value
	isSingleLineIf bool
	exitEvaluation bool

	cycles              int
	interruptOverCycles int
	suspendEnergySaving int

	waitCount int
	waitTap   bool

	firstData        int
	lastData         int
	currentDataToken int
	currentDataValue int

	currentOnRasterToken int
	currentOnVBLToken    int
	inputVarToken        int

	timer             int
	rng               *rand.Rand
	handlesPause      bool
	keyboardOptional  bool
	lastFrameIOStatus machine.IOStatus
	lastFrameGamepads [machine.NumGamepads]machine.Gamepad

	textLib  TextLib
	audioLib AudioLib
}

func newInterpreter(core *Core, m *machine.Machine) *Interpreter {
	it := &Interpreter{
		core:                 core,
		m:                    m,
		nullString:           newRCStringFromString(""),
		rng:                  rand.New(rand.NewPCG(0, 0)),
		firstData:            -1,
		lastData:             -1,
		currentDataToken:     -1,
		currentDataValue:     -1,
		currentOnRasterToken: -1,
		currentOnVBLToken:    -1,
	}
	it.vars = newVariableStore(it.nullString)
	it.textLib.init(m)
	it.audioLib.init(m)
	return it
}

// compile tokenizes and prepares source. On error the interpreter
// stays without a program.
func (it *Interpreter) compile(source string) CoreError {
	it.free()
	it.sourceCode = source

	tokenizer, err := Tokenize(source)
	if err.Code != ErrorNone {
		return err
	}
	it.tokenizer = tokenizer
	it.tokens = tokenizer.Tokens

	if err := it.prepare(); err.Code != ErrorNone {
		it.free()
		return err
	}
	it.startRun()
	logger.Info(logger.AreaInterpreter, "compiled program: %d tokens, %d symbols, %d labels, %d subs",
		len(it.tokens), len(tokenizer.Symbols), len(tokenizer.JumpLabels), len(tokenizer.Subs))
	return CoreError{}
}

// prepare runs all commands in the prepare pass to check syntax and
// patch the jump targets of the control structures.
func (it *Interpreter) prepare() CoreError {
	it.pass = PassPrepare
	it.mode = modeMain
	it.pc = 0
	it.subLevel = 0
	it.labels.Clear()
	it.isSingleLineIf = false
	it.firstData = -1
	it.lastData = -1

	for it.tokens[it.pc].Type != TokenUndefined {
		if code := it.evaluateCommand(); code != ErrorNone {
			return newCoreError(code, it.tokens[it.pc].SourcePosition)
		}
	}

	if item, ok := it.labels.Peek(); ok {
		var code ErrorCode
		switch item.Type {
		case LabelTypeIF, LabelTypeELSEIF, LabelTypeELSE:
			code = ErrorIfWithoutEndIf
		case LabelTypeFOR, LabelTypeFORVar, LabelTypeFORLimit:
			code = ErrorForWithoutNext
		case LabelTypeDO:
			code = ErrorDoWithoutLoop
		case LabelTypeREPEAT:
			code = ErrorRepeatWithoutUntil
		case LabelTypeWHILE:
			code = ErrorWhileWithoutWend
		case LabelTypeSUB:
			code = ErrorSubWithoutEndSub
		default:
			code = ErrorSyntax
		}
		return newCoreError(code, it.tokens[item.Token].SourcePosition)
	}
	return CoreError{}
}

func (it *Interpreter) startRun() {
	it.pass = PassRun
	it.state = StateEvaluate
	it.mode = modeNone
	it.pc = 0
	it.subLevel = 0
	it.labels.Clear()
	it.isSingleLineIf = false
	it.exitEvaluation = false
	it.cycles = 0
	it.interruptOverCycles = 0
	it.waitCount = 0
	it.waitTap = false
	it.currentOnRasterToken = -1
	it.currentOnVBLToken = -1
	it.handlesPause = true
	it.keyboardOptional = false
	it.restoreData(it.firstData)
	it.textLib.reset()
	it.audioLib.reset()
}

// free releases the program and all variables.
func (it *Interpreter) free() {
	it.vars.FreeAll()
	it.tokenizer.Free()
	it.tokenizer = nil
	it.tokens = nil
	it.state = StateNoProgram
	it.textLib.free()
}

// endProgram stops execution. Variables stay until the next compile.
// Changes to persistent RAM are reported once, when the run ends.
func (it *Interpreter) endProgram() {
	it.state = StateEnd
	it.exitEvaluation = true
	it.interruptOverCycles = 0

	if it.m.PersistentRAMDirty() {
		it.core.delegate.PersistentRAMDidChange(it.m.PersistentRAM())
		it.m.ClearPersistentRAMDirty()
	}
}

// runProgram evaluates the main program until the frame budget is used
// up or the program yields.
func (it *Interpreter) runProgram() {
	switch it.state {
	case StateEvaluate:
		if it.waitCount > 0 {
			it.waitCount--
			return
		}
		if it.waitTap {
			if !it.tapped() {
				return
			}
			it.waitTap = false
		}
		it.mode = modeMain
		it.exitEvaluation = false
		code := ErrorNone
		for code == ErrorNone && it.state == StateEvaluate && !it.exitEvaluation &&
			it.cycles < MaxCyclesTotalPerFrame {
			code = it.evaluateCommand()
		}
		it.exitEvaluation = false
		it.mode = modeNone
		if code != ErrorNone {
			it.fail(code)
		}

	case StateInput:
		it.mode = modeMain
		if it.textLib.inputUpdate() {
			if code := it.finishInput(); code != ErrorNone {
				it.fail(code)
			}
		}
		it.mode = modeNone
	}
}

// didFinishVBL does the per frame bookkeeping after the main program ran.
func (it *Interpreter) didFinishVBL() {
	if it.suspendEnergySaving > 0 {
		it.suspendEnergySaving--
	}
	it.cycles -= MaxCyclesTotalPerFrame
	if it.cycles < 0 {
		it.cycles = 0
	} else if it.cycles > 0 {
		it.suspendEnergySaving = energySavingFrames
	}

	it.timer = (it.timer + 1) % timerWrap

	status := it.m.IOStatus()
	if status&machine.StatusPause != 0 && it.handlesPause {
		switch it.state {
		case StateEvaluate:
			it.state = StatePaused
		case StatePaused:
			it.state = StateEvaluate
		}
		status &^= machine.StatusPause
		it.m.SetIOStatus(status)
	}

	it.lastFrameIOStatus = it.m.IOStatus()
	for i := range it.lastFrameGamepads {
		it.lastFrameGamepads[i] = it.m.Gamepad(i)
	}
	it.audioLib.frameUpdate()
}

func (it *Interpreter) fail(code ErrorCode) {
	pos := -1
	if it.pc >= 0 && it.pc < len(it.tokens) {
		pos = it.tokens[it.pc].SourcePosition
	}
	it.endProgram()
	err := newCoreError(code, pos)
	logger.Warn(logger.AreaInterpreter, "runtime error: %s", TraceError(it.sourceCode, err))
	it.core.delegate.InterpreterDidFail(err)
}

// finishInput assigns the entered text to the INPUT variable and
// continues after the INPUT command.
func (it *Interpreter) finishInput() ErrorCode {
	it.state = StateEvaluate
	it.pc = it.inputVarToken
	v, t, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	text := it.textLib.inputText()
	if t == ValueTypeString {
		v.Str.Release()
		v.Str = newRCStringFromString(text)
	} else {
		v.Float = parseNumber(text)
	}
	return it.endOfCommand()
}

// tapped reports a new touch or a newly pressed A/B button.
func (it *Interpreter) tapped() bool {
	if it.m.IOStatus()&machine.StatusTouch != 0 && it.lastFrameIOStatus&machine.StatusTouch == 0 {
		return true
	}
	buttons := machine.GamepadA | machine.GamepadB
	for i := range it.lastFrameGamepads {
		if it.m.Gamepad(i)&buttons&^it.lastFrameGamepads[i] != 0 {
			return true
		}
	}
	return it.m.Key() != 0
}

// endOfCommand consumes the statement separator.
func (it *Interpreter) endOfCommand() ErrorCode {
	switch it.tokens[it.pc].Type {
	case TokenEol:
		it.isSingleLineIf = false
		it.pc++
		return ErrorNone
	case TokenColon:
		it.pc++
		return ErrorNone
	case TokenELSE:
		// the run pass only gets here from prepared lines
		if it.isSingleLineIf || it.running() {
			return ErrorNone
		}
	case TokenUndefined:
		return ErrorNone
	}
	return ErrorUnexpectedToken
}

func isEndOfCommand(t TokenType) bool {
	switch t {
	case TokenEol, TokenColon, TokenELSE, TokenUndefined:
		return true
	}
	return false
}

func (it *Interpreter) tokenType() TokenType { return it.tokens[it.pc].Type }

func (it *Interpreter) expect(t TokenType, code ErrorCode) ErrorCode {
	if it.tokens[it.pc].Type != t {
		return code
	}
	it.pc++
	return ErrorNone
}

func (it *Interpreter) running() bool { return it.pass == PassRun }

func (it *Interpreter) symbolName(symbol int) string {
	if it.tokenizer == nil || symbol < 0 || symbol >= len(it.tokenizer.Symbols) {
		return ""
	}
	return it.tokenizer.Symbols[symbol]
}
