package nxbasic

func (it *Interpreter) cmdIf() ErrorCode {
	ifTok := it.pc
	it.pc++
	cond, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenTHEN, ErrorExpectedThen); code != ErrorNone {
		return code
	}

	if it.tokenType() == TokenEol {
		// block IF
		if !it.running() {
			lt := LabelTypeIF
			if ifTok > 0 && it.tokens[ifTok-1].Type == TokenELSE {
				lt = LabelTypeELSEIF
			}
			if code := it.labels.Push(lt, ifTok); code != ErrorNone {
				return code
			}
		} else if cond == 0 {
			it.pc = it.tokens[ifTok].Jump
			return ErrorNone
		}
		return it.endOfCommand()
	}

	// single line IF: the jump goes behind the ELSE or to the end of the line
	it.isSingleLineIf = true
	if !it.running() {
		i := it.pc
		for it.tokens[i].Type != TokenEol && it.tokens[i].Type != TokenELSE {
			i++
		}
		if it.tokens[i].Type == TokenELSE {
			i++
		}
		it.tokens[ifTok].Jump = i
		return ErrorNone
	}
	if cond == 0 {
		it.pc = it.tokens[ifTok].Jump
	}
	return ErrorNone
}

func (it *Interpreter) cmdElse() ErrorCode {
	elseTok := it.pc
	it.pc++
	if it.running() {
		it.pc = it.tokens[elseTok].Jump
		return ErrorNone
	}

	if it.isSingleLineIf {
		i := it.pc
		for it.tokens[i].Type != TokenEol {
			i++
		}
		it.tokens[elseTok].Jump = i
		return ErrorNone
	}

	item, ok := it.labels.Pop()
	if !ok || (item.Type != LabelTypeIF && item.Type != LabelTypeELSEIF) {
		return ErrorElseWithoutIf
	}
	it.tokens[item.Token].Jump = elseTok + 1
	if item.Type == LabelTypeELSEIF {
		// the ELSE before this ELSE IF continues at this ELSE, which
		// jumps on to the END IF
		prev, ok := it.labels.Pop()
		if !ok || prev.Type != LabelTypeELSE {
			return ErrorElseWithoutIf
		}
		it.tokens[prev.Token].Jump = elseTok
	}
	if code := it.labels.Push(LabelTypeELSE, elseTok); code != ErrorNone {
		return code
	}
	if it.tokenType() == TokenIF {
		return ErrorNone
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdEndIf() ErrorCode {
	it.pc += 2
	if !it.running() {
		item, ok := it.labels.Pop()
		if !ok {
			return ErrorEndIfWithoutIf
		}
		switch item.Type {
		case LabelTypeIF, LabelTypeELSE:
		case LabelTypeELSEIF:
			prev, ok := it.labels.Pop()
			if !ok || prev.Type != LabelTypeELSE {
				return ErrorEndIfWithoutIf
			}
			it.tokens[prev.Token].Jump = it.pc
		default:
			return ErrorEndIfWithoutIf
		}
		it.tokens[item.Token].Jump = it.pc
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdEnd() ErrorCode {
	it.pc++
	if it.running() {
		it.endProgram()
		return ErrorNone
	}
	return it.endOfCommand()
}

// resolveLabel checks the label identifier at pc and stores its target
// in the identifier's jump during prepare.
func (it *Interpreter) resolveLabel() ErrorCode {
	tok := &it.tokens[it.pc]
	if tok.Type != TokenIdentifier {
		return ErrorExpectedLabel
	}
	if !it.running() {
		target, ok := it.tokenizer.Label(tok.Symbol)
		if !ok {
			return ErrorUndefinedLabel
		}
		tok.Jump = target
	}
	return ErrorNone
}

func (it *Interpreter) cmdGoto(t TokenType) ErrorCode {
	it.pc++
	if code := it.resolveLabel(); code != ErrorNone {
		return code
	}
	labelTok := it.pc
	it.pc++
	if !it.running() {
		return it.endOfCommand()
	}
	if t == TokenGOSUB {
		if code := it.labels.Push(LabelTypeGOSUB, it.pc); code != ErrorNone {
			return code
		}
	}
	it.isSingleLineIf = false
	it.pc = it.tokens[labelTok].Jump
	return ErrorNone
}

// cmdReturn returns from the last GOSUB, or with a label jumps there and
// forgets all pending GOSUBs.
func (it *Interpreter) cmdReturn() ErrorCode {
	it.pc++
	if it.tokenType() == TokenIdentifier {
		if code := it.resolveLabel(); code != ErrorNone {
			return code
		}
		labelTok := it.pc
		it.pc++
		if !it.running() {
			return it.endOfCommand()
		}
		it.labels.Clear()
		it.isSingleLineIf = false
		it.pc = it.tokens[labelTok].Jump
		return ErrorNone
	}

	if !it.running() {
		return it.endOfCommand()
	}
	item, ok := it.labels.Pop()
	if !ok || item.Type != LabelTypeGOSUB {
		return ErrorReturnWithoutGosub
	}
	it.pc = item.Token
	return ErrorNone
}

// forStep parses the optional STEP of a FOR line.
func (it *Interpreter) forStep() (float32, ErrorCode) {
	if it.tokenType() != TokenSTEP {
		return 1, ErrorNone
	}
	it.pc++
	return it.evaluateNumber()
}

func loopContinues(v, limit, step float32) bool {
	if step < 0 {
		return v >= limit
	}
	return v <= limit
}

func (it *Interpreter) cmdFor() ErrorCode {
	forTok := it.pc
	it.pc++
	varTok := it.pc
	v, t, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	if t != ValueTypeFloat {
		return ErrorTypeMismatch
	}
	if code := it.expect(TokenEq, ErrorExpectedEqualSign); code != ErrorNone {
		return code
	}
	start, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenTO, ErrorExpectedTo); code != ErrorNone {
		return code
	}
	limitTok := it.pc
	limit, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	step, code := it.forStep()
	if code != ErrorNone {
		return code
	}

	if !it.running() {
		for _, item := range []LabelStackItem{
			{LabelTypeFORLimit, limitTok},
			{LabelTypeFORVar, varTok},
			{LabelTypeFOR, forTok},
		} {
			if code := it.labels.Push(item.Type, item.Token); code != ErrorNone {
				return code
			}
		}
		return it.endOfCommand()
	}

	v.Float = start
	if !loopContinues(start, limit, step) {
		it.pc = it.tokens[forTok].Jump
	}
	return it.endOfCommand()
}

// cmdNext increments the variable and evaluates limit and step again at
// their position in the FOR line.
func (it *Interpreter) cmdNext() ErrorCode {
	nextTok := it.pc
	it.pc++

	if !it.running() {
		item, ok := it.labels.Pop()
		if !ok || item.Type != LabelTypeFOR {
			return ErrorNextWithoutFor
		}
		varItem, _ := it.labels.Pop()
		limitItem, _ := it.labels.Pop()
		if it.tokenType() != TokenIdentifier || it.tokens[it.pc].Symbol != it.tokens[varItem.Token].Symbol {
			return ErrorNextWithoutFor
		}
		if _, _, code := it.accessVariable(); code != ErrorNone {
			return code
		}
		it.tokens[item.Token].Jump = it.pc
		it.tokens[nextTok].Jump = limitItem.Token
		return it.endOfCommand()
	}

	v, _, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	endPc := it.pc

	it.pc = it.tokens[nextTok].Jump
	limit, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	step, code := it.forStep()
	if code != ErrorNone {
		return code
	}
	v.Float += step
	if !loopContinues(v.Float, limit, step) {
		it.pc = endPc
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdDo() ErrorCode {
	if !it.running() {
		if code := it.labels.Push(LabelTypeDO, it.pc); code != ErrorNone {
			return code
		}
	}
	it.pc++
	return it.endOfCommand()
}

func (it *Interpreter) cmdLoop() ErrorCode {
	loopTok := it.pc
	it.pc++
	if it.running() {
		it.pc = it.tokens[loopTok].Jump
		return ErrorNone
	}
	item, ok := it.labels.Pop()
	if !ok || item.Type != LabelTypeDO {
		return ErrorLoopWithoutDo
	}
	it.tokens[loopTok].Jump = item.Token
	it.tokens[item.Token].Jump = it.pc
	return it.endOfCommand()
}

func (it *Interpreter) cmdRepeat() ErrorCode {
	if !it.running() {
		if code := it.labels.Push(LabelTypeREPEAT, it.pc); code != ErrorNone {
			return code
		}
	}
	it.pc++
	return it.endOfCommand()
}

func (it *Interpreter) cmdUntil() ErrorCode {
	untilTok := it.pc
	it.pc++
	cond, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		if cond == 0 {
			it.pc = it.tokens[untilTok].Jump
			return ErrorNone
		}
		return it.endOfCommand()
	}
	item, ok := it.labels.Pop()
	if !ok || item.Type != LabelTypeREPEAT {
		return ErrorUntilWithoutRepeat
	}
	it.tokens[untilTok].Jump = item.Token
	it.tokens[item.Token].Jump = it.pc
	return it.endOfCommand()
}

func (it *Interpreter) cmdWhile() ErrorCode {
	whileTok := it.pc
	it.pc++
	cond, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if !it.running() {
		if code := it.labels.Push(LabelTypeWHILE, whileTok); code != ErrorNone {
			return code
		}
	} else if cond == 0 {
		it.pc = it.tokens[whileTok].Jump
		return ErrorNone
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdWend() ErrorCode {
	wendTok := it.pc
	it.pc++
	if it.running() {
		it.pc = it.tokens[wendTok].Jump
		return ErrorNone
	}
	item, ok := it.labels.Pop()
	if !ok || item.Type != LabelTypeWHILE {
		return ErrorWendWithoutWhile
	}
	it.tokens[wendTok].Jump = item.Token
	it.tokens[item.Token].Jump = it.pc
	return it.endOfCommand()
}

// cmdExit leaves the innermost loop. It jumps to where the loop's opening
// token jumps when the loop is done.
func (it *Interpreter) cmdExit() ErrorCode {
	exitTok := it.pc
	it.pc++
	if it.running() {
		it.pc = it.tokens[it.tokens[exitTok].Jump].Jump
		return ErrorNone
	}
	item, ok := it.labels.Search(LabelTypeDO, LabelTypeREPEAT, LabelTypeWHILE, LabelTypeFOR)
	if !ok {
		return ErrorSyntax
	}
	it.tokens[exitTok].Jump = item.Token
	return it.endOfCommand()
}

// cmdWait ends the frame: WAIT VBL, WAIT n frames or WAIT TAP.
func (it *Interpreter) cmdWait() ErrorCode {
	it.pc++
	if code := it.notInInterrupt(); code != ErrorNone {
		return code
	}
	switch it.tokenType() {
	case TokenVBL:
		it.pc++
	case TokenTAP:
		it.pc++
		if it.running() {
			it.waitTap = true
		}
	default:
		n, code := it.evaluateInt(1, 0x7FFFFFFF)
		if code != ErrorNone {
			return code
		}
		if it.running() {
			it.waitCount = n - 1
		}
	}
	code := it.endOfCommand()
	if it.running() {
		it.exitEvaluation = true
	}
	return code
}

// cmdOn handles ON RASTER/VBL CALL name and ON RASTER/VBL OFF.
func (it *Interpreter) cmdOn() ErrorCode {
	it.pc++
	kind := it.tokenType()
	if kind != TokenRASTER && kind != TokenVBL {
		return ErrorSyntax
	}
	it.pc++

	target := -1
	switch it.tokenType() {
	case TokenOFF:
		it.pc++
	case TokenCALL:
		it.pc++
		if code := it.resolveSub(); code != ErrorNone {
			return code
		}
		target = it.tokens[it.pc].Jump
		it.pc++
	default:
		return ErrorSyntax
	}

	if it.running() {
		if kind == TokenRASTER {
			it.currentOnRasterToken = target
		} else {
			it.currentOnVBLToken = target
		}
	}
	return it.endOfCommand()
}
