package nxbasic

// evaluateFunction dispatches on the function keyword at pc.
func (it *Interpreter) evaluateFunction() TypedValue {
	t := it.tokenType()
	if it.running() {
		it.cycles++
	}
	switch t {
	case TokenABS, TokenATN, TokenCEIL, TokenCOS, TokenEXP, TokenINT, TokenLOG,
		TokenSGN, TokenSIN, TokenSQR, TokenTAN:
		return it.fnMath(t)
	case TokenMAX, TokenMIN:
		return it.fnMinMax(t)
	case TokenPI:
		it.pc++
		return floatValue(3.14159265)
	case TokenRND:
		return it.fnRnd()
	case TokenTRUE:
		it.pc++
		return floatValue(BasTrue)
	case TokenFALSE:
		it.pc++
		return floatValue(BasFalse)

	case TokenASC:
		return it.fnAsc()
	case TokenBIN, TokenHEX:
		return it.fnBinHex(t)
	case TokenCHR:
		return it.fnChr()
	case TokenINSTR:
		return it.fnInstr()
	case TokenLEFTStr, TokenRIGHTStr:
		return it.fnLeftRight(t)
	case TokenMID:
		return it.fnMid()
	case TokenLEN:
		return it.fnLen()
	case TokenSTR:
		return it.fnStr()
	case TokenVAL:
		return it.fnVal()

	case TokenPEEK, TokenPEEKW, TokenPEEKL:
		return it.fnPeek(t)
	case TokenROM, TokenSIZE:
		return it.fnRomEntry(t)

	case TokenTIMER:
		it.pc++
		return floatValue(float32(it.timer))
	case TokenRASTER:
		it.pc++
		return floatValue(float32(it.m.RasterLine()))
	case TokenCURSORX:
		it.pc++
		return floatValue(float32(it.textLib.cursorX))
	case TokenCURSORY:
		it.pc++
		return floatValue(float32(it.textLib.cursorY))

	case TokenINKEY:
		return it.fnInkey()
	case TokenUP, TokenDOWN, TokenLEFT, TokenRIGHT:
		return it.fnDirection(t)
	case TokenBUTTON:
		return it.fnButton()
	case TokenTOUCH, TokenTAP:
		return it.fnTouch(t)
	case TokenTOUCHX, TokenTOUCHY:
		return it.fnTouchPosition(t)
	case TokenPAUSE:
		return it.fnPause()

	case TokenCELLA, TokenCELLC:
		return it.fnCell(t)
	case TokenSPRITEX, TokenSPRITEY, TokenSPRITEC, TokenSPRITEA:
		return it.fnSprite(t)
	case TokenCOLOR:
		return it.fnColor()

	case TokenFILE, TokenFSIZE:
		return it.fnFile(t)
	}
	return errorValue(ErrorSyntax)
}

// functionArgs parses "(a, b, ...)" after the function name. Arguments
// after the first required ones may be left out. The caller owns the
// returned values.
func (it *Interpreter) functionArgs(required int, classes ...TypeClass) ([]TypedValue, ErrorCode) {
	if code := it.expect(TokenBracketOpen, ErrorExpectedLeftParenthesis); code != ErrorNone {
		return nil, code
	}
	args := make([]TypedValue, 0, len(classes))
	for i, tc := range classes {
		if i > 0 {
			if it.tokenType() != TokenComma {
				if i < required {
					releaseAll(args)
					return nil, ErrorExpectedComma
				}
				break
			}
			it.pc++
		}
		v := it.evaluateExpression(tc)
		if v.isError() {
			releaseAll(args)
			return nil, v.Err
		}
		args = append(args, v)
	}
	if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
		releaseAll(args)
		return nil, code
	}
	return args, ErrorNone
}

func releaseAll(args []TypedValue) {
	for _, a := range args {
		a.release()
	}
}

// intArg checks a numeric argument range in the run pass.
func (it *Interpreter) intArg(v TypedValue, min, max int) (int, ErrorCode) {
	n := int(v.Float)
	if it.running() && (n < min || n > max) {
		return 0, ErrorInvalidParameter
	}
	return n, ErrorNone
}
