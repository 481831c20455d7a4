package nxbasic

// evaluateCommand executes or prepares one statement starting at pc.
// Both passes consume the same tokens.
func (it *Interpreter) evaluateCommand() ErrorCode {
	t := it.tokenType()
	if it.running() && t != TokenEol && t != TokenColon {
		it.cycles++
	}

	switch t {
	case TokenUndefined:
		if it.running() {
			it.endProgram()
		}
		return ErrorNone
	case TokenEol:
		it.isSingleLineIf = false
		it.pc++
		return ErrorNone
	case TokenColon, TokenLabel:
		it.pc++
		return ErrorNone

	case TokenIdentifier, TokenStringIdentifier, TokenLET:
		return it.cmdLet()
	case TokenLEFTStr, TokenRIGHTStr, TokenMID:
		return it.cmdSubstringAssign()

	// control
	case TokenIF:
		return it.cmdIf()
	case TokenELSE:
		return it.cmdElse()
	case TokenEND:
		switch it.tokens[it.pc+1].Type {
		case TokenIF:
			return it.cmdEndIf()
		case TokenSUB:
			return it.cmdEndSub()
		}
		return it.cmdEnd()
	case TokenGOTO, TokenGOSUB:
		return it.cmdGoto(t)
	case TokenRETURN:
		return it.cmdReturn()
	case TokenFOR:
		return it.cmdFor()
	case TokenNEXT:
		return it.cmdNext()
	case TokenDO:
		return it.cmdDo()
	case TokenLOOP:
		return it.cmdLoop()
	case TokenREPEAT:
		return it.cmdRepeat()
	case TokenUNTIL:
		return it.cmdUntil()
	case TokenWHILE:
		return it.cmdWhile()
	case TokenWEND:
		return it.cmdWend()
	case TokenEXIT:
		if it.tokens[it.pc+1].Type == TokenSUB {
			return it.cmdExitSub()
		}
		return it.cmdExit()
	case TokenWAIT:
		return it.cmdWait()
	case TokenON:
		return it.cmdOn()

	// subprograms
	case TokenSUB:
		return it.cmdSub()
	case TokenCALL:
		return it.cmdCall()
	case TokenSHARED:
		return it.cmdShared()
	case TokenGLOBAL:
		return it.cmdGlobal()

	// variables
	case TokenDIM:
		return it.cmdDim()
	case TokenSWAP:
		return it.cmdSwap()
	case TokenINC, TokenDEC:
		return it.cmdIncDec(t)
	case TokenADD:
		return it.cmdAdd()
	case TokenRANDOMIZE:
		return it.cmdRandomize()

	// data
	case TokenDATA:
		return it.cmdData()
	case TokenREAD:
		return it.cmdRead()
	case TokenRESTORE:
		return it.cmdRestore()

	// text
	case TokenPRINT:
		return it.cmdPrint()
	case TokenINPUT:
		return it.cmdInput()
	case TokenTEXT:
		return it.cmdText()
	case TokenNUMBER:
		return it.cmdNumber()
	case TokenCLS:
		return it.cmdCls()
	case TokenCLW:
		return it.cmdClw()
	case TokenLOCATE:
		return it.cmdLocate()
	case TokenWINDOW:
		return it.cmdWindow()
	case TokenFONT:
		return it.cmdFont()

	// screen
	case TokenPALETTE:
		return it.cmdPalette()
	case TokenCOLOR:
		return it.cmdColor()
	case TokenSCROLL:
		return it.cmdScroll()
	case TokenDISPLAY:
		return it.cmdDisplay()

	// background
	case TokenCELL:
		if it.tokens[it.pc+1].Type == TokenSIZE {
			return it.cmdCellSize()
		}
		return it.cmdCell()
	case TokenBG:
		switch it.tokens[it.pc+1].Type {
		case TokenSOURCE:
			return it.cmdBgSource()
		case TokenCOPY:
			return it.cmdBgCopy()
		case TokenSCROLL:
			return it.cmdBgScroll()
		case TokenFILL:
			return it.cmdBgFill()
		case TokenTINT:
			return it.cmdBgTint()
		case TokenVIEW:
			return it.cmdView(t)
		}
		return it.cmdBg()
	case TokenCHAR:
		return it.cmdChar()
	case TokenATTR:
		return it.cmdAttr()
	case TokenPAL, TokenFLIP, TokenPRIO:
		return it.cmdTextAttr(t)

	// sprites
	case TokenSPRITE:
		switch it.tokens[it.pc+1].Type {
		case TokenVIEW:
			return it.cmdView(t)
		case TokenOFF:
			return it.cmdSpriteOff()
		}
		return it.cmdSprite()

	// audio
	case TokenSOUND:
		if it.tokens[it.pc+1].Type == TokenSOURCE {
			return it.cmdSoundSource()
		}
		return it.cmdSound()
	case TokenVOLUME:
		return it.cmdVolume()
	case TokenENVELOPE:
		return it.cmdEnvelope()
	case TokenLFO:
		return it.cmdLfo()
	case TokenPLAY:
		return it.cmdPlay()
	case TokenSTOP:
		return it.cmdStop()

	// input
	case TokenKEYBOARD:
		return it.cmdKeyboard()
	case TokenGAMEPAD:
		return it.cmdGamepad()
	case TokenTOUCHSCREEN:
		return it.cmdTouchscreen()
	case TokenPAUSE:
		return it.cmdPause()

	// memory
	case TokenPOKE, TokenPOKEW, TokenPOKEL:
		return it.cmdPoke(t)
	case TokenFILL:
		return it.cmdFill()
	case TokenCOPY:
		return it.cmdCopy()

	// files
	case TokenLOAD:
		return it.cmdLoad()
	case TokenSAVE:
		return it.cmdSave()
	case TokenFILES:
		return it.cmdFiles()
	}
	return ErrorSyntax
}

// notInInterrupt rejects commands that would block inside ON RASTER or
// ON VBL subprograms.
func (it *Interpreter) notInInterrupt() ErrorCode {
	if it.running() && it.mode == modeInterrupt {
		return ErrorNotAllowedInInterrupt
	}
	return ErrorNone
}
