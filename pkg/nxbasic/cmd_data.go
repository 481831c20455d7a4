package nxbasic

// cmdData checks the value list. During prepare all DATA commands are
// chained through their jumps in program order.
func (it *Interpreter) cmdData() ErrorCode {
	dataTok := it.pc
	if !it.running() {
		if it.lastData >= 0 {
			it.tokens[it.lastData].Jump = dataTok
		} else {
			it.firstData = dataTok
		}
		it.lastData = dataTok
	}
	it.pc++

	for {
		if it.tokenType() == TokenMinus {
			it.pc++
			if it.tokenType() != TokenFloat {
				return ErrorSyntax
			}
		}
		switch it.tokenType() {
		case TokenFloat, TokenString:
			it.pc++
		default:
			return ErrorSyntax
		}
		if it.tokenType() != TokenComma {
			break
		}
		it.pc++
	}
	return it.endOfCommand()
}

// restoreData makes the first value of a DATA command the next one to
// read. dataTok < 0 means no more data.
func (it *Interpreter) restoreData(dataTok int) {
	it.currentDataToken = dataTok
	if dataTok < 0 {
		it.currentDataValue = -1
		return
	}
	it.currentDataValue = dataTok + 1
}

// readData returns the next DATA value and advances, following the chain
// into the next DATA command.
func (it *Interpreter) readData() (TypedValue, ErrorCode) {
	i := it.currentDataValue
	if i < 0 {
		return TypedValue{}, ErrorOutOfData
	}
	negative := false
	if it.tokens[i].Type == TokenMinus {
		negative = true
		i++
	}
	tok := it.tokens[i]
	var v TypedValue
	if tok.Type == TokenString {
		v = stringValue(tok.Str.Retain())
	} else {
		f := tok.Float
		if negative {
			f = -f
		}
		v = floatValue(f)
	}
	i++
	if it.tokens[i].Type == TokenComma {
		it.currentDataValue = i + 1
	} else {
		it.restoreData(it.tokens[it.currentDataToken].Jump)
	}
	return v, ErrorNone
}

func (it *Interpreter) cmdRead() ErrorCode {
	it.pc++
	for {
		v, t, code := it.accessVariable()
		if code != ErrorNone {
			return code
		}
		if it.running() {
			value, code := it.readData()
			if code != ErrorNone {
				return code
			}
			if value.Type != t {
				value.release()
				return ErrorTypeMismatch
			}
			assign(v, t, value)
		}
		if it.tokenType() != TokenComma {
			break
		}
		it.pc++
	}
	return it.endOfCommand()
}

// cmdRestore continues reading at the first DATA command, or at the first
// one after a label.
func (it *Interpreter) cmdRestore() ErrorCode {
	it.pc++
	target := -1
	if it.tokenType() == TokenIdentifier {
		if code := it.resolveLabel(); code != ErrorNone {
			return code
		}
		target = it.tokens[it.pc].Jump
		it.pc++
	}
	if it.running() {
		d := it.firstData
		if target >= 0 {
			for d >= 0 && d < target {
				d = it.tokens[d].Jump
			}
		}
		it.restoreData(d)
	}
	return it.endOfCommand()
}
