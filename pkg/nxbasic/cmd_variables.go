package nxbasic

const (
	minInt = -0x7FFFFFFF
	maxInt = 0x7FFFFFFF
)

// cmdLet assigns to a variable, with or without LET.
func (it *Interpreter) cmdLet() ErrorCode {
	if it.tokenType() == TokenLET {
		it.pc++
	}
	v, t, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenEq, ErrorExpectedEqualSign); code != ErrorNone {
		return code
	}
	value := it.evaluateExpression(typeClassFor(t))
	if value.isError() {
		return value.Err
	}
	if it.running() {
		assign(v, t, value)
	} else {
		value.release()
	}
	return it.endOfCommand()
}

// cmdSubstringAssign handles LEFT$(a$,n) = s, RIGHT$(a$,n) = s and
// MID$(a$,p[,n]) = s. The length of a$ does not change.
func (it *Interpreter) cmdSubstringAssign() ErrorCode {
	t := it.tokenType()
	it.pc++
	if code := it.expect(TokenBracketOpen, ErrorExpectedLeftParenthesis); code != ErrorNone {
		return code
	}
	v, vt, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	if vt != ValueTypeString {
		return ErrorTypeMismatch
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}

	pos, n := 1, -1
	if t == TokenMID {
		if pos, code = it.evaluateInt(1, maxInt); code != ErrorNone {
			return code
		}
		if it.tokenType() == TokenComma {
			it.pc++
			if n, code = it.evaluateInt(0, maxInt); code != ErrorNone {
				return code
			}
		}
	} else if n, code = it.evaluateInt(0, maxInt); code != ErrorNone {
		return code
	}

	if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
		return code
	}
	if code := it.expect(TokenEq, ErrorExpectedEqualSign); code != ErrorNone {
		return code
	}
	s, code := it.evaluateString()
	if code != ErrorNone {
		return code
	}
	defer s.Release()

	if it.running() {
		src := s.Bytes()
		if n < 0 {
			n = len(src)
		}
		replaced := replaceSubstring(v.Str, src, t, pos, n)
		it.cycles += replaced.Len()
		v.Str.Release()
		v.Str = replaced
	}
	return it.endOfCommand()
}

// cmdDim creates arrays. The given numbers are the highest indices.
func (it *Interpreter) cmdDim() ErrorCode {
	it.pc++
	level, usedLevel := it.subLevel, it.subLevel
	if it.tokenType() == TokenGLOBAL {
		it.pc++
		if !it.running() {
			if _, ok := it.labels.Search(LabelTypeSUB); ok {
				return ErrorGlobalInsideOfASubprogram
			}
		}
		// a global array clashes with variables of the main program
		level, usedLevel = SubLevelGlobal, 0
	}

	for {
		tok := it.tokens[it.pc]
		if tok.Type != TokenIdentifier && tok.Type != TokenStringIdentifier {
			return ErrorExpectedVariableIdentifier
		}
		it.pc++
		if code := it.expect(TokenBracketOpen, ErrorExpectedLeftParenthesis); code != ErrorNone {
			return code
		}
		indices, code := it.evaluateIndices()
		if code != ErrorNone {
			return code
		}
		if it.running() {
			if it.vars.GetSimple(tok.Symbol, usedLevel) != nil {
				return ErrorVariableAlreadyUsed
			}
			dims := make([]int, len(indices))
			for i, idx := range indices {
				dims[i] = idx + 1
			}
			if _, code := it.vars.Dim(tok.Symbol, level, valueTypeForToken(tok.Type), dims); code != ErrorNone {
				return code
			}
		}
		if it.tokenType() != TokenComma {
			break
		}
		it.pc++
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdSwap() ErrorCode {
	it.pc++
	a, ta, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	b, tb, code := it.accessVariable()
	if code != ErrorNone {
		return code
	}
	if ta != tb {
		return ErrorTypeMismatch
	}
	if it.running() {
		*a, *b = *b, *a
	}
	return it.endOfCommand()
}

// numericVariable parses a variable that must be numeric.
func (it *Interpreter) numericVariable() (*Value, ErrorCode) {
	v, t, code := it.accessVariable()
	if code != ErrorNone {
		return nil, code
	}
	if t != ValueTypeFloat {
		return nil, ErrorTypeMismatch
	}
	return v, ErrorNone
}

func (it *Interpreter) cmdIncDec(t TokenType) ErrorCode {
	it.pc++
	v, code := it.numericVariable()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		if t == TokenINC {
			v.Float++
		} else {
			v.Float--
		}
	}
	return it.endOfCommand()
}

// cmdAdd: ADD v,n[,min TO max]. With a range the value wraps around.
func (it *Interpreter) cmdAdd() ErrorCode {
	it.pc++
	v, code := it.numericVariable()
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	n, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}

	hasRange := false
	var lo, hi float32
	if it.tokenType() == TokenComma {
		it.pc++
		if lo, code = it.evaluateNumber(); code != ErrorNone {
			return code
		}
		if code := it.expect(TokenTO, ErrorExpectedTo); code != ErrorNone {
			return code
		}
		if hi, code = it.evaluateNumber(); code != ErrorNone {
			return code
		}
		hasRange = true
	}

	if it.running() {
		v.Float += n
		if hasRange {
			if v.Float < lo {
				v.Float = hi
			} else if v.Float > hi {
				v.Float = lo
			}
		}
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdRandomize() ErrorCode {
	it.pc++
	seed, code := it.evaluateNumber()
	if code != ErrorNone {
		return code
	}
	if it.running() {
		it.randomize(int(seed))
	}
	return it.endOfCommand()
}
