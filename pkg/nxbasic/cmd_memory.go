package nxbasic

// cmdPoke: POKE a,v / POKEW a,v / POKEL a,v.
func (it *Interpreter) cmdPoke(t TokenType) ErrorCode {
	it.pc++
	a, code := it.evaluateInt(0, 0xFFFF)
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenComma, ErrorExpectedComma); code != ErrorNone {
		return code
	}
	v, code := it.evaluateInt(minInt, maxInt)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		var ok bool
		switch t {
		case TokenPOKEW:
			ok = it.m.PokeWord(a, v)
		case TokenPOKEL:
			ok = it.m.PokeLong(a, int32(v))
		default:
			ok = it.m.Poke(a, byte(v))
		}
		if !ok {
			return ErrorIllegalMemoryAccess
		}
	}
	return it.endOfCommand()
}

// cmdFill: FILL a,n[,v] sets n bytes to v (default 0).
func (it *Interpreter) cmdFill() ErrorCode {
	it.pc++
	args, code := it.intList([2]int{0, 0xFFFF}, [2]int{1, 0x10000})
	if code != ErrorNone {
		return code
	}
	v := 0
	if it.tokenType() == TokenComma {
		it.pc++
		if v, code = it.evaluateInt(0, 255); code != ErrorNone {
			return code
		}
	}
	if it.running() {
		a, n := args[0], args[1]
		for i := 0; i < n; i++ {
			if !it.m.Poke(a+i, byte(v)) {
				return ErrorIllegalMemoryAccess
			}
		}
		it.cycles += n
	}
	return it.endOfCommand()
}

// cmdCopy: COPY a,n TO d. Overlapping ranges copy like a move.
func (it *Interpreter) cmdCopy() ErrorCode {
	it.pc++
	args, code := it.intList([2]int{0, 0xFFFF}, [2]int{1, 0x10000})
	if code != ErrorNone {
		return code
	}
	if code := it.expect(TokenTO, ErrorExpectedTo); code != ErrorNone {
		return code
	}
	dst, code := it.evaluateInt(0, 0xFFFF)
	if code != ErrorNone {
		return code
	}
	if it.running() {
		src, n := args[0], args[1]
		buf := make([]byte, n)
		for i := range buf {
			b, ok := it.m.Peek(src + i)
			if !ok {
				return ErrorIllegalMemoryAccess
			}
			buf[i] = b
		}
		for i, b := range buf {
			if !it.m.Poke(dst+i, b) {
				return ErrorIllegalMemoryAccess
			}
		}
		it.cycles += n
	}
	return it.endOfCommand()
}
