package nxbasic

// subParam is one declared parameter of a SUB.
type subParam struct {
	symbol int
	t      ValueType
	array  bool
}

// callArg is one argument of CALL. Bare variables are passed by
// reference (ref or array), everything else by value. value owns its
// string until it is moved into a parameter.
type callArg struct {
	value   TypedValue
	ref     *Value
	refType ValueType
	array   *ArrayVariable
	isArray bool
}

func (a callArg) valueType() ValueType {
	if a.ref != nil || a.isArray {
		return a.refType
	}
	return a.value.Type
}

func releaseCallArgs(args []callArg) {
	for i := range args {
		args[i].value.release()
		args[i].value = TypedValue{}
	}
}

// resolveSub checks the subprogram name at pc and stores the index of its
// SUB token in the name's jump during prepare.
func (it *Interpreter) resolveSub() ErrorCode {
	tok := &it.tokens[it.pc]
	if tok.Type != TokenIdentifier {
		return ErrorExpectedSubprogramName
	}
	if !it.running() {
		subTok, ok := it.tokenizer.Sub(tok.Symbol)
		if !ok {
			return ErrorUndefinedSubprogram
		}
		tok.Jump = subTok
	}
	return ErrorNone
}

// parseSubParameters reads "(a, b$, c())" after a SUB name.
func (it *Interpreter) parseSubParameters() ([]subParam, ErrorCode) {
	if it.tokenType() != TokenBracketOpen {
		return nil, ErrorNone
	}
	it.pc++
	var params []subParam
	for {
		tok := it.tokens[it.pc]
		if tok.Type != TokenIdentifier && tok.Type != TokenStringIdentifier {
			return nil, ErrorExpectedVariableIdentifier
		}
		it.pc++
		p := subParam{symbol: tok.Symbol, t: valueTypeForToken(tok.Type)}
		if it.tokenType() == TokenBracketOpen {
			it.pc++
			if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
				return nil, code
			}
			p.array = true
		}
		params = append(params, p)
		if it.tokenType() != TokenComma {
			break
		}
		it.pc++
	}
	if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
		return nil, code
	}
	return params, ErrorNone
}

func checkCallArgs(params []subParam, args []callArg) ErrorCode {
	if len(params) != len(args) {
		return ErrorArgumentCountMismatch
	}
	for i, p := range params {
		if p.array != args[i].isArray || p.t != args[i].valueType() {
			return ErrorTypeMismatch
		}
	}
	return ErrorNone
}

func (it *Interpreter) cmdSub() ErrorCode {
	subTok := it.pc
	it.pc++
	if it.running() {
		it.pc = it.tokens[subTok].Jump
		return ErrorNone
	}
	if _, ok := it.labels.Search(LabelTypeSUB); ok {
		return ErrorSubCannotBeNested
	}
	if it.tokenType() != TokenIdentifier {
		return ErrorExpectedSubprogramName
	}
	it.pc++
	if _, code := it.parseSubParameters(); code != ErrorNone {
		return code
	}
	if code := it.labels.Push(LabelTypeSUB, subTok); code != ErrorNone {
		return code
	}
	return it.endOfCommand()
}

func (it *Interpreter) cmdEndSub() ErrorCode {
	it.pc += 2
	if it.running() {
		return it.returnFromSub()
	}
	item, ok := it.labels.Pop()
	if !ok || item.Type != LabelTypeSUB {
		return ErrorEndSubWithoutSub
	}
	it.tokens[item.Token].Jump = it.pc
	return it.endOfCommand()
}

func (it *Interpreter) cmdExitSub() ErrorCode {
	it.pc += 2
	if it.running() {
		return it.returnFromSub()
	}
	if _, ok := it.labels.Search(LabelTypeSUB); !ok {
		return ErrorExitSubOutsideOfASubprogram
	}
	return it.endOfCommand()
}

// returnFromSub drops everything up to the frame of the call, frees the
// local variables and continues after the CALL. Interrupt calls just end
// the evaluation.
func (it *Interpreter) returnFromSub() ErrorCode {
	for {
		item, ok := it.labels.Pop()
		if !ok {
			return ErrorEndSubWithoutSub
		}
		if item.Type != LabelTypeCALL && item.Type != LabelTypeONCALL {
			continue
		}
		it.vars.FreeSimple(it.subLevel)
		it.vars.FreeArrays(it.subLevel)
		it.subLevel--
		if item.Type == LabelTypeONCALL {
			it.exitEvaluation = true
		} else {
			it.pc = item.Token
		}
		return ErrorNone
	}
}

func (it *Interpreter) cmdCall() ErrorCode {
	it.pc++
	if code := it.resolveSub(); code != ErrorNone {
		return code
	}
	subTok := it.tokens[it.pc].Jump
	it.pc++
	args, code := it.parseCallArgs()
	if code != ErrorNone {
		return code
	}

	if !it.running() {
		code := it.checkSubCall(subTok, args)
		releaseCallArgs(args)
		if code != ErrorNone {
			return code
		}
		return it.endOfCommand()
	}

	if code := it.labels.Push(LabelTypeCALL, it.pc); code != ErrorNone {
		releaseCallArgs(args)
		return code
	}
	it.subLevel++
	return it.enterSub(subTok, args)
}

// checkSubCall compares the arguments with the parameters of the SUB
// during prepare.
func (it *Interpreter) checkSubCall(subTok int, args []callArg) ErrorCode {
	pc := it.pc
	defer func() { it.pc = pc }()
	it.pc = subTok + 2
	params, code := it.parseSubParameters()
	if code != ErrorNone {
		return code
	}
	return checkCallArgs(params, args)
}

func (it *Interpreter) parseCallArgs() ([]callArg, ErrorCode) {
	if it.tokenType() != TokenBracketOpen {
		return nil, ErrorNone
	}
	it.pc++
	var args []callArg
	for {
		arg, code := it.parseCallArg()
		if code != ErrorNone {
			releaseCallArgs(args)
			return nil, code
		}
		args = append(args, arg)
		if it.tokenType() != TokenComma {
			break
		}
		it.pc++
	}
	if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
		releaseCallArgs(args)
		return nil, code
	}
	return args, ErrorNone
}

func (it *Interpreter) parseCallArg() (callArg, ErrorCode) {
	tok := it.tokens[it.pc]
	if tok.Type == TokenIdentifier || tok.Type == TokenStringIdentifier {
		next := it.tokens[it.pc+1].Type
		switch {
		case next == TokenBracketOpen && it.tokens[it.pc+2].Type == TokenBracketClose:
			it.pc += 3
			arg := callArg{refType: valueTypeForToken(tok.Type), isArray: true}
			if it.running() {
				arg.array = it.vars.GetArray(tok.Symbol, it.subLevel)
				if arg.array == nil {
					return callArg{}, ErrorArrayNotDimensionized
				}
			}
			return arg, ErrorNone

		case next == TokenComma || next == TokenBracketClose:
			v, t, code := it.accessVariable()
			if code != ErrorNone {
				return callArg{}, code
			}
			return callArg{ref: v, refType: t}, ErrorNone
		}
	}
	v := it.evaluateExpression(TypeClassAny)
	if v.isError() {
		return callArg{}, v.Err
	}
	return callArg{value: v}, ErrorNone
}

// enterSub binds the arguments to the parameters of the SUB at subTok on
// the current sub level and continues with its first statement.
func (it *Interpreter) enterSub(subTok int, args []callArg) ErrorCode {
	defer releaseCallArgs(args)
	it.pc = subTok + 2
	params, code := it.parseSubParameters()
	if code != ErrorNone {
		return code
	}
	if code := checkCallArgs(params, args); code != ErrorNone {
		return code
	}
	for i, p := range params {
		a := &args[i]
		switch {
		case p.array:
			if _, code := it.vars.CreateArrayReference(p.symbol, it.subLevel, a.array); code != ErrorNone {
				return code
			}
		case a.ref != nil:
			if _, code := it.vars.CreateSimple(p.symbol, it.subLevel, p.t, a.ref); code != ErrorNone {
				return code
			}
		default:
			v, code := it.vars.CreateSimple(p.symbol, it.subLevel, p.t, nil)
			if code != ErrorNone {
				return code
			}
			assign(it.vars.Value(v), p.t, a.value)
			a.value = TypedValue{}
		}
	}
	it.isSingleLineIf = false
	return it.endOfCommand()
}

// parseVariableList reads "a, b$, c()" and calls fn for every entry.
func (it *Interpreter) parseVariableList(fn func(tok Token, array bool) ErrorCode) ErrorCode {
	for {
		tok := it.tokens[it.pc]
		if tok.Type != TokenIdentifier && tok.Type != TokenStringIdentifier {
			return ErrorExpectedVariableIdentifier
		}
		it.pc++
		array := false
		if it.tokenType() == TokenBracketOpen {
			it.pc++
			if code := it.expect(TokenBracketClose, ErrorExpectedRightParenthesis); code != ErrorNone {
				return code
			}
			array = true
		}
		if code := fn(tok, array); code != ErrorNone {
			return code
		}
		if it.tokenType() != TokenComma {
			return ErrorNone
		}
		it.pc++
	}
}

// cmdShared makes variables of the main program visible in a SUB.
func (it *Interpreter) cmdShared() ErrorCode {
	it.pc++
	if !it.running() {
		if _, ok := it.labels.Search(LabelTypeSUB); !ok {
			return ErrorSharedOutsideOfASubprogram
		}
	}
	code := it.parseVariableList(func(tok Token, array bool) ErrorCode {
		if !it.running() {
			return ErrorNone
		}
		if array {
			main := it.vars.GetArray(tok.Symbol, 0)
			if main == nil {
				return ErrorArrayNotDimensionized
			}
			_, code := it.vars.CreateArrayReference(tok.Symbol, it.subLevel, main)
			return code
		}
		main := it.vars.GetSimple(tok.Symbol, 0)
		if main == nil {
			return ErrorVariableNotInitialized
		}
		_, code := it.vars.CreateSimple(tok.Symbol, it.subLevel, valueTypeForToken(tok.Type), it.vars.Value(main))
		return code
	})
	if code != ErrorNone {
		return code
	}
	return it.endOfCommand()
}

// cmdGlobal declares simple variables visible on every sub level.
func (it *Interpreter) cmdGlobal() ErrorCode {
	it.pc++
	if !it.running() {
		if _, ok := it.labels.Search(LabelTypeSUB); ok {
			return ErrorGlobalInsideOfASubprogram
		}
	}
	code := it.parseVariableList(func(tok Token, array bool) ErrorCode {
		if array {
			return ErrorSyntax
		}
		if !it.running() {
			return ErrorNone
		}
		if it.vars.GetSimple(tok.Symbol, 0) != nil {
			return ErrorVariableAlreadyUsed
		}
		_, code := it.vars.CreateSimple(tok.Symbol, SubLevelGlobal, valueTypeForToken(tok.Type), nil)
		return code
	})
	if code != ErrorNone {
		return code
	}
	return it.endOfCommand()
}
