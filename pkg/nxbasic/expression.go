package nxbasic

import (
	"bytes"
	"math"
)

// evaluateExpression evaluates a full expression. The type class is only
// checked in the prepare pass; the run pass relies on it.
func (it *Interpreter) evaluateExpression(tc TypeClass) TypedValue {
	v := it.evaluateExpressionLevel(0)
	if v.isError() {
		return v
	}
	if it.pass == PassPrepare && !v.matches(tc) {
		v.release()
		return errorValue(ErrorTypeMismatch)
	}
	return v
}

// Precedence from weakest to strongest:
// 0 XOR OR, 1 AND, 2 NOT, 3 comparisons, 4 + -, 5 MOD, 6 * / \,
// 7 unary + -, 8 ^, 9 primary.
func (it *Interpreter) evaluateExpressionLevel(level int) TypedValue {
	t := it.tokenType()

	switch {
	case level == 2 && t == TokenNOT:
		it.pc++
		v := it.evaluateExpressionLevel(level)
		return it.unaryOperation(TokenNOT, v)

	case level == 7 && (t == TokenPlus || t == TokenMinus):
		it.pc++
		v := it.evaluateExpressionLevel(level)
		return it.unaryOperation(t, v)

	case level == 9:
		return it.evaluatePrimaryExpression()
	}

	value := it.evaluateExpressionLevel(level + 1)
	if value.isError() {
		return value
	}
	for {
		op := it.tokenType()
		if !isOperatorOfLevel(op, level) {
			return value
		}
		it.pc++
		right := it.evaluateExpressionLevel(level + 1)
		value = it.binaryOperation(op, value, right)
		if value.isError() {
			return value
		}
	}
}

func isOperatorOfLevel(t TokenType, level int) bool {
	switch level {
	case 0:
		return t == TokenXOR || t == TokenOR
	case 1:
		return t == TokenAND
	case 3:
		switch t {
		case TokenEq, TokenUneq, TokenGr, TokenLe, TokenGrEq, TokenLeEq:
			return true
		}
	case 4:
		return t == TokenPlus || t == TokenMinus
	case 5:
		return t == TokenMOD
	case 6:
		return t == TokenMul || t == TokenDiv || t == TokenDivInt
	case 8:
		return t == TokenPow
	}
	return false
}

func (it *Interpreter) unaryOperation(op TokenType, v TypedValue) TypedValue {
	if v.isError() {
		return v
	}
	if v.Type != ValueTypeFloat {
		v.release()
		return errorValue(ErrorTypeMismatch)
	}
	if it.running() {
		it.cycles++
	}
	switch op {
	case TokenMinus:
		return floatValue(-v.Float)
	case TokenNOT:
		return floatValue(float32(^int32(v.Float)))
	}
	return v
}

func (it *Interpreter) binaryOperation(op TokenType, l, r TypedValue) TypedValue {
	if r.isError() {
		l.release()
		return r
	}
	if l.Type != r.Type {
		l.release()
		r.release()
		return errorValue(ErrorTypeMismatch)
	}
	if l.Type == ValueTypeString {
		return it.stringOperation(op, l, r)
	}

	if it.pass == PassPrepare {
		return floatValue(0)
	}
	it.cycles++

	a, b := l.Float, r.Float
	switch op {
	case TokenXOR:
		return floatValue(float32(int32(a) ^ int32(b)))
	case TokenOR:
		return floatValue(float32(int32(a) | int32(b)))
	case TokenAND:
		return floatValue(float32(int32(a) & int32(b)))
	case TokenEq:
		return boolValue(a == b)
	case TokenUneq:
		return boolValue(a != b)
	case TokenGr:
		return boolValue(a > b)
	case TokenLe:
		return boolValue(a < b)
	case TokenGrEq:
		return boolValue(a >= b)
	case TokenLeEq:
		return boolValue(a <= b)
	case TokenPlus:
		return floatValue(a + b)
	case TokenMinus:
		return floatValue(a - b)
	case TokenMul:
		return floatValue(a * b)
	case TokenDiv:
		if b == 0 {
			return errorValue(ErrorDivisionByZero)
		}
		return floatValue(a / b)
	case TokenDivInt:
		if int32(b) == 0 {
			return errorValue(ErrorDivisionByZero)
		}
		return floatValue(float32(int32(a) / int32(b)))
	case TokenMOD:
		if b == 0 {
			return errorValue(ErrorDivisionByZero)
		}
		return floatValue(float32(math.Mod(float64(a), float64(b))))
	case TokenPow:
		return floatValue(float32(math.Pow(float64(a), float64(b))))
	}
	return errorValue(ErrorSyntax)
}

// stringOperation consumes both operands.
func (it *Interpreter) stringOperation(op TokenType, l, r TypedValue) TypedValue {
	defer l.release()
	defer r.release()

	switch op {
	case TokenEq, TokenUneq, TokenGr, TokenLe, TokenGrEq, TokenLeEq:
	case TokenPlus:
		if it.pass == PassPrepare {
			return stringValue(nil)
		}
		it.cycles += 1 + l.Str.Len() + r.Str.Len()
		joined := make([]byte, 0, l.Str.Len()+r.Str.Len())
		joined = append(joined, l.Str.Bytes()...)
		joined = append(joined, r.Str.Bytes()...)
		return stringValue(NewRCString(joined))
	default:
		return errorValue(ErrorTypeMismatch)
	}

	if it.pass == PassPrepare {
		return floatValue(0)
	}
	it.cycles++
	c := bytes.Compare(l.Str.Bytes(), r.Str.Bytes())
	switch op {
	case TokenEq:
		return boolValue(c == 0)
	case TokenUneq:
		return boolValue(c != 0)
	case TokenGr:
		return boolValue(c > 0)
	case TokenLe:
		return boolValue(c < 0)
	case TokenGrEq:
		return boolValue(c >= 0)
	default:
		return boolValue(c <= 0)
	}
}

func (it *Interpreter) evaluatePrimaryExpression() TypedValue {
	tok := &it.tokens[it.pc]
	switch tok.Type {
	case TokenFloat:
		it.pc++
		if it.running() {
			it.cycles++
		}
		return floatValue(tok.Float)

	case TokenString:
		it.pc++
		if !it.running() {
			return stringValue(nil)
		}
		it.cycles++
		return stringValue(tok.Str.Retain())

	case TokenIdentifier, TokenStringIdentifier:
		v, t, code := it.accessVariable()
		if code != ErrorNone {
			return errorValue(code)
		}
		if t == ValueTypeString {
			if !it.running() {
				return stringValue(nil)
			}
			return stringValue(v.Str.Retain())
		}
		return floatValue(v.Float)

	case TokenBracketOpen:
		it.pc++
		v := it.evaluateExpressionLevel(0)
		if v.isError() {
			return v
		}
		if it.tokenType() != TokenBracketClose {
			v.release()
			return errorValue(ErrorExpectedRightParenthesis)
		}
		it.pc++
		return v
	}
	return it.evaluateFunction()
}

// accessVariable parses a simple or array variable and returns its
// storage. In the run pass missing simple variables are created. In
// the prepare pass a scratch cell is returned.
func (it *Interpreter) accessVariable() (*Value, ValueType, ErrorCode) {
	tok := it.tokens[it.pc]
	if tok.Type != TokenIdentifier && tok.Type != TokenStringIdentifier {
		return nil, ValueTypeNull, ErrorExpectedVariableIdentifier
	}
	t := valueTypeForToken(tok.Type)
	it.pc++

	if it.tokenType() == TokenBracketOpen {
		it.pc++
		indices, code := it.evaluateIndices()
		if code != ErrorNone {
			return nil, t, code
		}
		if !it.running() {
			it.prepareValue = Value{}
			return &it.prepareValue, t, ErrorNone
		}
		arr := it.vars.GetArray(tok.Symbol, it.subLevel)
		if arr == nil {
			return nil, t, ErrorArrayNotDimensionized
		}
		offset, code := arr.Offset(indices)
		if code != ErrorNone {
			return nil, t, code
		}
		return it.vars.Element(arr, offset), t, ErrorNone
	}

	if !it.running() {
		it.prepareValue = Value{}
		return &it.prepareValue, t, ErrorNone
	}
	v := it.vars.GetSimple(tok.Symbol, it.subLevel)
	if v == nil {
		if it.vars.GetArray(tok.Symbol, it.subLevel) != nil {
			return nil, t, ErrorArrayVariableWithoutIndex
		}
		var code ErrorCode
		v, code = it.vars.CreateSimple(tok.Symbol, it.subLevel, t, nil)
		if code != ErrorNone {
			return nil, t, code
		}
	}
	return it.vars.Value(v), t, ErrorNone
}

// evaluateIndices parses a comma separated index list after '(' up to
// and including ')'.
func (it *Interpreter) evaluateIndices() ([]int, ErrorCode) {
	var indices []int
	for {
		v := it.evaluateExpression(TypeClassNumeric)
		if v.isError() {
			return nil, v.Err
		}
		indices = append(indices, int(v.Float))
		switch it.tokenType() {
		case TokenComma:
			it.pc++
		case TokenBracketClose:
			it.pc++
			return indices, ErrorNone
		default:
			return nil, ErrorExpectedRightParenthesis
		}
	}
}

// assign stores v in dst and takes over its string reference.
func assign(dst *Value, t ValueType, v TypedValue) {
	if t == ValueTypeString {
		dst.Str.Release()
		dst.Str = v.Str
		return
	}
	dst.Float = v.Float
}

func typeClassFor(t ValueType) TypeClass {
	if t == ValueTypeString {
		return TypeClassString
	}
	return TypeClassNumeric
}

// evaluateNumber evaluates a numeric expression.
func (it *Interpreter) evaluateNumber() (float32, ErrorCode) {
	v := it.evaluateExpression(TypeClassNumeric)
	if v.isError() {
		return 0, v.Err
	}
	return v.Float, ErrorNone
}

// evaluateInt evaluates a numeric expression and checks min <= n <= max
// in the run pass.
func (it *Interpreter) evaluateInt(min, max int) (int, ErrorCode) {
	f, code := it.evaluateNumber()
	if code != ErrorNone {
		return 0, code
	}
	n := int(f)
	if it.running() && (n < min || n > max) {
		return 0, ErrorInvalidParameter
	}
	return n, ErrorNone
}

// evaluateString returns an owned reference, nil in the prepare pass.
func (it *Interpreter) evaluateString() (*RCString, ErrorCode) {
	v := it.evaluateExpression(TypeClassString)
	if v.isError() {
		return nil, v.Err
	}
	return v.Str, ErrorNone
}

// evaluateOptionalInt parses an argument that may be left out between
// commas. present is false for an empty argument.
func (it *Interpreter) evaluateOptionalInt(min, max int) (n int, present bool, code ErrorCode) {
	switch it.tokenType() {
	case TokenComma, TokenBracketClose, TokenTO, TokenSTEP:
		return 0, false, ErrorNone
	}
	if isEndOfCommand(it.tokenType()) {
		return 0, false, ErrorNone
	}
	n, code = it.evaluateInt(min, max)
	return n, code == ErrorNone, code
}

// evaluateOptionalArgs parses "a,[b],[c]..." where every argument after
// the first may be empty or missing. Missing values are -1.
func (it *Interpreter) evaluateOptionalArgs(ranges ...[2]int) ([]int, ErrorCode) {
	values := make([]int, len(ranges))
	for i := range values {
		values[i] = -1
	}
	for i, r := range ranges {
		if i > 0 {
			if it.tokenType() != TokenComma {
				break
			}
			it.pc++
		}
		n, present, code := it.evaluateOptionalInt(r[0], r[1])
		if code != ErrorNone {
			return nil, code
		}
		if present {
			values[i] = n
		} else if i == 0 {
			return nil, ErrorSyntax
		}
	}
	return values, ErrorNone
}
