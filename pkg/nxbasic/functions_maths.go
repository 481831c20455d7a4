package nxbasic

import (
	"math"
	"math/rand/v2"
)

func (it *Interpreter) fnMath(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	x := float64(args[0].Float)
	var r float64
	switch t {
	case TokenABS:
		r = math.Abs(x)
	case TokenATN:
		r = math.Atan(x)
	case TokenCEIL:
		r = math.Ceil(x)
	case TokenCOS:
		r = math.Cos(x)
	case TokenEXP:
		r = math.Exp(x)
	case TokenINT:
		r = math.Floor(x)
	case TokenLOG:
		if x <= 0 {
			return errorValue(ErrorInvalidParameter)
		}
		r = math.Log(x)
	case TokenSGN:
		switch {
		case x > 0:
			r = 1
		case x < 0:
			r = -1
		}
	case TokenSIN:
		r = math.Sin(x)
	case TokenSQR:
		if x < 0 {
			return errorValue(ErrorInvalidParameter)
		}
		r = math.Sqrt(x)
	case TokenTAN:
		r = math.Tan(x)
	}
	return floatValue(float32(r))
}

func (it *Interpreter) fnMinMax(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(2, TypeClassNumeric, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	a, b := args[0].Float, args[1].Float
	if t == TokenMAX {
		return floatValue(max(a, b))
	}
	return floatValue(min(a, b))
}

// fnRnd returns a number 0 <= x < 1, or with an argument an integer
// 0 <= x <= n.
func (it *Interpreter) fnRnd() TypedValue {
	it.pc++
	if it.tokenType() != TokenBracketOpen {
		if !it.running() {
			return floatValue(0)
		}
		return floatValue(it.rng.Float32())
	}
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[0], 0, 0x7FFFFFFF)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return floatValue(0)
	}
	return floatValue(float32(it.rng.IntN(n + 1)))
}

// randomize reseeds the generator. A seed of 0 uses the frame timer.
func (it *Interpreter) randomize(seed int) {
	if seed == 0 {
		seed = it.timer + 1
	}
	it.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)*0x9E3779B97F4A7C15))
}
