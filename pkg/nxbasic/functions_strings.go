package nxbasic

import (
	"bytes"
	"strconv"
	"strings"
)

// formatNumber prints numbers like the console does: up to 7
// significant digits, no trailing zeros.
func formatNumber(f float32) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(f), 'g', 7, 32)
}

// parseNumber reads the longest leading decimal number of s, 0 if none.
func parseNumber(s string) float32 {
	s = strings.TrimLeft(s, " ")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	dot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
		} else if c == '.' && !dot {
			dot = true
			end++
		} else {
			break
		}
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 32); err == nil {
			return float32(f)
		}
		end--
	}
	return 0
}

// newString makes a string result and charges its length.
func (it *Interpreter) newString(b []byte) TypedValue {
	it.cycles += len(b)
	return stringValue(NewRCString(b))
}

func (it *Interpreter) fnAsc() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassString)
	if code != ErrorNone {
		return errorValue(code)
	}
	defer releaseAll(args)
	if !it.running() {
		return floatValue(0)
	}
	if args[0].Str.Len() == 0 {
		return errorValue(ErrorInvalidParameter)
	}
	return floatValue(float32(args[0].Str.Bytes()[0]))
}

func (it *Interpreter) fnBinHex(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	width := 0
	if len(args) > 1 {
		if width, code = it.intArg(args[1], 0, 32); code != ErrorNone {
			return errorValue(code)
		}
	}
	if !it.running() {
		return stringValue(nil)
	}
	base := 16
	if t == TokenBIN {
		base = 2
	}
	s := strings.ToUpper(strconv.FormatUint(uint64(uint32(int32(args[0].Float))), base))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return it.newString([]byte(s))
}

func (it *Interpreter) fnChr() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	c, code := it.intArg(args[0], 0, 255)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return stringValue(nil)
	}
	return it.newString([]byte{byte(c)})
}

// fnInstr returns the 1 based position of the second string in the
// first, searching from an optional 1 based start position.
func (it *Interpreter) fnInstr() TypedValue {
	it.pc++
	args, code := it.functionArgs(2, TypeClassString, TypeClassString, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	defer releaseAll(args)
	start := 1
	if len(args) > 2 {
		if start, code = it.intArg(args[2], 1, 0x7FFFFFFF); code != ErrorNone {
			return errorValue(code)
		}
	}
	if !it.running() {
		return floatValue(0)
	}
	haystack := args[0].Str.Bytes()
	if start > len(haystack) {
		return floatValue(0)
	}
	it.cycles += len(haystack)
	i := bytes.Index(haystack[start-1:], args[1].Str.Bytes())
	if i < 0 {
		return floatValue(0)
	}
	return floatValue(float32(i + start))
}

func (it *Interpreter) fnLeftRight(t TokenType) TypedValue {
	it.pc++
	args, code := it.functionArgs(2, TypeClassString, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	n, code := it.intArg(args[1], 0, 0x7FFFFFFF)
	if code != ErrorNone {
		args[0].release()
		return errorValue(code)
	}
	if !it.running() {
		return stringValue(nil)
	}
	s := args[0].Str
	if n >= s.Len() {
		return args[0]
	}
	defer s.Release()
	if t == TokenLEFTStr {
		return it.newString(s.Bytes()[:n])
	}
	return it.newString(s.Bytes()[s.Len()-n:])
}

func (it *Interpreter) fnMid() TypedValue {
	it.pc++
	args, code := it.functionArgs(2, TypeClassString, TypeClassNumeric, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	pos, code := it.intArg(args[1], 1, 0x7FFFFFFF)
	length := 0x7FFFFFFF
	if code == ErrorNone && len(args) > 2 {
		length, code = it.intArg(args[2], 0, 0x7FFFFFFF)
	}
	if code != ErrorNone {
		args[0].release()
		return errorValue(code)
	}
	if !it.running() {
		return stringValue(nil)
	}
	s := args[0].Str
	defer s.Release()
	b := s.Bytes()
	if pos > len(b) {
		return it.newString(nil)
	}
	b = b[pos-1:]
	if length < len(b) {
		b = b[:length]
	}
	return it.newString(b)
}

func (it *Interpreter) fnLen() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassString)
	if code != ErrorNone {
		return errorValue(code)
	}
	defer releaseAll(args)
	return floatValue(float32(args[0].Str.Len()))
}

func (it *Interpreter) fnStr() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassNumeric)
	if code != ErrorNone {
		return errorValue(code)
	}
	if !it.running() {
		return stringValue(nil)
	}
	return it.newString([]byte(formatNumber(args[0].Float)))
}

func (it *Interpreter) fnVal() TypedValue {
	it.pc++
	args, code := it.functionArgs(1, TypeClassString)
	if code != ErrorNone {
		return errorValue(code)
	}
	defer releaseAll(args)
	return floatValue(parseNumber(args[0].Str.String()))
}

// replaceSubstring implements LEFT$, RIGHT$ and MID$ as assignment
// targets. The length of the string never changes.
func replaceSubstring(dst *RCString, src []byte, t TokenType, pos, n int) *RCString {
	b := append([]byte(nil), dst.Bytes()...)
	if n > len(src) {
		n = len(src)
	}
	switch t {
	case TokenLEFTStr:
		pos = 1
	case TokenRIGHTStr:
		if n > len(b) {
			n = len(b)
		}
		pos = len(b) - n + 1
	}
	if pos < 1 || pos > len(b) {
		return NewRCString(b)
	}
	copy(b[pos-1:min(pos-1+n, len(b))], src)
	return NewRCString(b)
}
