package nxbasic

import (
	"strconv"
)

const (
	MaxTokens      = 16384
	MaxSymbols     = 2048
	SymbolNameSize = 21
	MaxJumpLabels  = 256
	MaxSubs        = 256
)

// JumpLabel maps a label symbol to the index of the first token after
// the label.
type JumpLabel struct {
	Symbol int
	Token  int
}

// SubItem maps a subprogram name to the index of its SUB token.
type SubItem struct {
	Symbol int
	Token  int
}

// Tokenizer holds the result of tokenizing a program. The tables are
// never modified after Tokenize returns.
type Tokenizer struct {
	Tokens     []Token
	Symbols    []string
	JumpLabels []JumpLabel
	Subs       []SubItem

	symbolIndex map[string]int
}

type tokenizeState struct {
	t         *Tokenizer
	src       []byte
	orig      string
	pos       int
	lineStart bool
}

// Tokenize converts source into the token list. Tokenizing stops at a
// '#' at the beginning of a line, which starts the ROM entries. On
// error the returned tokenizer is nil and all strings are released.
func Tokenize(source string) (*Tokenizer, CoreError) {
	s := &tokenizeState{
		t: &Tokenizer{
			symbolIndex: make(map[string]int),
		},
		src:       upperASCII(source),
		orig:      source,
		lineStart: true,
	}
	if code := s.run(); code != ErrorNone {
		s.t.Free()
		return nil, newCoreError(code, s.pos)
	}
	return s.t, CoreError{}
}

func upperASCII(source string) []byte {
	b := []byte(source)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return b
}

func (s *tokenizeState) run() ErrorCode {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		if s.lineStart && c == '#' {
			break
		}
		if len(s.t.Tokens) >= MaxTokens-2 {
			return ErrorTooManyTokens
		}

		switch {
		case c == '\n' || c == '\r':
			s.add(Token{Type: TokenEol, SourcePosition: s.pos})
			s.pos++
			if c == '\r' && s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.pos++
			}
			s.lineStart = true
			continue

		case c == ' ' || c == '\t':
			s.pos++
			continue

		case c == '"':
			if code := s.readString(); code != ErrorNone {
				return code
			}

		case isDigit(c) || (c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])):
			s.readDecimal()

		case c == '$' || c == '%':
			if code := s.readBase(c); code != ErrorNone {
				return code
			}

		case c == '\'':
			s.skipComment()
			continue

		default:
			if kw, length := matchKeyword(s.src[s.pos:]); kw != TokenUndefined {
				if kw == TokenREM {
					s.skipComment()
					continue
				}
				if kw.isReserved() {
					return ErrorReservedKeyword
				}
				s.add(Token{Type: kw, SourcePosition: s.pos})
				s.pos += length
			} else if isLetter(c) {
				if code := s.readIdentifier(); code != ErrorNone {
					return code
				}
			} else {
				return ErrorUnexpectedCharacter
			}
		}
		s.lineStart = false
	}

	s.add(Token{Type: TokenEol, SourcePosition: s.pos})
	s.add(Token{Type: TokenUndefined, SourcePosition: s.pos})
	return ErrorNone
}

func (s *tokenizeState) add(tok Token) {
	tok.Jump = -1
	s.t.Tokens = append(s.t.Tokens, tok)
}

// skipComment leaves pos on the line break so the EOL token is kept.
func (s *tokenizeState) skipComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
		s.pos++
	}
}

func (s *tokenizeState) readString() ErrorCode {
	start := s.pos
	s.pos++
	first := s.pos
	for {
		if s.pos >= len(s.src) || s.src[s.pos] == '\n' || s.src[s.pos] == '\r' {
			return ErrorUnterminatedString
		}
		c := s.src[s.pos]
		if c == '"' {
			break
		}
		if c >= 128 {
			return ErrorUnexpectedCharacter
		}
		s.pos++
	}
	s.add(Token{Type: TokenString, SourcePosition: start, Str: newRCStringFromString(s.orig[first:s.pos])})
	s.pos++
	return ErrorNone
}

func (s *tokenizeState) readDecimal() {
	start := s.pos
	dot := false
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isDigit(c) {
			s.pos++
		} else if c == '.' && !dot {
			dot = true
			s.pos++
		} else {
			break
		}
	}
	f, _ := strconv.ParseFloat(string(s.src[start:s.pos]), 32)
	s.add(Token{Type: TokenFloat, SourcePosition: start, Float: float32(f)})
}

// readBase reads $hex and %binary numbers.
func (s *tokenizeState) readBase(prefix byte) ErrorCode {
	start := s.pos
	s.pos++
	value := 0
	digits := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if prefix == '$' {
			d, ok := hexDigit(c)
			if !ok {
				break
			}
			value = value<<4 | d
		} else {
			if c != '0' && c != '1' {
				break
			}
			value = value<<1 | int(c-'0')
		}
		digits++
		s.pos++
	}
	if digits == 0 {
		return ErrorUnexpectedCharacter
	}
	s.add(Token{Type: TokenFloat, SourcePosition: start, Float: float32(value)})
	return ErrorNone
}

func (s *tokenizeState) readIdentifier() ErrorCode {
	start := s.pos
	for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	name := string(s.src[start:s.pos])
	tokType := TokenIdentifier
	switch {
	case s.pos < len(s.src) && s.src[s.pos] == '$':
		s.pos++
		name += "$"
		tokType = TokenStringIdentifier
	case s.lineStart && s.pos < len(s.src) && s.src[s.pos] == ':':
		s.pos++
		tokType = TokenLabel
	}
	if len(name) > SymbolNameSize-1 {
		s.pos = start
		return ErrorSymbolNameTooLong
	}
	symbol, code := s.t.symbol(name)
	if code != ErrorNone {
		s.pos = start
		return code
	}

	index := len(s.t.Tokens)
	switch {
	case tokType == TokenLabel:
		if _, exists := s.t.Label(symbol); exists {
			s.pos = start
			return ErrorLabelAlreadyDefined
		}
		if len(s.t.JumpLabels) >= MaxJumpLabels {
			s.pos = start
			return ErrorTooManyLabels
		}
		s.t.JumpLabels = append(s.t.JumpLabels, JumpLabel{Symbol: symbol, Token: index + 1})

	case index > 0 && s.t.Tokens[index-1].Type == TokenSUB:
		if _, exists := s.t.Sub(symbol); exists {
			s.pos = start
			return ErrorSubAlreadyDefined
		}
		if len(s.t.Subs) >= MaxSubs {
			s.pos = start
			return ErrorTooManySubprograms
		}
		s.t.Subs = append(s.t.Subs, SubItem{Symbol: symbol, Token: index - 1})
	}

	s.add(Token{Type: tokType, SourcePosition: start, Symbol: symbol})
	return ErrorNone
}

func (t *Tokenizer) symbol(name string) (int, ErrorCode) {
	if i, ok := t.symbolIndex[name]; ok {
		return i, ErrorNone
	}
	if len(t.Symbols) >= MaxSymbols {
		return 0, ErrorTooManySymbols
	}
	t.Symbols = append(t.Symbols, name)
	t.symbolIndex[name] = len(t.Symbols) - 1
	return len(t.Symbols) - 1, ErrorNone
}

// Label returns the token index following the label with the symbol.
func (t *Tokenizer) Label(symbol int) (int, bool) {
	for _, l := range t.JumpLabels {
		if l.Symbol == symbol {
			return l.Token, true
		}
	}
	return 0, false
}

// Sub returns the index of the SUB token of a subprogram.
func (t *Tokenizer) Sub(symbol int) (int, bool) {
	for _, s := range t.Subs {
		if s.Symbol == symbol {
			return s.Token, true
		}
	}
	return 0, false
}

// Free releases the string literals.
func (t *Tokenizer) Free() {
	if t == nil {
		return
	}
	for i := range t.Tokens {
		t.Tokens[i].Str.Release()
		t.Tokens[i].Str = nil
	}
	t.Tokens = nil
}

// matchKeyword finds the longest keyword at the start of b. Keywords
// starting with a letter must not be followed by an identifier character.
func matchKeyword(b []byte) (TokenType, int) {
	best := TokenUndefined
	bestLen := 0
	for tt := TokenColon; tt < tokenCount; tt++ {
		kw := tokenStrings[tt]
		if kw == "" || len(kw) <= bestLen || len(kw) > len(b) {
			continue
		}
		if string(b[:len(kw)]) != kw {
			continue
		}
		if isLetter(kw[0]) && len(b) > len(kw) && isIdentChar(b[len(kw)]) && isIdentChar(kw[len(kw)-1]) {
			continue
		}
		best = tt
		bestLen = len(kw)
	}
	return best, bestLen
}

func isDigit(c byte) bool     { return c >= '0' && c <= '9' }
func isLetter(c byte) bool    { return c >= 'A' && c <= 'Z' }
func isIdentChar(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
