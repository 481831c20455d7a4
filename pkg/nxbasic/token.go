package nxbasic

// TokenType is the kind of a token. Keyword tokens have their source
// spelling in tokenStrings.
type TokenType int

const (
	TokenUndefined TokenType = iota

	TokenIdentifier
	TokenStringIdentifier
	TokenLabel
	TokenFloat
	TokenString

	TokenColon
	TokenComma
	TokenSemicolon
	TokenApostrophe
	TokenEol

	TokenEq
	TokenGrEq
	TokenLeEq
	TokenUneq
	TokenGr
	TokenLe
	TokenBracketOpen
	TokenBracketClose
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenDivInt
	TokenPow

	// commands and other keywords
	TokenADD
	TokenAND
	TokenATTR
	TokenBG
	TokenBUTTON
	TokenCALL
	TokenCELL
	TokenCHAR
	TokenCLS
	TokenCLW
	TokenCOLOR
	TokenCOPY
	TokenDATA
	TokenDEC
	TokenDIM
	TokenDISPLAY
	TokenDO
	TokenDOWN
	TokenELSE
	TokenEND
	TokenENVELOPE
	TokenEXIT
	TokenFILES
	TokenFILL
	TokenFLIP
	TokenFONT
	TokenFOR
	TokenGAMEPAD
	TokenGLOBAL
	TokenGOSUB
	TokenGOTO
	TokenIF
	TokenINC
	TokenINPUT
	TokenKEYBOARD
	TokenLEFT
	TokenLET
	TokenLFO
	TokenLOAD
	TokenLOCATE
	TokenLOOP
	TokenMOD
	TokenNEXT
	TokenNOT
	TokenNUMBER
	TokenOFF
	TokenON
	TokenOPTIONAL
	TokenOR
	TokenPAL
	TokenPALETTE
	TokenPAUSE
	TokenPLAY
	TokenPOKE
	TokenPOKEL
	TokenPOKEW
	TokenPRINT
	TokenPRIO
	TokenRANDOMIZE
	TokenRASTER
	TokenREAD
	TokenREM
	TokenREPEAT
	TokenRESTORE
	TokenRETURN
	TokenRIGHT
	TokenSAVE
	TokenSCROLL
	TokenSHARED
	TokenSIZE
	TokenSOUND
	TokenSOURCE
	TokenSPRITE
	TokenSTEP
	TokenSTOP
	TokenSUB
	TokenSWAP
	TokenTAP
	TokenTEXT
	TokenTHEN
	TokenTINT
	TokenTO
	TokenTOUCH
	TokenTOUCHSCREEN
	TokenUNTIL
	TokenUP
	TokenVBL
	TokenVIEW
	TokenVOLUME
	TokenWAIT
	TokenWEND
	TokenWHILE
	TokenWINDOW
	TokenXOR

	// functions
	TokenABS
	TokenASC
	TokenATN
	TokenBIN
	TokenCEIL
	TokenCELLA
	TokenCELLC
	TokenCHR
	TokenCOS
	TokenCURSORX
	TokenCURSORY
	TokenEXP
	TokenFALSE
	TokenFILE
	TokenFSIZE
	TokenHEX
	TokenINKEY
	TokenINSTR
	TokenINT
	TokenLEFTStr
	TokenLEN
	TokenLOG
	TokenMAX
	TokenMID
	TokenMIN
	TokenPEEK
	TokenPEEKL
	TokenPEEKW
	TokenPI
	TokenRIGHTStr
	TokenRND
	TokenROM
	TokenSGN
	TokenSIN
	TokenSPRITEA
	TokenSPRITEC
	TokenSPRITEX
	TokenSPRITEY
	TokenSQR
	TokenSTR
	TokenTAN
	TokenTIMER
	TokenTOUCHX
	TokenTOUCHY
	TokenTRUE
	TokenVAL

	// reserved for future use
	tokenReserved
	TokenANIM
	TokenCLOSE
	TokenDECLARE
	TokenDEF
	TokenFLASH
	TokenFN
	TokenFUNCTION
	TokenLBOUND
	TokenOPEN
	TokenOUTPUT
	TokenSTATIC
	TokenTYPE
	TokenUBOUND

	tokenCount
)

var tokenStrings = [tokenCount]string{
	TokenColon:        ":",
	TokenComma:        ",",
	TokenSemicolon:    ";",
	TokenApostrophe:   "'",
	TokenEq:           "=",
	TokenGrEq:         ">=",
	TokenLeEq:         "<=",
	TokenUneq:         "<>",
	TokenGr:           ">",
	TokenLe:           "<",
	TokenBracketOpen:  "(",
	TokenBracketClose: ")",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenMul:          "*",
	TokenDiv:          "/",
	TokenDivInt:       "\\",
	TokenPow:          "^",

	TokenADD:         "ADD",
	TokenAND:         "AND",
	TokenATTR:        "ATTR",
	TokenBG:          "BG",
	TokenBUTTON:      "BUTTON",
	TokenCALL:        "CALL",
	TokenCELL:        "CELL",
	TokenCHAR:        "CHAR",
	TokenCLS:         "CLS",
	TokenCLW:         "CLW",
	TokenCOLOR:       "COLOR",
	TokenCOPY:        "COPY",
	TokenDATA:        "DATA",
	TokenDEC:         "DEC",
	TokenDIM:         "DIM",
	TokenDISPLAY:     "DISPLAY",
	TokenDO:          "DO",
	TokenDOWN:        "DOWN",
	TokenELSE:        "ELSE",
	TokenEND:         "END",
	TokenENVELOPE:    "ENVELOPE",
	TokenEXIT:        "EXIT",
	TokenFILES:       "FILES",
	TokenFILL:        "FILL",
	TokenFLIP:        "FLIP",
	TokenFONT:        "FONT",
	TokenFOR:         "FOR",
	TokenGAMEPAD:     "GAMEPAD",
	TokenGLOBAL:      "GLOBAL",
	TokenGOSUB:       "GOSUB",
	TokenGOTO:        "GOTO",
	TokenIF:          "IF",
	TokenINC:         "INC",
	TokenINPUT:       "INPUT",
	TokenKEYBOARD:    "KEYBOARD",
	TokenLEFT:        "LEFT",
	TokenLET:         "LET",
	TokenLFO:         "LFO",
	TokenLOAD:        "LOAD",
	TokenLOCATE:      "LOCATE",
	TokenLOOP:        "LOOP",
	TokenMOD:         "MOD",
	TokenNEXT:        "NEXT",
	TokenNOT:         "NOT",
	TokenNUMBER:      "NUMBER",
	TokenOFF:         "OFF",
	TokenON:          "ON",
	TokenOPTIONAL:    "OPTIONAL",
	TokenOR:          "OR",
	TokenPAL:         "PAL",
	TokenPALETTE:     "PALETTE",
	TokenPAUSE:       "PAUSE",
	TokenPLAY:        "PLAY",
	TokenPOKE:        "POKE",
	TokenPOKEL:       "POKEL",
	TokenPOKEW:       "POKEW",
	TokenPRINT:       "PRINT",
	TokenPRIO:        "PRIO",
	TokenRANDOMIZE:   "RANDOMIZE",
	TokenRASTER:      "RASTER",
	TokenREAD:        "READ",
	TokenREM:         "REM",
	TokenREPEAT:      "REPEAT",
	TokenRESTORE:     "RESTORE",
	TokenRETURN:      "RETURN",
	TokenRIGHT:       "RIGHT",
	TokenSAVE:        "SAVE",
	TokenSCROLL:      "SCROLL",
	TokenSHARED:      "SHARED",
	TokenSIZE:        "SIZE",
	TokenSOUND:       "SOUND",
	TokenSOURCE:      "SOURCE",
	TokenSPRITE:      "SPRITE",
	TokenSTEP:        "STEP",
	TokenSTOP:        "STOP",
	TokenSUB:         "SUB",
	TokenSWAP:        "SWAP",
	TokenTAP:         "TAP",
	TokenTEXT:        "TEXT",
	TokenTHEN:        "THEN",
	TokenTINT:        "TINT",
	TokenTO:          "TO",
	TokenTOUCH:       "TOUCH",
	TokenTOUCHSCREEN: "TOUCHSCREEN",
	TokenUNTIL:       "UNTIL",
	TokenUP:          "UP",
	TokenVBL:         "VBL",
	TokenVIEW:        "VIEW",
	TokenVOLUME:      "VOLUME",
	TokenWAIT:        "WAIT",
	TokenWEND:        "WEND",
	TokenWHILE:       "WHILE",
	TokenWINDOW:      "WINDOW",
	TokenXOR:         "XOR",

	TokenABS:      "ABS",
	TokenASC:      "ASC",
	TokenATN:      "ATN",
	TokenBIN:      "BIN$",
	TokenCEIL:     "CEIL",
	TokenCELLA:    "CELL.A",
	TokenCELLC:    "CELL.C",
	TokenCHR:      "CHR$",
	TokenCOS:      "COS",
	TokenCURSORX:  "CURSOR.X",
	TokenCURSORY:  "CURSOR.Y",
	TokenEXP:      "EXP",
	TokenFALSE:    "FALSE",
	TokenFILE:     "FILE$",
	TokenFSIZE:    "FSIZE",
	TokenHEX:      "HEX$",
	TokenINKEY:    "INKEY$",
	TokenINSTR:    "INSTR",
	TokenINT:      "INT",
	TokenLEFTStr:  "LEFT$",
	TokenLEN:      "LEN",
	TokenLOG:      "LOG",
	TokenMAX:      "MAX",
	TokenMID:      "MID$",
	TokenMIN:      "MIN",
	TokenPEEK:     "PEEK",
	TokenPEEKL:    "PEEKL",
	TokenPEEKW:    "PEEKW",
	TokenPI:       "PI",
	TokenRIGHTStr: "RIGHT$",
	TokenRND:      "RND",
	TokenROM:      "ROM",
	TokenSGN:      "SGN",
	TokenSIN:      "SIN",
	TokenSPRITEA:  "SPRITE.A",
	TokenSPRITEC:  "SPRITE.C",
	TokenSPRITEX:  "SPRITE.X",
	TokenSPRITEY:  "SPRITE.Y",
	TokenSQR:      "SQR",
	TokenSTR:      "STR$",
	TokenTAN:      "TAN",
	TokenTIMER:    "TIMER",
	TokenTOUCHX:   "TOUCH.X",
	TokenTOUCHY:   "TOUCH.Y",
	TokenTRUE:     "TRUE",
	TokenVAL:      "VAL",

	TokenANIM:     "ANIM",
	TokenCLOSE:    "CLOSE",
	TokenDECLARE:  "DECLARE",
	TokenDEF:      "DEF",
	TokenFLASH:    "FLASH",
	TokenFN:       "FN",
	TokenFUNCTION: "FUNCTION",
	TokenLBOUND:   "LBOUND",
	TokenOPEN:     "OPEN",
	TokenOUTPUT:   "OUTPUT",
	TokenSTATIC:   "STATIC",
	TokenTYPE:     "TYPE",
	TokenUBOUND:   "UBOUND",
}

func (t TokenType) String() string {
	switch t {
	case TokenUndefined:
		return "<end>"
	case TokenIdentifier, TokenStringIdentifier:
		return "<identifier>"
	case TokenLabel:
		return "<label>"
	case TokenFloat:
		return "<number>"
	case TokenString:
		return "<string>"
	case TokenEol:
		return "<eol>"
	}
	if t > 0 && t < tokenCount {
		return tokenStrings[t]
	}
	return "<invalid>"
}

func (t TokenType) isReserved() bool {
	return t > tokenReserved && t < tokenCount
}

// Token is one element of the compiled program. Jump is the index of
// another token, backpatched during the prepare pass; -1 means none.
type Token struct {
	Type           TokenType
	SourcePosition int
	Float          float32
	Str            *RCString
	Symbol         int
	Jump           int
}
