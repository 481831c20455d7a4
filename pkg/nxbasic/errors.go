package nxbasic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies every compile and run time error of the interpreter.
type ErrorCode int

const (
	ErrorNone ErrorCode = iota
	ErrorCouldNotOpenProgram
	ErrorTooManyTokens
	ErrorRomIsFull
	ErrorIndexAlreadyDefined
	ErrorUnterminatedString
	ErrorUnexpectedCharacter
	ErrorReservedKeyword
	ErrorSyntax
	ErrorSymbolNameTooLong
	ErrorTooManySymbols
	ErrorTypeMismatch
	ErrorOutOfMemory
	ErrorElseWithoutIf
	ErrorEndIfWithoutIf
	ErrorExpectedCommand
	ErrorNextWithoutFor
	ErrorLoopWithoutDo
	ErrorUntilWithoutRepeat
	ErrorWendWithoutWhile
	ErrorLabelAlreadyDefined
	ErrorTooManyLabels
	ErrorExpectedLabel
	ErrorUndefinedLabel
	ErrorArrayNotDimensionized
	ErrorArrayAlreadyDimensionized
	ErrorVariableAlreadyUsed
	ErrorIndexOutOfBounds
	ErrorWrongNumberOfDimensions
	ErrorInvalidParameter
	ErrorReturnWithoutGosub
	ErrorStackOverflow
	ErrorOutOfData
	ErrorIllegalMemoryAccess
	ErrorTooManyCPUCyclesInInterrupt
	ErrorNotAllowedInInterrupt
	ErrorIfWithoutEndIf
	ErrorForWithoutNext
	ErrorDoWithoutLoop
	ErrorRepeatWithoutUntil
	ErrorWhileWithoutWend
	ErrorDirectoryNotLoaded
	ErrorDivisionByZero
	ErrorVariableNotInitialized
	ErrorArrayVariableWithoutIndex
	ErrorEndSubWithoutSub
	ErrorSubWithoutEndSub
	ErrorSubCannotBeNested
	ErrorUndefinedSubprogram
	ErrorExpectedSubprogramName
	ErrorArgumentCountMismatch
	ErrorSubAlreadyDefined
	ErrorTooManySubprograms
	ErrorSharedOutsideOfASubprogram
	ErrorGlobalInsideOfASubprogram
	ErrorExitSubOutsideOfASubprogram
	ErrorKeyboardNotEnabled
	ErrorAutomaticPauseNotDisabled
	ErrorGamepadNotEnabled
	ErrorTouchNotEnabled
	ErrorInputChangeNotAllowed

	ErrorExpectedComma
	ErrorExpectedTo
	ErrorExpectedThen
	ErrorExpectedEqualSign
	ErrorExpectedVariableIdentifier
	ErrorExpectedLeftParenthesis
	ErrorExpectedRightParenthesis
	ErrorExpectedEndOfLine
	ErrorExpectedSemicolon
	ErrorUnexpectedToken
	ErrorEndOfProgram

	errorCount
)

var errorStrings = [errorCount]string{
	ErrorNone:                        "OK",
	ErrorCouldNotOpenProgram:         "Could Not Open Program",
	ErrorTooManyTokens:               "Too Many Tokens",
	ErrorRomIsFull:                   "ROM Is Full",
	ErrorIndexAlreadyDefined:         "Index Already Defined",
	ErrorUnterminatedString:          "Unterminated String",
	ErrorUnexpectedCharacter:         "Unexpected Character",
	ErrorReservedKeyword:             "Reserved Keyword",
	ErrorSyntax:                      "Syntax Error",
	ErrorSymbolNameTooLong:           "Symbol Name Too Long",
	ErrorTooManySymbols:              "Too Many Symbols",
	ErrorTypeMismatch:                "Type Mismatch",
	ErrorOutOfMemory:                 "Out Of Memory",
	ErrorElseWithoutIf:               "ELSE Without IF",
	ErrorEndIfWithoutIf:              "END IF Without IF",
	ErrorExpectedCommand:             "Expected Command",
	ErrorNextWithoutFor:              "NEXT Without FOR",
	ErrorLoopWithoutDo:               "LOOP Without DO",
	ErrorUntilWithoutRepeat:          "UNTIL Without REPEAT",
	ErrorWendWithoutWhile:            "WEND Without WHILE",
	ErrorLabelAlreadyDefined:         "Label Already Defined",
	ErrorTooManyLabels:               "Too Many Labels",
	ErrorExpectedLabel:               "Expected Label",
	ErrorUndefinedLabel:              "Undefined Label",
	ErrorArrayNotDimensionized:       "Array Not Dimensionized",
	ErrorArrayAlreadyDimensionized:   "Array Already Dimensionized",
	ErrorVariableAlreadyUsed:         "Variable Already Used",
	ErrorIndexOutOfBounds:            "Index Out Of Bounds",
	ErrorWrongNumberOfDimensions:     "Wrong Number Of Dimensions",
	ErrorInvalidParameter:            "Invalid Parameter",
	ErrorReturnWithoutGosub:          "RETURN Without GOSUB",
	ErrorStackOverflow:               "Stack Overflow",
	ErrorOutOfData:                   "Out Of Data",
	ErrorIllegalMemoryAccess:         "Illegal Memory Access",
	ErrorTooManyCPUCyclesInInterrupt: "Too Many CPU Cycles In Interrupt",
	ErrorNotAllowedInInterrupt:       "Not Allowed In Interrupt",
	ErrorIfWithoutEndIf:              "IF Without END IF",
	ErrorForWithoutNext:              "FOR Without NEXT",
	ErrorDoWithoutLoop:               "DO Without LOOP",
	ErrorRepeatWithoutUntil:          "REPEAT Without UNTIL",
	ErrorWhileWithoutWend:            "WHILE Without WEND",
	ErrorDirectoryNotLoaded:          "Directory Not Loaded",
	ErrorDivisionByZero:              "Division By Zero",
	ErrorVariableNotInitialized:      "Variable Not Initialized",
	ErrorArrayVariableWithoutIndex:   "Array Variable Without Index",
	ErrorEndSubWithoutSub:            "END SUB Without SUB",
	ErrorSubWithoutEndSub:            "SUB Without END SUB",
	ErrorSubCannotBeNested:           "SUB Cannot Be Nested",
	ErrorUndefinedSubprogram:         "Undefined Subprogram",
	ErrorExpectedSubprogramName:      "Expected Subprogram Name",
	ErrorArgumentCountMismatch:       "Argument Count Mismatch",
	ErrorSubAlreadyDefined:           "Subprogram Already Defined",
	ErrorTooManySubprograms:          "Too Many Subprograms",
	ErrorSharedOutsideOfASubprogram:  "SHARED Outside Of A Subprogram",
	ErrorGlobalInsideOfASubprogram:   "GLOBAL Inside Of A Subprogram",
	ErrorExitSubOutsideOfASubprogram: "EXIT SUB Outside Of A Subprogram",
	ErrorKeyboardNotEnabled:          "Keyboard Not Enabled",
	ErrorAutomaticPauseNotDisabled:   "Automatic Pause Not Disabled",
	ErrorGamepadNotEnabled:           "Gamepad Not Enabled",
	ErrorTouchNotEnabled:             "Touch Not Enabled",
	ErrorInputChangeNotAllowed:       "Input Change Not Allowed",
	ErrorExpectedComma:               "Expected Comma",
	ErrorExpectedTo:                  "Expected TO",
	ErrorExpectedThen:                "Expected THEN",
	ErrorExpectedEqualSign:           "Expected Equal Sign",
	ErrorExpectedVariableIdentifier:  "Expected Variable Identifier",
	ErrorExpectedLeftParenthesis:     "Expected Left Parenthesis",
	ErrorExpectedRightParenthesis:    "Expected Right Parenthesis",
	ErrorExpectedEndOfLine:           "Expected End Of Line",
	ErrorExpectedSemicolon:           "Expected Semicolon",
	ErrorUnexpectedToken:             "Unexpected Token",
	ErrorEndOfProgram:                "End Of Program",
}

func (c ErrorCode) String() string {
	if c < 0 || c >= errorCount {
		return fmt.Sprintf("Error %d", int(c))
	}
	return errorStrings[c]
}

// CoreError is an error code together with the byte offset in the
// program source where it occurred. SourcePosition is -1 when unknown.
type CoreError struct {
	Code           ErrorCode
	SourcePosition int
}

func (e CoreError) Error() string {
	return e.Code.String()
}

func newCoreError(code ErrorCode, pos int) CoreError {
	return CoreError{Code: code, SourcePosition: pos}
}

var (
	ErrNoProgram  = errors.New("no program loaded")
	ErrNotRunning = errors.New("program is not running")
)

// TraceError formats err for display: the message, the 1-based line
// number and the text of that source line.
func TraceError(source string, err CoreError) string {
	if err.Code == ErrorNone {
		return ""
	}
	if err.SourcePosition < 0 || err.SourcePosition > len(source) {
		return err.Code.String()
	}
	line, text := lineAt(source, err.SourcePosition)
	return fmt.Sprintf("%s\nIN LINE %d:\n%s", err.Code, line, text)
}

// lineAt returns the line number and text at pos. Lines end with \n,
// \r\n or a lone \r, like the tokenizer sees them.
func lineAt(source string, pos int) (int, string) {
	line, start := 1, 0
	for i := 0; i < pos; i++ {
		switch source[i] {
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				continue
			}
			fallthrough
		case '\n':
			line++
			start = i + 1
		}
	}
	end := strings.IndexAny(source[start:], "\r\n")
	if end < 0 {
		return line, source[start:]
	}
	return line, source[start : start+end]
}
