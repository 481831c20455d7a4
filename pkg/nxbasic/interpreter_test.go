package nxbasic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/machine"
)

func TestExpressions(t *testing.T) {
	tests := []struct {
		expr string
		want byte
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"7 MOD 3", 1},
		{"7\\2", 3},
		{"2^3", 8},
		{"-(3>2)", 1},
		{"-(2>3)", 0},
		{"5 AND 3", 1},
		{"5 OR 2", 7},
		{"6 XOR 3", 5},
		{"NOT 0 AND 1", 1},
		{"1+2=3", 255},
		{"$FF", 255},
		{"%101", 5},
		{"10-2-3", 5},
		{"-2+5", 3},
		{"LEN(\"HELLO\")", 5},
		{"ASC(\"A\")", 65},
		{"VAL(\"42\")", 42},
		{"ASC(MID$(\"HELLO\",2,1))", 'E'},
		{"ASC(RIGHT$(\"XYZ\",1))", 'Z'},
		{"LEN(LEFT$(\"XYZ\",2))", 2},
		{"MAX(3,9)", 9},
		{"MIN(3,9)", 3},
		{"INT(3.7)", 3},
		{"ABS(-5)", 5},
		{"LEN(STR$(123))", 3},
		{"-(\"A\"<\"B\")", 1},
		{"LEN(\"AB\"+\"CD\")", 4},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			c := runProgram(t, "POKE $A000,"+tt.expr)
			assert.Equal(t, tt.want, peek(t, c, 0xA000))
		})
	}
}

func TestStringLiteralKeepsCase(t *testing.T) {
	c := runProgram(t, "a$=\"aB\"\nPOKE $A000,ASC(A$)\nPOKE $A001,ASC(RIGHT$(a$,1))")
	assert.Equal(t, byte('a'), peek(t, c, 0xA000))
	assert.Equal(t, byte('B'), peek(t, c, 0xA001))
}

func TestLoops(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   byte
	}{
		{"for", "FOR I=1 TO 10\nS=S+I\nNEXT I\nPOKE $A000,S", 55},
		{"for one line", "FOR I=1 TO 10: S=S+I: NEXT I: POKE $A000,S", 55},
		{"for step", "FOR I=10 TO 1 STEP -2\nINC S\nNEXT I\nPOKE $A000,S", 5},
		{"for skipped", "FOR I=5 TO 1\nS=1\nNEXT I\nPOKE $A000,S+I", 5},
		{"for nested", "FOR I=1 TO 3\nFOR J=1 TO 4\nINC S\nNEXT J\nNEXT I\nPOKE $A000,S", 12},
		{"while", "WHILE I<5\nI=I+1\nWEND\nPOKE $A000,I", 5},
		{"while skipped", "WHILE 0\nI=9\nWEND\nPOKE $A000,I", 0},
		{"repeat", "REPEAT\nI=I+2\nUNTIL I>=6\nPOKE $A000,I", 6},
		{"do exit", "DO\nINC I\nIF I=3 THEN EXIT\nLOOP\nPOKE $A000,I", 3},
		{"for exit", "FOR I=1 TO 100\nIF I=7 THEN EXIT\nNEXT I\nPOKE $A000,I", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := runProgram(t, tt.source)
			assert.Equal(t, tt.want, peek(t, c, 0xA000))
		})
	}
}

func TestIfElse(t *testing.T) {
	block := `IF X=1 THEN
R=10
ELSE IF X=2 THEN
R=20
ELSE
R=30
END IF
POKE $A000,R
IF X=1 THEN S=1 ELSE S=2
POKE $A001,S`

	for _, tt := range []struct {
		x, r, s byte
	}{
		{1, 10, 1},
		{2, 20, 2},
		{3, 30, 2},
	} {
		t.Run(fmt.Sprint(tt.x), func(t *testing.T) {
			c := runProgram(t, fmt.Sprintf("X=%d\n%s", tt.x, block))
			assert.Equal(t, tt.r, peek(t, c, 0xA000))
			assert.Equal(t, tt.s, peek(t, c, 0xA001))
		})
	}
}

func TestGosubReturn(t *testing.T) {
	source := `GOSUB MYLABEL
POKE $A001,2
END
MYLABEL:
POKE $A000,1
RETURN`
	c := runProgram(t, source)
	assert.Equal(t, byte(1), peek(t, c, 0xA000))
	assert.Equal(t, byte(2), peek(t, c, 0xA001))
}

func TestGotoAndReturnToLabel(t *testing.T) {
	source := `GOSUB FIRST
POKE $A000,99
END
FIRST:
RETURN SECOND
SECOND:
POKE $A001,1`
	c := runProgram(t, source)
	assert.Equal(t, byte(0), peek(t, c, 0xA000))
	assert.Equal(t, byte(1), peek(t, c, 0xA001))
}

func TestSubprograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   byte
	}{
		{"by reference", `A=1
CALL BUMP(A, 5)
POKE $A000,A
SUB BUMP(X, N)
X=X+N
END SUB`, 6},
		{"by value", `A=1
CALL BUMP(A+0, 5)
POKE $A000,A
SUB BUMP(X, N)
X=X+N
END SUB`, 1},
		{"locals", `X=7
CALL SETX
POKE $A000,X
SUB SETX
X=99
END SUB`, 7},
		{"global", `GLOBAL G
G=3
CALL DOUBLE
POKE $A000,G
SUB DOUBLE
G=G*2
END SUB`, 6},
		{"shared", `G=4
CALL DOUBLE
POKE $A000,G
SUB DOUBLE
SHARED G
G=G*2
END SUB`, 8},
		{"array", `DIM A(3)
CALL FILLARR(A())
POKE $A000,A(2)
SUB FILLARR(B())
B(2)=11
END SUB`, 11},
		{"exit sub", `CALL EARLY(R)
POKE $A000,R
SUB EARLY(R)
R=1
EXIT SUB
R=2
END SUB`, 1},
		{"recursion", `CALL FACT(4, R)
POKE $A000,R
SUB FACT(N, R)
IF N<=1 THEN
R=1
ELSE
CALL FACT(N-1, R)
R=R*N
END IF
END SUB`, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := runProgram(t, tt.source)
			assert.Equal(t, tt.want, peek(t, c, 0xA000))
		})
	}
}

func TestDataReadRestore(t *testing.T) {
	source := `READ A,B$,C
POKE $A000,A
POKE $A001,LEN(B$)
POKE $A002,C
RESTORE
READ D
POKE $A003,D
RESTORE MORE
READ E
POKE $A004,E
DATA 5,"XYZ"
MORE:
DATA -3`
	c := runProgram(t, source)
	assert.Equal(t, byte(5), peek(t, c, 0xA000))
	assert.Equal(t, byte(3), peek(t, c, 0xA001))
	assert.Equal(t, byte(253), peek(t, c, 0xA002))
	assert.Equal(t, byte(5), peek(t, c, 0xA003))
	assert.Equal(t, byte(253), peek(t, c, 0xA004))
}

func TestOutOfData(t *testing.T) {
	c, d := newTestCore(t, "READ A,B\nDATA 1")
	runToEnd(t, c)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorOutOfData, d.failures[0].Code)
}

func TestArrays(t *testing.T) {
	source := `DIM A(2,3), N$(4)
FOR I=0 TO 2
FOR J=0 TO 3
A(I,J)=I*10+J
NEXT J
NEXT I
N$(4)="END"
POKE $A000,A(2,3)
POKE $A001,LEN(N$(4))
POKE $A002,LEN(N$(0))`
	c := runProgram(t, source)
	assert.Equal(t, byte(23), peek(t, c, 0xA000))
	assert.Equal(t, byte(3), peek(t, c, 0xA001))
	assert.Equal(t, byte(0), peek(t, c, 0xA002))
}

func TestVariableCommands(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   byte
	}{
		{"swap", "A=1: B=2: SWAP A,B: POKE $A000,A*10+B", 21},
		{"inc dec", "INC A: INC A: DEC A: POKE $A000,A", 1},
		{"add", "A=5: ADD A,3: POKE $A000,A", 8},
		{"add wraps up", "A=9: ADD A,1,0 TO 9: POKE $A000,A", 0},
		{"add wraps down", "A=0: ADD A,-1,0 TO 9: POKE $A000,A", 9},
		{"mid assign", "A$=\"HELLO\": MID$(A$,2,1)=\"A\": POKE $A000,ASC(MID$(A$,2,1))", 'A'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := runProgram(t, tt.source)
			assert.Equal(t, tt.want, peek(t, c, 0xA000))
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   ErrorCode
		line   int
	}{
		{"division by zero", "A=0\nB=1/A", ErrorDivisionByZero, 2},
		{"integer division by zero", "B=1\\0", ErrorDivisionByZero, 1},
		{"return without gosub", "A=1\nRETURN", ErrorReturnWithoutGosub, 2},
		{"array not dimensioned", "A(1)=2", ErrorArrayNotDimensionized, 1},
		{"index out of bounds", "DIM A(2)\nA(3)=1", ErrorIndexOutOfBounds, 2},
		{"illegal poke", "POKE 0,1", ErrorIllegalMemoryAccess, 1},
		{"invalid parameter", "\nCELL 0,0,300", ErrorInvalidParameter, 2},
		{"keyboard not enabled", "A$=INKEY$", ErrorKeyboardNotEnabled, 1},
		{"gamepad not enabled", "A=UP(0)", ErrorGamepadNotEnabled, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestCore(t, tt.source)
			runToEnd(t, c)
			require.Len(t, d.failures, 1)
			err := d.failures[0]
			assert.Equal(t, tt.code, err.Code)
			assert.Contains(t, c.TraceError(err), fmt.Sprintf("IN LINE %d:", tt.line))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   ErrorCode
	}{
		{"for without next", "FOR I=1 TO 3", ErrorForWithoutNext},
		{"next without for", "NEXT I", ErrorNextWithoutFor},
		{"if without end if", "IF 1 THEN\nA=1", ErrorIfWithoutEndIf},
		{"end if without if", "END IF", ErrorEndIfWithoutIf},
		{"else without if", "ELSE", ErrorElseWithoutIf},
		{"undefined label", "GOTO NOWHERE", ErrorUndefinedLabel},
		{"unterminated string", "PRINT \"ABC", ErrorUnterminatedString},
		{"type mismatch", "A=\"X\"", ErrorTypeMismatch},
		{"wend without while", "WEND", ErrorWendWithoutWhile},
		{"loop without do", "LOOP", ErrorLoopWithoutDo},
		{"until without repeat", "UNTIL 1", ErrorUntilWithoutRepeat},
		{"do without loop", "DO", ErrorDoWithoutLoop},
		{"undefined sub", "CALL FOO", ErrorUndefinedSubprogram},
		{"argument count", "CALL FOO(1)\nSUB FOO\nEND SUB", ErrorArgumentCountMismatch},
		{"nested sub", "SUB A\nSUB B\nEND SUB\nEND SUB", ErrorSubCannotBeNested},
		{"sub without end", "SUB A", ErrorSubWithoutEndSub},
		{"expected comma", "POKE 1", ErrorExpectedComma},
		{"expected then", "IF 1 PRINT", ErrorExpectedThen},
		{"unexpected character", "A=@", ErrorUnexpectedCharacter},
		{"label defined twice", "L:\nL:", ErrorLabelAlreadyDefined},
		{"shared outside sub", "SHARED A", ErrorSharedOutsideOfASubprogram},
		{"exit sub outside sub", "EXIT SUB", ErrorExitSubOutsideOfASubprogram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCore()
			err := c.CompileProgram(tt.source, true)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, StateNoProgram, c.State())
		})
	}
}

func TestCompileErrorPosition(t *testing.T) {
	c := NewCore()
	err := c.CompileProgram("A=1\nB=2\nNEXT I\n", true)
	require.Equal(t, ErrorNextWithoutFor, err.Code)
	assert.Equal(t, "NEXT Without FOR\nIN LINE 3:\nNEXT I", c.TraceError(err))
}

func TestTraceError(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    int
		want   string
	}{
		{"crlf", "A=1\r\nB=1/0\r\nC=2", 7, "Division By Zero\nIN LINE 2:\nB=1/0"},
		{"cr", "A=1\rB=1/0\rC=2", 6, "Division By Zero\nIN LINE 2:\nB=1/0"},
		{"mixed", "A=1\nB=2\rC=1/0", 10, "Division By Zero\nIN LINE 3:\nC=1/0"},
		{"at line end", "A=1\r\nB=1/0\r\nC=2", 4, "Division By Zero\nIN LINE 1:\nA=1"},
		{"last line", "A=1\rB=1/0", 8, "Division By Zero\nIN LINE 2:\nB=1/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TraceError(tt.source, CoreError{ErrorDivisionByZero, tt.pos}))
		})
	}

	assert.Equal(t, "Syntax Error", TraceError("A=1", CoreError{ErrorSyntax, -1}))
	assert.Empty(t, TraceError("A=1", CoreError{}))
}

func TestCycleBudget(t *testing.T) {
	c, _ := newTestCore(t, "DO\nINC A\nLOOP")
	it := c.interpreter

	it.runProgram()
	assert.GreaterOrEqual(t, it.cycles, MaxCyclesTotalPerFrame)
	assert.Less(t, it.cycles, MaxCyclesTotalPerFrame+16, "stops at the first command over the limit")
	it.didFinishVBL()
	assert.Less(t, it.cycles, 16, "only the overrun is carried over")

	first := numVar(t, c, "A")
	assert.Positive(t, first)
	assert.LessOrEqual(t, first, float32(MaxCyclesTotalPerFrame/2))
	assert.Equal(t, StateEvaluate, c.State())

	runFrames(c, 1)
	assert.Greater(t, numVar(t, c, "A"), first)
}

func TestRunawayInterrupt(t *testing.T) {
	source := "ON VBL CALL SPIN\n" +
		"DO\nWAIT VBL\nLOOP\n" +
		"SUB SPIN\nDO\nLOOP\nEND SUB"
	c, d := newTestCore(t, source)
	runFrames(c, 2)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorTooManyCPUCyclesInInterrupt, d.failures[0].Code)
	assert.Equal(t, StateEnd, c.State())
}

func TestDimGlobalConflicts(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   ErrorCode
	}{
		{"free name", "DIM GLOBAL A(3)\nA(1)=2", ErrorNone},
		{"main variable", "A=1\nDIM GLOBAL A(3)", ErrorVariableAlreadyUsed},
		{"reached from a sub", "A=1\nCALL S\nEND\nSUB S\nGOTO MAKE\nEND SUB\nMAKE:\nDIM GLOBAL A(3)", ErrorVariableAlreadyUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestCore(t, tt.source)
			runToEnd(t, c)
			if tt.want == ErrorNone {
				assert.Empty(t, d.failures)
				return
			}
			require.Len(t, d.failures, 1)
			assert.Equal(t, tt.want, d.failures[0].Code)
		})
	}
}

func TestReleaseTooOften(t *testing.T) {
	before := LiveStrings()
	s := NewRCString([]byte("HI"))
	s.Release()
	assert.Equal(t, before, LiveStrings())

	assert.NotPanics(t, s.Release)
	assert.Zero(t, s.RefCount())
	assert.Equal(t, before, LiveStrings())
}

func TestWait(t *testing.T) {
	c, _ := newTestCore(t, "DO\nINC A\nWAIT VBL\nLOOP")
	runFrames(c, 3)
	assert.Equal(t, float32(3), numVar(t, c, "A"))

	c, _ = newTestCore(t, "WAIT 3\nA=1")
	runFrames(c, 3)
	assert.Equal(t, StateEvaluate, c.State())
	runFrames(c, 1)
	assert.Equal(t, float32(1), numVar(t, c, "A"))
}

func TestWaitTap(t *testing.T) {
	c, _ := newTestCore(t, "GAMEPAD 1\nWAIT TAP\nA=1")
	runFrames(c, 3)
	assert.Equal(t, StateEvaluate, c.State())

	in := &Input{}
	in.Gamepads[0] = machine.GamepadA
	c.Update(in)
	runToEnd(t, c)
	assert.Equal(t, float32(1), numVar(t, c, "A"))
}

func TestVBLInterrupt(t *testing.T) {
	source := `GLOBAL T
ON VBL CALL TICK
DO
WAIT VBL
LOOP
SUB TICK
INC T
END SUB`
	c, d := newTestCore(t, source)
	runFrames(c, 5)
	require.Empty(t, d.failures)
	// the handler is installed during the first frame
	assert.Equal(t, float32(4), numVar(t, c, "T"))
}

func TestInterruptOff(t *testing.T) {
	source := `GLOBAL T
ON VBL CALL TICK
WAIT VBL
WAIT VBL
ON VBL OFF
DO
WAIT VBL
LOOP
SUB TICK
INC T
END SUB`
	c, _ := newTestCore(t, source)
	runFrames(c, 10)
	assert.Equal(t, float32(2), numVar(t, c, "T"))
}

func TestWaitNotAllowedInInterrupt(t *testing.T) {
	source := `ON VBL CALL TICK
DO
WAIT VBL
LOOP
SUB TICK
WAIT VBL
END SUB`
	c, d := newTestCore(t, source)
	runFrames(c, 2)
	require.Len(t, d.failures, 1)
	assert.Equal(t, ErrorNotAllowedInInterrupt, d.failures[0].Code)
	assert.Equal(t, StateEnd, c.State())
}

func TestStringsAreReleased(t *testing.T) {
	source := `A$="HELLO"
B$=A$+" WORLD"
C$=LEFT$(B$,3)
DIM D$(3)
D$(1)=C$
SWAP A$,C$
MID$(B$,1,1)="J"
CALL SHOW(A$, B$+"!")
READ E$
DATA "DATA"
SUB SHOW(X$, Y$)
PRINT X$;Y$
END SUB`
	c := NewCore()
	d := &recordingDelegate{}
	c.SetDelegate(d)
	before := LiveStrings()

	require.Equal(t, ErrorNone, c.CompileProgram(source, true).Code)
	runToEnd(t, c)
	require.Empty(t, d.failures)

	require.Equal(t, ErrorNone, c.CompileProgram("", true).Code)
	assert.Equal(t, before, LiveStrings())
}

func TestRandomize(t *testing.T) {
	source := "RANDOMIZE 7\nA=RND\nB=RND(100)\nRANDOMIZE 7\nC=RND\nD=RND(100)"
	c := runProgram(t, source)
	assert.Equal(t, numVar(t, c, "A"), numVar(t, c, "C"))
	assert.Equal(t, numVar(t, c, "B"), numVar(t, c, "D"))
	a := numVar(t, c, "A")
	assert.GreaterOrEqual(t, a, float32(0))
	assert.Less(t, a, float32(1))
}
