package nxbasic

// ValueType tags a TypedValue.
type ValueType int

const (
	ValueTypeNull ValueType = iota
	ValueTypeError
	ValueTypeFloat
	ValueTypeString
)

// TypeClass restricts what an expression may evaluate to.
type TypeClass int

const (
	TypeClassAny TypeClass = iota
	TypeClassNumeric
	TypeClassString
)

const (
	BasTrue  float32 = -1
	BasFalse float32 = 0
)

// Value is the storage cell of variables and array elements. Which
// field is valid depends on the type of the owning variable.
type Value struct {
	Float float32
	Str   *RCString
}

// TypedValue is the result of an expression. A value of type String owns
// one reference of Str; whoever receives it either stores it in a
// variable or releases it. During the prepare pass Str is nil.
type TypedValue struct {
	Type  ValueType
	Float float32
	Str   *RCString
	Err   ErrorCode
}

func floatValue(f float32) TypedValue { return TypedValue{Type: ValueTypeFloat, Float: f} }

// stringValue takes over the reference of s.
func stringValue(s *RCString) TypedValue { return TypedValue{Type: ValueTypeString, Str: s} }

func errorValue(code ErrorCode) TypedValue { return TypedValue{Type: ValueTypeError, Err: code} }

func boolValue(b bool) TypedValue {
	if b {
		return floatValue(BasTrue)
	}
	return floatValue(BasFalse)
}

func (v TypedValue) isError() bool { return v.Type == ValueTypeError }

func (v TypedValue) release() {
	if v.Type == ValueTypeString {
		v.Str.Release()
	}
}

// valueTypeForToken returns the variable type implied by an identifier token.
func valueTypeForToken(t TokenType) ValueType {
	if t == TokenStringIdentifier {
		return ValueTypeString
	}
	return ValueTypeFloat
}

func (v TypedValue) matches(tc TypeClass) bool {
	switch tc {
	case TypeClassNumeric:
		return v.Type == ValueTypeFloat
	case TypeClassString:
		return v.Type == ValueTypeString
	}
	return true
}
