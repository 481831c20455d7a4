package nxbasic

const (
	SubLevelGlobal     = -1
	MaxSimpleVariables = 256
	MaxArrayVariables  = 256
	MaxArrayDimensions = 4
	MaxArraySize       = 32768
)

// SimpleVariable is a scalar. A reference variable shares the storage
// of a variable of an outer sub level and does not own it.
type SimpleVariable struct {
	Symbol      int
	SubLevel    int
	IsReference bool
	Type        ValueType
	v           *Value
}

// ArrayVariable stores its elements in row-major order.
type ArrayVariable struct {
	Symbol      int
	SubLevel    int
	IsReference bool
	Type        ValueType
	Dims        []int
	values      []Value
}

// variableStore keeps variables in creation order, so variables of
// deeper sub levels are always at the end.
type variableStore struct {
	simple     []*SimpleVariable
	arrays     []*ArrayVariable
	nullString *RCString
}

func newVariableStore(nullString *RCString) *variableStore {
	return &variableStore{nullString: nullString}
}

// GetSimple returns the newest variable of the symbol that is visible at
// subLevel, or nil.
func (vs *variableStore) GetSimple(symbol, subLevel int) *SimpleVariable {
	for i := len(vs.simple) - 1; i >= 0; i-- {
		v := vs.simple[i]
		if v.Symbol == symbol && (v.SubLevel == subLevel || v.SubLevel == SubLevelGlobal) {
			return v
		}
	}
	return nil
}

// CreateSimple adds a variable. A non-nil ref makes it a reference to
// existing storage.
func (vs *variableStore) CreateSimple(symbol, subLevel int, t ValueType, ref *Value) (*SimpleVariable, ErrorCode) {
	if len(vs.simple) >= MaxSimpleVariables {
		return nil, ErrorOutOfMemory
	}
	v := &SimpleVariable{Symbol: symbol, SubLevel: subLevel, Type: t}
	if ref != nil {
		v.IsReference = true
		v.v = ref
	} else {
		v.v = &Value{}
	}
	vs.simple = append(vs.simple, v)
	return v, ErrorNone
}

// FreeSimple removes the newest variables down to the first one below
// minSubLevel.
func (vs *variableStore) FreeSimple(minSubLevel int) {
	i := len(vs.simple) - 1
	for ; i >= 0 && vs.simple[i].SubLevel >= minSubLevel; i-- {
		v := vs.simple[i]
		if !v.IsReference {
			v.v.Str.Release()
		}
		vs.simple[i] = nil
	}
	vs.simple = vs.simple[:i+1]
}

// Value returns the storage of a simple variable. String storage is
// bound to the shared empty string on first access.
func (vs *variableStore) Value(v *SimpleVariable) *Value {
	if v.Type == ValueTypeString && v.v.Str == nil {
		v.v.Str = vs.nullString.Retain()
	}
	return v.v
}

func (vs *variableStore) GetArray(symbol, subLevel int) *ArrayVariable {
	for i := len(vs.arrays) - 1; i >= 0; i-- {
		a := vs.arrays[i]
		if a.Symbol == symbol && (a.SubLevel == subLevel || a.SubLevel == SubLevelGlobal) {
			return a
		}
	}
	return nil
}

// Dim creates an array. dims holds the element count per dimension.
func (vs *variableStore) Dim(symbol, subLevel int, t ValueType, dims []int) (*ArrayVariable, ErrorCode) {
	if a := vs.GetArray(symbol, subLevel); a != nil && a.SubLevel == subLevel {
		return nil, ErrorArrayAlreadyDimensionized
	}
	if len(vs.arrays) >= MaxArrayVariables {
		return nil, ErrorOutOfMemory
	}
	if len(dims) == 0 || len(dims) > MaxArrayDimensions {
		return nil, ErrorWrongNumberOfDimensions
	}
	size := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, ErrorInvalidParameter
		}
		size *= d
		if size > MaxArraySize {
			return nil, ErrorOutOfMemory
		}
	}
	a := &ArrayVariable{
		Symbol:   symbol,
		SubLevel: subLevel,
		Type:     t,
		Dims:     append([]int(nil), dims...),
		values:   make([]Value, size),
	}
	vs.arrays = append(vs.arrays, a)
	return a, ErrorNone
}

// CreateArrayReference adds an array at subLevel sharing the storage of src.
func (vs *variableStore) CreateArrayReference(symbol, subLevel int, src *ArrayVariable) (*ArrayVariable, ErrorCode) {
	if len(vs.arrays) >= MaxArrayVariables {
		return nil, ErrorOutOfMemory
	}
	a := &ArrayVariable{
		Symbol:      symbol,
		SubLevel:    subLevel,
		IsReference: true,
		Type:        src.Type,
		Dims:        src.Dims,
		values:      src.values,
	}
	vs.arrays = append(vs.arrays, a)
	return a, ErrorNone
}

func (vs *variableStore) FreeArrays(minSubLevel int) {
	i := len(vs.arrays) - 1
	for ; i >= 0 && vs.arrays[i].SubLevel >= minSubLevel; i-- {
		a := vs.arrays[i]
		if !a.IsReference {
			for j := range a.values {
				a.values[j].Str.Release()
			}
		}
		vs.arrays[i] = nil
	}
	vs.arrays = vs.arrays[:i+1]
}

// FreeAll removes every variable including globals.
func (vs *variableStore) FreeAll() {
	vs.FreeSimple(SubLevelGlobal)
	vs.FreeArrays(SubLevelGlobal)
}

// Offset returns the element index for indices.
func (a *ArrayVariable) Offset(indices []int) (int, ErrorCode) {
	if len(indices) != len(a.Dims) {
		return 0, ErrorWrongNumberOfDimensions
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.Dims[i] {
			return 0, ErrorIndexOutOfBounds
		}
		offset = offset*a.Dims[i] + idx
	}
	return offset, ErrorNone
}

// Element returns the storage of one element with lazily bound strings.
func (vs *variableStore) Element(a *ArrayVariable, offset int) *Value {
	v := &a.values[offset]
	if a.Type == ValueTypeString && v.Str == nil {
		v.Str = vs.nullString.Retain()
	}
	return v
}
