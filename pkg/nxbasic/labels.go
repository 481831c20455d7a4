package nxbasic

const MaxLabelStackItems = 128

// LabelType marks what pushed an item onto the label stack.
type LabelType int

const (
	LabelTypeIF LabelType = iota
	LabelTypeELSEIF
	LabelTypeELSE
	LabelTypeFOR
	LabelTypeFORVar
	LabelTypeFORLimit
	LabelTypeGOSUB
	LabelTypeDO
	LabelTypeREPEAT
	LabelTypeWHILE
	LabelTypeSUB
	LabelTypeCALL
	LabelTypeONCALL
)

// LabelStackItem is a pending block opener during prepare, or a return
// frame during run. Token is an index into the token list.
type LabelStackItem struct {
	Type  LabelType
	Token int
}

// labelStack has a fixed depth; overflow is a program error.
type labelStack struct {
	items [MaxLabelStackItems]LabelStackItem
	n     int
}

func (s *labelStack) Push(t LabelType, token int) ErrorCode {
	if s.n >= MaxLabelStackItems {
		return ErrorStackOverflow
	}
	s.items[s.n] = LabelStackItem{Type: t, Token: token}
	s.n++
	return ErrorNone
}

func (s *labelStack) Pop() (LabelStackItem, bool) {
	if s.n == 0 {
		return LabelStackItem{}, false
	}
	s.n--
	return s.items[s.n], true
}

func (s *labelStack) Peek() (LabelStackItem, bool) {
	if s.n == 0 {
		return LabelStackItem{}, false
	}
	return s.items[s.n-1], true
}

// Search returns the topmost item of one of the given types.
func (s *labelStack) Search(types ...LabelType) (LabelStackItem, bool) {
	for i := s.n - 1; i >= 0; i-- {
		for _, t := range types {
			if s.items[i].Type == t {
				return s.items[i], true
			}
		}
	}
	return LabelStackItem{}, false
}

func (s *labelStack) Clear() { s.n = 0 }

func (s *labelStack) Len() int { return s.n }
