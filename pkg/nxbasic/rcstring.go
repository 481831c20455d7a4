package nxbasic

import (
	"sync/atomic"

	"github.com/antibyte/nxterm/pkg/logger"
)

// liveStrings counts RCStrings whose reference count has not dropped to
// zero yet. Tests use it to detect leaks.
var liveStrings atomic.Int64

// RCString is an immutable byte string with an explicit reference count.
// NewRCString returns an owned reference; every owner calls Release
// exactly once.
type RCString struct {
	chars    []byte
	refCount int
}

// NewRCString copies b into a new string with a reference count of 1.
func NewRCString(b []byte) *RCString {
	liveStrings.Add(1)
	return &RCString{chars: append([]byte(nil), b...), refCount: 1}
}

func newRCStringFromString(s string) *RCString {
	liveStrings.Add(1)
	return &RCString{chars: []byte(s), refCount: 1}
}

// Retain adds a reference.
func (s *RCString) Retain() *RCString {
	if s != nil {
		s.refCount++
	}
	return s
}

// Release drops a reference. Releasing nil is a no-op, releasing a
// string that is already free only logs.
func (s *RCString) Release() {
	if s == nil {
		return
	}
	s.refCount--
	switch {
	case s.refCount == 0:
		liveStrings.Add(-1)
		s.chars = nil
	case s.refCount < 0:
		s.refCount = 0
		logger.Error(logger.AreaInterpreter, "string released too often")
	}
}

// RefCount returns the current number of references.
func (s *RCString) RefCount() int {
	if s == nil {
		return 0
	}
	return s.refCount
}

// Bytes returns the characters. The slice must not be modified.
func (s *RCString) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.chars
}

func (s *RCString) String() string {
	if s == nil {
		return ""
	}
	return string(s.chars)
}

func (s *RCString) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chars)
}

// LiveStrings reports how many strings are currently referenced.
func LiveStrings() int64 {
	return liveStrings.Load()
}
