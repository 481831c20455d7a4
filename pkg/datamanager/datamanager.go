// Package datamanager packs up to 16 numbered binary entries into a
// contiguous 32 KB arena and converts it from and to the textual
// cartridge/disk format:
//
//	optional source code
//	#0:COMMENT
//	00 11 22 ...
//
// Export always writes uppercase hex with 16 bytes per line and a
// blank line after every entry.
package datamanager

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxEntries  = 16
	DataSize    = 0x8000
	CommentSize = 32
)

var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
	ErrIndexAlreadyDefined = errors.New("index already defined")
	ErrSyntax              = errors.New("incomplete hex value")
	ErrRomIsFull           = errors.New("rom is full")
)

// ImportError reports the byte offset in the imported text where parsing failed.
type ImportError struct {
	Err      error
	Position int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Position)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Entry describes one slot of the arena.
type Entry struct {
	Comment string
	Start   int
	Length  int
}

// DataManager owns the arena and the entry table.
type DataManager struct {
	entries    [MaxEntries]Entry
	data       [DataSize]byte
	sourceCode string
}

// New returns an empty data manager.
func New() *DataManager {
	return &DataManager{}
}

// Reset removes all entries and the source code.
func (dm *DataManager) Reset() {
	dm.entries = [MaxEntries]Entry{}
	clear(dm.data[:])
	dm.sourceCode = ""
}

// Entry returns a copy of entry i.
func (dm *DataManager) Entry(i int) Entry {
	return dm.entries[i]
}

// EntryData returns the bytes of entry i. The slice aliases the arena.
func (dm *DataManager) EntryData(i int) []byte {
	e := dm.entries[i]
	return dm.data[e.Start : e.Start+e.Length]
}

// Data returns the complete arena.
func (dm *DataManager) Data() []byte {
	return dm.data[:]
}

// SourceCode returns the text found before the first entry header if it
// was kept by Import.
func (dm *DataManager) SourceCode() string {
	return dm.sourceCode
}

// CurrentSize is the sum of all entry lengths.
func (dm *DataManager) CurrentSize() int {
	size := 0
	for _, e := range dm.entries {
		size += e.Length
	}
	return size
}

// Import replaces the content of the data manager with text. Hex digits may be
// lowercase. Text before the first '#' at a line start is stored as
// source code when keepSourceCode is set and ignored otherwise.
func (dm *DataManager) Import(text string, keepSourceCode bool) error {
	dm.Reset()
	input := strings.ToUpper(text)
	pos := 0

	for pos < len(input) && !(input[pos] == '#' && (pos == 0 || input[pos-1] == '\n')) {
		pos++
	}
	if keepSourceCode {
		// keep the original case of the program text
		dm.sourceCode = text[:pos]
	}

	next := 0
	for pos < len(input) {
		switch c := input[pos]; {
		case c == '#':
			var err error
			pos, next, err = dm.importEntry(input, text, pos+1, next)
			if err != nil {
				return err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			pos++
		default:
			return &ImportError{ErrUnexpectedCharacter, pos}
		}
	}
	return nil
}

// importEntry parses one entry starting after its '#'. next is the first
// free arena offset. It returns the new text position and arena offset.
func (dm *DataManager) importEntry(input, original string, pos, next int) (int, int, error) {
	index := 0
	digits := 0
	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		index = index*10 + int(input[pos]-'0')
		if index > MaxEntries {
			index = MaxEntries
		}
		digits++
		pos++
	}
	if digits == 0 || pos >= len(input) || input[pos] != ':' {
		return pos, next, &ImportError{ErrUnexpectedCharacter, pos}
	}
	pos++
	if index >= MaxEntries {
		return pos, next, &ImportError{ErrIndexOutOfBounds, pos}
	}
	entry := &dm.entries[index]
	if entry.Length > 0 {
		return pos, next, &ImportError{ErrIndexAlreadyDefined, pos}
	}

	commentStart := pos
	for pos < len(input) && input[pos] != '\n' {
		pos++
	}
	entry.Comment = truncateComment(strings.TrimRight(original[commentStart:pos], "\r"))

	start := next
	high := true
	value := byte(0)
	for pos < len(input) && input[pos] != '#' {
		c := input[pos]
		if digit, ok := hexValue(c); ok {
			if high {
				value = digit << 4
			} else {
				if next >= DataSize {
					return pos, next, &ImportError{ErrRomIsFull, pos}
				}
				dm.data[next] = value | digit
				next++
			}
			high = !high
		} else if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return pos, next, &ImportError{ErrUnexpectedCharacter, pos}
		}
		pos++
	}
	if !high {
		return pos, next, &ImportError{ErrSyntax, pos}
	}

	entry.Start = start
	entry.Length = next - start
	for i := index + 1; i < MaxEntries; i++ {
		dm.entries[i].Start = next
	}
	return pos, next, nil
}

// Export serializes source code and all nonempty entries.
func (dm *DataManager) Export() string {
	var b strings.Builder
	if dm.sourceCode != "" {
		b.WriteString(dm.sourceCode)
		if !strings.HasSuffix(dm.sourceCode, "\n") {
			b.WriteByte('\n')
		}
	}
	for i, e := range dm.entries {
		if e.Length == 0 {
			continue
		}
		fmt.Fprintf(&b, "#%d:%s\n", i, e.Comment)
		for pos, v := range dm.data[e.Start : e.Start+e.Length] {
			fmt.Fprintf(&b, "%02X", v)
			switch {
			case pos == e.Length-1:
				b.WriteString("\n\n")
			case pos%16 == 15:
				b.WriteByte('\n')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// CanSetEntry reports whether entry index can be replaced by length bytes
// without overflowing the arena.
func (dm *DataManager) CanSetEntry(index, length int) bool {
	if index < 0 || index >= MaxEntries || length < 0 {
		return false
	}
	return dm.CurrentSize()-dm.entries[index].Length+length <= DataSize
}

// SetEntry replaces the content of entry index and moves all following
// entries. The caller must check CanSetEntry first.
func (dm *DataManager) SetEntry(index int, comment string, source []byte) {
	entry := &dm.entries[index]
	length := len(source)
	nextStart := entry.Start + length

	switch {
	case length > entry.Length:
		diff := length - entry.Length
		for i := DataSize - 1; i >= nextStart; i-- {
			dm.data[i] = dm.data[i-diff]
		}
	case length < entry.Length:
		diff := entry.Length - length
		for i := nextStart; i < DataSize-diff; i++ {
			dm.data[i] = dm.data[i+diff]
		}
		clear(dm.data[DataSize-diff:])
	}

	entry.Comment = truncateComment(comment)
	entry.Length = length
	copy(dm.data[entry.Start:], source)

	for i := index + 1; i < MaxEntries; i++ {
		prev := dm.entries[i-1]
		dm.entries[i].Start = prev.Start + prev.Length
	}
}

func truncateComment(s string) string {
	if len(s) > CommentSize-1 {
		return s[:CommentSize-1]
	}
	return s
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
