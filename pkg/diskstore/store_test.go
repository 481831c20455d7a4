package diskstore

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDisks(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadDisk("GAME")
	assert.ErrorIs(t, err, ErrDiskNotFound)

	require.NoError(t, s.SaveDisk("GAME", "#1:LEVEL\n01 02\n"))
	require.NoError(t, s.SaveDisk("ART", "#0:FONT\n"))
	require.NoError(t, s.SaveDisk("GAME", "#1:LEVEL\n03\n"))

	content, err := s.LoadDisk("GAME")
	require.NoError(t, err)
	assert.Equal(t, "#1:LEVEL\n03\n", content)

	names, err := s.ListDisks()
	require.NoError(t, err)
	assert.Equal(t, []string{"ART", "GAME"}, names)

	require.NoError(t, s.DeleteDisk("ART"))
	assert.ErrorIs(t, s.DeleteDisk("ART"), ErrDiskNotFound)

	names, err = s.ListDisks()
	require.NoError(t, err)
	assert.Equal(t, []string{"GAME"}, names)
}

func TestDiskNames(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name string
		ok   bool
	}{
		{"", false},
		{"A", true},
		{strings.Repeat("N", maxDiskNameLength), true},
		{strings.Repeat("N", maxDiskNameLength+1), false},
	}
	for _, tt := range tests {
		err := s.SaveDisk(tt.name, "")
		if tt.ok {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidDiskName, tt.name)
		}
	}
}

func TestPersistentRAM(t *testing.T) {
	s := newTestStore(t)
	id := ProgramID("PRINT 1")

	buf := []byte{9, 9, 9, 9}
	require.NoError(t, s.LoadPersistentRAM(id, buf))
	assert.Equal(t, []byte{9, 9, 9, 9}, buf)

	require.NoError(t, s.SavePersistentRAM(id, []byte{1, 2, 3, 4}))
	require.NoError(t, s.SavePersistentRAM(id, []byte{5, 6, 7, 8}))

	got := make([]byte, 4)
	require.NoError(t, s.LoadPersistentRAM(id, got))
	assert.Equal(t, []byte{5, 6, 7, 8}, got)

	other := make([]byte, 4)
	require.NoError(t, s.LoadPersistentRAM(ProgramID("PRINT 2"), other))
	assert.Equal(t, make([]byte, 4), other)
}

func TestProgramID(t *testing.T) {
	a := ProgramID("PRINT 1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, ProgramID("PRINT 1"))
	assert.NotEqual(t, a, ProgramID("PRINT 2"))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveDisk("KEEP", "#2:X\nFF\n"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	content, err := s.LoadDisk("KEEP")
	require.NoError(t, err)
	assert.Equal(t, "#2:X\nFF\n", content)
}
