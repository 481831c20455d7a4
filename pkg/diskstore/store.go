// Package diskstore keeps the virtual disks and the persistent RAM of
// programs in a SQLite database.
package diskstore

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/antibyte/nxterm/pkg/logger"
)

var (
	ErrDiskNotFound    = errors.New("disk not found")
	ErrInvalidDiskName = errors.New("invalid disk name")
)

const maxDiskNameLength = 64

// Store is a wrapper around the SQLite database connection
type Store struct {
	conn *sql.DB
}

// Open opens the database at path and creates missing tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer, sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := CreateTables(db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info(logger.AreaDatabase, "opened disk store %s", path)
	return &Store{conn: db}, nil
}

// CreateTables ensures all required tables exist in the database.
func CreateTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS disks (
			name TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS persistent_ram (
			program_id TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func checkName(name string) error {
	if name == "" || len(name) > maxDiskNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidDiskName, name)
	}
	return nil
}

// LoadDisk returns the exported data manager text of a disk.
func (s *Store) LoadDisk(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	var content string
	err := s.conn.QueryRow(`SELECT content FROM disks WHERE name = ?`, name).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrDiskNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load disk %s: %w", name, err)
	}
	logger.Debug(logger.AreaDisk, "loaded disk %s (%d bytes)", name, len(content))
	return content, nil
}

// SaveDisk creates or replaces a disk.
func (s *Store) SaveDisk(name, content string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := s.conn.Exec(`
		INSERT INTO disks (name, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		name, content, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save disk %s: %w", name, err)
	}
	logger.Debug(logger.AreaDisk, "saved disk %s (%d bytes)", name, len(content))
	return nil
}

// ListDisks returns the disk names in alphabetical order.
func (s *Store) ListDisks() ([]string, error) {
	rows, err := s.conn.Query(`SELECT name FROM disks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list disks: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) DeleteDisk(name string) error {
	res, err := s.conn.Exec(`DELETE FROM disks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete disk %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrDiskNotFound, name)
	}
	return nil
}

// ProgramID identifies a program by a digest of its source code.
func ProgramID(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// LoadPersistentRAM fills buf with the stored RAM of a program. buf is
// left untouched if nothing was stored yet.
func (s *Store) LoadPersistentRAM(programID string, buf []byte) error {
	var data []byte
	err := s.conn.QueryRow(`SELECT data FROM persistent_ram WHERE program_id = ?`, programID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load persistent ram: %w", err)
	}
	copy(buf, data)
	return nil
}

func (s *Store) SavePersistentRAM(programID string, buf []byte) error {
	_, err := s.conn.Exec(`
		INSERT INTO persistent_ram (program_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(program_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		programID, buf, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save persistent ram: %w", err)
	}
	return nil
}
