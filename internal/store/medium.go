package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/stmt-categorizer/internal/models"

	_ "modernc.org/sqlite"
)

// Backend names accepted by OpenMedium.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFileName is the database file created inside the learning path.
const SQLiteFileName = "learning.db"

// Medium persists an encoded document under a key. Load reports found=false
// for a key that was never saved.
type Medium interface {
	Load(key string) (data []byte, found bool, err error)
	Save(key string, data []byte) error
	Delete(key string) error
	Close() error
	Name() string
}

// OpenMedium opens the medium for backend rooted at path.
func OpenMedium(backend, path string) (Medium, error) {
	switch strings.ToLower(backend) {
	case BackendFile:
		return NewFileMedium(path), nil
	case BackendSQLite:
		if err := os.MkdirAll(path, models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("error creating directory: %w", err)
		}
		return OpenSQLiteMedium(filepath.Join(path, SQLiteFileName))
	case BackendMemory:
		return NewMemoryMedium(), nil
	default:
		return nil, fmt.Errorf("unsupported learning backend: %s", backend)
	}
}

// FileMedium stores each key as <dir>/<key>.json.
type FileMedium struct {
	dir string
}

// NewFileMedium creates a medium writing below dir. The directory is
// created on first save.
func NewFileMedium(dir string) *FileMedium {
	return &FileMedium{dir: dir}
}

// Path returns the file backing key.
func (m *FileMedium) Path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

func (m *FileMedium) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(m.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading learning data: %w", err)
	}
	return data, true, nil
}

// Save writes through a temporary file so a crash never leaves a
// truncated document behind.
func (m *FileMedium) Save(key string, data []byte) error {
	if err := os.MkdirAll(m.dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(m.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing learning data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing learning data: %w", err)
	}
	if err := os.Chmod(tmp.Name(), models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.Path(key)); err != nil {
		return fmt.Errorf("error replacing learning data: %w", err)
	}
	return nil
}

func (m *FileMedium) Delete(key string) error {
	if err := os.Remove(m.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error deleting learning data: %w", err)
	}
	return nil
}

func (m *FileMedium) Close() error { return nil }

func (m *FileMedium) Name() string { return BackendFile }

// SQLiteMedium keeps documents in a single key/value table.
type SQLiteMedium struct {
	db *sql.DB
}

// OpenSQLiteMedium opens (or creates) the database and ensures the table
// exists.
func OpenSQLiteMedium(path string) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteMedium{db: db}, nil
}

func (m *SQLiteMedium) Load(key string) ([]byte, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (m *SQLiteMedium) Save(key string, data []byte) error {
	_, err := m.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(data))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (m *SQLiteMedium) Delete(key string) error {
	if _, err := m.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (m *SQLiteMedium) Close() error { return m.db.Close() }

func (m *SQLiteMedium) Name() string { return BackendSQLite }

// MemoryMedium keeps documents in a map. It is used in tests and when no
// persistence is wanted.
type MemoryMedium struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string][]byte)}
}

func (m *MemoryMedium) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemoryMedium) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryMedium) Close() error { return nil }

func (m *MemoryMedium) Name() string { return BackendMemory }
