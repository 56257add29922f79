package store

import (
	"database/sql"
	"errors"
	"sync"
)

// KV is the persistent key-value capability. Values are opaque text; all
// structured state is serialized to JSON by the callers (see Scoped).
type KV interface {
	// Get returns the stored value for key. The second return is false when
	// the key is absent.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(key string) error
}

// KV returns the key-value surface backed by this store.
func (s *Store) KV() KV {
	return &sqliteKV{db: s.db}
}

type sqliteKV struct {
	db *sql.DB
}

func (k *sqliteKV) Get(key string) (string, bool, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (k *sqliteKV) Set(key, value string) error {
	_, err := k.db.Exec(`
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (k *sqliteKV) Delete(key string) error {
	_, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// MemoryKV is an in-memory KV for tests.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string

	// FailWrites makes Set return an error when set. Used to test
	// fire-and-forget write behavior.
	FailWrites error
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns a snapshot of all stored keys. Test helper.
func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}
