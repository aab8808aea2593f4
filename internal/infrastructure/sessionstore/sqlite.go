// Package sessionstore is the durable local storage behind the session
// manager: a tiny key-value table in a local SQLite file, surviving restarts.
// It replaces the browser localStorage the portal's UI used to rely on.
package sessionstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/queenify/attendance-portal/internal/application/session"
)

var _ session.Store = (*Store)(nil)

// Store persists session keys in SQLite. When a secret is configured, values
// are sealed with AES-GCM before they touch disk.
type Store struct {
	db  *sql.DB
	key []byte
}

// Open opens (creating if needed) the store at path. secret derives the
// at-rest encryption key; empty disables encryption.
func Open(path, secret string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir store dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS session_kv(
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}

	s := &Store{db: db}
	if secret != "" {
		s.key = deriveKey(secret)
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Get reads one key. A value that fails to unseal (wrong or changed secret) is
// reported as absent, which downstream treats the same as no session.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key=?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.key != nil {
		plain, err := unseal(s.key, v)
		if err != nil {
			return "", false, nil
		}
		return plain, true, nil
	}
	return v, true, nil
}

// Set upserts one key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.key != nil {
		sealed, err := seal(s.key, value)
		if err != nil {
			return err
		}
		value = sealed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_kv(key,value,updated_at) VALUES(?,?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	return err
}

// Delete removes keys; missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key=?`, k); err != nil {
			return err
		}
	}
	return nil
}
