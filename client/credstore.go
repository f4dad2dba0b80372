package client

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// CredStore keeps the three persisted session scalars (token, role, user id)
// in a small local SQLite database, the Go stand-in for the browser's
// localStorage.
type CredStore struct {
	db *sql.DB
}

func OpenCredStore(path string) (*CredStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS credentials (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, err
	}

	return &CredStore{db: db}, nil
}

func (s *CredStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *CredStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (s *CredStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM credentials")
	return err
}

func (s *CredStore) Close() error {
	return s.db.Close()
}
