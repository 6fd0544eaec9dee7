package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"WealthCompass/internal/model"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Namespaced keys for the local key/value table.
const (
	keyState   = "wealthcompass:state"
	keyEntries = "wealthcompass:entries"
)

// SQLiteLocal implements LocalStore on a SQLite key/value table.
type SQLiteLocal struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteLocal opens (or creates) the database and runs migrations.
func NewSQLiteLocal(dbPath string, log zerolog.Logger) (*SQLiteLocal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers don't block the coordinator's synchronous writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteLocal{db: db, log: log.With().Str("component", "local_store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite local store opened")
	return s, nil
}

func (s *SQLiteLocal) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteLocal) LoadState() (*model.PortfolioState, error) {
	raw, err := s.get(keyState)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var st model.PortfolioState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &st, nil
}

func (s *SQLiteLocal) SaveState(st *model.PortfolioState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.put(keyState, raw)
}

func (s *SQLiteLocal) LoadEntries() ([]model.PortfolioEntry, error) {
	raw, err := s.get(keyEntries)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var entries []model.PortfolioEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteLocal) SaveEntries(entries []model.PortfolioEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return s.put(keyEntries, raw)
}

func (s *SQLiteLocal) get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteLocal) put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?,?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteLocal) Close() error {
	s.log.Info().Msg("closing sqlite local store")
	return s.db.Close()
}
