package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lyminhthai2009/tank-duel/internal/game"

	_ "modernc.org/sqlite"
)

// SQLite keeps the save record as a JSON payload under a key, plus a history
// of finished rounds.
type SQLite struct {
	conn *sql.DB
	key  string
}

// OpenSQLite opens (or creates) the database at path and migrates it.
func OpenSQLite(path, key string) (*SQLite, error) {
	if key == "" {
		key = "default"
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("wal %s: %w", path, err)
	}
	s := &SQLite{conn: conn, key: key}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level INTEGER NOT NULL,
		player_health INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.conn.Close() }

func (s *SQLite) Load() (*game.SaveState, error) {
	var payload string
	err := s.conn.QueryRow("SELECT payload FROM saves WHERE key = ?", s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	return decode([]byte(payload))
}

// Save upserts the record and appends a history row for the cleared level.
func (s *SQLite) Save(st game.SaveState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	if _, err := tx.Exec(`
		INSERT INTO saves (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		s.key, string(b)); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO rounds (level, player_health) VALUES (?, ?)",
		st.Level-1, st.PlayerHealth); err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) Clear() error {
	if _, err := s.conn.Exec("DELETE FROM saves WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	return nil
}

// RoundsCleared is the number of victories ever recorded.
func (s *SQLite) RoundsCleared() (int, error) {
	var n int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM rounds").Scan(&n); err != nil {
		return 0, fmt.Errorf("count rounds: %w", err)
	}
	return n, nil
}

// BestLevel is the highest level ever cleared, 0 if none.
func (s *SQLite) BestLevel() (int, error) {
	var best sql.NullInt64
	if err := s.conn.QueryRow("SELECT MAX(level) FROM rounds").Scan(&best); err != nil {
		return 0, fmt.Errorf("best level: %w", err)
	}
	return int(best.Int64), nil
}
