// Package storage keeps the history of finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only end-of-game summaries are stored; a game in progress is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is the summary of one finished game.
type Session struct {
	ID       string
	GameID   string
	Rows     int
	Pieces   int
	Ticks    uint64
	Seed     string
	Duration time.Duration
	EndedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ended_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(game_id, rows_cleared DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished game and returns its ID. A missing ID is
// generated and a zero EndedAt means now.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.GameID == "" {
		return "", errors.New("storage: session has no game id")
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.EndedAt.IsZero() {
		sess.EndedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, game_id, rows_cleared, pieces, ticks, seed, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.GameID, sess.Rows, sess.Pieces, int64(sess.Ticks), sess.Seed,
		sess.Duration.Milliseconds(), sess.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

const sessionColumns = `id, game_id, rows_cleared, pieces, ticks, seed, duration_ms, ended_at`

// RecentSessions returns the latest sessions, newest first. An empty gameID
// covers every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY ended_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestSession returns the session with the most rows cleared, or nil if the
// game has never been played. Ties go to the earlier session.
func (s *Store) BestSession(gameID string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY rows_cleared DESC, ended_at ASC
		 LIMIT 1`,
		gameID,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// TotalRows returns the rows cleared across every session of a game.
func (s *Store) TotalRows(gameID string) (int, error) {
	var total int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(rows_cleared), 0) FROM sessions WHERE game_id = ?",
		gameID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot sum rows: %w", err)
	}
	return total, nil
}

// ClearSessions deletes the history of a game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	Games       int
	BestRows    int
	AvgRows     float64
	TotalRows   int
	TotalPieces int
	LastPlayed  time.Time
}

// Stats returns aggregated statistics for a game.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(rows_cleared), 0), COALESCE(AVG(rows_cleared), 0),
		        COALESCE(SUM(rows_cleared), 0), COALESCE(SUM(pieces), 0), MAX(ended_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Games, &stats.BestRows, &stats.AvgRows, &stats.TotalRows, &stats.TotalPieces, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (Session, error) {
	var (
		sess     Session
		ticks    int64
		duration int64
		endedAt  any
	)
	err := sc.Scan(&sess.ID, &sess.GameID, &sess.Rows, &sess.Pieces, &ticks, &sess.Seed, &duration, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, err
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	sess.Ticks = uint64(ticks)
	sess.Duration = time.Duration(duration) * time.Millisecond
	switch v := endedAt.(type) {
	case time.Time:
		sess.EndedAt = v
	case string:
		sess.EndedAt = parseTime(v)
	}
	return sess, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
