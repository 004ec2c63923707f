// Package storage provides SQLite-based persistence for level attempts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-puzzle/internal/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded level attempt.
type Run struct {
	ID        int64
	LevelID   string
	Player    string
	Outcome   core.Outcome
	Moves     int
	Undos     int
	Ticks     int
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	LevelID    string
	Attempts   int
	Wins       int
	Deaths     int
	BestMoves  int // fewest moves in a win, 0 without wins
	AvgMoves   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			undos INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, outcome, moves);
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

// SaveRun records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(player string, r core.RunResult) (int64, error) {
	if r.LevelID == "" {
		return 0, errors.New("storage: run without level id")
	}
	finished := r.Finished
	if finished.IsZero() {
		finished = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, player, outcome, moves, undos, ticks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, player, string(r.Outcome), r.Moves, r.Undos, r.Ticks,
		finished.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest attempts, newest first.
// An empty levelID returns runs of every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, outcome, moves, undos, ticks, created_at
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the win with the fewest moves, fewest undos breaking ties.
// Returns nil if the level has never been won.
func (s *Store) BestRun(levelID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, level_id, player, outcome, moves, undos, ticks, created_at
		 FROM runs
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY moves ASC, undos ASC, created_at ASC
		 LIMIT 1`,
		levelID, string(core.OutcomeWin),
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// LevelStats retrieves aggregated statistics for a level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome IN (?, ?) THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN moves END), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		string(core.OutcomeWin),
		string(core.OutcomeDeath), string(core.OutcomeFruitFell),
		string(core.OutcomeWin),
		levelID,
	).Scan(&stats.Attempts, &stats.Wins, &stats.Deaths, &stats.BestMoves, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// PlayedLevels returns the IDs of every level with at least one run.
func (s *Store) PlayedLevels() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level_id FROM runs ORDER BY level_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ClearRuns deletes the history of a level, or of every level when levelID is empty.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR level_id = ?", levelID, levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var outcome string
	var createdAt any
	if err := sc.Scan(&r.ID, &r.LevelID, &r.Player, &outcome, &r.Moves, &r.Undos, &r.Ticks, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Outcome = core.Outcome(outcome)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
