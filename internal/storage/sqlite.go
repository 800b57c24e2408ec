// Package storage provides the SQLite replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when a replay ID is unknown.
	ErrNotFound = errors.New("storage: replay not found")

	// ErrAmbiguous is returned when an ID prefix matches several replays.
	ErrAmbiguous = errors.New("storage: replay id is ambiguous")
)

// DefaultPath is the journal location used when none is configured.
const DefaultPath = "~/.snake/journal.db"

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Replay is one recorded session: everything needed to re-simulate it
// except the input frames themselves.
type Replay struct {
	ID         string
	Variant    string
	Seed       int64
	Config     string // YAML rule set, empty for built-in rules
	Ticks      uint64 // Steps taken, including ticks without input
	Finished   bool
	CreatedAt  time.Time
	FinishedAt time.Time
}

// InputRecord is a non-empty input frame and the step it was fed to.
// Frames are stored in core.InputFrame.Encode form.
type InputRecord struct {
	Tick  uint64
	Frame string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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

	// SSH sessions record concurrently; one connection serializes writers.
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
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id TEXT NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			frame TEXT NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
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

// CreateReplay starts a new journal entry and returns its ID.
func (s *Store) CreateReplay(variant string, seed int64, config string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO replays (id, variant, seed, config) VALUES (?, ?, ?, ?)",
		id, variant, seed, config,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create replay: %w", err)
	}
	return id, nil
}

// AppendInputs stores a batch of input frames in one transaction and
// advances the replay's tick count to ticks.
func (s *Store) AppendInputs(id string, ticks uint64, records []InputRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare("INSERT INTO replay_inputs (replay_id, tick, frame) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(id, r.Tick, r.Frame); err != nil {
			return fmt.Errorf("storage: cannot record tick %d: %w", r.Tick, err)
		}
	}

	res, err := tx.Exec("UPDATE replays SET ticks = ? WHERE id = ?", ticks, id)
	if err != nil {
		return fmt.Errorf("storage: cannot update replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit inputs: %w", err)
	}
	return nil
}

// FinishReplay marks the replay complete after ticks steps.
func (s *Store) FinishReplay(id string, ticks uint64) error {
	res, err := s.db.Exec(
		"UPDATE replays SET ticks = ?, finished = 1, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		ticks, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, config, ticks, finished, created_at, finished_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// LoadReplay returns a replay and its input frames ordered by tick.
// IDs may be abbreviated to any unique prefix.
func (s *Store) LoadReplay(id string) (*Replay, []InputRecord, error) {
	full, err := s.resolveID(id)
	if err != nil {
		return nil, nil, err
	}
	row := s.db.QueryRow(
		`SELECT id, variant, seed, config, ticks, finished, created_at, finished_at
		 FROM replays WHERE id = ?`,
		full,
	)
	r, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(
		"SELECT tick, frame FROM replay_inputs WHERE replay_id = ? ORDER BY tick",
		r.ID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []InputRecord
	for rows.Next() {
		var in InputRecord
		if err := rows.Scan(&in.Tick, &in.Frame); err != nil {
			return nil, nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, inputs, nil
}

// resolveID expands an exact ID or a unique prefix to the stored ID.
func (s *Store) resolveID(id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}

	var full string
	err := s.db.QueryRow("SELECT id FROM replays WHERE id = ?", id).Scan(&full)
	if err == nil {
		return full, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id FROM replays WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(id)+"%",
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return "", fmt.Errorf("storage: cannot scan replay id: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// escapeLike makes s match literally in a LIKE pattern escaped with '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(sc scanner) (Replay, error) {
	var r Replay
	var createdAt, finishedAt any
	if err := sc.Scan(&r.ID, &r.Variant, &r.Seed, &r.Config, &r.Ticks, &r.Finished, &createdAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("storage: cannot scan replay: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
