package tagstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no desired tags are stored for an entity.
var ErrNotFound = errors.New("tagstore: entity not found")

// Kind is the type of a taggable entity.
type Kind string

const (
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindTrack  Kind = "track"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindArtist, KindAlbum, KindTrack:
		return k, nil
	}
	return "", fmt.Errorf("tagstore: unknown kind %q", s)
}

// EntityRef identifies a taggable entity. For artists Name is empty.
type EntityRef struct {
	Kind   Kind
	Artist string
	Name   string
}

func (r EntityRef) String() string {
	if r.Kind == KindArtist {
		return "artist " + r.Artist
	}
	return string(r.Kind) + " " + r.Artist + " - " + r.Name
}

// Entry is the desired tag set of one entity.
type Entry struct {
	Ref       EntityRef
	Tags      []string
	UpdatedAt time.Time
}

// Result is the outcome of reconciling one entity during a run.
type Result struct {
	Ref     EntityRef
	Added   []string
	Removed []string
	Error   string
}

// Run is one pass over the store.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// NewRun starts a run with a fresh ID.
func NewRun(now time.Time) Run {
	return Run{ID: uuid.New(), StartedAt: now}
}

// Failed returns the number of results with an error.
func (r Run) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// Store keeps desired tag sets and sync history in SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the store at dbPath. ":memory:" is accepted.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps in-memory databases consistent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS entities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			artist TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL,
			UNIQUE (kind, artist, name)
		);

		CREATE TABLE IF NOT EXISTS desired_tags (
			entity_id INTEGER NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (entity_id, tag)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			artist TEXT NOT NULL,
			name TEXT NOT NULL,
			added TEXT NOT NULL,
			removed TEXT NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetDesired replaces the desired tags of ref. Order is kept and
// duplicates are dropped.
func (s *Store) SetDesired(ctx context.Context, ref EntityRef, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO entities (kind, artist, name, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, artist, name) DO UPDATE SET updated_at = excluded.updated_at
		RETURNING id
	`, ref.Kind, ref.Artist, ref.Name, s.now().Unix()).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM desired_tags WHERE entity_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear desired tags: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO desired_tags (entity_id, position, tag) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, tag := range tags {
		if _, err := stmt.ExecContext(ctx, id, i, tag); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Desired returns the desired tags of ref, or ErrNotFound.
func (s *Store) Desired(ctx context.Context, ref EntityRef) ([]string, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE kind = ? AND artist = ? AND name = ?",
		ref.Kind, ref.Artist, ref.Name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM desired_tags WHERE entity_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query desired tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// List returns every stored entity with its desired tags, ordered by
// kind, artist and name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.kind, e.artist, e.name, e.updated_at, COALESCE(d.tag, '')
		FROM entities e
		LEFT JOIN desired_tags d ON d.entity_id = e.id
		ORDER BY e.kind, e.artist, e.name, d.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	lastID := int64(-1)
	for rows.Next() {
		var (
			id        int64
			e         Entry
			updatedAt int64
			tag       string
		)
		if err := rows.Scan(&id, &e.Ref.Kind, &e.Ref.Artist, &e.Ref.Name, &updatedAt, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		if id != lastID {
			e.UpdatedAt = time.Unix(updatedAt, 0)
			e.Tags = []string{}
			entries = append(entries, e)
			lastID = id
		}
		// A LEFT JOIN miss yields one row with an empty tag.
		if tag != "" {
			last := &entries[len(entries)-1]
			last.Tags = append(last.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}
	return entries, nil
}

// Remove forgets ref and its desired tags.
func (s *Store) Remove(ctx context.Context, ref EntityRef) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM entities WHERE kind = ? AND artist = ? AND name = ?",
		ref.Kind, ref.Artist, ref.Name)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return nil
}

// RecordRun stores a finished run and its results.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, finished_at) VALUES (?, ?, ?)",
		run.ID.String(), run.StartedAt.Unix(), run.FinishedAt.Unix(),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_results (run_id, seq, kind, artist, name, added, removed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, res := range run.Results {
		added, err := encodeTags(res.Added)
		if err != nil {
			return err
		}
		removed, err := encodeTags(res.Removed)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, run.ID.String(), i,
			res.Ref.Kind, res.Ref.Artist, res.Ref.Name, added, removed, res.Error,
		); err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", res.Ref, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT id, started_at, finished_at FROM runs ORDER BY started_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		var (
			id                string
			started, finished int64
		)
		if err := rows.Scan(&id, &started, &finished); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runID, err := uuid.Parse(id)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("invalid run id %q: %w", id, err)
		}
		runs = append(runs, Run{ID: runID, StartedAt: time.Unix(started, 0), FinishedAt: time.Unix(finished, 0)})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	// The single connection must be released before loading results.
	rows.Close()

	for i := range runs {
		results, err := s.results(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}
	return runs, nil
}

func (s *Store) results(ctx context.Context, runID uuid.UUID) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, artist, name, added, removed, COALESCE(error, '')
		FROM run_results WHERE run_id = ? ORDER BY seq
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query run results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r              Result
			added, removed string
		)
		if err := rows.Scan(&r.Ref.Kind, &r.Ref.Artist, &r.Ref.Name, &added, &removed, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run result: %w", err)
		}
		if r.Added, err = decodeTags(added); err != nil {
			return nil, err
		}
		if r.Removed, err = decodeTags(removed); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run results: %w", err)
	}
	return results, nil
}

// PruneRuns removes runs started before maxAge ago.
func (s *Store) PruneRuns(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}
