package mediacache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users then delete the cache file, which is safe to lose.
const schemaVersion = 1

// Status describes the outcome of one derived-media generation attempt.
type Status string

const (
	// StatusGenerated records a fresh artifact written to disk.
	StatusGenerated Status = "generated"
	// StatusSkipped records an up-to-date artifact left untouched.
	StatusSkipped Status = "skipped"
	// StatusFailed records a tool failure; the entry proceeded without the artifact.
	StatusFailed Status = "failed"
)

// Record is one row of the generation ledger, keyed by entry slug.
type Record struct {
	Slug         string
	AudioPath    string
	AudioMTime   time.Time
	WaveformPath string
	VideoPath    string
	Status       Status
	Message      string
	UpdatedAt    time.Time
}

// Store persists derived-media outcomes in SQLite so `phono media status`
// can report on past runs. It is observational only: the mtime comparison in
// the derive package stays the authority for skip decisions.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("media cache schema version %d, expected %d (delete %s to reset)", version, schemaVersion, s.path)
	}
	return nil
}

// Upsert inserts or replaces the outcome row for a slug.
func (s *Store) Upsert(ctx context.Context, record Record) error {
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media_outcomes (slug, audio_path, audio_mtime, waveform_path, video_path, status, message, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(slug) DO UPDATE SET
             audio_path = excluded.audio_path,
             audio_mtime = excluded.audio_mtime,
             waveform_path = excluded.waveform_path,
             video_path = excluded.video_path,
             status = excluded.status,
             message = excluded.message,
             updated_at = excluded.updated_at`,
		record.Slug,
		record.AudioPath,
		nullableTime(record.AudioMTime),
		nullableString(record.WaveformPath),
		nullableString(record.VideoPath),
		string(record.Status),
		nullableString(record.Message),
		updatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert media outcome for %s: %w", record.Slug, err)
	}
	return nil
}

// List returns every recorded outcome ordered by slug.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, audio_path, audio_mtime, waveform_path, video_path, status, message, updated_at
         FROM media_outcomes ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list media outcomes: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record     Record
			audioMTime sql.NullString
			waveform   sql.NullString
			video      sql.NullString
			message    sql.NullString
			updatedAt  string
			status     string
		)
		if err := rows.Scan(&record.Slug, &record.AudioPath, &audioMTime, &waveform, &video, &status, &message, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan media outcome: %w", err)
		}
		record.WaveformPath = waveform.String
		record.VideoPath = video.String
		record.Message = message.String
		record.Status = Status(status)
		if audioMTime.Valid {
			if parsed, err := time.Parse(time.RFC3339Nano, audioMTime.String); err == nil {
				record.AudioMTime = parsed
			}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			record.UpdatedAt = parsed
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}
