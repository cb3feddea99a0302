// Package store persists parsed briefs in an embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when no brief exists for a document id.
	ErrNotFound = errors.New("brief not found")
	// ErrDuplicate is returned by Put when another document already holds
	// the same content hash.
	ErrDuplicate = errors.New("brief with same content already stored")
)

var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS briefs (
	doc_id         TEXT PRIMARY KEY,
	filename       TEXT NOT NULL,
	content_hash   TEXT NOT NULL,
	booking_number TEXT,
	confidence     INTEGER NOT NULL,
	brief_json     TEXT NOT NULL,
	canonical_text TEXT NOT NULL,
	created_at     TEXT NOT NULL
)`,
	`DROP INDEX IF EXISTS idx_briefs_content_hash`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_briefs_content_hash_unique ON briefs(content_hash)`,
}

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record is one stored brief.
type Record struct {
	DocID         string
	Filename      string
	ContentHash   string
	BookingNumber *string
	Confidence    int
	BriefJSON     []byte
	CanonicalText string
	CreatedAt     time.Time
}

// Summary is the list view of a stored brief.
type Summary struct {
	DocID         string    `json:"doc_id"`
	Filename      string    `json:"filename"`
	BookingNumber *string   `json:"booking_number"`
	Confidence    int       `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is a SQLite-backed brief repository.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	for _, stmt := range schemaSQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	log.Info("brief store ready", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Put inserts or replaces a brief. A different document with the same
// content hash yields ErrDuplicate.
func (s *Store) Put(ctx context.Context, r Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO briefs (doc_id, filename, content_hash, booking_number, confidence, brief_json, canonical_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			filename = excluded.filename,
			content_hash = excluded.content_hash,
			booking_number = excluded.booking_number,
			confidence = excluded.confidence,
			brief_json = excluded.brief_json,
			canonical_text = excluded.canonical_text`,
		r.DocID, r.Filename, r.ContentHash, nullString(r.BookingNumber), r.Confidence,
		string(r.BriefJSON), r.CanonicalText, r.CreatedAt.UTC().Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert brief %s: %w", r.DocID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert brief %s: %w", r.DocID, err)
	}
	return nil
}

// Get returns the brief stored under docID.
func (s *Store) Get(ctx context.Context, docID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT doc_id, filename, content_hash, booking_number, confidence, brief_json, canonical_text, created_at
		FROM briefs WHERE doc_id = ?`, docID)

	var (
		r       Record
		booking sql.NullString
		body    string
		created string
	)
	err := row.Scan(&r.DocID, &r.Filename, &r.ContentHash, &booking, &r.Confidence, &body, &r.CanonicalText, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brief %s: %w", docID, err)
	}
	r.BookingNumber = stringPtr(booking)
	r.BriefJSON = []byte(body)
	r.CreatedAt = parseTime(created)
	return &r, nil
}

// FindByHash returns the document id of an existing brief with the same
// canonical-text hash.
func (s *Store) FindByHash(ctx context.Context, hash string) (string, bool, error) {
	var docID string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc_id FROM briefs WHERE content_hash = ? ORDER BY created_at LIMIT 1`, hash).Scan(&docID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find by hash: %w", err)
	}
	return docID, true, nil
}

// List returns the newest briefs first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, filename, booking_number, confidence, created_at
		FROM briefs ORDER BY created_at DESC, doc_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sm      Summary
			booking sql.NullString
			created string
		)
		if err := rows.Scan(&sm.DocID, &sm.Filename, &booking, &sm.Confidence, &created); err != nil {
			return nil, fmt.Errorf("scan brief: %w", err)
		}
		sm.BookingNumber = stringPtr(booking)
		sm.CreatedAt = parseTime(created)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Delete removes a brief. Deleting a missing id returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, docID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM briefs WHERE doc_id = ?`, docID)
	if err != nil {
		return fmt.Errorf("delete brief %s: %w", docID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete brief %s: %w", docID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored briefs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM briefs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count briefs: %w", err)
	}
	return n, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
