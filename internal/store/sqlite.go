package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/jonesrussell/brandquery/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS raw_records (
	id          TEXT PRIMARY KEY,
	platform    TEXT NOT NULL,
	query       TEXT NOT NULL,
	datetime    TEXT NOT NULL,
	link        TEXT NOT NULL,
	author      TEXT NOT NULL,
	content     TEXT NOT NULL,
	sentiment   TEXT NOT NULL,
	received_at DATETIME NOT NULL,
	processed   BOOLEAN NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_raw_records_platform ON raw_records(platform);

CREATE TABLE IF NOT EXISTS processed_records (
	id          TEXT PRIMARY KEY,
	platform    TEXT NOT NULL,
	query       TEXT NOT NULL,
	datetime    TEXT NOT NULL,
	link        TEXT NOT NULL,
	author      TEXT NOT NULL,
	content     TEXT NOT NULL,
	sentiment   TEXT NOT NULL,
	received_at DATETIME NOT NULL,
	processed   BOOLEAN NOT NULL DEFAULT 1,
	topic       TEXT NOT NULL,
	sub_topic   TEXT NOT NULL,
	query_name  TEXT NOT NULL,
	internal_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processed_records_platform ON processed_records(platform);
`

// SQLiteStore is a Store backed by a local sqlite3 file, intended for
// single-node deployments and tests.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (creating if absent) the sqlite3 database at path
// and ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// sqlite3 serializes writes; a single connection avoids "database is
	// locked" errors under concurrent access from the drain loop.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) PutRaw(ctx context.Context, rec domain.IngestRecord) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO raw_records
			(id, platform, query, datetime, link, author, content, sentiment, received_at, processed)
		VALUES
			(:id, :platform, :query, :datetime, :link, :author, :content, :sentiment, :received_at, :processed)
		ON CONFLICT(id) DO NOTHING
	`, rec)
	if err != nil {
		return fmt.Errorf("put raw record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PutProcessed(ctx context.Context, rec domain.ProcessedRecord) error {
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO processed_records
			(id, platform, query, datetime, link, author, content, sentiment, received_at, processed,
			 topic, sub_topic, query_name, internal_id)
		VALUES
			(:id, :platform, :query, :datetime, :link, :author, :content, :sentiment, :received_at, :processed,
			 :topic, :sub_topic, :query_name, :internal_id)
		ON CONFLICT(id) DO NOTHING
	`, rec)
	if err != nil {
		return fmt.Errorf("put processed record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put processed record: %w", err)
	}
	if rows == 0 {
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) ListRaw(ctx context.Context, platform string, offset, limit int) ([]domain.IngestRecord, error) {
	limit = normalizeLimit(limit)
	var recs []domain.IngestRecord
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, platform, query, datetime, link, author, content, sentiment, received_at, processed
		FROM raw_records WHERE platform = ?
		ORDER BY received_at ASC LIMIT ? OFFSET ?
	`, platform, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw records: %w", err)
	}
	return recs, nil
}

func (s *SQLiteStore) ListProcessed(
	ctx context.Context, platform string, offset, limit int,
) ([]domain.ProcessedRecord, error) {
	limit = normalizeLimit(limit)
	var recs []domain.ProcessedRecord
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, platform, query, datetime, link, author, content, sentiment, received_at, processed,
		       topic, sub_topic, query_name, internal_id
		FROM processed_records WHERE platform = ?
		ORDER BY received_at ASC LIMIT ? OFFSET ?
	`, platform, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list processed records: %w", err)
	}
	return recs, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
