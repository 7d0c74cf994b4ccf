package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/jonesrussell/brandquery/internal/domain"
)

const (
	// DefaultMaxOpenConns is the maximum number of open connections to the
	// Postgres store.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the maximum number of idle connections held
	// open between uses.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime bounds how long a pooled connection is reused
	// before it is closed and replaced.
	DefaultConnMaxLifetime = 5 * time.Minute
	// DefaultPingTimeout bounds the initial connectivity check.
	DefaultPingTimeout = 5 * time.Second
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS raw_records (
	id          TEXT PRIMARY KEY,
	platform    TEXT NOT NULL,
	query       TEXT NOT NULL,
	datetime    TEXT NOT NULL,
	link        TEXT NOT NULL,
	author      TEXT NOT NULL,
	content     TEXT NOT NULL,
	sentiment   TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL,
	processed   BOOLEAN NOT NULL DEFAULT FALSE
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
	received_at TIMESTAMPTZ NOT NULL,
	processed   BOOLEAN NOT NULL DEFAULT TRUE,
	topic       TEXT NOT NULL,
	sub_topic   TEXT NOT NULL,
	query_name  TEXT NOT NULL,
	internal_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processed_records_platform ON processed_records(platform);
`

// PostgresConfig holds the connection parameters for PostgresStore.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // connection config field, not a literal secret
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PostgresStore is a Store backed by PostgreSQL, intended for multi-node
// deployments sharing a single durable document store.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to Postgres, applies pool settings, verifies
// connectivity, and ensures the schema exists.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres store: %w", err)
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, DefaultMaxOpenConns))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, DefaultMaxIdleConns))
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(DefaultConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres store: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply postgres schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (s *PostgresStore) PutRaw(ctx context.Context, rec domain.IngestRecord) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO raw_records
			(id, platform, query, datetime, link, author, content, sentiment, received_at, processed)
		VALUES
			(:id, :platform, :query, :datetime, :link, :author, :content, :sentiment, :received_at, :processed)
		ON CONFLICT (id) DO NOTHING
	`, rec)
	if err != nil {
		return fmt.Errorf("put raw record: %w", err)
	}
	return nil
}

func (s *PostgresStore) PutProcessed(ctx context.Context, rec domain.ProcessedRecord) error {
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO processed_records
			(id, platform, query, datetime, link, author, content, sentiment, received_at, processed,
			 topic, sub_topic, query_name, internal_id)
		VALUES
			(:id, :platform, :query, :datetime, :link, :author, :content, :sentiment, :received_at, :processed,
			 :topic, :sub_topic, :query_name, :internal_id)
		ON CONFLICT (id) DO NOTHING
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

func (s *PostgresStore) ListRaw(
	ctx context.Context, platform string, offset, limit int,
) ([]domain.IngestRecord, error) {
	limit = normalizeLimit(limit)
	var recs []domain.IngestRecord
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, platform, query, datetime, link, author, content, sentiment, received_at, processed
		FROM raw_records WHERE platform = $1
		ORDER BY received_at ASC LIMIT $2 OFFSET $3
	`, platform, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw records: %w", err)
	}
	return recs, nil
}

func (s *PostgresStore) ListProcessed(
	ctx context.Context, platform string, offset, limit int,
) ([]domain.ProcessedRecord, error) {
	limit = normalizeLimit(limit)
	var recs []domain.ProcessedRecord
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, platform, query, datetime, link, author, content, sentiment, received_at, processed,
		       topic, sub_topic, query_name, internal_id
		FROM processed_records WHERE platform = $1
		ORDER BY received_at ASC LIMIT $2 OFFSET $3
	`, platform, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list processed records: %w", err)
	}
	return recs, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
