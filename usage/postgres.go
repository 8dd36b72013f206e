package usage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool defines the interface for the database connection pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresSink appends usage records to a Postgres table.
type PostgresSink struct {
	pool      DBPool
	tableName string
}

var _ Sink = (*PostgresSink)(nil)

// PostgresOptions configuration for the Postgres connection.
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "ai_requests"
}

// NewPostgresSink creates a new Postgres usage sink.
func NewPostgresSink(ctx context.Context, opts PostgresOptions) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return NewPostgresSinkWithPool(pool, opts.TableName), nil
}

// NewPostgresSinkWithPool creates a sink with an existing pool. Useful for
// testing with mocks.
func NewPostgresSinkWithPool(pool DBPool, tableName string) *PostgresSink {
	if tableName == "" {
		tableName = "ai_requests"
	}
	return &PostgresSink{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *PostgresSink) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL DEFAULT '',
			prompt_text TEXT NOT NULL,
			response_text TEXT NOT NULL,
			model TEXT NOT NULL,
			tokens_used INTEGER NOT NULL,
			cost_usd NUMERIC(10, 6) NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_session_id ON %s (session_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}

// Append inserts the record.
func (s *PostgresSink) Append(ctx context.Context, rec *Record) error {
	rec.Stamp()

	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
		(id, session_id, prompt_text, response_text, model, tokens_used, cost_usd, duration_seconds, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		rec.ID, rec.SessionID, rec.PromptText, rec.ResponseText, rec.Model,
		rec.TokensUsed, rec.CostUSD, rec.DurationSeconds, metadata, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append usage record: %w", err)
	}
	return nil
}
