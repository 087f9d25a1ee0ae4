package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type kvRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewKVRepository creates the kv_store table if needed and returns a
// Store backed by it
func NewKVRepository(ctx context.Context, db *sql.DB, logger *zap.Logger) (*kvRepository, error) {
	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		logger.Error("Failed to create kv_store table", zap.Error(err))
		return nil, err
	}

	return &kvRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get value", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}

	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, string(value), time.Now())
	if err != nil {
		r.logger.Error("Failed to set value", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv_store
		WHERE key = $1
	`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		r.logger.Error("Failed to delete value", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (r *kvRepository) Close() error {
	return r.db.Close()
}
