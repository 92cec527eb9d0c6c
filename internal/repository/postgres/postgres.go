package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PreferencesRepository implements domain.Preferences on PostgreSQL,
// for shared kiosk deployments where several devices use one session store
type PreferencesRepository struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPreferencesRepository creates a new PostgreSQL repository scoped to namespace
func NewPreferencesRepository(pool *pgxpool.Pool, namespace string) *PreferencesRepository {
	return &PreferencesRepository{pool: pool, namespace: namespace}
}

// EnsureSchema creates the preferences table if it does not exist
func (r *PreferencesRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS preferences (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, key)
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create preferences table: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key
func (r *PreferencesRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM preferences WHERE namespace = $1 AND key = $2`

	var value string
	err := r.pool.QueryRow(ctx, query, r.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres: failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// PutAll upserts every pair in one transaction
func (r *PreferencesRepository) PutAll(ctx context.Context, values map[string]string) error {
	query := `
		INSERT INTO preferences (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for k, v := range values {
		if _, err := tx.Exec(ctx, query, r.namespace, k, v); err != nil {
			return fmt.Errorf("postgres: failed to write %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit preferences: %w", err)
	}
	return nil
}

// Delete removes the keys in one statement
func (r *PreferencesRepository) Delete(ctx context.Context, keys ...string) error {
	query := `DELETE FROM preferences WHERE namespace = $1 AND key = ANY($2)`

	if _, err := r.pool.Exec(ctx, query, r.namespace, keys); err != nil {
		return fmt.Errorf("postgres: failed to delete preferences: %w", err)
	}
	return nil
}

// Health checks database connectivity
func (r *PreferencesRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
