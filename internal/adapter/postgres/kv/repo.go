// Package kv implements the keyed persistence store using PostgreSQL.
// One table, one row per key; reads and writes go through squirrel-built
// queries against a pgx pool.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

const table = "kv_entries"

// Repo provides keyed string persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// New creates a new kv repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the value stored under key.
// Returns domain.ErrNotFound if the key does not exist.
func (r *Repo) Get(ctx context.Context, key string) (string, error) {
	query, args, err := r.sb.
		Select("value").
		From(table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build kv select: %w", err)
	}

	var value string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("kv %s: %w", key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (r *Repo) Set(ctx context.Context, key, value string) error {
	query, args, err := r.sb.
		Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv upsert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing a missing key is
// not an error.
func (r *Repo) Remove(ctx context.Context, key string) error {
	query, args, err := r.sb.
		Delete(table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv delete: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}
