package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
)

// SettingsStore is a namespaced key/value store for documents owned by the agent.
type SettingsStore struct {
	db QueryInterceptor
}

func NewSettingsStore(db QueryInterceptor) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value stored under key or a ResourceNotFoundError.
func (s *SettingsStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError(key)
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Save writes value under key in a single statement.
func (s *SettingsStore) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
