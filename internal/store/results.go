package store

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vinforge/forgedfate/internal/models"
)

// ListOption narrows a result history query.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// ResultStore keeps the history of connectivity test results.
type ResultStore struct {
	db QueryInterceptor
}

func NewResultStore(db QueryInterceptor) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Insert(ctx context.Context, result models.TestResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	var responseTime any
	if result.ResponseTimeMs != nil {
		responseTime = int64(*result.ResponseTimeMs)
	}

	createdAt := result.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := sq.Insert("test_results").
		Columns("id", "kind", "mode", "status", "response_time_ms", "data", "created_at").
		Values(uuid.NewString(), string(result.Kind), string(result.Mode), string(result.Status), responseTime, string(data), createdAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// List returns results, newest first.
func (s *ResultStore) List(ctx context.Context, opts ...ListOption) ([]models.TestResult, error) {
	builder := sq.Select("data").
		From("test_results").
		OrderBy("created_at DESC")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.TestResult{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r models.TestResult
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (s *ResultStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("test_results")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// DeleteBefore removes results older than t.
func (s *ResultStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	query, args, err := sq.Delete("test_results").
		Where(sq.Lt{"created_at": t.UTC()}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ByKind filters by destination kind (OR logic).
func ByKind(kinds ...models.DestinationKind) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(kinds) == 0 {
			return b
		}
		values := make([]string, 0, len(kinds))
		for _, k := range kinds {
			values = append(values, string(k))
		}
		return b.Where(sq.Eq{"kind": values})
	}
}

// ByMode filters by probe mode.
func ByMode(mode models.ProbeMode) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"mode": string(mode)})
	}
}

// ByStatus filters by result status (OR logic).
func ByStatus(statuses ...models.TestStatus) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		values := make([]string, 0, len(statuses))
		for _, st := range statuses {
			values = append(values, string(st))
		}
		return b.Where(sq.Eq{"status": values})
	}
}

// WithLimit sets the LIMIT clause.
func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}
