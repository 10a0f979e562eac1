package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/store"
)

const DefaultHistoryLimit = 50

// HistoryService gives access to the recorded test results.
type HistoryService struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

func NewHistoryService(st *store.Store) *HistoryService {
	return &HistoryService{store: st, logger: zap.S().Named("history_service")}
}

type HistoryParams struct {
	Kinds    []models.DestinationKind
	Mode     *models.ProbeMode
	Statuses []models.TestStatus
	Limit    uint64
}

// List returns the matching results, newest first, and the number of matching results.
func (h *HistoryService) List(ctx context.Context, params HistoryParams) ([]models.TestResult, int, error) {
	var filters []store.ListOption
	if len(params.Kinds) > 0 {
		filters = append(filters, store.ByKind(params.Kinds...))
	}
	if params.Mode != nil {
		filters = append(filters, store.ByMode(*params.Mode))
	}
	if len(params.Statuses) > 0 {
		filters = append(filters, store.ByStatus(params.Statuses...))
	}

	total, err := h.store.Results().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	results, err := h.store.Results().List(ctx, append(filters, store.WithLimit(limit))...)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// Prune deletes the results older than retention.
func (h *HistoryService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := h.store.Results().DeleteBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		h.logger.Infow("pruned test results", "count", n, "retention", retention)
	}
	return n, nil
}

// Latest returns the newest recorded result of every kind that has one.
func (h *HistoryService) Latest(ctx context.Context) (map[models.DestinationKind]models.TestResult, error) {
	latest := make(map[models.DestinationKind]models.TestResult, len(models.Kinds))
	for _, k := range models.Kinds {
		results, err := h.store.Results().List(ctx, store.ByKind(k), store.WithLimit(1))
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			latest[k] = results[0]
		}
	}
	return latest, nil
}
