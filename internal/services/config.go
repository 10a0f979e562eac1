package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/command"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
	"github.com/vinforge/forgedfate/pkg/validator"
)

// ExportConfigsKey is the settings key of the export configuration set.
const ExportConfigsKey = "forgedfate.api.export_configs"

type SettingsStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// ConfigService owns the export configuration set. It is the only writer of
// the persisted snapshot and keeps the in-memory copy in sync with it.
type ConfigService struct {
	store   SettingsStore
	builder *command.Builder

	mu      sync.RWMutex
	configs models.ConfigSet

	logger *zap.SugaredLogger
}

func NewConfigService(st SettingsStore, builder *command.Builder) *ConfigService {
	return &ConfigService{
		store:   st,
		builder: builder,
		configs: models.DefaultConfigSet(),
		logger:  zap.S().Named("config_service"),
	}
}

// Load reads the persisted set and merges it onto the defaults.
// It never fails: a missing or unreadable snapshot gives the defaults.
func (c *ConfigService) Load(ctx context.Context) models.ConfigSet {
	configs := c.read(ctx)

	c.mu.Lock()
	c.configs = configs
	c.mu.Unlock()

	return configs
}

func (c *ConfigService) read(ctx context.Context) models.ConfigSet {
	data, err := c.store.Get(ctx, ExportConfigsKey)
	if err != nil {
		if !srvErrors.IsResourceNotFoundError(err) {
			c.logger.Warnw("failed to read export configurations, using defaults", "error", err)
		}
		return models.DefaultConfigSet()
	}

	// Decoding onto the defaults keeps every default the snapshot does not
	// mention. Unknown keys are ignored.
	configs := models.DefaultConfigSet()
	if err := json.Unmarshal(data, &configs); err != nil {
		c.logger.Warnw("using default export configurations", "error", srvErrors.NewConfigCorruptedError(err))
		return models.DefaultConfigSet()
	}
	return configs
}

// Snapshot returns a copy of the current set.
func (c *ConfigService) Snapshot() models.ConfigSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configs
}

// Save persists the full set and makes it current.
func (c *ConfigService) Save(ctx context.Context, configs models.ConfigSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persist(ctx, configs)
}

// Update sets one field of one record, persists the set and returns the
// record's derived view. value may be any JSON encodable value, including
// json.RawMessage. The current set is unchanged when the write fails.
func (c *ConfigService) Update(ctx context.Context, kind models.DestinationKind, field string, value any) (*models.ExportView, error) {
	if !kind.Valid() {
		return nil, srvErrors.NewInvalidKindError(string(kind))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.configs.HasField(kind, field) {
		return nil, srvErrors.NewInvalidFieldError(string(kind), field, "unknown field")
	}

	patch, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, srvErrors.NewInvalidFieldError(string(kind), field, err.Error())
	}

	next := c.configs
	if err := next.Merge(kind, patch); err != nil {
		return nil, srvErrors.NewInvalidFieldError(string(kind), field, err.Error())
	}

	if err := c.persist(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Infow("export configuration updated", "kind", kind, "field", field)

	return c.view(kind)
}

// Replace merges a partial record onto the record of kind. Keys absent from
// partial keep their value, unknown keys are rejected.
func (c *ConfigService) Replace(ctx context.Context, kind models.DestinationKind, partial []byte) (*models.ExportView, error) {
	if !kind.Valid() {
		return nil, srvErrors.NewInvalidKindError(string(kind))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.configs
	if err := next.Merge(kind, partial); err != nil {
		return nil, srvErrors.NewInvalidFieldError(string(kind), "", err.Error())
	}

	if err := c.persist(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Infow("export configuration replaced", "kind", kind)

	return c.view(kind)
}

// View returns the record of kind with its command line and validation.
func (c *ConfigService) View(kind models.DestinationKind) (*models.ExportView, error) {
	if !kind.Valid() {
		return nil, srvErrors.NewInvalidKindError(string(kind))
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view(kind)
}

// Views returns the view of every kind in display order.
func (c *ConfigService) Views() ([]models.ExportView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]models.ExportView, 0, len(models.Kinds))
	for _, kind := range models.Kinds {
		v, err := c.view(kind)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (c *ConfigService) Command(kind models.DestinationKind) (string, error) {
	v, err := c.View(kind)
	if err != nil {
		return "", err
	}
	return v.Command, nil
}

func (c *ConfigService) Validate(kind models.DestinationKind) (models.ValidationResult, error) {
	v, err := c.View(kind)
	if err != nil {
		return models.ValidationResult{}, err
	}
	return v.Validation, nil
}

// must be protected by the caller
func (c *ConfigService) persist(ctx context.Context, configs models.ConfigSet) error {
	data, err := json.Marshal(configs)
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, ExportConfigsKey, data); err != nil {
		return fmt.Errorf("failed to persist export configurations: %w", err)
	}
	c.configs = configs
	return nil
}

// must be protected by the caller
func (c *ConfigService) view(kind models.DestinationKind) (*models.ExportView, error) {
	cfg, err := c.configs.Get(kind)
	if err != nil {
		return nil, srvErrors.NewInvalidKindError(string(kind))
	}

	cmd, err := c.builder.Build(kind, cfg)
	if err != nil {
		return nil, err
	}

	validation, err := validator.Validate(kind, cfg)
	if err != nil {
		return nil, err
	}

	return &models.ExportView{
		Kind:       kind,
		Config:     cfg,
		Command:    cmd,
		Validation: validation,
	}, nil
}
