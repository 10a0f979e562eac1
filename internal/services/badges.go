package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/notify"
)

// BadgeBoard holds the connection status badge of every kind and publishes its changes.
type BadgeBoard struct {
	mu        sync.Mutex
	badges    map[models.DestinationKind]models.Badge
	publisher notify.Publisher
	logger    *zap.SugaredLogger
}

func NewBadgeBoard(publisher notify.Publisher) *BadgeBoard {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	badges := make(map[models.DestinationKind]models.Badge, len(models.Kinds))
	for _, kind := range models.Kinds {
		badges[kind] = models.NewBadge(kind)
	}
	return &BadgeBoard{
		badges:    badges,
		publisher: publisher,
		logger:    zap.S().Named("badges"),
	}
}

func (b *BadgeBoard) Get(kind models.DestinationKind) models.Badge {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.badges[kind]
}

// All returns the badges in display order.
func (b *BadgeBoard) All() []models.Badge {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := make([]models.Badge, 0, len(models.Kinds))
	for _, kind := range models.Kinds {
		all = append(all, b.badges[kind])
	}
	return all
}

// BeginTest marks an interactive test as running.
// It returns false when one is already running for the kind.
func (b *BadgeBoard) BeginTest(kind models.DestinationKind) bool {
	b.mu.Lock()
	current := b.badges[kind]
	if current.InFlight {
		b.mu.Unlock()
		return false
	}
	badge := models.Badge{
		Kind:      kind,
		State:     models.BadgeStateTesting,
		Text:      "Testing connection...",
		InFlight:  true,
		UpdatedAt: time.Now(),
	}
	b.badges[kind] = badge
	b.mu.Unlock()

	b.publish(badge)
	return true
}

// CompleteTest shows the outcome of an interactive test and clears the in-flight indicator.
func (b *BadgeBoard) CompleteTest(kind models.DestinationKind, status models.TestStatus) {
	state, text := interactiveBadge(status)
	badge := models.Badge{
		Kind:      kind,
		State:     state,
		Text:      text,
		UpdatedAt: time.Now(),
	}

	b.mu.Lock()
	b.badges[kind] = badge
	b.mu.Unlock()

	b.publish(badge)
}

// ApplyBackground shows the outcome of a monitor test. A badge that was
// never tested or is showing a running interactive test is left alone, and
// so is every unknown status. It reports whether the badge changed.
func (b *BadgeBoard) ApplyBackground(kind models.DestinationKind, status models.TestStatus) bool {
	state, text, ok := backgroundBadge(status)
	if !ok {
		return false
	}

	b.mu.Lock()
	current := b.badges[kind]
	if current.State == models.BadgeStateTesting || current.State == models.BadgeStateNotTested || current.InFlight {
		b.mu.Unlock()
		return false
	}
	badge := models.Badge{
		Kind:      kind,
		State:     state,
		Text:      text,
		Auto:      true,
		UpdatedAt: time.Now(),
	}
	b.badges[kind] = badge
	b.mu.Unlock()

	b.publish(badge)
	return true
}

func (b *BadgeBoard) publish(badge models.Badge) {
	event := models.Event{Type: models.EventBadge, Kind: badge.Kind, Badge: &badge, Timestamp: badge.UpdatedAt}
	if err := b.publisher.Publish(context.Background(), event); err != nil {
		b.logger.Warnw("failed to publish badge", "kind", badge.Kind, "error", err)
	}
}

func interactiveBadge(status models.TestStatus) (models.BadgeState, string) {
	switch status {
	case models.TestStatusSuccess:
		return models.BadgeStateSuccess, "Connection successful"
	case models.TestStatusWarning:
		return models.BadgeStateWarning, "Connection warning"
	case models.TestStatusError, models.TestStatusTimeout:
		return models.BadgeStateError, "Connection failed"
	default:
		return models.BadgeStateUnknown, "Unknown status"
	}
}

func backgroundBadge(status models.TestStatus) (models.BadgeState, string, bool) {
	switch status {
	case models.TestStatusSuccess:
		return models.BadgeStateSuccess, "Connected (auto)", true
	case models.TestStatusWarning:
		return models.BadgeStateWarning, "Connection issues (auto)", true
	case models.TestStatusError, models.TestStatusTimeout:
		return models.BadgeStateError, "Disconnected (auto)", true
	default:
		return "", "", false
	}
}
