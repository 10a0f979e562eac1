// Package notify fans badge, result and monitor events out to live subscribers.
package notify

import (
	"context"
	"errors"

	"github.com/vinforge/forgedfate/internal/models"
)

type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, models.Event) error { return nil }
