package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nmoran/gamedrop/pkg/deals"
	"github.com/nmoran/gamedrop/pkg/game"
	"github.com/nmoran/gamedrop/pkg/relevance"
)

// Notification is the payload sent to every configured destination.
// Relevance records are index-aligned with Games.
type Notification struct {
	Games       []game.FreeGame    `json:"games"`
	Relevance   []relevance.Record `json:"relevance"`
	Deals       []deals.Deal       `json:"deals,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Notifier delivers a notification to a specific destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n *Notification) error
}

// Manager broadcasts notifications to all registered notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a notification manager.
func NewManager(notifiers []Notifier) *Manager {
	return &Manager{notifiers: notifiers}
}

// HasNotifiers returns true if at least one destination is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Broadcast sends a notification to every destination, collecting errors.
func (m *Manager) Broadcast(ctx context.Context, n *Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}
