package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Workflow events published after a successful commit.
const (
	EventPOCreated       = "po.created"
	EventDeliveryUpdated = "delivery.updated"
	EventChainUpdated    = "chain.updated"
)

// Notifier publishes workflow events; satisfied by *worker.Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, event string, fields map[string]string) error
}

// notify is fire-and-forget: the write already committed, so a queue outage
// is logged, not returned.
func notify(ctx context.Context, n Notifier, event string, fields map[string]string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, event, fields); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("failed to enqueue notification")
	}
}
