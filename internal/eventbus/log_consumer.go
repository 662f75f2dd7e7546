package eventbus

import (
	"context"
	"log"

	"github.com/urmhq/urm/internal/event"
)

// LogConsumer logs all record mutation events for observability.
type LogConsumer struct{}

func NewLogConsumer() *LogConsumer { return &LogConsumer{} }

func (c *LogConsumer) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	log.Printf("event: %s %s:%s — %s", evt.EventType, evt.Entity, evt.EntityID, evt.Summary)
	return nil
}
