// Package event defines the domain events published after successful record
// mutations. Consumers (the log consumer, the live-refresh hub) subscribe
// through the event bus.
package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types for user record mutations.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// DomainEvent describes one committed record mutation.
type DomainEvent struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	Entity     string    `json:"entity"` // always "user" for now
	EntityID   string    `json:"entity_id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newID() string { return uuid.New().String() }

// NewUserCreated records a successful create.
func NewUserCreated(entityID string) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  UserCreated,
		Entity:     "user",
		EntityID:   entityID,
		Summary:    fmt.Sprintf("user %s created", entityID),
		OccurredAt: time.Now(),
	}
}

// NewUserUpdated records a successful update.
func NewUserUpdated(entityID string) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  UserUpdated,
		Entity:     "user",
		EntityID:   entityID,
		Summary:    fmt.Sprintf("user %s updated", entityID),
		OccurredAt: time.Now(),
	}
}

// NewUserDeleted records a successful delete.
func NewUserDeleted(entityID string) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  UserDeleted,
		Entity:     "user",
		EntityID:   entityID,
		Summary:    fmt.Sprintf("user %s deleted", entityID),
		OccurredAt: time.Now(),
	}
}
