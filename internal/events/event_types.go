package events

import (
	"time"

	"github.com/spec-kit/news-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserAuthenticated EventType = "user_authenticated"
	EventUserCreated       EventType = "user_created"
	EventUserDeleted       EventType = "user_deleted"
	EventTokenCreated      EventType = "admin_token_created"
	EventTokenRevoked      EventType = "admin_token_revoked"
)

// Event represents an administrative action emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserAuthenticatedPayload payload.
type UserAuthenticatedPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// TokenCreatedPayload payload.
type TokenCreatedPayload struct {
	TokenID     string    `json:"token_id"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	TokenID string `json:"token_id"`
}
