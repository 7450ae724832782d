package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventLoginSucceeded EventType = "auth.login_succeeded"
	EventLoginFailed    EventType = "auth.login_failed"
	EventLoggedOut      EventType = "auth.logout"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginFailedPayload carries the identifier tried, never the password.
type LoginFailedPayload struct {
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Reason string `json:"reason"`
}

// LoggedOutPayload payload.
type LoggedOutPayload struct {
	TokenID string `json:"token_id"`
}
