package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn      EventType = "user_logged_in"
	EventUserLoggedOut     EventType = "user_logged_out"
	EventPurchaseCompleted EventType = "purchase_completed"
	EventAccessDenied      EventType = "access_denied"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginPayload payload.
type LoginPayload struct {
	Username string `json:"username"`
}

// PurchaseCompletedPayload payload.
type PurchaseCompletedPayload struct {
	Username string `json:"username"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Path   string `json:"path"`
	Class  string `json:"class"`
	Reason string `json:"reason"`
}
