package models

import "time"

// Relay event types.
const (
	EventPoll               = "POLL"
	EventPollFailed         = "POLL_FAILED"
	EventRetryExhausted     = "RETRY_EXHAUSTED"
	EventSensorCreated      = "SENSOR_CREATED"
	EventSensorCreateFailed = "SENSOR_CREATE_FAILED"
)

// RelayEvent is a single audit log entry.
type RelayEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // POLL | POLL_FAILED | RETRY_EXHAUSTED | SENSOR_CREATED | SENSOR_CREATE_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
