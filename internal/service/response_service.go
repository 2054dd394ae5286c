package service

import "time"

// RefreshOptions bounds refresh cycles. Zero values keep the relay's
// default of retrying every satellite call until it succeeds.
type RefreshOptions struct {
	RetryLimit    int           // attempts per satellite call; 0 = until success
	RetryDeadline time.Duration // wall clock per retry loop; 0 = none
	CycleTimeout  time.Duration // wall clock per Poll; 0 = none
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "POLL", "POLL_FAILED", "RETRY_EXHAUSTED", "SENSOR_CREATED", "SENSOR_CREATE_FAILED"
}
