package app

import (
	"time"

	"forumtrack/internal/tracking"
)

// Request describes one CLI invocation. Its ID tags every log line the
// invocation writes.
type Request struct {
	ID        string
	Operation string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewRequest creates a request with a fresh ID from idgen.
func NewRequest(operation string, idgen tracking.IDGenerator, clock tracking.Clock) *Request {
	return &Request{
		ID:        idgen.New(),
		Operation: operation,
		StartedAt: clock.Now(),
		Status:    "success",
	}
}

// Fail records err against the request and returns it unchanged.
func (r *Request) Fail(err error) error {
	if err != nil {
		r.Status = "error"
	}
	return err
}

// Elapsed returns how long the request has been running at now.
func (r *Request) Elapsed(now time.Time) time.Duration {
	return now.Sub(r.StartedAt)
}
