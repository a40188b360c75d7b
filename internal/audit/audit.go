// Package audit records gateway activity to an external trail.
package audit

import (
	"context"
	"sync"
	"time"
)

// Event kinds.
const (
	KindMessage    = "message"
	KindBroadcast  = "broadcast"
	KindEscalation = "escalation"
)

// Event is a single audit record.
type Event struct {
	Kind      string    `json:"kind"`
	TraceID   string    `json:"trace_id,omitempty"`
	Sender    string    `json:"sender,omitempty"`
	Recipient string    `json:"recipient,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher writes audit events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher discards all events. Used when no audit sink is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev Event) error { return nil }
func (NopPublisher) Close() error                                { return nil }

// Recorder is an in-process Publisher implementation backed by a slice.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an in-process recorder for testing.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(ctx context.Context, ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
