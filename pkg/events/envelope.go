// Package events provides the generic event infrastructure for domain
// event emission. It defines the Envelope type for wrapping gradebook
// events with consistent metadata and the EventSink interface for event
// storage/transmission.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps domain events with consistent metadata for reliable
// event processing. It is a generic container for any event payload with
// standard fields for routing, idempotency, and observability.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing.
	// Example: "SummariesComputed".
	Type string `json:"type"`

	// Source identifies the component that emitted this event.
	// Example: "gradebook-activity".
	Source string `json:"source"`

	// Version enables schema evolution and backward compatibility.
	// Start at "1.0.0" and increment following semantic versioning.
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey ensures exactly-once processing during retries.
	IdempotencyKey string `json:"idempotency_key"`

	// TenantID identifies the tenant for multi-tenant filtering.
	TenantID string `json:"tenant_id"`

	// WorkflowID identifies the workflow that triggered this event.
	WorkflowID string `json:"workflow_id"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id"`

	// Payload contains the event data as JSON. Schema varies by Type
	// and Version.
	Payload json.RawMessage `json:"payload"`
}

// EventSink defines the interface for emitting events to downstream
// consumers. Implementations could include database outbox patterns,
// message queues, or simple file/log outputs.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	// Implementations should treat duplicate idempotency keys as no-ops
	// and return quickly. Callers must not fail their primary operation
	// on a sink error; events matter for observability, not correctness.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null EventSink for testing or when events are
// disabled. All Append calls succeed immediately without side effects.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error { return nil }
