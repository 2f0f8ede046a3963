package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event emitted by the gradebook.
// Typed constants keep event handling exhaustive at compile time.
type EventType string

const (
	// EventTypeSummariesComputed is emitted when a learner summary
	// computation completes. One event per activity invocation with
	// result counters for downstream projections.
	EventTypeSummariesComputed EventType = "SummariesComputed"
)

// EventEnvelope wraps gradebook events with consistent metadata for
// projection processing: workflow context, idempotency, and a versioned
// payload.
type EventEnvelope struct {
	// IdempotencyKey ensures events are processed exactly once during
	// retries. Generated deterministically from the client key.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	// EventType identifies the event for routing and processing.
	EventType EventType `json:"event_type" validate:"required"`

	// Version enables event schema evolution. Starts at 1.
	Version int `json:"version" validate:"required,min=1"`

	// OccurredAt records when the event occurred.
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	// TenantID identifies the tenant for multi-tenant event filtering.
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`

	// WorkflowID identifies the workflow that generated this event.
	WorkflowID string `json:"workflow_id" validate:"required"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id" validate:"required"`

	// Payload contains the event-specific data as JSON.
	Payload json.RawMessage `json:"payload" validate:"required"`

	// Producer identifies the component that emitted this event.
	Producer string `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error { return validate.Struct(e) }

// SummariesComputedPayload contains the data for SummariesComputed
// events: which course/group was scored and how the pass went.
type SummariesComputedPayload struct {
	// CourseID identifies the course the computation ran against.
	CourseID string `json:"course_id" validate:"required"`

	// GroupID identifies the assignment group that was scored.
	GroupID string `json:"group_id" validate:"required"`

	// LearnerCount is the number of summaries produced.
	LearnerCount int `json:"learner_count" validate:"min=0"`

	// SubmissionCount is the number of submissions examined.
	SubmissionCount int `json:"submission_count" validate:"min=0"`

	// SkippedMalformed counts structurally bad submissions dropped.
	SkippedMalformed int `json:"skipped_malformed" validate:"min=0"`

	// EvaluatedAt is the instant used for due-date checks.
	EvaluatedAt time.Time `json:"evaluated_at" validate:"required"`
}

// Validate checks if the payload meets all requirements.
func (p *SummariesComputedPayload) Validate() error { return validate.Struct(p) }

// GenerateIdempotencyKey creates a deterministic key for event
// deduplication: H(client_idem_key || suffix). Retries and replays of
// the same logical event always produce the same key.
func GenerateIdempotencyKey(clientIdempotencyKey, eventSuffix string) string {
	hasher := sha256.New()
	hasher.Write([]byte(clientIdempotencyKey + eventSuffix))
	return hex.EncodeToString(hasher.Sum(nil))
}

// SummariesComputedIdempotencyKey generates the idempotency key for a
// SummariesComputed event: H(client_idem_key || ":summaries:1").
func SummariesComputedIdempotencyKey(clientIdempotencyKey string) string {
	return GenerateIdempotencyKey(clientIdempotencyKey, ":summaries:1")
}

// NewEventEnvelope assembles an envelope with current time and the
// supplied context. The caller sets the idempotency key afterwards.
func NewEventEnvelope(
	eventType EventType,
	tenantID uuid.UUID,
	workflowID, runID string,
	payload json.RawMessage,
	producer string,
) EventEnvelope {
	return EventEnvelope{
		EventType:  eventType,
		Version:    1,
		OccurredAt: time.Now(),
		TenantID:   tenantID,
		WorkflowID: workflowID,
		RunID:      runID,
		Payload:    payload,
		Producer:   producer,
	}
}

// NewSummariesComputedEvent creates a SummariesComputed event envelope
// from a completed computation.
func NewSummariesComputedEvent(
	tenantID uuid.UUID,
	workflowID, runID string,
	courseID, groupID string,
	output *ComputeSummariesOutput,
	clientIdempotencyKey string,
) (EventEnvelope, error) {
	payload := SummariesComputedPayload{
		CourseID:         courseID,
		GroupID:          groupID,
		LearnerCount:     output.LearnerCount,
		SubmissionCount:  output.SubmissionCount,
		SkippedMalformed: output.SkippedMalformed,
		EvaluatedAt:      output.EvaluatedAt,
	}
	if err := payload.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid summaries computed payload: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	envelope := NewEventEnvelope(
		EventTypeSummariesComputed,
		tenantID,
		workflowID,
		runID,
		payloadJSON,
		"activity.compute_learner_summaries",
	)
	envelope.IdempotencyKey = SummariesComputedIdempotencyKey(clientIdempotencyKey)

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid summaries computed envelope: %w", err)
	}
	return envelope, nil
}
