package domain //nolint:testpackage // Need access to unexported validate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariesComputedIdempotencyKey_Deterministic(t *testing.T) {
	key1 := SummariesComputedIdempotencyKey("client-key-1")
	key2 := SummariesComputedIdempotencyKey("client-key-1")
	other := SummariesComputedIdempotencyKey("client-key-2")

	assert.Equal(t, key1, key2, "same client key must produce the same event key")
	assert.NotEqual(t, key1, other)
	assert.Len(t, key1, 64, "key should be a hex-encoded SHA-256")
}

func TestNewSummariesComputedEvent(t *testing.T) {
	output := &ComputeSummariesOutput{
		Summaries:        []LearnerSummary{{ID: "learner-1", Avg: 0.85}},
		LearnerCount:     1,
		SubmissionCount:  3,
		SkippedMalformed: 1,
		EvaluatedAt:      time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC),
	}

	envelope, err := NewSummariesComputedEvent(
		uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		"wf-1", "run-1",
		"course-1", "group-1",
		output,
		"client-key-1",
	)
	require.NoError(t, err)

	assert.Equal(t, EventTypeSummariesComputed, envelope.EventType)
	assert.Equal(t, 1, envelope.Version)
	assert.Equal(t, "wf-1", envelope.WorkflowID)
	assert.Equal(t, SummariesComputedIdempotencyKey("client-key-1"), envelope.IdempotencyKey)
	require.NoError(t, envelope.Validate())

	assert.Contains(t, string(envelope.Payload), `"course_id":"course-1"`)
	assert.Contains(t, string(envelope.Payload), `"skipped_malformed":1`)
}

func TestNewSummariesComputedEvent_RejectsBadPayload(t *testing.T) {
	output := &ComputeSummariesOutput{
		EvaluatedAt: time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC),
	}

	// Missing course id fails payload validation before any envelope
	// is assembled.
	_, err := NewSummariesComputedEvent(
		uuid.New(), "wf-1", "run-1", "", "group-1", output, "client-key-1")
	require.Error(t, err)
}
