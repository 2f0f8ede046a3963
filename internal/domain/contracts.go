package domain

import "time"

// ComputeSummariesInput is the operation contract for the
// ComputeLearnerSummaries activity. It carries the three computation
// inputs plus the execution metadata the activity layer needs for
// deterministic behavior and event emission.
type ComputeSummariesInput struct {
	// Course anchors group membership validation.
	Course Course `json:"course" validate:"required"`

	// Group is the assignment group to score against.
	Group AssignmentGroup `json:"group" validate:"required"`

	// Submissions are the raw submissions, in input order. May be empty.
	Submissions []Submission `json:"submissions"`

	// EvaluatedAt fixes "now" for due-date checks. Workflow callers
	// should supply workflow.Now for deterministic replay; when zero,
	// the activity captures wall-clock time once at the start.
	EvaluatedAt time.Time `json:"evaluated_at,omitzero"`

	// ClientIdempotencyKey enables deterministic event generation.
	// Used to create consistent idempotency keys for emitted events.
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks if the input meets the operation contract requirements.
// Returns nil if valid, or a validation error describing the violation.
func (in *ComputeSummariesInput) Validate() error { return validate.Struct(in) }

// ComputeSummariesOutput is the result of the ComputeLearnerSummaries
// activity: the summaries themselves plus the counters downstream
// consumers use for data-quality reporting.
type ComputeSummariesOutput struct {
	// Summaries holds one entry per learner with at least one counted
	// submission, in learner first-appearance order.
	Summaries []LearnerSummary `json:"summaries"`

	// LearnerCount is len(Summaries), denormalized for projections.
	LearnerCount int `json:"learner_count" validate:"min=0"`

	// SubmissionCount is the total number of submissions examined,
	// including every skipped one.
	SubmissionCount int `json:"submission_count" validate:"min=0"`

	// SkippedMalformed counts submissions dropped for structural
	// problems. Unknown-assignment and not-yet-due skips are not
	// data-quality issues and are not counted.
	SkippedMalformed int `json:"skipped_malformed" validate:"min=0"`

	// EvaluatedAt is the instant actually used for due-date checks.
	EvaluatedAt time.Time `json:"evaluated_at" validate:"required"`
}

// Validate checks if the output meets the operation contract requirements.
func (out *ComputeSummariesOutput) Validate() error { return validate.Struct(out) }
