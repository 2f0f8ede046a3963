// Package gradebook implements Temporal activities for learner score
// aggregation. It wraps the pure domain computation with input contract
// validation, activity-safe logging, and event emission.
package gradebook

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/mmulamak/go-gradebook/internal/domain"
	"github.com/mmulamak/go-gradebook/pkg/activity"
)

// Activities handles gradebook-specific Temporal activities. It
// encapsulates the learner summary computation behind the activity
// contract so workflows can schedule, retry, and observe it.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates gradebook activities with the provided
// dependencies. The base activities provide logging and event emission
// infrastructure.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// ComputeLearnerSummaries computes per-learner weighted grade summaries
// for one assignment group.
//
// The operation:
//  1. Validates the input contract.
//  2. Fixes the evaluation instant (input.EvaluatedAt, or wall clock
//     once if zero).
//  3. Runs the pure domain computation with malformed-submission
//     diagnostics surfaced through the activity logger.
//  4. Emits a SummariesComputed event (best-effort).
//
// Every failure here is a data error, not an infrastructure error, so
// all errors are returned as non-retryable application errors: retrying
// the same inputs can never succeed.
func (a *Activities) ComputeLearnerSummaries(
	ctx context.Context,
	input domain.ComputeSummariesInput,
) (*domain.ComputeSummariesOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("ComputeLearnerSummaries", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ComputeLearnerSummaries activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"course_id", input.Course.ID,
		"group_id", input.Group.ID,
		"submission_count", len(input.Submissions))

	evaluatedAt := input.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now()
	}

	skippedMalformed := 0
	summaries, err := domain.ComputeLearnerSummaries(
		input.Course,
		input.Group,
		input.Submissions,
		domain.WithClock(func() time.Time { return evaluatedAt }),
		domain.WithDiagnostics(func(d domain.Diagnostic) {
			skippedMalformed++
			activity.SafeLog(ctx, "Skipped malformed submission",
				"index", d.Index,
				"learner_id", d.LearnerID,
				"assignment_id", d.AssignmentID,
				"reason", d.Reason)
		}),
	)
	if err != nil {
		return nil, nonRetryable("ComputeLearnerSummaries", err, "computation rejected input")
	}

	output := &domain.ComputeSummariesOutput{
		Summaries:        summaries,
		LearnerCount:     len(summaries),
		SubmissionCount:  len(input.Submissions),
		SkippedMalformed: skippedMalformed,
		EvaluatedAt:      evaluatedAt,
	}
	if err := output.Validate(); err != nil {
		return nil, nonRetryable("ComputeLearnerSummaries", err, "invalid output")
	}

	a.events.EmitSummariesComputed(ctx, input, output, wfCtx)

	activity.SafeLog(ctx, "ComputeLearnerSummaries completed",
		"learner_count", output.LearnerCount,
		"skipped_malformed", output.SkippedMalformed)

	return output, nil
}

// nonRetryable wraps errors as non-retryable Temporal application errors.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
