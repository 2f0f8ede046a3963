// Package domain provides the gradebook data model and the learner score
// aggregation algorithm. It defines the input records (course, assignment
// group, submissions), the error taxonomy for rejected inputs, and the
// single-pass computation that turns raw submissions into per-learner
// weighted averages.
//
// Aggregation model:
//   - Structural validation of course and group before any scoring.
//   - One assignment index build per call with per-assignment validation.
//   - Single ordered pass over submissions with skip rules for malformed,
//     unknown, not-yet-due, and zero-weight cases.
//   - Flat 10%-of-possible late penalty, floored at zero.
//   - Best-score-wins resolution for duplicate (learner, assignment) pairs.
//
// The computation is pure: no I/O, no shared state, and the only
// non-determinism (wall-clock "now" for due-date checks) is captured once
// per call and injectable for deterministic tests.
package domain

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"time"
)

// LatePenaltyFraction is the flat deduction for late submissions,
// expressed as a fraction of the assignment's possible points. The
// penalty is taken from possible points, not from the raw score, and
// the effective score never drops below zero.
const LatePenaltyFraction = 0.10

// Diagnostic describes a malformed submission that was skipped during a
// computation. Diagnostics are a side channel: they never change the
// returned summaries.
type Diagnostic struct {
	// Index is the submission's position in the input slice.
	Index int

	// LearnerID and AssignmentID echo whatever the submission carried,
	// possibly empty when those fields were the problem.
	LearnerID    string
	AssignmentID string

	// Reason states which structural requirement the submission failed.
	Reason string
}

// Option configures a single computation.
type Option func(*config)

type config struct {
	now          func() time.Time
	logger       *slog.Logger
	onDiagnostic func(Diagnostic)
}

// WithClock replaces the wall-clock source used for due-date checks.
// The clock is read exactly once at the start of the computation so a
// long pass cannot see an assignment flip from due to not-due.
func WithClock(now func() time.Time) Option { return func(c *config) { c.now = now } }

// WithLogger sets the logger that receives warning diagnostics for
// skipped malformed submissions. The default discards them.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithDiagnostics registers a callback invoked once per skipped
// malformed submission, in input order. Useful for callers that count
// or surface data-quality issues alongside the result.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(c *config) { c.onDiagnostic = fn }
}

// learnerTotals accumulates one learner's running sums during a pass.
// It lives only for the duration of a single computation.
type learnerTotals struct {
	totalScore    float64
	totalPossible float64
	scores        map[string]float64 // assignment id -> best percentage seen
}

// ComputeLearnerSummaries computes per-learner weighted grade summaries
// for one assignment group.
//
// Fatal conditions abort the whole call with no partial output:
// ErrInvalidInput for structurally invalid course/group records,
// ErrGroupMismatch when the group references a different course, and
// InvalidAssignmentError (wrapping ErrInvalidAssignment) for an
// assignment with negative or non-finite points. Malformed submissions
// are non-fatal: each one is reported through the configured logger and
// diagnostic callback, then skipped.
//
// The returned summaries are ordered by learner first appearance in the
// submission slice. Learners whose submissions were all skipped are
// omitted entirely.
func ComputeLearnerSummaries(
	course Course,
	group AssignmentGroup,
	submissions []Submission,
	opts ...Option,
) ([]LearnerSummary, error) {
	cfg := &config{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(cfg)
	}

	if err := course.Validate(); err != nil {
		return nil, fmt.Errorf("%w: course: %v", ErrInvalidInput, err)
	}
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("%w: assignment group: %v", ErrInvalidInput, err)
	}
	if group.CourseID != course.ID {
		return nil, fmt.Errorf("%w: group %q belongs to course %q, got course %q",
			ErrGroupMismatch, group.ID, group.CourseID, course.ID)
	}

	index, err := indexAssignments(group.Assignments)
	if err != nil {
		return nil, err
	}

	// Captured once; every due-date comparison in this pass uses it.
	now := cfg.now()

	totals := make(map[string]*learnerTotals)
	var order []string

	for i, sub := range submissions {
		if reason, ok := malformedReason(sub); ok {
			cfg.logger.Warn("skipping malformed submission",
				"index", i,
				"learner_id", sub.LearnerID,
				"assignment_id", sub.AssignmentID,
				"reason", reason)
			if cfg.onDiagnostic != nil {
				cfg.onDiagnostic(Diagnostic{
					Index:        i,
					LearnerID:    sub.LearnerID,
					AssignmentID: sub.AssignmentID,
					Reason:       reason,
				})
			}
			continue
		}

		assignment, ok := index[sub.AssignmentID]
		if !ok {
			continue
		}
		if assignment.DueAt.After(now) {
			// Not yet due; only fully-due assignments count.
			continue
		}
		if assignment.PointsPossible == 0 {
			continue
		}

		score := sub.Detail.Score
		if sub.Detail.SubmittedAt.After(assignment.DueAt) {
			score = math.Max(0, score-LatePenaltyFraction*assignment.PointsPossible)
		}
		percentage := score / assignment.PointsPossible

		lt, ok := totals[sub.LearnerID]
		if !ok {
			lt = &learnerTotals{scores: make(map[string]float64)}
			totals[sub.LearnerID] = lt
			order = append(order, sub.LearnerID)
		}

		prev, seen := lt.scores[assignment.ID]
		switch {
		case !seen:
			lt.scores[assignment.ID] = percentage
			lt.totalScore += score
			lt.totalPossible += assignment.PointsPossible
		case percentage > prev:
			// Strictly better duplicate: back out the old contribution
			// before adding the new one. Ties keep the first seen.
			lt.totalScore -= prev * assignment.PointsPossible
			lt.totalPossible -= assignment.PointsPossible
			lt.scores[assignment.ID] = percentage
			lt.totalScore += score
			lt.totalPossible += assignment.PointsPossible
		}
	}

	summaries := make([]LearnerSummary, 0, len(order))
	for _, id := range order {
		lt := totals[id]
		if lt.totalPossible == 0 {
			continue
		}
		scores := make(map[string]float64, len(lt.scores))
		maps.Copy(scores, lt.scores)
		summaries = append(summaries, LearnerSummary{
			ID:     id,
			Avg:    lt.totalScore / lt.totalPossible,
			Scores: scores,
		})
	}
	return summaries, nil
}

// indexAssignments builds the id -> assignment lookup for the scoring
// pass, validating every assignment first so a bad record fails the
// whole run instead of surfacing per-submission.
func indexAssignments(assignments []Assignment) (map[string]Assignment, error) {
	index := make(map[string]Assignment, len(assignments))
	for _, a := range assignments {
		switch {
		case a.ID == "":
			return nil, &InvalidAssignmentError{AssignmentID: a.ID, Reason: "missing id"}
		case math.IsNaN(a.PointsPossible) || math.IsInf(a.PointsPossible, 0):
			return nil, &InvalidAssignmentError{AssignmentID: a.ID, Reason: "points_possible is not a finite number"}
		case a.PointsPossible < 0:
			return nil, &InvalidAssignmentError{AssignmentID: a.ID, Reason: "negative points_possible"}
		}
		index[a.ID] = a
	}
	return index, nil
}

// malformedReason reports whether a submission fails the structural
// requirements, and which one. A NaN score is treated the same way: it
// cannot participate in arithmetic and is a data-quality issue, not a
// fatal error.
func malformedReason(sub Submission) (string, bool) {
	switch {
	case sub.LearnerID == "":
		return "missing learner_id", true
	case sub.AssignmentID == "":
		return "missing assignment_id", true
	case sub.Detail == nil:
		return "missing submission detail", true
	case math.IsNaN(sub.Detail.Score):
		return "score is not a number", true
	}
	return "", false
}
