package domain

import (
	"time"
)

// Course is the course a gradebook computation runs against.
// It exists in the input contract only to anchor group membership:
// an AssignmentGroup must reference this course or the whole
// computation is rejected.
type Course struct {
	// ID uniquely identifies the course.
	ID string `json:"id" validate:"required"`
}

// Validate checks if the course meets the input contract requirements.
// Returns nil if valid, or a validation error describing the violation.
func (c *Course) Validate() error { return validate.Struct(c) }

// Assignment is a single gradable item within an assignment group.
//
// Grading model:
//   - DueAt: submissions for an assignment count only once the due date
//     has passed; submissions after DueAt take a late penalty.
//   - PointsPossible: maximum raw score. Must be non-negative; exactly
//     zero is legal but excludes the assignment from all averages
//     (a zero denominator can never contribute a percentage).
type Assignment struct {
	// ID uniquely identifies the assignment within its group.
	ID string `json:"id" validate:"required"`

	// DueAt is the assignment deadline. Compared against the clock
	// captured at the start of a computation, never re-read mid-pass.
	DueAt time.Time `json:"due_at"`

	// PointsPossible is the maximum raw score for this assignment.
	// Negative or non-finite values fail the whole computation with
	// an InvalidAssignmentError during indexing.
	PointsPossible float64 `json:"points_possible"`
}

// AssignmentGroup is an ordered collection of assignments belonging to
// one course. The group's weight is carried by callers that combine
// groups; it plays no part in the per-group computation here.
type AssignmentGroup struct {
	// ID uniquely identifies the assignment group.
	ID string `json:"id" validate:"required"`

	// CourseID references the owning course. Must equal the supplied
	// Course's ID or the computation fails with ErrGroupMismatch.
	CourseID string `json:"course_id" validate:"required"`

	// Assignments are the gradable items in this group, in input order.
	Assignments []Assignment `json:"assignments"`
}

// Validate checks if the assignment group meets the input contract
// requirements. Per-assignment business rules (non-negative, finite
// points) are enforced during indexing so the error can name the
// offending assignment.
func (g *AssignmentGroup) Validate() error { return validate.Struct(g) }

// SubmissionDetail holds the graded content of a submission.
type SubmissionDetail struct {
	// SubmittedAt is when the learner handed the work in. Strictly
	// after the assignment's DueAt means the late penalty applies.
	SubmittedAt time.Time `json:"submitted_at"`

	// Score is the raw score awarded before any late penalty.
	Score float64 `json:"score"`
}

// Submission links a learner's graded work to an assignment. Submissions
// missing any of LearnerID, AssignmentID, or Detail are malformed: they
// are skipped with a warning diagnostic rather than failing the run.
type Submission struct {
	// LearnerID identifies the learner who submitted the work.
	LearnerID string `json:"learner_id"`

	// AssignmentID references the assignment being submitted against.
	// Unknown assignment IDs are skipped silently.
	AssignmentID string `json:"assignment_id"`

	// Detail carries the submission time and raw score. A nil Detail
	// marks the submission as malformed.
	Detail *SubmissionDetail `json:"submission"`
}
