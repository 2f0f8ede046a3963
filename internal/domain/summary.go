package domain

import (
	"encoding/json"
	"fmt"
)

// LearnerSummary is the per-learner result of a computation: the
// weighted average across all counted assignments plus the best
// percentage recorded for each of them.
//
// Scores is a plain mapping from assignment id to percentage (a ratio
// in [0,1]-ish space, not pre-multiplied by 100). The historical
// external format spreads those percentages as sibling fields next to
// "id" and "avg"; the custom JSON methods below flatten and unflatten
// at that boundary so Go code keeps a static shape.
type LearnerSummary struct {
	// ID identifies the learner.
	ID string `json:"id"`

	// Avg is totalScore / totalPossible over the learner's counted
	// assignments, after late penalties.
	Avg float64 `json:"avg"`

	// Scores maps assignment id to the best percentage seen for that
	// assignment.
	Scores map[string]float64 `json:"scores"`
}

// MarshalJSON flattens Scores into sibling fields keyed by assignment
// id, producing {"id": ..., "avg": ..., "<assignment_id>": ...}.
// Assignment ids named "id" or "avg" would collide with the fixed
// fields and are rejected.
func (s LearnerSummary) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(s.Scores)+2)
	flat["id"] = s.ID
	flat["avg"] = s.Avg
	for assignmentID, pct := range s.Scores {
		if assignmentID == "id" || assignmentID == "avg" {
			return nil, fmt.Errorf("assignment id %q collides with summary field", assignmentID)
		}
		flat[assignmentID] = pct
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reverses MarshalJSON: "id" and "avg" populate the fixed
// fields and every remaining numeric field becomes a Scores entry.
func (s *LearnerSummary) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	if raw, ok := flat["id"]; ok {
		if err := json.Unmarshal(raw, &s.ID); err != nil {
			return fmt.Errorf("learner summary id: %w", err)
		}
	}
	if raw, ok := flat["avg"]; ok {
		if err := json.Unmarshal(raw, &s.Avg); err != nil {
			return fmt.Errorf("learner summary avg: %w", err)
		}
	}

	s.Scores = make(map[string]float64, len(flat))
	for key, raw := range flat {
		if key == "id" || key == "avg" {
			continue
		}
		var pct float64
		if err := json.Unmarshal(raw, &pct); err != nil {
			return fmt.Errorf("learner summary score %q: %w", key, err)
		}
		s.Scores[key] = pct
	}
	return nil
}
