// Package activity provides common infrastructure for Temporal activity
// implementations: base types, workflow context extraction, context-safe
// logging, and best-effort event emission shared by the domain-specific
// activity packages.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/mmulamak/go-gradebook/pkg/events"
)

// WorkflowContext contains metadata extracted from the Temporal activity
// context, with fallback values for test scenarios.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	TenantID   string
	ActivityID string
}

// BaseActivities provides common infrastructure for activity types:
// event emission, context extraction, and safe logging that work both
// inside Temporal activity contexts and in plain test contexts.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities creates a BaseActivities with the provided event
// sink. The sink may be nil when event emission is not needed.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext safely extracts workflow context from the activity
// context. In a Temporal activity it returns the actual execution
// details; in test contexts (where activity.GetInfo panics) it generates
// stable test IDs instead.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if r := recover(); r != nil {
				// Test context. A fixed workflow/tenant UUID keeps
				// idempotency keys consistent across test runs.
				wfCtx.WorkflowID = "550e8400-e29b-41d4-a716-446655440000"
				wfCtx.RunID = "test-run-" + uuid.New().String()[:8]
				wfCtx.TenantID = "550e8400-e29b-41d4-a716-446655440000"
				wfCtx.ActivityID = "test-activity"
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
		wfCtx.TenantID = "default" // TODO: extract from workflow metadata once multi-tenancy lands
	}()

	return wfCtx
}

// EmitEventSafe provides best-effort event emission with a short retry.
// Event emission must never fail the primary activity operation, so
// failures are logged and swallowed.
func (b *BaseActivities) EmitEventSafe(
	ctx context.Context,
	envelope events.Envelope,
	description string,
) {
	if b.eventSink == nil {
		return
	}

	const maxAttempts = 2
	const retryDelay = 200 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				SafeLogError(ctx, fmt.Sprintf("Event emission cancelled: %s", description),
					"event_type", envelope.Type)
				return
			}
		}

		if err := b.eventSink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		SafeLog(ctx, fmt.Sprintf("Event emitted: %s", description),
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return
	}

	SafeLogError(ctx, fmt.Sprintf("Failed to emit %s after %d attempts", description, maxAttempts),
		"event_type", envelope.Type,
		"error", lastErr)
}

// SafeLog performs context-safe logging that works in both activity and
// test contexts. In a Temporal activity it uses the activity logger; in
// test contexts it silently ignores the call instead of panicking.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError is SafeLog at ERROR level for operational visibility.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}
