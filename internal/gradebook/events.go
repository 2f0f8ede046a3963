package gradebook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmulamak/go-gradebook/internal/domain"
	"github.com/mmulamak/go-gradebook/pkg/activity"
	"github.com/mmulamak/go-gradebook/pkg/events"
)

// EventEmitter handles event emission for the gradebook domain. Event
// emission is best-effort; failures are logged without affecting the
// computation result.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an EventEmitter using the provided base
// activities for sink access and logging.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitSummariesComputed emits a SummariesComputed event carrying the
// computation counters for downstream projections.
func (e *EventEmitter) EmitSummariesComputed(
	ctx context.Context,
	input domain.ComputeSummariesInput,
	output *domain.ComputeSummariesOutput,
	wfCtx activity.WorkflowContext,
) {
	tenantID, err := parseUUID(wfCtx.TenantID, "tenant")
	if err != nil {
		activity.SafeLogError(ctx, "Failed to parse tenant ID for SummariesComputed event",
			"tenant_id", wfCtx.TenantID,
			"error", err)
		return
	}

	domainEvent, err := domain.NewSummariesComputedEvent(
		tenantID,
		wfCtx.WorkflowID,
		wfCtx.RunID,
		input.Course.ID,
		input.Group.ID,
		output,
		input.ClientIdempotencyKey,
	)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create SummariesComputed event",
			"course_id", input.Course.ID,
			"group_id", input.Group.ID,
			"error", err)
		return
	}

	envelope := convertDomainEventToEnvelope(domainEvent)

	e.base.EmitEventSafe(ctx, envelope, fmt.Sprintf("SummariesComputed[%s/%s]", input.Course.ID, input.Group.ID))
}

// parseUUID parses a string as UUID with a descriptive error. The
// "default" tenant used in test contexts maps to a fixed UUID.
func parseUUID(input, context string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(input)
	if err != nil {
		if input == "default" {
			return uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), nil
		}
		return uuid.Nil, fmt.Errorf("invalid %s UUID '%s': %w", context, input, err)
	}
	return parsed, nil
}

// convertDomainEventToEnvelope bridges the domain event envelope to the
// generic event infrastructure format.
func convertDomainEventToEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             domainEvent.IdempotencyKey, // deterministic event IDs
		Type:           string(domainEvent.EventType),
		Source:         domainEvent.Producer,
		Version:        fmt.Sprintf("%d.0.0", domainEvent.Version),
		Timestamp:      domainEvent.OccurredAt,
		IdempotencyKey: domainEvent.IdempotencyKey,
		TenantID:       domainEvent.TenantID.String(),
		WorkflowID:     domainEvent.WorkflowID,
		RunID:          domainEvent.RunID,
		Payload:        domainEvent.Payload,
	}
}
