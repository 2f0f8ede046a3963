// Package worker exposes helpers to register gradebook activities with a
// Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/mmulamak/go-gradebook/internal/gradebook"
	"github.com/mmulamak/go-gradebook/pkg/activity"
	"github.com/mmulamak/go-gradebook/pkg/events"
)

// RegisterAll registers all gradebook activities with the Temporal
// worker. Call once during worker initialization before starting the
// worker; registration is not thread-safe.
//
// The sink receives computation events; pass nil to disable emission.
func RegisterAll(w sdkworker.Worker, sink events.EventSink) {
	if sink == nil {
		sink = &events.NoOpEventSink{}
	}

	base := activity.NewBaseActivities(sink)
	gradebookActivities := gradebook.NewActivities(base)

	w.RegisterActivity(gradebookActivities.ComputeLearnerSummaries)
}
