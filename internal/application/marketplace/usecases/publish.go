package usecases

import (
	"context"

	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/shared/goroutine"
	"github.com/servly-inc/servly/internal/shared/logger"
)

// publishAfterCommit dispatches domain events fire-and-forget. Callers invoke
// it only after their transaction has committed.
func publishAfterCommit(ctx context.Context, log logger.Interface, pub events.Publisher, evs ...events.DomainEvent) {
	if pub == nil {
		return
	}
	bgCtx := context.WithoutCancel(ctx)
	goroutine.SafeGo(log, "publish-domain-events", func() {
		for _, ev := range evs {
			if err := pub.Publish(bgCtx, ev); err != nil {
				log.Warnw("failed to publish domain event",
					"event_type", ev.GetEventType(),
					"aggregate_id", ev.GetAggregateID(),
					"error", err,
				)
			}
		}
	})
}
