package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/content-gateway/internal/events"
	"github.com/spec-kit/content-gateway/internal/observability"
)

// StartAuditWorker subscribes audit sinks to security-relevant events:
// every event is logged, and denials additionally feed the denial counters.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil || logger == nil {
		return
	}

	audit := func(message string) events.EventHandler {
		return func(_ context.Context, event events.Event) error {
			logger.Info(message,
				zap.String("event_id", event.ID),
				zap.String("subject_id", event.SubjectID),
				zap.Time("at", event.Timestamp),
				zap.Any("payload", event.Payload),
			)
			return nil
		}
	}

	dispatcher.Subscribe(events.EventUserLoggedIn, audit("user logged in"))
	dispatcher.Subscribe(events.EventUserLoggedOut, audit("user logged out"))
	dispatcher.Subscribe(events.EventPurchaseCompleted, audit("purchase completed"))
	dispatcher.Subscribe(events.EventAccessDenied, audit("access denied"))

	dispatcher.Subscribe(events.EventAccessDenied, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.AccessDeniedPayload); ok {
			metrics.RecordDenied(payload.Class, payload.Reason)
		}
		return nil
	})
}
