package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/shoplist/internal/domain"
)

var tracer = otel.Tracer("usecase")

// publish never fails the caller: the mutation is already committed.
func publish(ctx context.Context, span trace.Span, events EventPublisher, event domain.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		span.RecordError(err)
		slog.WarnContext(
			ctx, "failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
			slog.String("module", "usecase"),
		)
	}
}
