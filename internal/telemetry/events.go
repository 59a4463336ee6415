package telemetry

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// observerPriority runs the observer after any subscriber that acts on an event
const observerPriority = 100

// ObserveSessionEvents subscribes to each event type and records every
// committed event as an event on the span of the call that produced it
func ObserveSessionEvents(bus events.EventBus, eventTypes []string) {
	for _, eventType := range eventTypes {
		bus.SubscribeFunc(eventType, observerPriority, recordEvent)
	}
}

func recordEvent(ctx context.Context, e events.Event) error {
	attrs := []attribute.KeyValue{attribute.String("event.type", e.Type())}
	sessionID := ""
	if src := e.Source(); src != nil {
		sessionID = src.GetID()
		attrs = append(attrs, attribute.String("session.id", sessionID))
	}

	trace.SpanFromContext(ctx).AddEvent(e.Type(), trace.WithAttributes(attrs...))
	slog.DebugContext(ctx, "Session event", "event_type", e.Type(), "session_id", sessionID)
	return nil
}
