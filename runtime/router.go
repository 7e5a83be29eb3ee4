// Package runtime holds the live state of the relay: who is connected,
// which rooms they joined, and how events reach them.
// It carries no business rule.
package runtime

import (
	"context"
	"log/slog"
	"time"
	"webchat/contract"
	"webchat/domain/event"
)

var _ contract.IRouter = (*Router)(nil)

// Router fans a domain event out to every sink joined to the event's room.
//
// Delivery is best effort: a sink that does not accept the event within
// sinkTimeout is skipped and logged. Sinks are fed one after the other so
// two broadcasts on the same room reach each sink in call order.
type Router struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewRouter(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Router {
	return &Router{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// Broadcast returns how many sinks accepted the event.
func (r *Router) Broadcast(ctx context.Context, e event.DomainEvent) int {
	sinks := r.registry.GetSinksForRoom(e.RoomID())
	if len(sinks) == 0 {
		r.log.Debug("No member in room", "room", e.RoomID(), "event", e.Name())
		return 0
	}
	delivered := 0
	for _, sink := range sinks {
		if err := r.deliver(ctx, sink, e); err != nil {
			r.log.Warn("Failed to deliver event",
				"room", e.RoomID(),
				"event", e.Name(),
				"error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (r *Router) deliver(ctx context.Context, sink contract.EventSink, e event.DomainEvent) error {
	sinkCtx, cancel := context.WithTimeout(ctx, r.sinkTimeout)
	defer cancel()
	return sink.Consume(sinkCtx, e)
}
