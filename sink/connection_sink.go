package sink

import (
	"context"
	"fmt"
	"sync"
	"webchat/contract"
	"webchat/domain/event"
	"webchat/errors"
)

var _ contract.EventSink = (*ConnectionSink)(nil)

// ConnectionSink queues the events of one live connection.
// A single writer drains Events in FIFO order, so what is consumed first
// is written first. The channel is never closed; readers watch Done.
type ConnectionSink struct {
	events    chan event.DomainEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		events: make(chan event.DomainEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

// Consume enqueues the event or gives up when ctx ends first.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return errors.ErrSinkClosed
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		return errors.ErrSinkClosed
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", errors.ErrSinkTimeout, ctx.Err())
	}
}

func (s *ConnectionSink) Events() <-chan event.DomainEvent {
	return s.events
}

func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

// Close is safe to call more than once.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *ConnectionSink) Len() int {
	return len(s.events)
}
