package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/viant/nucleus/service/messaging"
)

// Publisher publishes typed events. An event is queued only while a listener
// consumes the queue, and copied to the catch-all queue while a catch-all
// listener is set.
type Publisher[T any] struct {
	queue     messaging.Queue[Event[T]]
	forward   func(ctx context.Context, event *Event[any]) error
	listening atomic.Bool
}

// NewPublisher creates a publisher
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish publishes an event
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = time.Now()
	if p.forward != nil {
		if err := p.forward(ctx, &Event[any]{
			Context:   event.Context,
			CreatedAt: event.CreatedAt,
			Metadata:  event.Metadata,
			Data:      event.Data,
		}); err != nil {
			return err
		}
	}
	if !p.listening.Load() {
		return nil
	}
	return p.queue.Publish(ctx, event)
}

// Consume returns the next event
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}

func (p *Publisher[T]) mute() {
	p.listening.Store(false)
}
