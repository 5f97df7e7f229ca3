package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/lending/core"
)

// Subscriber consumes a published domain event. Projection and reaction
// handlers are wired into tests through this signature.
type Subscriber func(ctx context.Context, event core.DomainEvent) error

// RecordingPublisher is a threadsafe in-memory EventPublisher. It
// records every published event per stream and synchronously dispatches
// to any subscribed handlers, so scenario tests can assert on the full
// downstream effect of a command.
type RecordingPublisher struct {
	mu          sync.Mutex
	byStream    map[uuid.UUID][]core.DomainEvent
	all         []core.DomainEvent
	subscribers []Subscriber

	// PublishErr, when set, is returned by every Publish call.
	PublishErr error
}

// NewRecordingPublisher creates an empty publisher.
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{
		byStream: make(map[uuid.UUID][]core.DomainEvent),
	}
}

// Subscribe attaches a handler invoked for every published event.
func (p *RecordingPublisher) Subscribe(subscriber Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers = append(p.subscribers, subscriber)
}

// Publish records the events and dispatches them to all subscribers.
func (p *RecordingPublisher) Publish(ctx context.Context, streamID uuid.UUID, events ...core.DomainEvent) error {
	p.mu.Lock()

	if p.PublishErr != nil {
		p.mu.Unlock()
		return p.PublishErr
	}

	p.byStream[streamID] = append(p.byStream[streamID], events...)
	p.all = append(p.all, events...)
	subscribers := append([]Subscriber(nil), p.subscribers...)

	p.mu.Unlock()

	for _, subscriber := range subscribers {
		for _, event := range events {
			if err := subscriber(ctx, event); err != nil {
				return err
			}
		}
	}

	return nil
}

// Events returns all published events in publish order.
func (p *RecordingPublisher) Events() []core.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]core.DomainEvent(nil), p.all...)
}

// EventsForStream returns the events published to one stream.
func (p *RecordingPublisher) EventsForStream(streamID uuid.UUID) []core.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]core.DomainEvent(nil), p.byStream[streamID]...)
}
