package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/eventstore/postgresengine"
	"github.com/publiclibrary/lending-go/lending/core"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

// EventPublisher appends domain events to the per-patron streams of
// the Postgres event store. Each batch is appended conditionally on the
// stream's current max sequence number, so two publishers racing on the
// same stream surface as eventstore.ErrConcurrencyConflict.
type EventPublisher struct {
	store postgresengine.EventStore
}

// NewEventPublisher creates an EventPublisher on the given event store.
func NewEventPublisher(store postgresengine.EventStore) *EventPublisher {
	return &EventPublisher{store: store}
}

// Publish appends the events to the stream, in the given order.
func (p *EventPublisher) Publish(ctx context.Context, streamID uuid.UUID, events ...core.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	maxSequenceNumber, err := p.store.MaxSequenceNumber(ctx, streamID)
	if err != nil {
		return fmt.Errorf("reading stream position: %w", err)
	}

	correlationID := uuid.New()
	storableEvents := make([]eventstore.StorableEvent, 0, len(events))

	for _, event := range events {
		messageID := uuid.New()
		metadata := shell.BuildEventMetadata(messageID, messageID, correlationID)

		storableEvent, buildErr := shell.StorableEventFrom(event, metadata)
		if buildErr != nil {
			return buildErr
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return p.store.Append(ctx, streamID, maxSequenceNumber, storableEvents...)
}
