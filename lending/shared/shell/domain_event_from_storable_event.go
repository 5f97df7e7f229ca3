package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/lending/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.HoldPlacedEventType:
		return unmarshalHoldPlaced(storableEvent.PayloadJSON)

	case core.HoldCancelledEventType:
		return unmarshalHoldCancelled(storableEvent.PayloadJSON)

	case core.HoldExpiredEventType:
		return unmarshalHoldExpired(storableEvent.PayloadJSON)

	case core.BookCheckedOutEventType:
		return unmarshalBookCheckedOut(storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalBookReturned(storableEvent.PayloadJSON)

	case core.BookOverdueEventType:
		return unmarshalBookOverdue(storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalHoldPlaced(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.HoldPlaced)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.HoldPlaced{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalHoldCancelled(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.HoldCancelled)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.HoldCancelled{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalHoldExpired(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.HoldExpired)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.HoldExpired{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalBookCheckedOut(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.BookCheckedOut)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.BookCheckedOut{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalBookReturned(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.BookReturned)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.BookReturned{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalBookOverdue(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.BookOverdue)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return core.BookOverdue{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
