package catalogue

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// BookInstanceAddedEventType is the event type identifier.
const BookInstanceAddedEventType = "BookInstanceAdded"

// BookInstanceAdded is the notification published by the catalogue
// context when a physical book instance is registered. It is an
// external contract, hence the explicit json tags.
type BookInstanceAdded struct {
	InstanceID    string    `json:"instance_id"`
	ISBN          string    `json:"isbn"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Price         string    `json:"price"`
	IsCirculating bool      `json:"is_circulating"`
	AddedAt       time.Time `json:"added_at"`
}

// UnmarshalBookInstanceAdded parses the notification payload.
func UnmarshalBookInstanceAdded(payload []byte) (BookInstanceAdded, error) {
	var event BookInstanceAdded

	if err := jsoniter.ConfigFastest.Unmarshal(payload, &event); err != nil {
		return BookInstanceAdded{}, err
	}

	return event, nil
}
