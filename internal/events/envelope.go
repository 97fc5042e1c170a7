package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const Producer = "cym-store"

// Envelope wraps every published payload with its identity and routing data.
type Envelope[T any] struct {
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	EventID      string    `json:"eventId"`
	RequestID    string    `json:"requestId,omitempty"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	Payload      T         `json:"payload"`
}

func NewEnvelope[T any](name string, version int, partitionKey string, payload T) Envelope[T] {
	return Envelope[T]{
		EventName:    name,
		EventVersion: version,
		EventID:      uuid.NewString(),
		Producer:     Producer,
		PartitionKey: partitionKey,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
}

func (e Envelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

// RoutingKey is "<name>.v<version>", the key bound on the topic exchange.
func RoutingKey(name string, version int) string {
	return fmt.Sprintf("%s.v%d", name, version)
}
