// Package events provides the in-process event bus used to fan diagnostic
// trace events out to streaming clients.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies a category of event on the bus.
type EventType string

const (
	// NetworkRebuilt is emitted when the holographic network is rebuilt.
	NetworkRebuilt EventType = "network_rebuilt"
	// StateEncoded is emitted after a logical bit is encoded.
	StateEncoded EventType = "state_encoded"
	// RecoveryTested is emitted after an erasure pattern is evaluated.
	RecoveryTested EventType = "recovery_tested"
	// CalibrationUpdated is emitted when a new calibration snapshot is stored.
	CalibrationUpdated EventType = "calibration_updated"
)

// Event is a single bus message.
type Event struct {
	Type      EventType              `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Bus is a simple publish/subscribe fan-out. Subscribers receive events on
// buffered channels; a slow subscriber drops events rather than blocking
// publishers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	log    zerolog.Logger
}

// NewBus creates an event bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
		log:  log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its channel along with an
// unsubscribe function. The unsubscribe function closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 64)
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

// Publish sends an event to all current subscribers.
func (b *Bus) Publish(eventType EventType, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.log.Debug().Str("type", string(eventType)).Msg("Dropping event for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
