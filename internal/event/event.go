package event

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// Topic is a hierarchical event type such as "assist.request.applied".
type Topic string

// Matches returns true if the topic matches a subscription pattern.
// Patterns are either exact topics or end in ".*", which matches any
// suffix ("assist.request.*" matches "assist.request.applied").
func (t Topic) Matches(pattern Topic) bool {
	if t == pattern {
		return true
	}
	if prefix, ok := strings.CutSuffix(string(pattern), ".*"); ok {
		return strings.HasPrefix(string(t), prefix+".")
	}
	return false
}

// Event is a published notification. Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event type.
	Topic Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with the given topic, payload, and source.
func New(topic Topic, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// generateID returns a random 16-hex-character event id.
func generateID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(b[:])
}
