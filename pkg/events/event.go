package events

import (
	"time"

	"github.com/google/uuid"
)

const TypeTagsSuggested = "TAGS_SUGGESTED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TAGS_SUGGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// TagsSuggested describes one completed suggestion. It never carries the
// submitted content itself.
type TagsSuggested struct {
	EventId       uuid.UUID `json:"event_id"`
	ContentLength int       `json:"content_length"`
	SuggestedTags []string  `json:"suggested_tags"`
	TopScore      float64   `json:"top_score"`
	DurationMs    int64     `json:"duration_ms"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e TagsSuggested) EventType() string {
	return TypeTagsSuggested
}

func (e TagsSuggested) Payload() map[string]interface{} {
	return map[string]interface{}{
		"event_id":       e.EventId,
		"content_length": e.ContentLength,
		"suggested_tags": e.SuggestedTags,
		"top_score":      e.TopScore,
		"duration_ms":    e.DurationMs,
		"occurred_at":    e.OccurredAt,
	}
}

func (e TagsSuggested) Timestamp() time.Time {
	return e.OccurredAt
}
