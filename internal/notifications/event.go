package notifications

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Comment feed event types.
const (
	EventCommentCreated = "comment_created"
	EventCommentLiked   = "comment_liked"
	EventCommentUnliked = "comment_unliked"
)

// Event is the envelope delivered to feed subscribers.
type Event struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewEvent wraps payload in an envelope with a fresh id.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Payload: payload,
	}
}

// Encode renders the event as a JSON message.
func (e Event) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
