package mq

import (
	"context"
	"encoding/json"
	"log"

	"cityguide/models"
	"cityguide/rdx"
)

const eventsChannel = "cityguide-events"

// Emit publishes an entity event to Redis for downstream consumers
// (search indexing, cache warmers). Failures are logged, never surfaced:
// events are advisory, not part of any request's contract.
func Emit(ctx context.Context, eventName string, content models.Index) {
	if rdx.Conn == nil {
		return
	}

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}
