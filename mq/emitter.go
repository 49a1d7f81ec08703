package mq

import (
	"context"
	"encoding/json"
	"log"

	"gradbridge/rdx"
)

const channel = "content-events"

// ContentEvent describes a committed admin mutation.
type ContentEvent struct {
	EntityType string `json:"entity_type"` // countries | colleges | exams | blogs
	Method     string `json:"method"`      // created | updated | deleted
	EntityID   string `json:"entity_id"`
}

// Emit publishes a content-change event to Redis. Fire and forget; a
// lost event only means the cached responses age out by TTL instead.
func Emit(ctx context.Context, event ContentEvent) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event: %v", err)
	}
}

// StartInvalidationWorker subscribes to content-change events and drops
// the cached public responses for the mutated entity type.
func StartInvalidationWorker() {
	if rdx.Conn == nil {
		return
	}
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[InvalidationWorker] Listening for content events...")

	for msg := range ch {
		var event ContentEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[InvalidationWorker] Failed to parse event: %v", err)
			continue
		}
		rdx.Invalidate(ctx, event.EntityType)
		log.Printf("[InvalidationWorker] Invalidated %s after %s of %s",
			event.EntityType, event.Method, event.EntityID)
	}
}
