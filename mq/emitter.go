package mq

import (
	"context"
	"encoding/json"

	"mealprep/utils"
)

// EventsChannel is the Redis channel domain events are published on.
const EventsChannel = "mealprep-events"

// Index represents a domain event to be emitted.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	UserId     string `json:"user_id"`
}

// Publisher is the subset of the Redis client the emitter needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Emitter publishes domain events. Emit never fails the caller; delivery
// problems are logged.
type Emitter interface {
	Emit(ctx context.Context, eventName string, content Index)
}

type RedisEmitter struct {
	pub Publisher
}

func NewEmitter(pub Publisher) *RedisEmitter {
	return &RedisEmitter{pub: pub}
}

// Emit publishes the event to EventsChannel.
func (e *RedisEmitter) Emit(ctx context.Context, eventName string, content Index) {
	log := utils.LoggerFrom(ctx).WithField("event", eventName)

	data, err := json.Marshal(struct {
		Event string `json:"event"`
		Index
	}{Event: eventName, Index: content})
	if err != nil {
		log.WithError(err).Warn("failed to marshal event content")
		return
	}

	if err := e.pub.Publish(ctx, EventsChannel, data); err != nil {
		log.WithError(err).Warn("failed to publish event")
		return
	}
	log.WithField("entity_id", content.EntityId).Debug("event published")
}

// Nop drops every event.
type Nop struct{}

func (Nop) Emit(context.Context, string, Index) {}
