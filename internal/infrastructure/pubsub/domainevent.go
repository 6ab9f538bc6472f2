// Package pubsub distributes domain events over Redis Pub/Sub. The engine
// publishes after commit; external collaborators (payment initiation,
// chat-room creation, notifications) subscribe from their own processes.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/servly-inc/servly/internal/domain/shared/events"
	"github.com/servly-inc/servly/internal/shared/logger"
)

const domainEventChannel = "servly:domain:events"

// envelope is the wire format: the event type tags the payload so consumers
// can route without knowing every Go type.
type envelope struct {
	EventType   string      `json:"event_type"`
	AggregateID uint        `json:"aggregate_id"`
	Timestamp   int64       `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// EventHandler is the callback invoked for each received envelope.
type EventHandler func(ctx context.Context, eventType string, payload json.RawMessage)

// RedisEventBus implements events.Publisher over Redis Pub/Sub.
type RedisEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisEventBus(client *redis.Client, log logger.Interface) *RedisEventBus {
	return &RedisEventBus{client: client, logger: log}
}

var _ events.Publisher = (*RedisEventBus)(nil)

func (b *RedisEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	data, err := json.Marshal(envelope{
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		Timestamp:   event.GetTimestamp().Unix(),
		Payload:     event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, domainEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish domain event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("domain event published",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

// Subscribe consumes the event channel until ctx is cancelled. Handlers run
// in background goroutines so a slow consumer never blocks the loop.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler EventHandler) error {
	pubsub := b.client.Subscribe(ctx, domainEventChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to domain events", "channel", domainEventChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("domain event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("domain event channel closed")
				return nil
			}

			var env struct {
				EventType string          `json:"event_type"`
				Payload   json.RawMessage `json:"payload"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warnw("failed to unmarshal domain event", "payload", msg.Payload, "error", err)
				continue
			}

			go handler(context.Background(), env.EventType, env.Payload)
		}
	}
}
