package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher publishes feed events to a Redis channel. It satisfies the
// notification worker's publisher dependency.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher over the given Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends a message on the channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	return p.client.Publish(ctx, channel, message).Err()
}

// SubscribeFeed subscribes to the notification feed channel and broadcasts
// each message to the hub until ctx is done.
func SubscribeFeed(ctx context.Context, client *redis.Client, channel string, hub *Hub, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			hub.Broadcast("notification", json.RawMessage(msg.Payload))
		}
	}
}
