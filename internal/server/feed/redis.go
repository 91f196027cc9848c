package feed

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix namespaces the Redis pub/sub channels used by the server.
const ChannelPrefix = "securechat:"

// RedisNotifier shares change signals between server instances over Redis
// PUBLISH/SUBSCRIBE.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier connects to redisURL (redis://...) and checks the
// connection.
func NewRedisNotifier(ctx context.Context, redisURL string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

func channelName(topic string) string {
	return ChannelPrefix + topic
}

func (n *RedisNotifier) Publish(ctx context.Context, topic string) error {
	return n.client.Publish(ctx, channelName(topic), "").Err()
}

func (n *RedisNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ps := n.client.Subscribe(ctx, channelName(topic))

	// Wait for the subscription to be confirmed so publishes that follow
	// this call are not missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", topic, err)
	}

	out := make(chan struct{}, 1)
	in := ps.Channel()

	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case _, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Ping checks the Redis connection.
func (n *RedisNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
