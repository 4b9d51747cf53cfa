// Package events publishes best-effort domain events over redis pub/sub.
// Delivery failures are logged and never fail the triggering request.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"skillmarket/internal/logging"
)

// Channels carrying lifecycle events.
const (
	ChannelJobApplied    = "job.applied"
	ChannelJobAssigned   = "job.assigned"
	ChannelJobCompleted  = "job.completed"
	ChannelReviewCreated = "review.created"
)

// Publisher emits a domain event. Implementations must not return transport
// errors to the caller.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload map[string]string)
}

// RedisPublisher publishes events to redis channels.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a publisher backed by the given client.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish marshals the payload and fires it at the channel (non-fatal).
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload map[string]string) {
	body, _ := json.Marshal(payload)
	if err := p.rdb.Publish(ctx, channel, body).Err(); err != nil {
		logging.GetGlobalLogger().Warn("event publish failed", map[string]interface{}{
			"channel": channel,
			"error":   err.Error(),
		})
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, map[string]string) {}

// Noop returns a publisher that drops every event. Used when redis is not
// configured and in tests.
func Noop() Publisher {
	return noopPublisher{}
}
