package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:user:"

// Envelope is the wire shape of every message on a user channel.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Hub fans events out through Redis pub/sub so every API instance can
// deliver to its own connected clients.
type Hub struct {
	client redisClient
}

func NewHub(client redisClient) *Hub {
	return &Hub{client: client}
}

func Channel(userID uuid.UUID) string {
	return channelPrefix + userID.String()
}

func (h *Hub) Publish(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event, err)
	}

	msg, err := json.Marshal(Envelope{Event: event, Payload: body})
	if err != nil {
		return err
	}

	return h.client.Publish(ctx, Channel(userID), msg).Err()
}

// Subscribe returns a subscription to one user's channel. The caller closes it.
func (h *Hub) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return h.client.Subscribe(ctx, Channel(userID))
}
