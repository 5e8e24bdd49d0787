package notify

import (
	"context"
	"encoding/json"
	"event-browser-backend/cmd/event-browser/store"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Message is the JSON body published for every store change.
type Message struct {
	Type      string    `json:"type"`
	EventID   string    `json:"eventId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

type IPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher forwards store changes to a Redis pub/sub channel.
type RedisPublisher struct {
	client  IPublishClient
	channel string
	timeout time.Duration
	logger  *zap.Logger
}

func NewRedisPublisher(client IPublishClient, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		timeout: 2 * time.Second,
		logger:  logger.Named("notify"),
	}
}

// Attach subscribes p to s and returns the unsubscribe function.
func (p *RedisPublisher) Attach(s *store.Store) func() {
	return s.Subscribe(p.Handle)
}

// Handle publishes c. Failures are logged and never reach the mutating caller.
func (p *RedisPublisher) Handle(c store.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Publish(ctx, c); err != nil {
		p.logger.Warn("failed to publish change",
			zap.String("channel", p.channel),
			zap.String("type", string(c.Type)),
			zap.String("eventId", c.EventID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("published change",
		zap.String("channel", p.channel),
		zap.String("type", string(c.Type)),
	)
}

func (p *RedisPublisher) Publish(ctx context.Context, c store.Change) error {
	payload, err := json.Marshal(Message{
		Type:      string(c.Type),
		EventID:   c.EventID,
		UserID:    c.UserID,
		Timestamp: c.Timestamp.UTC(),
		Payload:   c.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}
