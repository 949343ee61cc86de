package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payments/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event is the payload published on the notification channel.
type Event struct {
	AccountID string    `json:"accountId"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisPublisher publishes notifications on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
	now     func() time.Time
}

func NewRedisPublisher(client *redis.Client, channel string, timeout time.Duration) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		timeout: timeout,
		now:     time.Now,
	}
}

func (p *RedisPublisher) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error {
	data, err := json.Marshal(Event{
		AccountID: account.ID,
		Message:   message,
		SentAt:    p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification for %s: %w", account.ID, err)
	}
	return nil
}

// HealthCheck pings the Redis server.
func (p *RedisPublisher) HealthCheck(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
