package bus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisSource.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string

	// Timeout bounds dialing and the initial subscription.
	// Default: 5s
	Timeout time.Duration
}

// RedisSource receives events published on a Redis pub/sub channel.
type RedisSource struct {
	cfg    RedisConfig
	client *redis.Client
	logger *slog.Logger
}

// NewRedisSource creates a source. No connection is made until Run.
func NewRedisSource(cfg RedisConfig, logger *slog.Logger) (*RedisSource, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: missing addr")
	}
	if cfg.Channel == "" {
		return nil, fmt.Errorf("redis: missing channel")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default().With("component", "bus.redis")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})

	return &RedisSource{cfg: cfg, client: client, logger: logger}, nil
}

// Run implements Source. It returns an error if the subscription cannot
// be established and nil once ctx is cancelled.
func (s *RedisSource) Run(ctx context.Context, handle HandlerFunc) error {
	pubsub := s.client.Subscribe(ctx, s.cfg.Channel)
	defer pubsub.Close()

	subCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	_, err := pubsub.Receive(subCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("redis: subscribe %q: %w", s.cfg.Channel, err)
	}

	s.logger.Info("subscribed to chat events", "addr", s.cfg.Addr, "channel", s.cfg.Channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis: subscription to %q closed", s.cfg.Channel)
			}
			s.dispatch(ctx, msg.Payload, handle)
		}
	}
}

func (s *RedisSource) dispatch(ctx context.Context, payload string, handle HandlerFunc) {
	ev, err := Decode([]byte(payload))
	if err != nil {
		s.logger.Warn("skipping malformed event", "error", err)
		return
	}
	if err := handle(ctx, ev); err != nil {
		s.logger.Error("event handler failed", "event_type", ev.Type, "error", err)
	}
}

// Close releases the Redis client.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
