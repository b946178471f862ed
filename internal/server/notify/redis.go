package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel канал Redis для оповещений об изменениях
const DefaultChannel = "storekeeper:collections"

// Connect подключается к Redis по URL и проверяет соединение
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Redis рассылает оповещения между экземплярами сервера через Redis pub/sub.
// Локальные ожидающие будятся сообщениями, полученными в Run, в том числе
// собственными.
type Redis struct {
	client  redis.UniversalClient
	hub     *Hub
	logger  *slog.Logger
	channel string
}

func NewRedis(client redis.UniversalClient, channel string, logger *slog.Logger) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{
		client:  client,
		hub:     NewHub(),
		logger:  logger,
		channel: channel,
	}
}

func (r *Redis) Publish(ctx context.Context, collection string) error {
	if err := r.client.Publish(ctx, r.channel, collection).Err(); err != nil {
		// локальные ожидающие не должны зависеть от Redis
		r.hub.Notify(collection)
		return fmt.Errorf("failed to publish change of %s: %w", collection, err)
	}
	return nil
}

func (r *Redis) Changed(collection string) <-chan struct{} {
	return r.hub.Changed(collection)
}

// Run слушает канал до отмены ctx
func (r *Redis) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			r.logger.Warn("Failed to close redis subscription", "error", err)
		}
	}()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.logger.Info("Listening for collection changes", "channel", r.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.logger.Debug("Collection changed", "collection", msg.Payload)
			r.hub.Notify(msg.Payload)
		}
	}
}
