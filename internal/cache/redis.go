package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/weddingvenue/config"
	"github.com/Domenick1991/weddingvenue/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	calendarTTL time.Duration
}

// NewClient returns nil when no address is configured.
func NewClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client *redis.Client, calendarTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      client,
		calendarTTL: calendarTTL,
	}
}

// GetCalendar returns the calendar generated on day, or nil, nil on a miss.
func (c *RedisCache) GetCalendar(ctx context.Context, day string) ([]domain.DateAvailability, error) {
	data, err := c.client.Get(ctx, calendarKey(day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var dates []domain.DateAvailability
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (c *RedisCache) SetCalendar(ctx context.Context, day string, dates []domain.DateAvailability) error {
	payload, err := json.Marshal(dates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, calendarKey(day), payload, c.calendarTTL).Err()
}

func calendarKey(day string) string {
	return "cache:calendar:" + day
}
