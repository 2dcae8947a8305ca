package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labomak/dashboard/internal/config"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "teklif_no:"

// RedisOfferNumberRegistry reserves offer numbers with SETNX so every
// process sharing the Redis instance sees the same reservations.
type RedisOfferNumberRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOfferNumberRegistry(ctx context.Context, cfg config.RedisConfig) (*RedisOfferNumberRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
		MaxRetries:  1,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("[cache] connected to Redis at %s", cfg.Addr)

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisOfferNumberRegistry{client: client, ttl: ttl}, nil
}

func (r *RedisOfferNumberRegistry) Reserve(ctx context.Context, number string) (bool, error) {
	return r.client.SetNX(ctx, keyPrefix+number, time.Now().Unix(), r.ttl).Result()
}

func (r *RedisOfferNumberRegistry) Release(ctx context.Context, number string) error {
	return r.client.Del(ctx, keyPrefix+number).Err()
}

// Close closes the Redis connection
func (r *RedisOfferNumberRegistry) Close() error {
	return r.client.Close()
}

// NewOfferNumberRegistry picks Redis when an address is configured and
// reachable, otherwise an in-memory registry. Offer creation keeps working
// without Redis; only cross-process reservation is lost.
func NewOfferNumberRegistry(ctx context.Context, cfg config.RedisConfig) domainRepo.OfferNumberRegistry {
	if cfg.Addr == "" {
		log.Println("[cache] REDIS_ADDR not set, offer numbers are reserved in memory")
		return NewMemoryOfferNumberRegistry(cfg.TTL)
	}

	registry, err := NewRedisOfferNumberRegistry(ctx, cfg)
	if err != nil {
		log.Printf("[cache] Redis unavailable, offer numbers are reserved in memory: %v", err)
		return NewMemoryOfferNumberRegistry(cfg.TTL)
	}
	return registry
}
