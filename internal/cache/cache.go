// Package cache provides a Redis-backed memoization layer in front of
// the suggestion ranker: a disabled client degrades every call to a
// no-op, and payloads are stored as Get/Set-JSON-with-TTL so any
// serializable result (here, ranked draft suggestions) can be cached
// without a bespoke encoding per call site.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service wraps a Redis client used to memoize suggestion-ranker
// output. A disabled or unreachable Redis degrades to a no-op cache
// rather than failing requests.
type Service struct {
	client *redis.Client
	ctx    context.Context
}

// Config describes how to reach Redis.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// New connects to Redis, or returns a disabled Service if cfg.Enabled
// is false or the connection fails.
func New(cfg Config) *Service {
	if !cfg.Enabled {
		log.Println("draftlens: suggestion cache disabled")
		return &Service{ctx: context.Background()}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("draftlens: redis connection failed, continuing without cache: %v", err)
		return &Service{ctx: ctx}
	}

	log.Println("draftlens: suggestion cache connected")
	return &Service{client: rdb, ctx: ctx}
}

// Enabled reports whether the cache is actually backed by Redis.
func (s *Service) Enabled() bool { return s.client != nil }

// GetJSON unmarshals the cached value at key into dest. Returns an
// error (including redis.Nil) on miss or when the cache is disabled.
func (s *Service) GetJSON(key string, dest interface{}) error {
	if !s.Enabled() {
		return fmt.Errorf("cache disabled")
	}
	raw, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// SetJSON marshals value and stores it at key with ttl. A disabled
// cache silently no-ops.
func (s *Service) SetJSON(key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return s.client.Set(s.ctx, key, raw, ttl).Err()
}

// Delete removes key, a no-op when the cache is disabled.
func (s *Service) Delete(key string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(s.ctx, key).Err()
}

// Invalidate drops every cached entry matching pattern — used when a
// fresh precompute artifact replaces the one suggestions were keyed
// against.
func (s *Service) Invalidate(pattern string) error {
	if !s.Enabled() {
		return nil
	}
	keys, err := s.client.Keys(s.ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.client.Del(s.ctx, keys...).Err()
	}
	return nil
}
