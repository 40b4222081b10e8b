package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "moviespace:"
	redisDialTimeout  = 3 * time.Second
	redisReadTimeout  = 2 * time.Second
	redisWriteTimeout = 2 * time.Second
	redisPingTimeout  = 2 * time.Second
)

// Redis keeps user state as plain string keys under the moviespace: prefix.
type Redis struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedis parses redisURL, tunes the pool and pings the server.
func NewRedis(ctx context.Context, redisURL string, logger *log.Logger) (*Redis, error) {
	if logger == nil {
		logger = log.Default()
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxIdleConns = 5
	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisReadTimeout
	opts.WriteTimeout = redisWriteTimeout

	s := &Redis{client: redis.NewClient(opts), logger: logger}
	if err := s.HealthCheck(ctx); err != nil {
		_ = s.client.Close()
		return nil, err
	}
	logger.Printf("store: redis connected (addr=%s, pool=%d)", opts.Addr, opts.PoolSize)
	return s, nil
}

// Get returns the value stored under key.
func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key without expiry.
func (s *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// HealthCheck pings the server.
func (s *Redis) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *Redis) Close() {
	if s == nil || s.client == nil {
		return
	}
	s.logger.Println("store: closing redis client")
	if err := s.client.Close(); err != nil {
		s.logger.Printf("store: close redis: %v", err)
	}
}
