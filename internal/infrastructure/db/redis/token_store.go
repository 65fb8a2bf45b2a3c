// Package redis stores the bearer token in Redis so several page servers on
// one machine (or a container restart) share the same session.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtracker/tracker-web/internal/core/ports"
)

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "jobtracker:token:"
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a client and pings it once before returning.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// TokenStore keeps one token per profile under jobtracker:token:<profile>.
// Tokens never expire on the Redis side; Logout removes them.
type TokenStore struct {
	client *redis.Client
	key    string
}

var _ ports.TokenStore = (*TokenStore)(nil)

func NewTokenStore(client *redis.Client, profile string) *TokenStore {
	return &TokenStore{client: client, key: tokenKey(profile)}
}

func tokenKey(profile string) string {
	if profile == "" {
		profile = "default"
	}
	return keyPrefix + profile
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return token, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Delete is a no-op when the key does not exist.
func (s *TokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

func (s *TokenStore) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *TokenStore) Name() string { return "redis" }

func (s *TokenStore) Close() error {
	return s.client.Close()
}
