// Package tokenstore provides the Redis-backed validity store for refresh
// tokens. A refresh token is honored only while its jti is present here;
// keys expire together with the token, and revocation deletes them early.
package tokenstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", addr)
	return client, nil
}

// Store records refresh-token jtis in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a refresh-token store backed by the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save records a jti for the given user until expiresAt.
func (s *Store) Save(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}
	if err := s.client.Set(ctx, keyPrefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Valid reports whether a jti is still honored.
func (s *Store) Valid(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+jti).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check refresh token: %w", err)
	}
	return true, nil
}

// Revoke removes a jti. Revoking an unknown jti is a no-op.
func (s *Store) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, keyPrefix+jti).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser removes every jti recorded for the given user, ending
// all of their refresh sessions. Keys store the owning user id as value,
// so this scans the refresh keyspace.
func (s *Store) RevokeAllForUser(ctx context.Context, userID string) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		owner, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("scan refresh tokens: %w", err)
		}
		if owner != userID {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan refresh tokens: %w", err)
	}
	return nil
}
