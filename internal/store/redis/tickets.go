package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/corkboard/corkboard/internal/domain"
)

// TicketStore maps short-lived websocket connection tickets to user ids.
// Expiry is enforced by Redis key TTL; the store never re-checks timestamps.
type TicketStore struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*TicketStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &TicketStore{client: client, ttl: ttl}, nil
}

func (s *TicketStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis.TicketStore.Close: %w", err)
	}
	return nil
}

// Issue generates a fresh opaque ticket bound to userID and stores it with
// the configured TTL.
func (s *TicketStore) Issue(ctx context.Context, userID int64) (string, error) {
	ticket := uuid.NewString()

	err := s.client.Set(ctx, TicketKey(ticket), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("redis.TicketStore.Issue: %w", err)
	}

	return ticket, nil
}

// Resolve returns the user id a ticket was issued for. An absent or expired
// ticket yields domain.ErrNotFound; any other store error is returned as-is
// so callers can fail closed.
func (s *TicketStore) Resolve(ctx context.Context, ticket string) (int64, error) {
	val, err := s.client.Get(ctx, TicketKey(ticket)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("redis.TicketStore.Resolve: %w", domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("redis.TicketStore.Resolve: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis.TicketStore.Resolve: corrupt entry %q: %w", val, err)
	}

	return userID, nil
}

// Revoke deletes a ticket early. Revoking an absent ticket is a no-op.
func (s *TicketStore) Revoke(ctx context.Context, ticket string) error {
	if err := s.client.Del(ctx, TicketKey(ticket)).Err(); err != nil {
		return fmt.Errorf("redis.TicketStore.Revoke: %w", err)
	}
	return nil
}

// TicketKey returns the Redis key for a websocket auth ticket.
func TicketKey(ticket string) string {
	return "websocket_auth:" + ticket
}
