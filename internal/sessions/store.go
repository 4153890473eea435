package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"

	// Flash entries are short-lived by nature; the key expires on its own
	// if the follow-up request never arrives.
	flashTTL = 10 * time.Minute
)

// Store keeps session state in Redis: one key per token holding the
// authenticated username. Sessions live until explicit logout; no idle
// timeout is applied.
type Store struct {
	client *redis.Client
}

// NewStore creates a new session store backed by the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Start issues an opaque token bound to username.
func (s *Store) Start(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, username, 0).Err(); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return token, nil
}

// Current resolves a token to its username. A missing or ended session is
// reported as ok=false, not an error.
func (s *Store) Current(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	username, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve session: %w", err)
	}

	return username, true, nil
}

// End removes the session and any pending flashes. Ending an unknown token
// is a no-op.
func (s *Store) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKeyPrefix+token, flashKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// AddFlash queues a one-shot message for the session.
func (s *Store) AddFlash(ctx context.Context, token, message string) error {
	if token == "" {
		return nil
	}

	key := flashKeyPrefix + token
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add flash: %w", err)
	}
	return nil
}

// PopFlashes returns and clears all queued flash messages for the session.
func (s *Store) PopFlashes(ctx context.Context, token string) ([]string, error) {
	if token == "" {
		return nil, nil
	}

	key := flashKeyPrefix + token
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}
	return rangeCmd.Val(), nil
}
