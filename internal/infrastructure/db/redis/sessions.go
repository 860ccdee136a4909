package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps one keyed "currently signed in" marker per account in
// Redis. Key format: session:<account_id>. SET is a per-key atomic upsert,
// so concurrent logins for the same account cannot corrupt the entry. The
// marker is informational only; bearer-token validation never reads it.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put records an active session, expiring with the token window.
func (s *SessionStore) Put(ctx context.Context, accountID string, ttl time.Duration) error {
	key := s.key(accountID)
	if err := s.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("store session marker: %w", err)
	}
	return nil
}

// Drop removes the session marker on logout.
func (s *SessionStore) Drop(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, s.key(accountID)).Err(); err != nil {
		return fmt.Errorf("drop session marker: %w", err)
	}
	return nil
}

func (s *SessionStore) key(accountID string) string {
	return fmt.Sprintf("session:%s", accountID)
}
