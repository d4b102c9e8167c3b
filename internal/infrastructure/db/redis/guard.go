package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 10 * time.Second

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RegistrationGuard serialises concurrent registration attempts for the same
// (user, event) pair. The key expires on its own so a crashed holder never
// blocks the pair for longer than the TTL.
//
// Key format: regguard:<user_id>:<event_id>, value: the holder's token.
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard wraps client. A non-positive ttl falls back to 10s.
func NewRegistrationGuard(client *redis.Client, ttl time.Duration) *RegistrationGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &RegistrationGuard{client: client, ttl: ttl}
}

// Acquire reports whether the caller now holds the pair and, if so, the token
// to hand back to Release. false means another attempt is in flight.
func (g *RegistrationGuard) Acquire(ctx context.Context, userID, eventID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, guardKey(userID, eventID), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("registration guard acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees the pair if token still owns it. A lease that already expired
// and was taken by someone else is left alone.
func (g *RegistrationGuard) Release(ctx context.Context, userID, eventID, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{guardKey(userID, eventID)}, token).Err(); err != nil {
		return fmt.Errorf("registration guard release: %w", err)
	}
	return nil
}

func guardKey(userID, eventID string) string {
	return fmt.Sprintf("regguard:%s:%s", userID, eventID)
}
