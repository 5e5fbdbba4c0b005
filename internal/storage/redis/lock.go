package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "authlock:"
	lockTTL       = 5 * time.Second
	retryInterval = 25 * time.Millisecond
)

// releaseScript deletes the lock only if it still holds our fencing value, so
// an expired lock taken over by another request is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// UserLocker serializes per-user refresh-token mutations across instances
// with a SET NX lock keyed by user ID.
type UserLocker struct {
	client *redis.Client
}

func NewUserLocker(client *redis.Client) *UserLocker {
	return &UserLocker{client: client}
}

func (l *UserLocker) LockUser(ctx context.Context, userID string) (func(), error) {
	key := lockKeyPrefix + userID
	fence := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, fence, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire user lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire user lock: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, fence).Err()
	}
	return release, nil
}
