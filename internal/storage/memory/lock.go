package memory

import (
	"context"
	"sync"
)

// InMemoryUserLocker is the single-process counterpart of the Redis locker.
type InMemoryUserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocker() *InMemoryUserLocker {
	return &InMemoryUserLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *InMemoryUserLocker) LockUser(_ context.Context, userID string) (func(), error) {
	l.mu.Lock()
	userMu, ok := l.locks[userID]
	if !ok {
		userMu = &sync.Mutex{}
		l.locks[userID] = userMu
	}
	l.mu.Unlock()

	userMu.Lock()
	return userMu.Unlock, nil
}
