package memory

import (
	"context"
	"sync"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

// InMemoryUserManager backs tests and redis-less development.
type InMemoryUserManager struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepository() *InMemoryUserManager {
	return &InMemoryUserManager{
		users: make(map[string]models.User),
	}
}

func (m *InMemoryUserManager) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}

	m.users[user.ID] = cloneUser(user)
	created := cloneUser(user)
	return &created, nil
}

func (m *InMemoryUserManager) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	found := cloneUser(user)
	return &found, nil
}

func (m *InMemoryUserManager) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			found := cloneUser(user)
			return &found, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *InMemoryUserManager) FindUserByTokenHash(_ context.Context, tokenHash string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		for _, entry := range user.RefreshTokens {
			if entry.TokenHash == tokenHash {
				found := cloneUser(user)
				return &found, nil
			}
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *InMemoryUserManager) UpdateRefreshTokens(_ context.Context, userID string, tokens []models.RefreshTokenEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	user.RefreshTokens = append([]models.RefreshTokenEntry(nil), tokens...)
	m.users[userID] = user
	return nil
}

func cloneUser(u models.User) models.User {
	u.RefreshTokens = append([]models.RefreshTokenEntry(nil), u.RefreshTokens...)
	return u
}
