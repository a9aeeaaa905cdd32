package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mealprep/models"
)

type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (m *MemoryRepository) Create(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.UID]; ok {
		return fmt.Errorf("profile: user %s already exists", user.UID)
	}
	m.users[user.UID] = user
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, uid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryRepository) Update(_ context.Context, uid string, update models.ProfileUpdate, at time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&user)
	user.UpdatedAt = at
	m.users[uid] = user
	return &user, nil
}
