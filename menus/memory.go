package menus

import (
	"context"
	"sort"
	"sync"
	"time"

	"mealprep/models"
)

// MemoryRepository keeps menus in a map guarded by a mutex.
type MemoryRepository struct {
	mu    sync.Mutex
	menus map[string]models.WeeklyMenu
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{menus: make(map[string]models.WeeklyMenu)}
}

func (m *MemoryRepository) Insert(_ context.Context, menu models.WeeklyMenu) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menus[menu.ID] = menu
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*models.WeeklyMenu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &menu, nil
}

func (m *MemoryRepository) ListActive(_ context.Context, userID string, filter ListFilter, after *Cursor, limit int) ([]models.WeeklyMenu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.WeeklyMenu{}
	for _, menu := range m.menus {
		if menu.UserID != userID || menu.IsDeleted || !filter.Matches(menu) {
			continue
		}
		if after != nil && !after.Precedes(menu) {
			continue
		}
		out = append(out, menu)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) modify(id string, activeOnly bool, fn func(*models.WeeklyMenu)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok || (activeOnly && menu.IsDeleted) {
		return ErrNotFound
	}
	fn(&menu)
	m.menus[id] = menu
	return nil
}

func (m *MemoryRepository) MarkDeleted(_ context.Context, id string, at time.Time) error {
	return m.modify(id, false, func(menu *models.WeeklyMenu) {
		if !menu.IsDeleted {
			menu.SetLifecycle(models.Deleted(at))
		}
	})
}

func (m *MemoryRepository) MarkAllDeleted(_ context.Context, userID string, at time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, menu := range m.menus {
		if menu.UserID != userID || menu.IsDeleted {
			continue
		}
		menu.SetLifecycle(models.Deleted(at))
		m.menus[id] = menu
		n++
	}
	return n, nil
}

func (m *MemoryRepository) SetFavorite(_ context.Context, id string, favorite bool) error {
	return m.modify(id, true, func(menu *models.WeeklyMenu) { menu.UserActions.IsFavorite = favorite })
}

func (m *MemoryRepository) IncrementRegeneration(_ context.Context, id string) error {
	return m.modify(id, true, func(menu *models.WeeklyMenu) { menu.UserActions.RegenerationCount++ })
}

func (m *MemoryRepository) Touch(_ context.Context, id string, at time.Time) error {
	return m.modify(id, false, func(menu *models.WeeklyMenu) { menu.UserActions.LastAccessedAt = &at })
}
