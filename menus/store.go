package menus

import (
	"context"
	"errors"
	"time"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store is the weekly menu store. It maps repository misses to
// MENU_NOT_FOUND and enforces ownership for the HTTP layer.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.ErrMenuNotFound
	}
	return err
}

// Save stores menu under a fresh id as an active menu owned by userID.
func (s *Store) Save(ctx context.Context, userID string, menu models.WeeklyMenu) (string, error) {
	menu.ID = utils.GetUUID()
	menu.UserID = userID
	// stored precision
	menu.GeneratedAt = menu.GeneratedAt.UTC().Truncate(time.Millisecond)
	menu.SetLifecycle(models.Active())
	if menu.UsedIngredients == nil {
		menu.UsedIngredients = []string{}
	}
	if err := s.repo.Insert(ctx, menu); err != nil {
		return "", err
	}
	return menu.ID, nil
}

// Get returns the menu, including deleted ones.
func (s *Store) Get(ctx context.Context, id string) (*models.WeeklyMenu, error) {
	menu, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return menu, nil
}

// GetOwned is Get restricted to menus of userID. Another user's menu is
// reported as missing.
func (s *Store) GetOwned(ctx context.Context, userID, id string) (*models.WeeklyMenu, error) {
	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu.UserID != userID {
		return nil, apperr.ErrMenuNotFound
	}
	return menu, nil
}

// GetOwnedActive is GetOwned for menus that can still change: a deleted menu
// is reported as missing.
func (s *Store) GetOwnedActive(ctx context.Context, userID, id string) (*models.WeeklyMenu, error) {
	menu, err := s.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if menu.Lifecycle().State != models.StateActive {
		return nil, apperr.ErrMenuNotFound
	}
	return menu, nil
}

// ListForUser returns one page of userID's active menus matching filter,
// newest first.
func (s *Store) ListForUser(ctx context.Context, userID string, filter ListFilter, pageSize int, cursor string) (*models.MenuPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListActive(ctx, userID, filter, after, pageSize+1)
	if err != nil {
		return nil, err
	}

	page := &models.MenuPage{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		page.NextCursor = cursorFor(page.Items[pageSize-1]).Encode()
	}
	return page, nil
}

// SoftDelete moves the menu to Deleted{at}. Deleting twice keeps the first
// deletion time.
func (s *Store) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return notFound(s.repo.MarkDeleted(ctx, id, at.UTC().Truncate(time.Millisecond)))
}

// SoftDeleteAll deletes every active menu of userID at the same time and
// returns how many were deleted.
func (s *Store) SoftDeleteAll(ctx context.Context, userID string, at time.Time) (int, error) {
	return s.repo.MarkAllDeleted(ctx, userID, at.UTC().Truncate(time.Millisecond))
}

func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return notFound(s.repo.SetFavorite(ctx, id, favorite))
}

func (s *Store) IncrementRegeneration(ctx context.Context, id string) error {
	return notFound(s.repo.IncrementRegeneration(ctx, id))
}

func (s *Store) Touch(ctx context.Context, id string, at time.Time) error {
	return notFound(s.repo.Touch(ctx, id, at.UTC().Truncate(time.Millisecond)))
}
