package menus

import (
	"context"
	"errors"
	"slices"
	"time"

	"mealprep/models"
)

// ErrNotFound is returned for unknown menu ids.
var ErrNotFound = errors.New("menus: not found")

// ListFilter narrows a history listing. The zero value matches every active
// menu.
type ListFilter struct {
	FavoritesOnly bool
	// Since keeps menus generated at or after it when not zero.
	Since time.Time
	// Ingredient keeps menus generated from this ingredient id.
	Ingredient string
}

// Matches reports whether the active menu m passes the filter.
func (f ListFilter) Matches(m models.WeeklyMenu) bool {
	if f.FavoritesOnly && !m.UserActions.IsFavorite {
		return false
	}
	if !f.Since.IsZero() && m.GeneratedAt.Before(f.Since) {
		return false
	}
	if f.Ingredient != "" && !slices.Contains(m.UsedIngredients, f.Ingredient) {
		return false
	}
	return true
}

// Repository persists weekly menus.
type Repository interface {
	Insert(ctx context.Context, menu models.WeeklyMenu) error
	// Get returns the menu whether or not it is deleted.
	Get(ctx context.Context, id string) (*models.WeeklyMenu, error)
	// ListActive returns up to limit non-deleted menus of userID matching
	// filter, newest first, strictly after the given position when after is
	// not nil.
	ListActive(ctx context.Context, userID string, filter ListFilter, after *Cursor, limit int) ([]models.WeeklyMenu, error)
	// MarkDeleted deletes the menu at the given time unless it is already
	// deleted.
	MarkDeleted(ctx context.Context, id string, at time.Time) error
	// MarkAllDeleted deletes every active menu of userID and returns how many
	// it deleted.
	MarkAllDeleted(ctx context.Context, userID string, at time.Time) (int, error)
	// SetFavorite and IncrementRegeneration only apply to active menus; a
	// deleted one is ErrNotFound.
	SetFavorite(ctx context.Context, id string, favorite bool) error
	IncrementRegeneration(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, at time.Time) error
}
