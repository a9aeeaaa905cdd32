package profile

import (
	"context"
	"errors"
	"time"

	"mealprep/models"
)

// ErrNotFound is returned for unknown user ids.
var ErrNotFound = errors.New("profile: not found")

// Repository persists user profile documents.
type Repository interface {
	Create(ctx context.Context, user models.User) error
	Get(ctx context.Context, uid string) (*models.User, error)
	// Update writes the set fields of update plus updatedAt and returns the
	// resulting document.
	Update(ctx context.Context, uid string, update models.ProfileUpdate, at time.Time) (*models.User, error)
}
