package profile

import (
	"context"
	"errors"
	"time"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/mq"
)

// Service is the profile store.
type Service struct {
	repo   Repository
	events mq.Emitter
	now    func() time.Time
}

func NewService(repo Repository, events mq.Emitter) *Service {
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{repo: repo, events: events, now: time.Now}
}

func (s *Service) Get(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.repo.Get(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	return user, err
}

// Create stores a new profile with the default preferences and notification
// settings.
func (s *Service) Create(ctx context.Context, uid, email, displayName string) (*models.User, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	user := models.User{
		UID:           uid,
		Email:         email,
		DisplayName:   displayName,
		CreatedAt:     now,
		UpdatedAt:     now,
		IsActive:      true,
		Profile:       models.DefaultUserProfile(),
		Notifications: models.DefaultNotificationSettings(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update validates and merges the set fields of update.
func (s *Service) Update(ctx context.Context, uid string, update models.ProfileUpdate) (*models.User, error) {
	if err := ValidateUpdate(update); err != nil {
		return nil, err
	}
	user, err := s.repo.Update(ctx, uid, update, s.now().UTC().Truncate(time.Millisecond))
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, "profile-edited", mq.Index{
		EntityType: "profile",
		Method:     "PUT",
		EntityId:   uid,
		UserId:     uid,
	})
	return user, nil
}
