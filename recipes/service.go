// Package recipes runs weekly menu generation: it gathers candidates from the
// catalog, plans the week and stores the result.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealprep/apperr"
	"mealprep/mealplan"
	"mealprep/models"
	"mealprep/mq"
	"mealprep/utils"
)

type Catalog interface {
	SearchRecipes(ctx context.Context, ingredientIDs []string, maxCookingTime int) ([]models.Recipe, error)
	GetRecipes(ctx context.Context, ids []string) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
}

type Profiles interface {
	Get(ctx context.Context, uid string) (*models.User, error)
}

type Menus interface {
	Save(ctx context.Context, userID string, menu models.WeeklyMenu) (string, error)
	GetOwnedActive(ctx context.Context, userID, id string) (*models.WeeklyMenu, error)
	IncrementRegeneration(ctx context.Context, id string) error
}

// GenerateRequest is the body of POST /api/recipes/generate.
type GenerateRequest struct {
	Ingredients    []string              `json:"ingredients"`
	Preferences    *mealplan.Preferences `json:"preferences,omitempty"`
	Regenerate     bool                  `json:"regenerate,omitempty"`
	PreviousMenuID string                `json:"previousMenuId,omitempty"`
}

// GenerateResult is a stored menu together with its recipes.
type GenerateResult struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	GeneratedAt     time.Time              `json:"generatedAt"`
	UsedIngredients []string               `json:"usedIngredients"`
	DailyRecipes    models.DailyRecipes    `json:"dailyRecipes"`
	WeeklyNutrition models.WeeklyNutrition `json:"weeklyNutrition"`
	UserActions     models.UserActions     `json:"userActions"`
	Recipes         []models.Recipe        `json:"recipes"`
}

type Service struct {
	catalog  Catalog
	profiles Profiles
	menus    Menus
	planner  *mealplan.Planner
	events   mq.Emitter
	now      func() time.Time
}

func NewService(catalog Catalog, profiles Profiles, menus Menus, planner *mealplan.Planner, events mq.Emitter) *Service {
	if planner == nil {
		planner = mealplan.NewPlanner(nil)
	}
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{
		catalog:  catalog,
		profiles: profiles,
		menus:    menus,
		planner:  planner,
		events:   events,
		now:      time.Now,
	}
}

func validatePreferences(p *mealplan.Preferences) error {
	if p == nil {
		return nil
	}
	if p.CookingTimeMax < 0 {
		return apperr.Validation("preferences.cookingTimeMax must not be negative")
	}
	if p.CalorieTargetPerMeal < 0 {
		return apperr.Validation("preferences.calorieTargetPerMeal must not be negative")
	}
	if p.SpiceLevel != "" && !p.SpiceLevel.Valid() {
		return apperr.Validation(fmt.Sprintf("unknown spiceLevel %q", p.SpiceLevel))
	}
	return nil
}

// Generate plans and stores a new weekly menu for userID.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (*GenerateResult, error) {
	log := utils.LoggerFrom(ctx)

	ingredients, err := mealplan.CheckIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := validatePreferences(req.Preferences); err != nil {
		return nil, err
	}

	// A user without a profile document still gets the defaults.
	var profile *models.UserProfile
	user, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		profile = &user.Profile
	case errors.Is(err, apperr.ErrUserNotFound):
		log.Warn("generating without a stored profile")
	default:
		return nil, err
	}

	var overrides mealplan.Preferences
	if req.Preferences != nil {
		overrides = *req.Preferences
	}
	prefs := mealplan.ResolvePreferences(profile, overrides)

	var previous *models.WeeklyMenu
	if req.Regenerate && req.PreviousMenuID != "" {
		previous, err = s.menus.GetOwnedActive(ctx, userID, req.PreviousMenuID)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := s.catalog.SearchRecipes(ctx, ingredients, prefs.CookingTimeMax)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(candidates, ingredients, prefs)
	if err != nil {
		log.WithError(err).WithField("candidates", len(candidates)).Info("generation rejected")
		return nil, err
	}

	menu := models.WeeklyMenu{
		UserID:          userID,
		GeneratedAt:     s.now().UTC().Truncate(time.Millisecond),
		UsedIngredients: plan.UsedIngredients,
		DailyRecipes:    plan.DailyRecipes,
		WeeklyNutrition: plan.WeeklyNutrition,
	}
	id, err := s.menus.Save(ctx, userID, menu)
	if err != nil {
		return nil, err
	}

	if previous != nil {
		if err := s.menus.IncrementRegeneration(ctx, previous.ID); err != nil {
			return nil, err
		}
	}

	bodies, err := s.catalog.GetRecipes(ctx, menu.DailyRecipes.IDs())
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, "menu-generated", mq.Index{
		EntityType: "weeklyMenu",
		Method:     "POST",
		EntityId:   id,
		UserId:     userID,
	})

	return &GenerateResult{
		ID:              id,
		UserID:          userID,
		GeneratedAt:     menu.GeneratedAt,
		UsedIngredients: menu.UsedIngredients,
		DailyRecipes:    menu.DailyRecipes,
		WeeklyNutrition: menu.WeeklyNutrition,
		UserActions:     menu.UserActions,
		Recipes:         bodies,
	}, nil
}

// GetRecipe returns one recipe body.
func (s *Service) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.catalog.GetRecipe(ctx, id)
}
