package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/rdx"
	"mealprep/utils"
)

const (
	DefaultIngredientLimit = 50
	// MaxCandidates caps a recipe search.
	MaxCandidates = 50

	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// Cache is the subset of the Redis client used for the category cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithExpiry(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Service struct {
	repo  Repository
	cache Cache
}

// NewService builds the catalog service. cache may be nil.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ListActiveCategories returns active categories ordered for display. Results
// are cached; cache trouble is logged and otherwise ignored.
func (s *Service) ListActiveCategories(ctx context.Context) ([]models.IngredientCategory, error) {
	log := utils.LoggerFrom(ctx)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, categoriesCacheKey)
		switch {
		case err == nil:
			var cats []models.IngredientCategory
			if err := json.Unmarshal(raw, &cats); err == nil {
				return cats, nil
			}
			log.Warn("discarding unreadable category cache entry")
		case !errors.Is(err, rdx.ErrNotFound):
			log.WithError(err).Warn("category cache read failed")
		}
	}

	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(cats); err == nil {
			if err := s.cache.SetWithExpiry(ctx, categoriesCacheKey, raw, categoriesCacheTTL); err != nil {
				log.WithError(err).Warn("category cache write failed")
			}
		}
	}
	return cats, nil
}

// ListIngredients pages through active ingredients. Non-positive limits and
// negative offsets fall back to the defaults.
func (s *Service) ListIngredients(ctx context.Context, categoryID string, limit, offset int) (*models.IngredientPage, error) {
	if limit <= 0 {
		limit = DefaultIngredientLimit
	}
	if offset < 0 {
		offset = 0
	}

	all, err := s.repo.ListIngredients(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	start := min(offset, len(all))
	end := start + min(limit, len(all)-start)
	return &models.IngredientPage{
		Items:  all[start:end],
		Total:  len(all),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// SearchRecipes returns the candidate pool for ingredientIDs.
func (s *Service) SearchRecipes(ctx context.Context, ingredientIDs []string, maxCookingTime int) ([]models.Recipe, error) {
	ids := utils.UniqueStrings(ingredientIDs)
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}
	return s.repo.SearchRecipes(ctx, ids, maxCookingTime, MaxCandidates)
}

// GetRecipes returns recipes in the order of ids, skipping unknown ones.
func (s *Service) GetRecipes(ctx context.Context, ids []string) ([]models.Recipe, error) {
	found, err := s.repo.GetRecipes(ctx, utils.UniqueStrings(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	out := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	r, err := s.repo.GetRecipe(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.ErrRecipeNotFound
	}
	return r, err
}
