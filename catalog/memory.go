package catalog

import (
	"context"
	"sort"
	"sync"

	"mealprep/models"
	"mealprep/utils"
)

// MemoryRepository serves a fixed catalog from memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	categories  []models.IngredientCategory
	ingredients []models.Ingredient
	recipes     map[string]models.Recipe
}

func NewMemoryRepository(categories []models.IngredientCategory, ingredients []models.Ingredient, recipes []models.Recipe) *MemoryRepository {
	m := &MemoryRepository{
		categories:  append([]models.IngredientCategory(nil), categories...),
		ingredients: append([]models.Ingredient(nil), ingredients...),
		recipes:     make(map[string]models.Recipe, len(recipes)),
	}
	for _, r := range recipes {
		m.recipes[r.ID] = r
	}
	return m
}

func (m *MemoryRepository) ListCategories(_ context.Context) ([]models.IngredientCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.IngredientCategory{}
	for _, c := range m.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *MemoryRepository) ListIngredients(_ context.Context, categoryID string) ([]models.Ingredient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Ingredient{}
	for _, ing := range m.ingredients {
		if !ing.IsActive || (categoryID != "" && ing.CategoryID != categoryID) {
			continue
		}
		out = append(out, ing)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) SearchRecipes(_ context.Context, ingredientIDs []string, maxCookingTime, limit int) ([]models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := utils.Set(ingredientIDs)
	out := []models.Recipe{}
	for _, r := range m.recipes {
		if !r.IsActive || !r.Uses(wanted) {
			continue
		}
		if maxCookingTime > 0 && r.CookingTime > maxCookingTime {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) GetRecipes(_ context.Context, ids []string) ([]models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Recipe{}
	for _, id := range ids {
		if r, ok := m.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryRepository) GetRecipe(_ context.Context, id string) (*models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}
