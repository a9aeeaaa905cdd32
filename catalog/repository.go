package catalog

import (
	"context"
	"errors"

	"mealprep/models"
)

// ErrNotFound is returned by repositories for unknown ids.
var ErrNotFound = errors.New("catalog: not found")

// Repository is read-only access to the ingredient and recipe catalog.
type Repository interface {
	// ListCategories returns active categories ordered by order ascending.
	ListCategories(ctx context.Context) ([]models.IngredientCategory, error)
	// ListIngredients returns active ingredients, restricted to one category
	// when categoryID is not empty.
	ListIngredients(ctx context.Context, categoryID string) ([]models.Ingredient, error)
	// SearchRecipes returns at most limit active recipes requiring any of
	// ingredientIDs, no slower than maxCookingTime when it is positive,
	// ordered by id ascending.
	SearchRecipes(ctx context.Context, ingredientIDs []string, maxCookingTime, limit int) ([]models.Recipe, error)
	// GetRecipes returns the recipes found among ids, in no particular order.
	GetRecipes(ctx context.Context, ids []string) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
}
