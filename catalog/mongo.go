package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mealprep/db"
	"mealprep/globals"
	"mealprep/models"
)

type MongoRepository struct {
	categories  *mongo.Collection
	ingredients *mongo.Collection
	recipes     *mongo.Collection
}

func NewMongoRepository(d *db.DB) *MongoRepository {
	return &MongoRepository{
		categories:  d.Collection(globals.IngredientCategoriesCollection),
		ingredients: d.Collection(globals.IngredientsCollection),
		recipes:     d.Collection(globals.RecipesCollection),
	}
}

func (m *MongoRepository) ListCategories(ctx context.Context) ([]models.IngredientCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cats, err := db.FindAndDecode[models.IngredientCategory](ctx, m.categories, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	return cats, nil
}

func (m *MongoRepository) ListIngredients(ctx context.Context, categoryID string) ([]models.Ingredient, error) {
	filter := bson.M{"isActive": true}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	items, err := db.FindAndDecode[models.Ingredient](ctx, m.ingredients, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: list ingredients: %w", err)
	}
	return items, nil
}

// searchFilter builds the candidate query.
func searchFilter(ingredientIDs []string, maxCookingTime int) bson.M {
	filter := bson.M{
		"isActive":                         true,
		"requiredIngredients.ingredientId": bson.M{"$in": ingredientIDs},
	}
	if maxCookingTime > 0 {
		filter["cookingTime"] = bson.M{"$lte": maxCookingTime}
	}
	return filter
}

func (m *MongoRepository) SearchRecipes(ctx context.Context, ingredientIDs []string, maxCookingTime, limit int) ([]models.Recipe, error) {
	if len(ingredientIDs) == 0 {
		return []models.Recipe{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	recipes, err := db.FindAndDecode[models.Recipe](ctx, m.recipes, searchFilter(ingredientIDs, maxCookingTime), opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: search recipes: %w", err)
	}
	return recipes, nil
}

func (m *MongoRepository) GetRecipes(ctx context.Context, ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}
	recipes, err := db.FindAndDecode[models.Recipe](ctx, m.recipes, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("catalog: get recipes: %w", err)
	}
	return recipes, nil
}

func (m *MongoRepository) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := m.recipes.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get recipe %s: %w", id, err)
	}
	return &recipe, nil
}
