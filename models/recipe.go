package models

type RecipeIngredient struct {
	IngredientID   string  `json:"ingredientId" bson:"ingredientId"`
	IngredientName string  `json:"ingredientName" bson:"ingredientName"`
	Amount         float64 `json:"amount" bson:"amount"`
	Unit           string  `json:"unit" bson:"unit"`
	IsEssential    bool    `json:"isEssential" bson:"isEssential"`
}

type RecipeStep struct {
	Order       int    `json:"order" bson:"order"`
	Description string `json:"description" bson:"description"`
	ImageURL    string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Time        int    `json:"time,omitempty" bson:"time,omitempty"` // minutes
}

type Nutrition struct {
	Calories     float64 `json:"calories" bson:"calories"`
	Protein      float64 `json:"protein" bson:"protein"`
	Fat          float64 `json:"fat" bson:"fat"`
	Carbohydrate float64 `json:"carbohydrate" bson:"carbohydrate"`
	Salt         float64 `json:"salt" bson:"salt"`
}

type MealPrepInfo struct {
	IsEnabled             bool   `json:"isEnabled" bson:"isEnabled"`
	StorageDays           int    `json:"storageDays" bson:"storageDays"`
	StorageMethod         string `json:"storageMethod" bson:"storageMethod"` // refrigerator|freezer
	ReheatingInstructions string `json:"reheatingInstructions,omitempty" bson:"reheatingInstructions,omitempty"`
}

type RecipeMetadata struct {
	AuthorID        string  `json:"authorId,omitempty" bson:"authorId,omitempty"`
	Source          string  `json:"source" bson:"source"` // manual|ai_generated|imported
	Rating          float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	ViewCount       int     `json:"viewCount" bson:"viewCount"`
	GenerationCount int     `json:"generationCount" bson:"generationCount"`
}

type Recipe struct {
	ID                  string             `json:"id" bson:"_id"`
	Name                string             `json:"name" bson:"name"`
	Description         string             `json:"description" bson:"description"`
	ImageURL            string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CookingTime         int                `json:"cookingTime" bson:"cookingTime"` // minutes
	Servings            int                `json:"servings" bson:"servings"`
	Difficulty          string             `json:"difficulty" bson:"difficulty"` // easy|medium|hard
	SpiceLevel          SpiceLevel         `json:"spiceLevel" bson:"spiceLevel"`
	RequiredIngredients []RecipeIngredient `json:"requiredIngredients" bson:"requiredIngredients"`
	Steps               []RecipeStep       `json:"steps" bson:"steps"`
	Nutrition           Nutrition          `json:"nutrition" bson:"nutrition"`
	MealPrep            MealPrepInfo       `json:"mealPrep" bson:"mealPrep"`
	Tags                []string           `json:"tags" bson:"tags"`
	IsActive            bool               `json:"isActive" bson:"isActive"`
	Metadata            RecipeMetadata     `json:"metadata" bson:"metadata"`
}

// Uses reports whether the recipe requires any of the given ingredient ids.
func (r Recipe) Uses(ingredientIDs map[string]struct{}) bool {
	for _, ri := range r.RequiredIngredients {
		if _, ok := ingredientIDs[ri.IngredientID]; ok {
			return true
		}
	}
	return false
}
