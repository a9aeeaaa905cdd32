package models

type IngredientCategory struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	NameEn   string `json:"nameEn" bson:"nameEn"`
	Icon     string `json:"icon" bson:"icon"`
	Color    string `json:"color" bson:"color"`
	Order    int    `json:"order" bson:"order"`
	IsActive bool   `json:"isActive" bson:"isActive"`
}

type NutritionPer100g struct {
	Calories     float64 `json:"calories" bson:"calories"`
	Protein      float64 `json:"protein" bson:"protein"`
	Fat          float64 `json:"fat" bson:"fat"`
	Carbohydrate float64 `json:"carbohydrate" bson:"carbohydrate"`
}

type Ingredient struct {
	ID               string            `json:"id" bson:"_id"`
	Name             string            `json:"name" bson:"name"`
	NameEn           string            `json:"nameEn" bson:"nameEn"`
	CategoryID       string            `json:"categoryId" bson:"categoryId"`
	Season           []string          `json:"season,omitempty" bson:"season,omitempty"`
	StorageMethod    string            `json:"storageMethod" bson:"storageMethod"`
	StorageDays      int               `json:"storageDays" bson:"storageDays"`
	AllergyInfo      []string          `json:"allergyInfo,omitempty" bson:"allergyInfo,omitempty"`
	NutritionPer100g *NutritionPer100g `json:"nutritionPer100g,omitempty" bson:"nutritionPer100g,omitempty"`
	IsActive         bool              `json:"isActive" bson:"isActive"`
}

// IngredientPage is one page of the ingredient listing.
type IngredientPage struct {
	Items  []Ingredient `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
