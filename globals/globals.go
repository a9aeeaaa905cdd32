package globals

// Context keys
type ContextKey string

const (
	UserIDKey ContextKey = "userId"
	LoggerKey ContextKey = "logger"
)

// Collection names in the document store.
const (
	UsersCollection                = "users"
	AccountsCollection             = "accounts"
	WeeklyMenusCollection          = "weeklyMenus"
	RecipesCollection              = "recipes"
	IngredientsCollection          = "ingredients"
	IngredientCategoriesCollection = "ingredientCategories"
)
