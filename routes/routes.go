package routes

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mealprep/auth"
	"mealprep/catalog"
	"mealprep/menus"
	"mealprep/middleware"
	"mealprep/profile"
	"mealprep/ratelim"
	"mealprep/recipes"
	"mealprep/settings"
)

// Deps carries the handlers and guards the routes are built from.
type Deps struct {
	Verifier    middleware.Verifier
	RateLimiter *ratelim.RateLimiter

	Auth     *auth.Handler
	Catalog  *catalog.Handler
	Recipes  *recipes.Handler
	Menus    *menus.Handler
	Profile  *profile.Handler
	Settings *settings.Handler
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// Register adds every API route to router.
func Register(router *httprouter.Router, d Deps) {
	router.GET("/health", Index)

	AddAuthRoutes(router, d)
	AddIngredientRoutes(router, d)
	AddRecipeRoutes(router, d)
	AddMenuRoutes(router, d)
	AddUserRoutes(router, d)
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	authenticate := middleware.Authenticate(d.Verifier)

	router.POST("/api/auth/register", d.RateLimiter.Limit(d.Auth.Register))
	router.POST("/api/auth/login", d.RateLimiter.Limit(d.Auth.Login))
	router.POST("/api/auth/logout", authenticate(d.Auth.Logout))
}

func AddIngredientRoutes(router *httprouter.Router, d Deps) {
	authenticate := middleware.Authenticate(d.Verifier)

	router.GET("/api/ingredients/categories", authenticate(d.Catalog.GetCategories))
	router.GET("/api/ingredients", authenticate(d.Catalog.GetIngredients))
}

func AddRecipeRoutes(router *httprouter.Router, d Deps) {
	authenticate := middleware.Authenticate(d.Verifier)

	router.POST("/api/recipes/generate", d.RateLimiter.Limit(authenticate(d.Recipes.GenerateRecipes)))
	router.GET("/api/recipes/:id", authenticate(d.Recipes.GetRecipe))
}

func AddMenuRoutes(router *httprouter.Router, d Deps) {
	authenticate := middleware.Authenticate(d.Verifier)

	router.GET("/api/menus", authenticate(d.Menus.ListMenus))
	router.DELETE("/api/menus", authenticate(d.Menus.DeleteAllMenus))
	router.GET("/api/menus/:id", authenticate(d.Menus.GetMenu))
	router.DELETE("/api/menus/:id", authenticate(d.Menus.DeleteMenu))
	router.PUT("/api/menus/:id/favorite", authenticate(d.Menus.SetFavorite))
	router.GET("/api/menus/:id/print", authenticate(d.Menus.PrintMenu))
}

func AddUserRoutes(router *httprouter.Router, d Deps) {
	authenticate := middleware.Authenticate(d.Verifier)

	router.GET("/api/user/profile", authenticate(d.Profile.GetProfile))
	router.PUT("/api/user/profile", authenticate(d.Profile.UpdateProfile))
	router.GET("/api/user/notifications", authenticate(d.Settings.GetNotificationSettings))
	router.PUT("/api/user/notifications", authenticate(d.Settings.UpdateNotificationSettings))
}
