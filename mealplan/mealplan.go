// Package mealplan turns a list of candidate recipes into a seven-day menu.
//
// It is pure: no I/O, no clock. The caller fetches candidates and persists the
// result.
package mealplan

import (
	"mealprep/apperr"
	"mealprep/models"
	"mealprep/utils"
)

const (
	// MinIngredients is the smallest selection generation accepts.
	MinIngredients = 2
	// DaysPerWeek is the number of recipes in a menu.
	DaysPerWeek = 7
	// DefaultMaxCookingTime applies when neither the request nor the profile
	// gives one. Minutes.
	DefaultMaxCookingTime = 60
)

// Preferences steer selection. Only CookingTimeMax is applied when searching
// candidates; the rest is carried for selectors that want it.
type Preferences struct {
	CookingTimeMax       int               `json:"cookingTimeMax,omitempty"`
	SpiceLevel           models.SpiceLevel `json:"spiceLevel,omitempty"`
	CalorieTargetPerMeal int               `json:"calorieTargetPerMeal,omitempty"`
	AvoidIngredients     []string          `json:"avoidIngredients,omitempty"`
}

// ResolvePreferences fills the zero fields of overrides from the stored
// profile, then from defaults. profile may be nil.
func ResolvePreferences(profile *models.UserProfile, overrides Preferences) Preferences {
	p := overrides
	if p.CookingTimeMax <= 0 && profile != nil {
		p.CookingTimeMax = profile.CookingTimePreference
	}
	if p.CookingTimeMax <= 0 {
		p.CookingTimeMax = DefaultMaxCookingTime
	}
	if profile == nil {
		return p
	}
	if p.SpiceLevel == "" {
		p.SpiceLevel = profile.SpiceLevel
	}
	if p.CalorieTargetPerMeal <= 0 {
		p.CalorieTargetPerMeal = profile.CalorieTarget
	}
	if p.AvoidIngredients == nil {
		p.AvoidIngredients = utils.UniqueStrings(append(append([]string{}, profile.Allergies...), profile.DislikedIngredients...))
	}
	return p
}

// CheckIngredients normalizes the selection and rejects one that is too small.
// An empty selection reports a minimum of one, matching what the client shows
// before anything is picked.
func CheckIngredients(ingredientIDs []string) ([]string, error) {
	ids := utils.UniqueStrings(ingredientIDs)
	if len(ids) == 0 {
		return nil, apperr.InsufficientIngredients(1, 0)
	}
	if len(ids) < MinIngredients {
		return nil, apperr.InsufficientIngredients(MinIngredients, len(ids))
	}
	return ids, nil
}

// Result is a planned week.
type Result struct {
	UsedIngredients []string
	DailyRecipes    models.DailyRecipes
	WeeklyNutrition models.WeeklyNutrition
	// Recipes holds the selected recipes in weekday order.
	Recipes []models.Recipe
}

// Planner assigns candidates to weekdays using its Selector.
type Planner struct {
	Selector Selector
}

func NewPlanner(sel Selector) *Planner {
	if sel == nil {
		sel = FirstSeven{}
	}
	return &Planner{Selector: sel}
}

// Plan validates the inputs, selects seven recipes and totals their nutrition.
func (p *Planner) Plan(candidates []models.Recipe, usedIngredients []string, prefs Preferences) (*Result, error) {
	used, err := CheckIngredients(usedIngredients)
	if err != nil {
		return nil, err
	}

	distinct := dedupe(candidates)
	if len(distinct) < DaysPerWeek {
		return nil, apperr.GenerationFailed(len(distinct), DaysPerWeek)
	}

	chosen, err := p.Selector.Select(distinct, prefs)
	if err != nil {
		return nil, err
	}
	if len(chosen) != DaysPerWeek {
		return nil, apperr.GenerationFailed(len(chosen), DaysPerWeek)
	}

	res := &Result{UsedIngredients: used, Recipes: chosen}
	for i, day := range models.Weekdays {
		res.DailyRecipes.Set(day, chosen[i].ID)
	}
	res.WeeklyNutrition = Totals(chosen)
	return res, nil
}

// Plan runs the default planner.
func Plan(candidates []models.Recipe, usedIngredients []string, prefs Preferences) (*Result, error) {
	return NewPlanner(nil).Plan(candidates, usedIngredients, prefs)
}

// Totals sums nutrition over recipes. The daily average is over the whole
// week, not over len(recipes).
func Totals(recipes []models.Recipe) models.WeeklyNutrition {
	var n models.WeeklyNutrition
	for _, r := range recipes {
		n.TotalCalories += r.Nutrition.Calories
		n.TotalProtein += r.Nutrition.Protein
		n.TotalFat += r.Nutrition.Fat
		n.TotalCarbohydrate += r.Nutrition.Carbohydrate
	}
	n.AverageCaloriesPerDay = n.TotalCalories / DaysPerWeek
	return n
}

func dedupe(recipes []models.Recipe) []models.Recipe {
	seen := make(map[string]struct{}, len(recipes))
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
