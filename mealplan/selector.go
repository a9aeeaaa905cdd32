package mealplan

import "mealprep/models"

// Selector picks DaysPerWeek recipes, in weekday order, from at least
// DaysPerWeek distinct candidates.
type Selector interface {
	Select(candidates []models.Recipe, prefs Preferences) ([]models.Recipe, error)
}

// FirstSeven takes candidates in input order and ignores preferences.
type FirstSeven struct{}

func (FirstSeven) Select(candidates []models.Recipe, _ Preferences) ([]models.Recipe, error) {
	n := min(len(candidates), DaysPerWeek)
	out := make([]models.Recipe, n)
	copy(out, candidates[:n])
	return out, nil
}
