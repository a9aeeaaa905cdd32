package models

import "time"

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays in assignment order.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DailyRecipes maps each weekday to one recipe id.
type DailyRecipes struct {
	Monday    string `json:"monday" bson:"monday"`
	Tuesday   string `json:"tuesday" bson:"tuesday"`
	Wednesday string `json:"wednesday" bson:"wednesday"`
	Thursday  string `json:"thursday" bson:"thursday"`
	Friday    string `json:"friday" bson:"friday"`
	Saturday  string `json:"saturday" bson:"saturday"`
	Sunday    string `json:"sunday" bson:"sunday"`
}

func (d *DailyRecipes) slot(day Weekday) *string {
	switch day {
	case Monday:
		return &d.Monday
	case Tuesday:
		return &d.Tuesday
	case Wednesday:
		return &d.Wednesday
	case Thursday:
		return &d.Thursday
	case Friday:
		return &d.Friday
	case Saturday:
		return &d.Saturday
	case Sunday:
		return &d.Sunday
	}
	return nil
}

func (d DailyRecipes) Get(day Weekday) string {
	if p := d.slot(day); p != nil {
		return *p
	}
	return ""
}

func (d *DailyRecipes) Set(day Weekday, recipeID string) {
	if p := d.slot(day); p != nil {
		*p = recipeID
	}
}

// IDs returns the recipe ids in weekday order.
func (d DailyRecipes) IDs() []string {
	ids := make([]string, 0, len(Weekdays))
	for _, day := range Weekdays {
		ids = append(ids, d.Get(day))
	}
	return ids
}

type WeeklyNutrition struct {
	TotalCalories         float64 `json:"totalCalories" bson:"totalCalories"`
	AverageCaloriesPerDay float64 `json:"averageCaloriesPerDay" bson:"averageCaloriesPerDay"`
	TotalProtein          float64 `json:"totalProtein" bson:"totalProtein"`
	TotalFat              float64 `json:"totalFat" bson:"totalFat"`
	TotalCarbohydrate     float64 `json:"totalCarbohydrate" bson:"totalCarbohydrate"`
}

type UserActions struct {
	IsFavorite        bool       `json:"isFavorite" bson:"isFavorite"`
	RegenerationCount int        `json:"regenerationCount" bson:"regenerationCount"`
	LastAccessedAt    *time.Time `json:"lastAccessedAt,omitempty" bson:"lastAccessedAt,omitempty"`
}

type LifecycleState int

const (
	StateActive LifecycleState = iota
	StateDeleted
)

// Lifecycle is either Active or Deleted at a point in time.
type Lifecycle struct {
	State LifecycleState
	At    time.Time
}

func Active() Lifecycle { return Lifecycle{State: StateActive} }

func Deleted(at time.Time) Lifecycle { return Lifecycle{State: StateDeleted, At: at} }

// WeeklyMenu is one generated week of recipes. The lifecycle is stored as
// isDeleted/deletedAt so the listing index can filter on it.
type WeeklyMenu struct {
	ID              string          `json:"id" bson:"_id"`
	UserID          string          `json:"userId" bson:"userId"`
	GeneratedAt     time.Time       `json:"generatedAt" bson:"generatedAt"`
	UsedIngredients []string        `json:"usedIngredients" bson:"usedIngredients"`
	DailyRecipes    DailyRecipes    `json:"dailyRecipes" bson:"dailyRecipes"`
	WeeklyNutrition WeeklyNutrition `json:"weeklyNutrition" bson:"weeklyNutrition"`
	UserActions     UserActions     `json:"userActions" bson:"userActions"`
	IsDeleted       bool            `json:"isDeleted" bson:"isDeleted"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

func (m WeeklyMenu) Lifecycle() Lifecycle {
	if !m.IsDeleted {
		return Active()
	}
	var at time.Time
	if m.DeletedAt != nil {
		at = *m.DeletedAt
	}
	return Deleted(at)
}

func (m *WeeklyMenu) SetLifecycle(l Lifecycle) {
	switch l.State {
	case StateDeleted:
		at := l.At
		m.IsDeleted = true
		m.DeletedAt = &at
	default:
		m.IsDeleted = false
		m.DeletedAt = nil
	}
}

// MenuDetail is a menu with the bodies of its recipes in weekday order.
type MenuDetail struct {
	WeeklyMenu `bson:",inline"`
	Recipes    []Recipe `json:"recipes"`
}

// MenuPage is one page of a user's history.
type MenuPage struct {
	Items      []WeeklyMenu `json:"items"`
	NextCursor string       `json:"nextCursor,omitempty"`
}
