package models

import "time"

type SpiceLevel string

const (
	SpiceMild       SpiceLevel = "mild"
	SpiceNormal     SpiceLevel = "normal"
	SpiceSpicy      SpiceLevel = "spicy"
	SpiceExtraSpicy SpiceLevel = "extra_spicy"
)

func (s SpiceLevel) Valid() bool {
	switch s {
	case SpiceMild, SpiceNormal, SpiceSpicy, SpiceExtraSpicy:
		return true
	}
	return false
}

type EmailFrequency string

const (
	EmailDaily   EmailFrequency = "daily"
	EmailWeekly  EmailFrequency = "weekly"
	EmailMonthly EmailFrequency = "monthly"
	EmailNever   EmailFrequency = "never"
)

func (f EmailFrequency) Valid() bool {
	switch f {
	case EmailDaily, EmailWeekly, EmailMonthly, EmailNever:
		return true
	}
	return false
}

// UserProfile holds one account's dietary preferences.
type UserProfile struct {
	Allergies             []string   `json:"allergies" bson:"allergies"`
	DislikedIngredients   []string   `json:"dislikedIngredients" bson:"dislikedIngredients"`
	LikedIngredients      []string   `json:"likedIngredients" bson:"likedIngredients"`
	CookingTimePreference int        `json:"cookingTimePreference" bson:"cookingTimePreference"` // minutes
	SpiceLevel            SpiceLevel `json:"spiceLevel" bson:"spiceLevel"`
	CalorieTarget         int        `json:"calorieTarget" bson:"calorieTarget"`
	StorageDay            int        `json:"storageDay" bson:"storageDay"`
}

type TimeRange struct {
	Start string `json:"start" bson:"start"` // HH:MM
	End   string `json:"end" bson:"end"`
}

type PushSettings struct {
	Enabled      bool      `json:"enabled" bson:"enabled"`
	NewRecipe    bool      `json:"newRecipe" bson:"newRecipe"`
	WeeklyRecipe bool      `json:"weeklyRecipe" bson:"weeklyRecipe"`
	Updates      bool      `json:"updates" bson:"updates"`
	TimeRange    TimeRange `json:"timeRange" bson:"timeRange"`
}

type EmailSettings struct {
	Enabled   bool           `json:"enabled" bson:"enabled"`
	Frequency EmailFrequency `json:"frequency" bson:"frequency"`
}

type NotificationSettings struct {
	Push  PushSettings  `json:"push" bson:"push"`
	Email EmailSettings `json:"email" bson:"email"`
}

// User is the profile document stored in the users collection. Credentials
// live with the identity service, not here.
type User struct {
	UID             string               `json:"uid" bson:"_id"`
	Email           string               `json:"email" bson:"email"`
	DisplayName     string               `json:"displayName" bson:"displayName"`
	ProfileImageURL string               `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
	IsActive        bool                 `json:"isActive" bson:"isActive"`
	Profile         UserProfile          `json:"profile" bson:"profile"`
	Notifications   NotificationSettings `json:"notifications" bson:"notifications"`
}

// DefaultUserProfile returns the preferences every account starts with.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Allergies:             []string{},
		DislikedIngredients:   []string{},
		LikedIngredients:      []string{},
		CookingTimePreference: 30,
		SpiceLevel:            SpiceNormal,
		CalorieTarget:         500,
		StorageDay:            5,
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Push: PushSettings{
			Enabled:      true,
			NewRecipe:    true,
			WeeklyRecipe: true,
			Updates:      false,
			TimeRange:    TimeRange{Start: "09:00", End: "21:00"},
		},
		Email: EmailSettings{
			Enabled:   false,
			Frequency: EmailWeekly,
		},
	}
}

// ProfileUpdate is a partial update of a User. Only fields that are Set are
// written.
type ProfileUpdate struct {
	DisplayName           Optional[string]
	ProfileImageURL       Optional[string]
	Allergies             Optional[[]string]
	DislikedIngredients   Optional[[]string]
	LikedIngredients      Optional[[]string]
	CookingTimePreference Optional[int]
	SpiceLevel            Optional[SpiceLevel]
	CalorieTarget         Optional[int]
	StorageDay            Optional[int]
	Notifications         Optional[NotificationSettings]
}

// Empty reports whether no field is set.
func (u ProfileUpdate) Empty() bool {
	return !u.DisplayName.IsSet() && !u.ProfileImageURL.IsSet() &&
		!u.Allergies.IsSet() && !u.DislikedIngredients.IsSet() && !u.LikedIngredients.IsSet() &&
		!u.CookingTimePreference.IsSet() && !u.SpiceLevel.IsSet() &&
		!u.CalorieTarget.IsSet() && !u.StorageDay.IsSet() && !u.Notifications.IsSet()
}

// Apply merges the set fields into user.
func (u ProfileUpdate) Apply(user *User) {
	if v, ok := u.DisplayName.Get(); ok {
		user.DisplayName = v
	}
	if v, ok := u.ProfileImageURL.Get(); ok {
		user.ProfileImageURL = v
	}
	if v, ok := u.Allergies.Get(); ok {
		user.Profile.Allergies = nonNil(v)
	}
	if v, ok := u.DislikedIngredients.Get(); ok {
		user.Profile.DislikedIngredients = nonNil(v)
	}
	if v, ok := u.LikedIngredients.Get(); ok {
		user.Profile.LikedIngredients = nonNil(v)
	}
	if v, ok := u.CookingTimePreference.Get(); ok {
		user.Profile.CookingTimePreference = v
	}
	if v, ok := u.SpiceLevel.Get(); ok {
		user.Profile.SpiceLevel = v
	}
	if v, ok := u.CalorieTarget.Get(); ok {
		user.Profile.CalorieTarget = v
	}
	if v, ok := u.StorageDay.Get(); ok {
		user.Profile.StorageDay = v
	}
	if v, ok := u.Notifications.Get(); ok {
		user.Notifications = v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
