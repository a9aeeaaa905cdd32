package profile

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"mealprep/apperr"
	"mealprep/models"
)

const (
	MaxDisplayNameLength = 50
	MinCalorieTarget     = 300
	MaxCalorieTarget     = 1000
)

var storageDays = map[int]bool{3: true, 5: true, 7: true}

// ValidateUpdate checks the set fields of u.
func ValidateUpdate(u models.ProfileUpdate) error {
	if u.Empty() {
		return apperr.Validation("No profile fields to update")
	}
	if v, ok := u.DisplayName.Get(); ok {
		if strings.TrimSpace(v) == "" {
			return apperr.Validation("displayName must not be empty")
		}
		if utf8.RuneCountInString(v) > MaxDisplayNameLength {
			return apperr.Validation(fmt.Sprintf("displayName must be %d characters or fewer", MaxDisplayNameLength))
		}
	}
	if v, ok := u.CalorieTarget.Get(); ok && (v < MinCalorieTarget || v > MaxCalorieTarget) {
		return apperr.Validation(fmt.Sprintf("calorieTarget must be between %d and %d", MinCalorieTarget, MaxCalorieTarget))
	}
	if v, ok := u.StorageDay.Get(); ok && !storageDays[v] {
		return apperr.Validation("storageDay must be 3, 5 or 7")
	}
	if v, ok := u.SpiceLevel.Get(); ok && !v.Valid() {
		return apperr.Validation(fmt.Sprintf("unknown spiceLevel %q", v))
	}
	if v, ok := u.CookingTimePreference.Get(); ok && v <= 0 {
		return apperr.Validation("cookingTimePreference must be positive")
	}
	if v, ok := u.Notifications.Get(); ok {
		if err := ValidateNotifications(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNotifications checks the email frequency and the HH:MM push window.
func ValidateNotifications(n models.NotificationSettings) error {
	if !n.Email.Frequency.Valid() {
		return apperr.Validation(fmt.Sprintf("unknown email frequency %q", n.Email.Frequency))
	}
	for name, v := range map[string]string{"start": n.Push.TimeRange.Start, "end": n.Push.TimeRange.End} {
		if _, err := time.Parse("15:04", v); err != nil {
			return apperr.Validation(fmt.Sprintf("push.timeRange.%s must be HH:MM", name))
		}
	}
	return nil
}
