package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/utils"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepository(), nil)
	if _, err := svc.Create(context.Background(), "u1", "a@b.com", "Aki"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newService(t)
	user, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	p := user.Profile
	if len(p.Allergies) != 0 || p.CookingTimePreference != 30 || p.SpiceLevel != models.SpiceNormal || p.CalorieTarget != 500 || p.StorageDay != 5 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	n := user.Notifications
	if !n.Push.Enabled || n.Push.Updates || n.Push.TimeRange.Start != "09:00" || n.Email.Enabled || n.Email.Frequency != models.EmailWeekly {
		t.Fatalf("unexpected notification defaults %+v", n)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Get(context.Background(), "nobody"); !errors.Is(err, apperr.ErrUserNotFound) {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
	_, err := svc.Update(context.Background(), "nobody", models.ProfileUpdate{CalorieTarget: models.Set(500)})
	if !errors.Is(err, apperr.ErrUserNotFound) {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	badNotifications := models.DefaultNotificationSettings()
	badNotifications.Email.Frequency = "hourly"
	badTime := models.DefaultNotificationSettings()
	badTime.Push.TimeRange.End = "25:00"

	tests := []struct {
		name   string
		update models.ProfileUpdate
	}{
		{"nothing set", models.ProfileUpdate{}},
		{"calorie target too low", models.ProfileUpdate{CalorieTarget: models.Set(250)}},
		{"calorie target too high", models.ProfileUpdate{CalorieTarget: models.Set(1001)}},
		{"display name too long", models.ProfileUpdate{DisplayName: models.Set(strings.Repeat("a", 51))}},
		{"storage day", models.ProfileUpdate{StorageDay: models.Set(4)}},
		{"spice level", models.ProfileUpdate{SpiceLevel: models.Set(models.SpiceLevel("volcanic"))}},
		{"cooking time", models.ProfileUpdate{CookingTimePreference: models.Set(0)}},
		{"email frequency", models.ProfileUpdate{Notifications: models.Set(badNotifications)}},
		{"push window", models.ProfileUpdate{Notifications: models.Set(badTime)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			_, err := svc.Update(context.Background(), "u1", tt.update)
			if !errors.Is(err, &apperr.Error{Code: apperr.CodeValidation}) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			user, _ := svc.Get(context.Background(), "u1")
			if user.Profile.CalorieTarget != 500 || user.DisplayName != "Aki" {
				t.Fatalf("rejected update must not be stored: %+v", user)
			}
		})
	}
}

func TestUpdateMergesOnlySetFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "u1", models.ProfileUpdate{
		CalorieTarget: models.Set(500),
		Allergies:     models.Set([]string{"egg"}),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := svc.Update(ctx, "u1", models.ProfileUpdate{DisplayName: models.Set(strings.Repeat("b", 50))}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	user, _ := svc.Get(ctx, "u1")
	if user.Profile.CalorieTarget != 500 || len(user.Profile.Allergies) != 1 {
		t.Fatalf("unexpected profile %+v", user.Profile)
	}
	if len(user.DisplayName) != 50 {
		t.Fatalf("unexpected display name %q", user.DisplayName)
	}
	if user.Profile.SpiceLevel != models.SpiceNormal {
		t.Fatal("unset field changed")
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	h := NewHandler(newService(t))

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"valid", `{"profile":{"calorieTarget":700,"allergies":["shrimp"]}}`, http.StatusOK, ""},
		{"out of range", `{"profile":{"calorieTarget":250}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed", `{"profile":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty", `{"profile":{}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"no body fields", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(tt.body))
			req = req.WithContext(utils.WithUserID(req.Context(), "u1"))
			rec := httptest.NewRecorder()
			h.UpdateProfile(rec, req, nil)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body)
			}
			var body map[string]any
			json.NewDecoder(rec.Body).Decode(&body)
			if tt.code != "" && body["code"] != tt.code {
				t.Fatalf("expected code %s, got %v", tt.code, body["code"])
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req = req.WithContext(utils.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h.GetProfile(rec, req, nil)
	var body struct {
		Data models.User `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Profile.CalorieTarget != 700 || body.Data.Profile.Allergies[0] != "shrimp" {
		t.Fatalf("update not reflected: %+v", body.Data.Profile)
	}
}
