package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mealprep/models"
	"mealprep/profile"
	"mealprep/utils"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	svc := profile.NewService(profile.NewMemoryRepository(), nil)
	if _, err := svc.Create(context.Background(), "u1", "a@b.com", "Aki"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return NewHandler(svc)
}

func request(method, body, uid string) *http.Request {
	req := httptest.NewRequest(method, "/api/user/notifications", strings.NewReader(body))
	return req.WithContext(utils.WithUserID(req.Context(), uid))
}

func TestGetNotificationSettings(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.GetNotificationSettings(rec, request(http.MethodGet, "", "u1"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data models.NotificationSettings `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data != models.DefaultNotificationSettings() {
		t.Fatalf("expected defaults, got %+v", body.Data)
	}

	rec = httptest.NewRecorder()
	h.GetNotificationSettings(rec, request(http.MethodGet, "", "ghost"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateNotificationSettings(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"push":{"enabled":false,"timeRange":{"start":"07:30","end":"22:00"}},"email":{"enabled":true,"frequency":"daily"}}`, http.StatusOK},
		{"unknown frequency", `{"push":{"timeRange":{"start":"07:30","end":"22:00"}},"email":{"frequency":"hourly"}}`, http.StatusBadRequest},
		{"malformed time", `{"push":{"timeRange":{"start":"7am","end":"22:00"}},"email":{"frequency":"weekly"}}`, http.StatusBadRequest},
		{"not json", `push`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t)
			rec := httptest.NewRecorder()
			h.UpdateNotificationSettings(rec, request(http.MethodPut, tt.body, "u1"), nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body)
			}
		})
	}
}
