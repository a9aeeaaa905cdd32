package menus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/utils"
)

var base = time.Date(2025, 9, 14, 12, 0, 0, 0, time.UTC)

func sampleMenu(at time.Time) models.WeeklyMenu {
	m := models.WeeklyMenu{
		GeneratedAt:     at,
		UsedIngredients: []string{"chicken", "rice"},
		WeeklyNutrition: models.WeeklyNutrition{TotalCalories: 3500, AverageCaloriesPerDay: 500},
	}
	for i, day := range models.Weekdays {
		m.DailyRecipes.Set(day, fmt.Sprintf("r%d", i+1))
	}
	return m
}

func TestSaveAndGet(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()

	id, err := store.Save(ctx, "u1", sampleMenu(base))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "u1" || got.Lifecycle().State != models.StateActive {
		t.Fatalf("unexpected menu %+v", got)
	}
	if got.UserActions.IsFavorite || got.UserActions.RegenerationCount != 0 {
		t.Fatalf("unexpected user actions %+v", got.UserActions)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("expected MENU_NOT_FOUND, got %v", err)
	}
	if _, err := store.GetOwned(ctx, "u2", id); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("expected other owner to see MENU_NOT_FOUND, got %v", err)
	}
}

func TestSoftDeletedMenusLeaveHistory(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()

	keep, _ := store.Save(ctx, "u1", sampleMenu(base))
	gone, _ := store.Save(ctx, "u1", sampleMenu(base.Add(time.Hour)))

	first := base.Add(2 * time.Hour)
	if err := store.SoftDelete(ctx, gone, first); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := store.SoftDelete(ctx, gone, first.Add(time.Hour)); err != nil {
		t.Fatalf("second SoftDelete: %v", err)
	}

	page, err := store.ListForUser(ctx, "u1", ListFilter{}, 0, "")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != keep {
		t.Fatalf("expected only %s, got %+v", keep, page.Items)
	}

	deleted, err := store.Get(ctx, gone)
	if err != nil {
		t.Fatalf("deleted menu must stay retrievable: %v", err)
	}
	lc := deleted.Lifecycle()
	if lc.State != models.StateDeleted || !lc.At.Equal(first) {
		t.Fatalf("expected Deleted{%v}, got %+v", first, lc)
	}
}

func TestListForUserPagination(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()

	want := map[string]bool{}
	for i := 0; i < 7; i++ {
		// two menus share each timestamp to exercise the id tie-break
		id, _ := store.Save(ctx, "u1", sampleMenu(base.Add(time.Duration(i/2)*time.Minute)))
		want[id] = true
	}
	store.Save(ctx, "u2", sampleMenu(base))

	seen := map[string]bool{}
	cursor := ""
	var last *models.WeeklyMenu
	for pages := 0; ; pages++ {
		if pages > 10 {
			t.Fatal("pagination does not terminate")
		}
		page, err := store.ListForUser(ctx, "u1", ListFilter{}, 3, cursor)
		if err != nil {
			t.Fatalf("ListForUser: %v", err)
		}
		for i := range page.Items {
			m := page.Items[i]
			if seen[m.ID] {
				t.Fatalf("menu %s returned twice", m.ID)
			}
			seen[m.ID] = true
			if last != nil && m.GeneratedAt.After(last.GeneratedAt) {
				t.Fatalf("menus not newest first")
			}
			last = &m
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d menus, got %d", len(want), len(seen))
	}
}

func TestListForUserRejectsBadCursor(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	_, err := store.ListForUser(context.Background(), "u1", ListFilter{}, 10, "%%%")
	if !errors.Is(err, &apperr.Error{Code: apperr.CodeValidation}) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestListForUserFilters(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()

	old, _ := store.Save(ctx, "u1", sampleMenu(base.AddDate(0, 0, -10)))
	fav, _ := store.Save(ctx, "u1", sampleMenu(base.AddDate(0, 0, -2)))
	store.SetFavorite(ctx, fav, true)
	fish := sampleMenu(base)
	fish.UsedIngredients = []string{"salmon", "rice"}
	fishID, _ := store.Save(ctx, "u1", fish)
	gone, _ := store.Save(ctx, "u1", sampleMenu(base))
	store.SetFavorite(ctx, gone, true)
	store.SoftDelete(ctx, gone, base)

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all", ListFilter{}, []string{fishID, fav, old}},
		{"favorites", ListFilter{FavoritesOnly: true}, []string{fav}},
		{"since", ListFilter{Since: base.AddDate(0, 0, -7)}, []string{fishID, fav}},
		{"ingredient", ListFilter{Ingredient: "chicken"}, []string{fav, old}},
		{"combined", ListFilter{Ingredient: "rice", Since: base.AddDate(0, 0, -1)}, []string{fishID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := store.ListForUser(ctx, "u1", tt.filter, 10, "")
			if err != nil {
				t.Fatalf("ListForUser: %v", err)
			}
			var got []string
			for _, m := range page.Items {
				got = append(got, m.ID)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSoftDeleteAll(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()

	first, _ := store.Save(ctx, "u1", sampleMenu(base))
	store.SoftDelete(ctx, first, base)
	store.Save(ctx, "u1", sampleMenu(base.Add(time.Minute)))
	store.Save(ctx, "u1", sampleMenu(base.Add(2*time.Minute)))
	other, _ := store.Save(ctx, "u2", sampleMenu(base))

	n, err := store.SoftDeleteAll(ctx, "u1", base.Add(time.Hour))
	if err != nil {
		t.Fatalf("SoftDeleteAll: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	page, _ := store.ListForUser(ctx, "u1", ListFilter{}, 10, "")
	if len(page.Items) != 0 {
		t.Fatalf("history not empty: %+v", page.Items)
	}
	m, _ := store.Get(ctx, first)
	if !m.Lifecycle().At.Equal(base) {
		t.Fatalf("earlier deletion time overwritten: %+v", m.Lifecycle())
	}
	if m, _ := store.Get(ctx, other); m.IsDeleted {
		t.Fatal("another user's menu was deleted")
	}
}

func TestDeletedMenuRejectsUserActions(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()
	id, _ := store.Save(ctx, "u1", sampleMenu(base))
	store.SoftDelete(ctx, id, base)

	if err := store.SetFavorite(ctx, id, true); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("SetFavorite: expected MENU_NOT_FOUND, got %v", err)
	}
	if err := store.IncrementRegeneration(ctx, id); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("IncrementRegeneration: expected MENU_NOT_FOUND, got %v", err)
	}
	if _, err := store.GetOwnedActive(ctx, "u1", id); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("GetOwnedActive: expected MENU_NOT_FOUND, got %v", err)
	}
	if _, err := store.GetOwned(ctx, "u1", id); err != nil {
		t.Fatalf("deleted menu should stay readable: %v", err)
	}
}

func TestUserActions(t *testing.T) {
	store := NewStore(NewMemoryRepository())
	ctx := context.Background()
	id, _ := store.Save(ctx, "u1", sampleMenu(base))

	for _, fav := range []bool{true, false, true} {
		if err := store.SetFavorite(ctx, id, fav); err != nil {
			t.Fatalf("SetFavorite: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := store.IncrementRegeneration(ctx, id); err != nil {
			t.Fatalf("IncrementRegeneration: %v", err)
		}
	}
	if err := store.Touch(ctx, id, base); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	got, _ := store.Get(ctx, id)
	if !got.UserActions.IsFavorite || got.UserActions.RegenerationCount != 3 {
		t.Fatalf("unexpected user actions %+v", got.UserActions)
	}
	if got.UserActions.LastAccessedAt == nil || !got.UserActions.LastAccessedAt.Equal(base) {
		t.Fatalf("expected lastAccessedAt %v, got %v", base, got.UserActions.LastAccessedAt)
	}
	if err := store.SetFavorite(ctx, "missing", true); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("expected MENU_NOT_FOUND, got %v", err)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{GeneratedAt: base.Add(123 * time.Millisecond), ID: "abc|def"}
	got, err := DecodeCursor(c.Encode())
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if !got.GeneratedAt.Equal(c.GeneratedAt) || got.ID != c.ID {
		t.Fatalf("expected %+v, got %+v", c, got)
	}
}

type stubRecipes struct{}

func (stubRecipes) GetRecipes(_ context.Context, ids []string) ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Recipe{ID: id, Name: "Recipe " + id, CookingTime: 20,
			MealPrep: models.MealPrepInfo{IsEnabled: true, StorageDays: 4}})
	}
	return out, nil
}

func newTestHandler(t *testing.T) (*Handler, *Store, string) {
	t.Helper()
	store := NewStore(NewMemoryRepository())
	id, err := store.Save(context.Background(), "u1", sampleMenu(base))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	h := NewHandler(store, stubRecipes{}, "https://meals.example.com")
	h.now = func() time.Time { return base.Add(time.Hour) }
	return h, store, id
}

func asUser(req *http.Request, uid string) *http.Request {
	return req.WithContext(utils.WithUserID(req.Context(), uid))
}

func TestGetMenuHandlerTouches(t *testing.T) {
	h, store, id := newTestHandler(t)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/menus/"+id, nil), "u1")
	rec := httptest.NewRecorder()
	h.GetMenu(rec, req, httprouter.Params{{Key: "id", Value: id}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Data models.MenuDetail `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Recipes) != 7 || body.Data.Recipes[0].ID != "r1" {
		t.Fatalf("unexpected recipes %+v", body.Data.Recipes)
	}

	stored, _ := store.Get(context.Background(), id)
	if stored.UserActions.LastAccessedAt == nil {
		t.Fatal("expected lastAccessedAt to be set")
	}
}

func TestMenuHandlersHideOtherUsersMenus(t *testing.T) {
	h, _, id := newTestHandler(t)
	ps := httprouter.Params{{Key: "id", Value: id}}

	handlers := map[string]struct {
		method string
		body   string
		fn     httprouter.Handle
	}{
		"get":      {http.MethodGet, "", h.GetMenu},
		"delete":   {http.MethodDelete, "", h.DeleteMenu},
		"favorite": {http.MethodPut, `{"isFavorite":true}`, h.SetFavorite},
		"print":    {http.MethodGet, "", h.PrintMenu},
	}
	for name, tc := range handlers {
		t.Run(name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(tc.method, "/api/menus/"+id, strings.NewReader(tc.body)), "intruder")
			rec := httptest.NewRecorder()
			tc.fn(rec, req, ps)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rec.Code)
			}
			var body map[string]any
			json.NewDecoder(rec.Body).Decode(&body)
			if body["code"] != string(apperr.CodeMenuNotFound) {
				t.Fatalf("expected MENU_NOT_FOUND, got %v", body["code"])
			}
		})
	}
}

func TestFavoriteHandlerRequiresFlag(t *testing.T) {
	h, _, id := newTestHandler(t)
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/menus/"+id+"/favorite", strings.NewReader(`{}`)), "u1")
	rec := httptest.NewRecorder()
	h.SetFavorite(rec, req, httprouter.Params{{Key: "id", Value: id}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteHandler(t *testing.T) {
	h, store, id := newTestHandler(t)
	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/menus/"+id, nil), "u1")
	rec := httptest.NewRecorder()
	h.DeleteMenu(rec, req, httprouter.Params{{Key: "id", Value: id}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page, _ := store.ListForUser(context.Background(), "u1", ListFilter{}, 10, "")
	if len(page.Items) != 0 {
		t.Fatalf("deleted menu still listed")
	}
}

func TestPrintMenuHandler(t *testing.T) {
	h, _, id := newTestHandler(t)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/menus/"+id+"/print", nil), "u1")
	rec := httptest.NewRecorder()
	h.PrintMenu(rec, req, httprouter.Params{{Key: "id", Value: id}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
}

func TestRowLabel(t *testing.T) {
	tests := []struct {
		name     string
		recipe   models.Recipe
		utf8Font bool
		want     string
	}{
		{"latin", models.Recipe{ID: "r1", Name: "Crème brûlée"}, false, "Crème brûlée"},
		{"japanese without font", models.Recipe{ID: "r2", Name: "鶏の照り焼き"}, false, "r2"},
		{"japanese with font", models.Recipe{ID: "r2", Name: "鶏の照り焼き"}, true, "鶏の照り焼き"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rowLabel(tt.recipe, tt.utf8Font); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMenuLink(t *testing.T) {
	if got := MenuLink("https://meals.example.com/", "m1"); got != "https://meals.example.com/history/m1" {
		t.Fatalf("unexpected link %s", got)
	}
}

func TestFavoriteHandlerRejectsDeletedMenu(t *testing.T) {
	h, store, id := newTestHandler(t)
	store.SoftDelete(context.Background(), id, base)

	req := asUser(httptest.NewRequest(http.MethodPut, "/api/menus/"+id+"/favorite", strings.NewReader(`{"isFavorite":true}`)), "u1")
	rec := httptest.NewRecorder()
	h.SetFavorite(rec, req, httprouter.Params{{Key: "id", Value: id}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	m, _ := store.Get(context.Background(), id)
	if m.UserActions.IsFavorite {
		t.Fatal("deleted menu was favorited")
	}
}

func TestListMenusHandlerFilters(t *testing.T) {
	h, store, _ := newTestHandler(t)
	ctx := context.Background()
	// newTestHandler's menu is at base; now is base+1h
	older, _ := store.Save(ctx, "u1", sampleMenu(base.AddDate(0, 0, -3)))
	store.Save(ctx, "u1", sampleMenu(base.AddDate(0, -2, 0)))
	store.SetFavorite(ctx, older, true)

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", http.StatusOK, 3},
		{"period=today", http.StatusOK, 1},
		{"period=week", http.StatusOK, 2},
		{"period=month", http.StatusOK, 2},
		{"favorite=true", http.StatusOK, 1},
		{"since=" + base.AddDate(0, 0, -4).Format(time.RFC3339), http.StatusOK, 2},
		{"period=year", http.StatusBadRequest, 0},
		{"favorite=maybe", http.StatusBadRequest, 0},
		{"since=yesterday", http.StatusBadRequest, 0},
		{"period=week&since=2025-09-01T00:00:00Z", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodGet, "/api/menus?"+tt.query, nil), "u1")
			rec := httptest.NewRecorder()
			h.ListMenus(rec, req, nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body)
			}
			if tt.status != http.StatusOK {
				return
			}
			var body struct {
				Data models.MenuPage `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Data.Items) != tt.count {
				t.Fatalf("expected %d menus, got %d", tt.count, len(body.Data.Items))
			}
		})
	}
}

func TestDeleteAllMenusHandler(t *testing.T) {
	h, store, _ := newTestHandler(t)
	store.Save(context.Background(), "u1", sampleMenu(base.Add(time.Minute)))

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/menus", nil), "u1")
	rec := httptest.NewRecorder()
	h.DeleteAllMenus(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["deleted"] != 2 {
		t.Fatalf("expected 2 deleted, got %v", body.Data)
	}
	page, _ := store.ListForUser(context.Background(), "u1", ListFilter{}, 10, "")
	if len(page.Items) != 0 {
		t.Fatal("history not empty after delete all")
	}
}
