package menus

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"mealprep/apperr"
	"mealprep/models"
	"mealprep/utils"
)

// RecipeLookup resolves recipe bodies in the order of ids.
type RecipeLookup interface {
	GetRecipes(ctx context.Context, ids []string) ([]models.Recipe, error)
}

type Handler struct {
	store    *Store
	recipes  RecipeLookup
	baseURL  string
	fontPath string
	now      func() time.Time
}

func NewHandler(store *Store, recipes RecipeLookup, publicBaseURL string) *Handler {
	return &Handler{store: store, recipes: recipes, baseURL: publicBaseURL, now: time.Now}
}

// WithFont makes printouts draw recipe names with the UTF-8 TTF at path.
func (h *Handler) WithFont(path string) *Handler {
	h.fontPath = path
	return h
}

// parseListFilter reads the history filters: favorite=true, ingredient=<id>,
// and either since=<RFC3339> or period=today|week|month.
func parseListFilter(r *http.Request, now time.Time) (ListFilter, error) {
	q := r.URL.Query()
	var f ListFilter

	if raw := q.Get("favorite"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperr.Validation("favorite must be true or false")
		}
		f.FavoritesOnly = fav
	}
	f.Ingredient = strings.TrimSpace(q.Get("ingredient"))

	since, period := q.Get("since"), q.Get("period")
	switch {
	case since != "" && period != "":
		return f, apperr.Validation("Use either since or period, not both")
	case since != "":
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return f, apperr.Validation("since must be an RFC 3339 timestamp")
		}
		f.Since = t.UTC()
	case period != "":
		now = now.UTC()
		switch period {
		case "today":
			f.Since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		case "week":
			f.Since = now.AddDate(0, 0, -7)
		case "month":
			f.Since = now.AddDate(0, -1, 0)
		default:
			return f, apperr.Validation("period must be today, week or month")
		}
	}
	return f, nil
}

// GET /api/menus?limit=&cursor=&favorite=&ingredient=&since=|period=
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	filter, err := parseListFilter(r, h.now())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	page, err := h.store.ListForUser(r.Context(), userID, filter, utils.QueryInt(r, "limit", DefaultPageSize), r.URL.Query().Get("cursor"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, page, "")
}

// GET /api/menus/:id
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	menu, err := h.store.GetOwned(ctx, userID, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	now := h.now()
	if err := h.store.Touch(ctx, menu.ID, now); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	at := now.UTC().Truncate(time.Millisecond)
	menu.UserActions.LastAccessedAt = &at

	recipes, err := h.recipes.GetRecipes(ctx, menu.DailyRecipes.IDs())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, models.MenuDetail{WeeklyMenu: *menu, Recipes: recipes}, "")
}

// DELETE /api/menus/:id
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	menu, err := h.store.GetOwned(ctx, userID, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	if err := h.store.SoftDelete(ctx, menu.ID, h.now()); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.LoggerFrom(ctx).WithField("menuId", menu.ID).Info("weekly menu deleted")
	utils.RespondWithData(w, http.StatusOK, nil, "Weekly menu deleted")
}

// DELETE /api/menus
func (h *Handler) DeleteAllMenus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	n, err := h.store.SoftDeleteAll(ctx, utils.GetUserIDFromRequest(r), h.now())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.LoggerFrom(ctx).WithField("deleted", n).Info("weekly menu history deleted")
	utils.RespondWithData(w, http.StatusOK, map[string]int{"deleted": n}, "Weekly menu history deleted")
}

type favoriteRequest struct {
	IsFavorite *bool `json:"isFavorite"`
}

// PUT /api/menus/:id/favorite
func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var req favoriteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	if req.IsFavorite == nil {
		utils.RespondWithError(w, r, apperr.Validation("isFavorite is required"))
		return
	}

	menu, err := h.store.GetOwnedActive(ctx, userID, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	if err := h.store.SetFavorite(ctx, menu.ID, *req.IsFavorite); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	menu.UserActions.IsFavorite = *req.IsFavorite
	utils.RespondWithData(w, http.StatusOK, menu, "")
}

// GET /api/menus/:id/print
func (h *Handler) PrintMenu(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	menu, err := h.store.GetOwned(ctx, userID, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	recipes, err := h.recipes.GetRecipes(ctx, menu.DailyRecipes.IDs())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	pdf, err := RenderPDF(*menu, recipes, MenuLink(h.baseURL, menu.ID), h.fontPath)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=menu-"+menu.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
