package recipes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mealprep/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /api/recipes/generate
func (h *Handler) GenerateRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// --- Decode request ---
	var req GenerateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	// --- Plan and store the week ---
	res, err := h.svc.Generate(r.Context(), utils.GetUserIDFromRequest(r), req)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	utils.LoggerFrom(r.Context()).WithField("menuId", res.ID).Info("weekly menu generated")
	utils.RespondWithData(w, http.StatusOK, res, "Weekly menu generated")
}

// GET /api/recipes/:id
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipe, err := h.svc.GetRecipe(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, recipe, "")
}
