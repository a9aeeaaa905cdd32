package catalog

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

// GET /api/ingredients/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cats, err := h.svc.ListActiveCategories(r.Context())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, cats, "")
}

// GET /api/ingredients?categoryId=&limit=&offset=
func (h *Handler) GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := utils.ParsePageOptions(r, DefaultIngredientLimit)
	res, err := h.svc.ListIngredients(r.Context(), r.URL.Query().Get("categoryId"), page.Limit, page.Offset)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, res, "")
}
