package auth

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

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.LoggerFrom(r.Context()).WithField("uid", res.UID).Info("user registered")
	utils.RespondWithData(w, http.StatusCreated, res, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, res, "Login successful")
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.svc.Logout(r.Context(), utils.BearerToken(r)); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, nil, "Logged out successfully")
}
