package profile

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mealprep/models"
	"mealprep/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// updateRequest is a partial User. Absent fields stay unchanged.
type updateRequest struct {
	DisplayName     models.Optional[string] `json:"displayName"`
	ProfileImageURL models.Optional[string] `json:"profileImageUrl"`
	Profile         *struct {
		Allergies             models.Optional[[]string]          `json:"allergies"`
		DislikedIngredients   models.Optional[[]string]          `json:"dislikedIngredients"`
		LikedIngredients      models.Optional[[]string]          `json:"likedIngredients"`
		CookingTimePreference models.Optional[int]               `json:"cookingTimePreference"`
		SpiceLevel            models.Optional[models.SpiceLevel] `json:"spiceLevel"`
		CalorieTarget         models.Optional[int]               `json:"calorieTarget"`
		StorageDay            models.Optional[int]               `json:"storageDay"`
	} `json:"profile"`
	Notifications models.Optional[models.NotificationSettings] `json:"notifications"`
}

func (req updateRequest) toUpdate() models.ProfileUpdate {
	u := models.ProfileUpdate{
		DisplayName:     req.DisplayName,
		ProfileImageURL: req.ProfileImageURL,
		Notifications:   req.Notifications,
	}
	if p := req.Profile; p != nil {
		u.Allergies = p.Allergies
		u.DislikedIngredients = p.DislikedIngredients
		u.LikedIngredients = p.LikedIngredients
		u.CookingTimePreference = p.CookingTimePreference
		u.SpiceLevel = p.SpiceLevel
		u.CalorieTarget = p.CalorieTarget
		u.StorageDay = p.StorageDay
	}
	return u
}

// GET /api/user/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.svc.Get(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, user, "")
}

// PUT /api/user/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// 1. Decode the partial user.
	var req updateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	// 2. Validate and persist only the fields that were sent.
	user, err := h.svc.Update(r.Context(), utils.GetUserIDFromRequest(r), req.toUpdate())
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	// 3. Respond with the updated profile.
	utils.RespondWithData(w, http.StatusOK, user, "Profile updated")
}
