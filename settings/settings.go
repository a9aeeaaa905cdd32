package settings

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mealprep/models"
	"mealprep/utils"
)

// Profiles is the part of the profile store the settings screen uses.
type Profiles interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	Update(ctx context.Context, uid string, update models.ProfileUpdate) (*models.User, error)
}

type Handler struct {
	profiles Profiles
}

func NewHandler(profiles Profiles) *Handler {
	return &Handler{profiles: profiles}
}

// GetNotificationSettings returns the caller's notification settings.
func (h *Handler) GetNotificationSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.profiles.Get(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, user.Notifications, "")
}

// UpdateNotificationSettings replaces the caller's notification settings.
// Validation happens in the profile store.
func (h *Handler) UpdateNotificationSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var settings models.NotificationSettings
	if err := utils.DecodeJSON(r, &settings); err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	user, err := h.profiles.Update(r.Context(), utils.GetUserIDFromRequest(r), models.ProfileUpdate{
		Notifications: models.Set(settings),
	})
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, user.Notifications, "Setting updated successfully")
}
