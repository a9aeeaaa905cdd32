package utils

import (
	"context"
	"net/http"
	"strings"

	"mealprep/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// WithUserID stores the authenticated user id on ctx.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, globals.UserIDKey, uid)
}

// BearerToken returns the credential from an "Authorization: Bearer" header,
// or "" when there is none.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 8 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
