package middleware

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mealprep/utils"
)

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func Authenticate(v Verifier) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			uid, err := v.Verify(r.Context(), utils.BearerToken(r))
			if err != nil {
				utils.RespondWithError(w, r, err)
				return
			}

			// Store UserID in context
			ctx := utils.WithUserID(r.Context(), uid)
			ctx = utils.WithLogger(ctx, utils.LoggerFrom(ctx).WithField("uid", uid))
			// Pass updated context to the next handler
			next(w, r.WithContext(ctx), ps)
		}
	}
}
