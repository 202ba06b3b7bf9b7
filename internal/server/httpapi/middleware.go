package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/careerhub/jobportal/internal/server/auth"
	"github.com/julienschmidt/httprouter"
)

type contextKey string

const accountIDKey contextKey = "account_id"

func accountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok && id != ""
}

// authenticated wraps a route with token verification. The token is read from
// the session cookie, or from an Authorization: Bearer header as a fallback
// for non-browser clients.
func (h *Handler) authenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := ""
		if c, err := r.Cookie(sessionCookieName); err == nil {
			token = c.Value
		} else if v := r.Header.Get("Authorization"); strings.HasPrefix(v, "Bearer ") {
			token = strings.TrimPrefix(v, "Bearer ")
		}

		if token == "" {
			fail(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		accountID, err := auth.GetUserIDFromToken(token, h.jwtSecret)
		if err != nil {
			fail(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next(w, r.WithContext(ctx), ps)
	}
}
