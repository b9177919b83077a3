package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mismarcadores/scoreboard/internal/models"
)

// SessionTokenHeader carries the opaque session token on every authenticated
// request.
const SessionTokenHeader = "X-Session-Token"

type ctxKeyUser struct{}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, user)
}

func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(ctxKeyUser{}).(*models.User)
	return user
}

// requireSession resolves the session token header before the wrapped
// handler runs. A missing or malformed token is a client error (401); no
// validation or store mutation happens first.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := uuid.Parse(r.Header.Get(SessionTokenHeader))
		if err != nil {
			writeErrorBody(w, http.StatusUnauthorized, "authentication", "missing or malformed session token")
			return
		}

		user, err := s.sessions.ResolveUser(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		next(w, r.WithContext(withUser(r.Context(), user)))
	}
}

// requireAdmin additionally requires the resolved user to be an admin.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireSession(func(w http.ResponseWriter, r *http.Request) {
		if user := userFrom(r.Context()); user == nil || !user.IsAdmin {
			writeErrorBody(w, http.StatusForbidden, "authorization", "admin privileges required")
			return
		}
		next(w, r)
	})
}
