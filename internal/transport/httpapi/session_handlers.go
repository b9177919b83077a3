package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	session, err := s.sessions.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": session.Token.String()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(r.Header.Get(SessionTokenHeader))
	if err != nil {
		writeErrorBody(w, http.StatusUnauthorized, "authentication", "missing or malformed session token")
		return
	}
	if err := s.sessions.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
