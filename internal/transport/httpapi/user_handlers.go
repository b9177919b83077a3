package httpapi

import (
	"net/http"

	"github.com/mismarcadores/scoreboard/internal/users"
)

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var req users.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.users.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
