package httpapi

import (
	"net/http"
)

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := userFrom(r.Context())
	if err := s.favorites.Follow(r.Context(), id, user.Username); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := userFrom(r.Context())
	if err := s.favorites.Unfollow(r.Context(), id, user.Username); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFavoriteList(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	list, err := s.favorites.ListByUser(r.Context(), user.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
