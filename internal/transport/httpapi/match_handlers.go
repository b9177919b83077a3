package httpapi

import (
	"net/http"

	"github.com/mismarcadores/scoreboard/internal/matches"
)

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var candidate matches.CandidateMatch
	if !decodeJSON(w, r, &candidate) {
		return
	}

	match, err := s.matches.CreateMatch(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var candidate matches.CandidateMatch
	if !decodeJSON(w, r, &candidate) {
		return
	}

	match, err := s.matches.UpdateMatch(r.Context(), id, candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.matches.DeleteMatch(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMatchDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.DeleteAllMatches(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCommentAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Comment string `json:"comment"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user := userFrom(r.Context())
	comment, err := s.matches.AddComment(r.Context(), id, user.Username, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleMatchGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	match, err := s.matches.GetMatch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleMatchList(w http.ResponseWriter, r *http.Request) {
	list, err := s.matches.ListMatches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleMatchListBySport(w http.ResponseWriter, r *http.Request) {
	list, err := s.matches.ListMatchesBySport(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleMatchListByTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.matches.ListMatchesByTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
