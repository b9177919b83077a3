package httpapi

import (
	"net/http"

	"github.com/mismarcadores/scoreboard/internal/teams"
)

func (s *Server) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	var req teams.CreateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	team, err := s.teams.CreateTeam(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (s *Server) handleTeamList(w http.ResponseWriter, r *http.Request) {
	opts := teams.ListFilter{
		Filter: r.URL.Query().Get("filter"),
		Order:  r.URL.Query().Get("order"),
	}
	list, err := s.teams.ListTeams(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTeamGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	team, err := s.teams.GetTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req teams.UpdateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	team, err := s.teams.UpdateTeam(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.teams.DeleteTeam(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
