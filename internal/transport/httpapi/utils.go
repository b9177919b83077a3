package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return false
	}
	return true
}

// pathID parses the {id} path segment as a UUID; a malformed id is reported
// as not-found, matching how absent resources behave.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorBody(w, http.StatusNotFound, "not_found", "no such resource")
		return uuid.Nil, false
	}
	return id, true
}
