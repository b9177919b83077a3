package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mismarcadores/scoreboard/internal/apperrors"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError maps a business failure to a status code. Store-level failures
// come out as 500 without leaking driver detail.
func writeError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindStorage {
		log.Error().Err(err).Msg("request failed on storage")
		writeErrorBody(w, http.StatusInternalServerError, string(kind), "store unavailable")
		return
	}

	var e *apperrors.Error
	message := err.Error()
	if errors.As(err, &e) {
		message = e.Message
	}
	writeErrorBody(w, statusForKind(kind), string(kind), message)
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeErrorBody(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Kind: kind, Message: message}})
}
