package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/ctcourse/internal/auth"
	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/project"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondFailure maps a domain error onto an HTTP status. Validation errors
// carry their message to the client; anything unrecognized is treated as the
// backing store being unavailable.
func respondFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, course.ErrModuleNotFound):
		respondError(w, http.StatusNotFound, "module not found")
	case errors.Is(err, course.ErrPrerequisiteNotMet):
		respondError(w, http.StatusForbidden, "you must complete the previous module first")
	case errors.Is(err, project.ErrUnknownField),
		errors.Is(err, project.ErrAnswerTooShort),
		errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordMismatch):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "you must be logged in to access this page")
	default:
		respondError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	}
}
