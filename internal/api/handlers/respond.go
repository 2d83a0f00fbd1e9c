package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Message: message, Data: data})
}

// respondError is the single translation point from service errors to the
// HTTP envelope. Anything outside the taxonomy becomes a generic 500; the
// real error is logged, never echoed.
func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("unhandled error")
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: http.StatusText(status), Message: message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(errorEnvelope{Error: http.StatusText(http.StatusBadRequest), Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotPostOwner),
		errors.Is(err, domain.ErrNotCommentOwner),
		errors.Is(err, domain.ErrNotVerified):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUserNameTaken),
		errors.Is(err, domain.ErrAlreadyLikedPost),
		errors.Is(err, domain.ErrAlreadyLikedComment),
		errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
