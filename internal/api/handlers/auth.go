package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/middleware"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        domain.UserView `json:"user"`
	AccessToken string          `json:"accessToken"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondBadRequest(w, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "login successful", LoginResponse{
		User:        result.User.View(),
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}

	message, err := h.authService.Logout(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, message, nil)
}
