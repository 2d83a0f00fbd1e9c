package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/middleware"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
)

type AccountHandler struct {
	userService *service.UserService
}

func NewAccountHandler(userService *service.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

type CreateAccountRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	IsPublicEmail bool   `json:"isPublicEmail"`
	IsPublicName  bool   `json:"isPublicName"`
}

type UpdateAccountRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	UserName      *string `json:"userName"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	IsPublicEmail *bool   `json:"isPublicEmail"`
	IsPublicName  *bool   `json:"isPublicName"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.UserName == "" || req.Email == "" || req.Password == "" {
		respondBadRequest(w, "firstName, lastName, userName, email and password are required")
		return
	}

	role := domain.Role(req.Role)
	if req.Role != "" && role != domain.RoleUser && role != domain.RoleModerator {
		respondBadRequest(w, "role must be USER or MODERATOR")
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		UserName:      req.UserName,
		Email:         req.Email,
		Password:      req.Password,
		Role:          role,
		IsPublicEmail: req.IsPublicEmail,
		IsPublicName:  req.IsPublicName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "Account created", user)
}

func (h *AccountHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("confirmToken")
	if token == "" {
		respondBadRequest(w, "confirmToken is required")
		return
	}

	message, err := h.userService.ConfirmAccount(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, message, nil)
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}

	user, err := h.userService.Find(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "user found", user)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), userID, service.UpdateUserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		UserName:      req.UserName,
		Email:         req.Email,
		Password:      req.Password,
		IsPublicEmail: req.IsPublicEmail,
		IsPublicName:  req.IsPublicName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "user updated", user)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, domain.ErrInvalidToken)
		return
	}

	message, err := h.userService.Delete(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, message, nil)
}
