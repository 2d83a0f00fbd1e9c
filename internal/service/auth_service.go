package service

import (
	"context"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService struct {
	userService *UserService
	users       repository.UserRepository
	cfg         *config.Config
}

func NewAuthService(userService *UserService, users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userService: userService,
		users:       users,
		cfg:         cfg,
	}
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userService.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.CreateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: token}, nil
}

// CreateAccessToken issues the session JWT and stores its fingerprint on
// the user row so logout (or a newer login) can invalidate it.
func (s *AuthService) CreateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	if !user.IsVerified {
		return "", domain.ErrNotVerified
	}

	token, err := signToken(s.cfg.JWTSecret, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
	}, s.cfg.AccessTokenTTL)
	if err != nil {
		return "", err
	}

	user.AccessTokenHash = fingerprint(token)
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) (string, error) {
	return s.userService.DeleteAccessToken(ctx, token)
}

type TokenClaims struct {
	UserID uuid.UUID
	Role   domain.Role
}

// Authorize gates authenticated requests: the token must verify and must be
// the session currently stored for its subject, so logout and re-login both
// kill older tokens immediately.
func (s *AuthService) Authorize(ctx context.Context, token string) (*TokenClaims, error) {
	user, ok := s.userService.IsCorrectAccessToken(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &TokenClaims{UserID: user.ID, Role: user.Role}, nil
}
