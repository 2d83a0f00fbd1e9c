package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/event"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	users  repository.UserRepository
	outbox repository.OutboxRepository
	cfg    *config.Config
}

func NewUserService(users repository.UserRepository, outbox repository.OutboxRepository, cfg *config.Config) *UserService {
	return &UserService{
		users:  users,
		outbox: outbox,
		cfg:    cfg,
	}
}

type CreateUserInput struct {
	FirstName     string
	LastName      string
	UserName      string
	Email         string
	Password      string
	Role          domain.Role
	IsPublicEmail bool
	IsPublicName  bool
}

type UpdateUserInput struct {
	FirstName     *string
	LastName      *string
	UserName      *string
	Email         *string
	Password      *string
	IsPublicEmail *bool
	IsPublicName  *bool
}

// Create registers an account and enqueues the confirmation mail. The
// enqueue is fire-and-forget from the caller's perspective; a failure is
// logged, never surfaced to the registration request.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (domain.UserView, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return domain.UserView{}, domain.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserView{}, err
	}

	if _, err := s.users.GetByUserName(ctx, input.UserName); err == nil {
		return domain.UserView{}, domain.ErrUserNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserView{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserView{}, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		ID:            uuid.New(),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		UserName:      input.UserName,
		Email:         input.Email,
		PasswordHash:  string(hashedPassword),
		Role:          role,
		IsPublicEmail: input.IsPublicEmail,
		IsPublicName:  input.IsPublicName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.UserView{}, err
	}

	if _, err := s.outbox.Enqueue(ctx, event.TopicAccountConfirmation, event.AccountConfirmationPayload{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		logrus.WithError(err).WithField("user", user.ID).Error("failed to enqueue confirmation mail")
	}

	return user.View(), nil
}

func (s *UserService) Find(ctx context.Context, id uuid.UUID) (domain.UserView, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return domain.UserView{}, err
	}
	return user.View(), nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (domain.UserView, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return domain.UserView{}, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.UserName != nil {
		user.UserName = *input.UserName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsPublicEmail != nil {
		user.IsPublicEmail = *input.IsPublicEmail
	}
	if input.IsPublicName != nil {
		user.IsPublicName = *input.IsPublicName
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.UserView{}, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return domain.UserView{}, err
	}
	return user.View(), nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.get(ctx, id); err != nil {
		return "", err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("deleted user with id: %s", id), nil
}

// GenerateConfirmationToken issues a short-lived token bound to the user and
// persists it so confirmation can check it is the latest one issued.
func (s *UserService) GenerateConfirmationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.get(ctx, userID)
	if err != nil {
		return "", err
	}

	token, err := signToken(s.cfg.JWTSecret, jwt.MapClaims{"sub": user.ID.String()}, s.cfg.ConfirmTokenTTL)
	if err != nil {
		return "", err
	}

	user.VerifyToken = token
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) ConfirmAccount(ctx context.Context, token string) (string, error) {
	claims, err := parseToken(s.cfg.JWTSecret, token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// A token whose subject no longer resolves is just an invalid token.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}

	if user.VerifyToken != token {
		return "", domain.ErrInvalidToken
	}
	if user.IsVerified {
		return "", domain.ErrAlreadyVerified
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return "Account confirmated", nil
}

// Authenticate returns the same error whether the email is unknown or the
// password is wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// IsCorrectAccessToken reports whether the presented token is both a valid
// JWT and the one currently stored for its subject.
func (s *UserService) IsCorrectAccessToken(ctx context.Context, token string) (*domain.User, bool) {
	claims, err := parseToken(s.cfg.JWTSecret, token)
	if err != nil {
		return nil, false
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, false
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, false
	}

	if !fingerprintMatches(user.AccessTokenHash, token) {
		return nil, false
	}
	return user, true
}

func (s *UserService) DeleteAccessToken(ctx context.Context, token string) (string, error) {
	user, ok := s.IsCorrectAccessToken(ctx, token)
	if !ok {
		return "", domain.ErrInvalidToken
	}

	user.AccessTokenHash = ""
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return "session closed", nil
}

func (s *UserService) get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
