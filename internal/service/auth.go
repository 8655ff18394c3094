package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// AuthService handles account registration and credential-based login. It
// issues the HS256 tokens that both the REST middleware and the websocket
// endpoint verify.
type AuthService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	jwtExpiry   time.Duration
}

// NewAuthService creates the service. jwtExpiryHours must be positive.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiryHours int) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("UserRepository cannot be nil for AuthService")
	}
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty for AuthService")
	}
	if jwtExpiryHours <= 0 {
		return nil, fmt.Errorf("invalid JWT expiry: %d hours", jwtExpiryHours)
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: time.Duration(jwtExpiryHours) * time.Hour,
	}, nil
}

// Register creates a new account with a bcrypt-hashed password. The returned
// user never carries the password hash.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		logCtx.Warn("Registration rejected: username taken")
		return nil, ErrRegistrationFailed
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Failed to check username availability")
		return nil, ErrInternalServer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		LastSeen: time.Now(),
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration rejected: duplicate entry on save")
			return nil, ErrRegistrationFailed
		}
		logCtx.WithError(err).Error("Failed to save new user")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered")
	user.Password = ""
	return user, nil
}

// Login verifies credentials and returns a signed token. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login rejected: unknown username")
			return "", ErrAuthenticationFailed
		}
		logCtx.WithError(err).Error("Failed to look up user for login")
		return "", ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logCtx.Warn("Login rejected: bad password")
		return "", ErrAuthenticationFailed
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign JWT")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return signed, nil
}
