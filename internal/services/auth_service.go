package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
	"github.com/taskboard/taskboard-be/internal/storage"
)

// TokenIssuer creates a signed bearer token for a user. Satisfied by
// auth.Manager.
type TokenIssuer interface {
	Generate(user models.User) (token string, tokenID string, expiresAt time.Time, err error)
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Signup(ctx context.Context, email, password, name string) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Logout(ctx context.Context, tokenID string) error
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CheckSession(ctx context.Context, tokenID string) error
}

// AuthService implements signup, login and logout over the storage backend.
type AuthService struct {
	store    storage.Store
	tokens   TokenIssuer
	eventSvc EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Store, tokens TokenIssuer, eventSvc EventServiceProvider) *AuthService {
	return &AuthService{store: store, tokens: tokens, eventSvc: eventSvc}
}

// Signup registers a new user, hashing their password, and issues a session
// token. Fails with common.ErrDuplicateEmail if the email is taken.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (models.User, string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return models.User{}, "", fmt.Errorf("%w: email, password and name are required", common.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return models.User{}, "", err
	}

	s.logEvent(ctx, "auth.signup", "New account registered", user.ID)
	return user.Sanitized(), token, nil
}

// Login verifies the credentials and issues a fresh session token. Any
// failure is reported as common.ErrInvalidCredentials without revealing
// whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.User{}, "", common.ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", common.ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return models.User{}, "", err
	}

	s.logEvent(ctx, "auth.login", "Signed in", user.ID)
	return user.Sanitized(), token, nil
}

// openSession issues a token and records its session row so that the token
// can later be revoked.
func (s *AuthService) openSession(ctx context.Context, user models.User) (string, error) {
	token, tokenID, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	session := models.Session{
		TokenID:   tokenID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt.UTC(),
	}
	if err := s.store.InsertSession(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the session behind a token ID. The user record is never
// deleted. Revoking an already-revoked session reports common.ErrNotFound.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	session, err := s.store.FindSessionByTokenID(ctx, tokenID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSessionByTokenID(ctx, tokenID); err != nil {
		return err
	}
	s.logEvent(ctx, "auth.logout", "Signed out", session.UserID)
	return nil
}

// GetUserByID retrieves a user without their credential secret.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// CheckSession reports whether a token's session row is still present and
// unexpired. Implements auth.SessionChecker.
func (s *AuthService) CheckSession(ctx context.Context, tokenID string) error {
	session, err := s.store.FindSessionByTokenID(ctx, tokenID)
	if err != nil {
		return err
	}
	if time.Now().After(session.ExpiresAt) {
		return common.ErrNotFound
	}
	return nil
}

func (s *AuthService) logEvent(ctx context.Context, eventType, message, userID string) {
	if err := s.eventSvc.CreateEvent(ctx, eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record auth event")
	}
}
