package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard-be/internal/models"
)

// Claims defines the JWT claims structure. The registered ID claim (jti)
// ties the token to a stored session row, so logout can revoke it.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

// UserClaimsKey is the context key for user claims.
const UserClaimsKey = contextKey("userClaims")

// ClaimsFromContext extracts the authenticated claims set by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// SessionChecker reports whether the session behind a token ID is still
// active. A revoked or expired session makes the token unusable even if
// its signature is valid.
type SessionChecker interface {
	CheckSession(ctx context.Context, tokenID string) error
}

// Manager issues and validates bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager with an explicit signing secret and token
// lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Generate creates a new signed token for a user and returns the token,
// its ID and its expiry.
func (m *Manager) Generate(user models.User) (string, string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(m.ttl)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, tokenID, expiresAt, nil
}

// Validate parses and validates a token string.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware protects routes. The token is taken from the Authorization
// header, the "token" cookie, or the "token" query parameter (used by the
// websocket endpoint, where browsers cannot set headers).
func (m *Manager) Middleware(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				unauthorized(w, "Missing auth token")
				return
			}

			claims, err := m.Validate(tokenStr)
			if err != nil {
				unauthorized(w, "Invalid auth token")
				return
			}

			if err := sessions.CheckSession(r.Context(), claims.ID); err != nil {
				unauthorized(w, "Session expired or revoked")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) == 2 {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
