package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errForbidden    = errors.New("forbidden: admin role required")
)

// Authenticator validates HS256 tokens signed with the identity service's
// shared secret. The token subject is the user's UUID; the admin role is
// read from the profiles table, never from the token.
type Authenticator struct {
	secret   []byte
	profiles repository.ProfileRepository
	parser   *jwt.Parser
}

func NewAuthenticator(secret string, profiles repository.ProfileRepository) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		profiles: profiles,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// RequireUser rejects requests without a valid token with 401.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			recordAuth("user", false)
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		recordAuth("user", true)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), User{ID: userID})))
	})
}

// RequireAdmin additionally requires profiles.role = 'admin' and answers
// 403 otherwise.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			recordAuth("admin", false)
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}

		profile, err := a.profiles.Get(r.Context(), userID)
		if err != nil {
			slog.Error("admin check failed", slog.String("user_id", userID.String()), slog.Any("error", err))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		if profile == nil || !profile.IsAdmin() {
			recordAuth("admin", false)
			forbiddenAttempts.WithLabelValues(r.Method).Inc()
			respond.SafeError(w, http.StatusForbidden, errForbidden)
			return
		}

		recordAuth("admin", true)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), User{ID: userID, Admin: true})))
	})
}

func (a *Authenticator) authenticate(header string) (uuid.UUID, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return uuid.Nil, errMissingToken
	}

	var claims jwt.RegisteredClaims
	tok, err := a.parser.ParseWithClaims(strings.TrimSpace(header[len(prefix):]), &claims,
		func(*jwt.Token) (any, error) { return a.secret, nil })
	if err != nil || !tok.Valid {
		return uuid.Nil, errInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}
	return id, nil
}
