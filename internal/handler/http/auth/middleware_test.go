package auth_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/repository/mock"
)

const secret = "test-secret-key-at-least-32-characters-long"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return "Bearer " + s
}

func validToken(t *testing.T, sub string) string {
	return sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
}

// echoUser writes the user found in the context.
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID.String(), "admin": u.Admin})
	})
}

func serve(h http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me/feed", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireUser(t *testing.T) {
	a := auth.NewAuthenticator(secret, nil)
	h := a.RequireUser(echoUser())
	user := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		rec := serve(h, validToken(t, user.String()))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"`+user.String()+`","admin":false}`, rec.Body.String())
	})

	rejected := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage", "Bearer not.a.jwt"},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-1234"),
			jwt.RegisteredClaims{Subject: user.String(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret),
			jwt.RegisteredClaims{Subject: user.String(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})},
		{"no exp", sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: user.String()})},
		{"HS512 is not accepted", sign(t, jwt.SigningMethodHS512, []byte(secret),
			jwt.RegisteredClaims{Subject: user.String(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})},
		{"subject not a uuid", validToken(t, "42")},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.authz)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "unauthorized")
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name     string
		profile  *entity.Profile
		err      error
		wantCode int
	}{
		{"admin", &entity.Profile{ID: user, Role: entity.RoleAdmin}, nil, http.StatusOK},
		{"regular user", &entity.Profile{ID: user, Role: entity.RoleUser}, nil, http.StatusForbidden},
		{"no profile", nil, nil, http.StatusForbidden},
		{"lookup error", nil, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := mock.NewMockProfileRepository(gomock.NewController(t))
			profiles.EXPECT().Get(gomock.Any(), user).Return(tt.profile, tt.err)

			h := auth.NewAuthenticator(secret, profiles).RequireAdmin(echoUser())
			rec := serve(h, validToken(t, user.String()))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"id":"`+user.String()+`","admin":true}`, rec.Body.String())
			}
		})
	}
}

func TestRequireAdmin_InvalidTokenSkipsLookup(t *testing.T) {
	// Get が呼ばれたら gomock が失敗させる
	profiles := mock.NewMockProfileRepository(gomock.NewController(t))
	h := auth.NewAuthenticator(secret, profiles).RequireAdmin(echoUser())

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
}
