package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClaims implements UserClaims for middleware tests.
type stubClaims struct {
	userID uuid.UUID
	admin  bool
}

func (c *stubClaims) GetUserID() uuid.UUID { return c.userID }
func (c *stubClaims) IsAdmin() bool        { return c.admin }

// stubValidator accepts exactly one token string.
type stubValidator struct {
	token  string
	claims *stubClaims
}

func (v *stubValidator) ValidateToken(tokenString string) (UserClaims, error) {
	if tokenString != v.token {
		return nil, errors.New("invalid token")
	}
	return v.claims, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: userID}}

	var gotUserID uuid.UUID
	var gotAdmin bool
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = id
		gotAdmin = IsAdmin(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/letters/generate", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.False(t, gotAdmin)
}

func TestAuthMiddleware_AdminClaimPropagates(t *testing.T) {
	validator := &stubValidator{token: "admin-token", claims: &stubClaims{userID: uuid.New(), admin: true}}

	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, IsAdmin(r))
	}))

	req := httptest.NewRequest(http.MethodPut, "/templates/abc", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: uuid.New()}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for rejected requests")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "good-token"},
		{name: "wrong scheme", header: "Basic good-token"},
		{name: "empty token", header: "Bearer "},
		{name: "invalid token", header: "Bearer bad-token"},
		{name: "too many parts", header: "Bearer good-token extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/letters/generate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	validator := &stubValidator{token: "good-token", claims: &stubClaims{userID: uuid.New()}}

	called := false
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/letters/generate", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestIsAdmin_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsAdmin(req))
}

func TestIsAdmin_FalseValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), AdminKey(), false)
	assert.False(t, IsAdmin(req.WithContext(ctx)))
}
