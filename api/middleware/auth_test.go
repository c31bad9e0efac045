package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/davidmarquez/tastebite-backend/pkg/auth"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authTestJWT = config.JWTConfig{
	Secret:            "middleware-secret",
	Issuer:            "tastebite-test",
	ExpirationMinutes: 15,
}

type staticChecker struct {
	ok bool
}

func (s staticChecker) HasSession(context.Context, string) (bool, error) {
	return s.ok, nil
}

func mintTestToken(t *testing.T, userID uuid.UUID, roles []enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(authTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Roles:  roles,
		JTI:    uuid.NewString(),
	})
	require.NoError(t, err)
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleDriver})

	var seenUser uuid.UUID
	var seenRoles []string
	handler := Auth(authTestJWT, staticChecker{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFromContext(r.Context())
		seenRoles = RolesFromContext(r.Context())
		assert.NotEmpty(t, AccessIDFromContext(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seenUser)
	assert.Equal(t, []string{"customer", "driver"}, seenRoles)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(authTestJWT, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), []enums.UserRole{enums.UserRoleCustomer})
	handler := Auth(authTestJWT, staticChecker{ok: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	allowed := false
	handler := RequireRole(enums.UserRoleAdmin, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req = req.WithContext(WithRoles(req.Context(), []string{"customer"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, allowed)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req = req.WithContext(WithRoles(req.Context(), []string{"customer", "admin"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, allowed)
}
