package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/davidmarquez/tastebite-backend/internal/users"
	pkgauth "github.com/davidmarquez/tastebite-backend/pkg/auth"
	"github.com/davidmarquez/tastebite-backend/pkg/auth/session"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func assertCoded(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  address_line TEXT,
  city TEXT,
  postal_code TEXT,
  avatar_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS roles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS user_roles (
  user_id TEXT NOT NULL,
  role_id TEXT NOT NULL,
  PRIMARY KEY (user_id, role_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, role := range []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleDriver, enums.UserRoleAdmin} {
		require.NoError(t, db.Create(&models.Role{ID: uuid.New(), Name: role}).Error)
	}
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// memorySessions mirrors the redis-backed manager: one refresh token keyed by
// access ID, rotation invalidates the old entry.
type memorySessions struct {
	mu      sync.Mutex
	tokens  map[string]string
	counter int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{tokens: make(map[string]string)}
}

func (m *memorySessions) Generate(_ context.Context, accessID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	token := fmt.Sprintf("refresh-token-%d", m.counter)
	m.tokens[accessID] = token
	return token, nil
}

func (m *memorySessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(m.tokens, oldAccessID)
	m.counter++
	newAccessID := session.NewAccessID()
	token := fmt.Sprintf("refresh-token-%d", m.counter)
	m.tokens[newAccessID] = token
	return newAccessID, token, nil
}

func (m *memorySessions) Revoke(_ context.Context, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, accessID)
	return nil
}

func (m *memorySessions) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

type memoryLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{counts: make(map[string]int64)}
}

func (l *memoryLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[scope]++
	return l.counts[scope] <= limit, l.counts[scope], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "tastebite-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

// Small argon parameters keep the hashing fast under test.
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func testRateLimits() config.AuthRateLimitConfig {
	return config.AuthRateLimitConfig{
		LoginWindow:        time.Minute,
		LoginEmailLimit:    5,
		LoginIPLimit:       20,
		RegisterWindow:     5 * time.Minute,
		RegisterEmailLimit: 3,
		RegisterIPLimit:    20,
	}
}

type authFixture struct {
	svc      Service
	db       *gorm.DB
	sessions *memorySessions
	limiter  *memoryLimiter
}

func newAuthFixture(t *testing.T, rl config.AuthRateLimitConfig) authFixture {
	t.Helper()
	db := setupAuthTestDB(t)
	sessions := newMemorySessions()
	limiter := newMemoryLimiter()
	svc, err := NewService(ServiceParams{
		Tx:             gormTxRunner{db: db},
		UserRepo:       users.NewRepository(db),
		SessionManager: sessions,
		RateLimiter:    limiter,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
		RateLimits:     rl,
	})
	require.NoError(t, err)
	return authFixture{svc: svc, db: db, sessions: sessions, limiter: limiter}
}

func TestRegisterCreatesCustomerAndSignsIn(t *testing.T) {
	fx := newAuthFixture(t, testRateLimits())

	result, err := fx.svc.Register(context.Background(), RegisterInput{
		Email:    "  Maria@Example.COM ",
		Password: "correct horse battery",
		Name:     "Maria Lopez",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", result.User.Email)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, []enums.UserRole{enums.UserRoleCustomer}, claims.Roles)

	var stored models.User
	require.NoError(t, fx.db.Preload("Roles").First(&stored, "email = ?", "maria@example.com").Error)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	require.Len(t, stored.Roles, 1)
	assert.Equal(t, enums.UserRoleCustomer, stored.Roles[0].Name)

	_, err = fx.svc.Register(context.Background(), RegisterInput{
		Email:    "maria@example.com",
		Password: "another password",
		Name:     "Impostor",
	})
	assertCoded(t, err, pkgerrors.CodeConflict)
}

func TestRegisterValidation(t *testing.T) {
	fx := newAuthFixture(t, testRateLimits())

	_, err := fx.svc.Register(context.Background(), RegisterInput{Password: "long enough pw", Name: "No Email"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = fx.svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short", Name: "Short PW"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = fx.svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "long enough pw"})
	assertCoded(t, err, pkgerrors.CodeValidation)
}

func TestLoginVerifiesPassword(t *testing.T) {
	fx := newAuthFixture(t, testRateLimits())

	_, err := fx.svc.Register(context.Background(), RegisterInput{
		Email:    "diego@example.com",
		Password: "a fine password",
		Name:     "Diego",
	})
	require.NoError(t, err)

	result, err := fx.svc.Login(context.Background(), LoginInput{
		Email:    "DIEGO@example.com",
		Password: "a fine password",
	})
	require.NoError(t, err)
	assert.Equal(t, "diego@example.com", result.User.Email)
	require.NotEmpty(t, result.Tokens.RefreshToken)

	_, err = fx.svc.Login(context.Background(), LoginInput{
		Email:    "diego@example.com",
		Password: "wrong password",
	})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	// Unknown accounts fail the same way as bad passwords.
	_, err = fx.svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever works",
	})
	assertCoded(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginRateLimitedPerEmail(t *testing.T) {
	rl := testRateLimits()
	rl.LoginEmailLimit = 2
	fx := newAuthFixture(t, rl)

	for i := 0; i < 2; i++ {
		_, err := fx.svc.Login(context.Background(), LoginInput{
			Email:    "target@example.com",
			Password: "guess",
			RemoteIP: "10.0.0.1",
		})
		assertCoded(t, err, pkgerrors.CodeUnauthorized)
	}

	_, err := fx.svc.Login(context.Background(), LoginInput{
		Email:    "target@example.com",
		Password: "guess",
		RemoteIP: "10.0.0.1",
	})
	assertCoded(t, err, pkgerrors.CodeRateLimit)
}

func TestRefreshRotatesSession(t *testing.T) {
	fx := newAuthFixture(t, testRateLimits())

	registered, err := fx.svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "a fine password",
		Name:     "Ana",
	})
	require.NoError(t, err)

	rotated, err := fx.svc.Refresh(context.Background(), registered.Tokens.AccessToken, registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Tokens.RefreshToken, rotated.RefreshToken)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	// The replaced refresh token is burned.
	_, err = fx.svc.Refresh(context.Background(), registered.Tokens.AccessToken, registered.Tokens.RefreshToken)
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	_, err = fx.svc.Refresh(context.Background(), "not-a-jwt", rotated.RefreshToken)
	assertCoded(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	fx := newAuthFixture(t, testRateLimits())

	result, err := fx.svc.Register(context.Background(), RegisterInput{
		Email:    "luis@example.com",
		Password: "a fine password",
		Name:     "Luis",
	})
	require.NoError(t, err)
	require.Equal(t, 1, fx.sessions.active())

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Tokens.AccessToken)
	require.NoError(t, err)
	require.NoError(t, fx.svc.Logout(context.Background(), claims.ID))
	assert.Equal(t, 0, fx.sessions.active())

	_, err = fx.svc.Refresh(context.Background(), result.Tokens.AccessToken, result.Tokens.RefreshToken)
	assertCoded(t, err, pkgerrors.CodeUnauthorized)

	require.Error(t, fx.svc.Logout(context.Background(), "  "))
}
