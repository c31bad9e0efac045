package users

import (
	"context"
	"testing"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func setupUsersTestDB(t *testing.T) *gorm.DB {
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

	for _, name := range []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleDriver, enums.UserRoleAdmin} {
		require.NoError(t, db.Create(&models.Role{ID: uuid.New(), Name: name}).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, roles ...enums.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	for _, roleName := range roles {
		var role models.Role
		require.NoError(t, db.First(&role, "name = ?", roleName.String()).Error)
		require.NoError(t, db.Model(user).Association("Roles").Append(&role))
	}
	return user
}

func newUsersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestUpdateProfilePartialFields(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	user := seedUser(t, db, "ana@example.com", enums.UserRoleCustomer)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Phone:       ptr("+52 222 000 1111"),
		AddressLine: ptr("Av. Reforma 100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Test User", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+52 222 000 1111", *updated.Phone)
	assert.True(t, updated.HasAddress())

	// Untouched fields survive a second partial update.
	updated, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Name: ptr("Ana Torres"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", updated.Name)
	require.NotNil(t, updated.AddressLine)
	assert.Equal(t, "Av. Reforma 100", *updated.AddressLine)
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	user := seedUser(t, db, "ana@example.com", enums.UserRoleCustomer)

	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Name: ptr("  ")})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAssignAndRevokeRole(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	user := seedUser(t, db, "driver@example.com", enums.UserRoleCustomer)

	updated, err := svc.AssignRole(context.Background(), user.ID, enums.UserRoleDriver)
	require.NoError(t, err)
	assert.True(t, updated.HasRole(enums.UserRoleDriver))
	assert.True(t, updated.HasRole(enums.UserRoleCustomer))

	// Assigning again is a no-op.
	again, err := svc.AssignRole(context.Background(), user.ID, enums.UserRoleDriver)
	require.NoError(t, err)
	assert.Len(t, again.Roles, 2)

	revoked, err := svc.RevokeRole(context.Background(), user.ID, enums.UserRoleDriver)
	require.NoError(t, err)
	assert.False(t, revoked.HasRole(enums.UserRoleDriver))

	_, err = svc.RevokeRole(context.Background(), user.ID, enums.UserRoleCustomer)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestListUsersIncludesRoles(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)
	seedUser(t, db, "one@example.com", enums.UserRoleCustomer)
	seedUser(t, db, "two@example.com", enums.UserRoleCustomer, enums.UserRoleAdmin)

	listed, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byEmail := map[string]models.User{}
	for _, u := range listed {
		byEmail[u.Email] = u
	}
	assert.Len(t, byEmail["one@example.com"].Roles, 1)
	assert.Len(t, byEmail["two@example.com"].Roles, 2)
}

func TestGetProfileUnknownUser(t *testing.T) {
	db := setupUsersTestDB(t)
	svc := newUsersService(t, db)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
