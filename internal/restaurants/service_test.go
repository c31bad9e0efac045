package restaurants

import (
	"context"
	"testing"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func setupRestaurantTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS restaurants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address_line TEXT NOT NULL,
  city TEXT,
  phone TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func newRestaurantService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestRestaurantLifecycle(t *testing.T) {
	db := setupRestaurantTestDB(t)
	svc := newRestaurantService(t, db)

	created, err := svc.Create(context.Background(), CreateRestaurantInput{
		Name:        "  TasteBite Centro ",
		AddressLine: "Calle 5 de Mayo 12",
		City:        ptr("Puebla"),
		IsActive:    true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "TasteBite Centro", created.Name)

	updated, err := svc.Update(context.Background(), created.ID, UpdateRestaurantInput{
		Phone:    ptr("+52 222 123 4567"),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "TasteBite Centro", updated.Name)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRestaurantListFiltersInactive(t *testing.T) {
	db := setupRestaurantTestDB(t)
	svc := newRestaurantService(t, db)

	require.NoError(t, db.Create(&models.Restaurant{
		ID: uuid.New(), Name: "Open", AddressLine: "Av. Juarez 1", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Restaurant{
		ID: uuid.New(), Name: "Closed", AddressLine: "Av. Juarez 2", IsActive: false,
	}).Error)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Open", active[0].Name)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRestaurantCreateValidation(t *testing.T) {
	db := setupRestaurantTestDB(t)
	svc := newRestaurantService(t, db)

	_, err := svc.Create(context.Background(), CreateRestaurantInput{Name: " ", AddressLine: "x"})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Create(context.Background(), CreateRestaurantInput{Name: "x", AddressLine: ""})
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
