package flyers

import (
	"context"
	"testing"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func assertCoded(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func setupFlyersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS flyers (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  image_path TEXT NOT NULL,
  starts_at DATETIME,
  ends_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func newFlyersService(t *testing.T, db *gorm.DB, now time.Time) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestFlyerLifecycle(t *testing.T) {
	db := setupFlyersTestDB(t)
	svc := newFlyersService(t, db, time.Now())

	created, err := svc.Create(context.Background(), CreateFlyerInput{
		Title:     "2x1 Tuesdays",
		ImagePath: "flyers/2x1-tuesdays.png",
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NotEqual(t, "", created.ID.String())

	updated, err := svc.Update(context.Background(), created.ID, UpdateFlyerInput{
		Title:    ptr("2x1 Wednesdays"),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "2x1 Wednesdays", updated.Title)
	assert.Equal(t, "flyers/2x1-tuesdays.png", updated.ImagePath)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assertCoded(t, err, pkgerrors.CodeNotFound)
}

func TestListActiveFiltersWindowAndFlag(t *testing.T) {
	db := setupFlyersTestDB(t)
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	svc := newFlyersService(t, db, now)

	seed := func(title string, startsAt, endsAt *time.Time, active bool) {
		require.NoError(t, db.Create(&models.Flyer{
			Title:     title,
			ImagePath: "flyers/" + title + ".png",
			StartsAt:  startsAt,
			EndsAt:    endsAt,
			IsActive:  active,
		}).Error)
	}

	seed("current", ptr(now.Add(-time.Hour)), ptr(now.Add(time.Hour)), true)
	seed("open-ended", nil, nil, true)
	seed("expired", ptr(now.Add(-48*time.Hour)), ptr(now.Add(-24*time.Hour)), true)
	seed("upcoming", ptr(now.Add(24*time.Hour)), nil, true)
	seed("disabled", nil, nil, false)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	titles := make([]string, 0, len(active))
	for _, flyer := range active {
		titles = append(titles, flyer.Title)
	}
	assert.ElementsMatch(t, []string{"current", "open-ended"}, titles)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestFlyerCreateValidation(t *testing.T) {
	db := setupFlyersTestDB(t)
	svc := newFlyersService(t, db, time.Now())

	_, err := svc.Create(context.Background(), CreateFlyerInput{ImagePath: "flyers/x.png"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), CreateFlyerInput{Title: "No image"})
	assertCoded(t, err, pkgerrors.CodeValidation)

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = svc.Create(context.Background(), CreateFlyerInput{
		Title:     "Backwards window",
		ImagePath: "flyers/backwards.png",
		StartsAt:  &start,
		EndsAt:    &end,
	})
	assertCoded(t, err, pkgerrors.CodeValidation)
}
