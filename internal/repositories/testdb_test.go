package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database and migrates the
// full schema. The named DSN keeps every connection in the pool pointed at
// the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Movie{},
		&models.BorrowRequest{},
		&models.Genre{},
		&models.UserPreferences{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, firstName, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Password:  "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMovie(t *testing.T, db *gorm.DB, userID uint, title string, tmdbID int64) *models.Movie {
	t.Helper()
	movie := &models.Movie{
		UserID:                userID,
		TmdbID:                tmdbID,
		Title:                 title,
		ReleaseDate:           time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC),
		SearchableReleaseDate: "1999-03-31",
		Genres:                models.StringList{"Action"},
		Status:                models.MovieStatusAvailable,
		Format:                models.FormatDVD,
	}
	require.NoError(t, db.Create(movie).Error)
	return movie
}
