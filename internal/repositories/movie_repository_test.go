package repositories

import (
	"testing"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByUserAndTmdbID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMovieRepository(db)
	owner := createTestUser(t, db, "Olive", "olive@example.com")
	other := createTestUser(t, db, "Pat", "pat@example.com")
	movie := createTestMovie(t, db, owner.ID, "The Matrix", 603)

	found, err := repo.GetByUserAndTmdbID(owner.ID, 603)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, found.ID)

	// Ownership is per user, the same title in another library is distinct
	_, err = repo.GetByUserAndTmdbID(other.ID, 603)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Code(err))
}

func TestDeleteMovieIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMovieRepository(db)
	owner := createTestUser(t, db, "Olive", "olive@example.com")
	movie := createTestMovie(t, db, owner.ID, "The Matrix", 603)

	require.NoError(t, repo.Delete(movie.ID))
	require.NoError(t, repo.Delete(movie.ID))

	count, err := repo.CountByUser(owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateFormat(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMovieRepository(db)
	owner := createTestUser(t, db, "Olive", "olive@example.com")
	movie := createTestMovie(t, db, owner.ID, "The Matrix", 603)

	updated, err := repo.UpdateFormat(movie.ID, models.FormatBluRay)
	require.NoError(t, err)
	assert.Equal(t, models.FormatBluRay, updated.Format)

	_, err = repo.UpdateFormat(9999, models.FormatDVD)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Code(err))
}

func TestSearchMovies(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMovieRepository(db)
	owner := createTestUser(t, db, "Olive", "olive@example.com")
	friend := createTestUser(t, db, "Pat", "pat@example.com")
	matrix := createTestMovie(t, db, owner.ID, "The Matrix", 603)
	heat := createTestMovie(t, db, owner.ID, "Heat", 949)
	require.NoError(t, db.Model(heat).Update("format", models.FormatVHS).Error)
	createTestMovie(t, db, friend.ID, "Alien", 348)

	byKeyword, err := repo.Search(models.MovieSearchFilters{
		UserIDs:  []uint{owner.ID},
		Keywords: "matrix",
	})
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)
	assert.Equal(t, matrix.ID, byKeyword[0].ID)

	byReleaseYear, err := repo.Search(models.MovieSearchFilters{
		UserIDs:  []uint{owner.ID},
		Keywords: "1999",
	})
	require.NoError(t, err)
	assert.Len(t, byReleaseYear, 2)

	byFormat, err := repo.Search(models.MovieSearchFilters{
		UserIDs: []uint{owner.ID},
		Format:  models.FormatVHS,
	})
	require.NoError(t, err)
	require.Len(t, byFormat, 1)
	assert.Equal(t, heat.ID, byFormat[0].ID)

	// Scoped to the given libraries only
	scoped, err := repo.Search(models.MovieSearchFilters{UserIDs: []uint{owner.ID}})
	require.NoError(t, err)
	assert.Len(t, scoped, 2)
}

func TestGenreUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGenreRepository(db)

	require.NoError(t, repo.Upsert(28, "Action"))
	require.NoError(t, repo.Upsert(28, "Action"))
	require.NoError(t, repo.Upsert(18, "Drama"))

	genres, err := repo.List()
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
	assert.Equal(t, "Drama", genres[1].Name)
}

func TestPreferencesGetOrCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferencesRepository(db)
	user := createTestUser(t, db, "Olive", "olive@example.com")

	prefs, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.ShowPersonalInfo)
	assert.Equal(t, models.ExchangePickUp, prefs.StartLoanExchangeType)
	assert.Equal(t, models.ExchangeDropOff, prefs.EndLoanExchangeType)

	prefs.FavoriteGenre = "Horror"
	require.NoError(t, repo.Update(prefs))

	again, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs.ID, again.ID)
	assert.Equal(t, "Horror", again.FavoriteGenre)
}
