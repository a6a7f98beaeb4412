package repositories

import (
	"errors"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// MovieRepository defines the interface for library catalog operations
type MovieRepository interface {
	Create(movie *models.Movie) error
	GetByID(id uint) (*models.Movie, error)
	GetByUserAndTmdbID(userID uint, tmdbID int64) (*models.Movie, error)
	ListByUser(userID uint) ([]models.Movie, error)
	ListByUserIDs(userIDs []uint) ([]models.Movie, error)
	CountByUser(userID uint) (int64, error)
	Delete(id uint) error
	UpdateFormat(id uint, format string) (*models.Movie, error)
	Search(filters models.MovieSearchFilters) ([]models.Movie, error)
}

// PostgresMovieRepository implements MovieRepository for PostgreSQL
type PostgresMovieRepository struct {
	db *gorm.DB
}

// NewPostgresMovieRepository creates a new PostgresMovieRepository
func NewPostgresMovieRepository(db *gorm.DB) *PostgresMovieRepository {
	return &PostgresMovieRepository{db: db}
}

// Create persists a new movie in a user's library
func (r *PostgresMovieRepository) Create(movie *models.Movie) error {
	if err := r.db.Create(movie).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create movie")
	}
	return nil
}

// GetByID retrieves a movie by ID
func (r *PostgresMovieRepository) GetByID(id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "movie not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load movie")
	}
	return &movie, nil
}

// GetByUserAndTmdbID retrieves the library entry for a TMDB title, if the
// user already owns it.
func (r *PostgresMovieRepository) GetByUserAndTmdbID(userID uint, tmdbID int64) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "movie not in library")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load movie")
	}
	return &movie, nil
}

// ListByUser retrieves a user's library ordered by insertion
func (r *PostgresMovieRepository) ListByUser(userID uint) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&movies).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list library")
	}
	return movies, nil
}

// ListByUserIDs retrieves the combined libraries of several users
func (r *PostgresMovieRepository) ListByUserIDs(userIDs []uint) ([]models.Movie, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var movies []models.Movie
	if err := r.db.Where("user_id IN ?", userIDs).Order("id asc").Find(&movies).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list libraries")
	}
	return movies, nil
}

// CountByUser counts the titles in a user's library
func (r *PostgresMovieRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Movie{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to count library")
	}
	return count, nil
}

// Delete removes a movie from the library. Deleting an id that does not
// exist is a no-op, not an error.
func (r *PostgresMovieRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Movie{}, id).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to delete movie")
	}
	return nil
}

// UpdateFormat changes the physical format of a library entry
func (r *PostgresMovieRepository) UpdateFormat(id uint, format string) (*models.Movie, error) {
	movie, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	movie.Format = format
	if err := r.db.Save(movie).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update movie format")
	}
	return movie, nil
}

// Search is a thin filter builder over the movie table. Keywords match the
// title and the searchable release date.
func (r *PostgresMovieRepository) Search(filters models.MovieSearchFilters) ([]models.Movie, error) {
	query := r.db.Model(&models.Movie{})
	if len(filters.UserIDs) > 0 {
		query = query.Where("user_id IN ?", filters.UserIDs)
	}
	if filters.Format != "" {
		query = query.Where("format = ?", filters.Format)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Keywords != "" {
		pattern := "%" + filters.Keywords + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR searchable_release_date LIKE ?",
			pattern, pattern,
		)
	}

	var movies []models.Movie
	if err := query.Order("id asc").Find(&movies).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to search movies")
	}
	return movies, nil
}
