package repositories

import (
	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre lookup operations
type GenreRepository interface {
	Upsert(tmdbID int64, name string) error
	List() ([]models.Genre, error)
}

// PostgresGenreRepository implements GenreRepository for PostgreSQL
type PostgresGenreRepository struct {
	db *gorm.DB
}

// NewPostgresGenreRepository creates a new PostgresGenreRepository
func NewPostgresGenreRepository(db *gorm.DB) *PostgresGenreRepository {
	return &PostgresGenreRepository{db: db}
}

// Upsert records a genre if it is not known yet
func (r *PostgresGenreRepository) Upsert(tmdbID int64, name string) error {
	genre := models.Genre{TmdbID: tmdbID, Name: name}
	err := r.db.Where(models.Genre{TmdbID: tmdbID}).FirstOrCreate(&genre).Error
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to upsert genre")
	}
	return nil
}

// List retrieves all known genres ordered by name
func (r *PostgresGenreRepository) List() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("name asc").Find(&genres).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list genres")
	}
	return genres, nil
}
