package repositories

import (
	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// PreferencesRepository defines the interface for user preference operations
type PreferencesRepository interface {
	GetOrCreate(userID uint) (*models.UserPreferences, error)
	Update(prefs *models.UserPreferences) error
}

// PostgresPreferencesRepository implements PreferencesRepository for PostgreSQL
type PostgresPreferencesRepository struct {
	db *gorm.DB
}

// NewPostgresPreferencesRepository creates a new PostgresPreferencesRepository
func NewPostgresPreferencesRepository(db *gorm.DB) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{db: db}
}

// GetOrCreate loads a user's preferences, creating the default row on first use
func (r *PostgresPreferencesRepository) GetOrCreate(userID uint) (*models.UserPreferences, error) {
	prefs := models.UserPreferences{
		UserID:                 userID,
		ShowPersonalInfo:       true,
		StartLoanExchangeType:  models.ExchangePickUp,
		EndLoanExchangeType:    models.ExchangeDropOff,
		ExchangeLocationChoice: models.ExchangeLocationDefault,
	}
	err := r.db.Where(models.UserPreferences{UserID: userID}).FirstOrCreate(&prefs).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load preferences")
	}
	return &prefs, nil
}

// Update persists changed preferences
func (r *PostgresPreferencesRepository) Update(prefs *models.UserPreferences) error {
	if err := r.db.Save(prefs).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update preferences")
	}
	return nil
}
