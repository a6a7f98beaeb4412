package repositories

import (
	"errors"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SearchUsers(query string) ([]models.User, error)
	AddFriend(userID, friendID uint) error
	RemoveFriend(userID, friendID uint) error
	GetFriends(userID uint) ([]models.User, error)
	AreFriends(userID, otherID uint) (bool, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create user")
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load user")
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to update user")
	}
	return nil
}

// DeleteUser deletes a user by ID
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	if err := r.db.Delete(&models.User{}, id).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to delete user")
	}
	return nil
}

// SearchUsers searches for users by name or email (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Where(
		"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
		pattern, pattern, pattern,
	).Find(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to search users")
	}
	return users, nil
}

// AddFriend adds the friendship edge in both directions. Adding an
// already-present friend is a no-op, so the operation is idempotent.
func (r *PostgresUserRepository) AddFriend(userID, friendID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{ID: userID}
		friend := models.User{ID: friendID}
		if err := tx.Model(&user).Association("Friends").Append(&friend); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to add friend edge")
		}
		if err := tx.Model(&friend).Association("Friends").Append(&user); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to add reverse friend edge")
		}
		return nil
	})
}

// RemoveFriend removes the friendship edge in both directions.
func (r *PostgresUserRepository) RemoveFriend(userID, friendID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{ID: userID}
		friend := models.User{ID: friendID}
		if err := tx.Model(&user).Association("Friends").Delete(&friend); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to remove friend edge")
		}
		if err := tx.Model(&friend).Association("Friends").Delete(&user); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to remove reverse friend edge")
		}
		return nil
	})
}

// GetFriends retrieves the friend list of a user
func (r *PostgresUserRepository) GetFriends(userID uint) ([]models.User, error) {
	user := models.User{ID: userID}
	var friends []models.User
	if err := r.db.Model(&user).Association("Friends").Find(&friends); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load friends")
	}
	return friends, nil
}

// AreFriends reports whether the friendship edge exists from userID to otherID
func (r *PostgresUserRepository) AreFriends(userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to check friendship")
	}
	return count > 0, nil
}
