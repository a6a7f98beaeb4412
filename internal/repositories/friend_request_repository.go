package repositories

import (
	"errors"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for friend request operations
type FriendRequestRepository interface {
	Create(req *models.FriendRequest) error
	GetByID(id uint) (*models.FriendRequest, error)
	GetPendingBetween(userID, otherID uint) (*models.FriendRequest, error)
	ListPendingReceived(userID uint) ([]models.FriendRequest, error)
	ListPendingSent(userID uint) ([]models.FriendRequest, error)
	Accept(id uint) error
	MarkCancelled(id uint) error
	CancelPendingBetween(userID, otherID uint) error
}

// PostgresFriendRequestRepository implements FriendRequestRepository for PostgreSQL
type PostgresFriendRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRequestRepository creates a new PostgresFriendRequestRepository
func NewPostgresFriendRequestRepository(db *gorm.DB) *PostgresFriendRequestRepository {
	return &PostgresFriendRequestRepository{db: db}
}

// Create creates a new friend request with status sent. A pending request in
// either direction between the two users makes the proposal a duplicate.
func (r *PostgresFriendRequestRepository) Create(req *models.FriendRequest) error {
	var existing models.FriendRequest
	err := r.db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		req.SenderID, req.ReceiverID, req.ReceiverID, req.SenderID, models.FriendRequestSent,
	).First(&existing).Error

	if err == nil {
		return apperrors.New(apperrors.ErrCodeDuplicateRequest, "a pending friend request already exists between these users")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to check existing friend request")
	}

	req.Status = models.FriendRequestSent
	if err := r.db.Create(req).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create friend request")
	}
	return nil
}

// GetByID retrieves a friend request by ID
func (r *PostgresFriendRequestRepository) GetByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "friend request not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load friend request")
	}
	return &req, nil
}

// GetPendingBetween locates a pending request in either direction between two users
func (r *PostgresFriendRequestRepository) GetPendingBetween(userID, otherID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		userID, otherID, otherID, userID, models.FriendRequestSent,
	).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "no pending friend request between these users")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load friend request")
	}
	return &req, nil
}

// ListPendingReceived retrieves pending friend requests addressed to a user
func (r *PostgresFriendRequestRepository) ListPendingReceived(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("receiver_id = ? AND status = ?", userID, models.FriendRequestSent).Find(&requests).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list received friend requests")
	}
	return requests, nil
}

// ListPendingSent retrieves pending friend requests a user has sent
func (r *PostgresFriendRequestRepository) ListPendingSent(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("sender_id = ? AND status = ?", userID, models.FriendRequestSent).Find(&requests).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list sent friend requests")
	}
	return requests, nil
}

// markTerminal flips a pending request to a terminal status. The WHERE clause
// on the prior status makes the transition a compare-and-swap, so two
// concurrent transitions cannot both win.
func (r *PostgresFriendRequestRepository) markTerminal(id uint, status string) error {
	result := r.db.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, models.FriendRequestSent).
		Update("status", status)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.ErrCodeInternalError, "failed to update friend request")
	}
	if result.RowsAffected == 0 {
		var existing models.FriendRequest
		if err := r.db.First(&existing, id).Error; err != nil {
			return apperrors.New(apperrors.ErrCodeNotFound, "friend request not found")
		}
		return apperrors.New(apperrors.ErrCodeInvalidTransition, "friend request is no longer pending")
	}
	return nil
}

// Accept transitions a pending request to accepted and writes the mutual
// friendship edge, all in one transaction: a failure on either side leaves
// both the request and the friend table untouched.
func (r *PostgresFriendRequestRepository) Accept(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.ErrCodeNotFound, "friend request not found")
			}
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load friend request")
		}

		result := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", id, models.FriendRequestSent).
			Update("status", models.FriendRequestAccepted)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, apperrors.ErrCodeInternalError, "failed to update friend request")
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.ErrCodeInvalidTransition, "friend request is no longer pending")
		}

		sender := models.User{ID: req.SenderID}
		receiver := models.User{ID: req.ReceiverID}
		if err := tx.Model(&sender).Association("Friends").Append(&receiver); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to add friend edge")
		}
		if err := tx.Model(&receiver).Association("Friends").Append(&sender); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to add reverse friend edge")
		}
		return nil
	})
}

// MarkCancelled transitions a pending request to cancelled
func (r *PostgresFriendRequestRepository) MarkCancelled(id uint) error {
	return r.markTerminal(id, models.FriendRequestCancelled)
}

// CancelPendingBetween cancels any pending request in either direction
// between two users. Finding nothing to cancel is a no-op, not an error.
func (r *PostgresFriendRequestRepository) CancelPendingBetween(userID, otherID uint) error {
	err := r.db.Model(&models.FriendRequest{}).
		Where(
			"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			userID, otherID, otherID, userID, models.FriendRequestSent,
		).
		Update("status", models.FriendRequestCancelled).Error
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to cancel pending friend requests")
	}
	return nil
}
