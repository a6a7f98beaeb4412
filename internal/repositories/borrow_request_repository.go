package repositories

import (
	"errors"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// Borrow listing roles
const (
	RoleSender   = "sender"
	RoleReceiver = "receiver"
)

// BorrowRequestRepository defines the interface for borrow request operations
type BorrowRequestRepository interface {
	Create(req *models.BorrowRequest) error
	GetByID(id uint) (*models.BorrowRequest, error)
	UpdateStatus(id uint, newStatus string) (*models.BorrowRequest, error)
	List(userID uint, role, status string) ([]models.BorrowRequest, error)
	ActiveLoanMovieIDs(movieIDs []uint, on time.Time) (map[uint]bool, error)
}

// PostgresBorrowRequestRepository implements BorrowRequestRepository for PostgreSQL
type PostgresBorrowRequestRepository struct {
	db *gorm.DB
}

// NewPostgresBorrowRequestRepository creates a new PostgresBorrowRequestRepository
func NewPostgresBorrowRequestRepository(db *gorm.DB) *PostgresBorrowRequestRepository {
	return &PostgresBorrowRequestRepository{db: db}
}

// Create persists a new borrow request with status sent. Borrow requests are
// durable history records and are never deleted afterwards.
func (r *PostgresBorrowRequestRepository) Create(req *models.BorrowRequest) error {
	req.Status = models.BorrowRequestSent
	if err := r.db.Create(req).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create borrow request")
	}
	return nil
}

// GetByID retrieves a borrow request by ID
func (r *PostgresBorrowRequestRepository) GetByID(id uint) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "borrow request not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load borrow request")
	}
	return &req, nil
}

// UpdateStatus transitions a pending request to a terminal status. The update
// is a compare-and-swap keyed on the prior status, so a request that has
// already reached a terminal state cannot be transitioned again.
func (r *PostgresBorrowRequestRepository) UpdateStatus(id uint, newStatus string) (*models.BorrowRequest, error) {
	if !models.TerminalBorrowStatus(newStatus) {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "status must be accepted, denied or cancelled")
	}

	result := r.db.Model(&models.BorrowRequest{}).
		Where("id = ? AND status = ?", id, models.BorrowRequestSent).
		Update("status", newStatus)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrCodeInternalError, "failed to update borrow request")
	}
	if result.RowsAffected == 0 {
		var existing models.BorrowRequest
		if err := r.db.First(&existing, id).Error; err != nil {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "borrow request not found")
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidTransition, "borrow request is already "+existing.Status)
	}

	return r.GetByID(id)
}

// List retrieves borrow requests where the user holds the given role,
// optionally filtered by status, ordered by start date ascending for the
// upcoming views.
func (r *PostgresBorrowRequestRepository) List(userID uint, role, status string) ([]models.BorrowRequest, error) {
	query := r.db.Model(&models.BorrowRequest{})
	switch role {
	case RoleSender:
		query = query.Where("sender_id = ?", userID)
	case RoleReceiver:
		query = query.Where("receiver_id = ?", userID)
	default:
		return nil, apperrors.New(apperrors.ErrCodeValidation, "role must be sender or receiver")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.BorrowRequest
	if err := query.Order("start_date asc").Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list borrow requests")
	}
	return requests, nil
}

// ActiveLoanMovieIDs reports which of the given movies have an accepted
// borrow request whose window covers the given day. Date arithmetic on the
// duration column differs between PostgreSQL and SQLite, so the window check
// happens here rather than in SQL.
func (r *PostgresBorrowRequestRepository) ActiveLoanMovieIDs(movieIDs []uint, on time.Time) (map[uint]bool, error) {
	active := make(map[uint]bool)
	if len(movieIDs) == 0 {
		return active, nil
	}

	var requests []models.BorrowRequest
	err := r.db.Where(
		"movie_id IN ? AND status = ? AND start_date <= ?",
		movieIDs, models.BorrowRequestAccepted, on,
	).Find(&requests).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load active loans")
	}

	for i := range requests {
		if on.Before(requests[i].EndDate()) {
			active[requests[i].MovieID] = true
		}
	}
	return active, nil
}
