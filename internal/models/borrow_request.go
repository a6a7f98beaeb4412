package models

import (
	"fmt"
	"time"
)

// BorrowRequest status values. `sent` is the initial state; the other
// three are terminal.
const (
	BorrowRequestSent      = "sent"
	BorrowRequestAccepted  = "accepted"
	BorrowRequestDenied    = "denied"
	BorrowRequestCancelled = "cancelled"
)

// Borrow durations are fixed choices of 1..14 days.
const (
	MinBorrowDuration = 1
	MaxBorrowDuration = 14
)

// ValidBorrowDuration reports whether d is one of the enumerated durations.
func ValidBorrowDuration(d int) bool {
	return d >= MinBorrowDuration && d <= MaxBorrowDuration
}

// BorrowDurationLabel renders a duration choice the way the UI names it.
func BorrowDurationLabel(d int) string {
	switch d {
	case 7:
		return "1 week"
	case 14:
		return "2 weeks"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", d)
	}
}

// TerminalBorrowStatus reports whether s is a terminal status value.
func TerminalBorrowStatus(s string) bool {
	switch s {
	case BorrowRequestAccepted, BorrowRequestDenied, BorrowRequestCancelled:
		return true
	}
	return false
}

// BorrowRequest is a proposal to borrow a movie from its owner. Unlike a
// friend request it is a durable history record and is never deleted.
type BorrowRequest struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	MovieID        uint      `json:"movie_id" gorm:"index;not null"`
	Movie          Movie     `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	SenderID       uint      `json:"sender_id" gorm:"index;not null"`
	Sender         User      `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID     uint      `json:"receiver_id" gorm:"index;not null"`
	Receiver       User      `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	StartDate      time.Time `json:"start_date"`
	BorrowDuration int       `json:"borrow_duration"`
	Notes          string    `json:"notes,omitempty" gorm:"size:500"`
	Status         string    `json:"status" gorm:"size:16;default:'sent'"`
}

// EndDate is the first day the loan is no longer active.
func (r *BorrowRequest) EndDate() time.Time {
	return r.StartDate.AddDate(0, 0, r.BorrowDuration)
}

type CreateBorrowRequest struct {
	MovieID   uint   `json:"movie_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	// No validator tag: zero and out-of-range values must surface as
	// INVALID_DURATION, so the handler checks the range itself.
	BorrowDuration int    `json:"borrow_duration"`
	Notes          string `json:"notes,omitempty"`
}

type UpdateBorrowStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted denied cancelled"`
}
