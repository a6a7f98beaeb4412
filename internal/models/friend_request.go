package models

import "time"

// FriendRequest status values. Terminal requests are retained as history
// rather than deleted, so an audit trail of proposals survives acceptance.
const (
	FriendRequestSent      = "sent"
	FriendRequestAccepted  = "accepted"
	FriendRequestCancelled = "cancelled"
)

// FriendRequest represents a friendship proposal between two users
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
	SenderID   uint      `json:"sender_id" gorm:"index;not null"`
	Sender     User      `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;not null"`
	Receiver   User      `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Status     string    `json:"status" gorm:"size:16;default:'sent'"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}
