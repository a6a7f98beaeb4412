package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Friends     []*User   `json:"-" gorm:"many2many:user_friends;joinForeignKey:UserID;joinReferences:FriendID"`
}

// FullName returns the display name used in notification messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type SignupRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=30"`
	LastName    string `json:"last_name" validate:"required,min=1,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=10"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=100"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name,omitempty" validate:"omitempty,min=1,max=30"`
	LastName    string `json:"last_name,omitempty" validate:"omitempty,min=1,max=30"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=10"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
