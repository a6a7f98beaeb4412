package models

import "time"

// Exchange type and location values for loan hand-offs.
const (
	ExchangePickUp  = "PICK_UP"
	ExchangeDropOff = "DROP_OFF"

	ExchangeLocationDefault = "DEFAULT"
	ExchangeLocationOther   = "OTHER"
)

// UserPreferences hold per-user loan hand-off settings.
type UserPreferences struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	CreatedAt              time.Time `json:"-"`
	UpdatedAt              time.Time `json:"-"`
	UserID                 uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User                   User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ShowPersonalInfo       bool      `json:"show_personal_info" gorm:"default:true"`
	StartLoanExchangeType  string    `json:"start_loan_exchange_type" gorm:"size:12;default:'PICK_UP'"`
	EndLoanExchangeType    string    `json:"end_loan_exchange_type" gorm:"size:12;default:'DROP_OFF'"`
	ExchangeLocationChoice string    `json:"exchange_location_choice" gorm:"size:12;default:'DEFAULT'"`
	ExchangeLocation       string    `json:"exchange_location,omitempty" gorm:"size:100"`
	FavoriteGenre          string    `json:"favorite_genre,omitempty" gorm:"size:250"`
}

type UpdatePreferencesRequest struct {
	ShowPersonalInfo       *bool  `json:"show_personal_info,omitempty"`
	StartLoanExchangeType  string `json:"start_loan_exchange_type,omitempty" validate:"omitempty,oneof=PICK_UP DROP_OFF"`
	EndLoanExchangeType    string `json:"end_loan_exchange_type,omitempty" validate:"omitempty,oneof=PICK_UP DROP_OFF"`
	ExchangeLocationChoice string `json:"exchange_location_choice,omitempty" validate:"omitempty,oneof=DEFAULT OTHER"`
	ExchangeLocation       string `json:"exchange_location,omitempty" validate:"omitempty,max=100"`
	FavoriteGenre          string `json:"favorite_genre,omitempty" validate:"omitempty,max=250"`
}
