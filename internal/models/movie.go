package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Physical format values
const (
	FormatVHS    = "vhs"
	FormatDVD    = "dvd"
	FormatBluRay = "bluray"
	FormatUHD4K  = "uhd4k"
)

// Movie lifecycle status values. The stored column exists for schema
// parity with the original data model; loan decisions derive availability
// from accepted borrow requests instead of reading it.
const (
	MovieStatusAvailable = "available"
	MovieStatusOnLoan    = "on_loan"
	MovieStatusOverdue   = "overdue"
)

// ValidFormat reports whether f is one of the supported physical formats.
func ValidFormat(f string) bool {
	switch f {
	case FormatVHS, FormatDVD, FormatBluRay, FormatUHD4K:
		return true
	}
	return false
}

// StringList stores a list of strings as a JSON-encoded text column so the
// same model works on PostgreSQL and the SQLite test databases.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Movie is a physically owned title in a user's library.
type Movie struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"-"`
	UserID                uint       `json:"user_id" gorm:"index;not null"`
	User                  User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TmdbID                int64      `json:"tmdb_id" gorm:"index"`
	Title                 string     `json:"title" gorm:"size:128"`
	ReleaseDate           time.Time  `json:"release_date"`
	SearchableReleaseDate string     `json:"searchable_release_date" gorm:"size:10"`
	RuntimeMinutes        int        `json:"runtime_minutes"`
	Description           string     `json:"description" gorm:"size:8192"`
	ImageLink             string     `json:"image_link"`
	TmdbLink              string     `json:"tmdb_link"`
	Budget                int64      `json:"budget"`
	Revenue               int64      `json:"revenue"`
	Rating                string     `json:"rating" gorm:"size:8"`
	Genres                StringList `json:"genres" gorm:"type:text"`
	Status                string     `json:"status" gorm:"size:16;default:'available'"`
	Format                string     `json:"format" gorm:"size:8;not null"`
	OnLoan                bool       `json:"on_loan" gorm:"-"` // derived, never persisted
}

type AddMovieRequest struct {
	TmdbID int64  `json:"tmdb_id" validate:"required,gt=0"`
	Format string `json:"format" validate:"required,oneof=vhs dvd bluray uhd4k"`
}

type UpdateFormatRequest struct {
	Format string `json:"format" validate:"required,oneof=vhs dvd bluray uhd4k"`
}

// MovieSearchFilters are the optional terms of a library search.
type MovieSearchFilters struct {
	UserIDs  []uint
	Format   string
	Status   string
	Keywords string
}
