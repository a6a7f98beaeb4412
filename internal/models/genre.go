package models

// Genre is a TMDB genre, upserted as movies referencing it are added.
type Genre struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TmdbID int64  `json:"tmdb_id" gorm:"uniqueIndex"`
	Name   string `json:"name" gorm:"size:250;not null"`
}
