package models

import "time"

// Um registro por (estabelecimento, dia da semana).
// Weekday segue 0=segunda .. 6=domingo.
type WorkingHours struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"uniqueIndex:idx_wh_establishment_weekday" json:"establishment_id"`

	Weekday int `gorm:"uniqueIndex:idx_wh_establishment_weekday" json:"weekday"`

	OpensAt  string `gorm:"size:5" json:"opens_at"`
	ClosesAt string `gorm:"size:5" json:"closes_at"`
	Closed   bool   `json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
