package models

import "time"

type Establishment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Slug    string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Email que recebe as notificações de novos agendamentos.
	// Vazio = estabelecimento não recebe emails.
	NotifyEmail string `gorm:"size:100" json:"notify_email"`

	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
