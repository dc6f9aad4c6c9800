package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint          `json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProfessionalID uint         `gorm:"index" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CustomerName  string `gorm:"size:200;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Duração e preço congelados na criação: editar o serviço depois
	// não muda o intervalo de agendamentos já feitos.
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes        string `gorm:"size:255" json:"notes"`
	CancelReason string `gorm:"size:255" json:"cancel_reason"`

	// Token usado na URL pública de cancelamento pelo cliente.
	PublicToken string `gorm:"size:36;uniqueIndex" json:"public_token"`

	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
