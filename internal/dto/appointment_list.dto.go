package dto

import "time"

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	CustomerName     string    `json:"customer_name"`
	CustomerPhone    string    `json:"customer_phone"`
	ServiceName      string    `json:"service_name"`
	ProfessionalName string    `json:"professional_name"`
	DurationMin      int       `json:"duration_min"`
	Price            float64   `json:"price"`
}
