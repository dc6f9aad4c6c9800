package appointment

import "github.com/AgendaVivaBR/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus valida um status vindo da API
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// Active: participa da checagem de conflitos
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// Terminal: não admite mais transições
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition define as transições permitidas da máquina de estados.
// confirmed -> confirmed é aceito como no-op (re-confirmação idempotente).
func CanTransition(from, to Status) error {
	if from.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}

	switch to {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return nil
	}

	return httperr.ErrBusiness("invalid_state")
}

// InitialStatus é o status de todo agendamento recém-criado
func InitialStatus() Status {
	return StatusScheduled
}
