package appointment

import (
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

// Janela mínima para o cliente cancelar o próprio agendamento.
const CustomerCancelWindow = 2 * time.Hour

// ===============================
// Domain Actions
// ===============================

// Confirm aplica a transição para confirmed. O retorno indica se algo
// mudou: re-confirmar um agendamento já confirmado é um no-op e não
// deve disparar nova notificação.
func Confirm(ap *models.Appointment, now time.Time) (bool, error) {
	from := Status(ap.Status)
	if from == StatusConfirmed {
		return false, nil
	}
	if err := CanTransition(from, StatusConfirmed); err != nil {
		return false, err
	}

	ap.Status = string(StatusConfirmed)
	return true, nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CancelByCustomer cancela em nome do cliente. O telefone informado
// precisa bater exatamente com o armazenado e o cancelamento só vale
// com pelo menos 2h de antecedência. A recusa por telefone errado é
// genérica de propósito: não vaza qual checagem falhou.
func CancelByCustomer(ap *models.Appointment, phone string, now time.Time) error {
	if phone == "" || phone != ap.CustomerPhone {
		return httperr.ErrBusiness("cancellation_not_allowed")
	}
	if Status(ap.Status).Terminal() {
		return httperr.ErrBusiness("cancellation_not_allowed")
	}
	if !now.Before(ap.StartTime.Add(-CustomerCancelWindow)) {
		return httperr.ErrBusinessMsg(
			"cancellation_too_late",
			"Não é possível cancelar agendamentos com menos de 2 horas de antecedência.",
		)
	}

	return Cancel(ap, "Cancelado pelo cliente", now)
}
