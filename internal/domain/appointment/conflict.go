package appointment

import (
	"fmt"
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

// ===============================
// Conflict detection
// ===============================

// Overlaps compara dois intervalos meio-abertos [start, end).
// Encostar na borda não é conflito: um agendamento que termina às
// 10:00 convive com outro que começa às 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict varre os agendamentos do profissional e devolve o
// primeiro ativo que sobrepõe [start, end), ignorando excludeID
// (edição do próprio agendamento). Devolve nil quando o horário
// está livre.
func FindConflict(
	existing []models.Appointment,
	start time.Time,
	end time.Time,
	excludeID uint,
) *models.Appointment {

	for i := range existing {
		ap := &existing[i]

		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Active() {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return ap
		}
	}

	return nil
}

// ErrConflict monta o ConflictError exposto ao usuário, com o nome do
// cliente e o horário do agendamento que já ocupa o intervalo.
func ErrConflict(ap *models.Appointment) error {
	return httperr.ErrBusinessMsg(
		"time_conflict",
		fmt.Sprintf(
			"Horário conflitante com agendamento existente de %s às %s.",
			ap.CustomerName,
			ap.StartTime.Format("15:04"),
		),
	)
}
