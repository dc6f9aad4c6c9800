package appointment

import (
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

// Passo padrão da grade de horários, em minutos.
const DefaultStepMin = 30

type AvailabilityInput struct {
	EstablishmentID uint
	ProfessionalID  uint
	ServiceID       uint
	Date            time.Time
}

type Slot struct {
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildSlots gera a grade de horários livres de um dia.
//
// Caminha de opensAt em passos de stepMin e descarta o candidato que:
//   - não termina até closesAt (o serviço inteiro precisa caber),
//   - não está estritamente no futuro em relação a now,
//   - sobrepõe um agendamento ativo de booked.
//
// O resultado é ordenado por horário e recalculado a cada chamada.
func BuildSlots(
	date time.Time,
	opensAt string,
	closesAt string,
	durationMin int,
	stepMin int,
	now time.Time,
	booked []models.Appointment,
) ([]Slot, error) {

	dayStart, err := ParseClock(opensAt, date)
	if err != nil {
		return nil, err
	}
	dayEnd, err := ParseClock(closesAt, date)
	if err != nil {
		return nil, err
	}

	if stepMin <= 0 {
		stepMin = DefaultStepMin
	}

	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(stepMin) * time.Minute

	slots := []Slot{}

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(step) {
		if !cur.After(now) {
			continue
		}
		if FindConflict(booked, cur, cur.Add(duration), 0) != nil {
			continue
		}

		slots = append(slots, Slot{
			Time:      cur.Format("15:04"),
			Timestamp: cur,
		})
	}

	return slots, nil
}
