package appointment

import (
	"context"
	"time"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/dto"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	aps, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		establishmentID,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(aps), nil
}

func toListDTOs(aps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			CustomerName:     ap.CustomerName,
			CustomerPhone:    ap.CustomerPhone,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
			DurationMin:      ap.DurationMin,
			Price:            ap.Price,
		})
	}
	return out
}
