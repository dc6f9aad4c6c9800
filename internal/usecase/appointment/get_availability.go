package appointment

import (
	"context"
	"time"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository

	clock func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		clock: time.Now,
	}
}

// Execute devolve a grade de horários livres do profissional no dia.
// Dia fechado devolve lista vazia sem gerar grade. A janela vem do
// expediente cadastrado; sem cadastro valem 08:00–18:00.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	est, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	svc, err := uc.repo.GetService(ctx, est.ID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	prof, err := uc.repo.GetProfessional(ctx, est.ID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	wh, err := uc.repo.GetWorkingHours(
		ctx,
		est.ID,
		domain.WeekdayIndex(in.Date),
	)
	if err != nil {
		return nil, err
	}

	opensAt, closesAt, open := domain.ResolveWindow(wh)
	if !open {
		return []domain.Slot{}, nil
	}

	loc := timezone.Location(est.Timezone)
	day := in.Date.In(loc)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListActiveAppointments(ctx, prof.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.clock().In(loc)

	return domain.BuildSlots(
		day,
		opensAt,
		closesAt,
		svc.DurationMin,
		domain.DefaultStepMin,
		now,
		booked,
	)
}
