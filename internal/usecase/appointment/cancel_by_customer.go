package appointment

import (
	"context"
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/audit"
	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/notify"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
)

type CancelByCustomer struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher

	clock func() time.Time
}

func NewCancelByCustomer(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CancelByCustomer {
	return &CancelByCustomer{
		repo:   repo,
		notify: notifier,
		audit:  auditor,
		clock:  time.Now,
	}
}

// Execute cancela em nome do cliente, localizado pelo token público
// da URL. O telefone é a credencial; a janela de 2h é medida contra o
// relógio do servidor no fuso do estabelecimento, nunca contra hora
// enviada pelo cliente.
func (uc *CancelByCustomer) Execute(
	ctx context.Context,
	establishmentID uint,
	token string,
	phone string,
) (*models.Appointment, error) {

	est, err := uc.repo.GetEstablishmentByID(ctx, establishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil || ap.EstablishmentID != est.ID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.clock().In(timezone.Location(est.Timezone))

	if err := domain.CancelByCustomer(ap, phone, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	svcName, profName := "", ""
	if svc, err := uc.repo.GetService(ctx, est.ID, ap.ServiceID); err == nil {
		svcName = svc.Name
	}
	if prof, err := uc.repo.GetProfessional(ctx, est.ID, ap.ProfessionalID); err == nil {
		profName = prof.Name
	}

	uc.notify.Dispatch(notify.Event{
		Kind:             notify.KindCancellation,
		Appointment:      *ap,
		Establishment:    *est,
		ServiceName:      svcName,
		ProfessionalName: profName,
		Reason:           ap.CancelReason,
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: est.ID,
		Action:          "appointment_cancelled_by_customer",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
