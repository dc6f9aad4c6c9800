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

type UpdateStatusInput struct {
	EstablishmentID uint
	UserID          uint
	AppointmentID   uint

	NewStatus string
	Reason    string
}

type UpdateStatus struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher

	clock func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		notify: notifier,
		audit:  auditor,
		clock:  time.Now,
	}
}

// Execute aplica uma transição de status pedida pelo staff.
// Entrar em confirmed notifica o cliente; re-confirmar é no-op e não
// repete a notificação. Entrar em cancelled notifica o estabelecimento
// com o motivo, quando informado.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	target, err := domain.ParseStatus(in.NewStatus)
	if err != nil {
		return nil, err
	}

	est, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID, est.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.clock().In(timezone.Location(est.Timezone))

	notifyKind := notify.Kind("")

	switch target {
	case domain.StatusConfirmed:
		changed, err := domain.Confirm(ap, now)
		if err != nil {
			return nil, err
		}
		if !changed {
			return ap, nil
		}
		notifyKind = notify.KindConfirmation

	case domain.StatusCancelled:
		if err := domain.Cancel(ap, in.Reason, now); err != nil {
			return nil, err
		}
		notifyKind = notify.KindCancellation

	case domain.StatusCompleted:
		if err := domain.Complete(ap, now); err != nil {
			return nil, err
		}

	default:
		// voltar para scheduled não está na máquina de estados
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if notifyKind != "" {
		svcName, profName := uc.resolveNames(ctx, est.ID, ap)

		uc.notify.Dispatch(notify.Event{
			Kind:             notifyKind,
			Appointment:      *ap,
			Establishment:    *est,
			ServiceName:      svcName,
			ProfessionalName: profName,
			Reason:           in.Reason,
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: est.ID,
		UserID:          &in.UserID,
		Action:          "appointment_" + string(target),
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}

func (uc *UpdateStatus) resolveNames(
	ctx context.Context,
	establishmentID uint,
	ap *models.Appointment,
) (serviceName, professionalName string) {

	if svc, err := uc.repo.GetService(ctx, establishmentID, ap.ServiceID); err == nil {
		serviceName = svc.Name
	}
	if prof, err := uc.repo.GetProfessional(ctx, establishmentID, ap.ProfessionalID); err == nil {
		professionalName = prof.Name
	}
	return
}
