package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AgendaVivaBR/salon-scheduler/internal/audit"
	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/notify"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
	"github.com/AgendaVivaBR/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	EstablishmentID uint
	ProfessionalID  uint
	ServiceID       uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher

	clock func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		notify: notifier,
		audit:  auditor,
		clock:  time.Now,
	}
}

// Execute valida, refaz a checagem de conflito na persistência e só
// depois do commit dispara as notificações. Falha de notificação não
// reverte o agendamento.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	est, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	// --------------------------------------------------
	// Dados do cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, httperr.ErrBusiness("missing_customer_name")
	}

	if !validators.IsPhoneValid(in.CustomerPhone) {
		return nil, httperr.ErrBusinessMsg(
			"invalid_phone",
			"Telefone deve ter pelo menos 10 dígitos.",
		)
	}

	email := strings.TrimSpace(in.CustomerEmail)
	if email != "" && !validators.IsEmailFormatValid(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	// --------------------------------------------------
	// Data/hora no fuso do estabelecimento
	// --------------------------------------------------
	loc := timezone.Location(est.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.clock().In(loc)
	if !start.After(now) {
		return nil, httperr.ErrBusinessMsg(
			"past_time",
			"Não é possível agendar para datas passadas.",
		)
	}

	// --------------------------------------------------
	// Dia fechado
	// --------------------------------------------------
	wh, err := uc.repo.GetWorkingHours(
		ctx,
		est.ID,
		domain.WeekdayIndex(start),
	)
	if err != nil {
		return nil, err
	}
	if wh != nil && wh.Closed {
		return nil, httperr.ErrBusinessMsg(
			"closed_day",
			"O estabelecimento está fechado neste dia.",
		)
	}

	// --------------------------------------------------
	// Serviço e profissional
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, est.ID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	prof, err := uc.repo.GetProfessional(ctx, est.ID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Pré-checagem de conflito (leitura pura). É só uma dica:
	// a fonte de verdade é a re-checagem transacional abaixo.
	// --------------------------------------------------
	existing, err := uc.repo.ListActiveAppointments(ctx, prof.ID, start, end)
	if err != nil {
		return nil, err
	}
	if hit := domain.FindConflict(existing, start, end, 0); hit != nil {
		return nil, domain.ErrConflict(hit)
	}

	// --------------------------------------------------
	// Criação com snapshot de duração/preço
	// --------------------------------------------------
	ap := &models.Appointment{
		EstablishmentID: est.ID,
		ProfessionalID:  prof.ID,
		ServiceID:       svc.ID,

		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: email,

		StartTime:   start,
		EndTime:     end,
		DurationMin: svc.DurationMin,
		Price:       svc.Price,

		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
		PublicToken: uuid.NewString(),
	}

	if err := uc.repo.CreateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Pós-commit: notificação + auditoria (melhor esforço)
	// --------------------------------------------------
	uc.notify.Dispatch(notify.Event{
		Kind:             notify.KindNewAppointment,
		Appointment:      *ap,
		Establishment:    *est,
		ServiceName:      svc.Name,
		ProfessionalName: prof.Name,
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: est.ID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
