package appointment

import (
	"context"
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Establishment --------
	GetEstablishmentByID(
		ctx context.Context,
		id uint,
	) (*models.Establishment, error)

	GetEstablishmentBySlug(
		ctx context.Context,
		slug string,
	) (*models.Establishment, error)

	// -------- Service / Professional --------
	GetService(
		ctx context.Context,
		establishmentID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Working hours --------

	// GetWorkingHours devolve (nil, nil) quando não há registro para o
	// dia; nesse caso valem os padrões de ResolveWindow.
	GetWorkingHours(
		ctx context.Context,
		establishmentID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListClosedWeekdays(
		ctx context.Context,
		establishmentID uint,
	) ([]int, error)

	// -------- Appointment (create / conflict) --------

	// ListActiveAppointments devolve os agendamentos ativos do
	// profissional cujo intervalo toca [from, to), ordenados por início.
	ListActiveAppointments(
		ctx context.Context,
		professionalID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// CreateAppointmentChecked insere o agendamento dentro de uma
	// transação que trava a linha do profissional e refaz a checagem de
	// conflito. Dois writers concorrentes serializam aqui: o segundo
	// enxerga o commit do primeiro e recebe ErrConflict.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
		establishmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Reminder sweep --------
	ListReminderCandidates(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	MarkReminderSent(
		ctx context.Context,
		appointmentID uint,
	) error
}
