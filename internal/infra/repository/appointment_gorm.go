package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusScheduled),
	string(domain.StatusConfirmed),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Establishment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEstablishmentByID(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *AppointmentGormRepository) GetEstablishmentBySlug(
	ctx context.Context,
	slug string,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = true", slug).
		First(&est).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

// --------------------------------------------------
// Service / Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	establishmentID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", serviceID, establishmentID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", professionalID, establishmentID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	establishmentID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND weekday = ?", establishmentID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListClosedWeekdays(
	ctx context.Context,
	establishmentID uint,
) ([]int, error) {

	var weekdays []int
	if err := r.db.WithContext(ctx).
		Model(&models.WorkingHours{}).
		Where("establishment_id = ? AND closed = true", establishmentID).
		Order("weekday ASC").
		Pluck("weekday", &weekdays).Error; err != nil {
		return nil, err
	}

	return weekdays, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			professionalID, activeStatuses, to, from,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// CreateAppointmentChecked refaz a checagem de conflito dentro da
// mesma transação do insert. A linha do profissional é travada com
// FOR UPDATE: dois bookings simultâneos para o mesmo profissional
// serializam aqui, e o segundo enxerga o commit do primeiro.
func (r *AppointmentGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var prof models.Professional
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prof, ap.ProfessionalID).Error; err != nil {
			return err
		}

		var conflict models.Appointment
		err := tx.
			Where(
				"professional_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.ProfessionalID, activeStatuses, ap.EndTime, ap.StartTime,
			).
			Order("start_time ASC").
			First(&conflict).Error

		if err == nil {
			return domain.ErrConflict(&conflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			return translatePgError(err)
		}

		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
	establishmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", appointmentID, establishmentID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("public_token = ?", token).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where(
			"establishment_id = ? AND start_time >= ? AND start_time < ?",
			establishmentID, start, end,
		)

	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Reminder sweep
// --------------------------------------------------

func (r *AppointmentGormRepository) ListReminderCandidates(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Preload("Establishment").
		Where(
			"status IN ? AND start_time >= ? AND start_time <= ? AND customer_email <> '' AND reminder_sent = false",
			activeStatuses, from, to,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// MarkReminderSent só é chamado depois de um envio confirmado;
// em falha a flag fica intacta e a próxima varredura tenta de novo.
func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent", true).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrBusiness("duplicate_record")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
