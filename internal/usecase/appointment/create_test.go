package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

var testEstablishment = &models.Establishment{
	ID:          1,
	Name:        "Salão Aurora",
	Slug:        "salao-aurora",
	NotifyEmail: "dona@aurora.com",
	Timezone:    "UTC",
	Active:      true,
}

func createUCFixture(repo *fakeRepo, sender *recordingSender) *CreateAppointment {
	notifier, auditor := testDispatchers(sender)
	uc := NewCreateAppointment(repo, notifier, auditor)
	// relógio travado em 2026-09-10 08:00 UTC
	uc.clock = fixedClock(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC))
	return uc
}

func baseCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		EstablishmentID: 1,
		ProfessionalID:  2,
		ServiceID:       3,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "11999990000",
		CustomerEmail:   "maria@example.com",
		Date:            "2026-09-11",
		Time:            "10:00",
	}
}

func baseCreateRepo() *fakeRepo {
	return &fakeRepo{
		getEstablishmentByID: func(ctx context.Context, id uint) (*models.Establishment, error) {
			return testEstablishment, nil
		},
		getWorkingHours: func(ctx context.Context, establishmentID uint, weekday int) (*models.WorkingHours, error) {
			return nil, nil
		},
		getService: func(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
			return &models.Service{ID: 3, Name: "Corte", DurationMin: 60, Price: 80}, nil
		},
		getProfessional: func(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
			return &models.Professional{ID: 2, Name: "João"}, nil
		},
		listActive: func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
			return nil, nil
		},
		createChecked: func(ctx context.Context, ap *models.Appointment) error {
			ap.ID = 77
			return nil
		},
	}
}

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, be.Code)
}

func TestCreateAppointmentSuccess(t *testing.T) {
	sender := &recordingSender{}
	uc := createUCFixture(baseCreateRepo(), sender)

	ap, err := uc.Execute(context.Background(), baseCreateInput())
	require.NoError(t, err)

	assert.Equal(t, uint(77), ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "Maria Souza", ap.CustomerName)
	assert.NotEmpty(t, ap.PublicToken)

	// snapshot do serviço no momento da criação
	assert.Equal(t, 60, ap.DurationMin)
	assert.Equal(t, 80.0, ap.Price)
	assert.Equal(t, ap.StartTime.Add(60*time.Minute), ap.EndTime)

	// estabelecimento é notificado (assíncrono)
	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "dona@aurora.com", sender.last().To)
}

func TestCreateAppointmentMissingName(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.CustomerName = "   "

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "missing_customer_name")
}

func TestCreateAppointmentInvalidPhone(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.CustomerPhone = "12345"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "invalid_phone")
}

func TestCreateAppointmentInvalidEmail(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.CustomerEmail = "not-an-email"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "invalid_email")
}

func TestCreateAppointmentEmailOptional(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.CustomerEmail = ""

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, ap.CustomerEmail)
}

func TestCreateAppointmentPastTime(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.Date = "2026-09-09"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "past_time")
}

func TestCreateAppointmentExactlyNowIsPast(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.Date = "2026-09-10"
	in.Time = "08:00"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "past_time")
}

func TestCreateAppointmentInvalidDate(t *testing.T) {
	uc := createUCFixture(baseCreateRepo(), &recordingSender{})

	in := baseCreateInput()
	in.Time = "10h30"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "invalid_date_or_time")
}

func TestCreateAppointmentClosedDay(t *testing.T) {
	repo := baseCreateRepo()
	repo.getWorkingHours = func(ctx context.Context, establishmentID uint, weekday int) (*models.WorkingHours, error) {
		return &models.WorkingHours{Weekday: weekday, Closed: true}, nil
	}
	uc := createUCFixture(repo, &recordingSender{})

	_, err := uc.Execute(context.Background(), baseCreateInput())
	assertBusinessCode(t, err, "closed_day")
}

func TestCreateAppointmentConflict(t *testing.T) {
	repo := baseCreateRepo()
	repo.listActive = func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
		return []models.Appointment{
			{
				ID:           5,
				Status:       string(domain.StatusConfirmed),
				CustomerName: "Pedro",
				StartTime:    time.Date(2026, 9, 11, 10, 30, 0, 0, time.UTC),
				EndTime:      time.Date(2026, 9, 11, 11, 30, 0, 0, time.UTC),
			},
		}, nil
	}
	repo.createChecked = func(ctx context.Context, ap *models.Appointment) error {
		t.Fatal("create must not be reached when pre-check finds a conflict")
		return nil
	}

	sender := &recordingSender{}
	uc := createUCFixture(repo, sender)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	assertBusinessCode(t, err, "time_conflict")

	assert.Equal(t, 0, sender.count())
}

func TestCreateAppointmentTouchingExistingIsFree(t *testing.T) {
	repo := baseCreateRepo()
	repo.listActive = func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
		// termina exatamente onde o novo começa
		return []models.Appointment{
			{
				ID:        5,
				Status:    string(domain.StatusScheduled),
				StartTime: time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
			},
		}, nil
	}
	uc := createUCFixture(repo, &recordingSender{})

	_, err := uc.Execute(context.Background(), baseCreateInput())
	assert.NoError(t, err)
}

func TestCreateAppointmentRechecksInTransaction(t *testing.T) {
	// a pré-checagem passa mas a re-checagem transacional perde a
	// corrida: o erro de conflito da persistência sobe intacto
	repo := baseCreateRepo()
	repo.createChecked = func(ctx context.Context, ap *models.Appointment) error {
		return domain.ErrConflict(&models.Appointment{
			CustomerName: "Pedro",
			StartTime:    time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
		})
	}

	sender := &recordingSender{}
	uc := createUCFixture(repo, sender)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	assertBusinessCode(t, err, "time_conflict")
	assert.Equal(t, 0, sender.count())
}
