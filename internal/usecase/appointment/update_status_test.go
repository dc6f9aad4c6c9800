package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

func statusRepo(ap *models.Appointment, updates *int) *fakeRepo {
	return &fakeRepo{
		getEstablishmentByID: func(ctx context.Context, id uint) (*models.Establishment, error) {
			return testEstablishment, nil
		},
		getAppointment: func(ctx context.Context, appointmentID, establishmentID uint) (*models.Appointment, error) {
			return ap, nil
		},
		updateAppointment: func(ctx context.Context, got *models.Appointment) error {
			*updates++
			return nil
		},
		getService: func(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
			return &models.Service{ID: 3, Name: "Corte"}, nil
		},
		getProfessional: func(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
			return &models.Professional{ID: 2, Name: "João"}, nil
		},
	}
}

func TestUpdateStatusConfirm(t *testing.T) {
	ap := &models.Appointment{
		ID:            9,
		Status:        string(domain.StatusScheduled),
		CustomerEmail: "maria@example.com",
		StartTime:     time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
	}

	updates := 0
	sender := &recordingSender{}
	notifier, auditor := testDispatchers(sender)
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	assert.Equal(t, 1, updates)

	// cliente recebe a confirmação
	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "maria@example.com", sender.last().To)
}

func TestUpdateStatusReconfirmIsNoop(t *testing.T) {
	ap := &models.Appointment{
		ID:            9,
		Status:        string(domain.StatusConfirmed),
		CustomerEmail: "maria@example.com",
	}

	updates := 0
	sender := &recordingSender{}
	notifier, auditor := testDispatchers(sender)
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)

	// nada persiste e nenhuma notificação duplicada sai
	assert.Equal(t, 0, updates)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
}

func TestUpdateStatusCancelWithReason(t *testing.T) {
	ap := &models.Appointment{
		ID:     9,
		Status: string(domain.StatusConfirmed),
	}

	updates := 0
	sender := &recordingSender{}
	notifier, auditor := testDispatchers(sender)
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "cancelled",
		Reason:          "profissional de licença",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.Equal(t, "profissional de licença", got.CancelReason)
	assert.NotNil(t, got.CancelledAt)
	assert.Equal(t, 1, updates)
}

func TestUpdateStatusComplete(t *testing.T) {
	ap := &models.Appointment{
		ID:     9,
		Status: string(domain.StatusConfirmed),
	}

	updates := 0
	sender := &recordingSender{}
	notifier, auditor := testDispatchers(sender)
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	got, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	assert.NotNil(t, got.CompletedAt)

	// concluir não manda email
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
}

func TestUpdateStatusFromTerminal(t *testing.T) {
	ap := &models.Appointment{
		ID:     9,
		Status: string(domain.StatusCompleted),
	}

	updates := 0
	notifier, auditor := testDispatchers(&recordingSender{})
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "cancelled",
	})
	assertBusinessCode(t, err, "invalid_state")
	assert.Equal(t, 0, updates)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	ap := &models.Appointment{ID: 9, Status: string(domain.StatusScheduled)}

	updates := 0
	notifier, auditor := testDispatchers(&recordingSender{})
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "done",
	})
	assertBusinessCode(t, err, "invalid_status")
}

func TestUpdateStatusBackToScheduled(t *testing.T) {
	ap := &models.Appointment{ID: 9, Status: string(domain.StatusConfirmed)}

	updates := 0
	notifier, auditor := testDispatchers(&recordingSender{})
	uc := NewUpdateStatus(statusRepo(ap, &updates), notifier, auditor)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		EstablishmentID: 1,
		AppointmentID:   9,
		NewStatus:       "scheduled",
	})
	assertBusinessCode(t, err, "invalid_state")
}
