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

func availabilityRepo(wh *models.WorkingHours, booked []models.Appointment) *fakeRepo {
	return &fakeRepo{
		getEstablishmentByID: func(ctx context.Context, id uint) (*models.Establishment, error) {
			return testEstablishment, nil
		},
		getService: func(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
			return &models.Service{ID: 3, Name: "Corte", DurationMin: 30}, nil
		},
		getProfessional: func(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
			return &models.Professional{ID: 2, Name: "João"}, nil
		},
		getWorkingHours: func(ctx context.Context, establishmentID uint, weekday int) (*models.WorkingHours, error) {
			return wh, nil
		},
		listActive: func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
			return booked, nil
		},
	}
}

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		EstablishmentID: 1,
		ProfessionalID:  2,
		ServiceID:       3,
		Date:            time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetAvailabilityDefaultWindow(t *testing.T) {
	uc := NewGetAvailability(availabilityRepo(nil, nil))
	uc.clock = fixedClock(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC))

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	assert.Len(t, slots, 20)
}

func TestGetAvailabilityClosedDayShortCircuits(t *testing.T) {
	repo := availabilityRepo(&models.WorkingHours{Closed: true}, nil)
	repo.listActive = func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
		t.Fatal("closed day must not hit the appointment listing")
		return nil, nil
	}

	uc := NewGetAvailability(repo)
	uc.clock = fixedClock(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC))

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetAvailabilityCustomWindowAndBooked(t *testing.T) {
	booked := []models.Appointment{
		{
			Status:    string(domain.StatusScheduled),
			StartTime: time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 11, 11, 0, 0, 0, time.UTC),
		},
	}

	uc := NewGetAvailability(availabilityRepo(&models.WorkingHours{
		OpensAt:  "09:00",
		ClosesAt: "12:00",
	}, booked))
	uc.clock = fixedClock(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC))

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, times)
}

func TestGetAvailabilityIsIdempotent(t *testing.T) {
	uc := NewGetAvailability(availabilityRepo(nil, nil))
	uc.clock = fixedClock(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC))

	a, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	b, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := availabilityRepo(nil, nil)
	repo.getService = func(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
		return nil, assert.AnError
	}

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), availabilityInput())
	assertBusinessCode(t, err, "service_not_found")
}
