package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/audit"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/notify"
)

// fakeRepo implementa domain.Repository com campos de função: cada
// teste configura só o que usa e qualquer chamada inesperada explode.
type fakeRepo struct {
	getEstablishmentByID   func(ctx context.Context, id uint) (*models.Establishment, error)
	getEstablishmentBySlug func(ctx context.Context, slug string) (*models.Establishment, error)
	getService             func(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error)
	getProfessional        func(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error)
	getWorkingHours        func(ctx context.Context, establishmentID uint, weekday int) (*models.WorkingHours, error)
	listClosedWeekdays     func(ctx context.Context, establishmentID uint) ([]int, error)
	listActive             func(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error)
	createChecked          func(ctx context.Context, ap *models.Appointment) error
	getAppointment         func(ctx context.Context, appointmentID, establishmentID uint) (*models.Appointment, error)
	getAppointmentByToken  func(ctx context.Context, token string) (*models.Appointment, error)
	updateAppointment      func(ctx context.Context, ap *models.Appointment) error
	listForPeriod          func(ctx context.Context, establishmentID, professionalID uint, start, end time.Time) ([]models.Appointment, error)
	listReminderCandidates func(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	markReminderSent       func(ctx context.Context, appointmentID uint) error
}

func (f *fakeRepo) GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error) {
	if f.getEstablishmentByID == nil {
		panic("GetEstablishmentByID not configured")
	}
	return f.getEstablishmentByID(ctx, id)
}

func (f *fakeRepo) GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	if f.getEstablishmentBySlug == nil {
		panic("GetEstablishmentBySlug not configured")
	}
	return f.getEstablishmentBySlug(ctx, slug)
}

func (f *fakeRepo) GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	if f.getService == nil {
		panic("GetService not configured")
	}
	return f.getService(ctx, establishmentID, serviceID)
}

func (f *fakeRepo) GetProfessional(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
	if f.getProfessional == nil {
		panic("GetProfessional not configured")
	}
	return f.getProfessional(ctx, establishmentID, professionalID)
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, establishmentID uint, weekday int) (*models.WorkingHours, error) {
	if f.getWorkingHours == nil {
		panic("GetWorkingHours not configured")
	}
	return f.getWorkingHours(ctx, establishmentID, weekday)
}

func (f *fakeRepo) ListClosedWeekdays(ctx context.Context, establishmentID uint) ([]int, error) {
	if f.listClosedWeekdays == nil {
		panic("ListClosedWeekdays not configured")
	}
	return f.listClosedWeekdays(ctx, establishmentID)
}

func (f *fakeRepo) ListActiveAppointments(ctx context.Context, professionalID uint, from, to time.Time) ([]models.Appointment, error) {
	if f.listActive == nil {
		panic("ListActiveAppointments not configured")
	}
	return f.listActive(ctx, professionalID, from, to)
}

func (f *fakeRepo) CreateAppointmentChecked(ctx context.Context, ap *models.Appointment) error {
	if f.createChecked == nil {
		panic("CreateAppointmentChecked not configured")
	}
	return f.createChecked(ctx, ap)
}

func (f *fakeRepo) GetAppointment(ctx context.Context, appointmentID, establishmentID uint) (*models.Appointment, error) {
	if f.getAppointment == nil {
		panic("GetAppointment not configured")
	}
	return f.getAppointment(ctx, appointmentID, establishmentID)
}

func (f *fakeRepo) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	if f.getAppointmentByToken == nil {
		panic("GetAppointmentByToken not configured")
	}
	return f.getAppointmentByToken(ctx, token)
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.updateAppointment == nil {
		panic("UpdateAppointment not configured")
	}
	return f.updateAppointment(ctx, ap)
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, establishmentID, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	if f.listForPeriod == nil {
		panic("ListAppointmentsForPeriod not configured")
	}
	return f.listForPeriod(ctx, establishmentID, professionalID, start, end)
}

func (f *fakeRepo) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	if f.listReminderCandidates == nil {
		panic("ListReminderCandidates not configured")
	}
	return f.listReminderCandidates(ctx, from, to)
}

func (f *fakeRepo) MarkReminderSent(ctx context.Context, appointmentID uint) error {
	if f.markReminderSent == nil {
		panic("MarkReminderSent not configured")
	}
	return f.markReminderSent(ctx, appointmentID)
}

// recordingSender captura mensagens enviadas pelo dispatcher (worker
// em goroutine própria, por isso o mutex).
type recordingSender struct {
	mu       sync.Mutex
	messages []notify.Message
	fail     error
}

func (s *recordingSender) Send(msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *recordingSender) last() notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[len(s.messages)-1]
}

func testDispatchers(sender notify.Sender) (*notify.Dispatcher, *audit.Dispatcher) {
	return notify.NewDispatcher(sender), audit.NewDispatcher(audit.New(nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
